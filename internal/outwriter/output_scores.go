package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/contract"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/schema"
)

// ScoreReport bundles ranked scores with the display names needed to render
// them. The writer layer never touches the reference tables directly.
type ScoreReport struct {
	Scores         []schema.PriorityScore
	SolutionNames  map[int]string
	IndicatorNames map[int]string
	BasinID        string
}

// WriteScoreResults outputs the ranked prioritization results, dispatching
// based on the output format configured.
func WriteScoreResults(report ScoreReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeScoreJSONResults(report, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeScoreCSVResults(report, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoreTable(report, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// scoreRecord is the JSON shape for one ranked solution.
type scoreRecord struct {
	Rank           int                `json:"rank"`
	SbNID          int                `json:"sbn_id"`
	Solution       string             `json:"solution"`
	Composite      float64            `json:"composite_indicator_score"`
	BarrierPenalty float64            `json:"barrier_penalty"`
	FinalScore     float64            `json:"final_score"`
	Band           string             `json:"band"`
	Breakdown      map[string]float64 `json:"breakdown,omitempty"`
}

// writeScoreJSONResults handles opening the file and calling the JSON writer.
func writeScoreJSONResults(report ScoreReport, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		records := make([]scoreRecord, 0, len(report.Scores))
		for _, s := range report.Scores {
			record := scoreRecord{
				Rank:           s.Rank,
				SbNID:          s.SbNID,
				Solution:       report.SolutionNames[s.SbNID],
				Composite:      s.CompositeIndicatorScore,
				BarrierPenalty: s.BarrierPenalty,
				FinalScore:     s.FinalScore,
				Band:           s.Label,
			}
			if cfg.Explain && len(s.Breakdown) > 0 {
				record.Breakdown = make(map[string]float64, len(s.Breakdown))
				for indID, contribution := range s.Breakdown {
					name := report.IndicatorNames[indID]
					if name == "" {
						name = strconv.Itoa(indID)
					}
					record.Breakdown[name] = contribution
				}
			}
			records = append(records, record)
		}
		return writeJSON(w, records)
	}, "Wrote JSON")
}

// writeScoreCSVResults handles opening the file and calling the CSV writer.
func writeScoreCSVResults(report ScoreReport, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForScores(csvWriter, report, fmtFloat)
	}, "Wrote CSV")
}

// writeCSVResultsForScores writes the ranked results in CSV format.
func writeCSVResultsForScores(w *csv.Writer, report ScoreReport, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"sbn_id",
		"solution",
		"composite",
		"penalty",
		"final_score",
		"band",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, s := range report.Scores {
		row := []string{
			strconv.Itoa(s.Rank),
			strconv.Itoa(s.SbNID),
			report.SolutionNames[s.SbNID],
			fmtFloat(s.CompositeIndicatorScore),
			fmtFloat(s.BarrierPenalty),
			fmtFloat(s.FinalScore),
			s.Label,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	return nil
}

// writeScoreTable generates and writes the human-readable table.
func writeScoreTable(report ScoreReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Id", "Solution", "Score", "Band"}
	if cfg.Detail {
		headers = append(headers, "Composite", "Penalty")
	}
	if cfg.Explain {
		headers = append(headers, "Top Indicators")
	}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	maxLabelWidth := getMaxTableLabelWidth(cfg)
	var data [][]string
	for _, s := range report.Scores {
		band := contract.GetPlainLabel(s.FinalScore)
		if cfg.Color {
			band = contract.GetColorLabel(s.FinalScore)
		}
		row := []string{
			strconv.Itoa(s.Rank),
			strconv.Itoa(s.SbNID),
			contract.TruncateLabel(report.SolutionNames[s.SbNID], maxLabelWidth),
			fmtFloat(s.FinalScore),
			band,
		}
		if cfg.Detail {
			row = append(row, fmtFloat(s.CompositeIndicatorScore), fmtFloat(s.BarrierPenalty))
		}
		if cfg.Explain {
			row = append(row, formatTopContributions(s.Breakdown, report.IndicatorNames, fmtFloat))
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	basin := report.BasinID
	if basin == "" {
		basin = "(unnamed basin)"
	}
	if _, err := fmt.Fprintf(writer, "Showing top %d solutions for %s\n", len(report.Scores), basin); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Prioritization completed in %v. Store backend: %s\n", duration, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// formatTopContributions renders the two largest weighted indicator
// contributions for explain mode.
func formatTopContributions(breakdown map[int]float64, names map[int]string, fmtFloat func(float64) string) string {
	if len(breakdown) == 0 {
		return ""
	}
	type contribution struct {
		id    int
		value float64
	}
	contributions := make([]contribution, 0, len(breakdown))
	for id, v := range breakdown {
		contributions = append(contributions, contribution{id: id, value: v})
	}
	sort.Slice(contributions, func(i, j int) bool {
		if contributions[i].value != contributions[j].value {
			return contributions[i].value > contributions[j].value
		}
		return contributions[i].id < contributions[j].id
	})
	if len(contributions) > 2 {
		contributions = contributions[:2]
	}
	parts := make([]string, 0, len(contributions))
	for _, c := range contributions {
		name := names[c.id]
		if name == "" {
			name = strconv.Itoa(c.id)
		}
		parts = append(parts, fmt.Sprintf("%s: %s", name, fmtFloat(c.value)))
	}
	return strings.Join(parts, ", ")
}
