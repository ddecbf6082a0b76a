package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/contract"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/schema"
)

// WriteValidationSummary outputs the per-edition validation results,
// dispatching based on the output format configured.
func WriteValidationSummary(summaries []schema.EditionSummary, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, summaries)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"edition", "taxonomy", "indicators", "weights", "barriers", "consistent", "detail"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, s := range summaries {
					row := []string{
						string(s.Edition),
						strconv.Itoa(s.Taxonomy),
						strconv.Itoa(s.Indicators),
						strconv.Itoa(s.Weights),
						strconv.Itoa(s.Barriers),
						strconv.FormatBool(s.Consistent),
						s.Detail,
					}
					if err := cw.Write(row); err != nil {
						return fmt.Errorf("failed to write CSV row: %w", err)
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeValidationTable(summaries, w)
		}, "Wrote table")
	}
}

// writeValidationTable generates and writes the human-readable table.
func writeValidationTable(summaries []schema.EditionSummary, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Edition", "Taxonomy", "Indicators", "Weights", "Barriers", "Consistent"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	allConsistent := true
	for _, s := range summaries {
		consistent := "yes"
		if !s.Consistent {
			consistent = "NO"
			allConsistent = false
		}
		data = append(data, []string{
			string(s.Edition),
			strconv.Itoa(s.Taxonomy),
			strconv.Itoa(s.Indicators),
			strconv.Itoa(s.Weights),
			strconv.Itoa(s.Barriers),
			consistent,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, s := range summaries {
		if !s.Consistent && s.Detail != "" {
			if _, err := fmt.Fprintf(writer, "Edition %s diverges: %s\n", s.Edition, s.Detail); err != nil {
				return err
			}
		}
	}
	if allConsistent {
		if _, err := fmt.Fprintf(writer, "All %d editions validated and structurally consistent\n", len(summaries)); err != nil {
			return err
		}
	}
	return nil
}
