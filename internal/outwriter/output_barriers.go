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

// WriteBarrierListing outputs the barrier registry, dispatching based on the
// output format configured. subcategories maps subcategory node ids to their
// taxonomy labels.
func WriteBarrierListing(barriers []schema.Barrier, subcategories map[int]string, cfg *contract.Config) error {
	fmtFloat := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, barriers)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"code", "group", "subcategory", "severity", "description"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, b := range barriers {
					row := []string{
						b.Code,
						b.GroupCode,
						subcategories[b.SubcategoryID],
						fmtFloat(b.Severity),
						b.Description,
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
			return writeBarrierTable(barriers, subcategories, fmtFloat, cfg, w)
		}, "Wrote table")
	}
}

// writeBarrierTable generates and writes the human-readable table.
func writeBarrierTable(barriers []schema.Barrier, subcategories map[int]string, fmtFloat func(float64) string, cfg *contract.Config, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Code", "Group", "Subcategory", "Severity", "Description"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	maxLabelWidth := getMaxTableLabelWidth(cfg)
	groups := make(map[string]struct{})
	var data [][]string
	for _, b := range barriers {
		groups[b.GroupCode] = struct{}{}
		data = append(data, []string{
			b.Code,
			b.GroupCode,
			contract.TruncateLabel(subcategories[b.SubcategoryID], maxLabelWidth),
			fmtFloat(b.Severity),
			contract.TruncateLabel(b.Description, maxLabelWidth),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "%s barriers in %d groups\n", strconv.Itoa(len(barriers)), len(groups)); err != nil {
		return err
	}
	return nil
}
