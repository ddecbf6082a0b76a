package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/contract"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/schema"
)

// TreeEntry is one pre-ordered node of a taxonomy listing.
type TreeEntry struct {
	Node  schema.TaxonomyNode
	Depth int
}

// WriteTaxonomyTree outputs the taxonomy listing, dispatching based on the
// output format configured. Text output is an indented tree rather than a
// table because the hierarchy matters more than column alignment here.
func WriteTaxonomyTree(entries []TreeEntry, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			nodes := make([]schema.TaxonomyNode, 0, len(entries))
			for _, e := range entries {
				nodes = append(nodes, e.Node)
			}
			return writeJSON(w, nodes)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"id", "level", "label", "parent_id"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, e := range entries {
					row := []string{
						strconv.Itoa(e.Node.ID),
						string(e.Node.Level),
						e.Node.Label,
						strconv.Itoa(e.Node.ParentID),
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
			return writeTaxonomyText(entries, w)
		}, "Wrote tree")
	}
}

// writeTaxonomyText renders the indented tree.
func writeTaxonomyText(entries []TreeEntry, writer io.Writer) error {
	solutions := 0
	for _, e := range entries {
		marker := "-"
		if e.Node.IsSolution() {
			marker = "*"
			solutions++
		}
		indent := strings.Repeat("  ", e.Depth)
		if _, err := fmt.Fprintf(writer, "%s%s [%d] %s\n", indent, marker, e.Node.ID, e.Node.Label); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(writer, "%d nodes, %d solutions\n", len(entries), solutions); err != nil {
		return err
	}
	return nil
}
