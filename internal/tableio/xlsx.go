package tableio

import (
	"fmt"
	"strings"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/contract"
	"github.com/xuri/excelize/v2"
)

// weightSheetName is the sheet holding the weight grid in every edition of
// the workbook. Translated sheets may exist alongside; only this one is read.
const weightSheetName = "Pesos"

// ReadWeightGridXLSX parses the weight matrix from an XLSX workbook in grid
// form: solutions as rows, indicator ids as columns. Layout:
//
//	ID | SbN | <indicator id> | <indicator id> | ...
//
// The SbN column carries display text and is skipped; ids are the join keys.
// Empty cells mean weight 0 and produce no triple.
func ReadWeightGridXLSX(path string) ([]WeightRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s workbook: %w", WeightTable, err)
	}
	defer func() { _ = f.Close() }()

	grid, err := f.GetRows(weightSheetName)
	if err != nil {
		return nil, contract.NewValidationError(WeightTable, "workbook has no %q sheet: %v", weightSheetName, err)
	}
	if len(grid) == 0 {
		return nil, contract.NewValidationError(WeightTable, "sheet %q is empty", weightSheetName)
	}

	header := grid[0]
	if len(header) < 3 || !strings.EqualFold(strings.TrimSpace(header[0]), "ID") {
		return nil, contract.NewValidationError(WeightTable, "grid header must start with ID, SbN followed by indicator id columns")
	}

	// Column index -> indicator id, from the third column on.
	indicatorIDs := make([]int, 0, len(header)-2)
	for c := 2; c < len(header); c++ {
		cell := strings.TrimSpace(header[c])
		if cell == "" {
			break // trailing blank columns
		}
		id, err := parseInt(WeightTable, 0, "indicator column", cell)
		if err != nil {
			return nil, err
		}
		indicatorIDs = append(indicatorIDs, id)
	}
	if len(indicatorIDs) == 0 {
		return nil, contract.NewValidationError(WeightTable, "grid has no indicator columns")
	}

	var rows []WeightRow
	for r := 1; r < len(grid); r++ {
		rec := grid[r]
		if len(rec) == 0 || strings.TrimSpace(rec[0]) == "" {
			continue // trailing blank rows
		}
		sbnID, err := parseInt(WeightTable, r, "ID", rec[0])
		if err != nil {
			return nil, err
		}
		for c, indID := range indicatorIDs {
			col := c + 2
			if col >= len(rec) {
				break
			}
			cell := strings.TrimSpace(rec[col])
			if cell == "" {
				continue
			}
			weight, err := parseFloat(WeightTable, r, "weight cell", cell)
			if err != nil {
				return nil, err
			}
			if weight == 0 {
				continue
			}
			rows = append(rows, WeightRow{SbNID: sbnID, IndicatorID: indID, Weight: weight})
		}
	}
	return rows, nil
}
