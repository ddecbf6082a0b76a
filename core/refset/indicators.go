package refset

import (
	"github.com/N4W-Facility/Toolkit-SbN-CAF/core/algo"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/contract"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/tableio"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/schema"
)

// IndicatorCatalog holds the validated per-solution indicators and their
// target ranges. Immutable after load.
type IndicatorCatalog struct {
	byID   map[int]schema.Indicator
	bySbN  map[int][]schema.Indicator // row order preserved per solution
	sbnIDs []int                      // solutions with indicators, in first-seen order
}

// LoadIndicators builds the catalog from indicator rows. Rows are validated
// in isolation here; the referential check against the taxonomy happens in
// NewRefSet.
func LoadIndicators(rows []tableio.IndicatorRow) (*IndicatorCatalog, error) {
	cat := &IndicatorCatalog{
		byID:  make(map[int]schema.Indicator, len(rows)),
		bySbN: make(map[int][]schema.Indicator),
	}
	for i, row := range rows {
		rowNum := i + 1
		if _, dup := cat.byID[row.ID]; dup {
			return nil, contract.NewRowValidationError(tableio.IndicatorTable, rowNum, "duplicate indicator id %d", row.ID)
		}
		if row.TargetMin > row.TargetMax {
			return nil, contract.NewRowValidationError(tableio.IndicatorTable, rowNum,
				"target_min %.4f exceeds target_max %.4f", row.TargetMin, row.TargetMax)
		}
		ind := schema.Indicator{
			ID:        row.ID,
			SbNID:     row.SbNID,
			Name:      row.Name,
			Unit:      row.Unit,
			TargetMin: row.TargetMin,
			TargetMax: row.TargetMax,
		}
		cat.byID[ind.ID] = ind
		if _, seen := cat.bySbN[ind.SbNID]; !seen {
			cat.sbnIDs = append(cat.sbnIDs, ind.SbNID)
		}
		cat.bySbN[ind.SbNID] = append(cat.bySbN[ind.SbNID], ind)
	}
	return cat, nil
}

// IndicatorsFor returns the ordered indicators of a solution. A solution
// without indicators yields an empty slice, not an error.
func (c *IndicatorCatalog) IndicatorsFor(sbnID int) []schema.Indicator {
	return append([]schema.Indicator(nil), c.bySbN[sbnID]...)
}

// Indicator returns the indicator with the given id.
func (c *IndicatorCatalog) Indicator(id int) (schema.Indicator, error) {
	ind, ok := c.byID[id]
	if !ok {
		return schema.Indicator{}, contract.NewNotFoundError("indicator", id)
	}
	return ind, nil
}

// Normalize maps a raw measurement into [0,1] against the indicator's target
// range via linear min-max scaling.
func (c *IndicatorCatalog) Normalize(indicatorID int, raw float64) (float64, error) {
	ind, ok := c.byID[indicatorID]
	if !ok {
		return 0, contract.NewNotFoundError("indicator", indicatorID)
	}
	return algo.Normalize(ind.TargetMin, ind.TargetMax, raw), nil
}

// SolutionIDs returns the solutions that define at least one indicator, in
// table order.
func (c *IndicatorCatalog) SolutionIDs() []int {
	return append([]int(nil), c.sbnIDs...)
}

// Len returns the number of indicators in the catalog.
func (c *IndicatorCatalog) Len() int {
	return len(c.byID)
}
