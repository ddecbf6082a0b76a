package refset

import (
	"math"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/contract"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/tableio"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/schema"
)

// WeightMatrix holds the validated weighting coefficients, grouped by
// solution. Immutable after load.
type WeightMatrix struct {
	weights map[int]map[int]float64 // sbn id -> indicator id -> weight
}

// LoadWeights builds the matrix from weight triples and enforces the
// per-solution invariants: weights are non-negative, reference an indicator
// the catalog defines for that solution, and sum to 1.0 within
// schema.WeightSumTolerance. A violated sum is a configuration error caught
// here, never a runtime one.
func LoadWeights(rows []tableio.WeightRow, catalog *IndicatorCatalog) (*WeightMatrix, error) {
	m := &WeightMatrix{weights: make(map[int]map[int]float64)}

	for i, row := range rows {
		rowNum := i + 1
		if row.Weight < 0 {
			return nil, contract.NewRowValidationError(tableio.WeightTable, rowNum,
				"negative weight %.6f for solution %d", row.Weight, row.SbNID)
		}
		ind, err := catalog.Indicator(row.IndicatorID)
		if err != nil {
			return nil, contract.NewRowValidationError(tableio.WeightTable, rowNum,
				"indicator %d is not defined in the catalog", row.IndicatorID)
		}
		if ind.SbNID != row.SbNID {
			return nil, contract.NewRowValidationError(tableio.WeightTable, rowNum,
				"indicator %d belongs to solution %d, not %d", row.IndicatorID, ind.SbNID, row.SbNID)
		}
		group, ok := m.weights[row.SbNID]
		if !ok {
			group = make(map[int]float64)
			m.weights[row.SbNID] = group
		}
		if _, dup := group[row.IndicatorID]; dup {
			return nil, contract.NewRowValidationError(tableio.WeightTable, rowNum,
				"duplicate weight for solution %d, indicator %d", row.SbNID, row.IndicatorID)
		}
		group[row.IndicatorID] = row.Weight
	}

	for sbnID, group := range m.weights {
		var sum float64
		for _, w := range group {
			sum += w
		}
		if math.Abs(sum-1.0) > schema.WeightSumTolerance {
			return nil, contract.NewValidationError(tableio.WeightTable,
				"weights for solution %d sum to %.8f, expected 1.0 within %g", sbnID, sum, schema.WeightSumTolerance)
		}
	}

	return m, nil
}

// WeightOf returns the coefficient for a (solution, indicator) pair, or 0.0
// when absent. Absence is valid: not every indicator need carry weight.
func (m *WeightMatrix) WeightOf(sbnID, indicatorID int) float64 {
	return m.weights[sbnID][indicatorID]
}

// HasSolution reports whether any weights are defined for a solution.
func (m *WeightMatrix) HasSolution(sbnID int) bool {
	return len(m.weights[sbnID]) > 0
}

// Len returns the number of solutions carrying weights.
func (m *WeightMatrix) Len() int {
	return len(m.weights)
}
