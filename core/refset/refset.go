// Package refset loads and validates the four reference tables behind the
// prioritization engine: the solution taxonomy, the indicator catalog, the
// weight matrix and the barrier registry. All components are immutable after
// load and may be shared read-only across concurrent compute calls.
package refset

import (
	"fmt"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/contract"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/tableio"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/schema"
)

// RefSet bundles the validated reference tables into the immutable context
// object the engine computes against. Construction performs the cross-table
// referential checks the individual loaders cannot do in isolation.
type RefSet struct {
	Taxonomy   *TaxonomyIndex
	Indicators *IndicatorCatalog
	Weights    *WeightMatrix
	Barriers   *BarrierRegistry
}

// NewRefSet validates and assembles the four reference tables. Any
// validation failure aborts assembly; a RefSet is never partially built.
func NewRefSet(taxRows []tableio.TaxonomyRow, indRows []tableio.IndicatorRow, wRows []tableio.WeightRow, bRows []tableio.BarrierRow) (*RefSet, error) {
	taxonomy, err := LoadTaxonomy(taxRows)
	if err != nil {
		return nil, err
	}
	indicators, err := LoadIndicators(indRows)
	if err != nil {
		return nil, err
	}
	weights, err := LoadWeights(wRows, indicators)
	if err != nil {
		return nil, err
	}
	barriers, err := LoadBarriers(bRows)
	if err != nil {
		return nil, err
	}

	rs := &RefSet{Taxonomy: taxonomy, Indicators: indicators, Weights: weights, Barriers: barriers}
	if err := rs.crossValidate(); err != nil {
		return nil, err
	}
	return rs, nil
}

// crossValidate runs the referential checks between tables: indicators must
// hang off Objective nodes and barriers off Subcategory nodes.
func (rs *RefSet) crossValidate() error {
	for _, sbnID := range rs.Indicators.SolutionIDs() {
		node, err := rs.Taxonomy.Node(sbnID)
		if err != nil {
			return contract.NewValidationError(tableio.IndicatorTable,
				"solution %d is not present in the taxonomy", sbnID)
		}
		if !node.IsSolution() {
			return contract.NewValidationError(tableio.IndicatorTable,
				"id %d is a %s node, indicators may only reference solutions", sbnID, node.Level)
		}
	}

	for _, groupCode := range rs.Barriers.Groups() {
		barriers, err := rs.Barriers.BarriersForGroup(groupCode)
		if err != nil {
			return err
		}
		for _, b := range barriers {
			node, err := rs.Taxonomy.Node(b.SubcategoryID)
			if err != nil {
				return contract.NewValidationError(tableio.BarrierTable,
					"barrier %s references unknown subcategory %d", b.Code, b.SubcategoryID)
			}
			if node.Level != schema.SubcategoryLevel {
				return contract.NewValidationError(tableio.BarrierTable,
					"barrier %s references %s node %d, expected a subcategory", b.Code, node.Level, b.SubcategoryID)
			}
		}
	}

	return nil
}

// CompareEditions verifies that two language editions agree on every numeric
// id and code. Ids are the sole cross-language join keys; any drift between
// editions corrupts every downstream join.
func CompareEditions(a, b *RefSet) error {
	aSol, bSol := a.Taxonomy.Solutions(), b.Taxonomy.Solutions()
	if len(aSol) != len(bSol) {
		return fmt.Errorf("editions disagree on solution count: %d vs %d", len(aSol), len(bSol))
	}
	for i := range aSol {
		if aSol[i] != bSol[i] {
			return fmt.Errorf("editions disagree on solution ids at position %d: %d vs %d", i, aSol[i], bSol[i])
		}
	}

	for _, sbnID := range aSol {
		aInd, bInd := a.Indicators.IndicatorsFor(sbnID), b.Indicators.IndicatorsFor(sbnID)
		if len(aInd) != len(bInd) {
			return fmt.Errorf("editions disagree on indicator count for solution %d: %d vs %d", sbnID, len(aInd), len(bInd))
		}
		for i := range aInd {
			if aInd[i].ID != bInd[i].ID {
				return fmt.Errorf("editions disagree on indicator ids for solution %d: %d vs %d", sbnID, aInd[i].ID, bInd[i].ID)
			}
			if aInd[i].TargetMin != bInd[i].TargetMin || aInd[i].TargetMax != bInd[i].TargetMax {
				return fmt.Errorf("editions disagree on target range for indicator %d", aInd[i].ID)
			}
			if a.Weights.WeightOf(sbnID, aInd[i].ID) != b.Weights.WeightOf(sbnID, bInd[i].ID) {
				return fmt.Errorf("editions disagree on weight for solution %d, indicator %d", sbnID, aInd[i].ID)
			}
		}
	}

	aGroups, bGroups := a.Barriers.Groups(), b.Barriers.Groups()
	if len(aGroups) != len(bGroups) {
		return fmt.Errorf("editions disagree on barrier group count: %d vs %d", len(aGroups), len(bGroups))
	}
	for i, groupCode := range aGroups {
		if groupCode != bGroups[i] {
			return fmt.Errorf("editions disagree on barrier groups at position %d: %s vs %s", i, groupCode, bGroups[i])
		}
		aB, _ := a.Barriers.BarriersForGroup(groupCode)
		bB, err := b.Barriers.BarriersForGroup(groupCode)
		if err != nil {
			return fmt.Errorf("editions disagree on barrier group %s: %w", groupCode, err)
		}
		if len(aB) != len(bB) {
			return fmt.Errorf("editions disagree on barrier count in group %s: %d vs %d", groupCode, len(aB), len(bB))
		}
		for j := range aB {
			if aB[j].Code != bB[j].Code {
				return fmt.Errorf("editions disagree on barrier codes in group %s: %s vs %s", groupCode, aB[j].Code, bB[j].Code)
			}
			if aB[j].Severity != bB[j].Severity || aB[j].SubcategoryID != bB[j].SubcategoryID {
				return fmt.Errorf("editions disagree on barrier %s attributes", aB[j].Code)
			}
		}
	}

	return nil
}
