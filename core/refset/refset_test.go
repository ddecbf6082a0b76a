package refset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/contract"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/tableio"
)

// Fixture rows shared across the package tests. Two solutions under one
// category/subcategory/activity chain; synthetic node ids start at 3.
func fixtureTaxonomyRows() []tableio.TaxonomyRow {
	return []tableio.TaxonomyRow{
		{ID: 1, Category: "Proteccion", Subcategory: "Bosque ripario", Activity: "Cercado", Objective: "Reducir sedimentos"},
		{ID: 2, Category: "Proteccion", Subcategory: "Bosque ripario", Activity: "Cercado", Objective: "Mejorar caudal base"},
	}
}

func fixtureIndicatorRows() []tableio.IndicatorRow {
	return []tableio.IndicatorRow{
		{ID: 10, SbNID: 1, Name: "Cobertura vegetal", Unit: "%", TargetMin: 0, TargetMax: 100},
		{ID: 11, SbNID: 1, Name: "Carga de sedimentos", Unit: "t/ha", TargetMin: 0, TargetMax: 10},
		{ID: 12, SbNID: 2, Name: "Caudal base", Unit: "l/s", TargetMin: 0, TargetMax: 50},
	}
}

func fixtureWeightRows() []tableio.WeightRow {
	return []tableio.WeightRow{
		{SbNID: 1, IndicatorID: 10, Weight: 0.6},
		{SbNID: 1, IndicatorID: 11, Weight: 0.4},
		{SbNID: 2, IndicatorID: 12, Weight: 1.0},
	}
}

func fixtureBarrierRows() []tableio.BarrierRow {
	return []tableio.BarrierRow{
		{Code: "GB0101", Description: "Tenencia incierta", SubcategoryID: 4, Group: "Gobernanza", GroupCode: "G01", Severity: 0.5},
		{Code: "GB0102", Description: "Normativa debil", SubcategoryID: 4, Group: "Gobernanza", GroupCode: "G01", Severity: 0.3},
		{Code: "GB0201", Description: "Financiamiento escaso", SubcategoryID: 4, Group: "Financiero", GroupCode: "G02", Severity: 0.8},
	}
}

func fixtureRefSet(t *testing.T) *RefSet {
	t.Helper()
	rs, err := NewRefSet(fixtureTaxonomyRows(), fixtureIndicatorRows(), fixtureWeightRows(), fixtureBarrierRows())
	require.NoError(t, err)
	return rs
}

// TestNewRefSet tests that a consistent fixture assembles fully.
func TestNewRefSet(t *testing.T) {
	rs := fixtureRefSet(t)
	assert.Equal(t, 6, rs.Taxonomy.Len())
	assert.Equal(t, 3, rs.Indicators.Len())
	assert.Equal(t, 2, rs.Weights.Len())
	assert.Equal(t, 3, rs.Barriers.Len())
}

// TestCrossValidateIndicatorSolution tests that indicators must reference
// Objective nodes.
func TestCrossValidateIndicatorSolution(t *testing.T) {
	// Indicator hung off synthetic subcategory node 4.
	indRows := append(fixtureIndicatorRows(), tableio.IndicatorRow{ID: 13, SbNID: 4, TargetMin: 0, TargetMax: 1})

	_, err := NewRefSet(fixtureTaxonomyRows(), indRows, fixtureWeightRows(), fixtureBarrierRows())
	var vErr *contract.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, tableio.IndicatorTable, vErr.Table)
	assert.Contains(t, vErr.Error(), "indicators may only reference solutions")

	// Indicator referencing an id absent from the taxonomy.
	indRows = append(fixtureIndicatorRows(), tableio.IndicatorRow{ID: 14, SbNID: 99, TargetMin: 0, TargetMax: 1})
	_, err = NewRefSet(fixtureTaxonomyRows(), indRows, fixtureWeightRows(), fixtureBarrierRows())
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Error(), "not present in the taxonomy")
}

// TestCrossValidateBarrierSubcategory tests barrier linkage targets.
func TestCrossValidateBarrierSubcategory(t *testing.T) {
	// Barrier linked to an Objective node instead of a subcategory.
	bRows := fixtureBarrierRows()
	bRows[0].SubcategoryID = 1

	_, err := NewRefSet(fixtureTaxonomyRows(), fixtureIndicatorRows(), fixtureWeightRows(), bRows)
	var vErr *contract.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, tableio.BarrierTable, vErr.Table)
	assert.Contains(t, vErr.Error(), "expected a subcategory")

	bRows = fixtureBarrierRows()
	bRows[1].SubcategoryID = 77
	_, err = NewRefSet(fixtureTaxonomyRows(), fixtureIndicatorRows(), fixtureWeightRows(), bRows)
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Error(), "unknown subcategory 77")
}

// TestCompareEditions tests edition consistency checking.
func TestCompareEditions(t *testing.T) {
	es := fixtureRefSet(t)

	// A faithfully translated edition: labels differ, ids agree.
	enTax := fixtureTaxonomyRows()
	enTax[0].Objective = "Reduce sediment load"
	enTax[1].Objective = "Improve base flow"
	en, err := NewRefSet(enTax, fixtureIndicatorRows(), fixtureWeightRows(), fixtureBarrierRows())
	require.NoError(t, err)
	assert.NoError(t, CompareEditions(es, en))

	// An edition with a drifted target range.
	badInd := fixtureIndicatorRows()
	badInd[1].TargetMax = 20
	drifted, err := NewRefSet(fixtureTaxonomyRows(), badInd, fixtureWeightRows(), fixtureBarrierRows())
	require.NoError(t, err)
	err = CompareEditions(es, drifted)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target range")

	// An edition missing a barrier.
	shortB := fixtureBarrierRows()[:2]
	fewer, err := NewRefSet(fixtureTaxonomyRows(), fixtureIndicatorRows(), fixtureWeightRows(), shortB)
	require.NoError(t, err)
	err = CompareEditions(es, fewer)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "barrier group count")

	// An edition with a different severity.
	sevB := fixtureBarrierRows()
	sevB[0].Severity = 0.9
	hotter, err := NewRefSet(fixtureTaxonomyRows(), fixtureIndicatorRows(), fixtureWeightRows(), sevB)
	require.NoError(t, err)
	err = CompareEditions(es, hotter)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GB0101")
}

// TestRefSetNeverPartiallyBuilt tests that any table failure aborts assembly.
func TestRefSetNeverPartiallyBuilt(t *testing.T) {
	badW := fixtureWeightRows()
	badW[0].Weight = 0.5 // solution 1 now sums to 0.9

	rs, err := NewRefSet(fixtureTaxonomyRows(), fixtureIndicatorRows(), badW, fixtureBarrierRows())
	require.Error(t, err)
	assert.Nil(t, rs)
}
