package refset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/contract"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/tableio"
)

// TestLoadIndicators tests catalog construction and lookups.
func TestLoadIndicators(t *testing.T) {
	cat, err := LoadIndicators(fixtureIndicatorRows())
	require.NoError(t, err)
	assert.Equal(t, 3, cat.Len())
	assert.Equal(t, []int{1, 2}, cat.SolutionIDs())

	ind, err := cat.Indicator(11)
	require.NoError(t, err)
	assert.Equal(t, "Carga de sedimentos", ind.Name)
	assert.InDelta(t, 10.0, ind.TargetMax, 1e-9)

	_, err = cat.Indicator(99)
	var nfErr *contract.NotFoundError
	require.True(t, errors.As(err, &nfErr))
}

// TestLoadIndicatorsErrors tests the rejection paths.
func TestLoadIndicatorsErrors(t *testing.T) {
	dup := append(fixtureIndicatorRows(), tableio.IndicatorRow{ID: 10, SbNID: 2, TargetMin: 0, TargetMax: 1})
	_, err := LoadIndicators(dup)
	var vErr *contract.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, tableio.IndicatorTable, vErr.Table)
	assert.Equal(t, 4, vErr.Row)
	assert.Contains(t, vErr.Error(), "duplicate indicator id 10")

	inverted := []tableio.IndicatorRow{{ID: 20, SbNID: 1, TargetMin: 5, TargetMax: 2}}
	_, err = LoadIndicators(inverted)
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Error(), "exceeds target_max")
}

// TestIndicatorsFor tests per-solution listing returns a copy.
func TestIndicatorsFor(t *testing.T) {
	cat, err := LoadIndicators(fixtureIndicatorRows())
	require.NoError(t, err)

	first := cat.IndicatorsFor(1)
	require.Len(t, first, 2)
	assert.Equal(t, 10, first[0].ID)
	assert.Equal(t, 11, first[1].ID)

	first[0].Name = "mutated"
	again := cat.IndicatorsFor(1)
	assert.Equal(t, "Cobertura vegetal", again[0].Name)

	assert.Empty(t, cat.IndicatorsFor(99))
}

// TestCatalogNormalize tests min-max scaling through the catalog, including
// the degenerate-range step rule.
func TestCatalogNormalize(t *testing.T) {
	rows := append(fixtureIndicatorRows(), tableio.IndicatorRow{ID: 15, SbNID: 2, TargetMin: 50, TargetMax: 50})
	cat, err := LoadIndicators(rows)
	require.NoError(t, err)

	v, err := cat.Normalize(10, 80)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, v, 1e-9)

	v, err = cat.Normalize(10, 150)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-9)

	// Degenerate range: at or above the point target scores full credit.
	v, err = cat.Normalize(15, 50)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-9)
	v, err = cat.Normalize(15, 49.9)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, v, 1e-9)

	_, err = cat.Normalize(99, 1)
	var nfErr *contract.NotFoundError
	require.True(t, errors.As(err, &nfErr))
}
