package refset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/contract"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/tableio"
)

// TestLoadBarriers tests registry construction and grouping.
func TestLoadBarriers(t *testing.T) {
	reg, err := LoadBarriers(fixtureBarrierRows())
	require.NoError(t, err)

	assert.Equal(t, 3, reg.Len())
	assert.Equal(t, []string{"G01", "G02"}, reg.Groups())

	b, err := reg.Barrier("GB0102")
	require.NoError(t, err)
	assert.InDelta(t, 0.3, b.Severity, 1e-9)
	assert.Equal(t, 4, b.SubcategoryID)

	_, err = reg.Barrier("GB9999")
	var nfErr *contract.NotFoundError
	require.True(t, errors.As(err, &nfErr))

	group, err := reg.BarriersForGroup("G01")
	require.NoError(t, err)
	require.Len(t, group, 2)
	assert.Equal(t, "GB0101", group[0].Code)
	assert.Equal(t, "GB0102", group[1].Code)

	_, err = reg.BarriersForGroup("G99")
	require.True(t, errors.As(err, &nfErr))
	assert.Contains(t, err.Error(), "barrier group")
}

// TestLoadBarriersErrors tests the rejection paths.
func TestLoadBarriersErrors(t *testing.T) {
	tests := []struct {
		name string
		row  tableio.BarrierRow
		want string
	}{
		{
			name: "malformed code",
			row:  tableio.BarrierRow{Code: "XB0101", SubcategoryID: 4, GroupCode: "G01", Severity: 0.5},
			want: "malformed barrier code",
		},
		{
			name: "duplicate code",
			row:  tableio.BarrierRow{Code: "GB0101", SubcategoryID: 4, GroupCode: "G01", Severity: 0.5},
			want: "duplicate barrier code",
		},
		{
			name: "severity above one",
			row:  tableio.BarrierRow{Code: "GB0301", SubcategoryID: 4, GroupCode: "G03", Severity: 1.2},
			want: "outside [0,1]",
		},
		{
			name: "negative severity",
			row:  tableio.BarrierRow{Code: "GB0301", SubcategoryID: 4, GroupCode: "G03", Severity: -0.1},
			want: "outside [0,1]",
		},
		{
			name: "missing group code",
			row:  tableio.BarrierRow{Code: "GB0301", SubcategoryID: 4, Severity: 0.5},
			want: "missing group code",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rows := append(fixtureBarrierRows(), tc.row)
			_, err := LoadBarriers(rows)
			var vErr *contract.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tableio.BarrierTable, vErr.Table)
			assert.Equal(t, 4, vErr.Row)
			assert.Contains(t, vErr.Error(), tc.want)
		})
	}
}

// TestBarrierVariantCodes tests that the optional variant suffix is accepted.
func TestBarrierVariantCodes(t *testing.T) {
	rows := append(fixtureBarrierRows(), tableio.BarrierRow{
		Code: "GB0101a", Description: "Variante", SubcategoryID: 4, GroupCode: "G01", Severity: 0.4,
	})
	reg, err := LoadBarriers(rows)
	require.NoError(t, err)
	_, err = reg.Barrier("GB0101a")
	assert.NoError(t, err)
}

// TestPenalty tests mean-severity aggregation over selections.
func TestPenalty(t *testing.T) {
	reg, err := LoadBarriers(fixtureBarrierRows())
	require.NoError(t, err)

	p, err := reg.Penalty(nil)
	require.NoError(t, err)
	assert.Zero(t, p)

	p, err = reg.Penalty([]string{"GB0101"})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p, 1e-9)

	p, err = reg.Penalty([]string{"GB0101", "GB0102", "GB0201"})
	require.NoError(t, err)
	assert.InDelta(t, (0.5+0.3+0.8)/3, p, 1e-9)

	_, err = reg.Penalty([]string{"GB0101", "GB9999"})
	var vErr *contract.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Error(), `unknown barrier code "GB9999"`)
}
