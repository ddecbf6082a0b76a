package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/core/refset"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/contract"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/tableio"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/schema"
)

// Engine fixture: two solutions under one subcategory chain. Solution 1
// weighs indicator 10 at 0.6 over [0,100] and indicator 11 at 0.4 over
// [0,10]; solution 2 weighs indicator 12 fully over [0,50]. Both barriers
// link to the shared subcategory (synthetic node 4).
func engineRefSet(t *testing.T) *refset.RefSet {
	t.Helper()
	rs, err := refset.NewRefSet(
		[]tableio.TaxonomyRow{
			{ID: 1, Category: "Proteccion", Subcategory: "Bosque ripario", Activity: "Cercado", Objective: "Reducir sedimentos"},
			{ID: 2, Category: "Proteccion", Subcategory: "Bosque ripario", Activity: "Cercado", Objective: "Mejorar caudal base"},
		},
		[]tableio.IndicatorRow{
			{ID: 10, SbNID: 1, Name: "Cobertura vegetal", Unit: "%", TargetMin: 0, TargetMax: 100},
			{ID: 11, SbNID: 1, Name: "Carga de sedimentos", Unit: "t/ha", TargetMin: 0, TargetMax: 10},
			{ID: 12, SbNID: 2, Name: "Caudal base", Unit: "l/s", TargetMin: 0, TargetMax: 50},
		},
		[]tableio.WeightRow{
			{SbNID: 1, IndicatorID: 10, Weight: 0.6},
			{SbNID: 1, IndicatorID: 11, Weight: 0.4},
			{SbNID: 2, IndicatorID: 12, Weight: 1.0},
		},
		[]tableio.BarrierRow{
			{Code: "GB0101", Description: "Tenencia incierta", SubcategoryID: 4, Group: "Gobernanza", GroupCode: "G01", Severity: 0.5},
			{Code: "GB0201", Description: "Financiamiento escaso", SubcategoryID: 4, Group: "Financiero", GroupCode: "G02", Severity: 0.8},
		},
	)
	require.NoError(t, err)
	return rs
}

func basinInput(measurements map[int]float64) *schema.AssessmentInput {
	return &schema.AssessmentInput{BasinID: "rio-claro", Measurements: measurements}
}

func scoreByID(scores []schema.PriorityScore, sbnID int) schema.PriorityScore {
	for _, s := range scores {
		if s.SbNID == sbnID {
			return s
		}
	}
	return schema.PriorityScore{}
}

// TestComputeWeightedComposite tests the weighted-sum scoring path without
// barriers: 0.6*0.8 + 0.4*0.5 = 0.68.
func TestComputeWeightedComposite(t *testing.T) {
	eng := NewEngine(engineRefSet(t))
	scores, err := eng.Compute(context.Background(), basinInput(map[int]float64{10: 80, 11: 5, 12: 10}), nil)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, schema.EngineCompleted, eng.State())

	s1 := scoreByID(scores, 1)
	assert.InDelta(t, 0.68, s1.CompositeIndicatorScore, 1e-9)
	assert.Zero(t, s1.BarrierPenalty)
	assert.InDelta(t, 0.68, s1.FinalScore, 1e-9)
	assert.InDelta(t, 0.48, s1.Breakdown[10], 1e-9)
	assert.InDelta(t, 0.20, s1.Breakdown[11], 1e-9)

	s2 := scoreByID(scores, 2)
	assert.InDelta(t, 0.2, s2.FinalScore, 1e-9)

	// Solution 1 outranks solution 2.
	assert.Equal(t, 1, s1.Rank)
	assert.Equal(t, 2, s2.Rank)
	assert.Equal(t, 1, scores[0].SbNID)
}

// TestComputeBarrierPenalty tests the multiplicative gate: a linked barrier
// of severity 0.5 halves 0.68 to 0.34.
func TestComputeBarrierPenalty(t *testing.T) {
	eng := NewEngine(engineRefSet(t))
	scores, err := eng.Compute(context.Background(), basinInput(map[int]float64{10: 80, 11: 5, 12: 10}), []string{"GB0101"})
	require.NoError(t, err)

	s1 := scoreByID(scores, 1)
	assert.InDelta(t, 0.68, s1.CompositeIndicatorScore, 1e-9)
	assert.InDelta(t, 0.5, s1.BarrierPenalty, 1e-9)
	assert.InDelta(t, 0.34, s1.FinalScore, 1e-9)

	// Multiple selected barriers average their severities.
	scores, err = NewEngine(engineRefSet(t)).Compute(context.Background(),
		basinInput(map[int]float64{10: 80, 11: 5, 12: 10}), []string{"GB0101", "GB0201"})
	require.NoError(t, err)
	s1 = scoreByID(scores, 1)
	assert.InDelta(t, 0.65, s1.BarrierPenalty, 1e-9)
	assert.InDelta(t, 0.68*0.35, s1.FinalScore, 1e-9)
}

// TestComputeMissingMeasurement tests that unmeasured indicators contribute
// zero rather than erroring.
func TestComputeMissingMeasurement(t *testing.T) {
	eng := NewEngine(engineRefSet(t))
	scores, err := eng.Compute(context.Background(), basinInput(map[int]float64{10: 80}), nil)
	require.NoError(t, err)

	s1 := scoreByID(scores, 1)
	assert.InDelta(t, 0.48, s1.CompositeIndicatorScore, 1e-9)
	assert.Zero(t, s1.Breakdown[11])

	// Solution 2 has no measurements at all and bottoms out at zero.
	s2 := scoreByID(scores, 2)
	assert.Zero(t, s2.FinalScore)
	assert.Equal(t, 2, s2.Rank)
}

// TestComputePreconditions tests fail-fast input rejection and the failed
// state.
func TestComputePreconditions(t *testing.T) {
	eng := NewEngine(engineRefSet(t))
	_, err := eng.Compute(context.Background(), basinInput(nil), nil)
	var pErr *contract.PreconditionError
	require.True(t, errors.As(err, &pErr))
	assert.Contains(t, pErr.Error(), "no measurements")
	assert.Equal(t, schema.EngineFailed, eng.State())

	eng = NewEngine(engineRefSet(t))
	_, err = eng.Compute(context.Background(), nil, nil)
	require.True(t, errors.As(err, &pErr))

	eng = NewEngine(engineRefSet(t))
	_, err = eng.Compute(context.Background(), basinInput(map[int]float64{10: 80}), []string{"GB9999"})
	require.True(t, errors.As(err, &pErr))
	assert.Contains(t, pErr.Error(), `unknown barrier code "GB9999"`)
	assert.Equal(t, schema.EngineFailed, eng.State())
}

// TestComputeDisabledGroups tests that barriers in disabled groups never
// penalize.
func TestComputeDisabledGroups(t *testing.T) {
	input := basinInput(map[int]float64{10: 80, 11: 5, 12: 10})
	input.DisabledGroups = map[string]struct{}{"G01": {}}

	eng := NewEngine(engineRefSet(t))
	scores, err := eng.Compute(context.Background(), input, []string{"GB0101", "GB0201"})
	require.NoError(t, err)

	// Only the G02 barrier survives the gate.
	s1 := scoreByID(scores, 1)
	assert.InDelta(t, 0.8, s1.BarrierPenalty, 1e-9)
}

// TestComputeIdempotent tests that repeated passes over the same inputs
// produce identical output sequences.
func TestComputeIdempotent(t *testing.T) {
	eng := NewEngine(engineRefSet(t))
	input := basinInput(map[int]float64{10: 80, 11: 5, 12: 10})

	first, err := eng.Compute(context.Background(), input, []string{"GB0101"})
	require.NoError(t, err)
	second, err := eng.Compute(context.Background(), input, []string{"GB0101"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// TestComputeCancellation tests cooperative cancellation between solutions.
func TestComputeCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng := NewEngine(engineRefSet(t))
	_, err := eng.Compute(ctx, basinInput(map[int]float64{10: 80}), nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, schema.EngineFailed, eng.State())
}

// TestComputeOutOfRangeClamping tests measurements outside the target range.
func TestComputeOutOfRangeClamping(t *testing.T) {
	eng := NewEngine(engineRefSet(t))
	scores, err := eng.Compute(context.Background(), basinInput(map[int]float64{10: 500, 11: -3, 12: 10}), nil)
	require.NoError(t, err)

	// Indicator 10 clamps to 1.0, indicator 11 to 0.0.
	s1 := scoreByID(scores, 1)
	assert.InDelta(t, 0.6, s1.CompositeIndicatorScore, 1e-9)
}

// TestEngineInitialState tests the lifecycle entry point.
func TestEngineInitialState(t *testing.T) {
	eng := NewEngine(engineRefSet(t))
	assert.Equal(t, schema.EngineLoaded, eng.State())
	assert.NotNil(t, eng.RefSet())
}
