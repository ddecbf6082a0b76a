package core

import (
	"context"
	"sync"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/core/algo"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/core/refset"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/contract"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/schema"
)

// Engine is the prioritization engine: a synchronous batch computation over
// an immutable RefSet plus one per-call assessment. Compute is a pure
// function of its inputs; identical inputs yield identical output sequences
// including rank order.
type Engine struct {
	refs *refset.RefSet

	mu    sync.Mutex
	state schema.EngineState
}

// NewEngine wraps a validated RefSet. The engine reaches the loaded state
// immediately because RefSet construction already ran all table validation.
func NewEngine(refs *refset.RefSet) *Engine {
	return &Engine{refs: refs, state: schema.EngineLoaded}
}

// State returns the engine lifecycle state.
func (e *Engine) State() schema.EngineState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) setState(s schema.EngineState) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
}

// RefSet returns the reference tables the engine computes against.
func (e *Engine) RefSet() *refset.RefSet {
	return e.refs
}

// Compute scores and ranks every solution that defines at least one
// indicator. Missing measurements contribute zero (unmeasured means no
// credit, never an error); an empty assessment or an unknown barrier code is
// a precondition failure surfaced before any scoring starts. Cancellation is
// cooperative and checked only between solutions: each solution's
// aggregation is cheap and atomic, so partial per-solution results are never
// observable.
func (e *Engine) Compute(ctx context.Context, input *schema.AssessmentInput, selectedBarrierCodes []string) ([]schema.PriorityScore, error) {
	if input == nil || len(input.Measurements) == 0 {
		e.setState(schema.EngineFailed)
		return nil, contract.NewPreconditionError("assessment has no measurements for basin %q", basinID(input))
	}
	e.setState(schema.EngineReady)

	// Resolve the selection up front so a typo'd code fails fast with the
	// reference tables untouched.
	selected := make([]schema.Barrier, 0, len(selectedBarrierCodes))
	for _, code := range selectedBarrierCodes {
		b, err := e.refs.Barriers.Barrier(code)
		if err != nil {
			e.setState(schema.EngineFailed)
			return nil, contract.NewPreconditionError("unknown barrier code %q", code)
		}
		if input.GroupDisabled(b.GroupCode) {
			continue // disabled groups never penalize
		}
		selected = append(selected, b)
	}

	e.setState(schema.EngineComputing)

	var scores []schema.PriorityScore
	for _, sbnID := range e.refs.Taxonomy.Solutions() {
		select {
		case <-ctx.Done():
			e.setState(schema.EngineFailed)
			return nil, ctx.Err()
		default:
		}

		indicators := e.refs.Indicators.IndicatorsFor(sbnID)
		if len(indicators) == 0 {
			continue
		}

		score, err := e.scoreSolution(sbnID, indicators, input, selected)
		if err != nil {
			e.setState(schema.EngineFailed)
			return nil, err
		}
		scores = append(scores, score)
	}

	ranked := algo.RankScores(scores, len(scores))
	e.setState(schema.EngineCompleted)
	return ranked, nil
}

// scoreSolution aggregates one solution: weighted sum of normalized
// measurements, then the multiplicative barrier gate.
func (e *Engine) scoreSolution(sbnID int, indicators []schema.Indicator, input *schema.AssessmentInput, selected []schema.Barrier) (schema.PriorityScore, error) {
	breakdown := make(map[int]float64, len(indicators))
	var composite float64
	for _, ind := range indicators {
		weight := e.refs.Weights.WeightOf(sbnID, ind.ID)
		if weight == 0 {
			continue
		}
		raw, measured := input.Measurements[ind.ID]
		var normalized float64
		if measured {
			normalized = algo.Normalize(ind.TargetMin, ind.TargetMax, raw)
		}
		contribution := normalized * weight
		breakdown[ind.ID] = contribution
		composite += contribution
	}
	composite = algo.Clamp01(composite)

	penalty, err := e.penaltyFor(sbnID, selected)
	if err != nil {
		return schema.PriorityScore{}, err
	}

	final := algo.FinalScore(composite, penalty)
	return schema.PriorityScore{
		SbNID:                   sbnID,
		CompositeIndicatorScore: composite,
		BarrierPenalty:          penalty,
		FinalScore:              final,
		Label:                   contract.GetPlainLabel(final),
		Breakdown:               breakdown,
	}, nil
}

// penaltyFor computes the mean severity of the selected barriers that are
// taxonomically linked to the solution, i.e. whose subcategory lies on the
// solution's ancestor chain. Solutions with no linked barriers get 0.0.
func (e *Engine) penaltyFor(sbnID int, selected []schema.Barrier) (float64, error) {
	if len(selected) == 0 {
		return 0, nil
	}
	ancestors, err := e.refs.Taxonomy.AncestorsOf(sbnID)
	if err != nil {
		return 0, err
	}
	onChain := make(map[int]struct{}, len(ancestors))
	for _, node := range ancestors {
		onChain[node.ID] = struct{}{}
	}

	var severities []float64
	for _, b := range selected {
		if _, linked := onChain[b.SubcategoryID]; linked {
			severities = append(severities, b.Severity)
		}
	}
	return algo.MeanSeverity(severities), nil
}

func basinID(input *schema.AssessmentInput) string {
	if input == nil {
		return ""
	}
	return input.BasinID
}
