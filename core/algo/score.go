// Package algo has the pure scoring math: normalization, weighted
// aggregation and deterministic ranking.
package algo

// Clamp01 bounds a value to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Normalize maps a raw measurement into [0,1] by linear min-max scaling
// against a target range. A degenerate range (max == min) becomes a step
// function: 1.0 at or above the target, 0.0 below it, which avoids the
// division by zero while preserving monotonicity.
func Normalize(targetMin, targetMax, raw float64) float64 {
	if targetMax == targetMin {
		if raw >= targetMin {
			return 1.0
		}
		return 0.0
	}
	return Clamp01((raw - targetMin) / (targetMax - targetMin))
}

// FinalScore combines a composite indicator score with a barrier penalty
// multiplicatively. A fully blocking penalty of 1.0 drives the result to
// zero regardless of indicator merit: infeasible implementation overrides
// technical merit.
func FinalScore(composite, penalty float64) float64 {
	return Clamp01(composite * (1.0 - Clamp01(penalty)))
}

// MeanSeverity returns the arithmetic mean of barrier severities, or 0.0
// for an empty set.
func MeanSeverity(severities []float64) float64 {
	if len(severities) == 0 {
		return 0
	}
	var sum float64
	for _, s := range severities {
		sum += s
	}
	return Clamp01(sum / float64(len(severities)))
}
