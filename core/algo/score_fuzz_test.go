package algo

import (
	"math"
	"testing"
)

// FuzzNormalize fuzzes Normalize with arbitrary ranges and raw values.
func FuzzNormalize(f *testing.F) {
	seeds := []struct {
		min, max, raw float64
	}{
		{0, 100, 50},
		{0, 100, -10},
		{0, 100, 200},
		{50, 50, 50},
		{50, 50, 40},
		{-10, 10, 0},
		{0, 0, 0},
	}
	for _, seed := range seeds {
		f.Add(seed.min, seed.max, seed.raw)
	}

	f.Fuzz(func(t *testing.T, targetMin, targetMax, raw float64) {
		got := Normalize(targetMin, targetMax, raw)
		if math.IsNaN(got) {
			t.Fatalf("Normalize(%v, %v, %v) = NaN", targetMin, targetMax, raw)
		}
		if got < 0 || got > 1 {
			t.Fatalf("Normalize(%v, %v, %v) = %v, outside [0,1]", targetMin, targetMax, raw, got)
		}
	})
}

// FuzzFinalScore fuzzes the barrier gate for range violations.
func FuzzFinalScore(f *testing.F) {
	f.Add(0.68, 0.5)
	f.Add(0.0, 0.0)
	f.Add(1.0, 1.0)
	f.Add(0.3, 0.9)

	f.Fuzz(func(t *testing.T, composite, penalty float64) {
		if math.IsNaN(composite) || math.IsNaN(penalty) {
			t.Skip()
		}
		got := FinalScore(composite, penalty)
		if math.IsNaN(got) || got < 0 || got > 1 {
			t.Fatalf("FinalScore(%v, %v) = %v, outside [0,1]", composite, penalty, got)
		}
	})
}
