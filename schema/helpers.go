package schema

// LevelAbove returns the level immediately above l, or empty string for
// CategoryLevel (which has no parent).
func LevelAbove(l Level) Level {
	for i, lv := range LevelOrder {
		if lv == l && i > 0 {
			return LevelOrder[i-1]
		}
	}
	return ""
}

// LevelBelow returns the level immediately below l, or empty string for
// ObjectiveLevel (which is the leaf).
func LevelBelow(l Level) Level {
	for i, lv := range LevelOrder {
		if lv == l && i < len(LevelOrder)-1 {
			return LevelOrder[i+1]
		}
	}
	return ""
}

// IsSolution reports whether a node represents a concrete solution.
func (n TaxonomyNode) IsSolution() bool {
	return n.Level == ObjectiveLevel
}

// CloneAssessment returns a deep copy of an assessment input so callers can
// derive variants without touching the original maps.
func CloneAssessment(a *AssessmentInput) *AssessmentInput {
	if a == nil {
		return nil
	}
	clone := &AssessmentInput{BasinID: a.BasinID}
	if a.Measurements != nil {
		clone.Measurements = make(map[int]float64, len(a.Measurements))
		for k, v := range a.Measurements {
			clone.Measurements[k] = v
		}
	}
	if a.DisabledGroups != nil {
		clone.DisabledGroups = make(map[string]struct{}, len(a.DisabledGroups))
		for k := range a.DisabledGroups {
			clone.DisabledGroups[k] = struct{}{}
		}
	}
	return clone
}
