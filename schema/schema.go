// Package schema has configs, models and global variables for all parts of the SbN toolkit.
package schema

// TaxonomyNode is a single node in the four-level solution taxonomy
// (Category > Subcategory > Activity > Objective). Objective-level nodes
// represent concrete Nature-based Solutions and carry the ids used as
// join keys by every other reference table.
type TaxonomyNode struct {
	ID       int    `json:"id"`        // Unique node id, stable across language editions
	Level    Level  `json:"level"`     // Position in the hierarchy
	Label    string `json:"label"`     // Display text, varies per language edition
	ParentID int    `json:"parent_id"` // Id of the node one level up; 0 for Category roots
}

// Indicator is a measurable criterion defined for one solution, with the
// reference target range used for min-max normalization.
type Indicator struct {
	ID        int     `json:"id"`
	SbNID     int     `json:"sbn_id"` // Objective node this indicator belongs to
	Name      string  `json:"name"`
	Unit      string  `json:"unit"`
	TargetMin float64 `json:"target_min"`
	TargetMax float64 `json:"target_max"` // TargetMin <= TargetMax, enforced at load
}

// WeightEntry is one coefficient of the weight matrix. For every solution
// the weights over its indicators sum to 1.0 within WeightSumTolerance.
type WeightEntry struct {
	SbNID       int     `json:"sbn_id"`
	IndicatorID int     `json:"indicator_id"`
	Weight      float64 `json:"weight"`
}

// Barrier is a coded obstacle to implementing solutions under one taxonomy
// subcategory. Codes are globally unique and identical across language
// editions; only Description is translated.
type Barrier struct {
	Code          string  `json:"code"` // Format GB\d{4}[a-z]?
	Description   string  `json:"description"`
	SubcategoryID int     `json:"subcategory_id"` // Subcategory node the barrier is linked to
	GroupCode     string  `json:"group_code"`
	Severity      float64 `json:"severity"` // In [0,1]
}

// AssessmentInput is the per-session input for one basin: raw indicator
// measurements plus optional barrier-group gating. It is created fresh per
// run and never mutated by the engine.
type AssessmentInput struct {
	BasinID        string              `json:"basin_id"`
	Measurements   map[int]float64     `json:"measurements"`    // indicator id -> raw value
	DisabledGroups map[string]struct{} `json:"disabled_groups"` // barrier group codes excluded from penalties
}

// GroupDisabled reports whether a barrier group has been switched off for
// this assessment.
func (a *AssessmentInput) GroupDisabled(groupCode string) bool {
	if a.DisabledGroups == nil {
		return false
	}
	_, ok := a.DisabledGroups[groupCode]
	return ok
}

// PriorityScore is the engine output for one solution. Values are immutable
// after a compute pass; a later pass produces a fresh slice.
type PriorityScore struct {
	SbNID                   int     `json:"sbn_id"`
	CompositeIndicatorScore float64 `json:"composite_indicator_score"` // Weighted sum of normalized measurements, in [0,1]
	BarrierPenalty          float64 `json:"barrier_penalty"`           // Mean severity of linked selected barriers, in [0,1]
	FinalScore              float64 `json:"final_score"`               // Composite * (1 - penalty), in [0,1]
	Rank                    int     `json:"rank"`                      // 1 = highest priority
	Label                   string  `json:"label"`                     // Display band derived from FinalScore, never used in logic

	// Breakdown holds the weighted contribution of each indicator for
	// explain mode, keyed by indicator id.
	Breakdown map[int]float64 `json:"breakdown,omitempty"`
}

// EditionSummary reports the validation outcome for one language edition of
// the reference tables.
type EditionSummary struct {
	Edition    Edition `json:"edition"`
	Taxonomy   int     `json:"taxonomy_rows"`
	Indicators int     `json:"indicator_rows"`
	Weights    int     `json:"weight_entries"`
	Barriers   int     `json:"barrier_rows"`
	Consistent bool    `json:"consistent"` // Structurally identical to the baseline edition
	Detail     string  `json:"detail,omitempty"`
}

// StoreStatus describes the state of a reference store backend.
type StoreStatus struct {
	Backend      StoreBackend   `json:"backend"`
	Connected    bool           `json:"connected"`
	Edition      string         `json:"edition"` // Language edition bootstrapped into the store, if any
	TableCounts  map[string]int `json:"table_counts"`
	SchemaDirty  bool           `json:"schema_dirty"`
	SchemaVer    int            `json:"schema_version"`
	SizeEstimate int64          `json:"size_estimate_bytes"`
}
