package schema

import "fmt"

// Reference table base names. Each language edition ships one file per table,
// suffixed with the edition code (e.g. Taxonomy_es.csv).
const (
	TaxonomyTableBase  = "Taxonomy"
	IndicatorTableBase = "Indicators"
	WeightTableBase    = "Weight_Matrix"
	BarrierTableBase   = "Barriers"
)

// TaxonomyFileName returns the CSV file name for a taxonomy edition.
func TaxonomyFileName(ed Edition) string {
	return fmt.Sprintf("%s_%s.csv", TaxonomyTableBase, ed)
}

// IndicatorFileName returns the CSV file name for an indicator edition.
func IndicatorFileName(ed Edition) string {
	return fmt.Sprintf("%s_%s.csv", IndicatorTableBase, ed)
}

// WeightFileName returns the XLSX file name for a weight matrix edition.
// Weights are numeric only, but editions still carry separate workbooks so
// the sheet labels can be translated.
func WeightFileName(ed Edition) string {
	return fmt.Sprintf("%s_%s.xlsx", WeightTableBase, ed)
}

// BarrierFileName returns the CSV file name for a barrier edition.
func BarrierFileName(ed Edition) string {
	return fmt.Sprintf("%s_%s.csv", BarrierTableBase, ed)
}
