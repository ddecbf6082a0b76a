package tableio

import (
	"io"
	"strings"
)

// Contractual CSV headers. The header names stay in the authoring language
// across all editions; only cell text is translated.
var (
	taxonomyHeader   = []string{"ID", "Categoria", "Subcategoria", "Actividad", "Objetivo"}
	indicatorHeader  = []string{"id", "SbN", "Indicadores priorizados", "Unidad de medida", "Rango_Min", "Rango_Max"}
	barrierHeader    = []string{"Codigo_Barrera", "Descripcion", "Subcategoria", "Grupo", "Codigo_Grupo", "Severidad"}
	weightCSVHeader  = []string{"SbN", "Indicador", "Peso"}
	assessmentHeader = []string{"indicator_id", "value"}
)

// ReadTaxonomyRows parses the taxonomy table from a CSV file.
func ReadTaxonomyRows(path string) ([]TaxonomyRow, error) {
	records, err := readCSVFile(path, TaxonomyTable, taxonomyHeader)
	if err != nil {
		return nil, err
	}
	return parseTaxonomyRecords(records)
}

// ParseTaxonomyRows parses taxonomy CSV content from a reader.
func ParseTaxonomyRows(r io.Reader) ([]TaxonomyRow, error) {
	records, err := readCSV(r, TaxonomyTable, taxonomyHeader)
	if err != nil {
		return nil, err
	}
	return parseTaxonomyRecords(records)
}

func parseTaxonomyRecords(records [][]string) ([]TaxonomyRow, error) {
	rows := make([]TaxonomyRow, 0, len(records))
	for i, rec := range records {
		id, err := parseInt(TaxonomyTable, i+1, "ID", rec[0])
		if err != nil {
			return nil, err
		}
		rows = append(rows, TaxonomyRow{
			ID:          id,
			Category:    strings.TrimSpace(rec[1]),
			Subcategory: strings.TrimSpace(rec[2]),
			Activity:    strings.TrimSpace(rec[3]),
			Objective:   strings.TrimSpace(rec[4]),
		})
	}
	return rows, nil
}

// ReadIndicatorRows parses the indicator table from a CSV file.
func ReadIndicatorRows(path string) ([]IndicatorRow, error) {
	records, err := readCSVFile(path, IndicatorTable, indicatorHeader)
	if err != nil {
		return nil, err
	}
	return parseIndicatorRecords(records)
}

// ParseIndicatorRows parses indicator CSV content from a reader.
func ParseIndicatorRows(r io.Reader) ([]IndicatorRow, error) {
	records, err := readCSV(r, IndicatorTable, indicatorHeader)
	if err != nil {
		return nil, err
	}
	return parseIndicatorRecords(records)
}

func parseIndicatorRecords(records [][]string) ([]IndicatorRow, error) {
	rows := make([]IndicatorRow, 0, len(records))
	for i, rec := range records {
		id, err := parseInt(IndicatorTable, i+1, "id", rec[0])
		if err != nil {
			return nil, err
		}
		sbnID, err := parseInt(IndicatorTable, i+1, "SbN", rec[1])
		if err != nil {
			return nil, err
		}
		tmin, err := parseFloat(IndicatorTable, i+1, "Rango_Min", rec[4])
		if err != nil {
			return nil, err
		}
		tmax, err := parseFloat(IndicatorTable, i+1, "Rango_Max", rec[5])
		if err != nil {
			return nil, err
		}
		rows = append(rows, IndicatorRow{
			ID:        id,
			SbNID:     sbnID,
			Name:      strings.TrimSpace(rec[2]),
			Unit:      strings.TrimSpace(rec[3]),
			TargetMin: tmin,
			TargetMax: tmax,
		})
	}
	return rows, nil
}

// ReadBarrierRows parses the barrier table from a CSV file.
func ReadBarrierRows(path string) ([]BarrierRow, error) {
	records, err := readCSVFile(path, BarrierTable, barrierHeader)
	if err != nil {
		return nil, err
	}
	return parseBarrierRecords(records)
}

// ParseBarrierRows parses barrier CSV content from a reader.
func ParseBarrierRows(r io.Reader) ([]BarrierRow, error) {
	records, err := readCSV(r, BarrierTable, barrierHeader)
	if err != nil {
		return nil, err
	}
	return parseBarrierRecords(records)
}

func parseBarrierRecords(records [][]string) ([]BarrierRow, error) {
	rows := make([]BarrierRow, 0, len(records))
	for i, rec := range records {
		subID, err := parseInt(BarrierTable, i+1, "Subcategoria", rec[2])
		if err != nil {
			return nil, err
		}
		severity, err := parseFloat(BarrierTable, i+1, "Severidad", rec[5])
		if err != nil {
			return nil, err
		}
		rows = append(rows, BarrierRow{
			Code:          strings.TrimSpace(rec[0]),
			Description:   strings.TrimSpace(rec[1]),
			SubcategoryID: subID,
			Group:         strings.TrimSpace(rec[3]),
			GroupCode:     strings.TrimSpace(rec[4]),
			Severity:      severity,
		})
	}
	return rows, nil
}

// ReadWeightRowsCSV parses weight triples from a CSV file. This is the flat
// alternative to the XLSX grid form; both feed the same WeightRow slice.
func ReadWeightRowsCSV(path string) ([]WeightRow, error) {
	records, err := readCSVFile(path, WeightTable, weightCSVHeader)
	if err != nil {
		return nil, err
	}
	return parseWeightRecords(records)
}

// ParseWeightRowsCSV parses weight triples from a reader.
func ParseWeightRowsCSV(r io.Reader) ([]WeightRow, error) {
	records, err := readCSV(r, WeightTable, weightCSVHeader)
	if err != nil {
		return nil, err
	}
	return parseWeightRecords(records)
}

func parseWeightRecords(records [][]string) ([]WeightRow, error) {
	rows := make([]WeightRow, 0, len(records))
	for i, rec := range records {
		sbnID, err := parseInt(WeightTable, i+1, "SbN", rec[0])
		if err != nil {
			return nil, err
		}
		indID, err := parseInt(WeightTable, i+1, "Indicador", rec[1])
		if err != nil {
			return nil, err
		}
		weight, err := parseFloat(WeightTable, i+1, "Peso", rec[2])
		if err != nil {
			return nil, err
		}
		rows = append(rows, WeightRow{SbNID: sbnID, IndicatorID: indID, Weight: weight})
	}
	return rows, nil
}

// ReadAssessmentRows parses a per-basin measurement file.
func ReadAssessmentRows(path string) ([]MeasurementRow, error) {
	records, err := readCSVFile(path, AssessmentTable, assessmentHeader)
	if err != nil {
		return nil, err
	}
	return parseAssessmentRecords(records)
}

// ParseAssessmentRows parses assessment CSV content from a reader.
func ParseAssessmentRows(r io.Reader) ([]MeasurementRow, error) {
	records, err := readCSV(r, AssessmentTable, assessmentHeader)
	if err != nil {
		return nil, err
	}
	return parseAssessmentRecords(records)
}

func parseAssessmentRecords(records [][]string) ([]MeasurementRow, error) {
	rows := make([]MeasurementRow, 0, len(records))
	for i, rec := range records {
		indID, err := parseInt(AssessmentTable, i+1, "indicator_id", rec[0])
		if err != nil {
			return nil, err
		}
		value, err := parseFloat(AssessmentTable, i+1, "value", rec[1])
		if err != nil {
			return nil, err
		}
		rows = append(rows, MeasurementRow{IndicatorID: indID, Value: value})
	}
	return rows, nil
}
