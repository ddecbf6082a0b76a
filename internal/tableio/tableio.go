// Package tableio reads the reference tables and per-basin assessments from
// CSV and XLSX files into typed rows, rejecting malformed rows eagerly so the
// scoring phase never sees untyped data.
package tableio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/contract"
)

// Table names used in validation errors.
const (
	TaxonomyTable   = "taxonomy"
	IndicatorTable  = "indicators"
	WeightTable     = "weights"
	BarrierTable    = "barriers"
	AssessmentTable = "assessment"
)

// TaxonomyRow is one parsed row of the taxonomy table.
type TaxonomyRow struct {
	ID          int
	Category    string
	Subcategory string
	Activity    string
	Objective   string
}

// IndicatorRow is one parsed row of the indicator table.
type IndicatorRow struct {
	ID        int
	SbNID     int
	Name      string
	Unit      string
	TargetMin float64
	TargetMax float64
}

// WeightRow is one (solution, indicator, weight) triple of the weight matrix.
type WeightRow struct {
	SbNID       int
	IndicatorID int
	Weight      float64
}

// BarrierRow is one parsed row of the barrier table.
type BarrierRow struct {
	Code          string
	Description   string
	SubcategoryID int
	Group         string
	GroupCode     string
	Severity      float64
}

// MeasurementRow is one parsed row of a basin assessment file.
type MeasurementRow struct {
	IndicatorID int
	Value       float64
}

// readCSVFile opens a CSV file, strips a UTF-8 BOM if present, verifies the
// contractual header and returns the data records. The original toolkit
// writes utf-8-sig files, so the BOM is the norm rather than the exception.
func readCSVFile(path, table string, wantHeader []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s table: %w", table, err)
	}
	defer func() { _ = f.Close() }()

	return readCSV(f, table, wantHeader)
}

// readCSV parses CSV content from a reader and checks the header contract.
func readCSV(r io.Reader, table string, wantHeader []string) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot parse %s table: %w", table, err)
	}
	if len(records) == 0 {
		return nil, contract.NewValidationError(table, "file is empty")
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	if len(header) < len(wantHeader) {
		return nil, contract.NewValidationError(table, "header has %d columns, expected at least %d (%s)",
			len(header), len(wantHeader), strings.Join(wantHeader, ", "))
	}
	for i, want := range wantHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return nil, contract.NewValidationError(table, "header column %d is %q, expected %q", i+1, header[i], want)
		}
	}

	return records[1:], nil
}

// parseInt parses a required integer cell.
func parseInt(table string, row int, field, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, contract.NewRowValidationError(table, row, "%s %q is not numeric", field, value)
	}
	return n, nil
}

// parseFloat parses a required float cell.
func parseFloat(table string, row int, field, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, contract.NewRowValidationError(table, row, "%s %q is not a number", field, value)
	}
	return v, nil
}
