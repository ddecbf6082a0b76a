package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/core/refset"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/contract"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/tableio"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/schema"
)

// LoadRefSet reads and validates the four reference tables for the
// configured edition.
func LoadRefSet(cfg *contract.Config) (*refset.RefSet, error) {
	return LoadRefSetEdition(cfg, cfg.Edition)
}

// LoadRefSetEdition reads and validates the four reference tables for a
// specific edition from cfg.TablesDir.
func LoadRefSetEdition(cfg *contract.Config, ed schema.Edition) (*refset.RefSet, error) {
	taxRows, indRows, wRows, bRows, err := LoadEditionRows(cfg, ed)
	if err != nil {
		return nil, err
	}
	refs, err := refset.NewRefSet(taxRows, indRows, wRows, bRows)
	if err != nil {
		return nil, fmt.Errorf("edition %s: %w", ed, err)
	}
	return refs, nil
}

// LoadEditionRows reads the raw table rows for one edition from
// cfg.TablesDir. Weights come from the XLSX grid workbook when present, or
// from the long-form CSV otherwise.
func LoadEditionRows(cfg *contract.Config, ed schema.Edition) (
	[]tableio.TaxonomyRow, []tableio.IndicatorRow, []tableio.WeightRow, []tableio.BarrierRow, error) {
	taxRows, err := tableio.ReadTaxonomyRows(filepath.Join(cfg.TablesDir, schema.TaxonomyFileName(ed)))
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("edition %s: %w", ed, err)
	}
	indRows, err := tableio.ReadIndicatorRows(filepath.Join(cfg.TablesDir, schema.IndicatorFileName(ed)))
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("edition %s: %w", ed, err)
	}
	wRows, err := loadWeightRows(cfg.TablesDir, ed)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("edition %s: %w", ed, err)
	}
	bRows, err := tableio.ReadBarrierRows(filepath.Join(cfg.TablesDir, schema.BarrierFileName(ed)))
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("edition %s: %w", ed, err)
	}
	return taxRows, indRows, wRows, bRows, nil
}

// loadWeightRows prefers the XLSX grid and falls back to the CSV triples
// that older table bundles ship.
func loadWeightRows(tablesDir string, ed schema.Edition) ([]tableio.WeightRow, error) {
	xlsxPath := filepath.Join(tablesDir, schema.WeightFileName(ed))
	if _, err := os.Stat(xlsxPath); err == nil {
		return tableio.ReadWeightGridXLSX(xlsxPath)
	}
	csvPath := filepath.Join(tablesDir, fmt.Sprintf("%s_%s.csv", schema.WeightTableBase, ed))
	if _, err := os.Stat(csvPath); err != nil {
		return nil, fmt.Errorf("weight matrix not found: neither %s nor %s exists", xlsxPath, csvPath)
	}
	return tableio.ReadWeightRowsCSV(csvPath)
}

// LoadAssessment reads the basin assessment CSV referenced by the
// configuration into an AssessmentInput. Duplicate indicator rows are
// rejected so a stray copy-paste cannot silently double a measurement.
func LoadAssessment(cfg *contract.Config) (*schema.AssessmentInput, error) {
	if cfg.AssessmentFile == "" {
		return nil, contract.NewPreconditionError("no assessment file given (use --assessment)")
	}
	rows, err := tableio.ReadAssessmentRows(cfg.AssessmentFile)
	if err != nil {
		return nil, err
	}
	measurements := make(map[int]float64, len(rows))
	for i, row := range rows {
		if _, dup := measurements[row.IndicatorID]; dup {
			return nil, contract.NewRowValidationError(tableio.AssessmentTable, i+1,
				"duplicate measurement for indicator %d", row.IndicatorID)
		}
		measurements[row.IndicatorID] = row.Value
	}
	input := &schema.AssessmentInput{
		BasinID:      cfg.BasinID,
		Measurements: measurements,
	}
	if len(cfg.DisabledGroups) > 0 {
		input.DisabledGroups = make(map[string]struct{}, len(cfg.DisabledGroups))
		for g := range cfg.DisabledGroups {
			input.DisabledGroups[g] = struct{}{}
		}
	}
	return input, nil
}
