package refset

import (
	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/contract"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/tableio"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/schema"
)

// BarrierRegistry holds the validated barrier definitions, indexed by code
// and grouped. Immutable after load.
type BarrierRegistry struct {
	byCode  map[string]schema.Barrier
	byGroup map[string][]schema.Barrier // table order preserved per group
	groups  []string                    // group codes in first-seen order
}

// LoadBarriers builds the registry from barrier rows. Codes must match the
// GB pattern and be globally unique; severity must lie in [0,1].
func LoadBarriers(rows []tableio.BarrierRow) (*BarrierRegistry, error) {
	reg := &BarrierRegistry{
		byCode:  make(map[string]schema.Barrier, len(rows)),
		byGroup: make(map[string][]schema.Barrier),
	}
	for i, row := range rows {
		rowNum := i + 1
		if !schema.BarrierCodePattern.MatchString(row.Code) {
			return nil, contract.NewRowValidationError(tableio.BarrierTable, rowNum, "malformed barrier code %q", row.Code)
		}
		if _, dup := reg.byCode[row.Code]; dup {
			return nil, contract.NewRowValidationError(tableio.BarrierTable, rowNum, "duplicate barrier code %q", row.Code)
		}
		if row.Severity < 0 || row.Severity > 1 {
			return nil, contract.NewRowValidationError(tableio.BarrierTable, rowNum,
				"severity %.4f outside [0,1] for %s", row.Severity, row.Code)
		}
		if row.GroupCode == "" {
			return nil, contract.NewRowValidationError(tableio.BarrierTable, rowNum, "missing group code for %s", row.Code)
		}
		b := schema.Barrier{
			Code:          row.Code,
			Description:   row.Description,
			SubcategoryID: row.SubcategoryID,
			GroupCode:     row.GroupCode,
			Severity:      row.Severity,
		}
		reg.byCode[b.Code] = b
		if _, seen := reg.byGroup[b.GroupCode]; !seen {
			reg.groups = append(reg.groups, b.GroupCode)
		}
		reg.byGroup[b.GroupCode] = append(reg.byGroup[b.GroupCode], b)
	}
	return reg, nil
}

// Barrier returns the barrier with the given code.
func (r *BarrierRegistry) Barrier(code string) (schema.Barrier, error) {
	b, ok := r.byCode[code]
	if !ok {
		return schema.Barrier{}, contract.NewNotFoundError("barrier", code)
	}
	return b, nil
}

// BarriersForGroup returns the barriers in a group, in table order.
func (r *BarrierRegistry) BarriersForGroup(groupCode string) ([]schema.Barrier, error) {
	barriers, ok := r.byGroup[groupCode]
	if !ok {
		return nil, contract.NewNotFoundError("barrier group", groupCode)
	}
	return append([]schema.Barrier(nil), barriers...), nil
}

// Groups returns the group codes in first-seen order.
func (r *BarrierRegistry) Groups() []string {
	return append([]string(nil), r.groups...)
}

// Penalty returns the arithmetic mean severity over the selected barrier
// codes, or 0.0 for an empty selection. An unknown code is rejected rather
// than skipped: silently ignoring a typo'd barrier would understate risk.
func (r *BarrierRegistry) Penalty(selectedCodes []string) (float64, error) {
	if len(selectedCodes) == 0 {
		return 0, nil
	}
	var sum float64
	for _, code := range selectedCodes {
		b, ok := r.byCode[code]
		if !ok {
			return 0, contract.NewValidationError(tableio.BarrierTable, "unknown barrier code %q in selection", code)
		}
		sum += b.Severity
	}
	return sum / float64(len(selectedCodes)), nil
}

// Len returns the number of barriers in the registry.
func (r *BarrierRegistry) Len() int {
	return len(r.byCode)
}
