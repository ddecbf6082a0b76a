package contract

import "fmt"

// ValidationError is a fatal reference-data loading error. It always aborts
// engine initialization; the engine never partially initializes.
type ValidationError struct {
	Table  string // Which reference table failed (taxonomy, indicators, weights, barriers)
	Row    int    // 1-based data row that failed, 0 when the failure is table-wide
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%s table, row %d: %s", e.Table, e.Row, e.Reason)
	}
	return fmt.Sprintf("%s table: %s", e.Table, e.Reason)
}

// NewValidationError builds a table-wide validation error.
func NewValidationError(table, format string, args ...any) *ValidationError {
	return &ValidationError{Table: table, Reason: fmt.Sprintf(format, args...)}
}

// NewRowValidationError builds a validation error pointing at one row.
func NewRowValidationError(table string, row int, format string, args ...any) *ValidationError {
	return &ValidationError{Table: table, Row: row, Reason: fmt.Sprintf(format, args...)}
}

// PreconditionError is a runtime compute error: the inputs to a compute call
// are unusable before any scoring starts. Reference tables are untouched.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return "precondition failed: " + e.Reason
}

// NewPreconditionError builds a precondition error.
func NewPreconditionError(format string, args ...any) *PreconditionError {
	return &PreconditionError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a lookup against an unknown id or code.
type NotFoundError struct {
	Kind string // What was looked up (node, indicator, barrier, group)
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// NewNotFoundError builds a not-found error.
func NewNotFoundError(kind string, id any) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: fmt.Sprint(id)}
}
