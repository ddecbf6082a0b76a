// Package refstore persists the reference tables and prioritization runs in
// a SQL store so repeated runs can skip file parsing and keep an audit trail.
package refstore

import (
	"context"
	"sync"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/tableio"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/schema"
)

// RefStore persists full language editions of the reference tables. The
// interfaces live here rather than in contract because the row types belong
// to tableio, which already sits above contract in the import graph.
type RefStore interface {
	// SaveEdition replaces the stored rows for one edition atomically.
	SaveEdition(ctx context.Context, ed schema.Edition,
		tax []tableio.TaxonomyRow, ind []tableio.IndicatorRow,
		w []tableio.WeightRow, b []tableio.BarrierRow) error

	// LoadEdition returns the stored rows for one edition.
	LoadEdition(ctx context.Context, ed schema.Edition) (
		[]tableio.TaxonomyRow, []tableio.IndicatorRow,
		[]tableio.WeightRow, []tableio.BarrierRow, error)

	// Status reports connectivity and per-table row counts.
	Status(ctx context.Context) (schema.StoreStatus, error)

	// Clear drops all stored reference rows.
	Clear(ctx context.Context) error

	Close() error
}

// RunStore records completed prioritization passes.
type RunStore interface {
	SaveRun(ctx context.Context, basinID, edition string, barrierCodes []string, scores []schema.PriorityScore) error
	Close() error
}

// StoreManager holds the process-wide store handles.
type StoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	ref          RefStore
	run          RunStore
}

// GetRefStore returns the reference table store, or nil when the store is
// disabled or not yet initialized.
func (mgr *StoreManager) GetRefStore() RefStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.ref
}

// GetRunStore returns the run history store, or nil when the store is
// disabled or not yet initialized.
func (mgr *StoreManager) GetRunStore() RunStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.run
}
