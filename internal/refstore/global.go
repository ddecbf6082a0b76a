package refstore

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/contract"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &StoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetDBFilePath returns the path to the SQLite DB file for the store.
func GetDBFilePath() string {
	return contract.GetStoreDBFilePath()
}

// InitStore initializes the global store manager. NoneBackend leaves both
// stores nil, which every caller treats as "persistence disabled".
func InitStore(backend schema.StoreBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		if backend == schema.NoneBackend {
			return
		}
		store, err := NewSQLStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize reference store: %w", err)
			return
		}
		Manager.Lock()
		Manager.ref = store
		Manager.run = store
		Manager.Unlock()
	})

	return initErr
}

// CloseStore should be called on application shutdown.
func CloseStore() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.ref != nil {
			_ = Manager.ref.Close()
		}
		Manager.ref = nil
		Manager.run = nil
	})
}

// ClearStore clears the store for the specified backend. For SQLite it
// deletes the database file; for server backends it deletes the table rows.
func ClearStore(backend schema.StoreBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove store file %q: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		store, err := NewSQLStore(backend, connStr)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		return store.Clear(context.Background())

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported store backend: %s", backend)
	}
}
