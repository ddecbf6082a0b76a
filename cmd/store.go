package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/core"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/contract"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/refstore"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/schema"
)

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.StoreBackend(viper.GetString("store-backend"))
	if backend == "" {
		backend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidStoreBackends[backend]; !ok {
		return fmt.Errorf("invalid store backend %q", backend)
	}
	connStr := viper.GetString("store-connect")

	if err := refstore.InitStore(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize reference store: %w", err)
	}

	cfg.StoreBackend = backend
	cfg.StoreConnect = connStr

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeCmd focused on reference store management.
//
// Note: status, clear and migrate use minimal initialization (storeSetup)
// instead of the full sharedSetup used by scoring commands. This avoids
// table-directory validation for simple store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the reference table store",
	Long: `Manage the SQL store that holds synced reference table editions and
the prioritization run history.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  sync    - Validate an edition from files and write it to the store
  status  - Show store statistics and connection info
  clear   - Remove all stored data
  migrate - Run schema migrations

Examples:
  # Sync the Spanish edition into the local SQLite store
  sbn store sync --edition es

  # Check store status
  sbn store status`,
}

// storeSyncCmd writes a validated edition into the store.
var storeSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Validate an edition from files and write it to the store",
	Long: `Read the configured edition from the tables directory, run the full
load-time validation and replace the stored copy. Prioritize with
--from-store afterwards to skip file parsing.`,
	Args:    cobra.NoArgs,
	PreRunE: plainSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteStoreSync(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot sync reference store", err)
		}
		fmt.Printf("Synced edition %s to %s store\n", cfg.Edition, cfg.StoreBackend)
	},
}

// storeStatusCmd shows store statistics.
var storeStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show store statistics and connection info",
	Args:    cobra.NoArgs,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := refstore.Manager.GetRefStore()
		if store == nil {
			fmt.Println("Store Backend: none")
			return
		}
		status, err := store.Status(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot read store status", err)
		}
		refstore.PrintStoreStatus(status)
	},
}

// storeClearCmd clears the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored reference data and run history",
	Long: `Delete all synced reference tables and recorded runs from the
configured backend. For SQLite this removes the database file.`,
	Args: cobra.NoArgs,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// Clearing must not open the store first; it may be about to delete it.
		return loadConfigFile()
	},
	Run: func(_ *cobra.Command, _ []string) {
		backend := schema.StoreBackend(viper.GetString("store-backend"))
		if backend == "" {
			backend = schema.SQLiteBackend
		}
		connStr := viper.GetString("store-connect")
		if err := refstore.ClearStore(backend, refstore.GetDBFilePath(), connStr); err != nil {
			contract.LogFatal("Cannot clear reference store", err)
		}
		fmt.Printf("Cleared %s store\n", backend)
	},
}

// storeMigrateCmd runs schema migrations.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run store schema migrations",
	Long: `Apply versioned schema migrations to the reference store.

Examples:
  # Migrate to the latest version
  sbn store migrate

  # Roll back everything
  sbn store migrate --target-version 0`,
	Args: cobra.NoArgs,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return loadConfigFile()
	},
	Run: func(_ *cobra.Command, _ []string) {
		backend := schema.StoreBackend(viper.GetString("store-backend"))
		if backend == "" {
			backend = schema.SQLiteBackend
		}
		connStr := viper.GetString("store-connect")
		targetVersion := viper.GetInt("target-version")
		if err := refstore.MigrateStore(backend, connStr, targetVersion); err != nil {
			contract.LogFatal("Cannot migrate reference store", err)
		}
	},
}
