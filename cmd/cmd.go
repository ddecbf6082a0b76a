// Package cmd defines the command-line interface for the SbN toolkit.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/contract"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(prioritizeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(taxonomyCmd)
	rootCmd.AddCommand(barriersCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeSyncCmd)
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("tables", "t", ".", "Directory holding the reference table editions")
	rootCmd.PersistentFlags().StringP("edition", "e", string(contract.DefaultEdition), "Language edition: es or en or pt")
	rootCmd.PersistentFlags().String("assessment", "", "CSV with per-basin indicator measurements")
	rootCmd.PersistentFlags().StringP("basin", "b", "", "Basin identifier for the assessment")
	rootCmd.PersistentFlags().String("barriers", "", "Comma-separated barrier codes present in the basin")
	rootCmd.PersistentFlags().String("disable-groups", "", "Comma-separated barrier group codes to switch off")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-solution composite and penalty columns")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored bands in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Reference store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().Bool("from-store", false, "Load reference tables from the store instead of files")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of prioritizeCmd to Viper
	prioritizeCmd.Flags().Bool("explain", false, "Print per-indicator weighted contributions")
	if err := viper.BindPFlags(prioritizeCmd.Flags()); err != nil {
		contract.LogFatal("Error binding prioritize flags", err)
	}

	// Bind all flags of validateCmd to Viper
	validateCmd.Flags().String("editions", "", "Comma-separated editions to cross-check (e.g. es,en,pt)")
	if err := viper.BindPFlags(validateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding validate flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
