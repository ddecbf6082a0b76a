package cmd

import (
	"github.com/spf13/cobra"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/core"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/contract"
)

// exportCmd runs a prioritization and writes the results to a file.
var exportCmd = &cobra.Command{
	Use:   "export [assessment-file]",
	Short: "Run a prioritization and export the ranking to a file.",
	Long: `Run a full prioritization pass and write the ranked results to a file,
defaulting to Parquet for downstream analytics.

Examples:
  # Export to Parquet
  sbn export basin_cauca.csv --output-file ranking.parquet

  # Export to JSON instead
  sbn export basin_cauca.csv --output json --output-file ranking.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteExport(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot export prioritization", err)
		}
	},
}
