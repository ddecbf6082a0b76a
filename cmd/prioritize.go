package cmd

import (
	"github.com/spf13/cobra"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/core"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/contract"
)

// prioritizeCmd ranks Nature-based Solutions for one basin.
var prioritizeCmd = &cobra.Command{
	Use:   "prioritize [assessment-file]",
	Short: "Rank Nature-based Solutions for a basin.",
	Long: `Score and rank every solution in the taxonomy for one basin.

Each solution gets a composite score from its indicator measurements,
normalized against reference target ranges and combined with expert weights.
Barriers marked present in the basin then gate the composite down, so a
technically strong solution facing severe governance obstacles drops in
the ranking.

Examples:
  # Rank solutions from an assessment file
  sbn prioritize basin_cauca.csv --basin cauca-alto

  # Mark governance barriers present in the basin
  sbn prioritize basin_cauca.csv --barriers GB0101,GB0203a

  # Ignore an entire barrier group for a what-if run
  sbn prioritize basin_cauca.csv --barriers GB0101 --disable-groups G02

  # Show component columns and per-indicator contributions
  sbn prioritize basin_cauca.csv --detail --explain

  # Export findings to CSV for tracking
  sbn prioritize basin_cauca.csv --output csv --output-file ranking.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePrioritize(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run prioritization", err)
		}
	},
}
