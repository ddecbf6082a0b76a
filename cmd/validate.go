package cmd

import (
	"github.com/spf13/cobra"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/core"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/contract"
)

// validateCmd validates the reference tables without running a prioritization.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the reference tables and cross-check editions.",
	Long: `Load and validate the reference tables without scoring anything.

Runs the full load-time validation: taxonomy structure, indicator target
ranges, weight sums, barrier codes and cross-table references. With
--editions it also cross-checks the language editions against each other,
catching a translation that drifted structurally from the authoring
edition.

Examples:
  # Validate the default edition
  sbn validate

  # Cross-check all three language editions
  sbn validate --editions es,en,pt`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteValidate(rootCtx, cfg); err != nil {
			contract.LogFatal("Reference tables failed validation", err)
		}
	},
}
