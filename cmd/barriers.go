package cmd

import (
	"github.com/spf13/cobra"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/core"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/contract"
)

// barriersCmd prints the governance barrier registry.
var barriersCmd = &cobra.Command{
	Use:   "barriers [group-code]",
	Short: "Show the governance barrier registry.",
	Long: `List the coded governance barriers, their groups, linked taxonomy
subcategories and severities.

Use the codes printed here with 'sbn prioritize --barriers' to mark which
obstacles are present in a basin.

Examples:
  # List every barrier
  sbn barriers

  # List one group
  sbn barriers G02

  # Machine-readable listing
  sbn barriers --output csv --output-file barriers.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: plainSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		group := ""
		if len(args) == 1 {
			group = args[0]
		}
		if err := core.ExecuteBarriers(rootCtx, cfg, group); err != nil {
			contract.LogFatal("Cannot list barriers", err)
		}
	},
}
