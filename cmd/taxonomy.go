package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/core"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/contract"
)

// taxonomyCmd prints the solution taxonomy.
var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy [node-id]",
	Short: "Show the four-level solution taxonomy.",
	Long: `Print the solution taxonomy as an indented tree.

Without arguments the whole forest is printed, category by category. With a
node id only the subtree under that node is shown. Objective-level nodes are
marked with an asterisk; their ids are the ones referenced by indicators,
weights and prioritization results.

Examples:
  # Print the whole taxonomy
  sbn taxonomy

  # Print one category's subtree
  sbn taxonomy 3

  # Machine-readable listing
  sbn taxonomy --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: plainSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		nodeID := 0
		if len(args) == 1 {
			parsed, err := strconv.Atoi(args[0])
			if err != nil {
				contract.LogFatal("Invalid node id", err)
			}
			nodeID = parsed
		}
		if err := core.ExecuteTaxonomy(rootCtx, cfg, nodeID); err != nil {
			contract.LogFatal("Cannot list taxonomy", err)
		}
	},
}
