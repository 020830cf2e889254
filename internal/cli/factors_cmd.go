package cli

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/verdant-io/verdant/internal/factors"
)

// newFactorsCmd creates the factors command group for inspecting the
// active emission factor table.
func newFactorsCmd(state *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "factors",
		Short: "Inspect the active emission factor table",
	}
	cmd.AddCommand(newFactorsListCmd(state))
	return cmd
}

func newFactorsListCmd(state *appState) *cobra.Command {
	var categoryFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List emission factors, optionally by category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			categories := []string{
				factors.CategoryScope1,
				factors.CategoryScope2,
				factors.CategoryScope3,
				factors.CategoryFinancedBuilding,
				factors.CategoryFinancedSector,
			}
			if categoryFlag != "" {
				categories = []string{categoryFlag}
			}

			for _, category := range categories {
				list := state.table.Category(category)
				if len(list) == 0 {
					continue
				}
				sort.Slice(list, func(i, j int) bool { return list[i].Key < list[j].Key })

				cmd.Printf("%s:\n", category)
				for _, f := range list {
					cmd.Printf("  %-24s %12s kgCO2e/%-14s %s\n",
						f.Key, printer.Sprintf("%.5f", f.Value), f.Unit, f.Source)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&categoryFlag, "category", "", "restrict to one factor category")
	return cmd
}
