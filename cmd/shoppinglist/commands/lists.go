package commands

import (
	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/router"
)

// lists [--archived]: print the current or archived shopping lists.
func listsCmd() *cobra.Command {
	var archived bool
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Print shopping lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if archived {
				appCtx.Navigator.Push(router.ShoppingListArchived())
			}
			return show(cmd)
		},
	}
	cmd.Flags().BoolVar(&archived, "archived", false, "print archived lists instead")
	return cmd
}
