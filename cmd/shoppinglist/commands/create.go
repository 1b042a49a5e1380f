package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

// create <name>: create a shopping list and print the current lists.
func createCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a shopping list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			if err := mutate(cmd, func() { appCtx.State.CreateShoppingList(name) }); err != nil {
				return err
			}
			return show(cmd)
		},
	}
}
