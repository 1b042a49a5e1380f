package commands

import (
	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/constants"
)

// add <list-id> <name> [--quantity N]: add a product and print the list.
func addCmd() *cobra.Command {
	var quantity int64
	cmd := &cobra.Command{
		Use:   "add <list-id> <name>",
		Short: "Add a product to a shopping list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			list, err := findList(cmd, id)
			if err != nil {
				return err
			}
			if _, err := openList(cmd, list); err != nil {
				return err
			}

			name := args[1]
			if err := mutate(cmd, func() { appCtx.State.CreateProduct(name, quantity, list.ID) }); err != nil {
				return err
			}
			return show(cmd)
		},
	}
	cmd.Flags().Int64VarP(&quantity, "quantity", "q", constants.DefaultProductQuantity, "how many to buy")
	return cmd
}
