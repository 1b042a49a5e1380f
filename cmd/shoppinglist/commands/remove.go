package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/storage"
)

// remove <product-id> --list <list-id>: delete a product and print the list.
func removeCmd() *cobra.Command {
	var listID int64
	cmd := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from a shopping list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			list, err := findList(cmd, listID)
			if err != nil {
				return err
			}
			st, err := openList(cmd, list)
			if err != nil {
				return err
			}

			products, _ := st.Products.Data()
			for _, product := range products {
				if product.ID == id {
					if err := mutate(cmd, func() { appCtx.State.DeleteProduct(product) }); err != nil {
						return err
					}
					return show(cmd)
				}
			}
			return fmt.Errorf("product %d in list %d: %w", id, listID, storage.ErrNotFound)
		},
	}
	cmd.Flags().Int64Var(&listID, "list", 0, "id of the list holding the product")
	_ = cmd.MarkFlagRequired("list")
	return cmd
}
