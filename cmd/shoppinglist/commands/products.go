package commands

import (
	"github.com/spf13/cobra"
)

// products <list-id>: print the products of one list.
func productsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "products <list-id>",
		Short: "Print the products of a shopping list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			list, err := findList(cmd, id)
			if err != nil {
				return err
			}
			st, err := openList(cmd, list)
			if err != nil {
				return err
			}
			renderState(cmd.OutOrStdout(), appCtx.Localizer, st)
			return nil
		},
	}
}
