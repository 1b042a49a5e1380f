package commands

import (
	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/router"
)

// archive <list-id>: move a list to the archive and print the archived lists.
func archiveCmd() *cobra.Command {
	return setArchivedCmd("archive <list-id>", "Move a shopping list to the archive", true)
}

// unarchive <list-id>: move a list back and print the current lists.
func unarchiveCmd() *cobra.Command {
	return setArchivedCmd("unarchive <list-id>", "Move a shopping list back to the current lists", false)
}

func setArchivedCmd(use, short string, archived bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
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
			if err := mutate(cmd, func() { appCtx.State.UpdateShoppingList(list, archived) }); err != nil {
				return err
			}
			if archived {
				appCtx.Navigator.Push(router.ShoppingListArchived())
			}
			return show(cmd)
		},
	}
}
