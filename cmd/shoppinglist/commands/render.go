package commands

import (
	"fmt"
	"io"

	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/constants"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/i18n"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/result"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/state"
)

// renderState prints a snapshot as plain text. Rows are numbered from 1;
// the shell refers to them by that number.
func renderState(w io.Writer, loc *i18n.Localizer, st state.ScreenState) {
	switch {
	case st.Status.ListQuery() != state.ListQueryNone:
		renderLists(w, loc, st)
	case st.SelectedShoppingList != nil:
		renderProducts(w, loc, st)
	}

	for _, m := range constants.Mutations {
		if st.Loading(m) {
			fmt.Fprintf(w, "%s %s\n", constants.Loading, loc.Mutation(m))
		}
	}
}

func renderLists(w io.Writer, loc *i18n.Localizer, st state.ScreenState) {
	lists, ok := st.ShoppingLists.Data()
	header(w, loc.Title(st.Status), ok, loc.Count(i18n.ListCount, len(lists)))
	if label := i18n.ResultLabel(loc, st.ShoppingLists); label != "" {
		fmt.Fprintf(w, "  %s %s\n", glyph(st.ShoppingLists.Status()), label)
		return
	}

	for i, list := range lists {
		marker := constants.Bullet
		if list.IsArchived {
			marker = constants.Archived
		}
		fmt.Fprintf(w, "  %d. %s %s (#%d)\n", i+1, marker, list.Name, list.ID)
	}
}

func renderProducts(w io.Writer, loc *i18n.Localizer, st state.ScreenState) {
	products, ok := st.Products.Data()
	header(w, loc.Title(st.Status), ok, loc.Count(i18n.ProductCount, len(products)))
	if label := i18n.ResultLabel(loc, st.Products); label != "" {
		fmt.Fprintf(w, "  %s %s\n", glyph(st.Products.Status()), label)
		return
	}

	for i, product := range products {
		fmt.Fprintf(w, "  %d. %s %s ×%d (#%d)\n", i+1, constants.Bullet, product.Name, product.Quantity, product.ID)
	}
}

func header(w io.Writer, title string, loaded bool, count string) {
	if loaded {
		fmt.Fprintf(w, "%s (%s)\n", title, count)
		return
	}
	fmt.Fprintln(w, title)
}

func glyph(status result.Status) string {
	switch status {
	case result.StatusLoading:
		return constants.Loading
	case result.StatusError:
		return constants.Failed
	default:
		return constants.Bullet
	}
}
