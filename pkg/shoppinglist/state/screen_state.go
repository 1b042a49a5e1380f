package state

import (
	"slices"

	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/constants"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/result"
)

// ScreenState is everything a view needs to render the current screen.
//
// The aggregator owns one ScreenState and changes one field at a time.
// Subscribers receive copies that share no memory with it.
type ScreenState struct {
	Version uint64       // Increases with every published snapshot
	Status  ScreenStatus // Classification of the current screen

	// SelectedShoppingList is set on product list screens and nil otherwise.
	SelectedShoppingList *ShoppingListUI

	CreateShoppingListLoading bool
	UpdateShoppingListLoading bool
	CreateProductLoading      bool
	DeleteProductLoading      bool

	ShoppingLists result.Result[[]ShoppingListUI] // Absent on product list screens
	Products      result.Result[[]ProductUI]      // Absent unless a list is selected
}

// Loading reports the flag for one mutation.
func (s ScreenState) Loading(m constants.Mutation) bool {
	switch m {
	case constants.MutationCreateShoppingList:
		return s.CreateShoppingListLoading
	case constants.MutationUpdateShoppingList:
		return s.UpdateShoppingListLoading
	case constants.MutationCreateProduct:
		return s.CreateProductLoading
	case constants.MutationDeleteProduct:
		return s.DeleteProductLoading
	default:
		return false
	}
}

// Busy reports whether any mutation is running.
func (s ScreenState) Busy() bool {
	return s.CreateShoppingListLoading || s.UpdateShoppingListLoading ||
		s.CreateProductLoading || s.DeleteProductLoading
}

// Settled reports whether nothing is loading: no mutation flag is set and
// neither query is waiting for data.
func (s ScreenState) Settled() bool {
	return !s.Busy() && !s.ShoppingLists.IsLoading() && !s.Products.IsLoading()
}

func (s *ScreenState) setLoading(m constants.Mutation, loading bool) {
	switch m {
	case constants.MutationCreateShoppingList:
		s.CreateShoppingListLoading = loading
	case constants.MutationUpdateShoppingList:
		s.UpdateShoppingListLoading = loading
	case constants.MutationCreateProduct:
		s.CreateProductLoading = loading
	case constants.MutationDeleteProduct:
		s.DeleteProductLoading = loading
	}
}

func (s ScreenState) clone() ScreenState {
	out := s
	if s.SelectedShoppingList != nil {
		selected := *s.SelectedShoppingList
		out.SelectedShoppingList = &selected
	}
	out.ShoppingLists = result.Map(s.ShoppingLists, func(l []ShoppingListUI) []ShoppingListUI { return slices.Clone(l) })
	out.Products = result.Map(s.Products, func(p []ProductUI) []ProductUI { return slices.Clone(p) })
	return out
}
