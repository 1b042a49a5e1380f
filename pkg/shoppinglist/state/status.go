package state

import (
	"fmt"

	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/model"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/router"
)

// StatusKind classifies the current screen.
type StatusKind int

const (
	StatusNone                 StatusKind = iota // No recognised screen
	StatusCurrentShoppingList                    // Current lists
	StatusArchivedShoppingList                   // Archived lists
	StatusCurrentProductList                     // Products of a current list
	StatusArchivedProductList                    // Products of an archived list
)

func (k StatusKind) String() string {
	switch k {
	case StatusNone:
		return "none"
	case StatusCurrentShoppingList:
		return "current_shopping_list"
	case StatusArchivedShoppingList:
		return "archived_shopping_list"
	case StatusCurrentProductList:
		return "current_product_list"
	case StatusArchivedProductList:
		return "archived_product_list"
	default:
		return fmt.Sprintf("status(%d)", int(k))
	}
}

// ListQuery names the shopping list stream a screen needs.
type ListQuery int

const (
	ListQueryNone     ListQuery = iota // Screen shows no shopping lists
	ListQueryCurrent                   // Current lists stream
	ListQueryArchived                  // Archived lists stream
)

// ScreenStatus is the classification of a screen plus the list it shows, if any.
type ScreenStatus struct {
	Kind StatusKind
	list model.ShoppingList
}

// StatusOf maps a screen to its status. It is a pure function.
func StatusOf(screen router.Screen) ScreenStatus {
	switch screen.Kind() {
	case router.KindShoppingListCurrent:
		return ScreenStatus{Kind: StatusCurrentShoppingList}
	case router.KindShoppingListArchived:
		return ScreenStatus{Kind: StatusArchivedShoppingList}
	case router.KindProductListCurrent:
		list, _ := screen.ShoppingList()
		return ScreenStatus{Kind: StatusCurrentProductList, list: list}
	case router.KindProductListArchived:
		list, _ := screen.ShoppingList()
		return ScreenStatus{Kind: StatusArchivedProductList, list: list}
	default:
		return ScreenStatus{Kind: StatusNone}
	}
}

// SelectedShoppingList returns the list of a product list status.
func (s ScreenStatus) SelectedShoppingList() (model.ShoppingList, bool) {
	switch s.Kind {
	case StatusCurrentProductList, StatusArchivedProductList:
		return s.list, true
	default:
		return model.ShoppingList{}, false
	}
}

// ListQuery returns which shopping list stream the status needs.
func (s ScreenStatus) ListQuery() ListQuery {
	switch s.Kind {
	case StatusCurrentShoppingList:
		return ListQueryCurrent
	case StatusArchivedShoppingList:
		return ListQueryArchived
	default:
		return ListQueryNone
	}
}

func (s ScreenStatus) String() string {
	if list, ok := s.SelectedShoppingList(); ok {
		return fmt.Sprintf("%s(%d)", s.Kind, list.ID)
	}
	return s.Kind.String()
}
