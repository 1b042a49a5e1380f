package router

import (
	"fmt"

	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/model"
)

// Kind identifies the four navigable screens.
type Kind int

const (
	KindShoppingListCurrent  Kind = iota // Current (not archived) shopping lists
	KindShoppingListArchived             // Archived shopping lists
	KindProductListCurrent               // Products of a current shopping list
	KindProductListArchived              // Products of an archived shopping list
)

func (k Kind) String() string {
	switch k {
	case KindShoppingListCurrent:
		return "ShoppingListCurrent"
	case KindShoppingListArchived:
		return "ShoppingListArchived"
	case KindProductListCurrent:
		return "ProductListCurrent"
	case KindProductListArchived:
		return "ProductListArchived"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Screen is a navigable destination. Product list screens carry the shopping
// list they display. Screens are values and cannot be changed once built.
type Screen struct {
	kind Kind
	list model.ShoppingList
}

// ShoppingListCurrent is the home screen.
func ShoppingListCurrent() Screen {
	return Screen{kind: KindShoppingListCurrent}
}

func ShoppingListArchived() Screen {
	return Screen{kind: KindShoppingListArchived}
}

func ProductListCurrent(list model.ShoppingList) Screen {
	return Screen{kind: KindProductListCurrent, list: list}
}

func ProductListArchived(list model.ShoppingList) Screen {
	return Screen{kind: KindProductListArchived, list: list}
}

func (s Screen) Kind() Kind {
	return s.kind
}

// ShoppingList returns the list shown by a product list screen.
// The boolean is false for the shopping list screens.
func (s Screen) ShoppingList() (model.ShoppingList, bool) {
	switch s.kind {
	case KindProductListCurrent, KindProductListArchived:
		return s.list, true
	default:
		return model.ShoppingList{}, false
	}
}

func (s Screen) String() string {
	if list, ok := s.ShoppingList(); ok {
		return fmt.Sprintf("%s(%d)", s.kind, list.ID)
	}
	return s.kind.String()
}
