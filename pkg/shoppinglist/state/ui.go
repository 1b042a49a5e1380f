package state

import (
	"time"

	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/model"
)

// ShoppingListUI is the view-facing form of a shopping list.
type ShoppingListUI struct {
	ID         int64
	Name       string
	IsArchived bool
	CreatedAt  time.Time
}

// ProductUI is the view-facing form of a product.
type ProductUI struct {
	ID             int64
	Name           string
	Quantity       int64
	ShoppingListID int64
}

func ShoppingListUIOf(list model.ShoppingList) ShoppingListUI {
	return ShoppingListUI{
		ID:         list.ID,
		Name:       list.Name,
		IsArchived: list.IsArchived,
		CreatedAt:  list.CreatedAt,
	}
}

// Domain converts back to the repository record.
func (l ShoppingListUI) Domain() model.ShoppingList {
	return model.ShoppingList{
		ID:         l.ID,
		Name:       l.Name,
		IsArchived: l.IsArchived,
		CreatedAt:  l.CreatedAt,
	}
}

func ProductUIOf(product model.Product) ProductUI {
	return ProductUI{
		ID:             product.ID,
		Name:           product.Name,
		Quantity:       product.Quantity,
		ShoppingListID: product.ShoppingListID,
	}
}

// Domain converts back to the repository record.
func (p ProductUI) Domain() model.Product {
	return model.Product{
		ID:             p.ID,
		Name:           p.Name,
		Quantity:       p.Quantity,
		ShoppingListID: p.ShoppingListID,
	}
}

func ShoppingListsUI(lists []model.ShoppingList) []ShoppingListUI {
	out := make([]ShoppingListUI, len(lists))
	for i, l := range lists {
		out[i] = ShoppingListUIOf(l)
	}
	return out
}

func ProductsUI(products []model.Product) []ProductUI {
	out := make([]ProductUI, len(products))
	for i, p := range products {
		out[i] = ProductUIOf(p)
	}
	return out
}
