package state

//go:generate mockgen -source=repository.go -destination=mocks/repository.go -package=mocks Repository

import (
	"context"

	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/model"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/result"
)

// Repository is the data source behind the screen state.
//
// Query methods return a stream that starts when called and stops when ctx
// is done. Mutations block until the change is stored or has failed.
type Repository interface {
	CurrentShoppingLists(ctx context.Context) <-chan result.Result[[]model.ShoppingList]
	ArchivedShoppingLists(ctx context.Context) <-chan result.Result[[]model.ShoppingList]
	Products(ctx context.Context, listID int64) <-chan result.Result[[]model.Product]

	InsertShoppingList(ctx context.Context, list model.ShoppingList) error
	UpdateShoppingList(ctx context.Context, list model.ShoppingList) error
	InsertProduct(ctx context.Context, product model.Product) error
	DeleteProduct(ctx context.Context, product model.Product) error
}
