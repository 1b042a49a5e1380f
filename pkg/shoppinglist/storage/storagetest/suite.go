// Package storagetest holds the behavior every repository implementation must share.
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/model"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/result"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/storage"
)

// Repository is the surface under test.
type Repository interface {
	CurrentShoppingLists(ctx context.Context) <-chan result.Result[[]model.ShoppingList]
	ArchivedShoppingLists(ctx context.Context) <-chan result.Result[[]model.ShoppingList]
	Products(ctx context.Context, listID int64) <-chan result.Result[[]model.Product]
	InsertShoppingList(ctx context.Context, list model.ShoppingList) error
	UpdateShoppingList(ctx context.Context, list model.ShoppingList) error
	InsertProduct(ctx context.Context, product model.Product) error
	DeleteProduct(ctx context.Context, product model.Product) error
}

// RepositorySuite runs against a fresh repository for every test.
// Embed it and set Open.
type RepositorySuite struct {
	suite.Suite

	// Open returns an empty repository and a cleanup function.
	Open func() (Repository, func())

	repo    Repository
	cleanup func()
	ctx     context.Context
	cancel  context.CancelFunc
}

const wait = 2 * time.Second

func (s *RepositorySuite) SetupTest() {
	s.repo, s.cleanup = s.Open()
	s.ctx, s.cancel = context.WithCancel(context.Background())
}

func (s *RepositorySuite) TearDownTest() {
	s.cancel()
	if s.cleanup != nil {
		s.cleanup()
	}
}

func next[T any](s *RepositorySuite, ch <-chan result.Result[T]) result.Result[T] {
	s.T().Helper()
	select {
	case r, ok := <-ch:
		s.Require().True(ok, "stream closed early")
		return r
	case <-time.After(wait):
		s.FailNow("timed out waiting for stream")
		return result.Result[T]{}
	}
}

// settled skips Loading and returns the first completed result.
func settled[T any](s *RepositorySuite, ch <-chan result.Result[T]) T {
	s.T().Helper()
	for {
		r := next(s, ch)
		if r.IsLoading() {
			continue
		}
		s.Require().NoError(r.Err())
		data, ok := r.Data()
		s.Require().True(ok)
		return data
	}
}

func (s *RepositorySuite) createList(name string) model.ShoppingList {
	s.Require().NoError(s.repo.InsertShoppingList(s.ctx, model.ShoppingList{Name: name}))
	lists := settled(s, s.repo.CurrentShoppingLists(s.ctx))
	for _, l := range lists {
		if l.Name == name {
			return l
		}
	}
	s.FailNow("created list not found", name)
	return model.ShoppingList{}
}

func (s *RepositorySuite) TestStreamsStartWithLoading() {
	s.True(next(s, s.repo.CurrentShoppingLists(s.ctx)).IsLoading())
	s.True(next(s, s.repo.ArchivedShoppingLists(s.ctx)).IsLoading())
	s.True(next(s, s.repo.Products(s.ctx, 1)).IsLoading())
}

func (s *RepositorySuite) TestEmptyRepository() {
	s.Empty(settled(s, s.repo.CurrentShoppingLists(s.ctx)))
	s.Empty(settled(s, s.repo.ArchivedShoppingLists(s.ctx)))
	s.Empty(settled(s, s.repo.Products(s.ctx, 42)))
}

func (s *RepositorySuite) TestInsertShoppingList() {
	s.Run("assigns id and trims name", func() {
		list := s.createList("  Groceries ")
		s.NotZero(list.ID)
		s.Equal("Groceries", list.Name)
		s.False(list.IsArchived)
		s.False(list.CreatedAt.IsZero())
	})

	s.Run("rejects empty name", func() {
		err := s.repo.InsertShoppingList(s.ctx, model.ShoppingList{Name: "   "})
		s.ErrorIs(err, storage.ErrInvalid)
	})
}

func (s *RepositorySuite) TestOpenStreamReemitsAfterInsert() {
	stream := s.repo.CurrentShoppingLists(s.ctx)
	s.Empty(settled(s, stream))

	s.Require().NoError(s.repo.InsertShoppingList(s.ctx, model.ShoppingList{Name: "Hardware"}))

	lists := settled(s, stream)
	s.Require().Len(lists, 1)
	s.Equal("Hardware", lists[0].Name)
}

func (s *RepositorySuite) TestArchiveMovesListBetweenStreams() {
	list := s.createList("Party")

	current := s.repo.CurrentShoppingLists(s.ctx)
	archived := s.repo.ArchivedShoppingLists(s.ctx)
	s.Len(settled(s, current), 1)
	s.Empty(settled(s, archived))

	list.IsArchived = true
	s.Require().NoError(s.repo.UpdateShoppingList(s.ctx, list))

	s.Empty(settled(s, current))
	moved := settled(s, archived)
	s.Require().Len(moved, 1)
	s.Equal(list.ID, moved[0].ID)
	s.True(moved[0].IsArchived)
}

func (s *RepositorySuite) TestUpdateUnknownList() {
	err := s.repo.UpdateShoppingList(s.ctx, model.ShoppingList{ID: 999, Name: "Ghost"})
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *RepositorySuite) TestProducts() {
	list := s.createList("Groceries")
	stream := s.repo.Products(s.ctx, list.ID)
	s.Empty(settled(s, stream))

	s.Run("insert re-emits in insertion order", func() {
		s.Require().NoError(s.repo.InsertProduct(s.ctx, model.Product{Name: "Milk", Quantity: 2, ShoppingListID: list.ID}))
		s.Len(settled(s, stream), 1)
		s.Require().NoError(s.repo.InsertProduct(s.ctx, model.Product{Name: "Eggs", Quantity: 12, ShoppingListID: list.ID}))

		products := settled(s, stream)
		s.Require().Len(products, 2)
		s.Equal("Milk", products[0].Name)
		s.Equal(int64(2), products[0].Quantity)
		s.Equal("Eggs", products[1].Name)
		s.Equal(list.ID, products[1].ShoppingListID)
	})

	s.Run("delete re-emits without the product", func() {
		products := settled(s, s.repo.Products(s.ctx, list.ID))
		s.Require().NoError(s.repo.DeleteProduct(s.ctx, products[0]))

		remaining := settled(s, stream)
		s.Require().Len(remaining, 1)
		s.Equal("Eggs", remaining[0].Name)
	})

	s.Run("delete unknown product", func() {
		s.ErrorIs(s.repo.DeleteProduct(s.ctx, model.Product{ID: 999}), storage.ErrNotFound)
	})
}

func (s *RepositorySuite) TestInsertProductValidation() {
	list := s.createList("Groceries")

	s.ErrorIs(s.repo.InsertProduct(s.ctx, model.Product{Name: "", Quantity: 1, ShoppingListID: list.ID}), storage.ErrInvalid)
	s.ErrorIs(s.repo.InsertProduct(s.ctx, model.Product{Name: "Milk", Quantity: 0, ShoppingListID: list.ID}), storage.ErrInvalid)
	s.ErrorIs(s.repo.InsertProduct(s.ctx, model.Product{Name: "Milk", Quantity: 1, ShoppingListID: list.ID + 100}), storage.ErrNotFound)
}

func (s *RepositorySuite) TestProductsAreScopedToTheirList() {
	a := s.createList("A")
	b := s.createList("B")
	s.Require().NoError(s.repo.InsertProduct(s.ctx, model.Product{Name: "Apples", Quantity: 1, ShoppingListID: a.ID}))

	s.Len(settled(s, s.repo.Products(s.ctx, a.ID)), 1)
	s.Empty(settled(s, s.repo.Products(s.ctx, b.ID)))
}

func (s *RepositorySuite) TestCancelledContextClosesStream() {
	ctx, cancel := context.WithCancel(s.ctx)
	stream := s.repo.CurrentShoppingLists(ctx)
	next(s, stream)
	cancel()

	s.Eventually(func() bool {
		select {
		case _, ok := <-stream:
			return !ok
		default:
			return false
		}
	}, wait, time.Millisecond)
}

func (s *RepositorySuite) TestCancelledContextFailsMutation() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	s.ErrorIs(s.repo.InsertShoppingList(ctx, model.ShoppingList{Name: "Late"}), context.Canceled)
}
