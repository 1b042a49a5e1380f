// Package memory provides an in-memory repository with the same streaming
// behavior as the SQLite one. Nothing survives the process.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/model"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/result"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/storage"
)

// Store keeps lists and products in maps guarded by a mutex.
type Store struct {
	mu       sync.RWMutex
	lists    map[int64]model.ShoppingList
	products map[int64]model.Product
	nextList int64
	nextProd int64
	closed   bool

	notifier *storage.Notifier
	group    singleflight.Group
	now      func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		lists:    make(map[int64]model.ShoppingList),
		products: make(map[int64]model.Product),
		notifier: storage.NewNotifier(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Close makes every further call fail with storage.ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Store) CurrentShoppingLists(ctx context.Context) <-chan result.Result[[]model.ShoppingList] {
	return storage.Watch(ctx, s.notifier, &s.group, "lists:current", s.listsQuery(false), storage.TableShoppingLists)
}

func (s *Store) ArchivedShoppingLists(ctx context.Context) <-chan result.Result[[]model.ShoppingList] {
	return storage.Watch(ctx, s.notifier, &s.group, "lists:archived", s.listsQuery(true), storage.TableShoppingLists)
}

func (s *Store) Products(ctx context.Context, listID int64) <-chan result.Result[[]model.Product] {
	key := fmt.Sprintf("products:%d", listID)
	return storage.Watch(ctx, s.notifier, &s.group, key, s.productsQuery(listID), storage.TableProducts)
}

func (s *Store) listsQuery(archived bool) storage.Query[[]model.ShoppingList] {
	return func(ctx context.Context) ([]model.ShoppingList, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.mu.RLock()
		defer s.mu.RUnlock()
		if s.closed {
			return nil, storage.ErrClosed
		}

		out := make([]model.ShoppingList, 0, len(s.lists))
		for _, l := range s.lists {
			if l.IsArchived == archived {
				out = append(out, l)
			}
		}
		// Newest first, like the SQLite store.
		slices.SortFunc(out, func(a, b model.ShoppingList) int {
			if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
				return c
			}
			return cmp.Compare(b.ID, a.ID)
		})
		return out, nil
	}
}

func (s *Store) productsQuery(listID int64) storage.Query[[]model.Product] {
	return func(ctx context.Context) ([]model.Product, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.mu.RLock()
		defer s.mu.RUnlock()
		if s.closed {
			return nil, storage.ErrClosed
		}

		out := make([]model.Product, 0)
		for _, p := range s.products {
			if p.ShoppingListID == listID {
				out = append(out, p)
			}
		}
		slices.SortFunc(out, func(a, b model.Product) int { return cmp.Compare(a.ID, b.ID) })
		return out, nil
	}
}

// InsertShoppingList stores a new list. The ID of list is ignored.
func (s *Store) InsertShoppingList(ctx context.Context, list model.ShoppingList) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name := strings.TrimSpace(list.Name)
	if name == "" {
		return storage.Invalid("shopping list name is required")
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return storage.ErrClosed
	}
	s.nextList++
	list.ID = s.nextList
	list.Name = name
	if list.CreatedAt.IsZero() {
		list.CreatedAt = s.now()
	}
	s.lists[list.ID] = list
	s.mu.Unlock()

	s.notifier.Notify(storage.TableShoppingLists)
	return nil
}

// UpdateShoppingList replaces the name and archive state of an existing list.
func (s *Store) UpdateShoppingList(ctx context.Context, list model.ShoppingList) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name := strings.TrimSpace(list.Name)
	if name == "" {
		return storage.Invalid("shopping list name is required")
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return storage.ErrClosed
	}
	existing, ok := s.lists[list.ID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("shopping list %d: %w", list.ID, storage.ErrNotFound)
	}
	existing.Name = name
	existing.IsArchived = list.IsArchived
	s.lists[list.ID] = existing
	s.mu.Unlock()

	s.notifier.Notify(storage.TableShoppingLists)
	return nil
}

// InsertProduct adds a product to an existing list. The ID of product is ignored.
func (s *Store) InsertProduct(ctx context.Context, product model.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name := strings.TrimSpace(product.Name)
	if name == "" {
		return storage.Invalid("product name is required")
	}
	if product.Quantity <= 0 {
		return storage.Invalid("product quantity must be greater than zero")
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return storage.ErrClosed
	}
	if _, ok := s.lists[product.ShoppingListID]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("shopping list %d: %w", product.ShoppingListID, storage.ErrNotFound)
	}
	s.nextProd++
	product.ID = s.nextProd
	product.Name = name
	if product.CreatedAt.IsZero() {
		product.CreatedAt = s.now()
	}
	s.products[product.ID] = product
	s.mu.Unlock()

	s.notifier.Notify(storage.TableProducts)
	return nil
}

// DeleteProduct removes a product by ID.
func (s *Store) DeleteProduct(ctx context.Context, product model.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return storage.ErrClosed
	}
	if _, ok := s.products[product.ID]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("product %d: %w", product.ID, storage.ErrNotFound)
	}
	delete(s.products, product.ID)
	s.mu.Unlock()

	s.notifier.Notify(storage.TableProducts)
	return nil
}
