// Package sqlite provides a SQLite-backed shopping list repository.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/model"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/result"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/storage"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/storage/sqlite/migrations"
)

// Store persists shopping lists and products in SQLite.
type Store struct {
	sqlDB    *sql.DB
	notifier *storage.Notifier
	group    singleflight.Group
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite store at path and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := "file:" + cleanPath +
		"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, notifier: storage.NewNotifier()}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// CurrentShoppingLists streams the lists that are not archived, newest first.
func (s *Store) CurrentShoppingLists(ctx context.Context) <-chan result.Result[[]model.ShoppingList] {
	return storage.Watch(ctx, s.notifier, &s.group, "lists:current", s.listsQuery(false), storage.TableShoppingLists)
}

// ArchivedShoppingLists streams the archived lists, newest first.
func (s *Store) ArchivedShoppingLists(ctx context.Context) <-chan result.Result[[]model.ShoppingList] {
	return storage.Watch(ctx, s.notifier, &s.group, "lists:archived", s.listsQuery(true), storage.TableShoppingLists)
}

// Products streams the products of one list in insertion order.
func (s *Store) Products(ctx context.Context, listID int64) <-chan result.Result[[]model.Product] {
	key := fmt.Sprintf("products:%d", listID)
	return storage.Watch(ctx, s.notifier, &s.group, key, s.productsQuery(listID), storage.TableProducts)
}

func (s *Store) listsQuery(archived bool) storage.Query[[]model.ShoppingList] {
	return func(ctx context.Context) ([]model.ShoppingList, error) {
		if err := s.ready(ctx); err != nil {
			return nil, err
		}

		rows, err := s.sqlDB.QueryContext(
			ctx,
			`SELECT id, name, is_archived, created_at
			   FROM shopping_lists
			  WHERE is_archived = ?
			  ORDER BY created_at DESC, id DESC`,
			archived,
		)
		if err != nil {
			return nil, fmt.Errorf("list shopping lists: %w", err)
		}
		defer rows.Close()

		lists := make([]model.ShoppingList, 0)
		for rows.Next() {
			var list model.ShoppingList
			var createdAt int64
			if err := rows.Scan(&list.ID, &list.Name, &list.IsArchived, &createdAt); err != nil {
				return nil, fmt.Errorf("scan shopping list: %w", err)
			}
			list.CreatedAt = fromMillis(createdAt)
			lists = append(lists, list)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate shopping lists: %w", err)
		}
		return lists, nil
	}
}

func (s *Store) productsQuery(listID int64) storage.Query[[]model.Product] {
	return func(ctx context.Context) ([]model.Product, error) {
		if err := s.ready(ctx); err != nil {
			return nil, err
		}

		rows, err := s.sqlDB.QueryContext(
			ctx,
			`SELECT id, name, quantity, shopping_list_id, created_at
			   FROM products
			  WHERE shopping_list_id = ?
			  ORDER BY id`,
			listID,
		)
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		defer rows.Close()

		products := make([]model.Product, 0)
		for rows.Next() {
			var product model.Product
			var createdAt int64
			if err := rows.Scan(&product.ID, &product.Name, &product.Quantity, &product.ShoppingListID, &createdAt); err != nil {
				return nil, fmt.Errorf("scan product: %w", err)
			}
			product.CreatedAt = fromMillis(createdAt)
			products = append(products, product)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate products: %w", err)
		}
		return products, nil
	}
}

// InsertShoppingList inserts one list. The ID of list is ignored.
func (s *Store) InsertShoppingList(ctx context.Context, list model.ShoppingList) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	name := strings.TrimSpace(list.Name)
	if name == "" {
		return storage.Invalid("shopping list name is required")
	}
	createdAt := list.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO shopping_lists (name, is_archived, created_at) VALUES (?, ?, ?)`,
		name,
		list.IsArchived,
		toMillis(createdAt),
	)
	if err != nil {
		return fmt.Errorf("insert shopping list: %w", err)
	}
	s.notifier.Notify(storage.TableShoppingLists)
	return nil
}

// UpdateShoppingList updates the name and archive state of one list.
func (s *Store) UpdateShoppingList(ctx context.Context, list model.ShoppingList) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	name := strings.TrimSpace(list.Name)
	if name == "" {
		return storage.Invalid("shopping list name is required")
	}

	res, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE shopping_lists SET name = ?, is_archived = ? WHERE id = ?`,
		name,
		list.IsArchived,
		list.ID,
	)
	if err != nil {
		return fmt.Errorf("update shopping list: %w", err)
	}
	if err := requireAffected(res, "shopping list", list.ID); err != nil {
		return err
	}
	s.notifier.Notify(storage.TableShoppingLists)
	return nil
}

// InsertProduct inserts one product into an existing list. The ID of product is ignored.
func (s *Store) InsertProduct(ctx context.Context, product model.Product) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	name := strings.TrimSpace(product.Name)
	if name == "" {
		return storage.Invalid("product name is required")
	}
	if product.Quantity <= 0 {
		return storage.Invalid("product quantity must be greater than zero")
	}
	createdAt := product.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO products (name, quantity, shopping_list_id, created_at) VALUES (?, ?, ?, ?)`,
		name,
		product.Quantity,
		product.ShoppingListID,
		toMillis(createdAt),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("shopping list %d: %w", product.ShoppingListID, storage.ErrNotFound)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	s.notifier.Notify(storage.TableProducts)
	return nil
}

// DeleteProduct deletes one product by ID.
func (s *Store) DeleteProduct(ctx context.Context, product model.Product) error {
	if err := s.ready(ctx); err != nil {
		return err
	}

	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, product.ID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if err := requireAffected(res, "product", product.ID); err != nil {
		return err
	}
	s.notifier.Notify(storage.TableProducts)
	return nil
}

func requireAffected(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %d: rows affected: %w", what, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", what, id, storage.ErrNotFound)
	}
	return nil
}

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint failed")
}
