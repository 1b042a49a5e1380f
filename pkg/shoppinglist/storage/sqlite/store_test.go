package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/model"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/storage/storagetest"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "shoppinglist.db"))
	require.NoError(t, err)
	return store
}

type SQLiteSuite struct {
	storagetest.RepositorySuite
}

func TestSQLiteSuite(t *testing.T) {
	s := new(SQLiteSuite)
	s.Open = func() (storagetest.Repository, func()) {
		store := openTempStore(t)
		return store, func() { _ = store.Close() }
	}
	suite.Run(t, s)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(context.Background(), " ")
	require.Error(t, err)
}

func TestReopenKeepsDataAndSkipsAppliedMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shoppinglist.db")
	ctx := context.Background()

	store, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.InsertShoppingList(ctx, model.ShoppingList{Name: "Kept"}))
	require.NoError(t, store.Close())

	store, err = Open(ctx, path)
	require.NoError(t, err)
	defer store.Close()

	var applied int
	require.NoError(t, store.sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+migrationTable).Scan(&applied))
	assert.Equal(t, 1, applied)

	lists, err := store.listsQuery(false)(ctx)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, "Kept", lists[0].Name)
}

func TestForeignKeysEnforced(t *testing.T) {
	store := openTempStore(t)
	defer store.Close()

	var enabled int
	require.NoError(t, store.sqlDB.QueryRow("PRAGMA foreign_keys").Scan(&enabled))
	assert.Equal(t, 1, enabled)
}

func TestUpSection(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE a (id INTEGER);\n-- +migrate Down\nDROP TABLE a;\n"
	assert.Equal(t, "\nCREATE TABLE a (id INTEGER);\n", upSection(content))
	assert.Equal(t, "SELECT 1;", upSection("SELECT 1;"))
}

func TestNilStoreIsSafe(t *testing.T) {
	var store *Store
	require.NoError(t, store.Close())
	require.Error(t, store.InsertShoppingList(context.Background(), model.ShoppingList{Name: "x"}))
}
