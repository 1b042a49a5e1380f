package shoppinglist

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/config"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/constants"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/model"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/router"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/storage/memory"
)

func memoryConfig() config.Config {
	cfg := config.Default()
	cfg.Storage = constants.StorageMemory
	return cfg
}

func settle(t *testing.T, app *App) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := app.Settle(ctx)
	require.NoError(t, err)
}

func TestInitWithMemoryStorage(t *testing.T) {
	reg := prometheus.NewRegistry()
	app, err := Init(context.Background(), Options{Config: memoryConfig(), Registerer: reg})
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, router.KindShoppingListCurrent, app.Navigator.Current().Kind())

	app.State.CreateShoppingList("Groceries")
	settle(t, app)

	lists, ok := app.State.Current().ShoppingLists.Data()
	require.True(t, ok)
	require.Len(t, lists, 1)
	assert.Equal(t, "Groceries", lists[0].Name)

	assert.Equal(t, 1.0, testutil.ToFloat64(app.Metrics.MutationsStarted.WithLabelValues("create_shopping_list")))
}

func TestInitWithSQLiteStorage(t *testing.T) {
	cfg := config.Default()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "lists.db")

	app, err := Init(context.Background(), Options{Config: cfg})
	require.NoError(t, err)

	app.State.CreateShoppingList("Hardware")
	settle(t, app)
	require.NoError(t, app.Close())

	app, err = Init(context.Background(), Options{Config: cfg})
	require.NoError(t, err)
	defer app.Close()

	settle(t, app)
	lists, _ := app.State.Current().ShoppingLists.Data()
	require.Len(t, lists, 1)
	assert.Equal(t, "Hardware", lists[0].Name)
}

func TestInitUsesSuppliedRepository(t *testing.T) {
	store := memory.New()
	cfg := config.Default()
	cfg.Storage = "ignored"

	app, err := Init(context.Background(), Options{Config: cfg, Repository: store})
	require.NoError(t, err)
	require.NoError(t, app.Close())

	// The caller still owns the store.
	assert.NoError(t, store.InsertShoppingList(context.Background(), model.ShoppingList{Name: "Still open"}))
}

func TestInitErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  func() config.Config
		op   string
	}{
		{
			name: "unknown storage",
			cfg: func() config.Config {
				cfg := config.Default()
				cfg.Storage = "postgres"
				return cfg
			},
			op: "open_storage",
		},
		{
			name: "unopenable database",
			cfg: func() config.Config {
				cfg := config.Default()
				cfg.DatabasePath = filepath.Join(t.TempDir(), "missing", "dir", "lists.db")
				return cfg
			},
			op: "open_storage",
		},
		{
			name: "bad language",
			cfg: func() config.Config {
				cfg := memoryConfig()
				cfg.Language = "??"
				return cfg
			},
			op: "load_language",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Init(context.Background(), Options{Config: tt.cfg()})
			require.Error(t, err)
			assert.True(t, IsInfrastructureError(err))

			var infraErr *InfrastructureError
			require.True(t, errors.As(err, &infraErr))
			assert.Equal(t, tt.op, infraErr.Op)
		})
	}
}

func TestCloseTwice(t *testing.T) {
	app, err := Init(context.Background(), Options{Config: memoryConfig()})
	require.NoError(t, err)

	require.NoError(t, app.Close())
	assert.ErrorIs(t, app.Close(), ErrClosed)

	_, err = app.Settle(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestInfrastructureErrorMessage(t *testing.T) {
	cause := errors.New("disk full")
	err := NewInfrastructureError("open_storage", cause)
	assert.Equal(t, "shoppinglist: open_storage: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "shoppinglist: close_storage", (&InfrastructureError{Op: "close_storage"}).Error())
	assert.False(t, IsInfrastructureError(cause))
}
