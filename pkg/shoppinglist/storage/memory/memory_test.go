package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/model"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/storage"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/storage/storagetest"
)

type MemorySuite struct {
	storagetest.RepositorySuite
}

func TestMemorySuite(t *testing.T) {
	s := new(MemorySuite)
	s.Open = func() (storagetest.Repository, func()) {
		store := New()
		return store, func() { _ = store.Close() }
	}
	suite.Run(t, s)
}

func TestClosedStoreRejectsCalls(t *testing.T) {
	store := New()
	require.NoError(t, store.Close())

	err := store.InsertShoppingList(context.Background(), model.ShoppingList{Name: "Late"})
	require.ErrorIs(t, err, storage.ErrClosed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stream := store.CurrentShoppingLists(ctx)
	<-stream // loading
	r := <-stream
	require.ErrorIs(t, r.Err(), storage.ErrClosed)
}
