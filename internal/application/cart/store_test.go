package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pupuk/storefront/internal/domain/cart"
	"github.com/pupuk/storefront/internal/domain/shared"
	"github.com/pupuk/storefront/internal/infrastructure/cache"
)

type failingStore struct{ shared.KVStore }

func (failingStore) Set(context.Context, string, []byte) error { return errors.New("disk full") }

func product(price int64) cart.Product {
	return cart.Product{ID: uuid.New(), Name: "Urea", Price: decimal.NewFromInt(price), Unit: "kg"}
}

func newStore(t *testing.T, kv shared.KVStore) *Store {
	t.Helper()
	return NewStore(context.Background(), shared.NewSlot[[]cart.Line](kv, "s1:"+SlotKey), zap.NewNop())
}

func TestStore_TotalsAndPersistence(t *testing.T) {
	ctx := context.Background()
	kv := cache.NewMemoryStore()
	s := newStore(t, kv)

	a, b := product(1000), product(5000)
	_, err := s.AddItem(ctx, a, 2)
	require.NoError(t, err)
	snap, err := s.AddItem(ctx, b, 1)
	require.NoError(t, err)

	assert.Equal(t, 3, snap.TotalItems)
	assert.True(t, decimal.NewFromInt(7000).Equal(snap.TotalAmount))
	assert.Equal(t, "Rp 7.000", snap.TotalFormatted)

	reloaded := newStore(t, kv)
	assert.Equal(t, snap.Items, reloaded.Snapshot().Items, "a new store restores the saved cart")
}

func TestStore_AddMergesExistingLine(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, cache.NewMemoryStore())
	p := product(7000)

	_, _ = s.AddItem(ctx, p, 1)
	snap, _ := s.AddItem(ctx, p, 1)

	require.Len(t, snap.Items, 1)
	assert.Equal(t, 2, snap.Items[0].Quantity)
}

func TestStore_UpdateQuantityBelowOneIgnored(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, cache.NewMemoryStore())
	p := product(7000)
	_, _ = s.AddItem(ctx, p, 3)

	snap, err := s.UpdateQuantity(ctx, p.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Items[0].Quantity)

	snap, err = s.UpdateQuantity(ctx, p.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, snap.Items[0].Quantity)
}

func TestStore_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	kv := cache.NewMemoryStore()
	s := newStore(t, kv)
	a, b := product(1000), product(2000)
	_, _ = s.AddItem(ctx, a, 1)
	_, _ = s.AddItem(ctx, b, 1)

	snap, err := s.RemoveItem(ctx, uuid.New())
	require.NoError(t, err)
	assert.Len(t, snap.Items, 2, "removing an absent product is a no-op")

	snap, err = s.RemoveItem(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, b.ID, snap.Items[0].ProductID)

	require.NoError(t, s.Clear(ctx))
	assert.Empty(t, s.Lines())
	assert.Empty(t, newStore(t, kv).Lines())
}

func TestStore_LoadIsFailOpen(t *testing.T) {
	ctx := context.Background()
	kv := cache.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, "s1:"+SlotKey, []byte("{not json")))

	s := newStore(t, kv)

	assert.Empty(t, s.Lines())
	assert.Equal(t, 0, s.Snapshot().TotalItems)
}

func TestStore_PersistFailureKeepsChange(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, failingStore{cache.NewMemoryStore()})

	snap, err := s.AddItem(ctx, product(1000), 1)

	assert.Error(t, err)
	assert.Equal(t, 1, snap.TotalItems)
	assert.Len(t, s.Lines(), 1)
}
