package customer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pupuk/storefront/internal/domain/customer"
	"github.com/pupuk/storefront/internal/domain/shared"
	"github.com/pupuk/storefront/internal/infrastructure/cache"
)

func TestContactBook(t *testing.T) {
	ctx := context.Background()
	kv := cache.NewMemoryStore()
	slot := shared.NewSlot[customer.Contact](kv, "s1:"+SlotKey)

	book := NewContactBook(ctx, slot, zap.NewNop())
	assert.Equal(t, customer.Contact{}, book.Get())

	c := customer.Contact{Name: "Budi", Phone: "08123", AddressDetail: "RT 01"}
	require.NoError(t, book.Update(ctx, c))
	assert.Equal(t, c, book.Get())

	assert.Equal(t, c, NewContactBook(ctx, slot, zap.NewNop()).Get())

	raw, err := kv.Get(ctx, "s1:"+SlotKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Budi","phone":"08123","addressDetail":"RT 01"}`, string(raw))
}

func TestContactBook_UnreadableValue(t *testing.T) {
	ctx := context.Background()
	kv := cache.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, "s1:"+SlotKey, []byte("[")))

	book := NewContactBook(ctx, shared.NewSlot[customer.Contact](kv, "s1:"+SlotKey), zap.NewNop())

	assert.Equal(t, customer.Contact{}, book.Get())
}
