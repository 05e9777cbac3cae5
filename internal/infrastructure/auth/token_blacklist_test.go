package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pupuk/storefront/internal/infrastructure/cache"
)

func TestTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	bl := NewTokenBlacklist(store)

	revoked, err := bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, bl.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))
	revoked, err = bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	bl.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	revoked, err = bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked, "entries lapse with the token")
	assert.Equal(t, 0, store.Len())
}
