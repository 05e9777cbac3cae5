package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pupuk/storefront/internal/domain/shared"
)

// Runs against a real Redis when STORE_TEST_REDIS_ADDR is set.
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("STORE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("STORE_TEST_REDIS_ADDR not set")
	}

	s, err := NewRedisStore(RedisConfig{Addr: addr}, time.Minute)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	key := "test:" + time.Now().Format(time.RFC3339Nano)

	_, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, shared.ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, key, []byte("v1")))
	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got))

	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, shared.ErrKeyNotFound)
}

func TestNewRedisStore_Unreachable(t *testing.T) {
	_, err := NewRedisStore(RedisConfig{Addr: "127.0.0.1:1"}, time.Minute)
	assert.Error(t, err)
}
