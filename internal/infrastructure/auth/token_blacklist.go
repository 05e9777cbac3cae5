package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/pupuk/storefront/internal/domain/shared"
)

// TokenBlacklist revokes tokens before they expire (logout). Entries carry
// their own expiry so stores without per-key TTL work too.
type TokenBlacklist struct {
	store shared.KVStore
	now   func() time.Time
}

// NewTokenBlacklist creates a blacklist on top of store.
func NewTokenBlacklist(store shared.KVStore) *TokenBlacklist {
	return &TokenBlacklist{store: store, now: time.Now}
}

func blacklistKey(jti string) string {
	return "token:blacklist:" + jti
}

// Revoke blacklists jti until expiresAt.
func (b *TokenBlacklist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	return b.store.Set(ctx, blacklistKey(jti), []byte(strconv.FormatInt(expiresAt.Unix(), 10)))
}

// IsRevoked reports whether jti was revoked and has not expired yet.
func (b *TokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	raw, err := b.store.Get(ctx, blacklistKey(jti))
	if errors.Is(err, shared.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	until, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return true, nil
	}
	if b.now().Unix() >= until {
		_ = b.store.Delete(ctx, blacklistKey(jti))
		return false, nil
	}
	return true, nil
}
