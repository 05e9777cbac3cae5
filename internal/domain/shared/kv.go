package shared

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrKeyNotFound is returned by KVStore.Get for a missing key
var ErrKeyNotFound = NewDomainError("KEY_NOT_FOUND", "Key not found")

// KVStore is a small durable key-value tier for per-visitor state.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Slot is a typed view of one key, JSON encoded.
type Slot[T any] struct {
	store KVStore
	key   string
}

// NewSlot binds key in store to values of type T.
func NewSlot[T any](store KVStore, key string) Slot[T] {
	return Slot[T]{store: store, key: key}
}

// Key returns the underlying key.
func (s Slot[T]) Key() string { return s.key }

// Load returns the stored value. ok is false when the key is missing; a
// non-nil error means the value exists but could not be read or decoded.
func (s Slot[T]) Load(ctx context.Context) (value T, ok bool, err error) {
	raw, err := s.store.Get(ctx, s.key)
	if errors.Is(err, ErrKeyNotFound) {
		return value, false, nil
	}
	if err != nil {
		return value, false, fmt.Errorf("load %s: %w", s.key, err)
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		var zero T
		return zero, false, fmt.Errorf("decode %s: %w", s.key, err)
	}
	return value, true, nil
}

// Save replaces the stored value.
func (s Slot[T]) Save(ctx context.Context, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.key, err)
	}
	if err := s.store.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	return nil
}

// Clear removes the stored value.
func (s Slot[T]) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clear %s: %w", s.key, err)
	}
	return nil
}
