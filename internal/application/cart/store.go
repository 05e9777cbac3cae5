// Package cart keeps one visitor's live cart and writes it through to the
// KV tier after every change.
package cart

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pupuk/storefront/internal/domain/cart"
	"github.com/pupuk/storefront/internal/domain/shared"
)

// SlotKey is the KV key the cart is stored under, per session.
const SlotKey = "pupuk_cart"

// Snapshot is the cart with its derived totals.
type Snapshot struct {
	Items          []cart.Line     `json:"items"`
	TotalItems     int             `json:"total_items"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	TotalFormatted string          `json:"total_formatted"`
}

// Store guards a cart.Cart with a mutex and persists it on every mutation.
type Store struct {
	mu     sync.Mutex
	cart   *cart.Cart
	slot   shared.Slot[[]cart.Line]
	logger *zap.Logger
}

// NewStore loads the cart from slot. Loading is fail-open: a missing or
// unreadable value gives an empty cart.
func NewStore(ctx context.Context, slot shared.Slot[[]cart.Line], logger *zap.Logger) *Store {
	lines, ok, err := slot.Load(ctx)
	if err != nil {
		logger.Warn("Stored cart unreadable, starting empty", zap.String("key", slot.Key()), zap.Error(err))
	}
	if !ok || err != nil {
		lines = nil
	}
	return &Store{cart: cart.New(lines), slot: slot, logger: logger}
}

// AddItem adds qty of p, merging into an existing line.
func (s *Store) AddItem(ctx context.Context, p cart.Product, qty int) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Add(p, qty)
	return s.snapshotLocked(), s.persistLocked(ctx)
}

// RemoveItem drops the line for productID; nothing happens if it is absent.
func (s *Store) RemoveItem(ctx context.Context, productID uuid.UUID) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cart.Remove(productID) {
		return s.snapshotLocked(), nil
	}
	return s.snapshotLocked(), s.persistLocked(ctx)
}

// UpdateQuantity sets the line quantity. Values below one are ignored.
func (s *Store) UpdateQuantity(ctx context.Context, productID uuid.UUID, quantity int) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cart.UpdateQuantity(productID, quantity) {
		return s.snapshotLocked(), nil
	}
	return s.snapshotLocked(), s.persistLocked(ctx)
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	return s.persistLocked(ctx)
}

// Snapshot returns the current lines and totals.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Lines returns a copy of the current lines.
func (s *Store) Lines() []cart.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines()
}

func (s *Store) snapshotLocked() Snapshot {
	total := s.cart.TotalAmount()
	return Snapshot{
		Items:          s.cart.Lines(),
		TotalItems:     s.cart.TotalItems(),
		TotalAmount:    total.Amount(),
		TotalFormatted: total.Format(),
	}
}

// persistLocked writes the whole cart. The in-memory change stays applied
// when the write fails.
func (s *Store) persistLocked(ctx context.Context) error {
	if err := s.slot.Save(ctx, s.cart.Lines()); err != nil {
		s.logger.Warn("Failed to persist cart", zap.String("key", s.slot.Key()), zap.Error(err))
		return err
	}
	return nil
}
