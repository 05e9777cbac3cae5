// Package customer remembers the checkout contact details per visitor.
package customer

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/pupuk/storefront/internal/domain/customer"
	"github.com/pupuk/storefront/internal/domain/shared"
)

// SlotKey is the KV key the contact is stored under, per session.
const SlotKey = "pupuk_customer_cache"

// ContactBook holds the last contact details a visitor entered.
type ContactBook struct {
	mu      sync.Mutex
	contact customer.Contact
	slot    shared.Slot[customer.Contact]
	logger  *zap.Logger
}

// NewContactBook restores the stored contact, falling back to an empty one.
func NewContactBook(ctx context.Context, slot shared.Slot[customer.Contact], logger *zap.Logger) *ContactBook {
	c, _, err := slot.Load(ctx)
	if err != nil {
		logger.Warn("Stored contact unreadable, starting empty", zap.String("key", slot.Key()), zap.Error(err))
		c = customer.Contact{}
	}
	return &ContactBook{contact: c, slot: slot, logger: logger}
}

// Get returns the remembered contact.
func (b *ContactBook) Get() customer.Contact {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.contact
}

// Update replaces the contact and saves it.
func (b *ContactBook) Update(ctx context.Context, c customer.Contact) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.contact = c
	if err := b.slot.Save(ctx, c); err != nil {
		b.logger.Warn("Failed to persist contact", zap.String("key", b.slot.Key()), zap.Error(err))
		return err
	}
	return nil
}
