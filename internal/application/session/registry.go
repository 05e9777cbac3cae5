// Package session keeps the per-visitor storefront state: cart, address
// picker, contact cache and the pending order confirmation.
package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pupuk/storefront/internal/application/address"
	cartapp "github.com/pupuk/storefront/internal/application/cart"
	"github.com/pupuk/storefront/internal/application/confirmation"
	customerapp "github.com/pupuk/storefront/internal/application/customer"
	"github.com/pupuk/storefront/internal/domain/cart"
	"github.com/pupuk/storefront/internal/domain/customer"
	"github.com/pupuk/storefront/internal/domain/region"
	"github.com/pupuk/storefront/internal/domain/shared"
)

// Session is the state of one visitor.
type Session struct {
	ID      string
	Cart    *cartapp.Store
	Address *address.Picker
	Contact *customerapp.ContactBook
	Handoff *confirmation.Tracker

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Registry builds sessions lazily from the KV tier and keeps them in memory.
// Building a session never calls the region service: the address picker is
// activated by the address and checkout handlers.
type Registry struct {
	store   shared.KVStore
	catalog region.Catalog
	logger  *zap.Logger
	base    context.Context
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates a Registry. base outlives requests and is used for the
// address picker's background fetches.
func NewRegistry(base context.Context, store shared.KVStore, catalog region.Catalog, logger *zap.Logger) *Registry {
	return &Registry{
		store:    store,
		catalog:  catalog,
		logger:   logger,
		base:     base,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Key namespaces a slot key under a session id.
func Key(sessionID, slotKey string) string {
	return sessionID + ":" + slotKey
}

// Get returns the session for id, restoring it from the KV tier on first use.
func (r *Registry) Get(ctx context.Context, id string) *Session {
	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		// Build outside the lock and keep whichever session won the race.
		built := r.build(ctx, id)
		r.mu.Lock()
		if s, ok = r.sessions[id]; !ok {
			s = built
			r.sessions[id] = s
		}
		r.mu.Unlock()
	}

	s.touch(r.now())
	return s
}

func (r *Registry) build(ctx context.Context, id string) *Session {
	log := r.logger.With(zap.String("session_id", id))

	picker := address.NewPicker(
		r.catalog,
		shared.NewSlot[region.Selection](r.store, Key(id, address.SlotKey)),
		log,
		address.WithBaseContext(r.base),
		address.WithFocusHint(func(level region.Level) {
			log.Debug("Region level ready", zap.Stringer("level", level))
		}),
	)
	log.Debug("Session restored")
	return &Session{
		ID:      id,
		Cart:    cartapp.NewStore(ctx, shared.NewSlot[[]cart.Line](r.store, Key(id, cartapp.SlotKey)), log),
		Address: picker,
		Contact: customerapp.NewContactBook(ctx, shared.NewSlot[customer.Contact](r.store, Key(id, customerapp.SlotKey)), log),
		Handoff: &confirmation.Tracker{},
	}
}

// Len reports how many sessions are held in memory.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Evict drops in-memory sessions idle for longer than idle. Their persisted
// state stays in the KV tier and is restored on the next request.
func (r *Registry) Evict(idle time.Duration) int {
	cutoff := r.now().Add(-idle)
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.sessions {
		if s.idleSince().Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	if n > 0 {
		r.logger.Debug("Evicted idle sessions", zap.Int("count", n))
	}
	return n
}
