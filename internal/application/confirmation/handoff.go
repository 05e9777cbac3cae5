// Package confirmation builds the WhatsApp message a shopper sends to the
// store after checkout, and tracks the one-shot auto-redirect to it.
package confirmation

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pupuk/storefront/internal/domain/cart"
	"github.com/pupuk/storefront/internal/domain/settings"
)

// FallbackMessage is sent when there is no customer name or no items.
const FallbackMessage = "Hello, I would like to confirm my order."

// BuildMessage renders the order message.
func BuildMessage(customerName string, items []cart.Line) string {
	name := strings.TrimSpace(customerName)
	if name == "" || len(items) == 0 {
		return FallbackMessage
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%s (%d)", it.Name, it.Quantity)
	}
	return fmt.Sprintf("New order from %s: %s. Please process.", name, strings.Join(parts, ", "))
}

// DeepLink returns the wa.me link that opens a chat with phone prefilled
// with message.
func DeepLink(phone, message string) string {
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(message)
}

// Handoff is what the confirmation page shows.
type Handoff struct {
	CustomerName string        `json:"customer_name,omitempty"`
	Message      string        `json:"message"`
	Link         string        `json:"link"`
	AutoRedirect bool          `json:"auto_redirect"`
	Delay        time.Duration `json:"-"`
}

// SettingsSnapshot supplies the current store settings.
type SettingsSnapshot interface {
	Snapshot() *settings.StoreSettings
}

// Builder creates handoffs using the store's WhatsApp number, or
// defaultPhone when none is configured.
type Builder struct {
	settings     SettingsSnapshot
	defaultPhone string
	delay        time.Duration
}

// NewBuilder creates a Builder. delay is how long the page waits before
// redirecting.
func NewBuilder(snapshot SettingsSnapshot, defaultPhone string, delay time.Duration) *Builder {
	return &Builder{settings: snapshot, defaultPhone: defaultPhone, delay: delay}
}

// Build returns a handoff for a just-placed order with auto-redirect armed.
func (b *Builder) Build(customerName string, items []cart.Line) Handoff {
	msg := BuildMessage(customerName, items)
	return Handoff{
		CustomerName: strings.TrimSpace(customerName),
		Message:      msg,
		Link:         DeepLink(b.phone(), msg),
		AutoRedirect: true,
		Delay:        b.delay,
	}
}

// Generic returns the fallback handoff shown when no order was handed over.
func (b *Builder) Generic() Handoff {
	return Handoff{
		Message: FallbackMessage,
		Link:    DeepLink(b.phone(), FallbackMessage),
		Delay:   b.delay,
	}
}

func (b *Builder) phone() string {
	var current *settings.StoreSettings
	if b.settings != nil {
		current = b.settings.Snapshot()
	}
	return current.WhatsAppOr(b.defaultPhone)
}

// Tracker holds a session's pending handoff. The auto-redirect flag is
// handed out once.
type Tracker struct {
	mu      sync.Mutex
	pending *Handoff
}

// Start replaces the pending handoff.
func (t *Tracker) Start(h Handoff) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = &h
}

// Peek returns the pending handoff without consuming its redirect flag.
func (t *Tracker) Peek() (Handoff, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending == nil {
		return Handoff{}, false
	}
	return *t.pending, true
}

// Consume returns the pending handoff and clears its auto-redirect flag, so
// only the first caller sees AutoRedirect set.
func (t *Tracker) Consume() (Handoff, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending == nil {
		return Handoff{}, false
	}
	h := *t.pending
	t.pending.AutoRedirect = false
	return h, true
}
