// Package settings holds the single store profile row edited from the admin.
package settings

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// StoreSettings is the store's public profile.
type StoreSettings struct {
	ID             uuid.UUID
	StoreName      string
	WhatsAppNumber string
	Phone          string
	Address        string
	Email          string
	InstagramURL   string
	FacebookURL    string
	YoutubeURL     string
	TiktokURL      string
}

// WhatsAppOr returns the configured WhatsApp number in wa.me form (digits
// only, leading 0 replaced by the 62 country code), or fallback when unset.
func (s *StoreSettings) WhatsAppOr(fallback string) string {
	if s == nil {
		return NormalizePhone(fallback)
	}
	if n := NormalizePhone(s.WhatsAppNumber); n != "" {
		return n
	}
	return NormalizePhone(fallback)
}

// NormalizePhone strips everything but digits and rewrites a local 0 prefix
// to 62.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if strings.HasPrefix(digits, "0") {
		digits = "62" + digits[1:]
	}
	return digits
}

// Repository loads and stores the settings row.
type Repository interface {
	// Get returns the stored settings, or an empty value with a nil ID when
	// nothing has been saved yet.
	Get(ctx context.Context) (*StoreSettings, error)
	Save(ctx context.Context, s *StoreSettings) error
}
