// Package settings serves the store profile, keeping an in-memory snapshot
// that is refreshed on every admin update.
package settings

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pupuk/storefront/internal/domain/settings"
)

// UpdateRequest is the admin settings form.
// @Description Request body for updating the store settings
type UpdateRequest struct {
	StoreName      string `json:"store_name" binding:"max=200" example:"Toko Tani Makmur"`
	WhatsAppNumber string `json:"whatsapp_number" binding:"omitempty,phone,max=30" example:"6281234567890"`
	Phone          string `json:"phone" binding:"omitempty,phone,max=30" example:"0221234567"`
	Address        string `json:"address" binding:"max=1000"`
	Email          string `json:"email" binding:"omitempty,email,max=200" example:"toko@example.com"`
	InstagramURL   string `json:"instagram_url" binding:"omitempty,url" example:"https://instagram.com/tokotani"`
	FacebookURL    string `json:"facebook_url" binding:"omitempty,url"`
	YoutubeURL     string `json:"youtube_url" binding:"omitempty,url"`
	TiktokURL      string `json:"tiktok_url" binding:"omitempty,url"`
}

// Response is the settings as returned to clients.
type Response struct {
	StoreName      string `json:"store_name"`
	WhatsAppNumber string `json:"whatsapp_number"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Email          string `json:"email"`
	InstagramURL   string `json:"instagram_url"`
	FacebookURL    string `json:"facebook_url"`
	YoutubeURL     string `json:"youtube_url"`
	TiktokURL      string `json:"tiktok_url"`
}

// ToResponse converts domain settings to a Response.
func ToResponse(s *settings.StoreSettings) Response {
	return Response{
		StoreName:      s.StoreName,
		WhatsAppNumber: s.WhatsAppNumber,
		Phone:          s.Phone,
		Address:        s.Address,
		Email:          s.Email,
		InstagramURL:   s.InstagramURL,
		FacebookURL:    s.FacebookURL,
		YoutubeURL:     s.YoutubeURL,
		TiktokURL:      s.TiktokURL,
	}
}

// Service reads and writes the single settings row.
type Service struct {
	repo   settings.Repository
	logger *zap.Logger

	mu       sync.RWMutex
	snapshot settings.StoreSettings
}

// NewService loads the current row. A load failure leaves an empty snapshot
// and is logged; the storefront then falls back to configured defaults.
func NewService(ctx context.Context, repo settings.Repository, logger *zap.Logger) *Service {
	s := &Service{repo: repo, logger: logger}
	if err := s.Refresh(ctx); err != nil {
		logger.Warn("Failed to load store settings", zap.Error(err))
	}
	return s
}

// Refresh reloads the snapshot from the repository.
func (s *Service) Refresh(ctx context.Context) error {
	current, err := s.repo.Get(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.snapshot = *current
	s.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the last loaded settings.
func (s *Service) Snapshot() *settings.StoreSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.snapshot
	return &snap
}

// Get returns the snapshot as a Response.
func (s *Service) Get() Response {
	return ToResponse(s.Snapshot())
}

// Update saves req and swaps the snapshot.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (Response, error) {
	next := s.Snapshot()
	next.StoreName = strings.TrimSpace(req.StoreName)
	next.WhatsAppNumber = strings.TrimSpace(req.WhatsAppNumber)
	next.Phone = strings.TrimSpace(req.Phone)
	next.Address = strings.TrimSpace(req.Address)
	next.Email = strings.TrimSpace(req.Email)
	next.InstagramURL = strings.TrimSpace(req.InstagramURL)
	next.FacebookURL = strings.TrimSpace(req.FacebookURL)
	next.YoutubeURL = strings.TrimSpace(req.YoutubeURL)
	next.TiktokURL = strings.TrimSpace(req.TiktokURL)

	if err := s.repo.Save(ctx, next); err != nil {
		return Response{}, err
	}

	s.mu.Lock()
	s.snapshot = *next
	s.mu.Unlock()

	s.logger.Info("Store settings updated", zap.String("store_name", next.StoreName))
	return ToResponse(next), nil
}
