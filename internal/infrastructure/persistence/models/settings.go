package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pupuk/storefront/internal/domain/settings"
)

// StoreSettingsModel is the single store profile row.
type StoreSettingsModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	StoreName      string    `gorm:"type:varchar(200)"`
	WhatsAppNumber string    `gorm:"column:whatsapp_number;type:varchar(30)"`
	Phone          string    `gorm:"type:varchar(30)"`
	Address        string    `gorm:"type:text"`
	Email          string    `gorm:"type:varchar(200)"`
	InstagramURL   string    `gorm:"column:instagram_url;type:text"`
	FacebookURL    string    `gorm:"column:facebook_url;type:text"`
	YoutubeURL     string    `gorm:"column:youtube_url;type:text"`
	TiktokURL      string    `gorm:"column:tiktok_url;type:text"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (StoreSettingsModel) TableName() string { return "store_settings" }

func (m *StoreSettingsModel) ToDomain() *settings.StoreSettings {
	return &settings.StoreSettings{
		ID:             m.ID,
		StoreName:      m.StoreName,
		WhatsAppNumber: m.WhatsAppNumber,
		Phone:          m.Phone,
		Address:        m.Address,
		Email:          m.Email,
		InstagramURL:   m.InstagramURL,
		FacebookURL:    m.FacebookURL,
		YoutubeURL:     m.YoutubeURL,
		TiktokURL:      m.TiktokURL,
	}
}

func StoreSettingsModelFromDomain(s *settings.StoreSettings) *StoreSettingsModel {
	return &StoreSettingsModel{
		ID:             s.ID,
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

// SessionEntryModel stores one visitor key-value pair.
type SessionEntryModel struct {
	Key       string    `gorm:"column:session_key;type:varchar(255);primaryKey"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null;index"`
}

func (SessionEntryModel) TableName() string { return "session_entries" }
