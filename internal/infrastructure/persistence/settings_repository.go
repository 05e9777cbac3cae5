package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pupuk/storefront/internal/domain/settings"
	"github.com/pupuk/storefront/internal/infrastructure/persistence/models"
)

// GormSettingsRepository implements settings.Repository using GORM
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Get returns the first settings row, or an empty value when none exists.
func (r *GormSettingsRepository) Get(ctx context.Context) (*settings.StoreSettings, error) {
	var model models.StoreSettingsModel
	err := r.db.WithContext(ctx).Order("updated_at ASC").First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &settings.StoreSettings{}, nil
	}
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save updates the existing row or inserts the first one, assigning its ID.
func (r *GormSettingsRepository) Save(ctx context.Context, s *settings.StoreSettings) error {
	if s.ID == uuid.Nil {
		current, err := r.Get(ctx)
		if err != nil {
			return err
		}
		s.ID = current.ID
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
	}
	model := models.StoreSettingsModelFromDomain(s)
	model.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(model).Error
}

var _ settings.Repository = (*GormSettingsRepository)(nil)
