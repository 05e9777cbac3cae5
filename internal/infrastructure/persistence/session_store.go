package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pupuk/storefront/internal/domain/shared"
	"github.com/pupuk/storefront/internal/infrastructure/persistence/models"
)

// GormKVStore keeps visitor key-value entries in the session_entries table.
type GormKVStore struct {
	db *gorm.DB
}

// NewGormKVStore creates a new GormKVStore
func NewGormKVStore(db *gorm.DB) *GormKVStore {
	return &GormKVStore{db: db}
}

func (s *GormKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry models.SessionEntryModel
	if err := s.db.WithContext(ctx).Where("session_key = ?", key).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrKeyNotFound
		}
		return nil, err
	}
	return entry.Value, nil
}

// Set upserts the entry.
func (s *GormKVStore) Set(ctx context.Context, key string, value []byte) error {
	entry := models.SessionEntryModel{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (s *GormKVStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("session_key = ?", key).Delete(&models.SessionEntryModel{}).Error
}

// PurgeBefore removes entries not written since cutoff.
func (s *GormKVStore) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Where("updated_at < ?", cutoff).Delete(&models.SessionEntryModel{})
	return result.RowsAffected, result.Error
}

var _ shared.KVStore = (*GormKVStore)(nil)
