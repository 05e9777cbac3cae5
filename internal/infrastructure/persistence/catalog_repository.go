package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pupuk/storefront/internal/domain/catalog"
	"github.com/pupuk/storefront/internal/domain/shared"
	"github.com/pupuk/storefront/internal/infrastructure/persistence/models"
)

// GormCategoryRepository implements catalog.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var model models.CategoryModel
	if err := findByID(ctx, r.db, &model, id); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns categories sorted by name.
func (r *GormCategoryRepository) List(ctx context.Context) ([]catalog.Category, error) {
	var rows []models.CategoryModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]catalog.Category, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

func (r *GormCategoryRepository) Save(ctx context.Context, c *catalog.Category) error {
	return r.db.WithContext(ctx).Save(models.CategoryModelFromDomain(c)).Error
}

func (r *GormCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.CategoryModel{}, id)
}

// GormBrandRepository implements catalog.BrandRepository using GORM
type GormBrandRepository struct {
	db *gorm.DB
}

// NewGormBrandRepository creates a new GormBrandRepository
func NewGormBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

func (r *GormBrandRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Brand, error) {
	var model models.BrandModel
	if err := findByID(ctx, r.db, &model, id); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormBrandRepository) List(ctx context.Context) ([]catalog.Brand, error) {
	var rows []models.BrandModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]catalog.Brand, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

func (r *GormBrandRepository) Save(ctx context.Context, b *catalog.Brand) error {
	return r.db.WithContext(ctx).Save(models.BrandModelFromDomain(b)).Error
}

func (r *GormBrandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.BrandModel{}, id)
}

// GormSupplierRepository implements catalog.SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

func (r *GormSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Supplier, error) {
	var model models.SupplierModel
	if err := findByID(ctx, r.db, &model, id); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormSupplierRepository) List(ctx context.Context) ([]catalog.Supplier, error) {
	var rows []models.SupplierModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]catalog.Supplier, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

func (r *GormSupplierRepository) Save(ctx context.Context, s *catalog.Supplier) error {
	return r.db.WithContext(ctx).Save(models.SupplierModelFromDomain(s)).Error
}

func (r *GormSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.SupplierModel{}, id)
}

func (r *GormSupplierRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.SupplierModel{}).Count(&n).Error
	return n, err
}

func findByID(ctx context.Context, db *gorm.DB, dest any, id uuid.UUID) error {
	if err := db.WithContext(ctx).Where("id = ?", id).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.ErrNotFound
		}
		return err
	}
	return nil
}

var (
	_ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
	_ catalog.BrandRepository    = (*GormBrandRepository)(nil)
	_ catalog.SupplierRepository = (*GormSupplierRepository)(nil)
)
