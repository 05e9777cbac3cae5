package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pupuk/storefront/internal/domain/order"
	"github.com/pupuk/storefront/internal/domain/shared"
	"github.com/pupuk/storefront/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create inserts the order header only.
func (r *GormOrderRepository) Create(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Create(models.OrderModelFromDomain(o)).Error
}

// CreateLines inserts all lines in one statement.
func (r *GormOrderRepository) CreateLines(ctx context.Context, lines []order.Line) error {
	if len(lines) == 0 {
		return nil
	}
	rows := make([]models.OrderItemModel, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, models.OrderItemModelFromDomain(l))
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindLines returns the lines of an order in cart order.
func (r *GormOrderRepository) FindLines(ctx context.Context, orderID uuid.UUID) ([]order.Line, error) {
	var rows []models.OrderItemModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("position ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	lines := make([]order.Line, len(rows))
	for i := range rows {
		lines[i] = rows[i].ToDomain()
	}
	return lines, nil
}

// List returns orders newest first along with the total matching count.
func (r *GormOrderRepository) List(ctx context.Context, filter order.ListFilter) ([]order.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderModel{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page.Normalized()

	var rows []models.OrderModel
	if err := query.Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]order.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, total, nil
}

// UpdateStatus sets the status column when it still holds from.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to order.Status) error {
	result := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]any{"status": string(to), "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var n int64
	if err := r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return shared.ErrNotFound
	}
	return shared.ErrConflict.Wrap(fmt.Errorf("order %s is no longer %s", id, from))
}

// Count returns the number of orders.
func (r *GormOrderRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.OrderModel{}).Count(&n).Error
	return n, err
}

// Revenue sums the totals of orders that were not cancelled.
func (r *GormOrderRepository) Revenue(ctx context.Context) (decimal.Decimal, error) {
	var result struct {
		Total decimal.NullDecimal
	}
	err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("status <> ?", string(order.StatusCancelled)).
		Select("SUM(total_amount) AS total").
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !result.Total.Valid {
		return decimal.Zero, nil
	}
	return result.Total.Decimal, nil
}

var _ order.Repository = (*GormOrderRepository)(nil)
