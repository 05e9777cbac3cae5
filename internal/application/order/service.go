// Package order serves the back-office view of submitted orders.
package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pupuk/storefront/internal/domain/order"
	"github.com/pupuk/storefront/internal/domain/shared"
	"github.com/pupuk/storefront/internal/domain/shared/valueobject"
	"github.com/pupuk/storefront/internal/infrastructure/logger"
)

// Counter counts stored records.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// ListQuery filters the order listing
type ListQuery struct {
	Status   string `form:"status" binding:"omitempty,oneof=new processing shipped completed cancelled"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// UpdateStatusRequest moves an order along its lifecycle
// @Description Request body for changing an order's status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=new processing shipped completed cancelled" example:"processing" enums:"new,processing,shipped,completed,cancelled"`
}

// OrderResponse represents an order header in API responses
type OrderResponse struct {
	ID               uuid.UUID       `json:"id"`
	CustomerName     string          `json:"customer_name"`
	CustomerPhone    string          `json:"customer_phone"`
	ShippingProvince string          `json:"shipping_province"`
	ShippingRegency  string          `json:"shipping_regency"`
	ShippingDistrict string          `json:"shipping_district"`
	ShippingVillage  string          `json:"shipping_village"`
	AddressDetail    string          `json:"address_detail"`
	ShippingAddress  string          `json:"shipping_address"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	TotalFormatted   string          `json:"total_formatted"`
	Notes            string          `json:"notes"`
	Status           order.Status    `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// LineResponse represents an order line in API responses
type LineResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// DetailResponse is an order with its lines
type DetailResponse struct {
	OrderResponse
	Items []LineResponse `json:"items"`
}

// StatsResponse feeds the admin dashboard
type StatsResponse struct {
	Products         int64           `json:"products"`
	Orders           int64           `json:"orders"`
	Suppliers        int64           `json:"suppliers"`
	Revenue          decimal.Decimal `json:"revenue"`
	RevenueFormatted string          `json:"revenue_formatted"`
}

// ToOrderResponse converts an order header
func ToOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:               o.ID,
		CustomerName:     o.CustomerName,
		CustomerPhone:    o.CustomerPhone,
		ShippingProvince: o.ShippingProvince,
		ShippingRegency:  o.ShippingRegency,
		ShippingDistrict: o.ShippingDistrict,
		ShippingVillage:  o.ShippingVillage,
		AddressDetail:    o.AddressDetail,
		ShippingAddress:  o.ShippingAddress(),
		TotalAmount:      o.TotalAmount,
		TotalFormatted:   valueobject.NewRupiah(o.TotalAmount).Format(),
		Notes:            o.Notes,
		Status:           o.Status,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

// ToLineResponses converts order lines
func ToLineResponses(lines []order.Line) []LineResponse {
	items := make([]LineResponse, len(lines))
	for i, l := range lines {
		items[i] = LineResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
		}
	}
	return items
}

// Service is the admin order service.
type Service struct {
	orders    order.Repository
	products  Counter
	suppliers Counter
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewService creates a new Service. publisher may be nil.
func NewService(orders order.Repository, products, suppliers Counter, publisher shared.EventPublisher, logger *zap.Logger) *Service {
	return &Service{orders: orders, products: products, suppliers: suppliers, publisher: publisher, logger: logger}
}

// List returns orders newest first.
func (s *Service) List(ctx context.Context, q ListQuery) (shared.Paginated[OrderResponse], error) {
	page := shared.Page{Page: q.Page, PageSize: q.PageSize}.Normalized()
	orders, total, err := s.orders.List(ctx, order.ListFilter{Page: page, Status: order.Status(q.Status)})
	if err != nil {
		return shared.Paginated[OrderResponse]{}, err
	}
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = ToOrderResponse(&orders[i])
	}
	return shared.NewPaginated(out, total, page), nil
}

// Get returns one order with its lines.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*DetailResponse, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	lines, err := s.orders.FindLines(ctx, id)
	if err != nil {
		return nil, err
	}
	return &DetailResponse{OrderResponse: ToOrderResponse(o), Items: ToLineResponses(lines)}, nil
}

// UpdateStatus applies a lifecycle transition.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := o.Status
	if err := o.TransitionTo(order.Status(req.Status)); err != nil {
		return nil, err
	}
	if err := s.orders.UpdateStatus(ctx, id, from, o.Status); err != nil {
		return nil, err
	}

	logger.L(ctx, s.logger).Info("Order status changed",
		zap.String("order_id", id.String()),
		zap.Stringer("from", from),
		zap.Stringer("to", o.Status),
	)
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, order.NewOrderStatusChangedEvent(id, from, o.Status)); err != nil {
			logger.L(ctx, s.logger).Warn("Failed to publish OrderStatusChanged", zap.Error(err))
		}
	}

	resp := ToOrderResponse(o)
	return &resp, nil
}

// Stats returns the dashboard counters. Revenue excludes cancelled orders.
func (s *Service) Stats(ctx context.Context) (*StatsResponse, error) {
	products, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.Count(ctx)
	if err != nil {
		return nil, err
	}
	suppliers, err := s.suppliers.Count(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.orders.Revenue(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsResponse{
		Products:         products,
		Orders:           orders,
		Suppliers:        suppliers,
		Revenue:          revenue,
		RevenueFormatted: valueobject.NewRupiah(revenue).Format(),
	}, nil
}
