package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pupuk/storefront/internal/domain/shared"
)

const (
	EventTypeOrderPlaced        = "OrderPlaced"
	EventTypeOrderStatusChanged = "OrderStatusChanged"
)

// OrderPlacedEvent is raised once an order header has been stored.
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	CustomerName string          `json:"customer_name"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// NewOrderPlacedEvent creates an OrderPlacedEvent for o.
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, o.ID),
		CustomerName:    o.CustomerName,
		TotalAmount:     o.TotalAmount,
	}
}

// OrderStatusChangedEvent is raised when an admin moves an order along.
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	From Status `json:"from"`
	To   Status `json:"to"`
}

// NewOrderStatusChangedEvent creates an OrderStatusChangedEvent.
func NewOrderStatusChangedEvent(id uuid.UUID, from, to Status) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, id),
		From:            from,
		To:              to,
	}
}
