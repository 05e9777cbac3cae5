// Package order models a submitted storefront order: a header plus its lines.
package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pupuk/storefront/internal/domain/cart"
	"github.com/pupuk/storefront/internal/domain/customer"
	"github.com/pupuk/storefront/internal/domain/region"
	"github.com/pupuk/storefront/internal/domain/shared"
)

// Order is the header record of a submitted order.
type Order struct {
	shared.BaseEntity
	CustomerName     string
	CustomerPhone    string
	ShippingProvince string
	ShippingRegency  string
	ShippingDistrict string
	ShippingVillage  string
	AddressDetail    string
	TotalAmount      decimal.Decimal
	Notes            string
	Status           Status
}

// Line is one product row of an order. Position is the line's index in
// the cart it came from.
type Line struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	Position    int
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
	CreatedAt   time.Time
}

// NewOrder builds the header for a checkout. TotalAmount is the sum of line
// subtotals; status always starts as new.
func NewOrder(contact customer.Contact, address region.Selection, notes string, lines []cart.Line) (*Order, error) {
	contact = contact.Normalized()
	if !contact.HasNameAndPhone() {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name and phone are required")
	}
	if !address.IsComplete() {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Shipping address is incomplete")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must have at least one line")
	}

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}

	return &Order{
		BaseEntity:       shared.NewBaseEntity(),
		CustomerName:     contact.Name,
		CustomerPhone:    contact.Phone,
		ShippingProvince: address.ProvinceName,
		ShippingRegency:  address.RegencyName,
		ShippingDistrict: address.DistrictName,
		ShippingVillage:  address.VillageName,
		AddressDetail:    contact.AddressDetail,
		TotalAmount:      total,
		Notes:            notes,
		Status:           StatusNew,
	}, nil
}

// NewLines derives order lines from cart lines for the stored order id.
func NewLines(orderID uuid.UUID, lines []cart.Line) []Line {
	now := time.Now()
	out := make([]Line, 0, len(lines))
	for i, l := range lines {
		out = append(out, Line{
			ID:          uuid.New(),
			OrderID:     orderID,
			Position:    i,
			ProductID:   l.ProductID,
			ProductName: l.Name,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal(),
			CreatedAt:   now,
		})
	}
	return out
}

// TransitionTo moves the order to target if the lifecycle allows it.
func (o *Order) TransitionTo(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.ErrInvalidState.Wrap(fmt.Errorf("order %s cannot move from %s to %s", o.ID, o.Status, target))
	}
	o.Status = target
	o.Touch()
	return nil
}

// ShippingAddress joins the address parts for display.
func (o *Order) ShippingAddress() string {
	var parts []string
	for _, p := range []string{o.AddressDetail, o.ShippingVillage, o.ShippingDistrict, o.ShippingRegency, o.ShippingProvince} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// ListFilter narrows an order listing.
type ListFilter struct {
	shared.Page
	Status Status
}

// Repository persists orders. Header and lines are written by separate calls.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	CreateLines(ctx context.Context, lines []Line) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindLines(ctx context.Context, orderID uuid.UUID) ([]Line, error)
	List(ctx context.Context, filter ListFilter) ([]Order, int64, error)
	// UpdateStatus writes to only if the stored status is still from. It
	// returns shared.ErrConflict when another writer got there first.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) error
	Count(ctx context.Context) (int64, error)
	// Revenue sums TotalAmount over every order that is not cancelled.
	Revenue(ctx context.Context) (decimal.Decimal, error)
}
