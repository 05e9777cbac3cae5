package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pupuk/storefront/internal/domain/order"
)

// OrderModel is the persistence model for an order header.
type OrderModel struct {
	BaseModel
	CustomerName     string          `gorm:"type:varchar(200);not null"`
	CustomerPhone    string          `gorm:"type:varchar(50);not null"`
	ShippingProvince string          `gorm:"type:varchar(100);not null"`
	ShippingRegency  string          `gorm:"column:shipping_regency;type:varchar(100);not null"`
	ShippingDistrict string          `gorm:"type:varchar(100);not null"`
	ShippingVillage  string          `gorm:"type:varchar(100);not null"`
	AddressDetail    string          `gorm:"type:text"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Notes            string          `gorm:"type:text"`
	Status           string          `gorm:"type:varchar(20);not null;default:'new';index"`
}

func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() *order.Order {
	return &order.Order{
		BaseEntity:       m.BaseModel.ToDomain(),
		CustomerName:     m.CustomerName,
		CustomerPhone:    m.CustomerPhone,
		ShippingProvince: m.ShippingProvince,
		ShippingRegency:  m.ShippingRegency,
		ShippingDistrict: m.ShippingDistrict,
		ShippingVillage:  m.ShippingVillage,
		AddressDetail:    m.AddressDetail,
		TotalAmount:      m.TotalAmount,
		Notes:            m.Notes,
		Status:           order.Status(m.Status),
	}
}

// OrderModelFromDomain creates a persistence model from a domain Order
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{
		CustomerName:     o.CustomerName,
		CustomerPhone:    o.CustomerPhone,
		ShippingProvince: o.ShippingProvince,
		ShippingRegency:  o.ShippingRegency,
		ShippingDistrict: o.ShippingDistrict,
		ShippingVillage:  o.ShippingVillage,
		AddressDetail:    o.AddressDetail,
		TotalAmount:      o.TotalAmount,
		Notes:            o.Notes,
		Status:           string(o.Status),
	}
	m.FromDomain(o.BaseEntity)
	return m
}

// OrderItemModel is the persistence model for one order line.
type OrderItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"not null;default:0"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain Line
func (m *OrderItemModel) ToDomain() order.Line {
	return order.Line{
		ID:          m.ID,
		OrderID:     m.OrderID,
		Position:    m.Position,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Subtotal:    m.Subtotal,
		CreatedAt:   m.CreatedAt,
	}
}

// OrderItemModelFromDomain creates a persistence model from a domain Line
func OrderItemModelFromDomain(l order.Line) OrderItemModel {
	return OrderItemModel{
		ID:          l.ID,
		OrderID:     l.OrderID,
		Position:    l.Position,
		ProductID:   l.ProductID,
		ProductName: l.ProductName,
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
		Subtotal:    l.Subtotal,
		CreatedAt:   l.CreatedAt,
	}
}
