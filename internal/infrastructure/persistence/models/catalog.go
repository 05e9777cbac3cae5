package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pupuk/storefront/internal/domain/catalog"
)

// CategoryModel is the persistence model for a category.
type CategoryModel struct {
	BaseModel
	Name string `gorm:"type:varchar(100);not null"`
	Slug string `gorm:"type:varchar(120);not null;index"`
	Icon string `gorm:"type:varchar(16)"`
}

func (CategoryModel) TableName() string { return "categories" }

func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{BaseEntity: m.BaseModel.ToDomain(), Name: m.Name, Slug: m.Slug, Icon: m.Icon}
}

func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{Name: c.Name, Slug: c.Slug, Icon: c.Icon}
	m.FromDomain(c.BaseEntity)
	return m
}

// BrandModel is the persistence model for a brand.
type BrandModel struct {
	BaseModel
	Name string `gorm:"type:varchar(100);not null"`
}

func (BrandModel) TableName() string { return "brands" }

func (m *BrandModel) ToDomain() *catalog.Brand {
	return &catalog.Brand{BaseEntity: m.BaseModel.ToDomain(), Name: m.Name}
}

func BrandModelFromDomain(b *catalog.Brand) *BrandModel {
	m := &BrandModel{Name: b.Name}
	m.FromDomain(b.BaseEntity)
	return m
}

// SupplierModel is the persistence model for a supplier.
type SupplierModel struct {
	BaseModel
	Name    string `gorm:"type:varchar(200);not null"`
	Phone   string `gorm:"type:varchar(50)"`
	Address string `gorm:"type:text"`
	Notes   string `gorm:"type:text"`
}

func (SupplierModel) TableName() string { return "suppliers" }

func (m *SupplierModel) ToDomain() *catalog.Supplier {
	return &catalog.Supplier{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Phone:      m.Phone,
		Address:    m.Address,
		Notes:      m.Notes,
	}
}

func SupplierModelFromDomain(s *catalog.Supplier) *SupplierModel {
	m := &SupplierModel{Name: s.Name, Phone: s.Phone, Address: s.Address, Notes: s.Notes}
	m.FromDomain(s.BaseEntity)
	return m
}

// ProductModel is the persistence model for a product. The belongs-to
// associations are only read, for display names.
type ProductModel struct {
	BaseModel
	Name         string          `gorm:"type:varchar(200);not null"`
	Slug         string          `gorm:"type:varchar(250);not null;uniqueIndex"`
	Description  string          `gorm:"type:text"`
	CategoryID   *uuid.UUID      `gorm:"type:uuid;index"`
	BrandID      *uuid.UUID      `gorm:"type:uuid"`
	SupplierID   *uuid.UUID      `gorm:"type:uuid"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Stock        int             `gorm:"not null;default:0"`
	Unit         string          `gorm:"type:varchar(20);not null;default:'kg'"`
	Weight       string          `gorm:"type:varchar(50)"`
	ImageURL     string          `gorm:"type:text"`
	IsActive     bool            `gorm:"not null;index"`

	Category *CategoryModel `gorm:"foreignKey:CategoryID"`
	Brand    *BrandModel    `gorm:"foreignKey:BrandID"`
	Supplier *SupplierModel `gorm:"foreignKey:SupplierID"`
}

func (ProductModel) TableName() string { return "products" }

func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		BaseEntity:   m.BaseModel.ToDomain(),
		Name:         m.Name,
		Slug:         m.Slug,
		Description:  m.Description,
		CategoryID:   m.CategoryID,
		BrandID:      m.BrandID,
		SupplierID:   m.SupplierID,
		CostPrice:    m.CostPrice,
		SellingPrice: m.SellingPrice,
		Stock:        m.Stock,
		Unit:         m.Unit,
		Weight:       m.Weight,
		ImageURL:     m.ImageURL,
		IsActive:     m.IsActive,
	}
	if m.Category != nil {
		p.CategoryName = m.Category.Name
	}
	if m.Brand != nil {
		p.BrandName = m.Brand.Name
	}
	if m.Supplier != nil {
		p.SupplierName = m.Supplier.Name
	}
	return p
}

func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		CategoryID:   p.CategoryID,
		BrandID:      p.BrandID,
		SupplierID:   p.SupplierID,
		CostPrice:    p.CostPrice,
		SellingPrice: p.SellingPrice,
		Stock:        p.Stock,
		Unit:         p.Unit,
		Weight:       p.Weight,
		ImageURL:     p.ImageURL,
		IsActive:     p.IsActive,
	}
	m.FromDomain(p.BaseEntity)
	return m
}
