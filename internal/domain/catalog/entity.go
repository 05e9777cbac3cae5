package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pupuk/storefront/internal/domain/shared"
)

// Entity is any record managed through the admin entity forms.
type Entity interface {
	Kind() Kind
	GetID() uuid.UUID
}

// Product is a sellable item.
type Product struct {
	shared.BaseEntity
	Name         string
	Slug         string
	Description  string
	CategoryID   *uuid.UUID
	BrandID      *uuid.UUID
	SupplierID   *uuid.UUID
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	Stock        int
	Unit         string
	Weight       string
	ImageURL     string
	IsActive     bool

	// Display names of the referenced entities, filled by queries that join them.
	CategoryName string
	BrandName    string
	SupplierName string
}

func (*Product) Kind() Kind { return KindProduct }

// Category groups products on the storefront.
type Category struct {
	shared.BaseEntity
	Name string
	Slug string
	Icon string
}

func (*Category) Kind() Kind { return KindCategory }

// Brand is a product manufacturer label.
type Brand struct {
	shared.BaseEntity
	Name string
}

func (*Brand) Kind() Kind { return KindBrand }

// Supplier is who the store buys stock from.
type Supplier struct {
	shared.BaseEntity
	Name    string
	Phone   string
	Address string
	Notes   string
}

func (*Supplier) Kind() Kind { return KindSupplier }

// ProductFilter narrows a product listing.
type ProductFilter struct {
	CategoryID *uuid.UUID
	// Search matches product names case-insensitively.
	Search     string
	ActiveOnly bool
	ExcludeID  *uuid.UUID
	Limit      int
}

// ProductRepository persists products.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	List(ctx context.Context, filter ProductFilter) ([]Product, error)
	Save(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// CategoryRepository persists categories.
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	Save(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BrandRepository persists brands.
type BrandRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Brand, error)
	List(ctx context.Context) ([]Brand, error)
	Save(ctx context.Context, b *Brand) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SupplierRepository persists suppliers.
type SupplierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	List(ctx context.Context) ([]Supplier, error)
	Save(ctx context.Context, s *Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
