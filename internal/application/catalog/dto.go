package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pupuk/storefront/internal/domain/catalog"
	"github.com/pupuk/storefront/internal/domain/shared/valueobject"
)

// FormRequest is the JSON body of an admin entity form. Each kind has its
// own request type and validation tags.
type FormRequest interface {
	Form() catalog.Form
}

// NewFormRequest returns an empty request for kind, ready to be bound.
func NewFormRequest(kind catalog.Kind) FormRequest {
	switch kind {
	case catalog.KindProduct:
		return &ProductRequest{}
	case catalog.KindCategory:
		return &CategoryRequest{}
	case catalog.KindBrand:
		return &BrandRequest{}
	case catalog.KindSupplier:
		return &SupplierRequest{}
	}
	return nil
}

// ProductRequest is the product form.
type ProductRequest struct {
	Name         string           `json:"name" binding:"required,min=1,max=200"`
	Description  string           `json:"description" binding:"max=5000"`
	CategoryID   *uuid.UUID       `json:"category_id"`
	BrandID      *uuid.UUID       `json:"brand_id"`
	SupplierID   *uuid.UUID       `json:"supplier_id"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	SellingPrice *decimal.Decimal `json:"selling_price" binding:"required"`
	Stock        int              `json:"stock" binding:"min=0"`
	Unit         string           `json:"unit" binding:"omitempty,oneof=kg karung liter botol sachet pcs"`
	Weight       string           `json:"weight" binding:"max=50"`
	ImageURL     string           `json:"image_url" binding:"omitempty,url"`
	IsActive     *bool            `json:"is_active"`
}

func (r *ProductRequest) Form() catalog.Form {
	cost := decimal.Zero
	if r.CostPrice != nil {
		cost = *r.CostPrice
	}
	price := decimal.Zero
	if r.SellingPrice != nil {
		price = *r.SellingPrice
	}
	return catalog.ProductForm{
		Name:         r.Name,
		Description:  r.Description,
		CategoryID:   r.CategoryID,
		BrandID:      r.BrandID,
		SupplierID:   r.SupplierID,
		CostPrice:    cost,
		SellingPrice: price,
		Stock:        r.Stock,
		Unit:         r.Unit,
		Weight:       r.Weight,
		ImageURL:     r.ImageURL,
		IsActive:     r.IsActive,
	}
}

// CategoryRequest is the category form.
type CategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	Slug string `json:"slug" binding:"max=120"`
	Icon string `json:"icon" binding:"max=16"`
}

func (r *CategoryRequest) Form() catalog.Form {
	return catalog.CategoryForm{Name: r.Name, Slug: r.Slug, Icon: r.Icon}
}

// BrandRequest is the brand form.
type BrandRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

func (r *BrandRequest) Form() catalog.Form {
	return catalog.BrandForm{Name: r.Name}
}

// SupplierRequest is the supplier form.
type SupplierRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Phone   string `json:"phone" binding:"omitempty,phone,max=30"`
	Address string `json:"address" binding:"max=500"`
	Notes   string `json:"notes" binding:"max=2000"`
}

func (r *SupplierRequest) Form() catalog.Form {
	return catalog.SupplierForm{Name: r.Name, Phone: r.Phone, Address: r.Address, Notes: r.Notes}
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID             uuid.UUID        `json:"id"`
	Name           string           `json:"name"`
	Slug           string           `json:"slug"`
	Description    string           `json:"description"`
	CategoryID     *uuid.UUID       `json:"category_id"`
	CategoryName   string           `json:"category_name,omitempty"`
	BrandID        *uuid.UUID       `json:"brand_id"`
	BrandName      string           `json:"brand_name,omitempty"`
	SupplierID     *uuid.UUID       `json:"supplier_id,omitempty"`
	SupplierName   string           `json:"supplier_name,omitempty"`
	CostPrice      *decimal.Decimal `json:"cost_price,omitempty"`
	SellingPrice   decimal.Decimal  `json:"selling_price"`
	PriceFormatted string           `json:"price_formatted"`
	Stock          int              `json:"stock"`
	Unit           string           `json:"unit"`
	Weight         string           `json:"weight,omitempty"`
	ImageURL       string           `json:"image_url,omitempty"`
	IsActive       bool             `json:"is_active"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ToProductResponse converts a product. Supplier and cost details are only
// included for the back-office.
func ToProductResponse(p *catalog.Product, admin bool) ProductResponse {
	resp := ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		CategoryID:     p.CategoryID,
		CategoryName:   p.CategoryName,
		BrandID:        p.BrandID,
		BrandName:      p.BrandName,
		SellingPrice:   p.SellingPrice,
		PriceFormatted: valueobject.NewRupiah(p.SellingPrice).Format(),
		Stock:          p.Stock,
		Unit:           p.Unit,
		Weight:         p.Weight,
		ImageURL:       p.ImageURL,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if admin {
		cost := p.CostPrice
		resp.CostPrice = &cost
		resp.SupplierID = p.SupplierID
		resp.SupplierName = p.SupplierName
	}
	return resp
}

// ToProductResponses converts a list of products
func ToProductResponses(products []catalog.Product, admin bool) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i], admin)
	}
	return out
}

// ProductDetailResponse is a product page.
type ProductDetailResponse struct {
	Product ProductResponse   `json:"product"`
	Related []ProductResponse `json:"related"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"created_at"`
}

func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Slug: c.Slug, Icon: c.Icon, CreatedAt: c.CreatedAt}
}

type BrandResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func ToBrandResponse(b *catalog.Brand) BrandResponse {
	return BrandResponse{ID: b.ID, Name: b.Name, CreatedAt: b.CreatedAt}
}

type SupplierResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

func ToSupplierResponse(s *catalog.Supplier) SupplierResponse {
	return SupplierResponse{ID: s.ID, Name: s.Name, Phone: s.Phone, Address: s.Address, Notes: s.Notes, CreatedAt: s.CreatedAt}
}

// ToEntityResponse converts any admin entity.
func ToEntityResponse(e catalog.Entity) any {
	switch v := e.(type) {
	case *catalog.Product:
		return ToProductResponse(v, true)
	case *catalog.Category:
		return ToCategoryResponse(v)
	case *catalog.Brand:
		return ToBrandResponse(v)
	case *catalog.Supplier:
		return ToSupplierResponse(v)
	}
	return nil
}
