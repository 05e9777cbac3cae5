package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pupuk/storefront/internal/domain/shared"
)

const (
	DefaultUnit         = "kg"
	DefaultCategoryIcon = "🌱"
)

// Units lists the selling units a product may use.
var Units = []string{"kg", "karung", "liter", "botol", "sachet", "pcs"}

// Form is the closed set of admin entity forms. Each variant validates its
// own fields and knows how to create or update its entity.
type Form interface {
	Kind() Kind
	Validate() error
	// New builds a fresh entity from the form.
	New(now time.Time) (Entity, error)
	// ApplyTo overwrites the editable fields of an existing entity of the same kind.
	ApplyTo(e Entity) error
	isForm()
}

func invalid(field, msg string) error {
	return shared.NewDomainError("INVALID_"+strings.ToUpper(field), msg)
}

func kindMismatch(want Kind, e Entity) error {
	return shared.ErrInvalidInput.Wrap(&mismatchError{want: want, got: e.Kind()})
}

type mismatchError struct{ want, got Kind }

func (e *mismatchError) Error() string {
	return "form kind " + string(e.want) + " cannot apply to " + string(e.got)
}

// ProductForm carries the editable product fields.
type ProductForm struct {
	Name         string
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
	IsActive     *bool
}

func (ProductForm) Kind() Kind { return KindProduct }
func (ProductForm) isForm()    {}

func (f ProductForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return invalid("name", "Product name is required")
	}
	if f.SellingPrice.IsNegative() {
		return invalid("selling_price", "Selling price cannot be negative")
	}
	if f.CostPrice.IsNegative() {
		return invalid("cost_price", "Cost price cannot be negative")
	}
	if f.Stock < 0 {
		return invalid("stock", "Stock cannot be negative")
	}
	if f.Unit != "" && !isKnownUnit(f.Unit) {
		return invalid("unit", "Unit must be one of "+strings.Join(Units, ", "))
	}
	return nil
}

func (f ProductForm) New(now time.Time) (Entity, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	p := &Product{BaseEntity: shared.NewBaseEntity(), IsActive: true, Unit: DefaultUnit}
	p.CreatedAt, p.UpdatedAt = now, now
	f.fill(p)
	p.Slug = ProductSlug(p.Name, now)
	return p, nil
}

func (f ProductForm) ApplyTo(e Entity) error {
	p, ok := e.(*Product)
	if !ok {
		return kindMismatch(KindProduct, e)
	}
	if err := f.Validate(); err != nil {
		return err
	}
	f.fill(p)
	p.Touch()
	return nil
}

func (f ProductForm) fill(p *Product) {
	p.Name = strings.TrimSpace(f.Name)
	p.Description = f.Description
	p.CategoryID, p.BrandID, p.SupplierID = f.CategoryID, f.BrandID, f.SupplierID
	p.CostPrice, p.SellingPrice = f.CostPrice, f.SellingPrice
	p.Stock = f.Stock
	if f.Unit != "" {
		p.Unit = f.Unit
	}
	p.Weight = f.Weight
	if f.ImageURL != "" {
		p.ImageURL = f.ImageURL
	}
	if f.IsActive != nil {
		p.IsActive = *f.IsActive
	}
}

func isKnownUnit(u string) bool {
	for _, known := range Units {
		if u == known {
			return true
		}
	}
	return false
}

// CategoryForm carries the editable category fields.
type CategoryForm struct {
	Name string
	Slug string
	Icon string
}

func (CategoryForm) Kind() Kind { return KindCategory }
func (CategoryForm) isForm()    {}

func (f CategoryForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return invalid("name", "Category name is required")
	}
	return nil
}

// New always derives the slug from the name.
func (f CategoryForm) New(now time.Time) (Entity, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	c := &Category{BaseEntity: shared.NewBaseEntity(), Icon: DefaultCategoryIcon}
	c.CreatedAt, c.UpdatedAt = now, now
	c.Name = strings.TrimSpace(f.Name)
	c.Slug = Slugify(c.Name)
	if f.Icon != "" {
		c.Icon = f.Icon
	}
	return c, nil
}

// ApplyTo keeps the stored slug unless the form supplies one.
func (f CategoryForm) ApplyTo(e Entity) error {
	c, ok := e.(*Category)
	if !ok {
		return kindMismatch(KindCategory, e)
	}
	if err := f.Validate(); err != nil {
		return err
	}
	c.Name = strings.TrimSpace(f.Name)
	if s := Slugify(f.Slug); s != "" {
		c.Slug = s
	}
	if f.Icon != "" {
		c.Icon = f.Icon
	}
	c.Touch()
	return nil
}

// BrandForm carries the editable brand fields.
type BrandForm struct {
	Name string
}

func (BrandForm) Kind() Kind { return KindBrand }
func (BrandForm) isForm()    {}

func (f BrandForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return invalid("name", "Brand name is required")
	}
	return nil
}

func (f BrandForm) New(now time.Time) (Entity, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	b := &Brand{BaseEntity: shared.NewBaseEntity(), Name: strings.TrimSpace(f.Name)}
	b.CreatedAt, b.UpdatedAt = now, now
	return b, nil
}

func (f BrandForm) ApplyTo(e Entity) error {
	b, ok := e.(*Brand)
	if !ok {
		return kindMismatch(KindBrand, e)
	}
	if err := f.Validate(); err != nil {
		return err
	}
	b.Name = strings.TrimSpace(f.Name)
	b.Touch()
	return nil
}

// SupplierForm carries the editable supplier fields.
type SupplierForm struct {
	Name    string
	Phone   string
	Address string
	Notes   string
}

func (SupplierForm) Kind() Kind { return KindSupplier }
func (SupplierForm) isForm()    {}

func (f SupplierForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return invalid("name", "Supplier name is required")
	}
	return nil
}

func (f SupplierForm) New(now time.Time) (Entity, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	s := &Supplier{BaseEntity: shared.NewBaseEntity()}
	s.CreatedAt, s.UpdatedAt = now, now
	f.fill(s)
	return s, nil
}

func (f SupplierForm) ApplyTo(e Entity) error {
	s, ok := e.(*Supplier)
	if !ok {
		return kindMismatch(KindSupplier, e)
	}
	if err := f.Validate(); err != nil {
		return err
	}
	f.fill(s)
	s.Touch()
	return nil
}

func (f SupplierForm) fill(s *Supplier) {
	s.Name = strings.TrimSpace(f.Name)
	s.Phone, s.Address, s.Notes = f.Phone, f.Address, f.Notes
}
