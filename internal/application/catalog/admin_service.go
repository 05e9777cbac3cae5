package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pupuk/storefront/internal/domain/catalog"
	"github.com/pupuk/storefront/internal/domain/shared"
	"github.com/pupuk/storefront/internal/infrastructure/logger"
)

var (
	ErrProductUnavailable = shared.NewDomainError("NOT_FOUND", "Product not available")
	ErrUnknownKind        = shared.NewDomainError("INVALID_KIND", "Unknown entity kind")
	ErrInvalidCategory    = shared.NewDomainError("INVALID_CATEGORY", "Category not found")
	ErrInvalidBrand       = shared.NewDomainError("INVALID_BRAND", "Brand not found")
	ErrInvalidSupplier    = shared.NewDomainError("INVALID_SUPPLIER", "Supplier not found")
)

// AdminService manages every admin entity kind through the tagged forms.
type AdminService struct {
	products   catalog.ProductRepository
	categories catalog.CategoryRepository
	brands     catalog.BrandRepository
	suppliers  catalog.SupplierRepository
	images     *ImageService
	logger     *zap.Logger
	now        func() time.Time
}

// NewAdminService creates a new AdminService. images may be nil, in which
// case product images are never removed from storage.
func NewAdminService(
	products catalog.ProductRepository,
	categories catalog.CategoryRepository,
	brands catalog.BrandRepository,
	suppliers catalog.SupplierRepository,
	images *ImageService,
	logger *zap.Logger,
) *AdminService {
	return &AdminService{
		products:   products,
		categories: categories,
		brands:     brands,
		suppliers:  suppliers,
		images:     images,
		logger:     logger,
		now:        time.Now,
	}
}

// List returns every entity of kind as API responses.
func (s *AdminService) List(ctx context.Context, kind catalog.Kind) ([]any, error) {
	var entities []catalog.Entity
	switch kind {
	case catalog.KindProduct:
		items, err := s.products.List(ctx, catalog.ProductFilter{})
		if err != nil {
			return nil, err
		}
		for i := range items {
			entities = append(entities, &items[i])
		}
	case catalog.KindCategory:
		items, err := s.categories.List(ctx)
		if err != nil {
			return nil, err
		}
		for i := range items {
			entities = append(entities, &items[i])
		}
	case catalog.KindBrand:
		items, err := s.brands.List(ctx)
		if err != nil {
			return nil, err
		}
		for i := range items {
			entities = append(entities, &items[i])
		}
	case catalog.KindSupplier:
		items, err := s.suppliers.List(ctx)
		if err != nil {
			return nil, err
		}
		for i := range items {
			entities = append(entities, &items[i])
		}
	default:
		return nil, ErrUnknownKind
	}

	out := make([]any, len(entities))
	for i, e := range entities {
		out[i] = ToEntityResponse(e)
	}
	return out, nil
}

// Create builds a new entity from form and stores it.
func (s *AdminService) Create(ctx context.Context, form catalog.Form) (any, error) {
	if err := s.checkReferences(ctx, form); err != nil {
		return nil, err
	}
	e, err := form.New(s.now())
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, e); err != nil {
		return nil, err
	}
	logger.L(ctx, s.logger).Info("Entity created",
		zap.String("kind", string(e.Kind())),
		zap.String("id", e.GetID().String()),
	)
	return s.reload(ctx, e)
}

// Update applies form to the stored entity of the same kind.
func (s *AdminService) Update(ctx context.Context, id uuid.UUID, form catalog.Form) (any, error) {
	e, err := s.find(ctx, form.Kind(), id)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, form); err != nil {
		return nil, err
	}

	var oldImage string
	if p, ok := e.(*catalog.Product); ok {
		oldImage = p.ImageURL
	}

	if err := form.ApplyTo(e); err != nil {
		return nil, err
	}
	if err := s.save(ctx, e); err != nil {
		return nil, err
	}

	if p, ok := e.(*catalog.Product); ok && oldImage != "" && oldImage != p.ImageURL {
		s.removeImage(ctx, oldImage)
	}
	return s.reload(ctx, e)
}

// Delete removes the entity. A product's uploaded image is removed too.
func (s *AdminService) Delete(ctx context.Context, kind catalog.Kind, id uuid.UUID) error {
	switch kind {
	case catalog.KindProduct:
		p, err := s.products.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.products.Delete(ctx, id); err != nil {
			return err
		}
		if p.ImageURL != "" {
			s.removeImage(ctx, p.ImageURL)
		}
		return nil
	case catalog.KindCategory:
		return s.categories.Delete(ctx, id)
	case catalog.KindBrand:
		return s.brands.Delete(ctx, id)
	case catalog.KindSupplier:
		return s.suppliers.Delete(ctx, id)
	}
	return ErrUnknownKind
}

func (s *AdminService) find(ctx context.Context, kind catalog.Kind, id uuid.UUID) (catalog.Entity, error) {
	switch kind {
	case catalog.KindProduct:
		return s.products.FindByID(ctx, id)
	case catalog.KindCategory:
		return s.categories.FindByID(ctx, id)
	case catalog.KindBrand:
		return s.brands.FindByID(ctx, id)
	case catalog.KindSupplier:
		return s.suppliers.FindByID(ctx, id)
	}
	return nil, ErrUnknownKind
}

func (s *AdminService) save(ctx context.Context, e catalog.Entity) error {
	switch v := e.(type) {
	case *catalog.Product:
		return s.products.Save(ctx, v)
	case *catalog.Category:
		return s.categories.Save(ctx, v)
	case *catalog.Brand:
		return s.brands.Save(ctx, v)
	case *catalog.Supplier:
		return s.suppliers.Save(ctx, v)
	}
	return fmt.Errorf("save %T: %w", e, ErrUnknownKind)
}

// reload re-reads products so joined display names are filled in.
func (s *AdminService) reload(ctx context.Context, e catalog.Entity) (any, error) {
	if e.Kind() != catalog.KindProduct {
		return ToEntityResponse(e), nil
	}
	p, err := s.products.FindByID(ctx, e.GetID())
	if err != nil {
		return nil, err
	}
	return ToProductResponse(p, true), nil
}

// checkReferences verifies the product's category, brand and supplier exist.
func (s *AdminService) checkReferences(ctx context.Context, form catalog.Form) error {
	f, ok := form.(catalog.ProductForm)
	if !ok {
		return nil
	}
	if f.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *f.CategoryID); err != nil {
			return referenceError(err, ErrInvalidCategory)
		}
	}
	if f.BrandID != nil {
		if _, err := s.brands.FindByID(ctx, *f.BrandID); err != nil {
			return referenceError(err, ErrInvalidBrand)
		}
	}
	if f.SupplierID != nil {
		if _, err := s.suppliers.FindByID(ctx, *f.SupplierID); err != nil {
			return referenceError(err, ErrInvalidSupplier)
		}
	}
	return nil
}

func referenceError(err error, missing *shared.DomainError) error {
	if errors.Is(err, shared.ErrNotFound) {
		return missing
	}
	return err
}

func (s *AdminService) removeImage(ctx context.Context, url string) {
	if s.images == nil {
		return
	}
	if err := s.images.Remove(ctx, url); err != nil {
		logger.L(ctx, s.logger).Warn("Failed to remove product image", zap.String("url", url), zap.Error(err))
	}
}
