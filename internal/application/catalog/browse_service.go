package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/pupuk/storefront/internal/domain/cart"
	"github.com/pupuk/storefront/internal/domain/catalog"
)

// RelatedLimit caps the related products shown on a product page.
const RelatedLimit = 4

// ProductQuery filters the storefront product listing.
type ProductQuery struct {
	CategoryID *uuid.UUID `form:"category_id"`
	Q          string     `form:"q" binding:"max=100"`
}

// BrowseService serves the public storefront catalog.
type BrowseService struct {
	products   catalog.ProductRepository
	categories catalog.CategoryRepository
}

// NewBrowseService creates a new BrowseService
func NewBrowseService(products catalog.ProductRepository, categories catalog.CategoryRepository) *BrowseService {
	return &BrowseService{products: products, categories: categories}
}

// ListProducts returns active products, newest first.
func (s *BrowseService) ListProducts(ctx context.Context, q ProductQuery) ([]ProductResponse, error) {
	products, err := s.products.List(ctx, catalog.ProductFilter{
		CategoryID: q.CategoryID,
		Search:     strings.TrimSpace(q.Q),
		ActiveOnly: true,
	})
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products, false), nil
}

// ProductDetail returns an active product by slug with up to RelatedLimit
// other active products from its category.
func (s *BrowseService) ProductDetail(ctx context.Context, slug string) (*ProductDetailResponse, error) {
	p, err := s.products.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, ErrProductUnavailable
	}

	related := []ProductResponse{}
	if p.CategoryID != nil {
		id := p.ID
		others, err := s.products.List(ctx, catalog.ProductFilter{
			CategoryID: p.CategoryID,
			ActiveOnly: true,
			ExcludeID:  &id,
			Limit:      RelatedLimit,
		})
		if err != nil {
			return nil, err
		}
		related = ToProductResponses(others, false)
	}

	return &ProductDetailResponse{Product: ToProductResponse(p, false), Related: related}, nil
}

// ListCategories returns every category ordered by name.
func (s *BrowseService) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryResponse, len(cats))
	for i := range cats {
		out[i] = ToCategoryResponse(&cats[i])
	}
	return out, nil
}

// CartProduct returns what the cart needs to know about an active product.
func (s *BrowseService) CartProduct(ctx context.Context, id uuid.UUID) (cart.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return cart.Product{}, err
	}
	if !p.IsActive {
		return cart.Product{}, ErrProductUnavailable
	}
	return cart.Product{
		ID:       p.ID,
		Name:     p.Name,
		ImageURL: p.ImageURL,
		Price:    p.SellingPrice,
		Unit:     p.Unit,
	}, nil
}
