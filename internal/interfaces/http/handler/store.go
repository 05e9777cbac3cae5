package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/pupuk/storefront/internal/application/catalog"
	settingsapp "github.com/pupuk/storefront/internal/application/settings"
	"github.com/pupuk/storefront/internal/interfaces/http/middleware"
)

// StoreHandler serves the public catalog and store profile.
type StoreHandler struct {
	BaseHandler
	browse   *catalogapp.BrowseService
	settings *settingsapp.Service
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(browse *catalogapp.BrowseService, settings *settingsapp.Service) *StoreHandler {
	return &StoreHandler{browse: browse, settings: settings}
}

// GetSettings godoc
// @Summary      Get store profile
// @Description  Return the public store profile: name, contact numbers and social links.
// @Tags         store
// @Produce      json
// @Success      200 {object} dto.Response{data=settingsapp.Response}
// @Router       /store/settings [get]
func (h *StoreHandler) GetSettings(c *gin.Context) {
	h.Success(c, h.settings.Get())
}

// ListCategories godoc
// @Summary      List categories
// @Tags         store
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.CategoryResponse}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /store/categories [get]
func (h *StoreHandler) ListCategories(c *gin.Context) {
	cats, err := h.browse.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cats)
}

// ListProducts godoc
// @Summary      List products
// @Description  Return active products newest first, optionally narrowed by category and a case-insensitive name search.
// @Tags         store
// @Produce      json
// @Param        category_id query string false "Category ID" format(uuid)
// @Param        q query string false "Name search" maxlength(100)
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /store/products [get]
func (h *StoreHandler) ListProducts(c *gin.Context) {
	var q catalogapp.ProductQuery
	if !bindQuery(c, &q) {
		return
	}
	products, err := h.browse.ListProducts(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

type productURI struct {
	Slug string `uri:"slug" binding:"required,slug,max=160"`
}

// GetProduct godoc
// @Summary      Get product by slug
// @Description  Return one active product with up to four related products from the same category.
// @Tags         store
// @Produce      json
// @Param        slug path string true "Product slug" example(urea-46-lxk3m2a0)
// @Success      200 {object} dto.Response{data=catalogapp.ProductDetailResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /store/products/{slug} [get]
func (h *StoreHandler) GetProduct(c *gin.Context) {
	var uri productURI
	if err := c.ShouldBindUri(&uri); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	detail, err := h.browse.ProductDetail(c.Request.Context(), uri.Slug)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, detail)
}
