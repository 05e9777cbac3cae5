package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	cartapp "github.com/pupuk/storefront/internal/application/cart"
	"github.com/pupuk/storefront/internal/application/session"
	"github.com/pupuk/storefront/internal/domain/cart"
	"github.com/pupuk/storefront/internal/infrastructure/logger"
)

// ProductLookup resolves an active product for the cart.
type ProductLookup interface {
	CartProduct(ctx context.Context, id uuid.UUID) (cart.Product, error)
}

// AddItemRequest adds a product to the cart
// @Description Request body for adding a product to the cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required" example:"3f1c9a52-7d4e-4b8a-9c21-5e6f7a8b9c0d"`
	Quantity  int       `json:"quantity" binding:"omitempty,min=1,max=9999" example:"2"`
}

// UpdateItemRequest sets a line's quantity. Values below one are accepted
// and leave the line unchanged.
// @Description Request body for setting a cart line's quantity
type UpdateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required" example:"3"`
}

// CartHandler serves the session cart.
type CartHandler struct {
	SessionHandler
	products ProductLookup
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(sessions *session.Registry, products ProductLookup) *CartHandler {
	return &CartHandler{SessionHandler: SessionHandler{sessions: sessions}, products: products}
}

// Get godoc
// @Summary      Get cart
// @Tags         cart
// @Produce      json
// @Param        X-Session-ID header string false "Storefront session id, used when the cookie is absent"
// @Success      200 {object} dto.Response{data=cartapp.Snapshot}
// @Router       /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	h.Success(c, h.session(c).Cart.Snapshot())
}

// AddItem godoc
// @Summary      Add item to cart
// @Description  Add quantity (default 1) of an active product. An existing line for the product is merged.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Session-ID header string false "Storefront session id, used when the cookie is absent"
// @Param        request body AddItemRequest true "Item to add"
// @Success      200 {object} dto.Response{data=cartapp.Snapshot}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	p, err := h.products.CartProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	snap, err := h.session(c).Cart.AddItem(c.Request.Context(), p, req.Quantity)
	h.respond(c, snap, err)
}

// UpdateItem godoc
// @Summary      Set item quantity
// @Description  Set a line's quantity. A quantity below one leaves the cart unchanged.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Session-ID header string false "Storefront session id, used when the cookie is absent"
// @Param        product_id path string true "Product ID" format(uuid)
// @Param        request body UpdateItemRequest true "New quantity"
// @Success      200 {object} dto.Response{data=cartapp.Snapshot}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cart/items/{product_id} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	id, ok := h.uuidParam(c, "product_id")
	if !ok {
		return
	}
	var req UpdateItemRequest
	if !bindJSON(c, &req) {
		return
	}
	snap, err := h.session(c).Cart.UpdateQuantity(c.Request.Context(), id, *req.Quantity)
	h.respond(c, snap, err)
}

// RemoveItem godoc
// @Summary      Remove item from cart
// @Tags         cart
// @Produce      json
// @Param        X-Session-ID header string false "Storefront session id, used when the cookie is absent"
// @Param        product_id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=cartapp.Snapshot}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cart/items/{product_id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := h.uuidParam(c, "product_id")
	if !ok {
		return
	}
	snap, err := h.session(c).Cart.RemoveItem(c.Request.Context(), id)
	h.respond(c, snap, err)
}

// Clear godoc
// @Summary      Clear cart
// @Tags         cart
// @Produce      json
// @Param        X-Session-ID header string false "Storefront session id, used when the cookie is absent"
// @Success      200 {object} dto.Response{data=cartapp.Snapshot}
// @Router       /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	sess := h.session(c)
	if err := sess.Cart.Clear(c.Request.Context()); err != nil {
		logger.FromContext(c.Request.Context()).Warn("Cart cleared but not persisted", zap.Error(err))
	}
	h.Success(c, sess.Cart.Snapshot())
}

// respond returns the new cart. A persistence failure is logged only: the
// in-memory change stands.
func (h *CartHandler) respond(c *gin.Context, snap cartapp.Snapshot, err error) {
	if err != nil {
		logger.FromContext(c.Request.Context()).Warn("Cart changed but not persisted", zap.Error(err))
	}
	h.Success(c, snap)
}
