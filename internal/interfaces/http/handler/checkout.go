package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pupuk/storefront/internal/application/checkout"
	"github.com/pupuk/storefront/internal/application/confirmation"
	orderapp "github.com/pupuk/storefront/internal/application/order"
	"github.com/pupuk/storefront/internal/application/session"
	"github.com/pupuk/storefront/internal/domain/shared"
	"github.com/pupuk/storefront/internal/infrastructure/logger"
	"github.com/pupuk/storefront/internal/interfaces/http/dto"
	"github.com/pupuk/storefront/internal/interfaces/http/middleware"
)

// CheckoutRequest is the submitted checkout form. The address comes from
// the session's picker.
// @Description Request body for placing an order
type CheckoutRequest struct {
	ContactRequest
	Notes string `json:"notes" binding:"max=1000" example:"Kirim sore hari"`
}

// CheckoutResponse describes a placed order
// @Description Placed order with its WhatsApp handoff
type CheckoutResponse struct {
	Order    orderapp.OrderResponse  `json:"order"`
	Items    []orderapp.LineResponse `json:"items"`
	WhatsApp confirmation.Handoff    `json:"whatsapp"`
	Toasts   []checkout.Toast        `json:"toasts"`
}

// CheckoutHandler submits orders.
type CheckoutHandler struct {
	SessionHandler
	pipeline *checkout.Pipeline
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(sessions *session.Registry, pipeline *checkout.Pipeline) *CheckoutHandler {
	return &CheckoutHandler{SessionHandler: SessionHandler{sessions: sessions}, pipeline: pipeline}
}

// Submit godoc
// @Summary      Place order
// @Description  Check contact, address and cart in that order, then store the order and return the WhatsApp handoff.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        X-Session-ID header string false "Storefront session id, used when the cookie is absent"
// @Param        request body CheckoutRequest true "Contact and notes"
// @Success      201 {object} dto.Response{data=CheckoutResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      429 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /checkout [post]
func (h *CheckoutHandler) Submit(c *gin.Context) {
	var req CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	sess := h.session(c)
	contact := req.contact()
	if err := sess.Contact.Update(ctx, contact); err != nil {
		logger.FromContext(ctx).Warn("Contact kept in memory only", zap.Error(err))
	}

	// The address may only exist in the KV tier if the visitor never
	// opened the picker in this process.
	sess.Address.Activate(ctx)

	toasts := &checkout.ToastCollector{}
	result, err := h.pipeline.Submit(ctx, checkout.Input{
		Contact: contact,
		Address: sess.Address.Selection(),
		Notes:   req.Notes,
		Cart:    sess.Cart,
		Handoff: sess.Handoff,
		Toasts:  toasts,
	})
	if err != nil {
		h.checkoutError(c, err, toasts.Toasts())
		return
	}

	h.Created(c, CheckoutResponse{
		Order:    orderapp.ToOrderResponse(result.Order),
		Items:    orderapp.ToLineResponses(result.Lines),
		WhatsApp: result.Handoff,
		Toasts:   toasts.Toasts(),
	})
}

// checkoutError reports the failure. Warnings about a form section are
// listed as details keyed by that section.
func (h *CheckoutHandler) checkoutError(c *gin.Context, err error, toasts []checkout.Toast) {
	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		h.HandleError(c, err)
		return
	}
	code := dto.NormalizeErrorCode(domainErr.Code)
	resp := dto.NewErrorResponseWithRequestID(code, domainErr.Message, middleware.GetRequestID(c))
	for _, t := range toasts {
		if t.Field != "" {
			resp.Error.Details = append(resp.Error.Details, dto.ValidationDetail{Field: t.Field, Message: t.Message})
		}
	}
	c.JSON(dto.GetHTTPStatus(code), resp)
}
