package handler

import (
	"embed"
	"html/template"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pupuk/storefront/internal/application/confirmation"
	"github.com/pupuk/storefront/internal/application/session"
	"github.com/pupuk/storefront/internal/infrastructure/logger"
)

//go:embed templates/order_success.html
var templateFS embed.FS

var orderSuccessTmpl = template.Must(template.ParseFS(templateFS, "templates/order_success.html"))

// HandoffResponse is the pending WhatsApp handoff of a session
// @Description Pending WhatsApp handoff of the session
type HandoffResponse struct {
	Pending bool                 `json:"pending" example:"true"`
	Handoff confirmation.Handoff `json:"handoff"`
	// DelaySeconds is how long the page waits before redirecting.
	DelaySeconds int `json:"delay_seconds" example:"3"`
}

type orderSuccessPage struct {
	StoreName    string
	CustomerName string
	Message      string
	Link         string
	Redirect     bool
	DelaySeconds int
}

// ConfirmationHandler serves the post-checkout WhatsApp handoff.
type ConfirmationHandler struct {
	SessionHandler
	builder      *confirmation.Builder
	storeName    func() string
	autoRedirect bool
}

// NewConfirmationHandler creates a new ConfirmationHandler. With
// autoRedirect off the page never refreshes to WhatsApp on its own.
func NewConfirmationHandler(sessions *session.Registry, builder *confirmation.Builder, storeName func() string, autoRedirect bool) *ConfirmationHandler {
	if storeName == nil {
		storeName = func() string { return "" }
	}
	return &ConfirmationHandler{
		SessionHandler: SessionHandler{sessions: sessions},
		builder:        builder,
		storeName:      storeName,
		autoRedirect:   autoRedirect,
	}
}

// Get godoc
// @Summary      Get pending handoff
// @Description  Return the WhatsApp handoff of the last order without consuming its redirect.
// @Tags         checkout
// @Produce      json
// @Param        X-Session-ID header string false "Storefront session id, used when the cookie is absent"
// @Success      200 {object} dto.Response{data=HandoffResponse}
// @Router       /confirmation [get]
func (h *ConfirmationHandler) Get(c *gin.Context) {
	pending, ok := h.session(c).Handoff.Peek()
	if !ok {
		pending = h.builder.Generic()
	}
	pending.AutoRedirect = pending.AutoRedirect && h.autoRedirect
	h.Success(c, HandoffResponse{Pending: ok, Handoff: pending, DelaySeconds: delaySeconds(pending)})
}

// OrderSuccess godoc
// @Summary      Order confirmation page
// @Description  Render the confirmation page. Only the first view after an order redirects to WhatsApp.
// @Tags         checkout
// @Produce      html
// @Param        X-Session-ID header string false "Storefront session id, used when the cookie is absent"
// @Success      200 {string} string "HTML page"
// @Router       /order-success [get]
func (h *ConfirmationHandler) OrderSuccess(c *gin.Context) {
	handoff, ok := h.session(c).Handoff.Consume()
	if !ok {
		handoff = h.builder.Generic()
	}

	page := orderSuccessPage{
		StoreName:    h.storeName(),
		CustomerName: handoff.CustomerName,
		Message:      handoff.Message,
		Link:         handoff.Link,
		Redirect:     handoff.AutoRedirect && h.autoRedirect,
		DelaySeconds: delaySeconds(handoff),
	}
	if page.StoreName == "" {
		page.StoreName = "Toko Pupuk"
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Header("Cache-Control", "no-store")
	c.Status(http.StatusOK)
	if err := orderSuccessTmpl.Execute(c.Writer, page); err != nil {
		logger.FromContext(c.Request.Context()).Error("Failed to render confirmation page", zap.Error(err))
	}
}

func delaySeconds(h confirmation.Handoff) int {
	return int(math.Ceil(h.Delay.Seconds()))
}
