package handler

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pupuk/storefront/internal/application/session"
	"github.com/pupuk/storefront/internal/domain/region"
	"github.com/pupuk/storefront/internal/domain/shared"
	"github.com/pupuk/storefront/internal/infrastructure/logger"
)

// SelectRegionRequest picks one level of the shipping address
// @Description Request body for selecting one address level
type SelectRegionRequest struct {
	Level string `json:"level" binding:"required,oneof=province regency district village" example:"regency" enums:"province,regency,district,village"`
	ID    string `json:"id" binding:"required,max=20" example:"3273"`
}

// AddressHandler serves the session's cascading address picker.
type AddressHandler struct {
	SessionHandler
	wait time.Duration
}

// NewAddressHandler creates a new AddressHandler. wait bounds how long a
// response holds for the child collection to load.
func NewAddressHandler(sessions *session.Registry, wait time.Duration) *AddressHandler {
	return &AddressHandler{SessionHandler: SessionHandler{sessions: sessions}, wait: wait}
}

// Get godoc
// @Summary      Get address picker
// @Description  Return the selection and the options of every level. The first call restores a stored selection.
// @Tags         address
// @Produce      json
// @Param        X-Session-ID header string false "Storefront session id, used when the cookie is absent"
// @Success      200 {object} dto.Response{data=address.View}
// @Router       /address [get]
func (h *AddressHandler) Get(c *gin.Context) {
	sess := h.session(c)
	sess.Address.Activate(c.Request.Context())
	h.settle(c, sess)
	h.Success(c, sess.Address.View())
}

// Select godoc
// @Summary      Select address level
// @Description  Record one level and clear every level below it. The child level is loaded in the background.
// @Tags         address
// @Accept       json
// @Produce      json
// @Param        X-Session-ID header string false "Storefront session id, used when the cookie is absent"
// @Param        request body SelectRegionRequest true "Level and region ID"
// @Success      200 {object} dto.Response{data=address.View}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /address/select [post]
func (h *AddressHandler) Select(c *gin.Context) {
	var req SelectRegionRequest
	if !bindJSON(c, &req) {
		return
	}
	level, err := region.ParseLevel(req.Level)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sess := h.session(c)
	sess.Address.Activate(c.Request.Context())
	if _, err := sess.Address.Select(c.Request.Context(), level, req.ID); err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			h.HandleError(c, err)
			return
		}
		logger.FromContext(c.Request.Context()).Warn("Address selected but not persisted", zap.Error(err))
	}
	h.settle(c, sess)
	h.Success(c, sess.Address.View())
}

// settle waits for in-flight child fetches, up to h.wait.
func (h *AddressHandler) settle(c *gin.Context, sess *session.Session) {
	if h.wait <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.wait)
	defer cancel()
	_ = sess.Address.Wait(ctx)
}
