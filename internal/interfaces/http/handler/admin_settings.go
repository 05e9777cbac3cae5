package handler

import (
	"github.com/gin-gonic/gin"

	settingsapp "github.com/pupuk/storefront/internal/application/settings"
)

// SettingsHandler edits the store profile.
type SettingsHandler struct {
	BaseHandler
	settings *settingsapp.Service
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settings *settingsapp.Service) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get godoc
// @Summary      Get store settings
// @Tags         admin-settings
// @Produce      json
// @Success      200 {object} dto.Response{data=settingsapp.Response}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	h.Success(c, h.settings.Get())
}

// Update godoc
// @Summary      Update store settings
// @Tags         admin-settings
// @Accept       json
// @Produce      json
// @Param        request body settingsapp.UpdateRequest true "Store settings"
// @Success      200 {object} dto.Response{data=settingsapp.Response}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req settingsapp.UpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.settings.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}
