package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pupuk/storefront/internal/infrastructure/auth"
	"github.com/pupuk/storefront/internal/infrastructure/logger"
	"github.com/pupuk/storefront/internal/interfaces/http/dto"
	"github.com/pupuk/storefront/internal/interfaces/http/middleware"
)

// LoginRequest is the admin login form
// @Description Request body for admin login
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100" example:"admin"`
	Password string `json:"password" binding:"required,max=200" example:"secret"`
}

// TokenRevoker blacklists a token id until it expires.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
}

// AuthHandler handles the back-office login.
type AuthHandler struct {
	BaseHandler
	admin     *auth.AdminAuthenticator
	tokens    *auth.JWTService
	blacklist TokenRevoker
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(admin *auth.AdminAuthenticator, tokens *auth.JWTService, blacklist TokenRevoker) *AuthHandler {
	return &AuthHandler{admin: admin, tokens: tokens, blacklist: blacklist}
}

// Login godoc
// @Summary      Admin login
// @Description  Exchange the admin credentials for an access token.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200 {object} dto.Response{data=auth.Token}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      429 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	log := logger.FromContext(c.Request.Context())

	if err := h.admin.Authenticate(req.Username, req.Password); err != nil {
		log.Warn("Admin login rejected", zap.String("username", req.Username), zap.String("client_ip", c.ClientIP()))
		h.Unauthorized(c, dto.ErrCodeInvalidCredentials, "Invalid username or password")
		return
	}

	token, err := h.tokens.Generate(req.Username)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	log.Info("Admin logged in", zap.String("username", req.Username))
	h.Success(c, token)
}

// Logout godoc
// @Summary      Admin logout
// @Description  Revoke the presented token until it expires.
// @Tags         admin
// @Produce      json
// @Success      204
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, dto.ErrCodeTokenInvalid, "Not logged in")
		return
	}
	if claims.ExpiresAt == nil {
		h.HandleError(c, errors.New("token without expiry"))
		return
	}
	if err := h.blacklist.Revoke(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		h.HandleError(c, err)
		return
	}
	logger.FromContext(c.Request.Context()).Info("Admin logged out", zap.String("jti", claims.ID))
	c.Status(http.StatusNoContent)
}
