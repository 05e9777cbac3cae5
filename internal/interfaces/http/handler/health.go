package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pupuk/storefront/internal/infrastructure/logger"
	"github.com/pupuk/storefront/internal/interfaces/http/dto"
)

// Pinger checks a backing service.
type Pinger interface {
	Ping() error
}

// HealthResponse is the liveness report
// @Description Service liveness report
type HealthResponse struct {
	Status    string            `json:"status" example:"ok"`
	Version   string            `json:"version" example:"1.0.0"`
	GoVersion string            `json:"go_version" example:"go1.22.4"`
	Uptime    string            `json:"uptime" example:"2h15m4s"`
	Checks    map[string]string `json:"checks"`
}

// HealthHandler reports process and database health.
type HealthHandler struct {
	BaseHandler
	version   string
	startTime time.Time
	database  Pinger
}

// NewHealthHandler creates a new HealthHandler. database may be nil.
func NewHealthHandler(version string, database Pinger) *HealthHandler {
	return &HealthHandler{version: version, startTime: time.Now(), database: database}
}

// Health godoc
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=HealthResponse}
// @Success      503 {object} dto.Response{data=HealthResponse}
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:    "ok",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Checks:    map[string]string{},
	}
	status := http.StatusOK
	if h.database != nil {
		if err := h.database.Ping(); err != nil {
			logger.FromContext(c.Request.Context()).Error("Database health check failed", zap.Error(err))
			resp.Status = "degraded"
			resp.Checks["database"] = "down"
			status = http.StatusServiceUnavailable
		} else {
			resp.Checks["database"] = "up"
		}
	}
	c.JSON(status, dto.NewSuccessResponse(resp))
}
