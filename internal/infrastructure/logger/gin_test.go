package logger

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGinMiddleware(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("request_id", "rid-1"); c.Next() })
	r.Use(GinMiddleware(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) {
		FromContext(c.Request.Context()).Info("inside handler")
		assert.Equal(t, "rid-1", GetRequestID(c.Request.Context()))
		c.Set("session_id", "sess-9")
		c.Status(http.StatusOK)
	})
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok?x=1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	logs := recorded.FilterMessage("inside handler").All()
	require.Len(t, logs, 1)
	assert.Equal(t, "rid-1", logs[0].ContextMap()["request_id"])

	req := recorded.FilterMessage("HTTP Request").All()
	require.Len(t, req, 1)
	assert.Equal(t, zapcore.InfoLevel, req[0].Level)
	assert.Equal(t, "x=1", req[0].ContextMap()["query"])
	assert.Equal(t, "sess-9", req[0].ContextMap()["session_id"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/42", nil))
	req = recorded.FilterMessage("HTTP Request").All()
	require.Len(t, req, 2)
	assert.Equal(t, zapcore.WarnLevel, req[1].Level)
	assert.Equal(t, "/items/:id", req[1].ContextMap()["route"])
}

func TestGinMiddleware_QuietPaths(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(GinMiddleware(zap.New(core), "/health"))
	healthy := true
	r.GET("/health", func(c *gin.Context) {
		if healthy {
			c.Status(http.StatusOK)
			return
		}
		c.Status(http.StatusServiceUnavailable)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Zero(t, recorded.FilterMessage("HTTP Request").Len())

	healthy = false
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, 1, recorded.FilterMessage("HTTP Request").Len())
}

func TestRecovery(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("request_id", "rid-2"); c.Next() })
	r.Use(Recovery(zap.New(core)))
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, recorded.FilterMessage("Panic recovered").Len())

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code      string `json:"code"`
			RequestID string `json:"request_id"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.Equal(t, "rid-2", body.Error.RequestID)
}
