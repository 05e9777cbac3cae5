package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method, route string
	status        int
}

type fakeHTTPObserver struct {
	seen []recordedRequest
}

func (f *fakeHTTPObserver) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	f.seen = append(f.seen, recordedRequest{method, route, status})
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	obs := &fakeHTTPObserver{}
	router := gin.New()
	router.Use(Metrics(obs))
	router.GET("/products/:slug", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/urea-1", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	require.Len(t, obs.seen, 2)
	assert.Equal(t, recordedRequest{"GET", "/products/:slug", 200}, obs.seen[0])
	assert.Equal(t, recordedRequest{"GET", "", 404}, obs.seen[1])
}
