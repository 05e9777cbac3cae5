package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pupuk/storefront/internal/interfaces/http/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.Equal(t, "v1", r.apiVersion)
	assert.Equal(t, "/api/v1", r.BasePath())
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	r := NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "/api/v2", r.BasePath())
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	group := NewDomainGroup("test", "/test")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	NewRouter(engine).Register(group).Setup()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/test/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestDomainGroup(t *testing.T) {
	ok := func(body string) gin.HandlerFunc {
		return func(c *gin.Context) { c.String(http.StatusOK, body) }
	}

	t.Run("methods", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("cart", "/cart").
			GET("", ok("get")).
			POST("/items", ok("post")).
			PUT("/items/:id", ok("put")).
			DELETE("/items/:id", ok("delete"))
		g.RegisterRoutes(engine.Group("/api/v1"))

		for _, tt := range []struct{ method, path, body string }{
			{http.MethodGet, "/api/v1/cart", "get"},
			{http.MethodPost, "/api/v1/cart/items", "post"},
			{http.MethodPut, "/api/v1/cart/items/1", "put"},
			{http.MethodDelete, "/api/v1/cart/items/1", "delete"},
		} {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, http.StatusOK, w.Code, "%s %s", tt.method, tt.path)
			assert.Equal(t, tt.body, w.Body.String())
		}
	})

	t.Run("middleware applies to subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("admin", "/admin")
		g.Use(func(c *gin.Context) {
			c.Header("X-Test-Middleware", "applied")
			c.Next()
		})
		g.Group("orders", "/orders").GET("", ok("orders"))
		g.RegisterRoutes(engine.Group("/api/v1"))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "applied", w.Header().Get("X-Test-Middleware"))
	})

	t.Run("paths", func(t *testing.T) {
		g := NewDomainGroup("store", "/store").GET("/products", ok(""))
		g.Group("nested", "/x").POST("", ok(""))
		assert.Equal(t, []string{"GET /store/products", "POST /store/x"}, g.Paths())
		assert.Equal(t, "store", g.Name())
		assert.Equal(t, "/store", g.Prefix())
	})
}

// stubHandlers only fills pointers; tests below never reach a handler body.
func stubHandlers() Handlers {
	return Handlers{
		Health:       new(handler.HealthHandler),
		Store:        new(handler.StoreHandler),
		Region:       new(handler.RegionHandler),
		Cart:         new(handler.CartHandler),
		Address:      new(handler.AddressHandler),
		Customer:     new(handler.CustomerHandler),
		Checkout:     new(handler.CheckoutHandler),
		Confirmation: new(handler.ConfirmationHandler),
		Auth:         new(handler.AuthHandler),
		Entity:       new(handler.EntityHandler),
		Order:        new(handler.OrderHandler),
		Settings:     new(handler.SettingsHandler),
		Stream:       new(handler.OrderStreamHandler),
	}
}

func abortWith(status int) gin.HandlerFunc {
	return func(c *gin.Context) { c.AbortWithStatus(status) }
}

func TestMount_RegistersHTTPSurface(t *testing.T) {
	engine := gin.New()
	Mount(engine, stubHandlers(), Guards{}, Root{Metrics: http.NotFoundHandler(), UploadsDir: t.TempDir()})

	got := map[string]bool{}
	for _, route := range engine.Routes() {
		got[route.Method+" "+route.Path] = true
	}

	want := []string{
		"GET /health",
		"GET /metrics",
		"GET /order-success",
		"GET /uploads/*filepath",
		"HEAD /uploads/*filepath",
		"GET /api/v1/store/settings",
		"GET /api/v1/store/categories",
		"GET /api/v1/store/products",
		"GET /api/v1/store/products/:slug",
		"GET /api/v1/regions/provinces",
		"GET /api/v1/regions/regencies/:id",
		"GET /api/v1/regions/districts/:id",
		"GET /api/v1/regions/villages/:id",
		"GET /api/v1/cart",
		"DELETE /api/v1/cart",
		"POST /api/v1/cart/items",
		"PUT /api/v1/cart/items/:product_id",
		"DELETE /api/v1/cart/items/:product_id",
		"GET /api/v1/address",
		"POST /api/v1/address/select",
		"GET /api/v1/customer",
		"PUT /api/v1/customer",
		"POST /api/v1/checkout",
		"GET /api/v1/confirmation",
		"POST /api/v1/admin/login",
		"POST /api/v1/admin/logout",
		"GET /api/v1/admin/entities/:kind",
		"POST /api/v1/admin/entities/:kind",
		"PUT /api/v1/admin/entities/:kind/:id",
		"DELETE /api/v1/admin/entities/:kind/:id",
		"POST /api/v1/admin/images",
		"GET /api/v1/admin/orders",
		"GET /api/v1/admin/orders/stream",
		"GET /api/v1/admin/orders/:id",
		"PUT /api/v1/admin/orders/:id/status",
		"GET /api/v1/admin/stats",
		"GET /api/v1/admin/settings",
		"PUT /api/v1/admin/settings",
	}
	for _, route := range want {
		assert.True(t, got[route], "missing route %s", route)
	}
	assert.Len(t, got, len(want))
}

func TestMount_OptionalRootEndpoints(t *testing.T) {
	engine := gin.New()
	Mount(engine, stubHandlers(), Guards{}, Root{})

	for _, route := range engine.Routes() {
		assert.NotEqual(t, "/metrics", route.Path)
		assert.NotEqual(t, "/uploads/*filepath", route.Path)
	}
}

func TestMount_Guards(t *testing.T) {
	engine := gin.New()
	Mount(engine, stubHandlers(), Guards{
		Admin:    abortWith(http.StatusUnauthorized),
		Login:    abortWith(http.StatusTooManyRequests),
		Checkout: abortWith(http.StatusTooManyRequests),
	}, Root{})

	cases := []struct {
		method, path string
		status       int
	}{
		{http.MethodPost, "/api/v1/admin/login", http.StatusTooManyRequests},
		{http.MethodPost, "/api/v1/checkout", http.StatusTooManyRequests},
		{http.MethodGet, "/api/v1/admin/orders", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/admin/orders/stream", http.StatusUnauthorized},
		{http.MethodPut, "/api/v1/admin/settings", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/admin/logout", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, tc.status, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestAdminGroup_Paths(t *testing.T) {
	paths := AdminGroup(stubHandlers(), Guards{}).Paths()
	require.NotEmpty(t, paths)
	assert.Equal(t, "POST /admin/login", paths[0])
	assert.Contains(t, paths, "GET /admin/orders/stream")
}
