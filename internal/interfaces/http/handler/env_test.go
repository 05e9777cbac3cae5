package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	catalogapp "github.com/pupuk/storefront/internal/application/catalog"
	"github.com/pupuk/storefront/internal/application/checkout"
	"github.com/pupuk/storefront/internal/application/confirmation"
	orderapp "github.com/pupuk/storefront/internal/application/order"
	"github.com/pupuk/storefront/internal/application/session"
	settingsapp "github.com/pupuk/storefront/internal/application/settings"
	"github.com/pupuk/storefront/internal/domain/region"
	"github.com/pupuk/storefront/internal/infrastructure/auth"
	"github.com/pupuk/storefront/internal/infrastructure/cache"
	"github.com/pupuk/storefront/internal/infrastructure/config"
	"github.com/pupuk/storefront/internal/infrastructure/event"
	"github.com/pupuk/storefront/internal/infrastructure/persistence"
	"github.com/pupuk/storefront/internal/infrastructure/storage"
	"github.com/pupuk/storefront/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

const (
	testAdminPassword = "rahasia-admin"
	testWhatsApp      = "6281234567890"
)

// treeCatalog serves a single province down to one village.
type treeCatalog struct{}

func (treeCatalog) ListProvinces(context.Context) []region.Node {
	return []region.Node{{ID: "33", Name: "JAWA TENGAH"}}
}

func (treeCatalog) ListRegencies(_ context.Context, id string) []region.Node {
	if id != "33" {
		return nil
	}
	return []region.Node{{ID: "3310", Name: "KABUPATEN KLATEN"}}
}

func (treeCatalog) ListDistricts(_ context.Context, id string) []region.Node {
	if id != "3310" {
		return nil
	}
	return []region.Node{{ID: "3310010", Name: "WEDI"}}
}

func (treeCatalog) ListVillages(_ context.Context, id string) []region.Node {
	if id != "3310010" {
		return nil
	}
	return []region.Node{{ID: "3310010001", Name: "PASUNGAN"}}
}

type testEnv struct {
	engine   *gin.Engine
	sessions *session.Registry
	stream   *OrderStreamHandler
	kv       *cache.MemoryStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	log := zap.NewNop()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:", AutoMigrate: true}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	products := persistence.NewGormProductRepository(db.DB)
	categories := persistence.NewGormCategoryRepository(db.DB)
	brands := persistence.NewGormBrandRepository(db.DB)
	suppliers := persistence.NewGormSupplierRepository(db.DB)
	orders := persistence.NewGormOrderRepository(db.DB)

	kv := cache.NewMemoryStore()
	sessions := session.NewRegistry(ctx, kv, treeCatalog{}, log)
	settings := settingsapp.NewService(ctx, persistence.NewGormSettingsRepository(db.DB), log)
	builder := confirmation.NewBuilder(settings, testWhatsApp, 2*time.Second)

	bus := event.NewInMemoryEventBus(log)
	stream := NewOrderStreamHandler(log)
	bus.Subscribe(stream)

	local, err := storage.NewLocalImageStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)
	images := catalogapp.NewImageService(local, 1<<20, log)
	browse := catalogapp.NewBrowseService(products, categories)
	admin := catalogapp.NewAdminService(products, categories, brands, suppliers, images, log)
	orderSvc := orderapp.NewService(orders, products, suppliers, bus, log)
	pipeline := checkout.NewPipeline(orders, builder, log, checkout.WithPublisher(bus))

	jwtSvc := auth.NewJWTService(config.JWTConfig{Secret: "handler-test-secret-0123456789abcdef", Issuer: "storefront-test"})
	hash, err := auth.HashPassword(testAdminPassword)
	require.NoError(t, err)
	adminAuth, err := auth.NewAdminAuthenticator("admin", hash)
	require.NoError(t, err)
	blacklist := auth.NewTokenBlacklist(kv)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Session(middleware.SessionConfig{}))
	r.GET("/health", NewHealthHandler("test", db).Health)

	confirm := NewConfirmationHandler(sessions, builder, func() string { return settings.Snapshot().StoreName }, true)
	r.GET("/order-success", confirm.OrderSuccess)

	api := r.Group("/api/v1")
	store := NewStoreHandler(browse, settings)
	api.GET("/store/settings", store.GetSettings)
	api.GET("/store/categories", store.ListCategories)
	api.GET("/store/products", store.ListProducts)
	api.GET("/store/products/:slug", store.GetProduct)

	regions := NewRegionHandler(treeCatalog{})
	api.GET("/regions/provinces", regions.Provinces)
	api.GET("/regions/regencies/:id", regions.Regencies)

	cart := NewCartHandler(sessions, browse)
	api.GET("/cart", cart.Get)
	api.POST("/cart/items", cart.AddItem)
	api.PUT("/cart/items/:product_id", cart.UpdateItem)
	api.DELETE("/cart/items/:product_id", cart.RemoveItem)
	api.DELETE("/cart", cart.Clear)

	address := NewAddressHandler(sessions, 2*time.Second)
	api.GET("/address", address.Get)
	api.POST("/address/select", address.Select)

	customer := NewCustomerHandler(sessions)
	api.GET("/customer", customer.Get)
	api.PUT("/customer", customer.Update)

	api.POST("/checkout", NewCheckoutHandler(sessions, pipeline).Submit)
	api.GET("/confirmation", confirm.Get)

	authH := NewAuthHandler(adminAuth, jwtSvc, blacklist)
	api.POST("/admin/login", authH.Login)
	protected := api.Group("/admin", middleware.JWTAuth(middleware.JWTMiddlewareConfig{
		JWTService: jwtSvc, Blacklist: blacklist, QueryToken: true,
	}))
	protected.POST("/logout", authH.Logout)
	entities := NewEntityHandler(admin, images)
	protected.GET("/entities/:kind", entities.List)
	protected.POST("/entities/:kind", entities.Create)
	protected.PUT("/entities/:kind/:id", entities.Update)
	protected.DELETE("/entities/:kind/:id", entities.Delete)
	protected.POST("/images", entities.UploadImage)
	ordersH := NewOrderHandler(orderSvc)
	protected.GET("/orders", ordersH.List)
	protected.GET("/orders/:id", ordersH.Get)
	protected.PUT("/orders/:id/status", ordersH.UpdateStatus)
	protected.GET("/stats", ordersH.Stats)
	settingsH := NewSettingsHandler(settings)
	protected.GET("/settings", settingsH.Get)
	protected.PUT("/settings", settingsH.Update)

	return &testEnv{engine: r, sessions: sessions, stream: stream, kv: kv}
}

type call struct {
	method, path string
	body         any
	sessionID    string
	token        string
}

func (e *testEnv) do(t *testing.T, c call) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if c.body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(c.body))
	}
	req := httptest.NewRequest(c.method, c.path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.sessionID != "" {
		req.Header.Set(middleware.SessionHeader, c.sessionID)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

// envelope decodes the standard response body.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	} `json:"error"`
	Meta *struct {
		Total int64 `json:"total"`
	} `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	w := e.do(t, call{method: http.MethodPost, path: "/api/v1/admin/login",
		body: LoginRequest{Username: "admin", Password: testAdminPassword}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var tok auth.Token
	decode(t, w, &tok)
	require.NotEmpty(t, tok.AccessToken)
	return tok.AccessToken
}

// seedProduct creates a category and an active product priced 50000.
func (e *testEnv) seedProduct(t *testing.T, token, name string) catalogapp.ProductResponse {
	t.Helper()
	w := e.do(t, call{method: http.MethodPost, path: "/api/v1/admin/entities/categories", token: token,
		body: map[string]any{"name": "Pupuk Kimia " + name}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var cat catalogapp.CategoryResponse
	decode(t, w, &cat)

	w = e.do(t, call{method: http.MethodPost, path: "/api/v1/admin/entities/products", token: token,
		body: map[string]any{"name": name, "category_id": cat.ID, "selling_price": "50000", "stock": 10}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var p catalogapp.ProductResponse
	decode(t, w, &p)
	return p
}

func newSessionID() string { return uuid.NewString() }
