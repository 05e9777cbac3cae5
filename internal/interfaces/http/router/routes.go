package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pupuk/storefront/internal/interfaces/http/handler"
)

// Handlers bundles every HTTP handler the storefront exposes.
type Handlers struct {
	Health       *handler.HealthHandler
	Store        *handler.StoreHandler
	Region       *handler.RegionHandler
	Cart         *handler.CartHandler
	Address      *handler.AddressHandler
	Customer     *handler.CustomerHandler
	Checkout     *handler.CheckoutHandler
	Confirmation *handler.ConfirmationHandler
	Auth         *handler.AuthHandler
	Entity       *handler.EntityHandler
	Order        *handler.OrderHandler
	Settings     *handler.SettingsHandler
	Stream       *handler.OrderStreamHandler
}

// Guards are the per-group middleware chains.
type Guards struct {
	// Admin authenticates the back-office group.
	Admin gin.HandlerFunc
	// Login throttles credential attempts.
	Login gin.HandlerFunc
	// Checkout throttles order submission.
	Checkout gin.HandlerFunc
}

// Root holds the unversioned endpoints.
type Root struct {
	Metrics     http.Handler
	MetricsPath string
	// UploadsDir is served under /uploads when images are stored locally.
	UploadsDir string
}

// Mount registers the whole storefront surface on engine and returns the
// router used for the versioned part.
func Mount(engine *gin.Engine, h Handlers, g Guards, root Root, opts ...RouterOption) *Router {
	engine.GET("/health", h.Health.Health)
	if root.Metrics != nil {
		p := root.MetricsPath
		if p == "" {
			p = "/metrics"
		}
		engine.GET(p, gin.WrapH(root.Metrics))
	}
	if root.UploadsDir != "" {
		engine.Static("/uploads", root.UploadsDir)
	}
	engine.GET("/order-success", h.Confirmation.OrderSuccess)

	r := NewRouter(engine, opts...)
	for _, group := range StorefrontGroups(h, g) {
		r.Register(group)
	}
	r.Register(AdminGroup(h, g))
	r.Setup()
	return r
}

// StorefrontGroups are the public, session-scoped groups.
func StorefrontGroups(h Handlers, g Guards) []*DomainGroup {
	store := NewDomainGroup("store", "/store").
		GET("/settings", h.Store.GetSettings).
		GET("/categories", h.Store.ListCategories).
		GET("/products", h.Store.ListProducts).
		GET("/products/:slug", h.Store.GetProduct)

	regions := NewDomainGroup("regions", "/regions").
		GET("/provinces", h.Region.Provinces).
		GET("/regencies/:id", h.Region.Regencies).
		GET("/districts/:id", h.Region.Districts).
		GET("/villages/:id", h.Region.Villages)

	cart := NewDomainGroup("cart", "/cart").
		GET("", h.Cart.Get).
		DELETE("", h.Cart.Clear).
		POST("/items", h.Cart.AddItem).
		PUT("/items/:product_id", h.Cart.UpdateItem).
		DELETE("/items/:product_id", h.Cart.RemoveItem)

	address := NewDomainGroup("address", "/address").
		GET("", h.Address.Get).
		POST("/select", h.Address.Select)

	customer := NewDomainGroup("customer", "/customer").
		GET("", h.Customer.Get).
		PUT("", h.Customer.Update)

	checkout := NewDomainGroup("checkout", "/checkout").
		POST("", withGuard(g.Checkout, h.Checkout.Submit)...)

	confirmation := NewDomainGroup("confirmation", "/confirmation").
		GET("", h.Confirmation.Get)

	return []*DomainGroup{store, regions, cart, address, customer, checkout, confirmation}
}

// AdminGroup is the back-office group. Only login sits outside the
// authenticated subgroup.
func AdminGroup(h Handlers, g Guards) *DomainGroup {
	admin := NewDomainGroup("admin", "/admin")
	admin.POST("/login", withGuard(g.Login, h.Auth.Login)...)

	protected := admin.Group("admin-protected", "")
	if g.Admin != nil {
		protected.Use(g.Admin)
	}
	protected.
		POST("/logout", h.Auth.Logout).
		GET("/entities/:kind", h.Entity.List).
		POST("/entities/:kind", h.Entity.Create).
		PUT("/entities/:kind/:id", h.Entity.Update).
		DELETE("/entities/:kind/:id", h.Entity.Delete).
		POST("/images", h.Entity.UploadImage).
		GET("/orders", h.Order.List).
		GET("/orders/stream", h.Stream.Stream).
		GET("/orders/:id", h.Order.Get).
		PUT("/orders/:id/status", h.Order.UpdateStatus).
		GET("/stats", h.Order.Stats).
		GET("/settings", h.Settings.Get).
		PUT("/settings", h.Settings.Update)
	return admin
}

func withGuard(guard gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	if guard == nil {
		return []gin.HandlerFunc{h}
	}
	return []gin.HandlerFunc{guard, h}
}
