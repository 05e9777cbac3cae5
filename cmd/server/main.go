package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/pupuk/storefront/internal/application/catalog"
	"github.com/pupuk/storefront/internal/application/checkout"
	"github.com/pupuk/storefront/internal/application/confirmation"
	orderapp "github.com/pupuk/storefront/internal/application/order"
	"github.com/pupuk/storefront/internal/application/session"
	settingsapp "github.com/pupuk/storefront/internal/application/settings"
	"github.com/pupuk/storefront/internal/domain/shared"
	"github.com/pupuk/storefront/internal/infrastructure/auth"
	"github.com/pupuk/storefront/internal/infrastructure/cache"
	"github.com/pupuk/storefront/internal/infrastructure/config"
	"github.com/pupuk/storefront/internal/infrastructure/event"
	"github.com/pupuk/storefront/internal/infrastructure/logger"
	"github.com/pupuk/storefront/internal/infrastructure/metrics"
	"github.com/pupuk/storefront/internal/infrastructure/persistence"
	"github.com/pupuk/storefront/internal/infrastructure/regionapi"
	"github.com/pupuk/storefront/internal/infrastructure/scheduler"
	"github.com/pupuk/storefront/internal/infrastructure/storage"
	"github.com/pupuk/storefront/internal/infrastructure/telemetry"
	"github.com/pupuk/storefront/internal/interfaces/http/handler"
	"github.com/pupuk/storefront/internal/interfaces/http/middleware"
	"github.com/pupuk/storefront/internal/interfaces/http/router"
)

//	@title			Storefront API
//	@version		1.0
//	@description	Agricultural supplies storefront with WhatsApp order handoff

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Admin bearer token. Format: "Bearer {token}"

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

const (
	janitorInterval = 5 * time.Minute
	addressWait     = 3 * time.Second
	loginLimit      = 10
	checkoutLimit   = 20
	limitWindow     = time.Minute
	uploadsPath     = "/uploads"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		panic("Failed to load .env: " + err.Error())
	}
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: logger.ISO8601Millis,
		Service:    cfg.App.Name,
		Version:    version,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting storefront",
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		LogsEnabled:       cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.App.Name,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}
	tracerProvider, err := telemetry.NewTracerProvider(ctx, otelCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	logProvider, err := telemetry.NewLoggerProvider(ctx, otelCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize log export", zap.Error(err))
	}
	log = logProvider.Bridge(log, logger.ParseLevel(cfg.Log.Level))
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = tracerProvider.Shutdown(flushCtx)
		_ = logProvider.Shutdown(flushCtx)
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), 200*time.Millisecond)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))
	if tracerProvider.IsEnabled() {
		if err := telemetry.InstrumentGorm(db.DB, cfg.Database.DBName); err != nil {
			log.Fatal("Failed to instrument database", zap.Error(err))
		}
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	brandRepo := persistence.NewGormBrandRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)

	kv, closeKV := openKVStore(cfg, db, log)
	defer closeKV()

	reg := metrics.New("storefront")
	regions := regionapi.NewClient(cfg.Region.BaseURL, cfg.Region.Timeout, log, regionapi.WithObserver(reg))

	bus := event.NewInMemoryEventBus(log)
	stream := handler.NewOrderStreamHandler(log)
	bus.Subscribe(stream)
	go stream.Run(ctx)

	images, uploadsDir := openImageStorage(ctx, cfg, log)
	imageSvc := catalogapp.NewImageService(images, cfg.HTTP.MaxUploadSize, log)

	// Application services
	settingsSvc := settingsapp.NewService(ctx, settingsRepo, log)
	sessions := session.NewRegistry(ctx, kv, regions, log)
	builder := confirmation.NewBuilder(settingsSvc, cfg.Checkout.DefaultWhatsApp, cfg.Checkout.RedirectDelay)
	browseSvc := catalogapp.NewBrowseService(productRepo, categoryRepo)
	adminSvc := catalogapp.NewAdminService(productRepo, categoryRepo, brandRepo, supplierRepo, imageSvc, log)
	orderSvc := orderapp.NewService(orderRepo, productRepo, supplierRepo, bus, log)
	pipeline := checkout.NewPipeline(orderRepo, builder, log,
		checkout.WithPublisher(bus),
		checkout.WithObserver(reg),
	)

	// Back-office auth
	jwtSvc := auth.NewJWTService(cfg.JWT)
	adminAuth, err := auth.NewAdminAuthenticator(cfg.Admin.Username, cfg.Admin.PasswordHash)
	if err != nil {
		log.Fatal("Invalid admin account configuration", zap.Error(err))
	}
	blacklist := auth.NewTokenBlacklist(kv)

	loginLimiter := middleware.NewRateLimiter(loginLimit, limitWindow)
	checkoutLimiter := middleware.NewRateLimiter(checkoutLimit, limitWindow)
	go loginLimiter.Run(ctx)
	go checkoutLimiter.Run(ctx)

	jobs, err := newJanitor(cfg, sessions, kv, log)
	if err != nil {
		log.Fatal("Failed to configure housekeeping jobs", zap.Error(err))
	}
	jobs.Start(ctx)

	middleware.SetupValidator()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		telemetry.GinMiddleware(cfg.App.Name, "/health", cfg.Metrics.Path),
		logger.GinMiddleware(log, "/health", cfg.Metrics.Path),
		logger.Recovery(log),
		middleware.SecureHeaders(),
		middleware.CORSWithConfig(corsConfig(cfg)),
		middleware.Metrics(reg),
		middleware.BodyLimit(cfg.HTTP.MaxUploadSize+1<<20),
		middleware.Session(middleware.SessionConfig{
			CookieName: cfg.Session.CookieName,
			TTL:        cfg.Session.TTL,
			Secure:     cfg.Session.Secure,
		}),
	)

	storeName := func() string { return settingsSvc.Snapshot().StoreName }
	handlers := router.Handlers{
		Health:       handler.NewHealthHandler(version, db),
		Store:        handler.NewStoreHandler(browseSvc, settingsSvc),
		Region:       handler.NewRegionHandler(regions),
		Cart:         handler.NewCartHandler(sessions, browseSvc),
		Address:      handler.NewAddressHandler(sessions, addressWait),
		Customer:     handler.NewCustomerHandler(sessions),
		Checkout:     handler.NewCheckoutHandler(sessions, pipeline),
		Confirmation: handler.NewConfirmationHandler(sessions, builder, storeName, cfg.Checkout.AutoRedirect),
		Auth:         handler.NewAuthHandler(adminAuth, jwtSvc, blacklist),
		Entity:       handler.NewEntityHandler(adminSvc, imageSvc),
		Order:        handler.NewOrderHandler(orderSvc),
		Settings:     handler.NewSettingsHandler(settingsSvc),
		Stream:       stream,
	}
	guards := router.Guards{
		Admin: middleware.JWTAuth(middleware.JWTMiddlewareConfig{
			JWTService: jwtSvc,
			Blacklist:  blacklist,
			QueryToken: true,
			Logger:     log,
		}),
		Login:    middleware.RateLimit(loginLimiter),
		Checkout: middleware.RateLimit(checkoutLimiter),
	}
	root := router.Root{UploadsDir: uploadsDir}
	if cfg.Metrics.Enabled {
		root.Metrics = reg.Handler()
		root.MetricsPath = cfg.Metrics.Path
	}
	router.Mount(engine, handlers, guards, root)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
		// WriteTimeout stays zero: the admin order stream is long-lived.
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := jobs.Stop(shutdownCtx); err != nil {
		log.Warn("Housekeeping jobs did not stop in time", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}

// openKVStore picks the backing store for visitor sessions.
func openKVStore(cfg *config.Config, db *persistence.Database, log *zap.Logger) (shared.KVStore, func()) {
	switch cfg.Session.Store {
	case "redis":
		store, err := cache.NewRedisStore(cache.RedisConfig{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Session.TTL)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Info("Session store ready", zap.String("store", "redis"), zap.String("addr", cfg.Redis.Addr()))
		return store, func() { _ = store.Close() }
	case "database":
		log.Info("Session store ready", zap.String("store", "database"))
		return persistence.NewGormKVStore(db.DB), func() {}
	default:
		log.Info("Session store ready", zap.String("store", "memory"))
		return cache.NewMemoryStore(), func() {}
	}
}

// openImageStorage returns the product image backend and, for local
// storage, the directory to serve under /uploads.
func openImageStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (catalogapp.ImageStorage, string) {
	if cfg.Storage.Driver == "s3" {
		s3, err := storage.NewS3ImageStorage(ctx, &cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to create S3 storage", zap.Error(err))
		}
		if err := s3.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to prepare S3 bucket", zap.Error(err), zap.String("bucket", cfg.Storage.Bucket))
		}
		return s3, ""
	}

	baseURL := cfg.Storage.PublicBaseURL
	if baseURL == "" {
		baseURL = uploadsPath
	}
	local, err := storage.NewLocalImageStorage(cfg.Storage.LocalDir, baseURL)
	if err != nil {
		log.Fatal("Failed to create local storage", zap.Error(err))
	}
	return local, cfg.Storage.LocalDir
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	c := middleware.DefaultCORSConfig()
	c.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	c.AllowMethods = cfg.HTTP.CORSAllowMethods
	c.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	return c
}

// newJanitor schedules eviction of idle in-process sessions and, for the
// database store, purging of expired KV slots.
func newJanitor(cfg *config.Config, sessions *session.Registry, kv shared.KVStore, log *zap.Logger) (*scheduler.Scheduler, error) {
	s := scheduler.New(log)
	err := s.Add(scheduler.Job{
		Name:     "evict-sessions",
		Interval: janitorInterval,
		Run: func(context.Context) error {
			if n := sessions.Evict(cfg.Session.TTL); n > 0 {
				log.Debug("Evicted idle sessions", zap.Int("count", n))
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	store, ok := kv.(*persistence.GormKVStore)
	if !ok {
		return s, nil
	}
	err = s.Add(scheduler.Job{
		Name:       "purge-kv-slots",
		Interval:   janitorInterval,
		RunOnStart: true,
		Run: func(ctx context.Context) error {
			n, err := store.PurgeBefore(ctx, time.Now().Add(-cfg.Session.TTL))
			if err != nil {
				return err
			}
			if n > 0 {
				log.Debug("Purged expired sessions", zap.Int64("count", n))
			}
			return nil
		},
	})
	return s, err
}
