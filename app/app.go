package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"mugix-storefront/app/controller"
	"mugix-storefront/app/middleware"
	"mugix-storefront/app/router"
	"mugix-storefront/auth"
	"mugix-storefront/config"
	"mugix-storefront/db"
	"mugix-storefront/repository"
	"mugix-storefront/service"
)

// App holds the wired HTTP handler and the resources to release on shutdown
type App struct {
	Handler http.Handler

	db    *sql.DB
	redis *redis.Client
}

// Initialize initializes the application
func Initialize(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	conn, err := db.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	a := &App{db: conn}

	if err := db.Migrate(conn, logger); err != nil {
		a.Close()
		return nil, err
	}

	storage, err := newStorage(ctx, cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(conn, logger)
	categoryRepo := repository.NewCategoryRepository(conn, logger)
	contactRepo := repository.NewContactRepository(conn, logger)

	// Initialize services
	var catalog service.CatalogServiceInterface = service.NewCatalogService(productRepo, categoryRepo, logger)
	if cfg.Redis.Addr != "" {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := a.redis.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, catalog cache will fall through", zap.Error(err))
		}
		catalog = service.NewCachedCatalogService(catalog, a.redis, cfg.Redis.TTL, logger)
		logger.Info("catalog cache enabled", zap.String("addr", cfg.Redis.Addr), zap.Duration("ttl", cfg.Redis.TTL))
	}
	uploads := service.NewUploadService(storage, logger)
	pdf := service.NewCatalogPDFService(catalog, cfg.ChromePath, cfg.Storefront.PublicBaseURL, logger)

	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		logger.Warn("admin credentials not configured, admin login is disabled")
	}
	authManager := auth.NewManager(cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.JWTSecret, cfg.Admin.TokenTTL)

	// Create controllers
	controllers := &router.Controllers{
		Product:  controller.NewProductController(catalog, uploads, logger),
		Order:    controller.NewOrderController(catalog, cfg.Storefront, logger),
		Category: controller.NewCategoryController(catalog, logger),
		Contact:  controller.NewContactController(contactRepo, logger),
		Auth:     controller.NewAuthController(authManager, logger),
		Upload:   controller.NewUploadController(uploads, logger),
		Catalog:  controller.NewCatalogController(pdf, logger),
	}

	opts := router.Options{
		Verifier: authManager,
		Metrics:  middleware.NewMetrics(),
		Logger:   logger,
	}
	if cfg.Upload.Backend == "local" {
		opts.UploadDir = cfg.Upload.Dir
		opts.UploadPrefix = cfg.Upload.PublicPrefix
	}
	a.Handler = router.SetupRoutes(controllers, opts)

	return a, nil
}

// newStorage picks the upload backend named by UPLOAD_BACKEND
func newStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.Storage, error) {
	switch cfg.Upload.Backend {
	case "local":
		return service.NewLocalStorage(cfg.Upload.Dir, cfg.Upload.PublicPrefix, logger)
	case "drive":
		if cfg.Upload.CredentialsPath == "" {
			return nil, fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS environment variable is not set")
		}
		return service.NewDriveStorage(ctx, cfg.Upload.CredentialsPath, cfg.Upload.DriveFolderID, logger)
	default:
		return nil, fmt.Errorf("unknown upload backend %q", cfg.Upload.Backend)
	}
}

// Close releases the database and cache connections
func (a *App) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}
