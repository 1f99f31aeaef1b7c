package app

import (
	"context"
	"fmt"
	nethttp "net/http"

	"github.com/diillson/retail-admin-api/internal/adapter/database"
	"github.com/diillson/retail-admin-api/internal/adapter/http"
	"github.com/diillson/retail-admin-api/internal/app/auth"
	"github.com/diillson/retail-admin-api/internal/app/catalog"
	"github.com/diillson/retail-admin-api/internal/app/location"
	"github.com/diillson/retail-admin-api/internal/app/user"
	"github.com/diillson/retail-admin-api/internal/domain/model"
	"github.com/diillson/retail-admin-api/internal/infra/metrics"
	"github.com/diillson/retail-admin-api/internal/infra/middleware"
	"github.com/diillson/retail-admin-api/pkg/config"
	"github.com/diillson/retail-admin-api/pkg/security"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Version é preenchida em tempo de build via -ldflags
var Version = "dev"

type App struct {
	Logger     *zap.Logger
	Config     *config.Config
	DB         *database.Database
	Middleware *middleware.Middleware
	APIMetrics *metrics.APIMetrics

	AuthService *auth.AuthService
	Users       *user.Service
	Brands      *catalog.BrandService
	Categories  *catalog.CategoryService
	Locations   *location.Service

	userHandler     *http.UserHandler
	brandHandler    *http.CatalogHandler[model.Brand]
	categoryHandler *http.CatalogHandler[model.Category]
	locationHandler *http.LocationHandler
	health          *http.HealthChecker
}

// DatabaseConfig traduz a configuração da aplicação para a do adaptador de banco
func DatabaseConfig(cfg config.DatabaseConfig) database.Config {
	return database.Config{
		Driver:          cfg.Driver,
		DSN:             cfg.DSN,
		MaxIdleConns:    cfg.MaxIdleConns,
		MaxOpenConns:    cfg.MaxOpenConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		LogLevel:        database.ParseLogLevel(cfg.LogLevel),
		SlowThreshold:   cfg.SlowThreshold,
		MigrationDir:    cfg.MigrationDir,
		SkipMigrations:  cfg.SkipMigrations,
	}
}

// NewApp abre o banco e cria a aplicação com todas as dependências injetadas
func NewApp(ctx context.Context, logger *zap.Logger, cfg *config.Config) (*App, error) {
	db, err := database.NewDatabase(ctx, DatabaseConfig(cfg.Database), logger)
	if err != nil {
		return nil, fmt.Errorf("erro ao inicializar banco de dados: %w", err)
	}

	application, err := NewAppWithDatabase(logger, cfg, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return application, nil
}

// NewAppWithDatabase monta a aplicação sobre uma conexão já aberta
func NewAppWithDatabase(logger *zap.Logger, cfg *config.Config, db *database.Database) (*App, error) {
	// Repositórios
	userRepo := database.NewUserRepository(db.DB(), logger)
	brandRepo := database.NewBrandRepository(db.DB(), logger)
	categoryRepo := database.NewCategoryRepository(db.DB(), logger)
	locationRepo := database.NewLocationRepository(db.DB())

	// Segurança
	keyManager, err := security.NewKeyManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiration, logger,
		security.WithIssuer(cfg.Auth.Issuer))
	if err != nil {
		return nil, err
	}
	hasher := security.NewPasswordHasher(cfg.Auth.BcryptCost)

	// Serviços
	authService := auth.NewAuthService(userRepo, keyManager, hasher, logger,
		auth.WithAdminOnlyLogin(cfg.Auth.AdminOnlyLogin))
	userService := user.NewService(userRepo, hasher, logger)
	brandService := catalog.NewBrandService(brandRepo, logger)
	categoryService := catalog.NewCategoryService(categoryRepo, logger)
	locationService := location.NewService(locationRepo, logger)

	// Métricas
	var apiMetrics *metrics.APIMetrics
	if cfg.Metrics.Enabled {
		apiMetrics = metrics.NewAPIMetrics()
	}

	middlewares := middleware.NewMiddleware(logger, middleware.Options{
		ServiceName:    cfg.Tracing.ServiceName,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, authService, apiMetrics)

	return &App{
		Logger:      logger,
		Config:      cfg,
		DB:          db,
		Middleware:  middlewares,
		APIMetrics:  apiMetrics,
		AuthService: authService,
		Users:       userService,
		Brands:      brandService,
		Categories:  categoryService,
		Locations:   locationService,

		userHandler:     http.NewUserHandler(authService, userService, logger),
		brandHandler:    http.NewCatalogHandler[model.Brand](brandService, logger),
		categoryHandler: http.NewCatalogHandler[model.Category](categoryService, logger),
		locationHandler: http.NewLocationHandler(locationService, logger),
		health:          http.NewHealthChecker(db, Version, logger),
	}, nil
}

// RegisterRoutes registra todas as rotas no router
func (a *App) RegisterRoutes(router *gin.Engine) {
	m := a.Middleware

	// Configurar middleware global
	router.Use(m.Recovery())
	router.Use(m.IgnoreFavicon())
	router.Use(m.Tracing())
	router.Use(m.Logger())
	router.Use(m.Metrics())
	router.Use(m.SecurityHeaders())
	router.Use(m.CORS())

	router.NoRoute(func(c *gin.Context) {
		c.JSON(nethttp.StatusNotFound, http.Envelope{Success: false, Message: "Route not found"})
	})

	// Rotas públicas
	router.GET("/health", a.health.DetailedHealth)
	router.GET("/health/liveness", a.health.LivenessCheck)
	router.GET("/health/readiness", a.health.ReadinessCheck)
	if a.Config.Metrics.Enabled {
		m.RegisterMetricsEndpoint(router, a.Config.Metrics.PrometheusPath)
	}

	authenticate := m.Authenticate()
	admin := m.RequireAdmin()
	superAdmin := m.RequireSuperAdmin()

	// Usuários
	users := router.Group("/users")
	{
		users.POST("/register", a.userHandler.Register)
		users.POST("/login", a.userHandler.Login)
		users.GET("/me", authenticate, admin, a.userHandler.Me)
		users.GET("", authenticate, superAdmin, a.userHandler.List)
		users.GET("/:id", authenticate, superAdmin, a.userHandler.Get)
		users.PUT("/:id", authenticate, superAdmin, a.userHandler.Update)
		users.PUT("/:id/profile", authenticate, admin, a.userHandler.UpdateProfile)
		users.DELETE("/:id", authenticate, superAdmin, a.userHandler.Delete)
	}

	// Catálogo
	a.brandHandler.RegisterRoutes(router, authenticate, admin, superAdmin)
	a.categoryHandler.RegisterRoutes(router, authenticate, admin, superAdmin)

	// Localização
	router.GET("/provinces", authenticate, admin, a.locationHandler.Provinces)
	router.GET("/districts/:provinceId", authenticate, admin, a.locationHandler.Districts)
	router.GET("/neighborhoods/:districtId", authenticate, admin, a.locationHandler.Neighborhoods)
}

// Close libera os recursos da aplicação
func (a *App) Close() error {
	return a.DB.Close()
}
