package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/vantagepointcrm/crm-api/docs"
	"github.com/vantagepointcrm/crm-api/internal/api/handler"
	"github.com/vantagepointcrm/crm-api/internal/api/middleware"
	"github.com/vantagepointcrm/crm-api/internal/core/domain"
	"github.com/vantagepointcrm/crm-api/internal/core/ports"
	"github.com/vantagepointcrm/crm-api/internal/core/service"
	"github.com/vantagepointcrm/crm-api/internal/pkg/config"
)

// Deps bundles everything the router needs wired in. Mongo and Redis are nil
// when the respective backend is not configured; the readiness probe skips
// absent dependencies.
type Deps struct {
	Config     *config.Config
	Logger     zerolog.Logger
	Users      ports.UserRepository
	Leads      ports.LeadRepository
	Dispatcher handler.DocsDispatcher
	Mongo      *mongo.Database
	Redis      *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("crm"))

	// --- Core services ---
	codec := service.NewTokenCodec(deps.Config.JWTSecret, deps.Config.JWTTTL, nil)
	authService := service.NewAuthService(deps.Users, codec, deps.Logger)
	leadService := service.NewLeadService(deps.Leads, deps.Users, deps.Logger)
	statsService := service.NewStatsService(leadService, deps.Leads, deps.Users)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	leadHandler := handler.NewLeadHandler(leadService, authService, deps.Dispatcher)
	statsHandler := handler.NewStatsHandler(statsService, authService)
	healthHandler := handler.NewHealthHandler(deps.Users, deps.Leads)
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	authMW := middleware.Auth(codec)

	// --- Probes and operational endpoints (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- API v1 ---
	v1 := e.Group("/api/v1")
	v1.POST("/auth/login", authHandler.Login)
	v1.GET("/auth/me", authHandler.Me, authMW)

	leads := v1.Group("/leads", authMW)
	leads.GET("", leadHandler.List)
	leads.POST("", leadHandler.Create)
	leads.POST("/bulk-assign", leadHandler.BulkAssign,
		middleware.RBAC(domain.RoleAdmin, domain.RoleManager))
	leads.POST("/:id/send-docs", leadHandler.SendDocs)

	v1.GET("/stats", statsHandler.Get, authMW)

	return e
}
