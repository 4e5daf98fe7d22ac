package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/techacademy/user-management-api/internal/api/handler"
	"github.com/techacademy/user-management-api/internal/api/middleware"
	"github.com/techacademy/user-management-api/internal/core/domain"
	"github.com/techacademy/user-management-api/internal/core/ports"
)

// JWTParams carries the verification parameters the auth middleware
// needs; they mirror what the token issuer embeds at signing time.
type JWTParams struct {
	Secret   string
	Issuer   string
	Audience string
}

// NewRouter builds and returns the Echo instance with all routes
// registered. reg receives the per-request HTTP metrics; pass a fresh
// registry in tests to avoid duplicate collector registration.
func NewRouter(
	accounts ports.AccountService,
	db *mongo.Database,
	rdb *redis.Client,
	jwt JWTParams,
	reg prometheus.Registerer,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "usermgmt",
		Registerer: reg,
	}))

	accountHandler := handler.NewAccountHandler(accounts)
	authMiddleware := middleware.Auth(jwt.Secret, jwt.Issuer, jwt.Audience)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Account routes ---
	e.POST("/account/register", accountHandler.Register)
	e.POST("/account/login", accountHandler.Login)
	e.GET("/account/list", accountHandler.List, authMiddleware, adminOnly)
	e.GET("/account/:id", accountHandler.GetByID, authMiddleware)
	e.PUT("/account/:id", accountHandler.Update, authMiddleware)
	e.DELETE("/account/:id", accountHandler.Delete, authMiddleware)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)             // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)   // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
