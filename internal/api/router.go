package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/farm2door/marketplace/docs"
	"github.com/farm2door/marketplace/internal/api/handler"
	"github.com/farm2door/marketplace/internal/api/middleware"
	"github.com/farm2door/marketplace/internal/core/domain"
	"github.com/farm2door/marketplace/internal/core/ports"
	"github.com/farm2door/marketplace/internal/core/service"
	mongodb "github.com/farm2door/marketplace/internal/infrastructure/db/mongo"
	redisdb "github.com/farm2door/marketplace/internal/infrastructure/db/redis"
	"github.com/farm2door/marketplace/internal/pkg/config"
	"github.com/farm2door/marketplace/internal/pkg/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, dispatcher ports.NotificationDispatcher, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddleware("farm2door"))

	// --- Dependencies ---
	tokens := token.New(token.Config{
		AccessSecret:  cfg.JWT.AccessSecret,
		AccessTTL:     cfg.JWT.AccessTTL,
		RefreshSecret: cfg.JWT.RefreshSecret,
		RefreshTTL:    cfg.JWT.RefreshTTL,
		Issuer:        "farm2door",
	})

	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	reservationRepo := mongodb.NewReservationRepository(db)
	tokenStore := redisdb.NewTokenStore(rdb)

	authService := service.NewAuthService(userRepo, tokens, tokenStore, log)
	productService := service.NewProductService(productRepo, log)
	reservationService := service.NewReservationService(reservationRepo, productRepo, dispatcher, log)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	reservationHandler := handler.NewReservationHandler(reservationService)

	authRequired := middleware.Auth(tokens)
	authOptional := middleware.OptionalAuth(tokens)

	// --- API routes ---
	apiGroup := e.Group("/api")

	auth := apiGroup.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout, authRequired)
	auth.GET("/me", authHandler.Me, authRequired)

	products := apiGroup.Group("/products")
	products.GET("", productHandler.List, authOptional)
	products.GET("/:id", productHandler.Get)
	products.POST("", productHandler.Create, authRequired, middleware.RequireFarmer())
	products.PUT("/:id", productHandler.Update, authRequired, middleware.RequireRole(domain.RoleFarmer, domain.RoleAdmin))
	products.DELETE("/:id", productHandler.Delete, authRequired, middleware.RequireRole(domain.RoleFarmer, domain.RoleAdmin))

	reservations := apiGroup.Group("/reservations", authRequired)
	reservations.POST("", reservationHandler.Create, middleware.RequireCustomer())
	reservations.GET("", reservationHandler.List)
	reservations.GET("/:id", reservationHandler.Get)
	reservations.POST("/:id/deposit", reservationHandler.ConfirmDeposit, middleware.RequireCustomer())
	reservations.PUT("/:id/status", reservationHandler.UpdateStatus)
	reservations.DELETE("/:id", reservationHandler.Cancel)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
