package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/buildscape/marketplace-api/internal/api/handler"
	"github.com/buildscape/marketplace-api/internal/api/middleware"
	"github.com/buildscape/marketplace-api/internal/core/ports"
	"github.com/buildscape/marketplace-api/internal/core/service"
	mongodb "github.com/buildscape/marketplace-api/internal/infrastructure/db/mongo"
	healthhandlers "github.com/buildscape/marketplace-api/internal/infrastructure/http/handlers"
	"github.com/buildscape/marketplace-api/internal/pkg/upload"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, tokens ports.TokenService, uploads *upload.Store, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	providerRepo := mongodb.NewProviderRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)

	authService := service.NewAuthService(userRepo, tokens)
	providerService := service.NewProviderService(userRepo, providerRepo, tokens, log)
	projectService := service.NewProjectService(projectRepo, providerRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	providerHandler := handler.NewProviderHandler(providerService, uploads)
	projectHandler := handler.NewProjectHandler(projectService)

	authRequired := middleware.Auth(tokens)
	providerOnly := middleware.RequireServiceProvider()
	verifiedOnly := middleware.RequireVerifiedProvider(providerRepo)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, authRequired)
	auth.GET("/me", authHandler.Me, authRequired)
	auth.PUT("/profile", authHandler.UpdateProfile, authRequired)
	auth.PUT("/membership", authHandler.UpdateMembership, authRequired)

	// --- Service provider routes ---
	services := e.Group("/api/services")
	services.POST("/register", providerHandler.Register)
	services.GET("/providers", providerHandler.List)
	services.GET("/providers/:id", providerHandler.Get)
	services.GET("/search", providerHandler.Search)
	services.PUT("/profile", providerHandler.UpdateProfile, authRequired, providerOnly)
	services.POST("/portfolio", providerHandler.AddPortfolio, authRequired, verifiedOnly)
	services.POST("/estimate", providerHandler.Estimate, authRequired)

	// --- Project routes (all protected) ---
	projects := e.Group("/api/projects", authRequired)
	projects.POST("", projectHandler.Create)
	projects.GET("", projectHandler.List)
	projects.GET("/:id", projectHandler.Get)
	projects.PUT("/:id", projectHandler.Update)
	projects.DELETE("/:id", projectHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	readinessHandler := healthhandlers.NewReadinessHandler(db)

	e.GET("/health", healthHandler.Liveness)       // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – is the store up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
