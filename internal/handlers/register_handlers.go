package handlers

import (
	"github.com/Anjos2/oportuniapp/cmd/docs"
	portssvc "github.com/Anjos2/oportuniapp/internal/core/ports/services"
	"github.com/Anjos2/oportuniapp/internal/middleware"
	"github.com/Anjos2/oportuniapp/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public surface: registration, login, the opportunity catalog and
	// organization access requests need no session.
	registerAuthRoutes(r, cfg, services.UserSvc, services.TokenSvc)
	registerCatalogRoutes(r, cfg, services.OpportunitySvc)
	registerPublicExternalAccountRoutes(r, services.ExternalAccountSvc)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerProfileRoutes(v1, services.UserSvc)
	registerOpportunityRoutes(v1, services.OpportunitySvc)
	registerApplicationRoutes(v1, services.ApplicationSvc)
	registerReportRoutes(v1, services.ReportSvc)
	registerNotificationRoutes(v1, services.NotificationSvc)
	RegisterModerationRoutes(v1, services.ModerationSvc)
	registerAdminRoutes(v1, services)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
