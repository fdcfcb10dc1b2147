package handlers

import (
	"github.com/bizbooks/bizbooks_backend/internal/core/services"
	"github.com/bizbooks/bizbooks_backend/internal/middleware"
	"github.com/bizbooks/bizbooks_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	svc *services.Container,
) {
	registerCustomValidations()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, svc)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	svc *services.Container,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerJournalRoutes(v1, svc.Journal)
	registerReportingRoutes(v1, svc.Reporting)
	registerDrillDownRoutes(v1, svc.DrillDown)
}
