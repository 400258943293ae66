package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/forkcast/backend/internal/api"
	"github.com/forkcast/backend/internal/database"
	"github.com/forkcast/backend/internal/middleware"
)

// Deps bundles what the router needs wired.
type Deps struct {
	HealthDB       *database.DB
	Validator      middleware.TokenValidator
	Auth           *api.AuthHandler
	Profile        *api.ProfileHandler
	Recipes        *api.RecipeHandler
	Recommendation *api.RecommendationHandler
	// RefreshLimiter is optional; without redis the refresh route runs
	// unlimited.
	RefreshLimiter *middleware.RateLimiter
}

// SetupRouter configures the application routes
func SetupRouter(deps Deps) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if deps.HealthDB != nil {
			if err := deps.HealthDB.HealthCheck(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	deps.Auth.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Validator))
	{
		deps.Profile.RegisterRoutes(protected)
		deps.Recipes.RegisterRoutes(protected)

		var refreshMiddleware []gin.HandlerFunc
		if deps.RefreshLimiter != nil {
			refreshMiddleware = append(refreshMiddleware, deps.RefreshLimiter.RateLimitMiddleware())
		}
		deps.Recommendation.RegisterRoutes(protected, refreshMiddleware...)
	}

	return router
}
