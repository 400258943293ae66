package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forkcast/backend/internal/models"
	"github.com/forkcast/backend/internal/service"
)

// RecommendationHandler serves the recommendation refresh and query
// surface.
type RecommendationHandler struct {
	orchestrator service.IOrchestrator
	queries      service.IQueryService
}

// NewRecommendationHandler creates a new RecommendationHandler
func NewRecommendationHandler(orchestrator service.IOrchestrator, queries service.IQueryService) *RecommendationHandler {
	return &RecommendationHandler{orchestrator: orchestrator, queries: queries}
}

// RegisterRoutes registers the recommendation routes. extra middleware
// (the refresh rate limit) applies to the refresh route only.
func (h *RecommendationHandler) RegisterRoutes(router *gin.RouterGroup, refreshMiddleware ...gin.HandlerFunc) {
	recs := router.Group("/recommendations")
	{
		handlers := append(refreshMiddleware, h.Refresh)
		recs.POST("/refresh", handlers...)
		recs.GET("", h.GetRecommendations)
	}
}

// Refresh regenerates all channels for the authenticated user. The
// operation is idempotent and its partial failures are internal, so a
// completed run always answers 202.
func (h *RecommendationHandler) Refresh(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.orchestrator.Refresh(c.Request.Context(), userID); err != nil {
		log.Printf("recommendation refresh failed for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to refresh recommendations"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "refreshed"})
}

// GetRecommendations returns either one channel (?channel=) or all
// four.
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if raw := c.Query("channel"); raw != "" {
		channel := models.Channel(raw)
		if !channel.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown channel"})
			return
		}
		results, err := h.queries.GetByChannel(c.Request.Context(), userID, channel)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recommendations"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"channel": channel, "recommendations": results})
		return
	}

	channels, err := h.queries.GetAllChannels(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recommendations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"channels": channels})
}
