package api

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/forkcast/backend/internal/middleware"
	"github.com/forkcast/backend/internal/mocks"
	"github.com/forkcast/backend/internal/models"
	"github.com/forkcast/backend/internal/service"
)

// stubValidator accepts the single token "good" for a fixed user.
type stubValidator struct {
	userID uuid.UUID
}

func (v stubValidator) ValidateToken(token string) (*service.TokenClaims, error) {
	if token != "good" {
		return nil, service.ErrInvalidToken
	}
	return &service.TokenClaims{UserID: v.userID, Username: "tester"}, nil
}

func setupRecommendationRouter(t *testing.T) (*gin.Engine, *mocks.MockOrchestrator, *mocks.MockQueryService, uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	orchestrator := new(mocks.MockOrchestrator)
	queries := new(mocks.MockQueryService)
	userID := uuid.New()

	router := gin.New()
	protected := router.Group("/api/v1")
	protected.Use(middleware.AuthMiddleware(stubValidator{userID: userID}))
	NewRecommendationHandler(orchestrator, queries).RegisterRoutes(protected)

	return router, orchestrator, queries, userID
}

func TestRefreshEndpoint(t *testing.T) {
	router, orchestrator, _, userID := setupRecommendationRouter(t)
	orchestrator.On("Refresh", mock.Anything, userID).Return(nil)

	req := httptest.NewRequest("POST", "/api/v1/recommendations/refresh", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 202, w.Code)
	orchestrator.AssertExpectations(t)
}

func TestRefreshEndpointRequiresAuth(t *testing.T) {
	router, orchestrator, _, _ := setupRecommendationRouter(t)

	req := httptest.NewRequest("POST", "/api/v1/recommendations/refresh", nil)
	req.Header.Set("Authorization", "Bearer bad")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
	orchestrator.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything)
}

func TestGetRecommendationsSingleChannel(t *testing.T) {
	router, _, queries, userID := setupRecommendationRouter(t)
	queries.On("GetByChannel", mock.Anything, userID, models.ChannelTrending).Return([]service.RecommendedRecipe{
		{Recipe: models.Recipe{ID: "r1", Title: "Hit"}, Channel: models.ChannelTrending, Score: 0.8},
	}, nil)

	req := httptest.NewRequest("GET", "/api/v1/recommendations?channel=trending", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
	var body struct {
		Channel         string                      `json:"channel"`
		Recommendations []service.RecommendedRecipe `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "trending", body.Channel)
	require.Len(t, body.Recommendations, 1)
	assert.Equal(t, "r1", body.Recommendations[0].Recipe.ID)
}

func TestGetRecommendationsUnknownChannel(t *testing.T) {
	router, _, queries, _ := setupRecommendationRouter(t)

	req := httptest.NewRequest("GET", "/api/v1/recommendations?channel=mystery", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	queries.AssertNotCalled(t, "GetByChannel", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetRecommendationsAllChannels(t *testing.T) {
	router, _, queries, userID := setupRecommendationRouter(t)
	queries.On("GetAllChannels", mock.Anything, userID).Return(map[models.Channel][]service.RecommendedRecipe{
		models.ChannelAIGenerated:  {},
		models.ChannelTrending:     {{Recipe: models.Recipe{ID: "r1"}, Channel: models.ChannelTrending, Score: 0.8}},
		models.ChannelSimilarUsers: {},
		models.ChannelSeasonal:     {},
	}, nil)

	req := httptest.NewRequest("GET", "/api/v1/recommendations", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
	var body struct {
		Channels map[string][]service.RecommendedRecipe `json:"channels"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Channels, 4)
	assert.Len(t, body.Channels["trending"], 1)
	assert.NotNil(t, body.Channels["seasonal"])
}

func TestGetRecommendationsStoreOutage(t *testing.T) {
	router, _, queries, userID := setupRecommendationRouter(t)
	queries.On("GetAllChannels", mock.Anything, userID).Return(nil, errors.New("store unreachable"))

	req := httptest.NewRequest("GET", "/api/v1/recommendations", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 500, w.Code, "an outage is an explicit error, not an empty list")
}
