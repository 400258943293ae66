package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/forkcast/backend/internal/models"
)

func TestGetByChannelRejectsUnknownChannel(t *testing.T) {
	queries := NewQueryService(new(mockRecommendationStore))
	_, err := queries.GetByChannel(context.Background(), uuid.New(), models.Channel("nope"))
	assert.Error(t, err)
}

func TestGetByChannelNeverReturnsNil(t *testing.T) {
	store := new(mockRecommendationStore)
	store.On("QueryByChannel", mock.Anything, mock.Anything, models.ChannelTrending, MaxRecommendationsPerChannel).
		Return([]RecommendedRecipe(nil), nil)

	queries := NewQueryService(store)
	results, err := queries.GetByChannel(context.Background(), uuid.New(), models.ChannelTrending)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestGetByChannelPropagatesStoreFailure(t *testing.T) {
	store := new(mockRecommendationStore)
	store.On("QueryByChannel", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("store unreachable"))

	queries := NewQueryService(store)
	_, err := queries.GetByChannel(context.Background(), uuid.New(), models.ChannelTrending)
	assert.Error(t, err, "an outage must not look like an empty result")
}

func TestGetAllChannels(t *testing.T) {
	db := newTestDB(t)
	store := NewRecommendationService(db)
	catalog := NewCatalogService(db, nil)
	queries := NewQueryService(store)
	ctx := context.Background()
	userID := uuid.New()

	seedRecipe(t, catalog, "r1")
	require.NoError(t, store.Upsert(ctx, userID, "r1", models.ChannelTrending, 0.8, ""))

	channels, err := queries.GetAllChannels(ctx, userID)
	require.NoError(t, err)
	require.Len(t, channels, 4, "every channel appears in the map")
	assert.Len(t, channels[models.ChannelTrending], 1)
	for _, ch := range []models.Channel{models.ChannelAIGenerated, models.ChannelSimilarUsers, models.ChannelSeasonal} {
		assert.NotNil(t, channels[ch])
		assert.Empty(t, channels[ch])
	}
}

func TestGetAllChannelsFailsOnAnyChannelError(t *testing.T) {
	store := new(mockRecommendationStore)
	store.On("QueryByChannel", mock.Anything, mock.Anything, models.ChannelAIGenerated, mock.Anything).
		Return(nil, errors.New("store unreachable"))
	store.On("QueryByChannel", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]RecommendedRecipe{}, nil)

	queries := NewQueryService(store)
	_, err := queries.GetAllChannels(context.Background(), uuid.New())
	assert.Error(t, err)
}
