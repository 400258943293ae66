package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/forkcast/backend/internal/models"
)

// Test doubles for collaborators the service layer consumes. These live
// in-package so tests can wire them straight into unexported constructors.

type mockRecipeSearcher struct {
	mock.Mock
}

func (m *mockRecipeSearcher) Search(ctx context.Context, params SearchParams) ([]SearchResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]SearchResult), args.Error(1)
}

type mockTrendingProvider struct {
	mock.Mock
}

func (m *mockTrendingProvider) GetTrending(ctx context.Context, limit int) ([]models.Recipe, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Recipe), args.Error(1)
}

type mockRecommendationStore struct {
	mock.Mock
}

func (m *mockRecommendationStore) Upsert(ctx context.Context, userID uuid.UUID, recipeID string, channel models.Channel, score float64, reason string) error {
	args := m.Called(ctx, userID, recipeID, channel, score, reason)
	return args.Error(0)
}

func (m *mockRecommendationStore) QueryByChannel(ctx context.Context, userID uuid.UUID, channel models.Channel, limit int) ([]RecommendedRecipe, error) {
	args := m.Called(ctx, userID, channel, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]RecommendedRecipe), args.Error(1)
}

func (m *mockRecommendationStore) ReapExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
