// Package mocks provides testify mocks for the service interfaces the
// handler and background layers consume.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/forkcast/backend/internal/models"
	"github.com/forkcast/backend/internal/service"
)

// MockRecommendationService mocks the recommendation store
type MockRecommendationService struct {
	mock.Mock
}

func (m *MockRecommendationService) Upsert(ctx context.Context, userID uuid.UUID, recipeID string, channel models.Channel, score float64, reason string) error {
	args := m.Called(ctx, userID, recipeID, channel, score, reason)
	return args.Error(0)
}

func (m *MockRecommendationService) QueryByChannel(ctx context.Context, userID uuid.UUID, channel models.Channel, limit int) ([]service.RecommendedRecipe, error) {
	args := m.Called(ctx, userID, channel, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.RecommendedRecipe), args.Error(1)
}

func (m *MockRecommendationService) ReapExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockOrchestrator mocks the refresh driver
type MockOrchestrator struct {
	mock.Mock
}

func (m *MockOrchestrator) Refresh(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockQueryService mocks the query surface
type MockQueryService struct {
	mock.Mock
}

func (m *MockQueryService) GetByChannel(ctx context.Context, userID uuid.UUID, channel models.Channel) ([]service.RecommendedRecipe, error) {
	args := m.Called(ctx, userID, channel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.RecommendedRecipe), args.Error(1)
}

func (m *MockQueryService) GetAllChannels(ctx context.Context, userID uuid.UUID) (map[models.Channel][]service.RecommendedRecipe, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[models.Channel][]service.RecommendedRecipe), args.Error(1)
}
