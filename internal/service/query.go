package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/forkcast/backend/internal/models"
)

// QueryService is the read surface over the recommendation store. It
// never writes; rows only ever enter through the orchestrator.
type QueryService struct {
	store IRecommendationService
}

var _ IQueryService = (*QueryService)(nil)

// NewQueryService creates a QueryService instance.
func NewQueryService(store IRecommendationService) *QueryService {
	return &QueryService{store: store}
}

// GetByChannel returns the live recommendations for one channel. Store
// failures propagate: an empty list must mean "no recommendations",
// never "outage".
func (s *QueryService) GetByChannel(ctx context.Context, userID uuid.UUID, channel models.Channel) ([]RecommendedRecipe, error) {
	if !channel.Valid() {
		return nil, fmt.Errorf("unknown channel %q", channel)
	}
	results, err := s.store.QueryByChannel(ctx, userID, channel, MaxRecommendationsPerChannel)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []RecommendedRecipe{}
	}
	return results, nil
}

// GetAllChannels fetches the four channels concurrently. Channels with
// no live rows map to empty lists, never nil. Any channel's store
// failure fails the whole read.
func (s *QueryService) GetAllChannels(ctx context.Context, userID uuid.UUID) (map[models.Channel][]RecommendedRecipe, error) {
	channels := models.AllChannels()
	out := make(map[models.Channel][]RecommendedRecipe, len(channels))
	for _, ch := range channels {
		out[ch] = []RecommendedRecipe{}
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, ch := range channels {
		wg.Add(1)
		go func(ch models.Channel) {
			defer wg.Done()
			results, err := s.GetByChannel(ctx, userID, ch)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("channel %s: %w", ch, err)
				}
				return
			}
			out[ch] = results
		}(ch)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}
