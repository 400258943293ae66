package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/forkcast/backend/internal/models"
)

const trendingReason = "Trending in the community."

// trendingGenerator surfaces catalog recipes with the highest aggregate
// engagement. No profile filtering is applied.
type trendingGenerator struct {
	trending TrendingProvider
}

var _ Generator = (*trendingGenerator)(nil)

// NewTrendingGenerator creates the trending channel generator.
func NewTrendingGenerator(trending TrendingProvider) Generator {
	return &trendingGenerator{trending: trending}
}

func (g *trendingGenerator) Channel() models.Channel {
	return models.ChannelTrending
}

func (g *trendingGenerator) Generate(ctx context.Context, userID uuid.UUID, profile *models.UserProfile, favorites []string) ([]Candidate, error) {
	recipes, err := g.trending.GetTrending(ctx, trendingCandidateLimit)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(recipes))
	for _, recipe := range recipes {
		// Trending rows are already catalog entries; leaving Recipe nil
		// keeps the merger away from user-authored records.
		candidates = append(candidates, Candidate{
			RecipeID: recipe.ID,
			Score:    trendingScore,
			Reason:   trendingReason,
		})
	}
	return candidates, nil
}
