package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/forkcast/backend/internal/models"
)

const (
	aiMaxReadyTime = 60
	aiReason       = "Based on your preferences and dietary restrictions."
)

// aiPreferenceGenerator builds a profile-driven query against the
// external search provider. "AI" here is a heuristic query, not a
// trained model.
type aiPreferenceGenerator struct {
	searcher RecipeSearcher
}

var _ Generator = (*aiPreferenceGenerator)(nil)

// NewAIPreferenceGenerator creates the ai_generated channel generator.
func NewAIPreferenceGenerator(searcher RecipeSearcher) Generator {
	return &aiPreferenceGenerator{searcher: searcher}
}

func (g *aiPreferenceGenerator) Channel() models.Channel {
	return models.ChannelAIGenerated
}

func (g *aiPreferenceGenerator) Generate(ctx context.Context, userID uuid.UUID, profile *models.UserProfile, favorites []string) ([]Candidate, error) {
	params := SearchParams{
		Query:        strings.Join(profile.FavoriteCuisines, " "),
		Diet:         strings.Join(profile.DietaryRestrictions, ","),
		Intolerances: intolerancesFrom(profile.DietaryRestrictions),
		MaxReadyTime: aiMaxReadyTime,
		Number:       aiCandidateLimit,
	}
	if len(profile.FavoriteCuisines) > 0 {
		params.Cuisine = strings.Join(profile.FavoriteCuisines, ",")
	}

	results, err := g.searcher.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(results))
	for _, res := range results {
		if len(candidates) >= aiCandidateLimit {
			break
		}
		id := models.SpoonacularRecipeID(res.ID)
		candidates = append(candidates, Candidate{
			RecipeID: id,
			Score:    aiGeneratedScore,
			Reason:   aiReason,
			Recipe:   recipeFromSearchResult(res, id, nil),
		})
	}
	return candidates, nil
}
