package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/forkcast/backend/internal/models"
)

// Fixed seasonal tag vocabularies, keyed by the leading tag (the season
// name).
var seasonTags = map[string][]string{
	"spring": {"spring", "fresh", "light", "asparagus", "peas"},
	"summer": {"summer", "grilled", "salad", "tomato", "berries"},
	"autumn": {"autumn", "pumpkin", "squash", "apple", "warming"},
	"winter": {"winter", "comfort", "stew", "root vegetables", "citrus"},
}

// seasonForMonth maps a calendar month to its season name.
func seasonForMonth(m time.Month) string {
	switch m {
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	case time.September, time.October, time.November:
		return "autumn"
	default:
		return "winter"
	}
}

// seasonalGenerator queries the external search provider with the
// current season's tag vocabulary plus the user's dietary filter.
type seasonalGenerator struct {
	searcher RecipeSearcher
	now      func() time.Time
}

var _ Generator = (*seasonalGenerator)(nil)

// NewSeasonalGenerator creates the seasonal channel generator.
func NewSeasonalGenerator(searcher RecipeSearcher) Generator {
	return &seasonalGenerator{searcher: searcher, now: time.Now}
}

func (g *seasonalGenerator) Channel() models.Channel {
	return models.ChannelSeasonal
}

func (g *seasonalGenerator) Generate(ctx context.Context, userID uuid.UUID, profile *models.UserProfile, favorites []string) ([]Candidate, error) {
	season := seasonForMonth(g.now().Month())
	tags := seasonTags[season]

	params := SearchParams{
		Query:  strings.Join(tags, " OR "),
		Diet:   strings.Join(profile.DietaryRestrictions, ","),
		Number: seasonalCandidateLimit,
	}
	results, err := g.searcher.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	reason := fmt.Sprintf("Perfect for %s.", tags[0])
	candidates := make([]Candidate, 0, len(results))
	for _, res := range results {
		if len(candidates) >= seasonalCandidateLimit {
			break
		}
		id := models.SeasonalRecipeID(res.ID)
		candidates = append(candidates, Candidate{
			RecipeID: id,
			Score:    seasonalScore,
			Reason:   reason,
			Recipe:   recipeFromSearchResult(res, id, tags),
		})
	}
	return candidates, nil
}
