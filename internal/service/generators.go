package service

import (
	"strings"

	"github.com/forkcast/backend/internal/models"
)

// Fixed per-channel scores. Keeping channels on fixed scores (rather
// than computed blends) keeps them independently orderable and the
// ranking auditable; a learned ranking model would replace these
// wholesale.
const (
	aiGeneratedScore  = 0.9
	trendingScore     = 0.8
	similarUsersScore = 0.7
	seasonalScore     = 0.6
)

// Per-channel candidate bounds.
const (
	aiCandidateLimit       = 10
	trendingCandidateLimit = 10
	similarCandidateLimit  = 6
	seasonalCandidateLimit = 8
)

// Intolerances the external search provider recognizes as filters.
// Dietary restrictions outside this set still apply as diet filters but
// cannot be expressed as intolerances.
var recognizedIntolerances = map[string]string{
	"gluten":    "gluten",
	"dairy":     "dairy",
	"egg":       "egg",
	"peanut":    "peanut",
	"tree nut":  "tree nut",
	"soy":       "soy",
	"shellfish": "shellfish",
}

// intolerancesFrom maps a user's dietary restrictions onto the
// provider's recognized intolerance vocabulary.
func intolerancesFrom(restrictions []string) []string {
	var out []string
	for _, r := range restrictions {
		if v, ok := recognizedIntolerances[strings.ToLower(strings.TrimSpace(r))]; ok {
			out = append(out, v)
		}
	}
	return out
}

// difficultyForReadyTime derives a difficulty level from total ready
// time in minutes.
func difficultyForReadyTime(minutes int) string {
	switch {
	case minutes <= 30:
		return models.DifficultyEasy
	case minutes <= 60:
		return models.DifficultyMedium
	default:
		return models.DifficultyHard
	}
}

// recipeFromSearchResult maps a raw external record to a canonical
// catalog recipe under the given namespaced id. extraTags are appended
// after the provider's own dish/diet tags.
func recipeFromSearchResult(res SearchResult, id string, extraTags []string) *models.Recipe {
	cuisine := ""
	if len(res.Cuisines) > 0 {
		cuisine = res.Cuisines[0]
	}
	tags := make([]string, 0, len(res.DishTypes)+len(res.Diets)+len(extraTags))
	tags = append(tags, res.DishTypes...)
	tags = append(tags, res.Diets...)
	tags = append(tags, extraTags...)

	return &models.Recipe{
		ID:              id,
		Title:           res.Title,
		Description:     stripHTML(res.Summary),
		Ingredients:     res.Ingredients,
		Instructions:    res.Instructions,
		CookTimeMinutes: res.ReadyInMinutes,
		Servings:        res.Servings,
		Difficulty:      difficultyForReadyTime(res.ReadyInMinutes),
		Cuisine:         cuisine,
		ImageURL:        res.Image,
		Tags:            tags,
		IsUserGenerated: false,
	}
}

// stripHTML removes the markup the provider embeds in summaries.
func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
