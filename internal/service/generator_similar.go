package service

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/forkcast/backend/internal/models"
)

const (
	similarUsersReason = "Loved by users with similar tastes."
	similarUserCount   = 5
)

// similarUsersGenerator recommends what users with overlapping
// favorites also favorited. Two dependent reads: first the overlap
// scan, then the favorites of the top overlapping users.
type similarUsersGenerator struct {
	similarity SimilarityProvider
}

var _ Generator = (*similarUsersGenerator)(nil)

// NewSimilarUsersGenerator creates the similar_users channel generator.
func NewSimilarUsersGenerator(similarity SimilarityProvider) Generator {
	return &similarUsersGenerator{similarity: similarity}
}

func (g *similarUsersGenerator) Channel() models.Channel {
	return models.ChannelSimilarUsers
}

func (g *similarUsersGenerator) Generate(ctx context.Context, userID uuid.UUID, profile *models.UserProfile, favorites []string) ([]Candidate, error) {
	// Cold start: with no favorites there is no overlap signal.
	if len(favorites) == 0 {
		return nil, nil
	}

	pairs, err := g.similarity.UsersWhoFavorited(ctx, favorites, userID)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, nil
	}

	overlap := make(map[uuid.UUID]int)
	for _, p := range pairs {
		overlap[p.UserID]++
	}
	similar := make([]uuid.UUID, 0, len(overlap))
	for id := range overlap {
		similar = append(similar, id)
	}
	// Rank by overlap count descending; uuid order as the stable
	// tie-break so repeated runs surface the same users.
	sort.Slice(similar, func(i, j int) bool {
		if overlap[similar[i]] != overlap[similar[j]] {
			return overlap[similar[i]] > overlap[similar[j]]
		}
		return similar[i].String() < similar[j].String()
	})
	if len(similar) > similarUserCount {
		similar = similar[:similarUserCount]
	}

	theirFavorites, err := g.similarity.FavoritesOfUsers(ctx, similar)
	if err != nil {
		return nil, err
	}

	own := make(map[string]bool, len(favorites))
	for _, id := range favorites {
		own[id] = true
	}

	// Union of the similar users' favorites minus the caller's own,
	// deduplicated, iterated in rank order for determinism.
	byUser := make(map[uuid.UUID][]string)
	for _, p := range theirFavorites {
		byUser[p.UserID] = append(byUser[p.UserID], p.RecipeID)
	}

	seen := make(map[string]bool)
	var candidates []Candidate
	for _, u := range similar {
		recipeIDs := byUser[u]
		sort.Strings(recipeIDs)
		for _, recipeID := range recipeIDs {
			if own[recipeID] || seen[recipeID] {
				continue
			}
			seen[recipeID] = true
			candidates = append(candidates, Candidate{
				RecipeID: recipeID,
				Score:    similarUsersScore,
				Reason:   similarUsersReason,
			})
			if len(candidates) >= similarCandidateLimit {
				return candidates, nil
			}
		}
	}
	return candidates, nil
}
