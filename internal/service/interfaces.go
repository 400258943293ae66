package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/forkcast/backend/internal/models"
)

// ErrProfileNotFound is returned by ProfileProvider when a user has no
// stored profile. Refresh treats it as a no-op precondition, not a
// failure.
var ErrProfileNotFound = errors.New("user profile not found")

// Candidate is a scored recipe proposal produced by a generator before
// persistence. Recipe is non-nil when the generator sourced the record
// externally and it must be merged into the catalog before the
// recommendation row is written; it is nil when the recipe is already a
// catalog row.
type Candidate struct {
	RecipeID string
	Score    float64
	Reason   string
	Recipe   *models.Recipe
}

// Generator produces a bounded list of candidates for one channel. A
// returned error means the channel contributes nothing this run; it
// never aborts sibling channels.
type Generator interface {
	Channel() models.Channel
	Generate(ctx context.Context, userID uuid.UUID, profile *models.UserProfile, favorites []string) ([]Candidate, error)
}

// ProfileProvider supplies the generation inputs owned by the profile
// subsystem.
type ProfileProvider interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
}

// FavoritesProvider supplies the caller's favorited recipe ids.
type FavoritesProvider interface {
	GetFavorites(ctx context.Context, userID uuid.UUID) ([]string, error)
}

// SearchParams are the knobs the external recipe search accepts.
type SearchParams struct {
	Query        string
	Diet         string
	Cuisine      string
	Intolerances []string
	MaxReadyTime int
	Number       int
}

// SearchResult is one raw record from the external recipe search.
type SearchResult struct {
	ID             int      `json:"id"`
	Title          string   `json:"title"`
	Summary        string   `json:"summary"`
	Image          string   `json:"image"`
	ReadyInMinutes int      `json:"readyInMinutes"`
	Servings       int      `json:"servings"`
	Cuisines       []string `json:"cuisines"`
	Diets          []string `json:"diets"`
	DishTypes      []string `json:"dishTypes"`
	Ingredients    []string `json:"ingredients"`
	Instructions   []string `json:"instructions"`
}

// RecipeSearcher is the external recipe-search collaborator.
type RecipeSearcher interface {
	Search(ctx context.Context, params SearchParams) ([]SearchResult, error)
}

// TrendingProvider returns catalog recipes ranked by aggregate
// engagement.
type TrendingProvider interface {
	GetTrending(ctx context.Context, limit int) ([]models.Recipe, error)
}

// FavoritePair is one (user, recipe) favorite link.
type FavoritePair struct {
	UserID   uuid.UUID
	RecipeID string
}

// SimilarityProvider answers the two favorite-overlap scans the
// similar-users channel needs.
type SimilarityProvider interface {
	UsersWhoFavorited(ctx context.Context, recipeIDs []string, excluding uuid.UUID) ([]FavoritePair, error)
	FavoritesOfUsers(ctx context.Context, userIDs []uuid.UUID) ([]FavoritePair, error)
}

// ICatalogService defines the catalog merge and read operations.
type ICatalogService interface {
	UpsertRecipe(ctx context.Context, recipe *models.Recipe) error
	GetRecipe(ctx context.Context, id string) (*models.Recipe, error)
	ListRecipes(ctx context.Context, query, cuisine string) ([]models.Recipe, error)
	CreateUserRecipe(ctx context.Context, userID uuid.UUID, recipe *models.Recipe) (*models.Recipe, error)
}

// RecommendedRecipe is a catalog recipe joined with its live
// recommendation row.
type RecommendedRecipe struct {
	Recipe    models.Recipe  `json:"recipe"`
	Channel   models.Channel `json:"channel"`
	Score     float64        `json:"score"`
	Reason    string         `json:"reason"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// IRecommendationService defines the time-bounded recommendation store.
type IRecommendationService interface {
	Upsert(ctx context.Context, userID uuid.UUID, recipeID string, channel models.Channel, score float64, reason string) error
	QueryByChannel(ctx context.Context, userID uuid.UUID, channel models.Channel, limit int) ([]RecommendedRecipe, error)
	ReapExpired(ctx context.Context) (int64, error)
}

// IOrchestrator drives a full regeneration run for one user.
type IOrchestrator interface {
	Refresh(ctx context.Context, userID uuid.UUID) error
}

// IQueryService is the read surface over the recommendation store.
type IQueryService interface {
	GetByChannel(ctx context.Context, userID uuid.UUID, channel models.Channel) ([]RecommendedRecipe, error)
	GetAllChannels(ctx context.Context, userID uuid.UUID) (map[models.Channel][]RecommendedRecipe, error)
}
