package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/forkcast/backend/internal/models"
)

// FavoritesService stores which recipes a user favorited and answers
// the overlap queries behind the similar-users channel.
type FavoritesService struct {
	db *gorm.DB
}

var (
	_ FavoritesProvider  = (*FavoritesService)(nil)
	_ SimilarityProvider = (*FavoritesService)(nil)
)

// NewFavoritesService creates a new FavoritesService instance
func NewFavoritesService(db *gorm.DB) *FavoritesService {
	return &FavoritesService{db: db}
}

// GetFavorites returns the recipe ids a user has favorited.
func (s *FavoritesService) GetFavorites(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Model(&models.RecipeFavorite{}).
		Where("user_id = ?", userID).
		Order("recipe_id ASC").
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// AddFavorite records a favorite. Repeats are no-ops.
func (s *FavoritesService) AddFavorite(ctx context.Context, userID uuid.UUID, recipeID string) error {
	fav := models.RecipeFavorite{UserID: userID, RecipeID: recipeID}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&fav).Error
}

// RemoveFavorite removes a favorite if present.
func (s *FavoritesService) RemoveFavorite(ctx context.Context, userID uuid.UUID, recipeID string) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.RecipeFavorite{}).Error
}

// UsersWhoFavorited returns the (user, recipe) pairs of other users who
// favorited any of the given recipes.
func (s *FavoritesService) UsersWhoFavorited(ctx context.Context, recipeIDs []string, excluding uuid.UUID) ([]FavoritePair, error) {
	var favs []models.RecipeFavorite
	err := s.db.WithContext(ctx).
		Where("recipe_id IN ? AND user_id <> ?", recipeIDs, excluding).
		Find(&favs).Error
	if err != nil {
		return nil, err
	}
	return toPairs(favs), nil
}

// FavoritesOfUsers returns every (user, recipe) favorite link for the
// given users.
func (s *FavoritesService) FavoritesOfUsers(ctx context.Context, userIDs []uuid.UUID) ([]FavoritePair, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var favs []models.RecipeFavorite
	err := s.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&favs).Error
	if err != nil {
		return nil, err
	}
	return toPairs(favs), nil
}

func toPairs(favs []models.RecipeFavorite) []FavoritePair {
	pairs := make([]FavoritePair, len(favs))
	for i, f := range favs {
		pairs[i] = FavoritePair{UserID: f.UserID, RecipeID: f.RecipeID}
	}
	return pairs
}
