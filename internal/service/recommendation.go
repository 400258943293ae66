package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/forkcast/backend/internal/models"
)

// MaxRecommendationsPerChannel caps one page of results for a
// (user, channel) pair.
const MaxRecommendationsPerChannel = 12

// RecommendationService is the time-bounded store mapping
// (user, recipe, channel) to a scored link. Expired rows are filtered
// at read time; physical deletion happens in ReapExpired and reads
// never depend on it.
type RecommendationService struct {
	db *gorm.DB
}

var _ IRecommendationService = (*RecommendationService)(nil)

// NewRecommendationService creates a RecommendationService instance.
func NewRecommendationService(db *gorm.DB) *RecommendationService {
	return &RecommendationService{db: db}
}

// Upsert creates or replaces the row for the composite key. A repeat
// write for the same key refreshes score, reason and expiry instead of
// duplicating the row.
func (s *RecommendationService) Upsert(ctx context.Context, userID uuid.UUID, recipeID string, channel models.Channel, score float64, reason string) error {
	now := time.Now().UTC()
	rec := models.Recommendation{
		UserID:    userID,
		RecipeID:  recipeID,
		Channel:   channel,
		Score:     score,
		Reason:    reason,
		CreatedAt: now,
		ExpiresAt: now.Add(models.RecommendationTTL),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}, {Name: "channel"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "reason", "created_at", "expires_at"}),
	}).Create(&rec).Error
}

// QueryByChannel returns live recommendations for the key prefix
// (user, channel), ordered by score descending with recipe id as the
// stable tie-break, joined against the catalog.
func (s *RecommendationService) QueryByChannel(ctx context.Context, userID uuid.UUID, channel models.Channel, limit int) ([]RecommendedRecipe, error) {
	if limit <= 0 || limit > MaxRecommendationsPerChannel {
		limit = MaxRecommendationsPerChannel
	}

	var recs []models.Recommendation
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND channel = ? AND expires_at > ?", userID, channel, time.Now().UTC()).
		Order("score DESC, recipe_id ASC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}

	results := make([]RecommendedRecipe, 0, len(recs))
	if len(recs) == 0 {
		return results, nil
	}

	ids := make([]string, len(recs))
	for i, rec := range recs {
		ids[i] = rec.RecipeID
	}
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&recipes).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]models.Recipe, len(recipes))
	for _, r := range recipes {
		byID[r.ID] = r
	}

	for _, rec := range recs {
		recipe, ok := byID[rec.RecipeID]
		if !ok {
			continue
		}
		results = append(results, RecommendedRecipe{
			Recipe:    recipe,
			Channel:   rec.Channel,
			Score:     rec.Score,
			Reason:    rec.Reason,
			ExpiresAt: rec.ExpiresAt,
		})
	}
	return results, nil
}

// ReapExpired physically deletes rows past their expiry and returns
// the number removed.
func (s *RecommendationService) ReapExpired(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now().UTC()).
		Delete(&models.Recommendation{})
	return result.RowsAffected, result.Error
}
