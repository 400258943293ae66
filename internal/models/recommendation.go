package models

import (
	"time"

	"github.com/google/uuid"
)

// RecommendationTTL is the window after which a recommendation row is
// excluded from query results.
const RecommendationTTL = 7 * 24 * time.Hour

// Recommendation links a user to a recipe through the channel that
// produced it. The composite primary key makes regeneration an upsert:
// at most one live row exists per (user, recipe, channel).
type Recommendation struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	RecipeID  string    `gorm:"size:64;primaryKey" json:"recipe_id"`
	Channel   Channel   `gorm:"size:32;primaryKey" json:"channel"`
	Score     float64   `gorm:"not null" json:"score"`
	Reason    string    `gorm:"size:255" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}
