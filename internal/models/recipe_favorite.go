package models

import (
	"time"

	"github.com/google/uuid"
)

type RecipeFavorite struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	RecipeID  string    `gorm:"size:64;primaryKey" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (RecipeFavorite) TableName() string {
	return "recipe_favorites"
}
