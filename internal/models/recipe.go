package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Recipe difficulty levels, derived from ready time for externally
// sourced recipes.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Recipe is a canonical catalog entry. IDs are strings because
// channel-sourced recipes carry externally namespaced identifiers
// (e.g. "spoonacular-716429") while user-authored recipes use UUIDs.
type Recipe struct {
	ID              string           `gorm:"primaryKey;size:64" json:"id"`
	Title           string           `gorm:"size:255;not null" json:"title"`
	Description     string           `gorm:"type:text" json:"description"`
	Ingredients     JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions    JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	CookTimeMinutes int              `json:"cook_time_minutes"`
	Servings        int              `json:"servings"`
	Difficulty      string           `gorm:"size:16" json:"difficulty"`
	Cuisine         string           `gorm:"size:100" json:"cuisine"`
	ImageURL        string           `gorm:"size:512" json:"image_url"`
	VideoURL        string           `gorm:"size:512" json:"video_url,omitempty"`
	Tags            JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	Rating          float64          `json:"rating"`
	TotalRatings    int              `json:"total_ratings"`
	IsUserGenerated bool             `gorm:"index" json:"is_user_generated"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// Namespaced id construction for externally sourced recipes. Keeping
// these in one place is what guarantees channel-sourced ids can never
// collide with user-authored UUID ids.

// SpoonacularRecipeID builds the catalog id for a recipe fetched by the
// preference-driven search.
func SpoonacularRecipeID(externalID int) string {
	return fmt.Sprintf("spoonacular-%d", externalID)
}

// SeasonalRecipeID builds the catalog id for a recipe fetched by the
// seasonal search.
func SeasonalRecipeID(externalID int) string {
	return fmt.Sprintf("seasonal-%d", externalID)
}

// NewUserRecipeID builds the catalog id for a user-authored recipe.
func NewUserRecipeID() string {
	return uuid.NewString()
}
