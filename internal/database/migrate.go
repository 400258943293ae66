package database

import (
	"gorm.io/gorm"

	"github.com/forkcast/backend/internal/models"
)

// RunMigrations applies the schema for every model the services touch.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Recipe{},
		&models.RecipeFavorite{},
		&models.Recommendation{},
	)
}
