package database

import (
	"gorm.io/gorm"

	"github.com/calebgil/tandem/internal/models"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Pair{},
		&models.PairCode{},
		&models.Notification{},
		&models.DeviceToken{},
		&models.Todo{},
		&models.Mood{},
		&models.Favorite{},
	)
}
