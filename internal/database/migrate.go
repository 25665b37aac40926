package database

import (
	"fmt"

	"snsapp/internal/models"

	"gorm.io/gorm"
)

// AllModels lists every model registered for automigration, dependency order
// first so foreign keys resolve.
func AllModels() []interface{} {
	return []interface{}{
		&models.Member{},
		&models.Follow{},
		&models.Post{},
		&models.PostImage{},
		&models.Comment{},
		&models.Recomment{},
		&models.PostLike{},
		&models.CommentLike{},
		&models.RecommentLike{},
		&models.BotEvent{},
	}
}

// Migrate runs schema automigration for all registered models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("automigration failed: %w", err)
	}
	return nil
}
