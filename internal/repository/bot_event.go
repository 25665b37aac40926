package repository

import (
	"context"

	"snsapp/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BotEventRepository claims bot side-effect events.
type BotEventRepository interface {
	// Claim atomically records the event. It returns false when another
	// trigger already claimed the same (event type, claim key) pair, in which
	// case the caller must abort without side effects.
	Claim(ctx context.Context, event *models.BotEvent) (bool, error)
}

type botEventRepository struct {
	db *gorm.DB
}

// NewBotEventRepository creates a new bot event repository
func NewBotEventRepository(db *gorm.DB) BotEventRepository {
	return &botEventRepository{db: db}
}

func (r *botEventRepository) Claim(ctx context.Context, event *models.BotEvent) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(event)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}
