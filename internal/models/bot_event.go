package models

import "time"

// BotEventType names a bot side-effect trigger.
type BotEventType string

const (
	// BotEventRecomment is a bot reply to a comment.
	BotEventRecomment BotEventType = "recomment"
	// BotEventBoardPost is a cadence-triggered bot post on a board.
	BotEventBoardPost BotEventType = "board_post"
)

// BotEvent is the idempotency claim for a bot side effect. The unique index
// makes the first inserter win; a duplicate trigger sees zero rows affected
// and aborts without calling the generation server.
type BotEvent struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	EventType BotEventType `gorm:"type:varchar(30);not null;uniqueIndex:idx_bot_events_claim,priority:1" json:"event_type"`
	// ClaimKey identifies the triggering occurrence: the comment id for
	// recomment events, "<board>:<post count>" for board-post cadence events.
	ClaimKey  string    `gorm:"not null;uniqueIndex:idx_bot_events_claim,priority:2" json:"claim_key"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (BotEvent) TableName() string {
	return "bot_events"
}
