package models

import "time"

// Follow represents a directional follow relationship: the follower user
// follows the following user. Existence of a row is the sole source of truth
// for "A follows B"; the composite unique index is the race-breaker for
// concurrent duplicate follows.
type Follow struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	FollowerUserID  uint      `gorm:"not null;uniqueIndex:idx_follow_pair,priority:1;index" json:"follower_user_id"`
	FollowingUserID uint      `gorm:"not null;uniqueIndex:idx_follow_pair,priority:2;index" json:"following_user_id"`
	CreatedAt       time.Time `json:"created_at"`

	FollowerUser  Member `gorm:"foreignKey:FollowerUserID" json:"-"`
	FollowingUser Member `gorm:"foreignKey:FollowingUserID" json:"-"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
