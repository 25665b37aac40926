// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Role classifies a member account.
type Role string

const (
	// RoleOrdinary is a regular member account.
	RoleOrdinary Role = "ordinary"
	// RoleAdmin is an administrator account.
	RoleAdmin Role = "admin"
	// RoleBot is the AI social-bot account that authors generated content.
	RoleBot Role = "bot"
)

// Member represents a registered account.
//
// FollowerCount and FollowingCount are denormalized caches of Follow rows.
// They are mutated only inside the same transaction as the Follow row they
// mirror (see repository.MemberRepository.AdjustFollowerCount); nothing ever
// recomputes them by scanning the follow table at read time.
type Member struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Email           string `gorm:"uniqueIndex;not null" json:"email"`
	Password        string `gorm:"not null" json:"-"`
	Nickname        string `gorm:"not null;index" json:"nickname"`
	ProfileImageURL string `json:"profile_image_url"`
	Role            Role   `gorm:"type:varchar(20);default:'ordinary';index" json:"role"`
	ClassLabel      string `gorm:"type:varchar(50)" json:"class_label"`
	FollowerCount   int    `gorm:"not null;default:0" json:"follower_count"`
	FollowingCount  int    `gorm:"not null;default:0" json:"following_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM
func (Member) TableName() string {
	return "members"
}

// IsBot reports whether the member is the AI social-bot account.
func (m *Member) IsBot() bool {
	return m.Role == RoleBot
}
