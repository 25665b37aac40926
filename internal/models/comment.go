package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a top-level comment on a post.
//
// LikeCount mirrors the CommentLike row count; RecommentCount mirrors the
// Recomment row count. Same lifecycle coupling as Post counters.
type Comment struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	PostID         uint   `gorm:"not null;index" json:"post_id"`
	MemberID       uint   `gorm:"not null;index" json:"member_id"`
	Member         Member `gorm:"foreignKey:MemberID" json:"-"`
	Content        string `gorm:"type:text;not null" json:"content"`
	LikeCount      int    `gorm:"not null;default:0" json:"like_count"`
	RecommentCount int    `gorm:"not null;default:0" json:"recomment_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM
func (Comment) TableName() string {
	return "comments"
}

// Recomment represents a reply to a comment, one level down.
type Recomment struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	CommentID uint   `gorm:"not null;index" json:"comment_id"`
	MemberID  uint   `gorm:"not null;index" json:"member_id"`
	Member    Member `gorm:"foreignKey:MemberID" json:"-"`
	Content   string `gorm:"type:text;not null" json:"content"`
	LikeCount int    `gorm:"not null;default:0" json:"like_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM
func (Recomment) TableName() string {
	return "recomments"
}
