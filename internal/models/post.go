package models

import (
	"time"

	"gorm.io/gorm"
)

// BoardType partitions the post feed.
type BoardType string

const (
	// BoardAll is the shared board every member posts to.
	BoardAll BoardType = "all"
	// BoardFree is the off-topic board.
	BoardFree BoardType = "free"
	// BoardQnA is the question board.
	BoardQnA BoardType = "qna"
)

// ValidBoardType reports whether s names a known board.
func ValidBoardType(s string) bool {
	switch BoardType(s) {
	case BoardAll, BoardFree, BoardQnA:
		return true
	}
	return false
}

// Post represents a feed post.
//
// LikeCount mirrors the PostLike row count and CommentCount mirrors the
// Comment row count for this post; both are adjusted only inside the same
// transaction as the row they mirror.
type Post struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	MemberID       uint      `gorm:"not null;index" json:"member_id"`
	Member         Member    `gorm:"foreignKey:MemberID" json:"-"`
	BoardType      BoardType `gorm:"type:varchar(20);not null;index:idx_posts_board_id" json:"board_type"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	YoutubeURL     string    `json:"youtube_url,omitempty"`
	YoutubeSummary string    `gorm:"type:text" json:"youtube_summary,omitempty"`
	LikeCount      int       `gorm:"not null;default:0" json:"like_count"`
	CommentCount   int       `gorm:"not null;default:0" json:"comment_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM
func (Post) TableName() string {
	return "posts"
}

// PostImage is an image attached to a post, ordered by SortIndex.
type PostImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index:idx_post_images_post_sort,priority:1" json:"post_id"`
	SortIndex int       `gorm:"not null;default:0;index:idx_post_images_post_sort,priority:2" json:"sort_index"`
	ImgURL    string    `gorm:"not null" json:"img_url"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (PostImage) TableName() string {
	return "post_images"
}
