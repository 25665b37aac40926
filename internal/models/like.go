package models

import "time"

// Join rows for likes. Identity is conceptually (member_id, target_id); the
// composite unique index is the "already liked" guard of last resort under
// concurrent adds. No lifecycle beyond add/remove, so no soft delete.

// PostLike marks that a member liked a post.
type PostLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MemberID  uint      `gorm:"not null;uniqueIndex:idx_post_likes_pair,priority:1" json:"member_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_likes_pair,priority:2;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (PostLike) TableName() string {
	return "post_likes"
}

// CommentLike marks that a member liked a comment.
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MemberID  uint      `gorm:"not null;uniqueIndex:idx_comment_likes_pair,priority:1" json:"member_id"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_comment_likes_pair,priority:2;index" json:"comment_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (CommentLike) TableName() string {
	return "comment_likes"
}

// RecommentLike marks that a member liked a recomment.
type RecommentLike struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	MemberID    uint      `gorm:"not null;uniqueIndex:idx_recomment_likes_pair,priority:1" json:"member_id"`
	RecommentID uint      `gorm:"not null;uniqueIndex:idx_recomment_likes_pair,priority:2;index" json:"recomment_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (RecommentLike) TableName() string {
	return "recomment_likes"
}
