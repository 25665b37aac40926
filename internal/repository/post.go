package repository

import (
	"context"
	"errors"

	"snsapp/internal/models"
	"snsapp/internal/pagination"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(tx *gorm.DB, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	// ListByBoard pages the board feed newest-first (id descending).
	ListByBoard(ctx context.Context, board models.BoardType, limit int, cursor *uint) ([]*models.Post, error)
	// ListByMember pages one author's posts newest-first.
	ListByMember(ctx context.Context, memberID uint, limit int, cursor *uint) ([]*models.Post, error)
	// RecentNonBot returns up to n newest non-bot posts on the board, used to
	// build generation context for bot posts.
	RecentNonBot(ctx context.Context, board models.BoardType, n int, botMemberID uint) ([]*models.Post, error)
	CountNonBot(ctx context.Context, board models.BoardType, botMemberID uint) (int64, error)
	UpdateYoutubeSummary(ctx context.Context, postID uint, summary string) error
	Delete(tx *gorm.DB, id uint) error
	AdjustLikeCount(tx *gorm.DB, postID uint, delta int) error
	AdjustCommentCount(tx *gorm.DB, postID uint, delta int) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(tx *gorm.DB, post *models.Post) error {
	if err := tx.Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) ListByBoard(ctx context.Context, board models.BoardType, limit int, cursor *uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Where("board_type = ?", board).
		Scopes(pagination.Scope(cursor, pagination.Descending)).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByMember(ctx context.Context, memberID uint, limit int, cursor *uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Scopes(pagination.Scope(cursor, pagination.Descending)).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) RecentNonBot(ctx context.Context, board models.BoardType, n int, botMemberID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Where("board_type = ? AND member_id <> ?", board, botMemberID).
		Order("id DESC").
		Limit(n).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) CountNonBot(ctx context.Context, board models.BoardType, botMemberID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("board_type = ? AND member_id <> ?", board, botMemberID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *postRepository) UpdateYoutubeSummary(ctx context.Context, postID uint, summary string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumn("youtube_summary", summary)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", postID)
	}
	return nil
}

// Delete and the counter adjustments below run inside a caller-owned
// transaction. Cache invalidation happens in the services after commit: a
// delete inside the still-open transaction would let a concurrent read
// re-cache the pre-commit row for the full TTL.
func (r *postRepository) Delete(tx *gorm.DB, id uint) error {
	if err := tx.Delete(&models.Post{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) AdjustLikeCount(tx *gorm.DB, postID uint, delta int) error {
	return adjustCounter(tx, &models.Post{}, postID, "like_count", delta)
}

func (r *postRepository) AdjustCommentCount(tx *gorm.DB, postID uint, delta int) error {
	return adjustCounter(tx, &models.Post{}, postID, "comment_count", delta)
}
