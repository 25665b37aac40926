package repository

import (
	"context"
	"errors"

	"snsapp/internal/models"
	"snsapp/internal/pagination"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(tx *gorm.DB, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	// ListByPost pages a post's comments newest-first.
	ListByPost(ctx context.Context, postID uint, limit int, cursor *uint) ([]*models.Comment, error)
	Delete(tx *gorm.DB, id uint) error
	AdjustLikeCount(tx *gorm.DB, commentID uint, delta int) error
	AdjustRecommentCount(tx *gorm.DB, commentID uint, delta int) error
}

// RecommentRepository defines interface for recomment operations
type RecommentRepository interface {
	Create(tx *gorm.DB, recomment *models.Recomment) error
	GetByID(ctx context.Context, id uint) (*models.Recomment, error)
	// ListByComment pages a comment's recomments newest-first.
	ListByComment(ctx context.Context, commentID uint, limit int, cursor *uint) ([]*models.Recomment, error)
	// AllByComment returns every recomment of a comment, oldest first. Used to
	// build generation context for the bot reply.
	AllByComment(ctx context.Context, commentID uint) ([]*models.Recomment, error)
	Delete(tx *gorm.DB, id uint) error
	AdjustLikeCount(tx *gorm.DB, recommentID uint, delta int) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(tx *gorm.DB, comment *models.Comment) error {
	if err := tx.Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint, limit int, cursor *uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Scopes(pagination.Scope(cursor, pagination.Descending)).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func (r *commentRepository) Delete(tx *gorm.DB, id uint) error {
	if err := tx.Delete(&models.Comment{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) AdjustLikeCount(tx *gorm.DB, commentID uint, delta int) error {
	return adjustCounter(tx, &models.Comment{}, commentID, "like_count", delta)
}

func (r *commentRepository) AdjustRecommentCount(tx *gorm.DB, commentID uint, delta int) error {
	return adjustCounter(tx, &models.Comment{}, commentID, "recomment_count", delta)
}

type recommentRepository struct {
	db *gorm.DB
}

// NewRecommentRepository creates a new RecommentRepository
func NewRecommentRepository(db *gorm.DB) RecommentRepository {
	return &recommentRepository{db: db}
}

func (r *recommentRepository) Create(tx *gorm.DB, recomment *models.Recomment) error {
	if err := tx.Create(recomment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *recommentRepository) GetByID(ctx context.Context, id uint) (*models.Recomment, error) {
	var recomment models.Recomment
	if err := r.db.WithContext(ctx).First(&recomment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Recomment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &recomment, nil
}

func (r *recommentRepository) ListByComment(ctx context.Context, commentID uint, limit int, cursor *uint) ([]*models.Recomment, error) {
	var recomments []*models.Recomment
	err := r.db.WithContext(ctx).
		Where("comment_id = ?", commentID).
		Scopes(pagination.Scope(cursor, pagination.Descending)).
		Limit(limit).
		Find(&recomments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return recomments, nil
}

func (r *recommentRepository) AllByComment(ctx context.Context, commentID uint) ([]*models.Recomment, error) {
	var recomments []*models.Recomment
	err := r.db.WithContext(ctx).
		Where("comment_id = ?", commentID).
		Order("id ASC").
		Find(&recomments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return recomments, nil
}

func (r *recommentRepository) Delete(tx *gorm.DB, id uint) error {
	if err := tx.Delete(&models.Recomment{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *recommentRepository) AdjustLikeCount(tx *gorm.DB, recommentID uint, delta int) error {
	return adjustCounter(tx, &models.Recomment{}, recommentID, "like_count", delta)
}
