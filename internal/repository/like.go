package repository

import (
	"context"
	"errors"

	"snsapp/internal/models"
	"snsapp/internal/pagination"

	"gorm.io/gorm"
)

// Like repositories share a shape: existence check, guarded insert, delete
// reporting whether a row existed, the viewer's liked-id subset for a page of
// targets, and an ascending liker listing. One implementation per join table
// keeps the SQL obvious.

// PostLikeRepository defines the interface for post like data operations.
type PostLikeRepository interface {
	Exists(ctx context.Context, memberID, postID uint) (bool, error)
	Create(tx *gorm.DB, like *models.PostLike) error
	Delete(tx *gorm.DB, memberID, postID uint) (bool, error)
	// LikedPostIDs returns the subset of postIDs the member has liked, in a
	// single query.
	LikedPostIDs(ctx context.Context, memberID uint, postIDs []uint) ([]uint, error)
	ListLikers(ctx context.Context, postID uint, limit int, cursor *uint) ([]models.Member, error)
}

// CommentLikeRepository defines the interface for comment like data operations.
type CommentLikeRepository interface {
	Exists(ctx context.Context, memberID, commentID uint) (bool, error)
	Create(tx *gorm.DB, like *models.CommentLike) error
	Delete(tx *gorm.DB, memberID, commentID uint) (bool, error)
	LikedCommentIDs(ctx context.Context, memberID uint, commentIDs []uint) ([]uint, error)
	ListLikers(ctx context.Context, commentID uint, limit int, cursor *uint) ([]models.Member, error)
}

// RecommentLikeRepository defines the interface for recomment like data operations.
type RecommentLikeRepository interface {
	Exists(ctx context.Context, memberID, recommentID uint) (bool, error)
	Create(tx *gorm.DB, like *models.RecommentLike) error
	Delete(tx *gorm.DB, memberID, recommentID uint) (bool, error)
	LikedRecommentIDs(ctx context.Context, memberID uint, recommentIDs []uint) ([]uint, error)
	ListLikers(ctx context.Context, recommentID uint, limit int, cursor *uint) ([]models.Member, error)
}

func likeExists(ctx context.Context, db *gorm.DB, model interface{}, targetColumn string, memberID, targetID uint) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).
		Model(model).
		Where("member_id = ? AND "+targetColumn+" = ?", memberID, targetID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// likeCreate translates the unique-index violation so the check-then-insert
// race can never double count: the constraint, not the check, is authoritative.
func likeCreate(tx *gorm.DB, like interface{}) error {
	if err := tx.Create(like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewAlreadyExistsError("Already liked")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func likeDelete(tx *gorm.DB, model interface{}, targetColumn string, memberID, targetID uint) (bool, error) {
	res := tx.Where("member_id = ? AND "+targetColumn+" = ?", memberID, targetID).Delete(model)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func likedTargetIDs(ctx context.Context, db *gorm.DB, model interface{}, targetColumn string, memberID uint, targetIDs []uint) ([]uint, error) {
	if len(targetIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := db.WithContext(ctx).
		Model(model).
		Where("member_id = ? AND "+targetColumn+" IN ?", memberID, targetIDs).
		Pluck(targetColumn, &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func likeListLikers(ctx context.Context, db *gorm.DB, joinTable, targetColumn string, targetID uint, limit int, cursor *uint) ([]models.Member, error) {
	var members []models.Member
	err := db.WithContext(ctx).
		Model(&models.Member{}).
		Joins("JOIN "+joinTable+" ON "+joinTable+".member_id = members.id").
		Where(joinTable+"."+targetColumn+" = ?", targetID).
		Scopes(pagination.ScopeOn("members.id", cursor, pagination.Ascending)).
		Limit(limit).
		Find(&members).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return members, nil
}

type postLikeRepository struct{ db *gorm.DB }

// NewPostLikeRepository creates a new post like repository
func NewPostLikeRepository(db *gorm.DB) PostLikeRepository {
	return &postLikeRepository{db: db}
}

func (r *postLikeRepository) Exists(ctx context.Context, memberID, postID uint) (bool, error) {
	return likeExists(ctx, r.db, &models.PostLike{}, "post_id", memberID, postID)
}

func (r *postLikeRepository) Create(tx *gorm.DB, like *models.PostLike) error {
	return likeCreate(tx, like)
}

func (r *postLikeRepository) Delete(tx *gorm.DB, memberID, postID uint) (bool, error) {
	return likeDelete(tx, &models.PostLike{}, "post_id", memberID, postID)
}

func (r *postLikeRepository) LikedPostIDs(ctx context.Context, memberID uint, postIDs []uint) ([]uint, error) {
	return likedTargetIDs(ctx, r.db, &models.PostLike{}, "post_id", memberID, postIDs)
}

func (r *postLikeRepository) ListLikers(ctx context.Context, postID uint, limit int, cursor *uint) ([]models.Member, error) {
	return likeListLikers(ctx, r.db, "post_likes", "post_id", postID, limit, cursor)
}

type commentLikeRepository struct{ db *gorm.DB }

// NewCommentLikeRepository creates a new comment like repository
func NewCommentLikeRepository(db *gorm.DB) CommentLikeRepository {
	return &commentLikeRepository{db: db}
}

func (r *commentLikeRepository) Exists(ctx context.Context, memberID, commentID uint) (bool, error) {
	return likeExists(ctx, r.db, &models.CommentLike{}, "comment_id", memberID, commentID)
}

func (r *commentLikeRepository) Create(tx *gorm.DB, like *models.CommentLike) error {
	return likeCreate(tx, like)
}

func (r *commentLikeRepository) Delete(tx *gorm.DB, memberID, commentID uint) (bool, error) {
	return likeDelete(tx, &models.CommentLike{}, "comment_id", memberID, commentID)
}

func (r *commentLikeRepository) LikedCommentIDs(ctx context.Context, memberID uint, commentIDs []uint) ([]uint, error) {
	return likedTargetIDs(ctx, r.db, &models.CommentLike{}, "comment_id", memberID, commentIDs)
}

func (r *commentLikeRepository) ListLikers(ctx context.Context, commentID uint, limit int, cursor *uint) ([]models.Member, error) {
	return likeListLikers(ctx, r.db, "comment_likes", "comment_id", commentID, limit, cursor)
}

type recommentLikeRepository struct{ db *gorm.DB }

// NewRecommentLikeRepository creates a new recomment like repository
func NewRecommentLikeRepository(db *gorm.DB) RecommentLikeRepository {
	return &recommentLikeRepository{db: db}
}

func (r *recommentLikeRepository) Exists(ctx context.Context, memberID, recommentID uint) (bool, error) {
	return likeExists(ctx, r.db, &models.RecommentLike{}, "recomment_id", memberID, recommentID)
}

func (r *recommentLikeRepository) Create(tx *gorm.DB, like *models.RecommentLike) error {
	return likeCreate(tx, like)
}

func (r *recommentLikeRepository) Delete(tx *gorm.DB, memberID, recommentID uint) (bool, error) {
	return likeDelete(tx, &models.RecommentLike{}, "recomment_id", memberID, recommentID)
}

func (r *recommentLikeRepository) LikedRecommentIDs(ctx context.Context, memberID uint, recommentIDs []uint) ([]uint, error) {
	return likedTargetIDs(ctx, r.db, &models.RecommentLike{}, "recomment_id", memberID, recommentIDs)
}

func (r *recommentLikeRepository) ListLikers(ctx context.Context, recommentID uint, limit int, cursor *uint) ([]models.Member, error) {
	return likeListLikers(ctx, r.db, "recomment_likes", "recomment_id", recommentID, limit, cursor)
}
