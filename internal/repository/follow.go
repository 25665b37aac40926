package repository

import (
	"context"
	"errors"

	"snsapp/internal/models"
	"snsapp/internal/pagination"

	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow relationship data operations.
type FollowRepository interface {
	Exists(ctx context.Context, followerID, followingID uint) (bool, error)
	// Create inserts the join row on the caller's transaction. A concurrent
	// duplicate surfaces as gorm.ErrDuplicatedKey via the composite unique
	// index; callers translate it so the check-then-insert race can never
	// double count.
	Create(tx *gorm.DB, follow *models.Follow) error
	// Delete removes the join row on the caller's transaction and reports
	// whether a row existed.
	Delete(tx *gorm.DB, followerID, followingID uint) (bool, error)
	// FollowedMemberIDs returns the subset of memberIDs that viewerID follows,
	// in a single query.
	FollowedMemberIDs(ctx context.Context, viewerID uint, memberIDs []uint) ([]uint, error)
	// ListFollowers pages over the members following userID, ascending by
	// member id (relationship listings are oldest-first).
	ListFollowers(ctx context.Context, userID uint, limit int, cursor *uint) ([]models.Member, error)
	// ListFollowings pages over the members userID follows, ascending by
	// member id.
	ListFollowings(ctx context.Context, userID uint, limit int, cursor *uint) ([]models.Member, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Exists(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_user_id = ? AND following_user_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) Create(tx *gorm.DB, follow *models.Follow) error {
	if err := tx.Create(follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewConflictError("Already following this member")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *followRepository) Delete(tx *gorm.DB, followerID, followingID uint) (bool, error) {
	res := tx.
		Where("follower_user_id = ? AND following_user_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *followRepository) FollowedMemberIDs(ctx context.Context, viewerID uint, memberIDs []uint) ([]uint, error) {
	if len(memberIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_user_id = ? AND following_user_id IN ?", viewerID, memberIDs).
		Pluck("following_user_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *followRepository) ListFollowers(ctx context.Context, userID uint, limit int, cursor *uint) ([]models.Member, error) {
	var members []models.Member
	err := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Joins("JOIN follows ON follows.follower_user_id = members.id").
		Where("follows.following_user_id = ?", userID).
		Scopes(pagination.ScopeOn("members.id", cursor, pagination.Ascending)).
		Limit(limit).
		Find(&members).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return members, nil
}

func (r *followRepository) ListFollowings(ctx context.Context, userID uint, limit int, cursor *uint) ([]models.Member, error) {
	var members []models.Member
	err := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Joins("JOIN follows ON follows.following_user_id = members.id").
		Where("follows.follower_user_id = ?", userID).
		Scopes(pagination.ScopeOn("members.id", cursor, pagination.Ascending)).
		Limit(limit).
		Find(&members).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return members, nil
}
