package repository

import (
	"context"
	"errors"

	"snsapp/internal/cache"
	"snsapp/internal/models"

	"gorm.io/gorm"
)

// MemberRepository defines the interface for member data operations.
type MemberRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Member, error)
	GetByIDs(ctx context.Context, ids []uint) (map[uint]*models.Member, error)
	Exists(ctx context.Context, id uint) (bool, error)
	FirstByRole(ctx context.Context, role models.Role) (*models.Member, error)
	Create(ctx context.Context, member *models.Member) error
	// AdjustFollowerCount and AdjustFollowingCount run on the caller's
	// transaction handle; they are only called next to the Follow row
	// insert/delete they mirror.
	AdjustFollowerCount(tx *gorm.DB, memberID uint, delta int) error
	AdjustFollowingCount(tx *gorm.DB, memberID uint, delta int) error
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	err := cache.Aside(ctx, cache.MemberKey(id), &member, cache.MemberTTL, func() error {
		return r.db.WithContext(ctx).First(&member, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Member", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &member, nil
}

func (r *memberRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]*models.Member, error) {
	result := make(map[uint]*models.Member, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var members []models.Member
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&members).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for i := range members {
		result[members[i].ID] = &members[i]
	}
	return result, nil
}

func (r *memberRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *memberRepository) FirstByRole(ctx context.Context, role models.Role) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("id ASC").
		First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Member with role", role)
		}
		return nil, models.NewInternalError(err)
	}
	return &member, nil
}

func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// The counter adjustments leave cache invalidation to the services after the
// surrounding transaction commits, so a concurrent read cannot re-cache the
// pre-commit member row.
func (r *memberRepository) AdjustFollowerCount(tx *gorm.DB, memberID uint, delta int) error {
	return adjustCounter(tx, &models.Member{}, memberID, "follower_count", delta)
}

func (r *memberRepository) AdjustFollowingCount(tx *gorm.DB, memberID uint, delta int) error {
	return adjustCounter(tx, &models.Member{}, memberID, "following_count", delta)
}
