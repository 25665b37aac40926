// Package service contains the business logic composing repositories, feed
// assembly and post-commit side effects.
package service

import (
	"context"

	"snsapp/internal/cache"
	"snsapp/internal/feed"
	"snsapp/internal/models"
	"snsapp/internal/pagination"
	"snsapp/internal/repository"
	"snsapp/internal/txhook"

	"gorm.io/gorm"
)

// FollowService provides follow relationship business logic.
type FollowService struct {
	runner     *txhook.Runner
	memberRepo repository.MemberRepository
	followRepo repository.FollowRepository
	enricher   *feed.Enricher
}

// NewFollowService returns a new FollowService.
func NewFollowService(
	runner *txhook.Runner,
	memberRepo repository.MemberRepository,
	followRepo repository.FollowRepository,
	enricher *feed.Enricher,
) *FollowService {
	return &FollowService{
		runner:     runner,
		memberRepo: memberRepo,
		followRepo: followRepo,
		enricher:   enricher,
	}
}

// Follow makes followerID follow targetID. The join-row insert and both
// counter adjustments commit or roll back together.
func (s *FollowService) Follow(ctx context.Context, followerID, targetID uint) error {
	if followerID == targetID {
		return models.NewConflictError("Cannot follow yourself")
	}

	if _, err := s.memberRepo.GetByID(ctx, followerID); err != nil {
		return err
	}
	if _, err := s.memberRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	err := s.runner.InTx(ctx, func(tx *gorm.DB, _ *txhook.Hooks) error {
		exists, err := s.followRepo.Exists(ctx, followerID, targetID)
		if err != nil {
			return err
		}
		if exists {
			return models.NewConflictError("Already following this member")
		}

		// The unique index on (follower, following) backstops this check: a
		// concurrent duplicate fails Create and rolls back the counters too.
		follow := &models.Follow{FollowerUserID: followerID, FollowingUserID: targetID}
		if err := s.followRepo.Create(tx, follow); err != nil {
			return err
		}
		if err := s.memberRepo.AdjustFollowingCount(tx, followerID, +1); err != nil {
			return err
		}
		return s.memberRepo.AdjustFollowerCount(tx, targetID, +1)
	})
	if err != nil {
		return err
	}

	// Both member rows carry stale counters in cache; drop them only after
	// the commit so a concurrent read cannot re-cache the old rows.
	cache.InvalidateMember(ctx, followerID)
	cache.InvalidateMember(ctx, targetID)
	return nil
}

// Unfollow removes the relationship and decrements both counters.
func (s *FollowService) Unfollow(ctx context.Context, followerID, targetID uint) error {
	if _, err := s.memberRepo.GetByID(ctx, followerID); err != nil {
		return err
	}
	if _, err := s.memberRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	err := s.runner.InTx(ctx, func(tx *gorm.DB, _ *txhook.Hooks) error {
		removed, err := s.followRepo.Delete(tx, followerID, targetID)
		if err != nil {
			return err
		}
		if !removed {
			return models.NewAlreadyRemovedError("Not following this member")
		}
		if err := s.memberRepo.AdjustFollowingCount(tx, followerID, -1); err != nil {
			return err
		}
		return s.memberRepo.AdjustFollowerCount(tx, targetID, -1)
	})
	if err != nil {
		return err
	}

	cache.InvalidateMember(ctx, followerID)
	cache.InvalidateMember(ctx, targetID)
	return nil
}

// Followers lists the members following userID, oldest relationship first.
func (s *FollowService) Followers(ctx context.Context, userID uint, limit int, cursor *uint, viewerID uint) (pagination.Page[feed.UserInfo], error) {
	return s.memberListing(ctx, userID, limit, cursor, viewerID, s.followRepo.ListFollowers)
}

// Followings lists the members userID follows, oldest relationship first.
func (s *FollowService) Followings(ctx context.Context, userID uint, limit int, cursor *uint, viewerID uint) (pagination.Page[feed.UserInfo], error) {
	return s.memberListing(ctx, userID, limit, cursor, viewerID, s.followRepo.ListFollowings)
}

func (s *FollowService) memberListing(
	ctx context.Context,
	userID uint,
	limit int,
	cursor *uint,
	viewerID uint,
	list func(ctx context.Context, userID uint, limit int, cursor *uint) ([]models.Member, error),
) (pagination.Page[feed.UserInfo], error) {
	var empty pagination.Page[feed.UserInfo]

	if err := pagination.ValidateLimit(limit); err != nil {
		return empty, err
	}
	exists, err := s.memberRepo.Exists(ctx, userID)
	if err != nil {
		return empty, err
	}
	if !exists {
		return empty, models.NewNotFoundError("Member", userID)
	}

	members, err := list(ctx, userID, limit, cursor)
	if err != nil {
		return empty, err
	}
	en, err := s.enricher.EnrichMembers(ctx, members, viewerID)
	if err != nil {
		return empty, err
	}
	infos := feed.AssembleMembers(members, en)
	return pagination.NewPage(infos, limit, func(u feed.UserInfo) uint { return u.ID }), nil
}
