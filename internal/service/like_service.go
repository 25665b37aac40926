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

// LikeService provides like/unlike business logic for posts, comments and
// recomments. Every add/remove pairs the join-row mutation with its counter
// adjustment in one transaction; the join row's unique index is the
// authoritative race-breaker for concurrent duplicate adds.
type LikeService struct {
	runner            *txhook.Runner
	postRepo          repository.PostRepository
	commentRepo       repository.CommentRepository
	recommentRepo     repository.RecommentRepository
	postLikeRepo      repository.PostLikeRepository
	commentLikeRepo   repository.CommentLikeRepository
	recommentLikeRepo repository.RecommentLikeRepository
	enricher          *feed.Enricher
}

// NewLikeService returns a new LikeService.
func NewLikeService(
	runner *txhook.Runner,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	recommentRepo repository.RecommentRepository,
	postLikeRepo repository.PostLikeRepository,
	commentLikeRepo repository.CommentLikeRepository,
	recommentLikeRepo repository.RecommentLikeRepository,
	enricher *feed.Enricher,
) *LikeService {
	return &LikeService{
		runner:            runner,
		postRepo:          postRepo,
		commentRepo:       commentRepo,
		recommentRepo:     recommentRepo,
		postLikeRepo:      postLikeRepo,
		commentLikeRepo:   commentLikeRepo,
		recommentLikeRepo: recommentLikeRepo,
		enricher:          enricher,
	}
}

// LikePost adds a like to a post.
func (s *LikeService) LikePost(ctx context.Context, memberID, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return err
	}

	err := s.runner.InTx(ctx, func(tx *gorm.DB, _ *txhook.Hooks) error {
		liked, err := s.postLikeRepo.Exists(ctx, memberID, postID)
		if err != nil {
			return err
		}
		if liked {
			return models.NewAlreadyExistsError("Already liked this post")
		}
		if err := s.postLikeRepo.Create(tx, &models.PostLike{MemberID: memberID, PostID: postID}); err != nil {
			return err
		}
		return s.postRepo.AdjustLikeCount(tx, postID, +1)
	})
	if err != nil {
		return err
	}

	// Invalidate only once the new count is committed, so a concurrent read
	// cannot re-cache the pre-commit detail.
	cache.InvalidatePost(ctx, postID)
	return nil
}

// UnlikePost removes a like from a post.
func (s *LikeService) UnlikePost(ctx context.Context, memberID, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return err
	}

	err := s.runner.InTx(ctx, func(tx *gorm.DB, _ *txhook.Hooks) error {
		removed, err := s.postLikeRepo.Delete(tx, memberID, postID)
		if err != nil {
			return err
		}
		if !removed {
			return models.NewAlreadyRemovedError("Not liked this post")
		}
		return s.postRepo.AdjustLikeCount(tx, postID, -1)
	})
	if err != nil {
		return err
	}

	cache.InvalidatePost(ctx, postID)
	return nil
}

// LikeComment adds a like to a comment.
func (s *LikeService) LikeComment(ctx context.Context, memberID, commentID uint) error {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return err
	}

	return s.runner.InTx(ctx, func(tx *gorm.DB, _ *txhook.Hooks) error {
		liked, err := s.commentLikeRepo.Exists(ctx, memberID, commentID)
		if err != nil {
			return err
		}
		if liked {
			return models.NewAlreadyExistsError("Already liked this comment")
		}
		if err := s.commentLikeRepo.Create(tx, &models.CommentLike{MemberID: memberID, CommentID: commentID}); err != nil {
			return err
		}
		return s.commentRepo.AdjustLikeCount(tx, commentID, +1)
	})
}

// UnlikeComment removes a like from a comment.
func (s *LikeService) UnlikeComment(ctx context.Context, memberID, commentID uint) error {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return err
	}

	return s.runner.InTx(ctx, func(tx *gorm.DB, _ *txhook.Hooks) error {
		removed, err := s.commentLikeRepo.Delete(tx, memberID, commentID)
		if err != nil {
			return err
		}
		if !removed {
			return models.NewAlreadyRemovedError("Not liked this comment")
		}
		return s.commentRepo.AdjustLikeCount(tx, commentID, -1)
	})
}

// LikeRecomment adds a like to a recomment.
func (s *LikeService) LikeRecomment(ctx context.Context, memberID, recommentID uint) error {
	if _, err := s.recommentRepo.GetByID(ctx, recommentID); err != nil {
		return err
	}

	return s.runner.InTx(ctx, func(tx *gorm.DB, _ *txhook.Hooks) error {
		liked, err := s.recommentLikeRepo.Exists(ctx, memberID, recommentID)
		if err != nil {
			return err
		}
		if liked {
			return models.NewAlreadyExistsError("Already liked this recomment")
		}
		if err := s.recommentLikeRepo.Create(tx, &models.RecommentLike{MemberID: memberID, RecommentID: recommentID}); err != nil {
			return err
		}
		return s.recommentRepo.AdjustLikeCount(tx, recommentID, +1)
	})
}

// UnlikeRecomment removes a like from a recomment.
func (s *LikeService) UnlikeRecomment(ctx context.Context, memberID, recommentID uint) error {
	if _, err := s.recommentRepo.GetByID(ctx, recommentID); err != nil {
		return err
	}

	return s.runner.InTx(ctx, func(tx *gorm.DB, _ *txhook.Hooks) error {
		removed, err := s.recommentLikeRepo.Delete(tx, memberID, recommentID)
		if err != nil {
			return err
		}
		if !removed {
			return models.NewAlreadyRemovedError("Not liked this recomment")
		}
		return s.recommentRepo.AdjustLikeCount(tx, recommentID, -1)
	})
}

// PostLikers lists members who liked a post, oldest member id first.
func (s *LikeService) PostLikers(ctx context.Context, postID uint, limit int, cursor *uint, viewerID uint) (pagination.Page[feed.UserInfo], error) {
	var empty pagination.Page[feed.UserInfo]
	if err := pagination.ValidateLimit(limit); err != nil {
		return empty, err
	}
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return empty, err
	}
	members, err := s.postLikeRepo.ListLikers(ctx, postID, limit, cursor)
	if err != nil {
		return empty, err
	}
	return s.assembleLikers(ctx, members, limit, viewerID)
}

// CommentLikers lists members who liked a comment.
func (s *LikeService) CommentLikers(ctx context.Context, commentID uint, limit int, cursor *uint, viewerID uint) (pagination.Page[feed.UserInfo], error) {
	var empty pagination.Page[feed.UserInfo]
	if err := pagination.ValidateLimit(limit); err != nil {
		return empty, err
	}
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return empty, err
	}
	members, err := s.commentLikeRepo.ListLikers(ctx, commentID, limit, cursor)
	if err != nil {
		return empty, err
	}
	return s.assembleLikers(ctx, members, limit, viewerID)
}

// RecommentLikers lists members who liked a recomment.
func (s *LikeService) RecommentLikers(ctx context.Context, recommentID uint, limit int, cursor *uint, viewerID uint) (pagination.Page[feed.UserInfo], error) {
	var empty pagination.Page[feed.UserInfo]
	if err := pagination.ValidateLimit(limit); err != nil {
		return empty, err
	}
	if _, err := s.recommentRepo.GetByID(ctx, recommentID); err != nil {
		return empty, err
	}
	members, err := s.recommentLikeRepo.ListLikers(ctx, recommentID, limit, cursor)
	if err != nil {
		return empty, err
	}
	return s.assembleLikers(ctx, members, limit, viewerID)
}

func (s *LikeService) assembleLikers(ctx context.Context, members []models.Member, limit int, viewerID uint) (pagination.Page[feed.UserInfo], error) {
	en, err := s.enricher.EnrichMembers(ctx, members, viewerID)
	if err != nil {
		return pagination.Page[feed.UserInfo]{}, err
	}
	infos := feed.AssembleMembers(members, en)
	return pagination.NewPage(infos, limit, func(u feed.UserInfo) uint { return u.ID }), nil
}
