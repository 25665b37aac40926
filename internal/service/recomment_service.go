package service

import (
	"context"
	"fmt"

	"snsapp/internal/feed"
	"snsapp/internal/models"
	"snsapp/internal/pagination"
	"snsapp/internal/repository"
	"snsapp/internal/txhook"

	"gorm.io/gorm"
)

// RecommentService provides recomment (reply-to-comment) business logic.
type RecommentService struct {
	runner            *txhook.Runner
	recommentRepo     repository.RecommentRepository
	commentRepo       repository.CommentRepository
	memberRepo        repository.MemberRepository
	recommentLikeRepo repository.RecommentLikeRepository
	enricher          *feed.Enricher
	isAdmin           func(ctx context.Context, userID uint) (bool, error)
}

// CreateRecommentInput carries a recomment creation request.
type CreateRecommentInput struct {
	MemberID  uint
	CommentID uint
	Content   string
}

// NewRecommentService returns a new RecommentService.
func NewRecommentService(
	runner *txhook.Runner,
	recommentRepo repository.RecommentRepository,
	commentRepo repository.CommentRepository,
	memberRepo repository.MemberRepository,
	recommentLikeRepo repository.RecommentLikeRepository,
	enricher *feed.Enricher,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *RecommentService {
	return &RecommentService{
		runner:            runner,
		recommentRepo:     recommentRepo,
		commentRepo:       commentRepo,
		memberRepo:        memberRepo,
		recommentLikeRepo: recommentLikeRepo,
		enricher:          enricher,
		isAdmin:           isAdmin,
	}
}

// CreateRecomment creates a reply and bumps the comment's recomment count in
// the same transaction.
func (s *RecommentService) CreateRecomment(ctx context.Context, in CreateRecommentInput) (*feed.RecommentDetail, error) {
	if in.Content == "" {
		return nil, models.NewInvalidArgumentError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewInvalidArgumentError(fmt.Sprintf("Reply too long (max %d characters)", maxCommentLen))
	}

	if _, err := s.commentRepo.GetByID(ctx, in.CommentID); err != nil {
		return nil, err
	}
	if _, err := s.memberRepo.GetByID(ctx, in.MemberID); err != nil {
		return nil, err
	}

	recomment := &models.Recomment{
		CommentID: in.CommentID,
		MemberID:  in.MemberID,
		Content:   in.Content,
	}

	err := s.runner.InTx(ctx, func(tx *gorm.DB, _ *txhook.Hooks) error {
		if err := s.recommentRepo.Create(tx, recomment); err != nil {
			return err
		}
		return s.commentRepo.AdjustRecommentCount(tx, in.CommentID, 1)
	})
	if err != nil {
		return nil, err
	}

	return s.assembleDetail(ctx, recomment, in.MemberID)
}

// ListByComment pages a comment's replies newest-first.
func (s *RecommentService) ListByComment(ctx context.Context, commentID uint, limit int, cursor *uint, viewerID uint) (pagination.Page[feed.RecommentDetail], error) {
	var empty pagination.Page[feed.RecommentDetail]
	if err := pagination.ValidateLimit(limit); err != nil {
		return empty, err
	}
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return empty, err
	}

	recomments, err := s.recommentRepo.ListByComment(ctx, commentID, limit, cursor)
	if err != nil {
		return empty, err
	}

	en, err := s.enricher.Enrich(ctx, feed.RecommentItems(recomments), viewerID, feed.Options{
		LikedIDs: s.recommentLikeRepo.LikedRecommentIDs,
	})
	if err != nil {
		return empty, err
	}
	details := feed.AssembleRecomments(recomments, en)
	return pagination.NewPage(details, limit, func(d feed.RecommentDetail) uint { return d.ID }), nil
}

// DeleteRecomment soft-deletes a reply and decrements the comment's recomment
// count in the same transaction. Only the author or an admin may delete.
func (s *RecommentService) DeleteRecomment(ctx context.Context, recommentID, memberID uint) error {
	recomment, err := s.recommentRepo.GetByID(ctx, recommentID)
	if err != nil {
		return err
	}

	if recomment.MemberID != memberID {
		if s.isAdmin == nil {
			return models.NewUnauthorizedError("You can only delete your own replies")
		}
		admin, err := s.isAdmin(ctx, memberID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewUnauthorizedError("You can only delete your own replies")
		}
	}

	return s.runner.InTx(ctx, func(tx *gorm.DB, _ *txhook.Hooks) error {
		if err := s.recommentRepo.Delete(tx, recommentID); err != nil {
			return err
		}
		return s.commentRepo.AdjustRecommentCount(tx, recomment.CommentID, -1)
	})
}

func (s *RecommentService) assembleDetail(ctx context.Context, recomment *models.Recomment, viewerID uint) (*feed.RecommentDetail, error) {
	page := []*models.Recomment{recomment}
	en, err := s.enricher.Enrich(ctx, feed.RecommentItems(page), viewerID, feed.Options{
		LikedIDs: s.recommentLikeRepo.LikedRecommentIDs,
	})
	if err != nil {
		return nil, err
	}
	details := feed.AssembleRecomments(page, en)
	return &details[0], nil
}
