package service

import (
	"context"
	"fmt"

	"snsapp/internal/cache"
	"snsapp/internal/feed"
	"snsapp/internal/models"
	"snsapp/internal/pagination"
	"snsapp/internal/repository"
	"snsapp/internal/txhook"

	"gorm.io/gorm"
)

const maxCommentLen = 500

// RecommentTrigger runs the post-commit bot reply check for a comment.
type RecommentTrigger func(ctx context.Context, commentID uint)

// CommentService provides comment business logic.
type CommentService struct {
	runner          *txhook.Runner
	commentRepo     repository.CommentRepository
	postRepo        repository.PostRepository
	memberRepo      repository.MemberRepository
	commentLikeRepo repository.CommentLikeRepository
	enricher        *feed.Enricher
	isAdmin         func(ctx context.Context, userID uint) (bool, error)

	recommentTrigger RecommentTrigger
}

// CreateCommentInput carries a comment creation request.
type CreateCommentInput struct {
	MemberID uint
	PostID   uint
	Content  string
}

// NewCommentService returns a new CommentService.
func NewCommentService(
	runner *txhook.Runner,
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	memberRepo repository.MemberRepository,
	commentLikeRepo repository.CommentLikeRepository,
	enricher *feed.Enricher,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
	recommentTrigger RecommentTrigger,
) *CommentService {
	return &CommentService{
		runner:           runner,
		commentRepo:      commentRepo,
		postRepo:         postRepo,
		memberRepo:       memberRepo,
		commentLikeRepo:  commentLikeRepo,
		enricher:         enricher,
		isAdmin:          isAdmin,
		recommentTrigger: recommentTrigger,
	}
}

// CreateComment creates a comment and bumps the post's comment count in the
// same transaction. When the post was written by the bot persona and the
// commenter is not the bot itself, a bot reply is scheduled post-commit.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*feed.CommentDetail, error) {
	if in.Content == "" {
		return nil, models.NewInvalidArgumentError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewInvalidArgumentError(fmt.Sprintf("Comment too long (max %d characters)", maxCommentLen))
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	author, err := s.memberRepo.GetByID(ctx, in.MemberID)
	if err != nil {
		return nil, err
	}
	postAuthor, err := s.memberRepo.GetByID(ctx, post.MemberID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   in.PostID,
		MemberID: in.MemberID,
		Content:  in.Content,
	}

	err = s.runner.InTx(ctx, func(tx *gorm.DB, hooks *txhook.Hooks) error {
		if err := s.commentRepo.Create(tx, comment); err != nil {
			return err
		}
		if err := s.postRepo.AdjustCommentCount(tx, in.PostID, 1); err != nil {
			return err
		}

		if postAuthor.IsBot() && !author.IsBot() && s.recommentTrigger != nil {
			commentID := comment.ID
			hooks.OnCommit("bot_recomment", func(ctx context.Context) {
				s.recommentTrigger(ctx, commentID)
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The post's cached anonymous detail holds a stale comment count now;
	// drop it only after the commit is visible.
	cache.InvalidatePost(ctx, in.PostID)

	return s.assembleDetail(ctx, comment, in.MemberID)
}

// ListByPost pages a post's comments newest-first.
func (s *CommentService) ListByPost(ctx context.Context, postID uint, limit int, cursor *uint, viewerID uint) (pagination.Page[feed.CommentDetail], error) {
	var empty pagination.Page[feed.CommentDetail]
	if err := pagination.ValidateLimit(limit); err != nil {
		return empty, err
	}
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return empty, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID, limit, cursor)
	if err != nil {
		return empty, err
	}

	en, err := s.enricher.Enrich(ctx, feed.CommentItems(comments), viewerID, feed.Options{
		LikedIDs: s.commentLikeRepo.LikedCommentIDs,
	})
	if err != nil {
		return empty, err
	}
	details := feed.AssembleComments(comments, en)
	return pagination.NewPage(details, limit, func(d feed.CommentDetail) uint { return d.ID }), nil
}

// DeleteComment soft-deletes a comment and decrements the post's comment
// count in the same transaction. Only the author or an admin may delete.
func (s *CommentService) DeleteComment(ctx context.Context, commentID, memberID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.MemberID != memberID {
		if s.isAdmin == nil {
			return models.NewUnauthorizedError("You can only delete your own comments")
		}
		admin, err := s.isAdmin(ctx, memberID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewUnauthorizedError("You can only delete your own comments")
		}
	}

	err = s.runner.InTx(ctx, func(tx *gorm.DB, _ *txhook.Hooks) error {
		if err := s.commentRepo.Delete(tx, commentID); err != nil {
			return err
		}
		return s.postRepo.AdjustCommentCount(tx, comment.PostID, -1)
	})
	if err != nil {
		return err
	}

	cache.InvalidatePost(ctx, comment.PostID)
	return nil
}

func (s *CommentService) assembleDetail(ctx context.Context, comment *models.Comment, viewerID uint) (*feed.CommentDetail, error) {
	page := []*models.Comment{comment}
	en, err := s.enricher.Enrich(ctx, feed.CommentItems(page), viewerID, feed.Options{
		LikedIDs: s.commentLikeRepo.LikedCommentIDs,
	})
	if err != nil {
		return nil, err
	}
	details := feed.AssembleComments(page, en)
	return &details[0], nil
}
