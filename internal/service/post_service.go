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

const maxPostLen = 2000

// SummaryTrigger runs the post-commit YouTube summarization side effect.
type SummaryTrigger func(ctx context.Context, postID uint)

// BoardPostTrigger runs the post-commit bot post cadence check for a board.
type BoardPostTrigger func(ctx context.Context, board models.BoardType)

// PostService provides post business logic.
type PostService struct {
	runner       *txhook.Runner
	postRepo     repository.PostRepository
	imageRepo    repository.PostImageRepository
	memberRepo   repository.MemberRepository
	postLikeRepo repository.PostLikeRepository
	enricher     *feed.Enricher
	isAdmin      func(ctx context.Context, userID uint) (bool, error)

	// Side-effect triggers are late-bound closures so the services that
	// implement them can themselves depend on PostService.
	summaryTrigger   SummaryTrigger
	boardPostTrigger BoardPostTrigger
}

// CreatePostInput carries a post creation request.
type CreatePostInput struct {
	MemberID   uint
	BoardType  string
	Content    string
	ImageURL   string
	YoutubeURL string
}

// NewPostService returns a new PostService.
func NewPostService(
	runner *txhook.Runner,
	postRepo repository.PostRepository,
	imageRepo repository.PostImageRepository,
	memberRepo repository.MemberRepository,
	postLikeRepo repository.PostLikeRepository,
	enricher *feed.Enricher,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
	summaryTrigger SummaryTrigger,
	boardPostTrigger BoardPostTrigger,
) *PostService {
	return &PostService{
		runner:           runner,
		postRepo:         postRepo,
		imageRepo:        imageRepo,
		memberRepo:       memberRepo,
		postLikeRepo:     postLikeRepo,
		enricher:         enricher,
		isAdmin:          isAdmin,
		summaryTrigger:   summaryTrigger,
		boardPostTrigger: boardPostTrigger,
	}
}

// CreatePost creates a post and schedules its post-commit side effects: the
// YouTube summary when a video is linked, and the bot post cadence check.
// Neither runs if the transaction rolls back.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*feed.PostDetail, error) {
	if !models.ValidBoardType(in.BoardType) {
		return nil, models.NewInvalidArgumentError(fmt.Sprintf("unknown board type %q", in.BoardType))
	}
	if in.Content == "" {
		return nil, models.NewInvalidArgumentError("Content is required")
	}
	if len(in.Content) > maxPostLen {
		return nil, models.NewInvalidArgumentError(fmt.Sprintf("Post too long (max %d characters)", maxPostLen))
	}
	if _, err := s.memberRepo.GetByID(ctx, in.MemberID); err != nil {
		return nil, err
	}

	post := &models.Post{
		MemberID:   in.MemberID,
		BoardType:  models.BoardType(in.BoardType),
		Content:    in.Content,
		YoutubeURL: in.YoutubeURL,
	}

	err := s.runner.InTx(ctx, func(tx *gorm.DB, hooks *txhook.Hooks) error {
		if err := s.postRepo.Create(tx, post); err != nil {
			return err
		}
		if in.ImageURL != "" {
			img := &models.PostImage{PostID: post.ID, SortIndex: 0, ImgURL: in.ImageURL}
			if err := s.imageRepo.Create(tx, img); err != nil {
				return err
			}
		}

		postID := post.ID
		board := post.BoardType
		if in.YoutubeURL != "" && s.summaryTrigger != nil {
			hooks.OnCommit("youtube_summary", func(ctx context.Context) {
				s.summaryTrigger(ctx, postID)
			})
		}
		if s.boardPostTrigger != nil {
			hooks.OnCommit("bot_board_post", func(ctx context.Context) {
				s.boardPostTrigger(ctx, board)
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.assembleDetail(ctx, post, in.MemberID)
}

// GetPost returns the enriched detail for one post. The anonymous view has no
// viewer-relative state and is served cache-aside.
func (s *PostService) GetPost(ctx context.Context, postID, viewerID uint) (*feed.PostDetail, error) {
	if viewerID == 0 {
		var detail feed.PostDetail
		err := cache.Aside(ctx, cache.PostKey(postID), &detail, cache.PostTTL, func() error {
			post, err := s.postRepo.GetByID(ctx, postID)
			if err != nil {
				return err
			}
			assembled, err := s.assembleDetail(ctx, post, 0)
			if err != nil {
				return err
			}
			detail = *assembled
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &detail, nil
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.assembleDetail(ctx, post, viewerID)
}

// ListBoard pages a board feed newest-first.
func (s *PostService) ListBoard(ctx context.Context, boardType string, limit int, cursor *uint, viewerID uint) (pagination.Page[feed.PostDetail], error) {
	var empty pagination.Page[feed.PostDetail]
	if !models.ValidBoardType(boardType) {
		return empty, models.NewInvalidArgumentError(fmt.Sprintf("unknown board type %q", boardType))
	}
	if err := pagination.ValidateLimit(limit); err != nil {
		return empty, err
	}

	posts, err := s.postRepo.ListByBoard(ctx, models.BoardType(boardType), limit, cursor)
	if err != nil {
		return empty, err
	}
	return s.assemblePage(ctx, posts, limit, viewerID)
}

// ListByMember pages one member's posts newest-first.
func (s *PostService) ListByMember(ctx context.Context, memberID uint, limit int, cursor *uint, viewerID uint) (pagination.Page[feed.PostDetail], error) {
	var empty pagination.Page[feed.PostDetail]
	if err := pagination.ValidateLimit(limit); err != nil {
		return empty, err
	}
	exists, err := s.memberRepo.Exists(ctx, memberID)
	if err != nil {
		return empty, err
	}
	if !exists {
		return empty, models.NewNotFoundError("Member", memberID)
	}

	posts, err := s.postRepo.ListByMember(ctx, memberID, limit, cursor)
	if err != nil {
		return empty, err
	}
	return s.assemblePage(ctx, posts, limit, viewerID)
}

// DeletePost soft-deletes a post. Only the author or an admin may delete.
func (s *PostService) DeletePost(ctx context.Context, postID, memberID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.MemberID != memberID {
		if s.isAdmin == nil {
			return models.NewUnauthorizedError("You can only delete your own posts")
		}
		admin, err := s.isAdmin(ctx, memberID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewUnauthorizedError("You can only delete your own posts")
		}
	}

	err = s.runner.InTx(ctx, func(tx *gorm.DB, _ *txhook.Hooks) error {
		return s.postRepo.Delete(tx, postID)
	})
	if err != nil {
		return err
	}

	// Dropped post-commit so a concurrent anonymous read cannot re-cache
	// the not-yet-deleted detail.
	cache.InvalidatePost(ctx, postID)
	return nil
}

func (s *PostService) assemblePage(ctx context.Context, posts []*models.Post, limit int, viewerID uint) (pagination.Page[feed.PostDetail], error) {
	en, err := s.enricher.Enrich(ctx, feed.PostItems(posts), viewerID, feed.Options{
		LikedIDs:   s.postLikeRepo.LikedPostIDs,
		WithImages: true,
	})
	if err != nil {
		return pagination.Page[feed.PostDetail]{}, err
	}
	details := feed.AssemblePosts(posts, en)
	return pagination.NewPage(details, limit, func(d feed.PostDetail) uint { return d.ID }), nil
}

func (s *PostService) assembleDetail(ctx context.Context, post *models.Post, viewerID uint) (*feed.PostDetail, error) {
	page := []*models.Post{post}
	en, err := s.enricher.Enrich(ctx, feed.PostItems(page), viewerID, feed.Options{
		LikedIDs:   s.postLikeRepo.LikedPostIDs,
		WithImages: true,
	})
	if err != nil {
		return nil, err
	}
	details := feed.AssemblePosts(page, en)
	return &details[0], nil
}
