package service

import (
	"context"
	"fmt"
	"strconv"

	"snsapp/internal/aiclient"
	"snsapp/internal/models"
	"snsapp/internal/observability"
	"snsapp/internal/repository"
)

// BotService drives the bot persona: replies to comments on bot posts and
// cadence-triggered board posts. Its methods run post-commit in side-effect
// workers, so failures are logged and swallowed, never surfaced to the
// request that scheduled them.
type BotService struct {
	memberRepo    repository.MemberRepository
	postRepo      repository.PostRepository
	commentRepo   repository.CommentRepository
	recommentRepo repository.RecommentRepository
	botEventRepo  repository.BotEventRepository
	ai            *aiclient.Client
	recomments    *RecommentService
	posts         *PostService
	cadence       int
}

// NewBotService returns a new BotService. cadence is the number of member
// posts on a board between bot posts.
func NewBotService(
	memberRepo repository.MemberRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	recommentRepo repository.RecommentRepository,
	botEventRepo repository.BotEventRepository,
	ai *aiclient.Client,
	recomments *RecommentService,
	posts *PostService,
	cadence int,
) *BotService {
	return &BotService{
		memberRepo:    memberRepo,
		postRepo:      postRepo,
		commentRepo:   commentRepo,
		recommentRepo: recommentRepo,
		botEventRepo:  botEventRepo,
		ai:            ai,
		recomments:    recomments,
		posts:         posts,
		cadence:       cadence,
	}
}

// MaybeReplyToComment generates a bot reply to a comment on a bot-authored
// post. The claim row guarantees at most one reply per comment even when the
// trigger is dispatched twice.
func (s *BotService) MaybeReplyToComment(ctx context.Context, commentID uint) {
	log := observability.With(ctx)

	claimed, err := s.botEventRepo.Claim(ctx, &models.BotEvent{
		EventType: models.BotEventRecomment,
		ClaimKey:  strconv.FormatUint(uint64(commentID), 10),
	})
	if err != nil {
		log.Error("bot reply claim failed", "comment_id", commentID, "error", err)
		return
	}
	if !claimed {
		log.Debug("bot reply already claimed", "comment_id", commentID)
		return
	}

	bot, err := s.memberRepo.FirstByRole(ctx, models.RoleBot)
	if err != nil {
		log.Error("bot member lookup failed", "error", err)
		return
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		// The comment may have been deleted between commit and dispatch.
		log.Warn("bot reply target gone", "comment_id", commentID, "error", err)
		return
	}
	post, err := s.postRepo.GetByID(ctx, comment.PostID)
	if err != nil {
		log.Warn("bot reply post gone", "post_id", comment.PostID, "error", err)
		return
	}
	commenter, err := s.memberRepo.GetByID(ctx, comment.MemberID)
	if err != nil {
		log.Error("bot reply commenter lookup failed", "member_id", comment.MemberID, "error", err)
		return
	}
	thread, err := s.recommentRepo.AllByComment(ctx, commentID)
	if err != nil {
		log.Error("bot reply thread lookup failed", "comment_id", commentID, "error", err)
		return
	}

	req := aiclient.RecommentRequest{
		Post: aiclient.PostContext{
			ID:        post.ID,
			Content:   post.Content,
			CreatedAt: post.CreatedAt,
		},
		Author: aiclient.AuthorContext{
			ID:       commenter.ID,
			Nickname: commenter.Nickname,
		},
		Comment: aiclient.CommentContext{
			ID:        comment.ID,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
		},
		Recomments: make([]aiclient.RecommentContext, 0, len(thread)),
	}
	for _, rc := range thread {
		req.Recomments = append(req.Recomments, aiclient.RecommentContext{
			ID:        rc.ID,
			Content:   rc.Content,
			CreatedAt: rc.CreatedAt,
		})
	}

	content, err := s.ai.GenerateRecomment(ctx, req)
	if err != nil {
		log.Error("bot reply generation failed", "comment_id", commentID, "error", err)
		return
	}

	if _, err := s.recomments.CreateRecomment(ctx, CreateRecommentInput{
		MemberID:  bot.ID,
		CommentID: commentID,
		Content:   content,
	}); err != nil {
		log.Error("bot reply create failed", "comment_id", commentID, "error", err)
		return
	}
	log.Info("bot reply created", "comment_id", commentID)
}

// MaybeCreateBoardPost posts as the bot when the board has accumulated a
// full cadence of member posts. The count itself is the claim key, so two
// workers observing the same count produce one post.
func (s *BotService) MaybeCreateBoardPost(ctx context.Context, board models.BoardType) {
	log := observability.With(ctx)

	bot, err := s.memberRepo.FirstByRole(ctx, models.RoleBot)
	if err != nil {
		log.Error("bot member lookup failed", "error", err)
		return
	}

	count, err := s.postRepo.CountNonBot(ctx, board, bot.ID)
	if err != nil {
		log.Error("bot cadence count failed", "board", board, "error", err)
		return
	}
	if count == 0 || count%int64(s.cadence) != 0 {
		return
	}

	claimed, err := s.botEventRepo.Claim(ctx, &models.BotEvent{
		EventType: models.BotEventBoardPost,
		ClaimKey:  fmt.Sprintf("%s:%d", board, count),
	})
	if err != nil {
		log.Error("bot post claim failed", "board", board, "error", err)
		return
	}
	if !claimed {
		log.Debug("bot post already claimed", "board", board, "count", count)
		return
	}

	recent, err := s.postRepo.RecentNonBot(ctx, board, s.cadence, bot.ID)
	if err != nil {
		log.Error("bot post context lookup failed", "board", board, "error", err)
		return
	}

	req := aiclient.BoardPostRequest{
		BoardType: string(board),
		Posts:     make([]aiclient.PostContext, 0, len(recent)),
	}
	for _, p := range recent {
		req.Posts = append(req.Posts, aiclient.PostContext{
			ID:        p.ID,
			Content:   p.Content,
			CreatedAt: p.CreatedAt,
		})
	}

	content, err := s.ai.GenerateBoardPost(ctx, req)
	if err != nil {
		log.Error("bot post generation failed", "board", board, "error", err)
		return
	}

	if _, err := s.posts.CreatePost(ctx, CreatePostInput{
		MemberID:  bot.ID,
		BoardType: string(board),
		Content:   content,
	}); err != nil {
		log.Error("bot post create failed", "board", board, "error", err)
		return
	}
	log.Info("bot post created", "board", board, "count", count)
}
