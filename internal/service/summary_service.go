package service

import (
	"context"

	"snsapp/internal/aiclient"
	"snsapp/internal/cache"
	"snsapp/internal/observability"
	"snsapp/internal/repository"
)

// SummaryService fills in YouTube summaries for posts that link a video.
// Like the bot triggers it runs post-commit, so failures leave the post
// without a summary instead of failing the request.
type SummaryService struct {
	postRepo repository.PostRepository
	ai       *aiclient.Client
}

// NewSummaryService returns a new SummaryService.
func NewSummaryService(postRepo repository.PostRepository, ai *aiclient.Client) *SummaryService {
	return &SummaryService{postRepo: postRepo, ai: ai}
}

// ProcessYoutubeSummary summarizes the post's linked video and stores the
// result on the post row.
func (s *SummaryService) ProcessYoutubeSummary(ctx context.Context, postID uint) {
	log := observability.With(ctx)

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		log.Warn("summary target gone", "post_id", postID, "error", err)
		return
	}
	if post.YoutubeURL == "" || post.YoutubeSummary != "" {
		return
	}

	summary, err := s.ai.SummarizeYoutube(ctx, aiclient.SummaryRequest{
		PostID:     post.ID,
		YoutubeURL: post.YoutubeURL,
	})
	if err != nil {
		log.Error("youtube summary failed", "post_id", postID, "error", err)
		return
	}

	if err := s.postRepo.UpdateYoutubeSummary(ctx, postID, summary); err != nil {
		log.Error("youtube summary store failed", "post_id", postID, "error", err)
		return
	}
	cache.InvalidatePost(ctx, postID)
	log.Info("youtube summary stored", "post_id", postID)
}
