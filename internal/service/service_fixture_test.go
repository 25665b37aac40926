package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"snsapp/internal/feed"
	"snsapp/internal/models"
	"snsapp/internal/repository"
	"snsapp/internal/testutil"
	"snsapp/internal/txhook"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fixture wires the full service stack against an in-memory database. The
// side-effect triggers record into channels so tests can observe what the
// dispatcher actually ran.
type fixture struct {
	db         *gorm.DB
	dispatcher *txhook.Dispatcher
	runner     *txhook.Runner

	memberRepo        repository.MemberRepository
	followRepo        repository.FollowRepository
	postRepo          repository.PostRepository
	commentRepo       repository.CommentRepository
	recommentRepo     repository.RecommentRepository
	postLikeRepo      repository.PostLikeRepository
	commentLikeRepo   repository.CommentLikeRepository
	recommentLikeRepo repository.RecommentLikeRepository

	posts      *PostService
	comments   *CommentService
	recomments *RecommentService
	likes      *LikeService
	follows    *FollowService

	summaryCalls   chan uint
	boardCalls     chan models.BoardType
	recommentCalls chan uint
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	dispatcher := txhook.NewDispatcher(2, 64)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = dispatcher.Shutdown(ctx)
	})

	f := &fixture{
		db:         db,
		dispatcher: dispatcher,
		runner:     txhook.NewRunner(db, dispatcher),

		memberRepo:        repository.NewMemberRepository(db),
		followRepo:        repository.NewFollowRepository(db),
		postRepo:          repository.NewPostRepository(db),
		commentRepo:       repository.NewCommentRepository(db),
		recommentRepo:     repository.NewRecommentRepository(db),
		postLikeRepo:      repository.NewPostLikeRepository(db),
		commentLikeRepo:   repository.NewCommentLikeRepository(db),
		recommentLikeRepo: repository.NewRecommentLikeRepository(db),

		summaryCalls:   make(chan uint, 8),
		boardCalls:     make(chan models.BoardType, 8),
		recommentCalls: make(chan uint, 8),
	}

	imageRepo := repository.NewPostImageRepository(db)
	enricher := feed.NewEnricher(f.memberRepo, f.followRepo, imageRepo)

	isAdmin := func(ctx context.Context, userID uint) (bool, error) {
		var m models.Member
		if err := db.WithContext(ctx).Select("role").First(&m, userID).Error; err != nil {
			return false, err
		}
		return m.Role == models.RoleAdmin, nil
	}

	f.posts = NewPostService(
		f.runner, f.postRepo, imageRepo, f.memberRepo, f.postLikeRepo, enricher, isAdmin,
		func(_ context.Context, postID uint) { f.summaryCalls <- postID },
		func(_ context.Context, board models.BoardType) { f.boardCalls <- board },
	)
	f.comments = NewCommentService(
		f.runner, f.commentRepo, f.postRepo, f.memberRepo, f.commentLikeRepo, enricher, isAdmin,
		func(_ context.Context, commentID uint) { f.recommentCalls <- commentID },
	)
	f.recomments = NewRecommentService(
		f.runner, f.recommentRepo, f.commentRepo, f.memberRepo, f.recommentLikeRepo, enricher, isAdmin,
	)
	f.likes = NewLikeService(
		f.runner, f.postRepo, f.commentRepo, f.recommentRepo,
		f.postLikeRepo, f.commentLikeRepo, f.recommentLikeRepo, enricher,
	)
	f.follows = NewFollowService(f.runner, f.memberRepo, f.followRepo, enricher)

	return f
}

var memberSeq atomic.Int64

func (f *fixture) createMember(t *testing.T, role models.Role) *models.Member {
	t.Helper()
	n := memberSeq.Add(1)
	m := &models.Member{
		Email:    fmt.Sprintf("member%d@example.com", n),
		Nickname: fmt.Sprintf("member%d", n),
		Password: "x",
		Role:     role,
	}
	require.NoError(t, f.db.Create(m).Error)
	return m
}

func (f *fixture) createPost(t *testing.T, author *models.Member, board models.BoardType) *models.Post {
	t.Helper()
	p := &models.Post{MemberID: author.ID, BoardType: board, Content: "seeded post"}
	require.NoError(t, f.db.Create(p).Error)
	return p
}

func (f *fixture) createComment(t *testing.T, author *models.Member, post *models.Post) *models.Comment {
	t.Helper()
	c := &models.Comment{PostID: post.ID, MemberID: author.ID, Content: "seeded comment"}
	require.NoError(t, f.db.Create(c).Error)
	return c
}

func (f *fixture) memberByID(t *testing.T, id uint) *models.Member {
	t.Helper()
	var m models.Member
	require.NoError(t, f.db.First(&m, id).Error)
	return &m
}

func (f *fixture) postByID(t *testing.T, id uint) *models.Post {
	t.Helper()
	var p models.Post
	require.NoError(t, f.db.First(&p, id).Error)
	return &p
}

// waitFor receives from ch or fails the test after a timeout.
func waitFor[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for side effect")
		panic("unreachable")
	}
}

// expectNone asserts no value arrives on ch within a short window.
func expectNone[T any](t *testing.T, ch <-chan T) {
	t.Helper()
	select {
	case v := <-ch:
		t.Fatalf("unexpected side effect: %v", v)
	case <-time.After(150 * time.Millisecond):
	}
}
