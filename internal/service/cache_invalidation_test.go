package service

import (
	"context"
	"testing"

	"snsapp/internal/cache"
	"snsapp/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// withCache points the global cache client at a fresh miniredis. Tests using
// it must not run in parallel.
func withCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })
	return mr
}

func TestLikePost_InvalidatesCachedDetailAfterCommit(t *testing.T) {
	mr := withCache(t)
	f := newFixture(t)
	ctx := context.Background()

	author := f.createMember(t, models.RoleOrdinary)
	viewer := f.createMember(t, models.RoleOrdinary)
	post := f.createPost(t, author, models.BoardFree)

	// An anonymous read populates the detail cache.
	detail, err := f.posts.GetPost(ctx, post.ID, 0)
	require.NoError(t, err)
	require.Equal(t, 0, detail.LikeCount)
	require.True(t, mr.Exists(cache.PostKey(post.ID)))

	require.NoError(t, f.likes.LikePost(ctx, viewer.ID, post.ID))

	// The commit must have dropped the stale entry, and the next anonymous
	// read must see the new count rather than the cached zero.
	require.False(t, mr.Exists(cache.PostKey(post.ID)))

	detail, err = f.posts.GetPost(ctx, post.ID, 0)
	require.NoError(t, err)
	require.Equal(t, 1, detail.LikeCount)
}

func TestDeleteComment_InvalidatesCachedPostDetail(t *testing.T) {
	mr := withCache(t)
	f := newFixture(t)
	ctx := context.Background()

	author := f.createMember(t, models.RoleOrdinary)
	post := f.createPost(t, author, models.BoardFree)
	comment := f.createComment(t, author, post)
	require.NoError(t, f.db.Model(post).UpdateColumn("comment_count", 1).Error)

	detail, err := f.posts.GetPost(ctx, post.ID, 0)
	require.NoError(t, err)
	require.Equal(t, 1, detail.CommentCount)

	require.NoError(t, f.comments.DeleteComment(ctx, comment.ID, author.ID))
	require.False(t, mr.Exists(cache.PostKey(post.ID)))

	detail, err = f.posts.GetPost(ctx, post.ID, 0)
	require.NoError(t, err)
	require.Equal(t, 0, detail.CommentCount)
}

func TestFollow_InvalidatesCachedMembersAfterCommit(t *testing.T) {
	mr := withCache(t)
	f := newFixture(t)
	ctx := context.Background()

	follower := f.createMember(t, models.RoleOrdinary)
	target := f.createMember(t, models.RoleOrdinary)

	// Reads through the repository populate the member cache.
	cached, err := f.memberRepo.GetByID(ctx, target.ID)
	require.NoError(t, err)
	require.Equal(t, 0, cached.FollowerCount)
	require.True(t, mr.Exists(cache.MemberKey(target.ID)))

	require.NoError(t, f.follows.Follow(ctx, follower.ID, target.ID))

	require.False(t, mr.Exists(cache.MemberKey(target.ID)))
	require.False(t, mr.Exists(cache.MemberKey(follower.ID)))

	cached, err = f.memberRepo.GetByID(ctx, target.ID)
	require.NoError(t, err)
	require.Equal(t, 1, cached.FollowerCount)
}
