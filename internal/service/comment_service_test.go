package service

import (
	"context"
	"strings"
	"testing"

	"snsapp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_CreateComment(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	author := f.createMember(t, models.RoleOrdinary)
	commenter := f.createMember(t, models.RoleOrdinary)
	post := f.createPost(t, author, models.BoardAll)

	detail, err := f.comments.CreateComment(ctx, CreateCommentInput{
		MemberID: commenter.ID,
		PostID:   post.ID,
		Content:  "first!",
	})
	require.NoError(t, err)
	assert.Equal(t, "first!", detail.Content)
	assert.True(t, detail.IsMine)

	// The comment count moves with the row.
	assert.Equal(t, 1, f.postByID(t, post.ID).CommentCount)

	// The post author is not the bot, so no reply is scheduled.
	expectNone(t, f.recommentCalls)
}

func TestCommentService_CreateComment_Validation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	author := f.createMember(t, models.RoleOrdinary)
	post := f.createPost(t, author, models.BoardAll)

	_, err := f.comments.CreateComment(ctx, CreateCommentInput{MemberID: author.ID, PostID: post.ID})
	assert.True(t, models.HasCode(err, models.CodeInvalidArgument))

	_, err = f.comments.CreateComment(ctx, CreateCommentInput{
		MemberID: author.ID,
		PostID:   post.ID,
		Content:  strings.Repeat("x", maxCommentLen+1),
	})
	assert.True(t, models.HasCode(err, models.CodeInvalidArgument))

	_, err = f.comments.CreateComment(ctx, CreateCommentInput{MemberID: author.ID, PostID: 9999, Content: "hi"})
	assert.True(t, models.HasCode(err, models.CodeNotFound))
	assert.Equal(t, 0, f.postByID(t, post.ID).CommentCount)
}

func TestCommentService_CreateComment_TriggersBotReply(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	bot := f.createMember(t, models.RoleBot)
	commenter := f.createMember(t, models.RoleOrdinary)
	botPost := f.createPost(t, bot, models.BoardAll)

	detail, err := f.comments.CreateComment(ctx, CreateCommentInput{
		MemberID: commenter.ID,
		PostID:   botPost.ID,
		Content:  "hey bot",
	})
	require.NoError(t, err)

	commentID := waitFor(t, f.recommentCalls)
	assert.Equal(t, detail.ID, commentID)
}

func TestCommentService_CreateComment_BotCommentDoesNotTrigger(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	bot := f.createMember(t, models.RoleBot)
	botPost := f.createPost(t, bot, models.BoardAll)

	// The bot replying on its own post must not schedule another reply.
	_, err := f.comments.CreateComment(ctx, CreateCommentInput{
		MemberID: bot.ID,
		PostID:   botPost.ID,
		Content:  "talking to myself",
	})
	require.NoError(t, err)

	expectNone(t, f.recommentCalls)
}

func TestCommentService_ListByPost(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	author := f.createMember(t, models.RoleOrdinary)
	post := f.createPost(t, author, models.BoardAll)

	var ids []uint
	for i := 0; i < 3; i++ {
		c := f.createComment(t, author, post)
		ids = append(ids, c.ID)
	}

	page, err := f.comments.ListByPost(ctx, post.ID, 2, nil, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, ids[2], page.Items[0].ID)
	assert.Equal(t, ids[1], page.Items[1].ID)
	require.True(t, page.HasNext)

	page, err = f.comments.ListByPost(ctx, post.ID, 2, page.NextCursor, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, ids[0], page.Items[0].ID)

	_, err = f.comments.ListByPost(ctx, 9999, 10, nil, 0)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}

func TestCommentService_DeleteComment(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	author := f.createMember(t, models.RoleOrdinary)
	stranger := f.createMember(t, models.RoleOrdinary)
	post := f.createPost(t, author, models.BoardAll)

	detail, err := f.comments.CreateComment(ctx, CreateCommentInput{
		MemberID: author.ID,
		PostID:   post.ID,
		Content:  "hello",
	})
	require.NoError(t, err)
	require.Equal(t, 1, f.postByID(t, post.ID).CommentCount)

	err = f.comments.DeleteComment(ctx, detail.ID, stranger.ID)
	assert.True(t, models.HasCode(err, models.CodeUnauthorized))

	require.NoError(t, f.comments.DeleteComment(ctx, detail.ID, author.ID))
	assert.Equal(t, 0, f.postByID(t, post.ID).CommentCount)
}
