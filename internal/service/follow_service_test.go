package service

import (
	"context"
	"testing"

	"snsapp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowService_Follow(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	alice := f.createMember(t, models.RoleOrdinary)
	bob := f.createMember(t, models.RoleOrdinary)

	require.NoError(t, f.follows.Follow(ctx, alice.ID, bob.ID))

	assert.Equal(t, 1, f.memberByID(t, alice.ID).FollowingCount)
	assert.Equal(t, 0, f.memberByID(t, alice.ID).FollowerCount)
	assert.Equal(t, 1, f.memberByID(t, bob.ID).FollowerCount)
	assert.Equal(t, 0, f.memberByID(t, bob.ID).FollowingCount)

	var count int64
	require.NoError(t, f.db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFollowService_Follow_Self(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	alice := f.createMember(t, models.RoleOrdinary)

	err := f.follows.Follow(ctx, alice.ID, alice.ID)
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeConflict))

	// Nothing moved.
	assert.Equal(t, 0, f.memberByID(t, alice.ID).FollowerCount)
	assert.Equal(t, 0, f.memberByID(t, alice.ID).FollowingCount)
}

func TestFollowService_Follow_Duplicate(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	alice := f.createMember(t, models.RoleOrdinary)
	bob := f.createMember(t, models.RoleOrdinary)

	require.NoError(t, f.follows.Follow(ctx, alice.ID, bob.ID))

	err := f.follows.Follow(ctx, alice.ID, bob.ID)
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeConflict))

	// The failed attempt must not move the counters.
	assert.Equal(t, 1, f.memberByID(t, alice.ID).FollowingCount)
	assert.Equal(t, 1, f.memberByID(t, bob.ID).FollowerCount)
}

func TestFollowService_Follow_MissingMember(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	alice := f.createMember(t, models.RoleOrdinary)

	err := f.follows.Follow(ctx, alice.ID, 9999)
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}

func TestFollowService_UnfollowRoundTrip(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	alice := f.createMember(t, models.RoleOrdinary)
	bob := f.createMember(t, models.RoleOrdinary)

	require.NoError(t, f.follows.Follow(ctx, alice.ID, bob.ID))
	require.NoError(t, f.follows.Unfollow(ctx, alice.ID, bob.ID))

	// Back to the starting state.
	assert.Equal(t, 0, f.memberByID(t, alice.ID).FollowingCount)
	assert.Equal(t, 0, f.memberByID(t, bob.ID).FollowerCount)

	// Unfollowing again reports the relationship as already gone.
	err := f.follows.Unfollow(ctx, alice.ID, bob.ID)
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeAlreadyRemoved))
	assert.Equal(t, 0, f.memberByID(t, alice.ID).FollowingCount)
	assert.Equal(t, 0, f.memberByID(t, bob.ID).FollowerCount)
}

func TestFollowService_Listings(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	target := f.createMember(t, models.RoleOrdinary)
	var followers []*models.Member
	for i := 0; i < 3; i++ {
		m := f.createMember(t, models.RoleOrdinary)
		require.NoError(t, f.follows.Follow(ctx, m.ID, target.ID))
		followers = append(followers, m)
	}

	t.Run("followers ascend by member id", func(t *testing.T) {
		page, err := f.follows.Followers(ctx, target.ID, 2, nil, 0)
		require.NoError(t, err)
		require.Len(t, page.Items, 2)
		assert.Equal(t, followers[0].ID, page.Items[0].ID)
		assert.Equal(t, followers[1].ID, page.Items[1].ID)
		require.True(t, page.HasNext)

		page, err = f.follows.Followers(ctx, target.ID, 2, page.NextCursor, 0)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, followers[2].ID, page.Items[0].ID)
		assert.False(t, page.HasNext)
	})

	t.Run("followings", func(t *testing.T) {
		page, err := f.follows.Followings(ctx, followers[0].ID, 10, nil, 0)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, target.ID, page.Items[0].ID)
	})

	t.Run("viewer sees followed flags", func(t *testing.T) {
		require.NoError(t, f.follows.Follow(ctx, followers[0].ID, followers[1].ID))
		page, err := f.follows.Followers(ctx, target.ID, 10, nil, followers[0].ID)
		require.NoError(t, err)
		for _, info := range page.Items {
			if info.ID == followers[1].ID {
				assert.True(t, info.IsFollowed)
			} else {
				assert.False(t, info.IsFollowed)
			}
		}
	})

	t.Run("invalid limit", func(t *testing.T) {
		_, err := f.follows.Followers(ctx, target.ID, 0, nil, 0)
		require.Error(t, err)
		assert.True(t, models.HasCode(err, models.CodeInvalidArgument))
	})

	t.Run("unknown member", func(t *testing.T) {
		_, err := f.follows.Followers(ctx, 9999, 10, nil, 0)
		require.Error(t, err)
		assert.True(t, models.HasCode(err, models.CodeNotFound))
	})
}
