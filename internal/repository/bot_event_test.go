package repository

import (
	"context"
	"testing"

	"snsapp/internal/models"
	"snsapp/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBotEventRepository_Claim(t *testing.T) {
	t.Parallel()
	repo := NewBotEventRepository(testutil.NewDB(t))
	ctx := context.Background()

	claimed, err := repo.Claim(ctx, &models.BotEvent{
		EventType: models.BotEventRecomment,
		ClaimKey:  "42",
	})
	require.NoError(t, err)
	assert.True(t, claimed)

	// The same (event type, claim key) pair loses the second time.
	claimed, err = repo.Claim(ctx, &models.BotEvent{
		EventType: models.BotEventRecomment,
		ClaimKey:  "42",
	})
	require.NoError(t, err)
	assert.False(t, claimed)

	// A different claim key is an independent event.
	claimed, err = repo.Claim(ctx, &models.BotEvent{
		EventType: models.BotEventRecomment,
		ClaimKey:  "43",
	})
	require.NoError(t, err)
	assert.True(t, claimed)

	// As is the same key under a different event type.
	claimed, err = repo.Claim(ctx, &models.BotEvent{
		EventType: models.BotEventBoardPost,
		ClaimKey:  "42",
	})
	require.NoError(t, err)
	assert.True(t, claimed)
}
