package pagination

import (
	"testing"

	"snsapp/internal/models"
	"snsapp/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLimit(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateLimit(1))
	assert.NoError(t, ValidateLimit(100))

	for _, limit := range []int{0, -1, -50} {
		err := ValidateLimit(limit)
		require.Error(t, err)
		assert.True(t, models.HasCode(err, models.CodeInvalidArgument))
	}
}

func TestNewPage(t *testing.T) {
	t.Parallel()

	id := func(v uint) uint { return v }

	t.Run("full page sets next cursor to last id", func(t *testing.T) {
		t.Parallel()
		page := NewPage([]uint{10, 9}, 2, id)
		assert.True(t, page.HasNext)
		require.NotNil(t, page.NextCursor)
		assert.Equal(t, uint(9), *page.NextCursor)
	})

	t.Run("short page is the last page", func(t *testing.T) {
		t.Parallel()
		page := NewPage([]uint{8}, 2, id)
		assert.False(t, page.HasNext)
		assert.Nil(t, page.NextCursor)
	})

	t.Run("empty page serializes as empty array", func(t *testing.T) {
		t.Parallel()
		page := NewPage(nil, 2, id)
		assert.NotNil(t, page.Items)
		assert.Len(t, page.Items, 0)
		assert.False(t, page.HasNext)
	})
}

func TestScope_Descending(t *testing.T) {
	t.Parallel()
	db := testutil.NewDB(t)

	for i := 1; i <= 3; i++ {
		require.NoError(t, db.Create(&models.Post{
			MemberID:  1,
			BoardType: models.BoardAll,
			Content:   "post",
		}).Error)
	}

	fetch := func(cursor *uint, limit int) []uint {
		var posts []models.Post
		require.NoError(t, db.Scopes(Scope(cursor, Descending)).Limit(limit).Find(&posts).Error)
		ids := make([]uint, len(posts))
		for i, p := range posts {
			ids[i] = p.ID
		}
		return ids
	}

	// First page: newest first.
	ids := fetch(nil, 2)
	require.Equal(t, []uint{3, 2}, ids)

	// Resuming below the last id of the previous page.
	cursor := ids[len(ids)-1]
	ids = fetch(&cursor, 2)
	require.Equal(t, []uint{1}, ids)

	// A row inserted above the cursor does not disturb the page in flight.
	require.NoError(t, db.Create(&models.Post{MemberID: 1, BoardType: models.BoardAll, Content: "new"}).Error)
	ids = fetch(&cursor, 2)
	require.Equal(t, []uint{1}, ids)

	// A deleted cursor row still resumes correctly.
	two := uint(2)
	require.NoError(t, db.Delete(&models.Post{}, two).Error)
	ids = fetch(&two, 2)
	require.Equal(t, []uint{1}, ids)
}

func TestScope_Ascending(t *testing.T) {
	t.Parallel()
	db := testutil.NewDB(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Post{
			MemberID:  1,
			BoardType: models.BoardAll,
			Content:   "post",
		}).Error)
	}

	var posts []models.Post
	require.NoError(t, db.Scopes(Scope(nil, Ascending)).Limit(2).Find(&posts).Error)
	require.Len(t, posts, 2)
	assert.Equal(t, uint(1), posts[0].ID)
	assert.Equal(t, uint(2), posts[1].ID)

	cursor := posts[1].ID
	posts = nil
	require.NoError(t, db.Scopes(Scope(&cursor, Ascending)).Limit(2).Find(&posts).Error)
	require.Len(t, posts, 1)
	assert.Equal(t, uint(3), posts[0].ID)
}

func TestScope_FullWalkNoDuplicatesOrGaps(t *testing.T) {
	t.Parallel()
	db := testutil.NewDB(t)

	const total = 25
	for i := 0; i < total; i++ {
		require.NoError(t, db.Create(&models.Post{
			MemberID:  1,
			BoardType: models.BoardFree,
			Content:   "post",
		}).Error)
	}

	seen := map[uint]bool{}
	var cursor *uint
	for {
		var posts []models.Post
		require.NoError(t, db.Scopes(Scope(cursor, Descending)).Limit(4).Find(&posts).Error)
		if len(posts) == 0 {
			break
		}
		for _, p := range posts {
			assert.False(t, seen[p.ID], "id %d returned twice", p.ID)
			seen[p.ID] = true
		}
		last := posts[len(posts)-1].ID
		cursor = &last
	}
	assert.Len(t, seen, total)
}
