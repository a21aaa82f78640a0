package fallback

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campushub/internal/server/models"
)

func TestNewManager_Seeded(t *testing.T) {
	ctx := context.Background()
	m := NewManager()

	posts, err := m.Posts(nil).List(ctx, "", 50, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, posts)
	for _, p := range posts {
		assert.NotEmpty(t, p.Author.Username, "seeded post must carry a resolvable author")
	}

	n, err := m.Listings(nil).Count(ctx, models.ListingFilter{})
	require.NoError(t, err)
	assert.Greater(t, n, 0)

	u, err := m.Users(nil).GetByEmail(ctx, "alexmorgan@campus.edu")
	require.NoError(t, err)
	assert.Equal(t, "Alex Morgan", u.Name)
}

func TestNewManager_FeedHasEngagement(t *testing.T) {
	m := NewManager()

	posts, err := m.Posts(nil).List(context.Background(), "", 50, 0)
	require.NoError(t, err)

	var likes, comments int
	for _, p := range posts {
		likes += p.LikeCount
		comments += p.CommentCount
	}
	assert.Greater(t, likes, 0)
	assert.Greater(t, comments, 0)
}
