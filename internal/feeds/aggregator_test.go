package feeds

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeToleratesFailingPlatform(t *testing.T) {
	agg := NewAggregator(
		NewFailingPlatform(PlatformReddit, errors.New("boom")),
		NewLinkedInFixture(),
	)

	posts := agg.Merge(context.Background(), nil)
	require.Len(t, posts, 2)
	assert.Equal(t, "linkedin-1", posts[0].ID)
	assert.Equal(t, "linkedin-2", posts[1].ID)
}

func TestMergeSortsNewestFirst(t *testing.T) {
	now := time.Now()
	a := NewFixturePlatform("a", false, []Post{
		{ID: "a-old", Timestamp: now.Add(-3 * time.Hour)},
		{ID: "a-new", Timestamp: now},
	})
	b := NewFixturePlatform("b", false, []Post{
		{ID: "b-mid", Timestamp: now.Add(-time.Hour)},
	})

	posts := NewAggregator(a, b).Merge(context.Background(), nil)
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"a-new", "b-mid", "a-old"}, ids)
}

func TestMergeSkipsUnconnectedPlatforms(t *testing.T) {
	agg := NewAggregator(NewRedditFixture(), NewLinkedInFixture())

	posts := agg.Merge(context.Background(), map[string]string{})
	for _, p := range posts {
		assert.Equal(t, PlatformLinkedIn, p.Platform)
	}
	assert.Len(t, posts, 2)

	posts = agg.Merge(context.Background(), map[string]string{PlatformReddit: "token"})
	assert.Len(t, posts, 4)
}

func TestMergeAllFailingReturnsEmpty(t *testing.T) {
	agg := NewAggregator(NewFailingPlatform("x", errors.New("down")))

	posts := agg.Merge(context.Background(), nil)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestAggregatorPlatformLookup(t *testing.T) {
	agg := NewAggregator(NewLinkedInFixture())

	p, err := agg.Platform(PlatformLinkedIn)
	require.NoError(t, err)
	assert.Equal(t, PlatformLinkedIn, p.Name())

	_, err = agg.Platform("myspace")
	assert.ErrorIs(t, err, ErrUnknownPlatform)
}

func TestFixtureShareRequiresToken(t *testing.T) {
	reddit := NewRedditFixture()
	assert.ErrorIs(t, reddit.Share(context.Background(), "", ShareItem{}), ErrNotConnected)
	assert.NoError(t, reddit.Share(context.Background(), "token", ShareItem{Title: "t"}))
	assert.NoError(t, NewLinkedInFixture().Share(context.Background(), "", ShareItem{Content: "hi"}))
}
