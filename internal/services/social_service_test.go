package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/creatordash/internal/feeds"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/oauthstate"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSocialService(platforms ...feeds.Platform) (*SocialService, *repository.MemoryUserRepository) {
	repo := repository.NewMemoryUserRepository()
	ledger := NewLedger(repo, DefaultRewardPolicy())
	oauth := NewRedditOAuth(repo, oauthstate.NewMemoryStore(), RedditOAuthConfig{})
	if len(platforms) == 0 {
		platforms = []feeds.Platform{feeds.NewRedditFixture(), feeds.NewLinkedInFixture()}
	}
	return NewSocialService(repo, ledger, feeds.NewAggregator(platforms...), oauth, NewContentFilter()), repo
}

func TestFeedWithoutReddit(t *testing.T) {
	svc, repo := newSocialService()
	user := seedUser(t, repo, "bob123")

	res, err := svc.Feed(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, res.Posts, 2)
	for _, p := range res.Posts {
		assert.Equal(t, feeds.PlatformLinkedIn, p.Platform)
	}
	assert.Equal(t, 2, res.Reward.Reward)
	assert.Equal(t, 2, res.Reward.Credits)
}

func TestFeedMergesConnectedPlatforms(t *testing.T) {
	svc, repo := newSocialService()
	user := seedUser(t, repo, "bob123")
	require.NoError(t, repo.SetRedditToken(context.Background(), user.ID, &repository.RedditToken{
		AccessToken: "tok",
		Expiry:      time.Now().Add(time.Hour),
	}))

	res, err := svc.Feed(context.Background(), user.ID)
	require.NoError(t, err)

	ids := make([]string, 0, len(res.Posts))
	for _, p := range res.Posts {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"linkedin-1", "reddit-1", "linkedin-2", "reddit-2"}, ids)
}

func TestFeedToleratesFailingPlatform(t *testing.T) {
	svc, repo := newSocialService(
		feeds.NewFailingPlatform(feeds.PlatformReddit, feeds.ErrRateLimited),
		feeds.NewLinkedInFixture(),
	)
	user := seedUser(t, repo, "bob123")

	res, err := svc.Feed(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, res.Posts, 2)
	assert.Equal(t, 2, res.Reward.Credits)
}

func TestShare(t *testing.T) {
	svc, repo := newSocialService()
	user := seedUser(t, repo, "bob123")
	ctx := context.Background()

	res, err := svc.Share(ctx, user.ID, "LinkedIn", feeds.ShareItem{Content: "New blog post is live"})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Reward)
	assert.Equal(t, 5, res.Credits)

	u, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, u.TotalInteractions)
}

func TestShareRejections(t *testing.T) {
	svc, repo := newSocialService()
	user := seedUser(t, repo, "bob123")
	ctx := context.Background()

	_, err := svc.Share(ctx, user.ID, "myspace", feeds.ShareItem{Content: "hi"})
	assert.ErrorIs(t, err, feeds.ErrUnknownPlatform)

	_, err = svc.Share(ctx, user.ID, feeds.PlatformLinkedIn, feeds.ShareItem{Content: "  "})
	assert.ErrorIs(t, err, ErrContentRequired)

	_, err = svc.Share(ctx, user.ID, feeds.PlatformReddit, feeds.ShareItem{Content: "body"})
	assert.ErrorIs(t, err, ErrRedditPostFields)

	_, err = svc.Share(ctx, user.ID, feeds.PlatformReddit, feeds.ShareItem{Content: "body", Title: "t", Subreddit: "golang"})
	assert.ErrorIs(t, err, feeds.ErrNotConnected)

	_, err = svc.Share(ctx, user.ID, feeds.PlatformLinkedIn, feeds.ShareItem{Content: "this is a scam"})
	var rejected *ContentRejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, RejectLanguage, rejected.Code)

	assert.Equal(t, 0, balance(t, repo, user.ID))
}

func TestShareUpstreamFailureAwardsNothing(t *testing.T) {
	failure := &feeds.UpstreamError{Platform: feeds.PlatformLinkedIn, StatusCode: 429, Kind: feeds.ErrRateLimited}
	svc, repo := newSocialService(feeds.NewFailingPlatform(feeds.PlatformLinkedIn, failure))
	user := seedUser(t, repo, "bob123")

	_, err := svc.Share(context.Background(), user.ID, feeds.PlatformLinkedIn, feeds.ShareItem{Content: "hello"})
	assert.ErrorIs(t, err, feeds.ErrRateLimited)
	assert.Equal(t, 0, balance(t, repo, user.ID))
}
