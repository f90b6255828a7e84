package feeds

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingBody = `{"data":{"children":[
	{"data":{"id":"abc","title":"Hello","selftext":"","author":"","subreddit":"golang","permalink":"/r/golang/comments/abc","thumbnail":"self","url":"https://example.com","domain":"example.com","created_utc":1700000000,"score":42,"ups":40,"num_comments":7,"num_crossposts":2,"upvote_ratio":0.93,"is_self":true}},
	{"data":{"id":"def","title":"World","selftext":"body","author":"gopher","subreddit":"golang","permalink":"/r/golang/comments/def","thumbnail":"https://thumbs/def.png","created_utc":1700000100,"score":1}}
]}}`

func newTestReddit(t *testing.T, handler http.HandlerFunc) (*RedditClient, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client := NewRedditClient(RedditConfig{
		PublicURL:     srv.URL,
		OAuthURL:      srv.URL,
		UserAgent:     "CreatorDash/test",
		Timeout:       2 * time.Second,
		RatePerMinute: 600,
		Subreddits:    "startups+marketing",
		FeedLimit:     10,
	})
	return client, &hits
}

func TestRedditListing(t *testing.T) {
	client, _ := newTestReddit(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/new.json", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "1", r.URL.Query().Get("raw_json"))
		assert.Equal(t, "CreatorDash/test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(listingBody))
	})

	posts, err := client.Listing(context.Background(), ListingOptions{Sort: "new", Limit: 5})
	require.NoError(t, err)
	require.Len(t, posts, 2)

	first := posts[0]
	assert.Equal(t, "abc", first.ID)
	assert.Equal(t, PlatformReddit, first.Platform)
	assert.Equal(t, "[deleted]", first.Author)
	assert.Equal(t, defaultThumbnail, first.Thumbnail)
	assert.Equal(t, 42, first.Score)
	assert.Equal(t, 7, first.NumComments)
	assert.True(t, first.IsSelf)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), first.Timestamp)

	assert.Equal(t, "https://thumbs/def.png", posts[1].Thumbnail)
	assert.Equal(t, "body", posts[1].Content)
}

func TestRedditListingInvalidSort(t *testing.T) {
	client, hits := newTestReddit(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := client.Listing(context.Background(), ListingOptions{Sort: "../admin"})
	assert.ErrorIs(t, err, ErrInvalidSort)
	assert.EqualValues(t, 0, atomic.LoadInt32(hits))
}

func TestRedditStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		kind   error
	}{
		{http.StatusForbidden, ErrForbidden},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusInternalServerError, ErrUpstream},
		{http.StatusBadGateway, ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client, _ := newTestReddit(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			_, err := client.Listing(context.Background(), ListingOptions{})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)

			var upstream *UpstreamError
			require.True(t, errors.As(err, &upstream))
			assert.Equal(t, tt.status, upstream.StatusCode)
			assert.Equal(t, PlatformReddit, upstream.Platform)
		})
	}
}

func TestRedditInvalidBody(t *testing.T) {
	client, _ := newTestReddit(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"kind":"Listing"}`))
	})

	_, err := client.Listing(context.Background(), ListingOptions{})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestRedditFetchFeed(t *testing.T) {
	client, _ := newTestReddit(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/r/startups+marketing/hot", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(listingBody))
	})

	posts, err := client.FetchFeed(context.Background(), "user-token")
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, "Hello", posts[0].Content)
	assert.Equal(t, "https://reddit.com/r/golang/comments/abc", posts[0].URL)
	require.NotNil(t, posts[0].Engagement)
	assert.Equal(t, Engagement{Likes: 40, Shares: 2, Comments: 7}, *posts[0].Engagement)
}

func TestRedditFetchFeedWithoutToken(t *testing.T) {
	client, hits := newTestReddit(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := client.FetchFeed(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.EqualValues(t, 0, atomic.LoadInt32(hits))
}

func TestRedditShare(t *testing.T) {
	client, _ := newTestReddit(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/submit", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "self", r.PostForm.Get("kind"))
		assert.Equal(t, "My title", r.PostForm.Get("title"))
		assert.Equal(t, "My text", r.PostForm.Get("text"))
		assert.Equal(t, "golang", r.PostForm.Get("sr"))
		_, _ = w.Write([]byte(`{"json":{"errors":[]}}`))
	})

	err := client.Share(context.Background(), "user-token", ShareItem{Title: "My title", Content: "My text", Subreddit: "golang"})
	assert.NoError(t, err)
}

func TestRedditShareRejected(t *testing.T) {
	client, _ := newTestReddit(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"json":{"errors":[["SUBREDDIT_NOEXIST","that subreddit doesn't exist","sr"]]}}`))
	})

	err := client.Share(context.Background(), "user-token", ShareItem{Title: "t", Content: "c", Subreddit: "nope"})
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestRedditLimiterBlocks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(listingBody))
	}))
	defer srv.Close()

	client := NewRedditClient(RedditConfig{PublicURL: srv.URL, OAuthURL: srv.URL, Timeout: time.Second, RatePerMinute: 1})

	_, err := client.Listing(context.Background(), ListingOptions{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = client.Listing(ctx, ListingOptions{})
	require.Error(t, err)

	var upstream *UpstreamError
	assert.False(t, errors.As(err, &upstream), "limiter must reject before any request is sent")
}

func TestListingOptionsNormalize(t *testing.T) {
	opts, err := ListingOptions{}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, ListingOptions{Sort: "hot", Limit: DefaultListingLimit}, opts)

	opts, err = ListingOptions{Sort: "top", Limit: 1000}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, MaxListingLimit, opts.Limit)

	_, err = ListingOptions{Sort: "bogus"}.Normalize()
	assert.ErrorIs(t, err, ErrInvalidSort)
}
