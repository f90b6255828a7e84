package feeds

import (
	"context"
	"log/slog"
	"time"
)

// FixturePlatform serves canned posts. It backs LinkedIn, which has no live
// integration, and Reddit when REDDIT_MODE=fixture.
type FixturePlatform struct {
	name          string
	requiresToken bool
	posts         func(now time.Time) []Post
	now           func() time.Time
	err           error
}

var (
	_ Platform = (*FixturePlatform)(nil)
	_ Lister   = (*FixturePlatform)(nil)
)

func NewFixturePlatform(name string, requiresToken bool, posts []Post) *FixturePlatform {
	return &FixturePlatform{
		name:          name,
		requiresToken: requiresToken,
		posts:         func(time.Time) []Post { return posts },
		now:           time.Now,
	}
}

// NewFailingPlatform returns a platform whose every call fails with err.
func NewFailingPlatform(name string, err error) *FixturePlatform {
	p := NewFixturePlatform(name, false, nil)
	p.err = err
	return p
}

func NewLinkedInFixture() *FixturePlatform {
	return &FixturePlatform{
		name:  PlatformLinkedIn,
		posts: linkedInPosts,
		now:   time.Now,
	}
}

func NewRedditFixture() *FixturePlatform {
	return &FixturePlatform{
		name:          PlatformReddit,
		requiresToken: true,
		posts:         redditPosts,
		now:           time.Now,
	}
}

func (f *FixturePlatform) Name() string { return f.name }

func (f *FixturePlatform) RequiresToken() bool { return f.requiresToken }

func (f *FixturePlatform) FetchFeed(_ context.Context, token string) ([]Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.requiresToken && token == "" {
		return nil, ErrNotConnected
	}
	return f.snapshot(), nil
}

func (f *FixturePlatform) Listing(_ context.Context, opts ListingOptions) ([]Post, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	posts := f.snapshot()
	if len(posts) > opts.Limit {
		posts = posts[:opts.Limit]
	}
	return posts, nil
}

func (f *FixturePlatform) Share(_ context.Context, token string, item ShareItem) error {
	if f.err != nil {
		return f.err
	}
	if f.requiresToken && token == "" {
		return ErrNotConnected
	}
	slog.Info("fixture share", "platform", f.name, "title", item.Title, "url", item.URL)
	return nil
}

func (f *FixturePlatform) snapshot() []Post {
	src := f.posts(f.now())
	out := make([]Post, len(src))
	copy(out, src)
	return out
}

func linkedInPosts(now time.Time) []Post {
	return []Post{
		{
			ID:        "linkedin-1",
			Platform:  PlatformLinkedIn,
			Content:   "Excited to share our latest product launch! 🚀 #Innovation #Tech",
			Author:    "John Doe",
			Timestamp: now,
			URL:       "https://linkedin.com/post/1",
			Engagement: &Engagement{
				Likes:    150,
				Shares:   45,
				Comments: 23,
			},
		},
		{
			ID:        "linkedin-2",
			Platform:  PlatformLinkedIn,
			Content:   "Just completed an amazing workshop on AI and Machine Learning! 🤖 #AI #ML",
			Author:    "Jane Smith",
			Timestamp: now.Add(-time.Hour),
			URL:       "https://linkedin.com/post/2",
			Engagement: &Engagement{
				Likes:    89,
				Shares:   12,
				Comments: 15,
			},
		},
	}
}

func redditPosts(now time.Time) []Post {
	return []Post{
		{
			ID:          "reddit-1",
			Platform:    PlatformReddit,
			Title:       "How we got our first 100 customers",
			Content:     "A short write-up of what worked and what did not.",
			Author:      "founder_jane",
			Subreddit:   "startups",
			URL:         "https://reddit.com/r/startups/comments/reddit1",
			Permalink:   "/r/startups/comments/reddit1",
			Timestamp:   now.Add(-30 * time.Minute),
			Score:       412,
			NumComments: 57,
			IsSelf:      true,
			Engagement:  &Engagement{Likes: 412, Shares: 3, Comments: 57},
		},
		{
			ID:          "reddit-2",
			Platform:    PlatformReddit,
			Title:       "Content calendar template for small teams",
			Content:     "Sharing the spreadsheet we use every week.",
			Author:      "socialsam",
			Subreddit:   "socialmedia",
			URL:         "https://reddit.com/r/socialmedia/comments/reddit2",
			Permalink:   "/r/socialmedia/comments/reddit2",
			Timestamp:   now.Add(-2 * time.Hour),
			Score:       128,
			NumComments: 14,
			IsSelf:      true,
			Engagement:  &Engagement{Likes: 128, Shares: 1, Comments: 14},
		},
	}
}
