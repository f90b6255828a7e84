// Package feeds fetches posts from external content platforms and
// normalizes them into one Post shape.
package feeds

import (
	"context"
	"time"
)

const (
	PlatformReddit   = "reddit"
	PlatformLinkedIn = "linkedin"
)

// Post is a normalized, transient external post.
type Post struct {
	ID          string      `json:"id"`
	Platform    string      `json:"platform"`
	Title       string      `json:"title,omitempty"`
	Content     string      `json:"content"`
	Author      string      `json:"author"`
	Subreddit   string      `json:"subreddit,omitempty"`
	URL         string      `json:"url,omitempty"`
	Permalink   string      `json:"permalink,omitempty"`
	Thumbnail   string      `json:"thumbnail,omitempty"`
	Domain      string      `json:"domain,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
	Score       int         `json:"score"`
	NumComments int         `json:"num_comments"`
	UpvoteRatio float64     `json:"upvote_ratio,omitempty"`
	Engagement  *Engagement `json:"engagement,omitempty"`
	IsVideo     bool        `json:"is_video"`
	Over18      bool        `json:"over_18"`
	Spoiler     bool        `json:"spoiler"`
	Stickied    bool        `json:"stickied"`
	IsSelf      bool        `json:"is_self"`
}

type Engagement struct {
	Likes    int `json:"likes"`
	Shares   int `json:"shares"`
	Comments int `json:"comments"`
}

// ShareItem is content published to a platform on the user's behalf.
type ShareItem struct {
	Content   string
	Title     string
	Subreddit string
	URL       string
}

// Platform is one content source. Implementations must be safe for
// concurrent use.
type Platform interface {
	Name() string
	// RequiresToken reports whether FetchFeed and Share need a user token.
	RequiresToken() bool
	FetchFeed(ctx context.Context, token string) ([]Post, error)
	Share(ctx context.Context, token string, item ShareItem) error
}

// Lister serves the public, unauthenticated listing.
type Lister interface {
	Listing(ctx context.Context, opts ListingOptions) ([]Post, error)
}

const (
	DefaultListingLimit = 25
	MaxListingLimit     = 100
)

var listingSorts = map[string]bool{
	"hot":           true,
	"new":           true,
	"top":           true,
	"rising":        true,
	"controversial": true,
	"best":          true,
}

type ListingOptions struct {
	Sort  string
	Limit int
}

// Normalize applies defaults, clamps the limit and rejects unknown sorts.
func (o ListingOptions) Normalize() (ListingOptions, error) {
	if o.Sort == "" {
		o.Sort = "hot"
	}
	if !listingSorts[o.Sort] {
		return o, ErrInvalidSort
	}
	switch {
	case o.Limit <= 0:
		o.Limit = DefaultListingLimit
	case o.Limit > MaxListingLimit:
		o.Limit = MaxListingLimit
	}
	return o, nil
}
