package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/creatordash/internal/metrics"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const defaultThumbnail = "https://www.redditstatic.com/desktop2x/img/favicon/android-icon-192x192.png"

type RedditConfig struct {
	PublicURL     string
	OAuthURL      string
	UserAgent     string
	Timeout       time.Duration
	RatePerMinute int
	Subreddits    string
	FeedLimit     int
}

// RedditClient talks to the live Reddit API. Every outbound call, public or
// authenticated, takes a token from one shared bucket and blocks until one
// is available.
type RedditClient struct {
	public  *resty.Client
	oauth   *resty.Client
	limiter *rate.Limiter
	cfg     RedditConfig
}

var (
	_ Platform = (*RedditClient)(nil)
	_ Lister   = (*RedditClient)(nil)
)

func NewRedditClient(cfg RedditConfig) *RedditClient {
	if cfg.RatePerMinute <= 0 {
		cfg.RatePerMinute = 60
	}
	if cfg.FeedLimit <= 0 {
		cfg.FeedLimit = 10
	}

	return &RedditClient{
		public:  newRedditHTTP(cfg.PublicURL, cfg),
		oauth:   newRedditHTTP(cfg.OAuthURL, cfg),
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RatePerMinute)), cfg.RatePerMinute),
		cfg:     cfg,
	}
}

func newRedditHTTP(baseURL string, cfg RedditConfig) *resty.Client {
	return resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json")
}

func (c *RedditClient) Name() string { return PlatformReddit }

func (c *RedditClient) RequiresToken() bool { return true }

func (c *RedditClient) wait(ctx context.Context) error {
	start := time.Now()
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	metrics.RecordLimiterWait(PlatformReddit, time.Since(start))
	return nil
}

// Listing fetches the public front-page listing.
func (c *RedditClient) Listing(ctx context.Context, opts ListingOptions) ([]Post, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}

	listing, err := c.get(ctx, c.public.R().
		SetQueryParams(map[string]string{
			"limit":    strconv.Itoa(opts.Limit),
			"raw_json": "1",
		}), "listing", "/"+opts.Sort+".json")
	if err != nil {
		return nil, err
	}

	posts := make([]Post, 0, len(listing))
	for _, p := range listing {
		posts = append(posts, p.toListingPost())
	}
	return posts, nil
}

// FetchFeed fetches the hot posts of the configured subreddits with the
// user's OAuth token.
func (c *RedditClient) FetchFeed(ctx context.Context, token string) ([]Post, error) {
	if token == "" {
		return nil, ErrNotConnected
	}

	listing, err := c.get(ctx, c.oauth.R().
		SetAuthToken(token).
		SetQueryParam("limit", strconv.Itoa(c.cfg.FeedLimit)), "feed", "/r/"+c.cfg.Subreddits+"/hot")
	if err != nil {
		return nil, err
	}

	posts := make([]Post, 0, len(listing))
	for _, p := range listing {
		posts = append(posts, p.toFeedPost())
	}
	return posts, nil
}

// Share submits a self post.
func (c *RedditClient) Share(ctx context.Context, token string, item ShareItem) error {
	if token == "" {
		return ErrNotConnected
	}
	if err := c.wait(ctx); err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.oauth.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetFormData(map[string]string{
			"kind":     "self",
			"title":    item.Title,
			"text":     item.Content,
			"sr":       item.Subreddit,
			"api_type": "json",
		}).
		Post("/api/submit")
	if err != nil {
		metrics.RecordUpstream(PlatformReddit, "share", 0, time.Since(start))
		return transportError(PlatformReddit, "share", err)
	}
	metrics.RecordUpstream(PlatformReddit, "share", resp.StatusCode(), time.Since(start))

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return statusError(PlatformReddit, "share", resp.StatusCode())
	}

	var result submitResponse
	if err := json.Unmarshal(resp.Body(), &result); err == nil && len(result.JSON.Errors) > 0 {
		return &UpstreamError{
			Platform:   PlatformReddit,
			Operation:  "share",
			StatusCode: resp.StatusCode(),
			Kind:       ErrUpstream,
			Err:        fmt.Errorf("submit rejected: %v", result.JSON.Errors[0]),
		}
	}
	return nil
}

func (c *RedditClient) get(ctx context.Context, req *resty.Request, operation, path string) ([]redditPost, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := req.SetContext(ctx).Get(path)
	if err != nil {
		metrics.RecordUpstream(PlatformReddit, operation, 0, time.Since(start))
		return nil, transportError(PlatformReddit, operation, err)
	}
	metrics.RecordUpstream(PlatformReddit, operation, resp.StatusCode(), time.Since(start))

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, statusError(PlatformReddit, operation, resp.StatusCode())
	}

	var listing redditListing
	if err := json.Unmarshal(resp.Body(), &listing); err != nil || listing.Data == nil || listing.Data.Children == nil {
		return nil, &UpstreamError{
			Platform:   PlatformReddit,
			Operation:  operation,
			StatusCode: resp.StatusCode(),
			Kind:       ErrInvalidResponse,
			Err:        err,
		}
	}

	posts := make([]redditPost, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		if child.Data != nil {
			posts = append(posts, *child.Data)
		}
	}
	return posts, nil
}

type redditListing struct {
	Data *struct {
		Children []struct {
			Data *redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Selftext      string  `json:"selftext"`
	Author        string  `json:"author"`
	Subreddit     string  `json:"subreddit"`
	Permalink     string  `json:"permalink"`
	Thumbnail     string  `json:"thumbnail"`
	URL           string  `json:"url"`
	Domain        string  `json:"domain"`
	CreatedUTC    float64 `json:"created_utc"`
	Score         int     `json:"score"`
	Ups           int     `json:"ups"`
	NumComments   int     `json:"num_comments"`
	NumCrossposts int     `json:"num_crossposts"`
	UpvoteRatio   float64 `json:"upvote_ratio"`
	IsVideo       bool    `json:"is_video"`
	Over18        bool    `json:"over_18"`
	Spoiler       bool    `json:"spoiler"`
	Stickied      bool    `json:"stickied"`
	IsSelf        bool    `json:"is_self"`
}

type submitResponse struct {
	JSON struct {
		Errors [][]interface{} `json:"errors"`
	} `json:"json"`
}

func (p redditPost) timestamp() time.Time {
	sec := int64(p.CreatedUTC)
	nsec := int64((p.CreatedUTC - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec).UTC()
}

func (p redditPost) toListingPost() Post {
	author := p.Author
	if author == "" {
		author = "[deleted]"
	}
	thumbnail := p.Thumbnail
	if thumbnail == "" || thumbnail == "self" || thumbnail == "default" {
		thumbnail = defaultThumbnail
	}

	return Post{
		ID:          p.ID,
		Platform:    PlatformReddit,
		Title:       p.Title,
		Content:     p.Selftext,
		Author:      author,
		Subreddit:   p.Subreddit,
		URL:         p.URL,
		Permalink:   p.Permalink,
		Thumbnail:   thumbnail,
		Domain:      p.Domain,
		Timestamp:   p.timestamp(),
		Score:       p.Score,
		NumComments: p.NumComments,
		UpvoteRatio: p.UpvoteRatio,
		IsVideo:     p.IsVideo,
		Over18:      p.Over18,
		Spoiler:     p.Spoiler,
		Stickied:    p.Stickied,
		IsSelf:      p.IsSelf,
	}
}

func (p redditPost) toFeedPost() Post {
	content := p.Selftext
	if content == "" {
		content = p.Title
	}

	return Post{
		ID:          p.ID,
		Platform:    PlatformReddit,
		Title:       p.Title,
		Content:     content,
		Author:      p.Author,
		Subreddit:   p.Subreddit,
		URL:         "https://reddit.com" + p.Permalink,
		Permalink:   p.Permalink,
		Timestamp:   p.timestamp(),
		Score:       p.Score,
		NumComments: p.NumComments,
		Engagement: &Engagement{
			Likes:    p.Ups,
			Shares:   p.NumCrossposts,
			Comments: p.NumComments,
		},
	}
}
