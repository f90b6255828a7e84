package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/creatordash/internal/feeds"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrContentRequired  = errors.New("content is required")
	ErrRedditPostFields = errors.New("title and subreddit are required for reddit posts")
)

// ContentRejectedError carries the filter's rejection code.
type ContentRejectedError struct {
	Code string
}

func (e *ContentRejectedError) Error() string {
	return "content rejected: " + e.Code
}

// FeedResult is a merged feed plus the fetch_feed reward it earned.
type FeedResult struct {
	Posts  []feeds.Post
	Reward *Result
}

// SocialService combines platform access with the ledger.
type SocialService struct {
	users  repository.UserRepository
	ledger *Ledger
	feeds  *feeds.Aggregator
	oauth  *RedditOAuth
	filter *ContentFilter
}

func NewSocialService(users repository.UserRepository, ledger *Ledger, aggregator *feeds.Aggregator, oauth *RedditOAuth, filter *ContentFilter) *SocialService {
	return &SocialService{
		users:  users,
		ledger: ledger,
		feeds:  aggregator,
		oauth:  oauth,
		filter: filter,
	}
}

func (s *SocialService) tokens(ctx context.Context, userID uuid.UUID) (map[string]string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	tokens := map[string]string{}
	token, err := s.oauth.AccessToken(ctx, user)
	if err != nil {
		slog.Warn("reddit token unavailable", "user_id", userID.String(), "error", err)
		return tokens, nil
	}
	if token != "" {
		tokens[feeds.PlatformReddit] = token
	}
	return tokens, nil
}

// Feed merges every platform the user can read and awards fetch_feed.
func (s *SocialService) Feed(ctx context.Context, userID uuid.UUID) (*FeedResult, error) {
	tokens, err := s.tokens(ctx, userID)
	if err != nil {
		return nil, err
	}

	posts := s.feeds.Merge(ctx, tokens)

	reward, err := s.ledger.Award(ctx, userID, ActionFetchFeed)
	if err != nil {
		return nil, err
	}
	return &FeedResult{Posts: posts, Reward: reward}, nil
}

// Share publishes item to platform and awards share on success.
func (s *SocialService) Share(ctx context.Context, userID uuid.UUID, platform string, item feeds.ShareItem) (*Result, error) {
	p, err := s.feeds.Platform(strings.ToLower(platform))
	if err != nil {
		return nil, err
	}

	item.Content = strings.TrimSpace(item.Content)
	item.Title = strings.TrimSpace(item.Title)
	item.Subreddit = strings.TrimSpace(item.Subreddit)
	if item.Content == "" {
		return nil, ErrContentRequired
	}
	if p.Name() == feeds.PlatformReddit && (item.Title == "" || item.Subreddit == "") {
		return nil, ErrRedditPostFields
	}
	for _, text := range []string{item.Title, item.Content} {
		if ok, code := s.filter.Check(text); !ok {
			return nil, &ContentRejectedError{Code: code}
		}
	}

	tokens, err := s.tokens(ctx, userID)
	if err != nil {
		return nil, err
	}
	token := tokens[p.Name()]
	if p.RequiresToken() && token == "" {
		return nil, feeds.ErrNotConnected
	}

	if err := p.Share(ctx, token, item); err != nil {
		return nil, fmt.Errorf("share to %s: %w", p.Name(), err)
	}

	return s.ledger.Award(ctx, userID, ActionShare)
}
