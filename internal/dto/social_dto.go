package dto

import (
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/feeds"
)

type ShareRequest struct {
	Content   string `json:"content" validate:"required"`
	Title     string `json:"title"`
	Subreddit string `json:"subreddit"`
	URL       string `json:"url"`
}

type ReportPostRequest struct {
	Reason   string `json:"reason" validate:"required,max=500"`
	Platform string `json:"platform" validate:"omitempty,oneof=reddit linkedin"`
}

type ActionReportRequest struct {
	Status    string `json:"status" validate:"required,oneof=reviewed actioned dismissed"`
	AdminNote string `json:"admin_note" validate:"max=1000"`
}

// RewardResponse echoes a ledger mutation.
type RewardResponse struct {
	PostID       string `json:"post_id,omitempty"`
	Platform     string `json:"platform,omitempty"`
	Outcome      string `json:"outcome"`
	CreditReward int    `json:"credit_reward"`
	Credits      int    `json:"credits"`
}

type FeedResponse struct {
	Posts         []feeds.Post `json:"posts"`
	Credits       int          `json:"credits"`
	CreditReward  int          `json:"credit_reward"`
	RewardMessage string       `json:"reward_message"`
}

type SavedPostsResponse struct {
	SavedPosts []string `json:"saved_posts"`
}

type RedditAuthResponse struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}

type RedditStatusResponse struct {
	Connected bool   `json:"connected"`
	ExpiresAt string `json:"expires_at,omitempty"`
}
