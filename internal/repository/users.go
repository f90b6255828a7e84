// Package repository is the credential store: persisted users, their
// saved-post sets, platform tokens and post reports.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ahmetcoskunkizilkaya/creatordash/internal/models"
	"github.com/google/uuid"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateUser  = errors.New("username or email already registered")
	ErrReportNotFound = errors.New("report not found")
)

// CreditDelta is applied atomically to a user's counters.
type CreditDelta struct {
	Credits      int
	Interactions int
}

// ProfileChanges holds the profile fields to overwrite; nil means unchanged.
type ProfileChanges struct {
	Username *string
	Email    *string
}

// RedditToken is the result of a successful OAuth exchange.
type RedditToken struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// ReportFilter narrows ListReports.
type ReportFilter struct {
	Status string
	Limit  int
	Offset int
}

// UserRepository persists users. Every mutating method is atomic with
// respect to concurrent calls for the same user.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// FindByEmail and FindByUsername match case-insensitively, the same
	// way Create and UpdateProfile detect duplicates.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, changes ProfileChanges) (*models.User, error)
	// RecordLogin sets the last login to at and reports whether it is the
	// first login of at's UTC day. Only one of several concurrent calls on
	// the same day sees true.
	RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) (first bool, err error)

	// AddCredits applies delta and returns the balance after the update.
	AddCredits(ctx context.Context, id uuid.UUID, delta CreditDelta) (int, error)
	SetCredits(ctx context.Context, id uuid.UUID, credits int) (*models.User, error)

	// AddSavedPost inserts postID into the saved set and applies delta in
	// the same transaction. When the post is already saved nothing changes
	// and added is false. The returned balance is current either way.
	AddSavedPost(ctx context.Context, id uuid.UUID, postID string, delta CreditDelta) (added bool, credits int, err error)
	// RemoveSavedPost is idempotent and returns the unchanged balance.
	RemoveSavedPost(ctx context.Context, id uuid.UUID, postID string) (int, error)
	SavedPosts(ctx context.Context, id uuid.UUID) ([]string, error)

	// SetRedditToken stores token; nil clears the connection.
	SetRedditToken(ctx context.Context, id uuid.UUID, token *RedditToken) error

	CreateReport(ctx context.Context, report *models.PostReport) error
	ListReports(ctx context.Context, filter ReportFilter) ([]models.PostReport, int64, error)
	UpdateReport(ctx context.Context, id uuid.UUID, status, adminNote string) error

	Ping(ctx context.Context) error
}

// StartOfDay returns midnight UTC of t's day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
