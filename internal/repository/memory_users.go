package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/creatordash/internal/models"
	"github.com/google/uuid"
)

var _ UserRepository = (*MemoryUserRepository)(nil)

// MemoryUserRepository keeps everything in process memory. It backs
// STORE_DRIVER=memory and the route tests.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]*models.User
	saved   map[uuid.UUID][]string
	reports []models.PostReport
	now     func() time.Time
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[uuid.UUID]*models.User),
		saved: make(map[uuid.UUID][]string),
		now:   time.Now,
	}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Username, user.Username) || strings.EqualFold(existing.Email, user.Email) {
			return ErrDuplicateUser
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	now := r.now()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return r.findBy(func(u *models.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *MemoryUserRepository) FindByUsername(_ context.Context, username string) (*models.User, error) {
	return r.findBy(func(u *models.User) bool { return strings.EqualFold(u.Username, username) })
}

func (r *MemoryUserRepository) findBy(match func(*models.User) bool) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if match(u) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *MemoryUserRepository) List(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (r *MemoryUserRepository) UpdateProfile(_ context.Context, id uuid.UUID, changes ProfileChanges) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	for otherID, other := range r.users {
		if otherID == id {
			continue
		}
		if changes.Username != nil && strings.EqualFold(other.Username, *changes.Username) {
			return nil, ErrDuplicateUser
		}
		if changes.Email != nil && strings.EqualFold(other.Email, *changes.Email) {
			return nil, ErrDuplicateUser
		}
	}

	if changes.Username != nil {
		u.Username = *changes.Username
	}
	if changes.Email != nil {
		u.Email = *changes.Email
	}
	u.UpdatedAt = r.now()

	copied := *u
	return &copied, nil
}

func (r *MemoryUserRepository) RecordLogin(_ context.Context, id uuid.UUID, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return false, ErrUserNotFound
	}
	first := u.LastLoginAt == nil || u.LastLoginAt.Before(StartOfDay(at))
	u.LastLoginAt = &at
	return first, nil
}

func (r *MemoryUserRepository) AddCredits(_ context.Context, id uuid.UUID, delta CreditDelta) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return 0, ErrUserNotFound
	}
	r.applyDelta(u, delta)
	return u.Credits, nil
}

func (r *MemoryUserRepository) SetCredits(_ context.Context, id uuid.UUID, credits int) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	u.Credits = credits
	u.UpdatedAt = r.now()

	copied := *u
	return &copied, nil
}

func (r *MemoryUserRepository) AddSavedPost(_ context.Context, id uuid.UUID, postID string, delta CreditDelta) (bool, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return false, 0, ErrUserNotFound
	}
	for _, existing := range r.saved[id] {
		if existing == postID {
			return false, u.Credits, nil
		}
	}

	r.saved[id] = append(r.saved[id], strings.Clone(postID))
	r.applyDelta(u, delta)
	return true, u.Credits, nil
}

func (r *MemoryUserRepository) RemoveSavedPost(_ context.Context, id uuid.UUID, postID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return 0, ErrUserNotFound
	}

	kept := r.saved[id][:0]
	for _, existing := range r.saved[id] {
		if existing != postID {
			kept = append(kept, existing)
		}
	}
	r.saved[id] = kept
	return u.Credits, nil
}

func (r *MemoryUserRepository) SavedPosts(_ context.Context, id uuid.UUID) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, len(r.saved[id]))
	copy(ids, r.saved[id])
	return ids, nil
}

func (r *MemoryUserRepository) SetRedditToken(_ context.Context, id uuid.UUID, token *RedditToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}

	u.RedditAccessToken, u.RedditRefreshToken, u.RedditTokenExpiry = nil, nil, nil
	if token != nil {
		access := token.AccessToken
		u.RedditAccessToken = &access
		if token.RefreshToken != "" {
			refresh := token.RefreshToken
			u.RedditRefreshToken = &refresh
		}
		if !token.Expiry.IsZero() {
			expiry := token.Expiry
			u.RedditTokenExpiry = &expiry
		}
	}
	u.UpdatedAt = r.now()
	return nil
}

func (r *MemoryUserRepository) CreateReport(_ context.Context, report *models.PostReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if report.Status == "" {
		report.Status = models.ReportPending
	}
	now := r.now()
	report.CreatedAt = now
	report.UpdatedAt = now

	stored := *report
	stored.PostID = strings.Clone(report.PostID)
	stored.Platform = strings.Clone(report.Platform)
	stored.Reason = strings.Clone(report.Reason)
	r.reports = append(r.reports, stored)
	return nil
}

func (r *MemoryUserRepository) ListReports(_ context.Context, filter ReportFilter) ([]models.PostReport, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.PostReport, 0, len(r.reports))
	for i := len(r.reports) - 1; i >= 0; i-- {
		if filter.Status == "" || r.reports[i].Status == filter.Status {
			matched = append(matched, r.reports[i])
		}
	}

	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return []models.PostReport{}, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *MemoryUserRepository) UpdateReport(_ context.Context, id uuid.UUID, status, adminNote string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.reports {
		if r.reports[i].ID == id {
			r.reports[i].Status = status
			r.reports[i].AdminNote = adminNote
			r.reports[i].UpdatedAt = r.now()
			return nil
		}
	}
	return ErrReportNotFound
}

func (r *MemoryUserRepository) Ping(context.Context) error {
	return nil
}

func (r *MemoryUserRepository) applyDelta(u *models.User, delta CreditDelta) {
	u.Credits += delta.Credits
	u.TotalInteractions += delta.Interactions
	u.UpdatedAt = r.now()
}
