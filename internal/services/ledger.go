package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/creatordash/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/models"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrUserNotFound   = repository.ErrUserNotFound
	ErrInvalidCredits = errors.New("credits must be a non-negative number")
	ErrEmptyPostID    = errors.New("post id is required")
)

const (
	OutcomeApplied      = "applied"
	OutcomeAlreadySaved = "already_saved"
	OutcomeRemoved      = "removed"
)

// Result describes one ledger mutation and the balance after it.
type Result struct {
	Action  Action `json:"action"`
	Outcome string `json:"outcome"`
	Reward  int    `json:"reward"`
	Credits int    `json:"credits"`
	PostID  string `json:"post_id,omitempty"`
}

// Applied reports whether the action changed anything.
func (r Result) Applied() bool {
	return r.Outcome != OutcomeAlreadySaved
}

// Ledger applies reward-policy deltas to user balances.
type Ledger struct {
	users  repository.UserRepository
	policy *RewardPolicy
}

func NewLedger(users repository.UserRepository, policy *RewardPolicy) *Ledger {
	return &Ledger{users: users, policy: policy}
}

func (l *Ledger) Policy() *RewardPolicy {
	return l.policy
}

func (l *Ledger) delta(action Action) repository.CreditDelta {
	d := repository.CreditDelta{Credits: l.policy.Amount(action)}
	if l.policy.IsInteraction(action) {
		d.Interactions = 1
	}
	return d
}

// Award adds the reward for action to the user's balance.
func (l *Ledger) Award(ctx context.Context, userID uuid.UUID, action Action) (*Result, error) {
	delta := l.delta(action)
	credits, err := l.users.AddCredits(ctx, userID, delta)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to award %s: %w", action, err)
	}

	metrics.RecordAward(string(action), OutcomeApplied, delta.Credits)
	slog.Info("credits awarded", "user_id", userID.String(), "action", string(action), "reward", delta.Credits, "credits", credits)

	return &Result{
		Action:  action,
		Outcome: OutcomeApplied,
		Reward:  delta.Credits,
		Credits: credits,
	}, nil
}

// AwardPost is Award for actions that reference an external post.
func (l *Ledger) AwardPost(ctx context.Context, userID uuid.UUID, action Action, postID string) (*Result, error) {
	if postID == "" {
		return nil, ErrEmptyPostID
	}
	res, err := l.Award(ctx, userID, action)
	if err != nil {
		return nil, err
	}
	res.PostID = postID
	return res, nil
}

// Save adds postID to the saved set. Saving a post twice rewards once.
func (l *Ledger) Save(ctx context.Context, userID uuid.UUID, postID string) (*Result, error) {
	if postID == "" {
		return nil, ErrEmptyPostID
	}

	delta := l.delta(ActionSave)
	added, credits, err := l.users.AddSavedPost(ctx, userID, postID, delta)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to save post: %w", err)
	}

	res := &Result{Action: ActionSave, Credits: credits, PostID: postID}
	if added {
		res.Outcome = OutcomeApplied
		res.Reward = delta.Credits
	} else {
		res.Outcome = OutcomeAlreadySaved
	}
	metrics.RecordAward(string(ActionSave), res.Outcome, res.Reward)
	return res, nil
}

// Unsave removes postID from the saved set. Removing an absent post is not
// an error and the balance never changes.
func (l *Ledger) Unsave(ctx context.Context, userID uuid.UUID, postID string) (*Result, error) {
	if postID == "" {
		return nil, ErrEmptyPostID
	}

	credits, err := l.users.RemoveSavedPost(ctx, userID, postID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to unsave post: %w", err)
	}
	return &Result{Action: ActionSave, Outcome: OutcomeRemoved, Credits: credits, PostID: postID}, nil
}

func (l *Ledger) SavedPosts(ctx context.Context, userID uuid.UUID) ([]string, error) {
	if _, err := l.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return l.users.SavedPosts(ctx, userID)
}

// SetBalance is the admin override; it is the only way a balance decreases.
func (l *Ledger) SetBalance(ctx context.Context, userID uuid.UUID, credits int) (*models.User, error) {
	if credits < 0 {
		return nil, ErrInvalidCredits
	}
	user, err := l.users.SetCredits(ctx, userID, credits)
	if err != nil {
		return nil, err
	}
	slog.Info("credits overridden", "user_id", userID.String(), "credits", credits)
	return user, nil
}
