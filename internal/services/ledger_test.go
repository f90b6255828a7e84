package services

import (
	"context"
	"sync"
	"testing"

	"github.com/ahmetcoskunkizilkaya/creatordash/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedger() (*Ledger, *repository.MemoryUserRepository) {
	repo := repository.NewMemoryUserRepository()
	return NewLedger(repo, DefaultRewardPolicy()), repo
}

func TestLedgerAward(t *testing.T) {
	ledger, repo := newLedger()
	user := seedUser(t, repo, "bob123")
	ctx := context.Background()

	res, err := ledger.Award(ctx, user.ID, ActionShare)
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, res.Outcome)
	assert.Equal(t, 5, res.Reward)
	assert.Equal(t, 5, res.Credits)

	res, err = ledger.Award(ctx, user.ID, ActionProfileUpdate)
	require.NoError(t, err)
	assert.Equal(t, 15, res.Credits)

	u, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, u.Credits)
	assert.Equal(t, 1, u.TotalInteractions)
}

func TestLedgerAwardUnknownAction(t *testing.T) {
	ledger, repo := newLedger()
	user := seedUser(t, repo, "bob123")

	res, err := ledger.Award(context.Background(), user.ID, Action("like"))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Reward)
	assert.Equal(t, 0, res.Credits)
}

func TestLedgerAwardUnknownUser(t *testing.T) {
	ledger, _ := newLedger()

	_, err := ledger.Award(context.Background(), uuid.New(), ActionView)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLedgerAwardPostRequiresID(t *testing.T) {
	ledger, repo := newLedger()
	user := seedUser(t, repo, "bob123")

	_, err := ledger.AwardPost(context.Background(), user.ID, ActionView, "")
	assert.ErrorIs(t, err, ErrEmptyPostID)

	res, err := ledger.AwardPost(context.Background(), user.ID, ActionView, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", res.PostID)
	assert.Equal(t, 1, res.Credits)
}

func TestLedgerSaveTwice(t *testing.T) {
	ledger, repo := newLedger()
	user := seedUser(t, repo, "bob123")
	ctx := context.Background()

	first, err := ledger.Save(ctx, user.ID, "p1")
	require.NoError(t, err)
	assert.True(t, first.Applied())
	assert.Equal(t, 3, first.Reward)
	assert.Equal(t, 3, first.Credits)

	second, err := ledger.Save(ctx, user.ID, "p1")
	require.NoError(t, err)
	assert.False(t, second.Applied())
	assert.Equal(t, OutcomeAlreadySaved, second.Outcome)
	assert.Equal(t, 0, second.Reward)
	assert.Equal(t, 3, second.Credits)

	saved, err := ledger.SavedPosts(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, saved)
}

func TestLedgerConcurrentSaves(t *testing.T) {
	ledger, repo := newLedger()
	user := seedUser(t, repo, "bob123")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.Save(context.Background(), user.ID, "p1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, balance(t, repo, user.ID))
}

func TestLedgerConcurrentAwards(t *testing.T) {
	ledger, repo := newLedger()
	user := seedUser(t, repo, "bob123")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.Award(context.Background(), user.ID, ActionView)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, balance(t, repo, user.ID))
}

func TestLedgerUnsaveKeepsBalance(t *testing.T) {
	ledger, repo := newLedger()
	user := seedUser(t, repo, "bob123")
	ctx := context.Background()

	_, err := ledger.Save(ctx, user.ID, "p1")
	require.NoError(t, err)

	res, err := ledger.Unsave(ctx, user.ID, "p1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeRemoved, res.Outcome)
	assert.Equal(t, 3, res.Credits)

	res, err = ledger.Unsave(ctx, user.ID, "never-saved")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Credits)

	saved, err := ledger.SavedPosts(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestLedgerSetBalance(t *testing.T) {
	ledger, repo := newLedger()
	user := seedUser(t, repo, "bob123")
	ctx := context.Background()

	_, err := ledger.SetBalance(ctx, user.ID, -1)
	assert.ErrorIs(t, err, ErrInvalidCredits)

	_, err = ledger.Award(ctx, user.ID, ActionReferral)
	require.NoError(t, err)

	u, err := ledger.SetBalance(ctx, user.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, u.Credits)
}
