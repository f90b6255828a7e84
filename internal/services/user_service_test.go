package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/creatordash/internal/dto"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService() (*UserService, *repository.MemoryUserRepository) {
	repo := repository.NewMemoryUserRepository()
	return NewUserService(repo, NewLedger(repo, DefaultRewardPolicy())), repo
}

func strPtr(s string) *string { return &s }

func TestUpdateProfileAwardsOnChange(t *testing.T) {
	svc, repo := newUserService()
	user := seedUser(t, repo, "bob123")

	updated, reward, err := svc.UpdateProfile(context.Background(), user.ID, &dto.UpdateProfileRequest{Username: strPtr("bobby")})
	require.NoError(t, err)
	assert.Equal(t, 10, reward)
	assert.Equal(t, "bobby", updated.Username)
	assert.Equal(t, 10, updated.Credits)
}

func TestUpdateProfileNoChange(t *testing.T) {
	svc, repo := newUserService()
	user := seedUser(t, repo, "bob123")

	_, reward, err := svc.UpdateProfile(context.Background(), user.ID, &dto.UpdateProfileRequest{
		Username: strPtr("bob123"),
		Email:    strPtr("BOB123@example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, reward)
	assert.Equal(t, 0, balance(t, repo, user.ID))
}

func TestUpdateProfileConflicts(t *testing.T) {
	svc, repo := newUserService()
	user := seedUser(t, repo, "bob123")
	seedUser(t, repo, "alice1")

	_, _, err := svc.UpdateProfile(context.Background(), user.ID, &dto.UpdateProfileRequest{Username: strPtr("alice1")})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, _, err = svc.UpdateProfile(context.Background(), user.ID, &dto.UpdateProfileRequest{Email: strPtr("alice1@example.com")})
	assert.ErrorIs(t, err, ErrEmailTaken)

	assert.Equal(t, 0, balance(t, repo, user.ID))
}

func TestCreditsAndAdminOverride(t *testing.T) {
	svc, repo := newUserService()
	user := seedUser(t, repo, "bob123")
	seedUser(t, repo, "alice1")

	_, err := svc.SetCredits(context.Background(), user.ID, 42)
	require.NoError(t, err)

	credits, err := svc.Credits(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 42, credits)

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
