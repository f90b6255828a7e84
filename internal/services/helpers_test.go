package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/creatordash/internal/models"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repo repository.UserRepository, username string) *models.User {
	t.Helper()
	user := &models.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		Role:     models.RoleUser,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func balance(t *testing.T, repo repository.UserRepository, id uuid.UUID) int {
	t.Helper()
	u, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	return u.Credits
}
