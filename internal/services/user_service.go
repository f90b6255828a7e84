package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ahmetcoskunkizilkaya/creatordash/internal/dto"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/models"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/repository"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/validation"
	"github.com/google/uuid"
)

type UserService struct {
	users  repository.UserRepository
	ledger *Ledger
}

func NewUserService(users repository.UserRepository, ledger *Ledger) *UserService {
	return &UserService{users: users, ledger: ledger}
}

func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.users.FindByID(ctx, userID)
}

// UpdateProfile applies the changed fields and awards profile_update when
// at least one field actually changed. It returns the updated user and the
// reward granted.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.User, int, error) {
	if req.Username != nil {
		trimmed := strings.TrimSpace(*req.Username)
		req.Username = &trimmed
	}
	if req.Email != nil {
		normalized := normalizeEmail(*req.Email)
		req.Email = &normalized
	}
	if err := validation.Struct(req); err != nil {
		return nil, 0, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	var changes repository.ProfileChanges
	if req.Username != nil && *req.Username != user.Username {
		if err := s.ensureFree(ctx, userID, s.users.FindByUsername, *req.Username, ErrUsernameTaken); err != nil {
			return nil, 0, err
		}
		changes.Username = req.Username
	}
	if req.Email != nil && *req.Email != user.Email {
		if err := s.ensureFree(ctx, userID, s.users.FindByEmail, *req.Email, ErrEmailTaken); err != nil {
			return nil, 0, err
		}
		changes.Email = req.Email
	}

	if changes.Username == nil && changes.Email == nil {
		return user, 0, nil
	}

	updated, err := s.users.UpdateProfile(ctx, userID, changes)
	if err != nil {
		return nil, 0, err
	}

	res, err := s.ledger.Award(ctx, userID, ActionProfileUpdate)
	if err != nil {
		return nil, 0, err
	}
	updated.Credits = res.Credits
	return updated, res.Reward, nil
}

func (s *UserService) ensureFree(ctx context.Context, userID uuid.UUID, find func(context.Context, string) (*models.User, error), value string, taken error) error {
	other, err := find(ctx, value)
	if err == nil {
		if other.ID != userID {
			return taken
		}
		return nil
	}
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil
	}
	return err
}

func (s *UserService) Credits(ctx context.Context, userID uuid.UUID) (int, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.Credits, nil
}

// List returns every user, newest first.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) SetCredits(ctx context.Context, userID uuid.UUID, credits int) (*models.User, error) {
	return s.ledger.SetBalance(ctx, userID, credits)
}
