package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/creatordash/internal/dto"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/models"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/repository"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/validation"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidReferral    = errors.New("invalid referral code")
	ErrDuplicateUser      = repository.ErrDuplicateUser
)

type AuthService struct {
	users      repository.UserRepository
	ledger     *Ledger
	tokens     *TokenIssuer
	bcryptCost int
	dummyHash  []byte
	now        func() time.Time
}

func NewAuthService(users repository.UserRepository, ledger *Ledger, tokens *TokenIssuer, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	// Login compares against dummy when the email is unknown.
	dummy, err := bcrypt.GenerateFromPassword([]byte("creatordash-unknown-user"), bcryptCost)
	if err != nil {
		panic(fmt.Sprintf("auth: hash dummy password: %v", err))
	}

	return &AuthService{
		users:      users,
		ledger:     ledger,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
		now:        time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = normalizeEmail(req.Email)
	req.ReferralCode = strings.TrimSpace(req.ReferralCode)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	var referrer *models.User
	if req.ReferralCode != "" {
		r, err := s.users.FindByUsername(ctx, req.ReferralCode)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return nil, ErrInvalidReferral
			}
			return nil, err
		}
		referrer = r
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		Role:     models.RoleUser,
	}
	if referrer != nil {
		user.ReferredBy = &referrer.ID
	}

	if err := s.users.Create(ctx, &user); err != nil {
		return nil, err
	}

	if referrer != nil {
		if _, err := s.ledger.Award(ctx, referrer.ID, ActionReferral); err != nil {
			slog.Error("referral reward failed", "user_id", referrer.ID.String(), "error", err)
		}
	}

	return s.authResponse(&user, 0)
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now().UTC()
	first, err := s.users.RecordLogin(ctx, user.ID, now)
	if err != nil {
		return nil, err
	}
	user.LastLoginAt = &now

	reward := 0
	if first {
		res, err := s.ledger.Award(ctx, user.ID, ActionDailyLogin)
		if err != nil {
			return nil, err
		}
		reward = res.Reward
		user.Credits = res.Credits
	}

	return s.authResponse(user, reward)
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) authResponse(user *models.User, dailyReward int) (*dto.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token:       token,
		User:        dto.NewUserResponse(user),
		DailyReward: dailyReward,
	}, nil
}
