package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/creatordash/internal/models"
	"github.com/google/uuid"
)

type RegisterRequest struct {
	Username     string `json:"username" validate:"required,min=3"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	ReferralCode string `json:"referral_code,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token       string       `json:"token"`
	User        UserResponse `json:"user"`
	DailyReward int          `json:"daily_reward,omitempty"`
}

// UserResponse is the outbound view of a user; it never carries secrets.
type UserResponse struct {
	ID                uuid.UUID  `json:"id"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	Role              string     `json:"role"`
	Credits           int        `json:"credits"`
	TotalInteractions int        `json:"total_interactions"`
	RedditConnected   bool       `json:"reddit_connected"`
	LastLoginAt       *time.Time `json:"last_login_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:                u.ID,
		Username:          u.Username,
		Email:             u.Email,
		Role:              u.Role,
		Credits:           u.Credits,
		TotalInteractions: u.TotalInteractions,
		RedditConnected:   u.RedditConnected(),
		LastLoginAt:       u.LastLoginAt,
		CreatedAt:         u.CreatedAt,
	}
}

// SuccessResponse wraps every successful payload.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

func OK(data interface{}) SuccessResponse {
	return SuccessResponse{Success: true, Data: data}
}

func Fail(message string) ErrorResponse {
	return ErrorResponse{Success: false, Error: message}
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Store     string `json:"store"`
}
