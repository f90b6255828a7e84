package dto

import "github.com/google/uuid"

type UpdateProfileRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

type UpdateCreditsRequest struct {
	Credits *int `json:"credits" validate:"required,gte=0"`
}

type CreditsResponse struct {
	Credits int `json:"credits"`
}

type ProfileUpdateResponse struct {
	User         UserResponse `json:"user"`
	CreditReward int          `json:"credit_reward"`
	Credits      int          `json:"credits"`
}

type AdminCreditsResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Credits  int       `json:"credits"`
}
