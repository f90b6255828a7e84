package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the persisted account record. Secrets and platform tokens are
// never serialized.
type User struct {
	ID                 uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username           string     `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email              string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password           string     `gorm:"not null" json:"-"`
	Role               string     `gorm:"size:20;not null;default:'user';index" json:"role"`
	Credits            int        `gorm:"not null;default:0;check:credits >= 0" json:"credits"`
	TotalInteractions  int        `gorm:"not null;default:0;check:total_interactions >= 0" json:"total_interactions"`
	RedditAccessToken  *string    `gorm:"type:text" json:"-"`
	RedditRefreshToken *string    `gorm:"type:text" json:"-"`
	RedditTokenExpiry  *time.Time `json:"-"`
	LastLoginAt        *time.Time `json:"last_login_at,omitempty"`
	ReferredBy         *uuid.UUID `gorm:"type:uuid" json:"-"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// RedditConnected reports whether an OAuth exchange has stored a token.
func (u *User) RedditConnected() bool {
	return u.RedditAccessToken != nil && *u.RedditAccessToken != ""
}
