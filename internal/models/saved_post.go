package models

import (
	"time"

	"github.com/google/uuid"
)

// SavedPost is one member of a user's saved-post set. The composite unique
// index keeps the set free of duplicates.
type SavedPost struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_posts_user_post" json:"-"`
	PostID    string    `gorm:"size:255;not null;uniqueIndex:idx_saved_posts_user_post" json:"post_id"`
	CreatedAt time.Time `json:"saved_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}
