package models

import (
	"time"
)

// Profile associates a user with at most one profile image. The row is
// created on first image set and updated in place afterwards; it is never
// deleted by the application.
type Profile struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	StorageKey string    `json:"storage_key"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
