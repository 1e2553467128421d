package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on an image. Comments are append-only and are
// removed in bulk when their parent image is deleted.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ImageID   uint           `gorm:"not null;index" json:"image_id"`
	UserID    uint           `gorm:"not null" json:"user_id"`
	Text      string         `gorm:"not null" json:"text"`
	User      User           `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
