package models

import (
	"time"

	"gorm.io/gorm"
)

// Image represents an image post, original or repost.
//
// A repost shares the origin's storage object: StorageKey is copied from the
// origin and deleting the repost must never delete the object. CommentCount
// and ShareCount are stored denormalized counters maintained by atomic
// increments alongside the triggering write.
type Image struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	User        User   `gorm:"foreignKey:UserID" json:"-"`
	StorageKey  string `gorm:"not null;index" json:"storage_key"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Contact     string `json:"contact,omitempty"`
	Location    string `json:"location,omitempty"`

	CommentCount int `gorm:"not null;default:0" json:"comment_count"`
	ShareCount   int `gorm:"not null;default:0" json:"share_count"`

	IsRepost        bool   `gorm:"not null;default:false" json:"is_repost"`
	OriginalImageID *uint  `gorm:"index" json:"original_image_id,omitempty"`
	RepostNote      string `json:"repost_note,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
