package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Video represents published media metadata, owned by exactly one user.
// The media files themselves live on the external host; only URLs are stored.
type Video struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	OwnerID string `gorm:"not null;index;type:uuid" json:"owner_id"`
	Owner   User   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	VideoURL     string  `gorm:"not null" json:"video_url"`
	ThumbnailURL string  `json:"thumbnail_url"`
	Duration     float64 `json:"duration"` // seconds

	ViewCount   int64 `gorm:"default:0" json:"view_count"`
	IsPublished bool  `gorm:"default:true" json:"is_published"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (v *Video) BeforeCreate(*gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
