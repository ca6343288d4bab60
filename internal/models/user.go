package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered account. Other entities reference users but
// never own them.
type User struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	FullName string `gorm:"not null" json:"full_name"`

	PasswordHash string  `gorm:"type:text;not null" json:"-"`
	RefreshToken *string `gorm:"type:text" json:"-"`

	AvatarURL     string `json:"avatar_url"`
	CoverImageURL string `json:"cover_image_url"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a UUID primary key when none is set
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// PublicProfileColumns is the field allowlist applied when joining a user
// into another entity's response.
var PublicProfileColumns = []string{"id", "username", "full_name", "avatar_url"}

// WatchHistoryEntry records that a user watched a video. Membership is a
// set: the (user, video) pair is unique, re-watching does not add rows.
type WatchHistoryEntry struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID  string `gorm:"not null;uniqueIndex:idx_watch_history_user_video" json:"user_id"`
	VideoID string `gorm:"not null;uniqueIndex:idx_watch_history_user_video;type:uuid" json:"video_id"`
	Video   Video  `gorm:"foreignKey:VideoID" json:"video,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (WatchHistoryEntry) TableName() string {
	return "watch_history"
}

func (w *WatchHistoryEntry) BeforeCreate(*gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
