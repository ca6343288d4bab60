package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LikeTargetType tags what kind of entity a like points at
type LikeTargetType string

const (
	LikeTargetVideo   LikeTargetType = "video"
	LikeTargetComment LikeTargetType = "comment"
	LikeTargetTweet   LikeTargetType = "tweet"
)

// Like is a join row: its existence means "user liked target". The unique
// index on (user, target) makes concurrent toggles collapse into at most
// one row instead of racing into duplicates.
type Like struct {
	ID         string         `gorm:"primaryKey;type:uuid" json:"id"`
	UserID     string         `gorm:"not null;type:uuid;uniqueIndex:idx_likes_user_target" json:"liked_by"`
	User       User           `gorm:"foreignKey:UserID" json:"-"`
	TargetType LikeTargetType `gorm:"not null;uniqueIndex:idx_likes_user_target" json:"target_type"`
	TargetID   string         `gorm:"not null;type:uuid;uniqueIndex:idx_likes_user_target" json:"target_id"`

	CreatedAt time.Time `json:"created_at"`
}

func (l *Like) BeforeCreate(*gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
