package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommentTargetType tags what kind of entity a comment is attached to
type CommentTargetType string

const (
	CommentTargetVideo CommentTargetType = "video"
	CommentTargetTweet CommentTargetType = "tweet"
)

// CommentTarget is a tagged reference to the single entity a comment hangs
// off. Building it through VideoTarget/TweetTarget keeps the
// one-target-only invariant structural instead of convention-based.
type CommentTarget struct {
	Type CommentTargetType `gorm:"column:target_type;not null;index:idx_comments_target" json:"type"`
	ID   string            `gorm:"column:target_id;type:uuid;not null;index:idx_comments_target" json:"id"`
}

// VideoTarget builds a comment target pointing at a video
func VideoTarget(videoID string) CommentTarget {
	return CommentTarget{Type: CommentTargetVideo, ID: videoID}
}

// TweetTarget builds a comment target pointing at a tweet
func TweetTarget(tweetID string) CommentTarget {
	return CommentTarget{Type: CommentTargetTweet, ID: tweetID}
}

// Comment is text content owned by one user and attached to exactly one
// video or tweet.
type Comment struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	OwnerID string `gorm:"not null;index;type:uuid" json:"owner_id"`
	Owner   User   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	Content string        `gorm:"type:text;not null" json:"content"`
	Target  CommentTarget `gorm:"embedded" json:"target"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Comment) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Reply is text content owned by one user and attached to one comment
type Reply struct {
	ID        string  `gorm:"primaryKey;type:uuid" json:"id"`
	CommentID string  `gorm:"not null;index;type:uuid" json:"comment_id"`
	Comment   Comment `gorm:"foreignKey:CommentID" json:"-"`
	OwnerID   string  `gorm:"not null;index;type:uuid" json:"owner_id"`
	Owner     User    `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	Content string `gorm:"type:text;not null" json:"content"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Reply) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
