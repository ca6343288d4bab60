package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscription is a join row: subscriber follows channel. Unique
// (subscriber, channel) guards the toggle against duplicate rows.
// A user never subscribes to themselves; handlers reject that before
// touching storage.
type Subscription struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	SubscriberID string `gorm:"not null;type:uuid;uniqueIndex:idx_subscriptions_pair" json:"subscriber_id"`
	Subscriber   User   `gorm:"foreignKey:SubscriberID" json:"subscriber,omitempty"`
	ChannelID    string `gorm:"not null;type:uuid;uniqueIndex:idx_subscriptions_pair" json:"channel_id"`
	Channel      User   `gorm:"foreignKey:ChannelID" json:"channel,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (s *Subscription) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
