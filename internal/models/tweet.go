package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tweet is a short text post, owned by exactly one user
type Tweet struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	OwnerID string `gorm:"not null;index;type:uuid" json:"owner_id"`
	Owner   User   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	Content string `gorm:"type:text;not null" json:"content"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Tweet) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
