package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Playlist is a named, user-owned collection of videos. Name uniqueness per
// owner is enforced by the database index rather than a pre-create lookup.
type Playlist struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	OwnerID string `gorm:"not null;type:uuid;uniqueIndex:idx_playlists_owner_name" json:"owner_id"`
	Owner   User   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	Name        string `gorm:"not null;uniqueIndex:idx_playlists_owner_name" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	Videos []PlaylistVideo `gorm:"foreignKey:PlaylistID" json:"videos,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Playlist) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PlaylistVideo records playlist membership. Unique (playlist, video) keeps
// membership a set.
type PlaylistVideo struct {
	ID         string `gorm:"primaryKey;type:uuid" json:"id"`
	PlaylistID string `gorm:"not null;type:uuid;uniqueIndex:idx_playlist_videos_unique" json:"playlist_id"`
	VideoID    string `gorm:"not null;type:uuid;uniqueIndex:idx_playlist_videos_unique" json:"video_id"`
	Video      Video  `gorm:"foreignKey:VideoID" json:"video,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (pv *PlaylistVideo) BeforeCreate(*gorm.DB) error {
	if pv.ID == "" {
		pv.ID = uuid.NewString()
	}
	return nil
}
