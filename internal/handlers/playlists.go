package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/viewtube/backend/internal/database"
	apierrors "github.com/viewtube/backend/internal/errors"
	"github.com/viewtube/backend/internal/models"
	"github.com/viewtube/backend/internal/util"
	"gorm.io/gorm/clause"
	"gorm.io/gorm"
)

// CreatePlaylist creates a playlist owned by the requester. Per-owner name
// uniqueness is enforced by the database index, not a pre-create lookup.
// POST /api/v1/playlists
func (h *Handlers) CreatePlaylist(c *gin.Context, actor *models.User) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		util.RespondBadRequest(c, "name is required")
		return
	}

	playlist := models.Playlist{
		OwnerID:     actor.ID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
	}

	if err := database.DB.Create(&playlist).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.RespondWithAPIError(c, apierrors.AlreadyExists("playlist with this name"))
			return
		}
		util.RespondInternalError(c, "failed to create playlist")
		return
	}

	util.Respond(c, http.StatusCreated, playlist, "playlist created successfully")
}

// GetUserPlaylists lists a user's playlists
// GET /api/v1/playlists/user/:userId
func (h *Handlers) GetUserPlaylists(c *gin.Context, _ *models.User) {
	userID := c.Param("userId")
	if !util.IsValidID(userID) {
		util.RespondBadRequest(c, "invalid userId")
		return
	}

	page := util.ParsePagination(c)

	var playlists []models.Playlist
	err := database.DB.
		Where("owner_id = ?", userID).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&playlists).Error
	if err != nil {
		util.RespondInternalError(c, "failed to fetch playlists")
		return
	}

	util.Respond(c, http.StatusOK, gin.H{
		"playlists": playlists,
		"page":      page.Page,
		"limit":     page.Limit,
	}, "user playlists fetched successfully")
}

// GetPlaylist fetches a playlist with its videos
// GET /api/v1/playlists/:playlistId
func (h *Handlers) GetPlaylist(c *gin.Context, _ *models.User) {
	playlistID := c.Param("playlistId")
	if !util.IsValidID(playlistID) {
		util.RespondBadRequest(c, "invalid playlistId")
		return
	}

	var playlist models.Playlist
	err := database.DB.
		Preload("Owner", preloadOwner).
		Preload("Videos.Video").
		Preload("Videos.Video.Owner", preloadOwner).
		First(&playlist, "id = ?", playlistID).Error
	if util.HandleDBError(c, err, "playlist") {
		return
	}

	util.Respond(c, http.StatusOK, playlist, "playlist fetched successfully")
}

// UpdatePlaylist applies a partial update to name and description. Owner
// only; blank fields keep their previous value; all blank is a no-op error.
// PATCH /api/v1/playlists/:playlistId
func (h *Handlers) UpdatePlaylist(c *gin.Context, actor *models.User) {
	playlist, ok := h.ownedPlaylist(c, actor)
	if !ok {
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	if name == "" && description == "" {
		util.RespondBadRequest(c, "nothing to update")
		return
	}

	updates := map[string]interface{}{
		"name":        playlist.Name,
		"description": playlist.Description,
	}
	if name != "" {
		updates["name"] = name
	}
	if description != "" {
		updates["description"] = description
	}

	if err := database.DB.Model(playlist).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.RespondWithAPIError(c, apierrors.AlreadyExists("playlist with this name"))
			return
		}
		util.RespondInternalError(c, "failed to update playlist")
		return
	}

	util.Respond(c, http.StatusOK, gin.H{"playlist": playlist}, "playlist updated successfully")
}

// DeletePlaylist removes a playlist and its membership rows. Owner only.
// DELETE /api/v1/playlists/:playlistId
func (h *Handlers) DeletePlaylist(c *gin.Context, actor *models.User) {
	playlist, ok := h.ownedPlaylist(c, actor)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", playlist.ID).Delete(&models.PlaylistVideo{}).Error; err != nil {
			return err
		}
		return tx.Delete(playlist).Error
	})
	if err != nil {
		util.RespondInternalError(c, "failed to delete playlist")
		return
	}

	util.Respond(c, http.StatusOK, gin.H{}, "playlist deleted successfully")
}

// AddVideoToPlaylist set-inserts a video into a playlist. Owner only.
// PATCH /api/v1/playlists/add/:videoId/:playlistId
func (h *Handlers) AddVideoToPlaylist(c *gin.Context, actor *models.User) {
	videoID := c.Param("videoId")
	if !util.IsValidID(videoID) {
		util.RespondBadRequest(c, "invalid videoId")
		return
	}

	playlist, ok := h.ownedPlaylist(c, actor)
	if !ok {
		return
	}

	var video models.Video
	if err := database.DB.Select("id").First(&video, "id = ?", videoID).Error; err != nil {
		util.RespondNotFound(c, "video")
		return
	}

	entry := models.PlaylistVideo{
		PlaylistID: playlist.ID,
		VideoID:    videoID,
	}
	if err := database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error; err != nil {
		util.RespondInternalError(c, "failed to add video to playlist")
		return
	}

	util.Respond(c, http.StatusOK, gin.H{"playlist_id": playlist.ID, "video_id": videoID},
		"video added to playlist successfully")
}

// RemoveVideoFromPlaylist removes a video from a playlist. Owner only.
// PATCH /api/v1/playlists/remove/:videoId/:playlistId
func (h *Handlers) RemoveVideoFromPlaylist(c *gin.Context, actor *models.User) {
	videoID := c.Param("videoId")
	if !util.IsValidID(videoID) {
		util.RespondBadRequest(c, "invalid videoId")
		return
	}

	playlist, ok := h.ownedPlaylist(c, actor)
	if !ok {
		return
	}

	err := database.DB.
		Where("playlist_id = ? AND video_id = ?", playlist.ID, videoID).
		Delete(&models.PlaylistVideo{}).Error
	if err != nil {
		util.RespondInternalError(c, "failed to remove video from playlist")
		return
	}

	util.Respond(c, http.StatusOK, gin.H{"playlist_id": playlist.ID, "video_id": videoID},
		"video removed from playlist successfully")
}

// ownedPlaylist fetches the :playlistId playlist and verifies ownership.
// On failure it writes the response and returns ok=false.
func (h *Handlers) ownedPlaylist(c *gin.Context, actor *models.User) (*models.Playlist, bool) {
	playlistID := c.Param("playlistId")
	if !util.IsValidID(playlistID) {
		util.RespondBadRequest(c, "invalid playlistId")
		return nil, false
	}

	var playlist models.Playlist
	if err := database.DB.First(&playlist, "id = ?", playlistID).Error; err != nil {
		util.RespondNotFound(c, "playlist")
		return nil, false
	}

	if playlist.OwnerID != actor.ID {
		util.RespondForbidden(c)
		return nil, false
	}

	return &playlist, true
}
