package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/viewtube/backend/internal/auth"
	"github.com/viewtube/backend/internal/database"
	"github.com/viewtube/backend/internal/models"
	"github.com/viewtube/backend/internal/util"
	"gorm.io/gorm"
)

// UpdateAccount applies a partial update to profile fields. Each field
// falls back to its previous value when absent or blank after trimming;
// a request where every field is blank is rejected as a no-op.
// PATCH /api/v1/users/update-account
func (h *Handlers) UpdateAccount(c *gin.Context, actor *models.User) {
	var req struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	fullName := strings.TrimSpace(req.FullName)
	email := strings.TrimSpace(req.Email)
	if fullName == "" && email == "" {
		util.RespondBadRequest(c, "nothing to update")
		return
	}

	updates := map[string]interface{}{
		"full_name": actor.FullName,
		"email":     actor.Email,
	}
	if fullName != "" {
		updates["full_name"] = fullName
	}
	if email != "" {
		updates["email"] = strings.ToLower(email)
	}

	if err := database.DB.Model(actor).Updates(updates).Error; err != nil {
		util.RespondInternalError(c, "failed to update account")
		return
	}

	util.Respond(c, http.StatusOK, actor, "account updated successfully")
}

// ChangePassword verifies the old password before storing the new one
// POST /api/v1/users/change-password
func (h *Handlers) ChangePassword(c *gin.Context, actor *models.User) {
	var req struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	err := h.auth.ChangePassword(actor, req.OldPassword, req.NewPassword)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		util.RespondUnauthorized(c, "old password is incorrect")
		return
	} else if err != nil {
		util.RespondInternalError(c, "failed to change password")
		return
	}

	util.Respond(c, http.StatusOK, gin.H{}, "password changed successfully")
}

// GetWatchHistory lists the videos the user has watched, newest first
// GET /api/v1/users/history
func (h *Handlers) GetWatchHistory(c *gin.Context, actor *models.User) {
	page := util.ParsePagination(c)

	var entries []models.WatchHistoryEntry
	err := database.DB.
		Preload("Video").
		Preload("Video.Owner", func(db *gorm.DB) *gorm.DB {
			return db.Select(models.PublicProfileColumns)
		}).
		Where("user_id = ?", actor.ID).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&entries).Error
	if err != nil {
		util.RespondInternalError(c, "failed to fetch watch history")
		return
	}

	util.Respond(c, http.StatusOK, gin.H{
		"history": entries,
		"page":    page.Page,
		"limit":   page.Limit,
	}, "watch history fetched successfully")
}

// GetChannelProfile returns a channel's public profile with subscriber
// counts and whether the requester is subscribed
// GET /api/v1/users/c/:username
func (h *Handlers) GetChannelProfile(c *gin.Context, actor *models.User) {
	username := c.Param("username")

	var channel models.User
	err := database.DB.
		Select(append([]string{"created_at"}, models.PublicProfileColumns...)).
		Where("LOWER(username) = LOWER(?)", username).
		First(&channel).Error
	if util.HandleDBError(c, err, "channel") {
		return
	}

	var subscriberCount, subscribedToCount int64
	database.DB.Model(&models.Subscription{}).Where("channel_id = ?", channel.ID).Count(&subscriberCount)
	database.DB.Model(&models.Subscription{}).Where("subscriber_id = ?", channel.ID).Count(&subscribedToCount)

	var isSubscribed bool
	var existing models.Subscription
	if err := database.DB.Where("subscriber_id = ? AND channel_id = ?", actor.ID, channel.ID).
		First(&existing).Error; err == nil {
		isSubscribed = true
	}

	util.Respond(c, http.StatusOK, gin.H{
		"channel":             channel,
		"subscriber_count":    subscriberCount,
		"subscribed_to_count": subscribedToCount,
		"is_subscribed":       isSubscribed,
	}, "channel profile fetched successfully")
}
