package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/viewtube/backend/internal/database"
	"github.com/viewtube/backend/internal/metrics"
	"github.com/viewtube/backend/internal/models"
	"github.com/viewtube/backend/internal/util"
	"gorm.io/gorm/clause"
	"gorm.io/gorm"
)

// ToggleVideoLike toggles the requester's like on a video
// POST /api/v1/likes/toggle/v/:videoId
func (h *Handlers) ToggleVideoLike(c *gin.Context, actor *models.User) {
	h.toggleLike(c, actor, models.LikeTargetVideo, c.Param("videoId"))
}

// ToggleCommentLike toggles the requester's like on a comment
// POST /api/v1/likes/toggle/c/:commentId
func (h *Handlers) ToggleCommentLike(c *gin.Context, actor *models.User) {
	h.toggleLike(c, actor, models.LikeTargetComment, c.Param("commentId"))
}

// ToggleTweetLike toggles the requester's like on a tweet
// POST /api/v1/likes/toggle/t/:tweetId
func (h *Handlers) ToggleTweetLike(c *gin.Context, actor *models.User) {
	h.toggleLike(c, actor, models.LikeTargetTweet, c.Param("tweetId"))
}

// toggleLike removes the (user, target) like row if present, otherwise
// creates it. Delete-if-exists followed by an insert that defers to the
// unique index keeps concurrent toggles from racing into duplicates.
func (h *Handlers) toggleLike(c *gin.Context, actor *models.User, targetType models.LikeTargetType, targetID string) {
	if !util.IsValidID(targetID) {
		util.RespondBadRequest(c, "invalid "+string(targetType)+" id")
		return
	}

	m := metrics.Get()

	res := database.DB.
		Where("user_id = ? AND target_type = ? AND target_id = ?", actor.ID, targetType, targetID).
		Delete(&models.Like{})
	if res.Error != nil {
		util.RespondInternalError(c, "failed to toggle like")
		return
	}

	if res.RowsAffected > 0 {
		m.LikeTogglesTotal.WithLabelValues(string(targetType), "unliked").Inc()
		util.Respond(c, http.StatusOK, gin.H{"liked": false}, string(targetType)+" unliked successfully")
		return
	}

	like := models.Like{
		UserID:     actor.ID,
		TargetType: targetType,
		TargetID:   targetID,
	}
	if err := database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
		util.RespondInternalError(c, "failed to toggle like")
		return
	}

	m.LikeTogglesTotal.WithLabelValues(string(targetType), "liked").Inc()
	util.Respond(c, http.StatusCreated, gin.H{"liked": true, "like": like}, string(targetType)+" liked successfully")
}

// GetLikedVideos lists the videos the requester has liked
// GET /api/v1/likes/videos
func (h *Handlers) GetLikedVideos(c *gin.Context, actor *models.User) {
	page := util.ParsePagination(c)

	var videos []models.Video
	err := database.DB.
		Joins("JOIN likes ON likes.target_id = videos.id AND likes.target_type = ?", models.LikeTargetVideo).
		Where("likes.user_id = ?", actor.ID).
		Preload("Owner", func(db *gorm.DB) *gorm.DB {
			return db.Select(models.PublicProfileColumns)
		}).
		Order("likes.created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&videos).Error
	if err != nil {
		util.RespondInternalError(c, "failed to fetch liked videos")
		return
	}

	util.Respond(c, http.StatusOK, gin.H{
		"liked_videos": videos,
		"page":         page.Page,
		"limit":        page.Limit,
	}, "liked videos fetched successfully")
}
