package handlers

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/viewtube/backend/internal/database"
	"github.com/viewtube/backend/internal/errors"
	"github.com/viewtube/backend/internal/logger"
	"github.com/viewtube/backend/internal/metrics"
	"github.com/viewtube/backend/internal/models"
	"github.com/viewtube/backend/internal/util"
	"go.uber.org/zap"
	"gorm.io/gorm/clause"
	"gorm.io/gorm"
)

// videoSortColumns is the whitelist of sortable columns
var videoSortColumns = map[string]string{
	"created_at": "created_at",
	"title":      "title",
	"duration":   "duration",
	"views":      "view_count",
}

// VideoFilter is the typed filter for video listings. Each field is
// validated independently before being applied.
type VideoFilter struct {
	Search     string
	OwnerID    string
	SortColumn string
	SortDesc   bool
	Page       util.Pagination
}

// parseVideoFilter reads and validates listing query parameters
func parseVideoFilter(c *gin.Context) (*VideoFilter, *errors.APIError) {
	f := &VideoFilter{
		Search: strings.TrimSpace(c.Query("query")),
		Page:   util.ParsePagination(c),
	}

	if ownerID := c.Query("userId"); ownerID != "" {
		if !util.IsValidID(ownerID) {
			return nil, errors.BadRequest("invalid userId")
		}
		f.OwnerID = ownerID
	}

	sortBy := c.DefaultQuery("sortBy", "created_at")
	column, ok := videoSortColumns[sortBy]
	if !ok {
		return nil, errors.BadRequest("invalid sortBy, must be one of: created_at, title, duration, views")
	}
	f.SortColumn = column

	switch c.DefaultQuery("sortType", "desc") {
	case "asc", "1":
		f.SortDesc = false
	case "desc", "-1":
		f.SortDesc = true
	default:
		return nil, errors.BadRequest("invalid sortType, must be asc or desc")
	}

	return f, nil
}

// Apply builds the filtered, sorted, paginated query
func (f *VideoFilter) Apply(db *gorm.DB) *gorm.DB {
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		db = db.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if f.OwnerID != "" {
		db = db.Where("owner_id = ?", f.OwnerID)
	}

	direction := "ASC"
	if f.SortDesc {
		direction = "DESC"
	}
	return db.Order(f.SortColumn + " " + direction).
		Offset(f.Page.Offset()).
		Limit(f.Page.Limit)
}

// ListVideos returns a filtered, sorted, paginated page of videos
// GET /api/v1/videos
func (h *Handlers) ListVideos(c *gin.Context, _ *models.User) {
	filter, apiErr := parseVideoFilter(c)
	if apiErr != nil {
		util.RespondWithAPIError(c, apiErr)
		return
	}

	var videos []models.Video
	err := filter.Apply(database.DB.Model(&models.Video{})).
		Preload("Owner", func(db *gorm.DB) *gorm.DB {
			return db.Select(models.PublicProfileColumns)
		}).
		Find(&videos).Error
	if err != nil {
		util.RespondInternalError(c, "failed to fetch videos")
		return
	}

	util.Respond(c, http.StatusOK, gin.H{
		"videos": videos,
		"page":   filter.Page.Page,
		"limit":  filter.Page.Limit,
	}, "videos fetched successfully")
}

// PublishVideo uploads a video and its thumbnail and creates the record.
// Both multipart files are required. A failed video upload aborts the
// operation; a failed thumbnail upload is tolerated and stored empty.
// POST /api/v1/videos
func (h *Handlers) PublishVideo(c *gin.Context, actor *models.User) {
	m := metrics.Get()

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		util.RespondBadRequest(c, "title is required")
		return
	}
	description := strings.TrimSpace(c.PostForm("description"))

	videoFile, err := c.FormFile("videoFile")
	if err != nil {
		util.RespondBadRequest(c, "video and thumbnail files are required")
		return
	}
	thumbnailFile, err := c.FormFile("thumbnail")
	if err != nil {
		util.RespondBadRequest(c, "video and thumbnail files are required")
		return
	}

	videoPath, err := util.SaveUploadedFile(videoFile)
	if err != nil {
		util.RespondInternalError(c, "failed to save uploaded video")
		return
	}
	defer os.Remove(videoPath)

	thumbnailPath, err := util.SaveUploadedFile(thumbnailFile)
	if err != nil {
		util.RespondInternalError(c, "failed to save uploaded thumbnail")
		return
	}
	defer os.Remove(thumbnailPath)

	ctx := c.Request.Context()

	duration, err := h.probeDuration(ctx, videoPath)
	if err != nil {
		logger.WarnWithError("failed to probe video duration", err)
	}

	videoResult, err := h.uploader.UploadFile(ctx, videoPath, actor.ID, "video")
	if err != nil {
		m.VideoUploadsTotal.WithLabelValues("failed").Inc()
		logger.ErrorWithError("video upload failed", err)
		util.RespondWithAPIError(c, errors.ServiceUnavailable("media host"))
		return
	}

	thumbnailURL := ""
	if thumbnailResult, err := h.uploader.UploadFile(ctx, thumbnailPath, actor.ID, "thumbnail"); err != nil {
		logger.WarnWithError("thumbnail upload failed, storing empty URL", err)
	} else {
		thumbnailURL = thumbnailResult.URL
	}

	video := models.Video{
		OwnerID:      actor.ID,
		Title:        title,
		Description:  description,
		VideoURL:     videoResult.URL,
		ThumbnailURL: thumbnailURL,
		Duration:     duration,
		IsPublished:  true,
	}

	if err := database.DB.Create(&video).Error; err != nil {
		m.VideoUploadsTotal.WithLabelValues("failed").Inc()
		util.RespondInternalError(c, "failed to create video")
		return
	}

	m.VideoUploadsTotal.WithLabelValues("success").Inc()
	logger.Info("video published",
		logger.WithUserID(actor.ID),
		logger.WithVideoID(video.ID),
		zap.Float64("duration", duration),
	)

	util.Respond(c, http.StatusCreated, gin.H{"video": video}, "video published successfully")
}

// GetVideo fetches a single video by id
// GET /api/v1/videos/:videoId
func (h *Handlers) GetVideo(c *gin.Context, _ *models.User) {
	videoID := c.Param("videoId")
	if !util.IsValidID(videoID) {
		util.RespondBadRequest(c, "invalid videoId")
		return
	}

	var video models.Video
	err := database.DB.
		Preload("Owner", func(db *gorm.DB) *gorm.DB {
			return db.Select(models.PublicProfileColumns)
		}).
		First(&video, "id = ?", videoID).Error
	if util.HandleDBError(c, err, "video") {
		return
	}

	util.Respond(c, http.StatusOK, video, "video fetched successfully")
}

// WatchVideo registers a watch event: the view counter is incremented
// unconditionally and the video is set-inserted into the viewer's history.
// GET /api/v1/videos/:videoId/watch
func (h *Handlers) WatchVideo(c *gin.Context, actor *models.User) {
	videoID := c.Param("videoId")
	if !util.IsValidID(videoID) {
		util.RespondBadRequest(c, "invalid videoId")
		return
	}

	var video models.Video
	if err := database.DB.First(&video, "id = ?", videoID).Error; err != nil {
		util.RespondNotFound(c, "video")
		return
	}

	if err := database.DB.Model(&video).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
		util.RespondInternalError(c, "failed to record view")
		return
	}

	entry := models.WatchHistoryEntry{UserID: actor.ID, VideoID: videoID}
	if err := database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error; err != nil {
		logger.WarnWithError("failed to record watch history", err)
	}

	metrics.Get().VideoViewsTotal.Inc()

	// Reload to return the updated counter
	database.DB.First(&video, "id = ?", videoID)
	util.Respond(c, http.StatusOK, video, "watch event recorded successfully")
}

// UpdateVideo applies a partial update to title, description and thumbnail.
// Owner only; blank fields keep their previous value; all blank is a no-op
// error.
// PATCH /api/v1/videos/:videoId
func (h *Handlers) UpdateVideo(c *gin.Context, actor *models.User) {
	videoID := c.Param("videoId")
	if !util.IsValidID(videoID) {
		util.RespondBadRequest(c, "invalid videoId")
		return
	}

	var video models.Video
	if err := database.DB.First(&video, "id = ?", videoID).Error; err != nil {
		util.RespondNotFound(c, "video")
		return
	}

	if video.OwnerID != actor.ID {
		util.RespondForbidden(c)
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	description := strings.TrimSpace(c.PostForm("description"))

	thumbnailURL := ""
	if thumbnailFile, err := c.FormFile("thumbnail"); err == nil {
		thumbnailPath, err := util.SaveUploadedFile(thumbnailFile)
		if err != nil {
			util.RespondInternalError(c, "failed to save uploaded thumbnail")
			return
		}
		defer os.Remove(thumbnailPath)

		result, err := h.uploader.UploadFile(c.Request.Context(), thumbnailPath, actor.ID, "thumbnail")
		if err != nil {
			util.RespondWithAPIError(c, errors.ServiceUnavailable("media host"))
			return
		}
		thumbnailURL = result.URL
	}

	if title == "" && description == "" && thumbnailURL == "" {
		util.RespondBadRequest(c, "nothing to update")
		return
	}

	updates := map[string]interface{}{
		"title":         video.Title,
		"description":   video.Description,
		"thumbnail_url": video.ThumbnailURL,
	}
	if title != "" {
		updates["title"] = title
	}
	if description != "" {
		updates["description"] = description
	}
	if thumbnailURL != "" {
		updates["thumbnail_url"] = thumbnailURL
	}

	if err := database.DB.Model(&video).Updates(updates).Error; err != nil {
		util.RespondInternalError(c, "failed to update video")
		return
	}

	util.Respond(c, http.StatusOK, gin.H{"video": video}, "video updated successfully")
}

// DeleteVideo removes a video. Owner only.
// DELETE /api/v1/videos/:videoId
func (h *Handlers) DeleteVideo(c *gin.Context, actor *models.User) {
	videoID := c.Param("videoId")
	if !util.IsValidID(videoID) {
		util.RespondBadRequest(c, "invalid videoId")
		return
	}

	var video models.Video
	if err := database.DB.First(&video, "id = ?", videoID).Error; err != nil {
		util.RespondNotFound(c, "video")
		return
	}

	if video.OwnerID != actor.ID {
		util.RespondForbidden(c)
		return
	}

	if err := database.DB.Delete(&video).Error; err != nil {
		util.RespondInternalError(c, "failed to delete video")
		return
	}

	util.Respond(c, http.StatusOK, gin.H{}, "video deleted successfully")
}

// TogglePublishStatus flips the published flag. Owner only.
// PATCH /api/v1/videos/toggle/publish/:videoId
func (h *Handlers) TogglePublishStatus(c *gin.Context, actor *models.User) {
	videoID := c.Param("videoId")
	if !util.IsValidID(videoID) {
		util.RespondBadRequest(c, "invalid videoId")
		return
	}

	var video models.Video
	if err := database.DB.First(&video, "id = ?", videoID).Error; err != nil {
		util.RespondNotFound(c, "video")
		return
	}

	if video.OwnerID != actor.ID {
		util.RespondForbidden(c)
		return
	}

	if err := database.DB.Model(&video).
		Update("is_published", !video.IsPublished).Error; err != nil {
		util.RespondInternalError(c, "failed to toggle publish status")
		return
	}

	util.Respond(c, http.StatusOK, gin.H{
		"id":           video.ID,
		"is_published": video.IsPublished,
	}, "publish status toggled successfully")
}
