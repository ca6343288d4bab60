package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/viewtube/backend/internal/database"
	"github.com/viewtube/backend/internal/metrics"
	"github.com/viewtube/backend/internal/models"
	"github.com/viewtube/backend/internal/util"
	"gorm.io/gorm"
)

func preloadOwner(db *gorm.DB) *gorm.DB {
	return db.Select(models.PublicProfileColumns)
}

// GetVideoComments lists comments on a video with pagination
// GET /api/v1/comments/v/:videoId
func (h *Handlers) GetVideoComments(c *gin.Context, _ *models.User) {
	videoID := c.Param("videoId")
	if !util.IsValidID(videoID) {
		util.RespondBadRequest(c, "invalid videoId")
		return
	}

	var video models.Video
	err := database.DB.Select("id", "title", "owner_id").First(&video, "id = ?", videoID).Error
	if util.HandleDBError(c, err, "video") {
		return
	}

	comments, page, ok := h.listComments(c, models.VideoTarget(videoID))
	if !ok {
		return
	}

	util.Respond(c, http.StatusOK, gin.H{
		// Count of the current page, as the API has always reported it
		"total_comments": len(comments),
		"comments":       comments,
		"video":          gin.H{"id": video.ID, "title": video.Title, "owner_id": video.OwnerID},
		"page":           page.Page,
		"limit":          page.Limit,
	}, "comments fetched successfully")
}

// GetTweetComments lists comments on a tweet with pagination
// GET /api/v1/comments/t/:tweetId
func (h *Handlers) GetTweetComments(c *gin.Context, _ *models.User) {
	tweetID := c.Param("tweetId")
	if !util.IsValidID(tweetID) {
		util.RespondBadRequest(c, "invalid tweetId")
		return
	}

	var tweet models.Tweet
	err := database.DB.Select("id", "owner_id").First(&tweet, "id = ?", tweetID).Error
	if util.HandleDBError(c, err, "tweet") {
		return
	}

	comments, page, ok := h.listComments(c, models.TweetTarget(tweetID))
	if !ok {
		return
	}

	util.Respond(c, http.StatusOK, gin.H{
		"total_comments": len(comments),
		"comments":       comments,
		"tweet":          gin.H{"id": tweet.ID, "owner_id": tweet.OwnerID},
		"page":           page.Page,
		"limit":          page.Limit,
	}, "comments fetched successfully")
}

func (h *Handlers) listComments(c *gin.Context, target models.CommentTarget) ([]models.Comment, util.Pagination, bool) {
	page := util.ParsePagination(c)

	var comments []models.Comment
	err := database.DB.
		Preload("Owner", preloadOwner).
		Where("target_type = ? AND target_id = ?", target.Type, target.ID).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&comments).Error
	if err != nil {
		util.RespondInternalError(c, "failed to fetch comments")
		return nil, page, false
	}

	return comments, page, true
}

// AddVideoComment creates a comment attached to a video
// POST /api/v1/comments/v/:videoId
func (h *Handlers) AddVideoComment(c *gin.Context, actor *models.User) {
	videoID := c.Param("videoId")
	if !util.IsValidID(videoID) {
		util.RespondBadRequest(c, "invalid videoId")
		return
	}

	var video models.Video
	if err := database.DB.Select("id").First(&video, "id = ?", videoID).Error; err != nil {
		util.RespondNotFound(c, "video")
		return
	}

	h.addComment(c, actor, models.VideoTarget(videoID))
}

// AddTweetComment creates a comment attached to a tweet
// POST /api/v1/comments/t/:tweetId
func (h *Handlers) AddTweetComment(c *gin.Context, actor *models.User) {
	tweetID := c.Param("tweetId")
	if !util.IsValidID(tweetID) {
		util.RespondBadRequest(c, "invalid tweetId")
		return
	}

	var tweet models.Tweet
	if err := database.DB.Select("id").First(&tweet, "id = ?", tweetID).Error; err != nil {
		util.RespondNotFound(c, "tweet")
		return
	}

	h.addComment(c, actor, models.TweetTarget(tweetID))
}

func (h *Handlers) addComment(c *gin.Context, actor *models.User, target models.CommentTarget) {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		util.RespondBadRequest(c, "content is required")
		return
	}

	comment := models.Comment{
		OwnerID: actor.ID,
		Content: content,
		Target:  target,
	}

	if err := database.DB.Create(&comment).Error; err != nil {
		util.RespondInternalError(c, "failed to create comment")
		return
	}

	metrics.Get().CommentsCreated.Inc()
	util.Respond(c, http.StatusCreated, gin.H{"comment": comment}, "comment added successfully")
}

// UpdateComment replaces a comment's content. Owner only; blank content
// after trimming is a no-op error.
// PATCH /api/v1/comments/c/:commentId
func (h *Handlers) UpdateComment(c *gin.Context, actor *models.User) {
	commentID := c.Param("commentId")
	if !util.IsValidID(commentID) {
		util.RespondBadRequest(c, "invalid commentId")
		return
	}

	var comment models.Comment
	if err := database.DB.First(&comment, "id = ?", commentID).Error; err != nil {
		util.RespondNotFound(c, "comment")
		return
	}

	if comment.OwnerID != actor.ID {
		util.RespondForbidden(c)
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		util.RespondBadRequest(c, "nothing to update")
		return
	}

	if err := database.DB.Model(&comment).Update("content", content).Error; err != nil {
		util.RespondInternalError(c, "failed to update comment")
		return
	}

	util.Respond(c, http.StatusOK, gin.H{"comment": comment}, "comment updated successfully")
}

// DeleteComment removes a comment and its replies. Owner only.
// DELETE /api/v1/comments/c/:commentId
func (h *Handlers) DeleteComment(c *gin.Context, actor *models.User) {
	commentID := c.Param("commentId")
	if !util.IsValidID(commentID) {
		util.RespondBadRequest(c, "invalid commentId")
		return
	}

	var comment models.Comment
	if err := database.DB.First(&comment, "id = ?", commentID).Error; err != nil {
		util.RespondNotFound(c, "comment")
		return
	}

	if comment.OwnerID != actor.ID {
		util.RespondForbidden(c)
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", commentID).Delete(&models.Reply{}).Error; err != nil {
			return err
		}
		return tx.Delete(&comment).Error
	})
	if err != nil {
		util.RespondInternalError(c, "failed to delete comment")
		return
	}

	util.Respond(c, http.StatusOK, gin.H{}, "comment deleted successfully")
}

// AddReply creates a reply attached to a comment
// POST /api/v1/comments/r/:commentId
func (h *Handlers) AddReply(c *gin.Context, actor *models.User) {
	commentID := c.Param("commentId")
	if !util.IsValidID(commentID) {
		util.RespondBadRequest(c, "invalid commentId")
		return
	}

	var comment models.Comment
	if err := database.DB.Select("id").First(&comment, "id = ?", commentID).Error; err != nil {
		util.RespondNotFound(c, "comment")
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		util.RespondBadRequest(c, "content is required")
		return
	}

	reply := models.Reply{
		CommentID: commentID,
		OwnerID:   actor.ID,
		Content:   content,
	}

	if err := database.DB.Create(&reply).Error; err != nil {
		util.RespondInternalError(c, "failed to create reply")
		return
	}

	util.Respond(c, http.StatusCreated, gin.H{"reply": reply}, "reply added successfully")
}

// GetCommentReplies lists replies to a comment with pagination
// GET /api/v1/comments/r/:commentId
func (h *Handlers) GetCommentReplies(c *gin.Context, _ *models.User) {
	commentID := c.Param("commentId")
	if !util.IsValidID(commentID) {
		util.RespondBadRequest(c, "invalid commentId")
		return
	}

	var comment models.Comment
	if err := database.DB.Select("id").First(&comment, "id = ?", commentID).Error; err != nil {
		util.RespondNotFound(c, "comment")
		return
	}

	page := util.ParsePagination(c)

	var replies []models.Reply
	err := database.DB.
		Preload("Owner", preloadOwner).
		Where("comment_id = ?", commentID).
		Order("created_at ASC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&replies).Error
	if err != nil {
		util.RespondInternalError(c, "failed to fetch replies")
		return
	}

	util.Respond(c, http.StatusOK, gin.H{
		"replies": replies,
		"page":    page.Page,
		"limit":   page.Limit,
	}, "replies fetched successfully")
}

// DeleteReply removes a reply. Owner only.
// DELETE /api/v1/comments/r/:commentId/:replyId
func (h *Handlers) DeleteReply(c *gin.Context, actor *models.User) {
	replyID := c.Param("replyId")
	if !util.IsValidID(replyID) {
		util.RespondBadRequest(c, "invalid replyId")
		return
	}

	var reply models.Reply
	if err := database.DB.First(&reply, "id = ?", replyID).Error; err != nil {
		util.RespondNotFound(c, "reply")
		return
	}

	if reply.OwnerID != actor.ID {
		util.RespondForbidden(c)
		return
	}

	if err := database.DB.Delete(&reply).Error; err != nil {
		util.RespondInternalError(c, "failed to delete reply")
		return
	}

	util.Respond(c, http.StatusOK, gin.H{}, "reply deleted successfully")
}
