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

// CreateTweet creates a new tweet owned by the requester
// POST /api/v1/tweets
func (h *Handlers) CreateTweet(c *gin.Context, actor *models.User) {
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

	tweet := models.Tweet{
		OwnerID: actor.ID,
		Content: content,
	}

	if err := database.DB.Create(&tweet).Error; err != nil {
		util.RespondInternalError(c, "failed to create tweet")
		return
	}

	metrics.Get().TweetsCreated.Inc()
	util.Respond(c, http.StatusCreated, gin.H{"tweet": tweet}, "tweet created successfully")
}

// GetUserTweets lists a user's tweets, newest first
// GET /api/v1/tweets/user/:userId
func (h *Handlers) GetUserTweets(c *gin.Context, _ *models.User) {
	userID := c.Param("userId")
	if !util.IsValidID(userID) {
		util.RespondBadRequest(c, "invalid userId")
		return
	}

	page := util.ParsePagination(c)

	var tweets []models.Tweet
	err := database.DB.
		Preload("Owner", func(db *gorm.DB) *gorm.DB {
			return db.Select(models.PublicProfileColumns)
		}).
		Where("owner_id = ?", userID).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&tweets).Error
	if err != nil {
		util.RespondInternalError(c, "failed to fetch tweets")
		return
	}

	util.Respond(c, http.StatusOK, gin.H{
		"tweets": tweets,
		"page":   page.Page,
		"limit":  page.Limit,
	}, "user tweets fetched successfully")
}

// UpdateTweet replaces a tweet's content. Owner only; blank content after
// trimming is a no-op error.
// PATCH /api/v1/tweets/:tweetId
func (h *Handlers) UpdateTweet(c *gin.Context, actor *models.User) {
	tweetID := c.Param("tweetId")
	if !util.IsValidID(tweetID) {
		util.RespondBadRequest(c, "invalid tweetId")
		return
	}

	var tweet models.Tweet
	if err := database.DB.First(&tweet, "id = ?", tweetID).Error; err != nil {
		util.RespondNotFound(c, "tweet")
		return
	}

	if tweet.OwnerID != actor.ID {
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

	if err := database.DB.Model(&tweet).Update("content", content).Error; err != nil {
		util.RespondInternalError(c, "failed to update tweet")
		return
	}

	util.Respond(c, http.StatusOK, gin.H{"tweet": tweet}, "tweet updated successfully")
}

// DeleteTweet removes a tweet. Owner only.
// DELETE /api/v1/tweets/:tweetId
func (h *Handlers) DeleteTweet(c *gin.Context, actor *models.User) {
	tweetID := c.Param("tweetId")
	if !util.IsValidID(tweetID) {
		util.RespondBadRequest(c, "invalid tweetId")
		return
	}

	var tweet models.Tweet
	if err := database.DB.First(&tweet, "id = ?", tweetID).Error; err != nil {
		util.RespondNotFound(c, "tweet")
		return
	}

	if tweet.OwnerID != actor.ID {
		util.RespondForbidden(c)
		return
	}

	if err := database.DB.Delete(&tweet).Error; err != nil {
		util.RespondInternalError(c, "failed to delete tweet")
		return
	}

	util.Respond(c, http.StatusOK, gin.H{}, "tweet deleted successfully")
}
