package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/viewtube/backend/internal/database"
	"github.com/viewtube/backend/internal/metrics"
	"github.com/viewtube/backend/internal/models"
	"github.com/viewtube/backend/internal/util"
	"gorm.io/gorm/clause"
)

// ToggleSubscription subscribes the requester to a channel, or
// unsubscribes if already subscribed. Self-subscription is rejected as an
// authorization failure. The unique (subscriber, channel) index plus
// delete-if-exists keeps concurrent toggles from racing into duplicates.
// POST /api/v1/subscriptions/c/:channelId
func (h *Handlers) ToggleSubscription(c *gin.Context, actor *models.User) {
	channelID := c.Param("channelId")
	if !util.IsValidID(channelID) {
		util.RespondBadRequest(c, "invalid channelId")
		return
	}

	if channelID == actor.ID {
		util.RespondForbidden(c, "you cannot subscribe to yourself")
		return
	}

	var channel models.User
	if err := database.DB.Select("id").First(&channel, "id = ?", channelID).Error; err != nil {
		util.RespondNotFound(c, "channel")
		return
	}

	m := metrics.Get()

	res := database.DB.
		Where("subscriber_id = ? AND channel_id = ?", actor.ID, channelID).
		Delete(&models.Subscription{})
	if res.Error != nil {
		util.RespondInternalError(c, "failed to toggle subscription")
		return
	}

	if res.RowsAffected > 0 {
		m.SubscriptionsTotal.WithLabelValues("unsubscribed").Inc()
		util.Respond(c, http.StatusOK, gin.H{"subscribed": false}, "channel unsubscribed successfully")
		return
	}

	sub := models.Subscription{
		SubscriberID: actor.ID,
		ChannelID:    channelID,
	}
	if err := database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&sub).Error; err != nil {
		util.RespondInternalError(c, "failed to toggle subscription")
		return
	}

	m.SubscriptionsTotal.WithLabelValues("subscribed").Inc()
	util.Respond(c, http.StatusCreated, gin.H{"subscribed": true, "subscription": sub},
		"channel subscribed successfully")
}

// GetChannelSubscribers lists the users subscribed to a channel
// GET /api/v1/subscriptions/u/:subscriberId
func (h *Handlers) GetChannelSubscribers(c *gin.Context, _ *models.User) {
	channelID := c.Param("subscriberId")
	if !util.IsValidID(channelID) {
		util.RespondBadRequest(c, "invalid subscriberId")
		return
	}

	page := util.ParsePagination(c)

	var subs []models.Subscription
	err := database.DB.
		Preload("Subscriber", preloadOwner).
		Where("channel_id = ?", channelID).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&subs).Error
	if err != nil {
		util.RespondInternalError(c, "failed to fetch subscribers")
		return
	}

	util.Respond(c, http.StatusOK, gin.H{
		"subscribers": subs,
		"page":        page.Page,
		"limit":       page.Limit,
	}, "subscribers fetched successfully")
}

// GetSubscribedChannels lists the channels a user has subscribed to
// GET /api/v1/subscriptions/c/:channelId
func (h *Handlers) GetSubscribedChannels(c *gin.Context, _ *models.User) {
	subscriberID := c.Param("channelId")
	if !util.IsValidID(subscriberID) {
		util.RespondBadRequest(c, "invalid channelId")
		return
	}

	page := util.ParsePagination(c)

	var subs []models.Subscription
	err := database.DB.
		Preload("Channel", preloadOwner).
		Where("subscriber_id = ?", subscriberID).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&subs).Error
	if err != nil {
		util.RespondInternalError(c, "failed to fetch subscribed channels")
		return
	}

	util.Respond(c, http.StatusOK, gin.H{
		"channels": subs,
		"page":     page.Page,
		"limit":    page.Limit,
	}, "subscribed channels fetched successfully")
}
