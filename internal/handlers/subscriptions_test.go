package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viewtube/backend/internal/database"
	"github.com/viewtube/backend/internal/models"
)

func subscriptionCount(channelID string) int64 {
	var n int64
	database.DB.Model(&models.Subscription{}).
		Where("channel_id = ?", channelID).Count(&n)
	return n
}

func TestToggleSubscription(t *testing.T) {
	h, r, _ := setupTest(t)
	channel, _ := createUser(t, h, "channel")
	_, token := createUser(t, h, "fan")

	path := "/api/v1/subscriptions/c/" + channel.ID

	w := doJSON(r, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(1), subscriptionCount(channel.ID))

	// Toggling again unsubscribes, restoring the original state
	w = doJSON(r, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, subscriptionCount(channel.ID))
}

func TestSelfSubscriptionForbidden(t *testing.T) {
	h, r, _ := setupTest(t)
	user, token := createUser(t, h, "narcissist")

	w := doJSON(r, http.MethodPost, "/api/v1/subscriptions/c/"+user.ID, token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Zero(t, subscriptionCount(user.ID))
}

func TestToggleSubscriptionMissingChannel(t *testing.T) {
	h, r, _ := setupTest(t)
	_, token := createUser(t, h, "fan")

	w := doJSON(r, http.MethodPost, "/api/v1/subscriptions/c/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Valid UUID, no such user
	w = doJSON(r, http.MethodPost, "/api/v1/subscriptions/c/"+uuid.NewString(), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubscriptionListings(t *testing.T) {
	h, r, _ := setupTest(t)
	channel, channelToken := createUser(t, h, "creator")
	fan1, fan1Token := createUser(t, h, "fanone")
	_, fan2Token := createUser(t, h, "fantwo")

	for _, token := range []string{fan1Token, fan2Token} {
		w := doJSON(r, http.MethodPost, "/api/v1/subscriptions/c/"+channel.ID, token, nil)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	// Subscribers of the channel
	w := doJSON(r, http.MethodGet, "/api/v1/subscriptions/u/"+channel.ID, channelToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var subs []models.Subscription
	dataField(t, decodeEnvelope(t, w), "subscribers", &subs)
	require.Len(t, subs, 2)
	usernames := []string{subs[0].Subscriber.Username, subs[1].Subscriber.Username}
	assert.ElementsMatch(t, []string{"fanone", "fantwo"}, usernames)

	// Channels a user has subscribed to
	w = doJSON(r, http.MethodGet, "/api/v1/subscriptions/c/"+fan1.ID, fan1Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var channels []models.Subscription
	dataField(t, decodeEnvelope(t, w), "channels", &channels)
	require.Len(t, channels, 1)
	assert.Equal(t, "creator", channels[0].Channel.Username)
}
