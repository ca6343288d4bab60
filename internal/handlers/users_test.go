package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viewtube/backend/internal/database"
	"github.com/viewtube/backend/internal/models"
)

func TestUpdateAccountMerges(t *testing.T) {
	h, r, _ := setupTest(t)
	user, token := createUser(t, h, "profile")

	// All blank is a no-op error
	w := doJSON(r, http.MethodPatch, "/api/v1/users/update-account", token,
		map[string]string{"full_name": "  ", "email": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var unchanged models.User
	require.NoError(t, database.DB.First(&unchanged, "id = ?", user.ID).Error)
	assert.Equal(t, user.FullName, unchanged.FullName)

	// Partial update keeps the untouched field
	w = doJSON(r, http.MethodPatch, "/api/v1/users/update-account", token,
		map[string]string{"full_name": "New Name"})
	require.Equal(t, http.StatusOK, w.Code)

	var got models.User
	require.NoError(t, database.DB.First(&got, "id = ?", user.ID).Error)
	assert.Equal(t, "New Name", got.FullName)
	assert.Equal(t, user.Email, got.Email)

	// Email is stored lowercased
	w = doJSON(r, http.MethodPatch, "/api/v1/users/update-account", token,
		map[string]string{"email": "Profile@Example.COM"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, database.DB.First(&got, "id = ?", user.ID).Error)
	assert.Equal(t, "profile@example.com", got.Email)
}

func TestChangePassword(t *testing.T) {
	h, r, _ := setupTest(t)
	_, token := createUser(t, h, "rotator")

	w := doJSON(r, http.MethodPost, "/api/v1/users/change-password", token, map[string]string{
		"old_password": "wrong-password",
		"new_password": "brand-new-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/users/change-password", token, map[string]string{
		"old_password": "password123",
		"new_password": "brand-new-password",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// New password logs in, old one does not
	w = doJSON(r, http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"email":    "rotator@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"email":    "rotator@example.com",
		"password": "brand-new-password",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWatchHistory(t *testing.T) {
	h, r, _ := setupTest(t)
	owner, _ := createUser(t, h, "owner")
	_, token := createUser(t, h, "viewer")

	first := createVideo(t, owner.ID, "First Watched")
	second := createVideo(t, owner.ID, "Second Watched")

	for _, v := range []*models.Video{first, second} {
		w := doJSON(r, http.MethodGet, "/api/v1/videos/"+v.ID+"/watch", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(r, http.MethodGet, "/api/v1/users/history", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []models.WatchHistoryEntry
	dataField(t, decodeEnvelope(t, w), "history", &entries)
	require.Len(t, entries, 2)
	assert.Equal(t, "owner", entries[0].Video.Owner.Username)
}

func TestChannelProfile(t *testing.T) {
	h, r, _ := setupTest(t)
	channel, _ := createUser(t, h, "channelfour")
	_, token := createUser(t, h, "fan")

	w := doJSON(r, http.MethodPost, "/api/v1/subscriptions/c/"+channel.ID, token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	// Lookup is case-insensitive
	w = doJSON(r, http.MethodGet, "/api/v1/users/c/ChannelFour", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)

	var subscriberCount int64
	dataField(t, env, "subscriber_count", &subscriberCount)
	assert.Equal(t, int64(1), subscriberCount)

	var isSubscribed bool
	dataField(t, env, "is_subscribed", &isSubscribed)
	assert.True(t, isSubscribed)

	w = doJSON(r, http.MethodGet, "/api/v1/users/c/nobody", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
