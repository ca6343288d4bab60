package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viewtube/backend/internal/database"
	"github.com/viewtube/backend/internal/models"
)

func likeCount(targetType models.LikeTargetType, targetID string) int64 {
	var n int64
	database.DB.Model(&models.Like{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Count(&n)
	return n
}

func TestToggleVideoLikeTwiceRestoresState(t *testing.T) {
	h, r, _ := setupTest(t)
	owner, _ := createUser(t, h, "owner")
	_, token := createUser(t, h, "liker")
	video := createVideo(t, owner.ID, "Likeable")

	path := "/api/v1/likes/toggle/v/" + video.ID

	w := doJSON(r, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(1), likeCount(models.LikeTargetVideo, video.ID))

	// Second toggle removes the row, returning to the original state
	w = doJSON(r, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, likeCount(models.LikeTargetVideo, video.ID))

	// And a third brings it back, never exceeding one row
	w = doJSON(r, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(1), likeCount(models.LikeTargetVideo, video.ID))
}

func TestToggleLikesAreIndependentPerTarget(t *testing.T) {
	h, r, _ := setupTest(t)
	user, token := createUser(t, h, "liker")
	video := createVideo(t, user.ID, "Mine")
	tweet := createTweet(t, user.ID, "mine too")

	w := doJSON(r, http.MethodPost, "/api/v1/likes/toggle/v/"+video.ID, token, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(r, http.MethodPost, "/api/v1/likes/toggle/t/"+tweet.ID, token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t, int64(1), likeCount(models.LikeTargetVideo, video.ID))
	assert.Equal(t, int64(1), likeCount(models.LikeTargetTweet, tweet.ID))

	// Unliking the tweet leaves the video like alone
	w = doJSON(r, http.MethodPost, "/api/v1/likes/toggle/t/"+tweet.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), likeCount(models.LikeTargetVideo, video.ID))
	assert.Zero(t, likeCount(models.LikeTargetTweet, tweet.ID))
}

func TestToggleLikeMalformedID(t *testing.T) {
	h, r, _ := setupTest(t)
	_, token := createUser(t, h, "liker")

	w := doJSON(r, http.MethodPost, "/api/v1/likes/toggle/v/banana", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetLikedVideos(t *testing.T) {
	h, r, _ := setupTest(t)
	owner, _ := createUser(t, h, "owner")
	_, token := createUser(t, h, "liker")

	first := createVideo(t, owner.ID, "First")
	second := createVideo(t, owner.ID, "Second")
	createVideo(t, owner.ID, "Unliked")

	for _, v := range []*models.Video{first, second} {
		w := doJSON(r, http.MethodPost, "/api/v1/likes/toggle/v/"+v.ID, token, nil)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(r, http.MethodGet, "/api/v1/likes/videos", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var videos []models.Video
	dataField(t, decodeEnvelope(t, w), "liked_videos", &videos)
	require.Len(t, videos, 2)

	titles := []string{videos[0].Title, videos[1].Title}
	assert.ElementsMatch(t, []string{"First", "Second"}, titles)
}
