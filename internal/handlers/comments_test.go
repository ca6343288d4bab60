package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viewtube/backend/internal/database"
	"github.com/viewtube/backend/internal/models"
)

func addComment(t *testing.T, r *gin.Engine, token, path, content string) models.Comment {
	t.Helper()
	w := doJSON(r, http.MethodPost, path, token, map[string]string{"content": content})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var comment models.Comment
	dataField(t, decodeEnvelope(t, w), "comment", &comment)
	return comment
}

func TestVideoComments(t *testing.T) {
	h, r, _ := setupTest(t)
	owner, _ := createUser(t, h, "owner")
	user, token := createUser(t, h, "commenter")
	video := createVideo(t, owner.ID, "Commented")

	comment := addComment(t, r, token, "/api/v1/comments/v/"+video.ID, "nice video")
	assert.Equal(t, user.ID, comment.OwnerID)
	assert.Equal(t, models.CommentTargetVideo, comment.Target.Type)
	assert.Equal(t, video.ID, comment.Target.ID)

	// Comments on a missing video are rejected
	w := doJSON(r, http.MethodPost, "/api/v1/comments/v/"+user.ID, token,
		map[string]string{"content": "into the void"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/comments/v/"+video.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)

	var comments []models.Comment
	dataField(t, env, "comments", &comments)
	require.Len(t, comments, 1)
	assert.Equal(t, "nice video", comments[0].Content)
	assert.Equal(t, "commenter", comments[0].Owner.Username)

	var total int
	dataField(t, env, "total_comments", &total)
	assert.Equal(t, 1, total)
}

func TestTweetComments(t *testing.T) {
	h, r, _ := setupTest(t)
	user, token := createUser(t, h, "commenter")
	tweet := createTweet(t, user.ID, "discuss")

	comment := addComment(t, r, token, "/api/v1/comments/t/"+tweet.ID, "hot take")
	assert.Equal(t, models.CommentTargetTweet, comment.Target.Type)
	assert.Equal(t, tweet.ID, comment.Target.ID)

	w := doJSON(r, http.MethodGet, "/api/v1/comments/t/"+tweet.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var comments []models.Comment
	dataField(t, decodeEnvelope(t, w), "comments", &comments)
	assert.Len(t, comments, 1)
}

func TestCommentTargetsDoNotBleed(t *testing.T) {
	h, r, _ := setupTest(t)
	user, token := createUser(t, h, "commenter")
	video := createVideo(t, user.ID, "Video")
	tweet := createTweet(t, user.ID, "tweet")

	addComment(t, r, token, "/api/v1/comments/v/"+video.ID, "on the video")
	addComment(t, r, token, "/api/v1/comments/t/"+tweet.ID, "on the tweet")

	var comments []models.Comment

	w := doJSON(r, http.MethodGet, "/api/v1/comments/v/"+video.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	dataField(t, decodeEnvelope(t, w), "comments", &comments)
	require.Len(t, comments, 1)
	assert.Equal(t, "on the video", comments[0].Content)

	w = doJSON(r, http.MethodGet, "/api/v1/comments/t/"+tweet.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	dataField(t, decodeEnvelope(t, w), "comments", &comments)
	require.Len(t, comments, 1)
	assert.Equal(t, "on the tweet", comments[0].Content)
}

func TestUpdateAndDeleteComment(t *testing.T) {
	h, r, _ := setupTest(t)
	user, token := createUser(t, h, "commenter")
	_, strangerToken := createUser(t, h, "stranger")
	video := createVideo(t, user.ID, "Video")

	comment := addComment(t, r, token, "/api/v1/comments/v/"+video.ID, "first draft")

	w := doJSON(r, http.MethodPatch, "/api/v1/comments/c/"+comment.ID, strangerToken,
		map[string]string{"content": "vandalism"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodPatch, "/api/v1/comments/c/"+comment.ID, token,
		map[string]string{"content": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPatch, "/api/v1/comments/c/"+comment.ID, token,
		map[string]string{"content": "final draft"})
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Comment
	require.NoError(t, database.DB.First(&got, "id = ?", comment.ID).Error)
	assert.Equal(t, "final draft", got.Content)

	w = doJSON(r, http.MethodDelete, "/api/v1/comments/c/"+comment.ID, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/v1/comments/c/"+comment.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	database.DB.Model(&models.Comment{}).Count(&count)
	assert.Zero(t, count)
}

func TestReplies(t *testing.T) {
	h, r, _ := setupTest(t)
	user, token := createUser(t, h, "commenter")
	_, replierToken := createUser(t, h, "replier")
	video := createVideo(t, user.ID, "Video")

	comment := addComment(t, r, token, "/api/v1/comments/v/"+video.ID, "parent")

	w := doJSON(r, http.MethodPost, "/api/v1/comments/r/"+comment.ID, replierToken,
		map[string]string{"content": "child"})
	require.Equal(t, http.StatusCreated, w.Code)

	var reply models.Reply
	dataField(t, decodeEnvelope(t, w), "reply", &reply)
	assert.Equal(t, comment.ID, reply.CommentID)

	w = doJSON(r, http.MethodGet, "/api/v1/comments/r/"+comment.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var replies []models.Reply
	dataField(t, decodeEnvelope(t, w), "replies", &replies)
	require.Len(t, replies, 1)
	assert.Equal(t, "replier", replies[0].Owner.Username)

	// Only the reply's owner can delete it
	w = doJSON(r, http.MethodDelete, "/api/v1/comments/r/"+comment.ID+"/"+reply.ID, token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/v1/comments/r/"+comment.ID+"/"+reply.ID, replierToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteCommentCascadesReplies(t *testing.T) {
	h, r, _ := setupTest(t)
	user, token := createUser(t, h, "commenter")
	video := createVideo(t, user.ID, "Video")

	comment := addComment(t, r, token, "/api/v1/comments/v/"+video.ID, "parent")

	w := doJSON(r, http.MethodPost, "/api/v1/comments/r/"+comment.ID, token,
		map[string]string{"content": "child"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/v1/comments/c/"+comment.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var replyCount int64
	database.DB.Model(&models.Reply{}).Count(&replyCount)
	assert.Zero(t, replyCount)
}
