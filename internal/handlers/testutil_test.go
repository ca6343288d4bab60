package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/viewtube/backend/internal/auth"
	"github.com/viewtube/backend/internal/database"
	"github.com/viewtube/backend/internal/logger"
	"github.com/viewtube/backend/internal/models"
	"github.com/viewtube/backend/internal/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var loggerOnce sync.Once

// fakeUploader stands in for the external media host. Kinds listed in
// failKinds refuse the upload.
type fakeUploader struct {
	failKinds map[string]bool
	uploads   []string
}

func (f *fakeUploader) UploadFile(_ context.Context, localPath, userID, kind string) (*storage.UploadResult, error) {
	if f.failKinds[kind] {
		return nil, errors.New(kind + " upload refused")
	}
	f.uploads = append(f.uploads, kind)
	return &storage.UploadResult{
		Key: kind + "/" + userID + "/" + filepath.Base(localPath),
		URL: "https://cdn.test/" + kind + "/" + filepath.Base(localPath),
	}, nil
}

// setupTest wires handlers against an in-memory SQLite database with the
// media host and duration probe stubbed out.
func setupTest(t *testing.T) (*Handlers, *gin.Engine, *fakeUploader) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	loggerOnce.Do(func() {
		_ = logger.Initialize("error", filepath.Join(t.TempDir(), "test.log"))
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A fresh pooled connection would see an empty in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Video{},
		&models.Tweet{},
		&models.Comment{},
		&models.Reply{},
		&models.Like{},
		&models.Playlist{},
		&models.PlaylistVideo{},
		&models.Subscription{},
		&models.WatchHistoryEntry{},
	))
	database.DB = db
	t.Cleanup(func() { _ = sqlDB.Close() })

	uploader := &fakeUploader{}
	h := NewHandlers(auth.NewService([]byte("test-secret")), uploader)
	h.probeDuration = func(context.Context, string) (float64, error) { return 12.5, nil }

	r := gin.New()
	h.RegisterRoutes(r)
	return h, r, uploader
}

// createUser registers an account and returns it with a bearer token
func createUser(t *testing.T, h *Handlers, username string) (*models.User, string) {
	t.Helper()
	resp, err := h.auth.Register(auth.RegisterRequest{
		Email:    username + "@example.com",
		Username: username,
		Password: "password123",
		FullName: "Test " + username,
	})
	require.NoError(t, err)
	return &resp.User, resp.AccessToken
}

func createVideo(t *testing.T, ownerID, title string) *models.Video {
	t.Helper()
	video := &models.Video{
		OwnerID:     ownerID,
		Title:       title,
		VideoURL:    "https://cdn.test/video/" + title + ".mp4",
		Duration:    30,
		IsPublished: true,
	}
	require.NoError(t, database.DB.Create(video).Error)
	return video
}

func createTweet(t *testing.T, ownerID, content string) *models.Tweet {
	t.Helper()
	tweet := &models.Tweet{OwnerID: ownerID, Content: content}
	require.NoError(t, database.DB.Create(tweet).Error)
	return tweet
}

// doJSON performs a request with an optional JSON body and bearer token
func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// doMultipart performs a multipart form request with fields and files
func doMultipart(r *gin.Engine, method, path, token string, fields map[string]string, files map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		_ = mw.WriteField(key, value)
	}
	for field, filename := range files {
		fw, _ := mw.CreateFormFile(field, filename)
		_, _ = fw.Write([]byte("fake file contents for " + filename))
	}
	_ = mw.Close()

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
	Errors     []string        `json:"errors"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return env
}

// dataField unmarshals one key of the envelope's data object into out
func dataField(t *testing.T, env envelope, key string, out interface{}) {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &m))
	raw, ok := m[key]
	require.True(t, ok, "data has no key %q: %s", key, string(env.Data))
	require.NoError(t, json.Unmarshal(raw, out))
}

func uniqueName(prefix string, i int) string {
	return fmt.Sprintf("%s%d", prefix, i)
}

func jsonUnmarshal(raw json.RawMessage, out interface{}) error {
	return json.Unmarshal(raw, out)
}

func registerRequest(username string) auth.RegisterRequest {
	return auth.RegisterRequest{
		Email:    username + "@example.com",
		Username: username,
		Password: "password123",
		FullName: "Test " + username,
	}
}
