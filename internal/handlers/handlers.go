package handlers

import (
	"context"

	"github.com/viewtube/backend/internal/auth"
	"github.com/viewtube/backend/internal/media"
	"github.com/viewtube/backend/internal/storage"
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	auth     *auth.Service
	uploader storage.MediaUploader

	// probeDuration is swappable in tests
	probeDuration func(ctx context.Context, path string) (float64, error)
}

// NewHandlers creates a new handlers instance
func NewHandlers(authService *auth.Service, uploader storage.MediaUploader) *Handlers {
	return &Handlers{
		auth:          authService,
		uploader:      uploader,
		probeDuration: media.ProbeDuration,
	}
}
