package storage

import "context"

// MediaUploader is the external media-hosting collaborator. It accepts a
// local file path and returns a hosted URL, or a failure that aborts the
// calling operation. This interface allows for easy mocking in tests.
type MediaUploader interface {
	UploadFile(ctx context.Context, localPath, userID, kind string) (*UploadResult, error)
}

// Ensure S3Uploader implements MediaUploader
var _ MediaUploader = (*S3Uploader)(nil)
