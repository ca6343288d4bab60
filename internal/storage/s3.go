package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Uploader hosts media files on AWS S3 behind a CDN base URL
type S3Uploader struct {
	client  *s3.Client
	bucket  string
	region  string
	baseURL string
}

// UploadResult contains the result of an upload
type UploadResult struct {
	Key    string `json:"key"`
	URL    string `json:"url"`
	Bucket string `json:"bucket"`
	Region string `json:"region"`
	Size   int64  `json:"size"`
}

// NewS3Uploader creates a new S3 uploader
func NewS3Uploader(region, bucket, baseURL string) (*S3Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Uploader{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		region:  region,
		baseURL: baseURL,
	}, nil
}

// UploadFile uploads a local file to S3 and returns its public URL.
// kind ("video", "thumbnail") selects the key prefix.
func (u *S3Uploader) UploadFile(ctx context.Context, localPath, userID, kind string) (*UploadResult, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	extension := filepath.Ext(localPath)
	now := time.Now()
	key := fmt.Sprintf("%s/%d/%02d/%s/%s%s",
		kind, now.Year(), now.Month(), userID, uuid.NewString(), extension)

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(stat.Size()),
		ContentType:   aws.String(contentType(extension)),
		CacheControl:  aws.String("max-age=3600"),
		Metadata: map[string]string{
			"user-id":          userID,
			"upload-timestamp": now.Format(time.RFC3339),
			"file-type":        kind,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("%s/%s", strings.TrimSuffix(u.baseURL, "/"), key)

	return &UploadResult{
		Key:    key,
		URL:    publicURL,
		Bucket: u.bucket,
		Region: u.region,
		Size:   stat.Size(),
	}, nil
}

// DeleteFile removes an object by key
func (u *S3Uploader) DeleteFile(ctx context.Context, key string) error {
	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}

// CheckBucketAccess verifies the bucket is reachable at startup
func (u *S3Uploader) CheckBucketAccess(ctx context.Context) error {
	_, err := u.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(u.bucket),
	})
	if err != nil {
		return fmt.Errorf("bucket access check failed: %w", err)
	}
	return nil
}

func contentType(extension string) string {
	switch strings.ToLower(extension) {
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".mov":
		return "video/quicktime"
	case ".mkv":
		return "video/x-matroska"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
