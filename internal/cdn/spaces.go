// Package cdn wraps the S3-compatible object store holding slice images.
package cdn

import (
	"context"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/slice-of-life/backend/internal/apierr"
	"github.com/slice-of-life/backend/internal/config"
)

// ShareTime is how long a generated share link stays valid.
const ShareTime = 5 * time.Minute

// SpaceIndex talks to the application CDN: it uploads slice images and mints
// short-lived presigned links for serving them.
type SpaceIndex struct {
	client *minio.Client
	bucket string
}

func NewSpaceIndex(cfg *config.Config) (*SpaceIndex, error) {
	client, err := minio.New(cfg.SpacesEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.SpacesKey, cfg.SpacesSecret, ""),
		Region: cfg.SpacesRegion,
		Secure: true,
	})
	if err != nil {
		return nil, apierr.Wrap(apierr.ServiceUnavailable, "could not open CDN session", err)
	}
	return &SpaceIndex{client: client, bucket: cfg.SpacesBucket}, nil
}

// GetShareLink returns a presigned URL for the given storage key.
func (s *SpaceIndex) GetShareLink(ctx context.Context, key string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, ShareTime, nil)
	if err != nil {
		return "", apierr.Wrap(apierr.ServiceUnavailable, "could not generate share link", err)
	}
	return u.String(), nil
}

// SaveFile uploads a file under the given storage key.
func (s *SpaceIndex) SaveFile(ctx context.Context, key string, r io.Reader, size int64) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{})
	if err != nil {
		return apierr.Wrap(apierr.ServiceUnavailable, "could not save file", err)
	}
	return nil
}
