// Package storage keeps item photos in MinIO. The object path is what
// gets recorded on the purchase request line.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// ErrUnavailable is returned when no object store is configured.
var ErrUnavailable = errors.New("object storage not configured")

// PhotoStore wraps the MinIO client for item photo uploads.
type PhotoStore struct {
	client *minio.Client
	bucket string
}

// NewPhotoStore accepts a nil client; uploads then fail with
// ErrUnavailable but the rest of the service keeps working.
func NewPhotoStore(client *minio.Client, bucket string) *PhotoStore {
	return &PhotoStore{client: client, bucket: bucket}
}

// Upload stores a photo and returns its object path.
func (s *PhotoStore) Upload(ctx context.Context, reader io.Reader, fileName string, fileSize int64, contentType string) (string, error) {
	if s.client == nil {
		return "", ErrUnavailable
	}
	objectName := fmt.Sprintf("purchasing/items/%s/%s%s",
		time.Now().Format("2006/01/02"), uuid.New().String()[:8], filepath.Ext(fileName))
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, fileSize, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}
	return objectName, nil
}

// Download streams a stored photo back.
func (s *PhotoStore) Download(ctx context.Context, objectName string) (io.ReadCloser, error) {
	if s.client == nil {
		return nil, ErrUnavailable
	}
	obj, err := s.client.GetObject(ctx, s.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("download photo: %w", err)
	}
	return obj, nil
}
