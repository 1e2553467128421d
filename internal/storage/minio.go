package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"photostream/internal/observability"
)

const (
	defaultUploadExpiry   = 15 * time.Minute
	defaultDownloadExpiry = 24 * time.Hour
	defaultContentType    = "application/octet-stream"
)

// minioAPI is the subset of the MinIO client the store uses; narrowed for
// testability.
type minioAPI interface {
	PresignedPutObject(ctx context.Context, bucketName, objectName string, expires time.Duration) (*url.URL, error)
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// MinioStore implements ObjectStorage on top of an S3-compatible endpoint.
type MinioStore struct {
	bucket         string
	uploadExpiry   time.Duration
	downloadExpiry time.Duration
	client         minioAPI
}

// NewMinioStore creates an ObjectStorage backed by the given S3-compatible
// endpoint and bucket.
func NewMinioStore(endpoint, accessKeyID, secretAccessKey, bucket string, useSSL bool) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	return &MinioStore{
		bucket:         bucket,
		uploadExpiry:   defaultUploadExpiry,
		downloadExpiry: defaultDownloadExpiry,
		client:         client,
	}, nil
}

// IssueUploadTarget returns a presigned PUT URL and the storage key the
// uploaded object will live under.
func (s *MinioStore) IssueUploadTarget(ctx context.Context) (*UploadTarget, error) {
	key := "images/" + uuid.NewString()

	u, err := s.client.PresignedPutObject(ctx, s.bucket, key, s.uploadExpiry)
	if err != nil {
		observability.StorageErrors.WithLabelValues("presign_put").Inc()
		return nil, fmt.Errorf("failed to issue upload target: %w", err)
	}

	return &UploadTarget{
		Key:       key,
		URL:       u.String(),
		ExpiresAt: time.Now().UTC().Add(s.uploadExpiry),
	}, nil
}

// ResolveURL returns a presigned GET URL for key, or "" when the object no
// longer exists.
func (s *MinioStore) ResolveURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}

	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		if isMissingObject(err) {
			return "", nil
		}
		observability.StorageErrors.WithLabelValues("stat").Inc()
		return "", fmt.Errorf("failed to stat object %s: %w", key, err)
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.downloadExpiry, nil)
	if err != nil {
		observability.StorageErrors.WithLabelValues("presign_get").Inc()
		return "", fmt.Errorf("failed to presign object %s: %w", key, err)
	}
	return u.String(), nil
}

// Put writes an object directly. Used by the seeder and by server-side
// uploads.
func (s *MinioStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if contentType == "" {
		contentType = defaultContentType
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		observability.StorageErrors.WithLabelValues("put").Inc()
		return fmt.Errorf("failed to store object %s: %w", key, err)
	}
	return nil
}

// Delete removes an object. Missing objects are not an error.
func (s *MinioStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil && !isMissingObject(err) {
		observability.StorageErrors.WithLabelValues("remove").Inc()
		return fmt.Errorf("failed to remove object %s: %w", key, err)
	}
	return nil
}

func isMissingObject(err error) bool {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		return resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" || resp.StatusCode == 404
	}
	return false
}
