// Package objstore wraps the S3-compatible object store behind a small
// interface so handlers can proxy uploads and downloads without talking to
// the SDK directly.
package objstore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrNotFound reports a missing object or bucket.
var ErrNotFound = errors.New("objstore: not found")

// Store is the object store surface used by the HTTP proxy handlers.
type Store interface {
	Upload(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, bucket, key string) (bool, error)
}

// minioAPI is the subset of *minio.Client the store uses, split out to
// enable mocking without a real MinIO server.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

// minioClientWrapper adapts *minio.Client to minioAPI.
type minioClientWrapper struct{ c *minio.Client }

func (w minioClientWrapper) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return w.c.BucketExists(ctx, bucketName)
}

func (w minioClientWrapper) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return w.c.MakeBucket(ctx, bucketName, opts)
}

func (w minioClientWrapper) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return w.c.PutObject(ctx, bucketName, objectName, reader, objectSize, opts)
}

func (w minioClientWrapper) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	return w.c.GetObject(ctx, bucketName, objectName, opts)
}

func (w minioClientWrapper) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	return w.c.StatObject(ctx, bucketName, objectName, opts)
}

// Config holds the connection settings for the object store.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// MinioStore is the production Store backed by an S3-compatible server.
type MinioStore struct {
	api minioAPI
}

// NewMinioStore dials the object store endpoint.
func NewMinioStore(cfg Config) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	return &MinioStore{api: minioClientWrapper{c: client}}, nil
}

// NewMinioStoreWithAPI allows injecting a mockable API (used in tests).
func NewMinioStoreWithAPI(api minioAPI) *MinioStore {
	return &MinioStore{api: api}
}

// Upload stores an object, creating the bucket on first use.
func (s *MinioStore) Upload(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) error {
	exists, err := s.api.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := s.api.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	_, err = s.api.PutObject(ctx, bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

// Download streams an object back to the caller.
func (s *MinioStore) Download(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	// Stat first so a missing object surfaces as ErrNotFound instead of a
	// read error mid-stream.
	if _, err := s.api.StatObject(ctx, bucket, key, minio.StatObjectOptions{}); err != nil {
		return nil, mapMinioErr(err)
	}

	obj, err := s.api.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	return obj, nil
}

// Exists checks if object exists in the store.
func (s *MinioStore) Exists(ctx context.Context, bucket, key string) (bool, error) {
	_, err := s.api.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if errors.Is(mapMinioErr(err), ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat object: %w", err)
	}
	return true, nil
}

func mapMinioErr(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return ErrNotFound
	}
	return err
}
