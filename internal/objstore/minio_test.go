package objstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/require"
)

// fakeMinio implements minioAPI for testing without network.
type fakeMinio struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      bool

	putBody []byte
	putErr  error

	getRC  io.ReadCloser
	getErr error

	statInfo minioLib.ObjectInfo
	statErr  error
}

func (f *fakeMinio) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}

func (f *fakeMinio) MakeBucket(_ context.Context, _ string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = true
	return f.makeBucketErr
}

func (f *fakeMinio) PutObject(_ context.Context, _ string, _ string, r io.Reader, _ int64, _ minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	if f.putErr != nil {
		return minioLib.UploadInfo{}, f.putErr
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return minioLib.UploadInfo{}, err
	}
	f.putBody = body
	return minioLib.UploadInfo{Size: int64(len(body))}, nil
}

func (f *fakeMinio) GetObject(_ context.Context, _ string, _ string, _ minioLib.GetObjectOptions) (io.ReadCloser, error) {
	return f.getRC, f.getErr
}

func (f *fakeMinio) StatObject(_ context.Context, _ string, _ string, _ minioLib.StatObjectOptions) (minioLib.ObjectInfo, error) {
	return f.statInfo, f.statErr
}

// notFoundErr builds the error shape minio returns for a missing key.
func notFoundErr() error {
	return minioLib.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}
}

func TestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("uploads into existing bucket", func(t *testing.T) {
		api := &fakeMinio{bucketExists: true}
		s := NewMinioStoreWithAPI(api)

		err := s.Upload(ctx, "frames", "cam1/frame.jpg", strings.NewReader("payload"), 7, "image/jpeg")
		require.NoError(t, err)
		require.Equal(t, []byte("payload"), api.putBody)
		require.False(t, api.madeBucket)
	})

	t.Run("creates missing bucket", func(t *testing.T) {
		api := &fakeMinio{bucketExists: false}
		s := NewMinioStoreWithAPI(api)

		err := s.Upload(ctx, "frames", "k", strings.NewReader("x"), 1, "")
		require.NoError(t, err)
		require.True(t, api.madeBucket)
	})

	t.Run("propagates put errors", func(t *testing.T) {
		api := &fakeMinio{bucketExists: true, putErr: errors.New("disk full")}
		s := NewMinioStoreWithAPI(api)

		err := s.Upload(ctx, "frames", "k", strings.NewReader("x"), 1, "")
		require.ErrorContains(t, err, "failed to upload object")
	})
}

func TestDownload(t *testing.T) {
	ctx := context.Background()

	t.Run("streams existing object", func(t *testing.T) {
		api := &fakeMinio{getRC: io.NopCloser(bytes.NewReader([]byte("frame-bytes")))}
		s := NewMinioStoreWithAPI(api)

		rc, err := s.Download(ctx, "frames", "cam1/frame.jpg")
		require.NoError(t, err)
		defer rc.Close()

		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.Equal(t, []byte("frame-bytes"), body)
	})

	t.Run("missing object is ErrNotFound", func(t *testing.T) {
		api := &fakeMinio{statErr: notFoundErr()}
		s := NewMinioStoreWithAPI(api)

		_, err := s.Download(ctx, "frames", "nope")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestExists(t *testing.T) {
	ctx := context.Background()

	t.Run("present", func(t *testing.T) {
		s := NewMinioStoreWithAPI(&fakeMinio{})
		ok, err := s.Exists(ctx, "frames", "k")
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("absent", func(t *testing.T) {
		s := NewMinioStoreWithAPI(&fakeMinio{statErr: notFoundErr()})
		ok, err := s.Exists(ctx, "frames", "k")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("infrastructure error", func(t *testing.T) {
		s := NewMinioStoreWithAPI(&fakeMinio{statErr: errors.New("timeout")})
		_, err := s.Exists(ctx, "frames", "k")
		require.Error(t, err)
	})
}
