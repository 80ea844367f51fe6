package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
)

// Uploader pushes finished archive files into one bucket.
type Uploader struct {
	client Client
	bucket string
}

// NewUploader wraps a storage client for a fixed bucket.
func NewUploader(client Client, bucket string) *Uploader {
	return &Uploader{client: client, bucket: bucket}
}

// EnsureBucket creates the target bucket if it does not exist yet.
func (u *Uploader) EnsureBucket(ctx context.Context) error {
	exists, err := u.client.BucketExists(ctx, u.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %q: %w", u.bucket, err)
	}
	if exists {
		return nil
	}
	if err := u.client.MakeBucket(ctx, u.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %q: %w", u.bucket, err)
	}
	return nil
}

// UploadFile streams one local file into the bucket under its base name.
func (u *Uploader) UploadFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	objectName := filepath.Base(path)
	_, err = u.client.PutObject(ctx, u.bucket, objectName, file, info.Size(), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", objectName, err)
	}
	return nil
}

// ListArchives returns the object names currently in the bucket.
func (u *Uploader) ListArchives(ctx context.Context) ([]string, error) {
	names := []string{}
	for object := range u.client.ListObjects(ctx, u.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list bucket %q: %w", u.bucket, object.Err)
		}
		names = append(names, object.Key)
	}
	return names, nil
}
