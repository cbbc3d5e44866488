package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"content-exporter/core/storage"

	"github.com/minio/minio-go/v7"
)

// Publisher uploads finished exports to object storage.
type Publisher struct {
	client storage.Client
	bucket string
}

// NewPublisher creates a publisher targeting the given bucket.
func NewPublisher(client storage.Client, bucket string) *Publisher {
	return &Publisher{client: client, bucket: bucket}
}

// Publish uploads the file at path and returns the object name. The bucket
// is created when missing.
func (p *Publisher) Publish(ctx context.Context, path string) (string, error) {
	exists, err := p.client.BucketExists(ctx, p.bucket)
	if err != nil {
		return "", fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := p.client.MakeBucket(ctx, p.bucket, minio.MakeBucketOptions{}); err != nil {
			return "", fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open export: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat export: %w", err)
	}

	objectName := filepath.Base(path)
	_, err = p.client.PutObject(ctx, p.bucket, objectName, f, info.Size(), minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload export: %w", err)
	}

	return objectName, nil
}
