package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSArchiver mirrors completed episode files to a Google Cloud Storage
// bucket. It never participates in the download itself.
type GCSArchiver struct {
	client       *storage.Client
	bucket       string
	objectPrefix string
}

// NewGCSArchiver creates a new GCSArchiver instance
func NewGCSArchiver(ctx context.Context, bucketName, objectPrefix, credentialsFile string) (*GCSArchiver, error) {
	var client *storage.Client
	var err error

	if credentialsFile != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	} else {
		// Use application default credentials
		client, err = storage.NewClient(ctx)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSArchiver{
		client:       client,
		bucket:       bucketName,
		objectPrefix: objectPrefix,
	}, nil
}

// Archive uploads localPath to the bucket under the configured prefix. An
// object that already exists is left alone, mirroring the local
// already-downloaded skip.
func (a *GCSArchiver) Archive(ctx context.Context, localPath string) error {
	objectName := path.Join(a.objectPrefix, filepath.Base(localPath))
	object := a.client.Bucket(a.bucket).Object(objectName)

	if _, err := object.Attrs(ctx); err == nil {
		slog.Debug("Object already archived, skipping upload", "object", objectName)
		return nil
	} else if !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("failed to check object %s: %w", objectName, err)
	}

	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open %s for archiving: %w", localPath, err)
	}
	defer file.Close()

	writer := object.NewWriter(ctx)
	if _, err := io.Copy(writer, file); err != nil {
		writer.Close()
		return fmt.Errorf("failed to upload %s: %w", objectName, err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize upload of %s: %w", objectName, err)
	}

	slog.Info("Archived episode to GCS", "bucket", a.bucket, "object", objectName)
	return nil
}

// Close releases the underlying client.
func (a *GCSArchiver) Close() error {
	return a.client.Close()
}
