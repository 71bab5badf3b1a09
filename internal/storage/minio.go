package storage

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// FileStore stores profile uploads (resumes, photos, cover images) in an
// S3-compatible bucket. Objects live under {kind}s/{userID}/ so an
// account wipe removes three fixed prefixes.
type FileStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
	logger    *slog.Logger
}

type FileStoreConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

func NewFileStore(cfg FileStoreConfig, logger *slog.Logger) (*FileStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	publicURL := strings.TrimRight(cfg.PublicURL, "/")
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &FileStore{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: publicURL,
		logger:    logger,
	}, nil
}

// EnsureBucket creates the bucket if it does not exist yet
func (f *FileStore) EnsureBucket(ctx context.Context) error {
	exists, err := f.client.BucketExists(ctx, f.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}

	if err := f.client.MakeBucket(ctx, f.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	f.logger.Info("storage bucket created", "bucket", f.bucket)
	return nil
}

// uploadPrefixes are the fixed key roots, one per upload kind.
var uploadPrefixes = []string{"resumes", "photos", "covers"}

// objectKey builds the object key: {kind}s/{userID}/{timestamp}_{filename}
func (f *FileStore) objectKey(userID, kind, filename string) string {
	base := path.Base(filename)
	return fmt.Sprintf("%ss/%s/%d_%s", kind, userID, time.Now().UnixNano(), base)
}

// Upload stores a multipart upload and returns its public URL
func (f *FileStore) Upload(ctx context.Context, userID, kind string, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	key := f.objectKey(userID, kind, header.Filename)
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = f.client.PutObject(ctx, f.bucket, key, file, header.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	f.logger.Info("file uploaded", "bucket", f.bucket, "key", key, "size", header.Size)
	return fmt.Sprintf("%s/%s", f.publicURL, key), nil
}

// DeleteByPrefix removes every object under the given prefix. Missing
// objects are not an error; the wipe is idempotent.
func (f *FileStore) DeleteByPrefix(ctx context.Context, prefix string) error {
	objects := f.client.ListObjects(ctx, f.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	var lastErr error
	removed := 0
	for object := range objects {
		if object.Err != nil {
			lastErr = fmt.Errorf("failed to list objects: %w", object.Err)
			continue
		}
		if err := f.client.RemoveObject(ctx, f.bucket, object.Key, minio.RemoveObjectOptions{}); err != nil {
			lastErr = fmt.Errorf("failed to remove object %s: %w", object.Key, err)
			f.logger.Warn("object removal failed", "key", object.Key, "error", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		f.logger.Info("objects removed", "prefix", prefix, "count", removed)
	}
	return lastErr
}

// DeleteUserFiles wipes all uploads belonging to a user, one kind prefix
// at a time. Each prefix is attempted even when an earlier one fails.
func (f *FileStore) DeleteUserFiles(ctx context.Context, userID string) error {
	var lastErr error
	for _, prefix := range uploadPrefixes {
		if err := f.DeleteByPrefix(ctx, fmt.Sprintf("%s/%s/", prefix, userID)); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
