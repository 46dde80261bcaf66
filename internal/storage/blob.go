// Package storage holds the blob-store collaborator used for company
// documents. Objects are addressed by path with overwrite semantics: the same
// path replaces prior content.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/fiich/fiich-api/internal/apperr"
	"github.com/fiich/fiich-api/internal/config"
)

// BlobStore uploads document bytes and returns a publicly resolvable URL.
type BlobStore interface {
	Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) (string, error)
}

// S3BlobStore stores documents in an S3-compatible bucket.
type S3BlobStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewS3BlobStore constructs a blob store from config.
func NewS3BlobStore(cfg config.StorageConfig) (*S3BlobStore, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, fmt.Errorf("storage endpoint is required")
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, apperr.Dependency(err, "failed to create storage client")
	}

	publicURL := strings.TrimRight(cfg.PublicURL, "/")
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &S3BlobStore{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: publicURL,
	}, nil
}

// Upload writes the object at path, replacing any prior content, and returns
// its public URL.
func (s *S3BlobStore) Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, path, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", apperr.Dependency(err, "failed to upload object "+path)
	}

	escaped := make([]string, 0, 4)
	for _, segment := range strings.Split(path, "/") {
		escaped = append(escaped, url.PathEscape(segment))
	}
	return s.publicURL + "/" + strings.Join(escaped, "/"), nil
}
