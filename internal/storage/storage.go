// Package storage holds uploaded profile pictures in an object store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/snapfeed/apiserver/config"
)

// ObjectStorage defines common object operations across backends.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Bucket() string
}

// Storage wraps an ObjectStorage backend with a stable API for avatars.
type Storage struct {
	backend ObjectStorage
}

// New constructs the backend named by cfg.Backend and wraps it.
func New(ctx context.Context, cfg config.StorageConfig) (*Storage, error) {
	switch cfg.Backend {
	case "minio":
		backend, err := NewMinioClient(cfg.Minio)
		if err != nil {
			return nil, fmt.Errorf("init minio storage: %w", err)
		}
		return &Storage{backend: backend}, nil
	case "gcs":
		backend, err := NewGCSClient(ctx, cfg.GCS)
		if err != nil {
			return nil, fmt.Errorf("init gcs storage: %w", err)
		}
		return &Storage{backend: backend}, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// NewWithBackend wraps an already constructed backend. Used by tests.
func NewWithBackend(backend ObjectStorage) *Storage {
	return &Storage{backend: backend}
}

// EnsureBucket ensures the avatar bucket exists.
func (s *Storage) EnsureBucket(ctx context.Context) error {
	return s.backend.EnsureBucket(ctx)
}

// PutAvatar uploads avatar bytes under the generated name.
func (s *Storage) PutAvatar(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	if name == "" {
		return errors.New("avatar name is required")
	}
	return s.backend.Put(ctx, name, r, size, contentType)
}

// GetAvatar opens a reader for a stored avatar.
func (s *Storage) GetAvatar(ctx context.Context, name string) (io.ReadCloser, error) {
	return s.backend.Get(ctx, name)
}

// DeleteAvatar removes a stored avatar.
func (s *Storage) DeleteAvatar(ctx context.Context, name string) error {
	return s.backend.Delete(ctx, name)
}

// Bucket returns the configured bucket name.
func (s *Storage) Bucket() string {
	return s.backend.Bucket()
}
