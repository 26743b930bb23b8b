package storage

import (
	"context"
	"fmt"
	"io"

	"estatehub_backend/internal/config"
)

// Storage abstracts where uploaded files live. Paths are storage-relative
// keys like "properties/<id>/<file>".
type Storage interface {
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// URL returns the public address clients fetch the file from.
	URL(key string) string
}

func New(cfg *config.Config) (Storage, error) {
	switch cfg.Storage.Type {
	case "", "local":
		return NewLocal(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	case "s3":
		return NewS3(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}
}
