package storage

import (
	"context"
	"fmt"
	"io"
)

// Storage is where uploaded gallery images live.
type Storage interface {
	// Put stores content under key.
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Delete removes key. Returns nil if the object does not exist.
	Delete(ctx context.Context, key string) error

	// Exists reports whether key is stored.
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns the public URL for key.
	GetURL(key string) string
}

// Config selects and configures a backend.
type Config struct {
	Driver string // local | s3

	LocalPath string
	LocalURL  string

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string
}

// New builds the backend named by cfg.Driver.
func New(ctx context.Context, cfg Config) (Storage, error) {
	switch cfg.Driver {
	case "", "local":
		st, err := NewLocalStorage(cfg.LocalPath, cfg.LocalURL)
		if err != nil {
			return nil, err
		}
		return st, nil
	case "s3":
		st, err := NewS3Storage(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}
