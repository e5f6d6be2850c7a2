package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Storage stores uploaded media under relative paths. The stored path is
// opaque to the rest of the system; URL materialization happens at the
// presentation layer via ResolveURL.
type Storage interface {
	// Save stores a file at the given relative path.
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error

	// Delete removes a file at the given relative path.
	Delete(ctx context.Context, path string) error

	// Exists checks if a file exists at the given relative path.
	Exists(ctx context.Context, path string) (bool, error)

	// BaseURL returns the public URL prefix for stored paths.
	BaseURL() string
}

// Config holds storage configuration.
type Config struct {
	Type      string // local or s3
	BasePath  string // local storage root
	BaseURL   string // public URL prefix
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

// NewStorage builds the backend selected by configuration.
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local", "":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// ResolveURL prefixes a stored relative path with the public base URL.
// Already-absolute values pass through untouched, so re-resolving an
// answer is harmless.
func ResolveURL(baseURL, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimSuffix(baseURL, "/") + path
}
