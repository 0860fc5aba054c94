package storage

import (
	"context"
	"fmt"
	"io"

	"mural_backend/internal/config"
)

// Storage is where uploaded files end up: the local upload root or a remote mirror bucket.
type Storage interface {
	// Save stores a file at the given key
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error

	// Delete removes a file; a missing key is not an error
	Delete(ctx context.Context, path string) error

	// GetURL returns a public URL for the file
	GetURL(ctx context.Context, path string) (string, error)
}

const (
	TypeLocal        = "local"
	TypeS3           = "s3"
	TypeCloudflareR2 = "cloudflare_r2"
)

// Config holds storage configuration
type Config struct {
	Type       string // local, s3, cloudflare_r2
	BasePath   string // For local storage
	BaseURL    string // Public URL base
	Bucket     string // For S3/R2
	Region     string // For S3
	AccessKey  string // For S3/R2
	SecretKey  string // For S3/R2
	Endpoint   string // For R2 or custom S3
	PublicRead bool   // Make files public by default
}

// FromAppConfig maps the storage and upload sections onto a storage Config.
func FromAppConfig(cfg *config.Config) Config {
	baseURL := cfg.Storage.BaseURL
	if cfg.Storage.Type == TypeLocal || cfg.Storage.Type == "" {
		baseURL = cfg.Upload.PublicPrefix
	}
	return Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    baseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		PublicRead: cfg.Storage.PublicRead,
	}
}

// IsRemote reports whether the storage type mirrors assets off the local disk.
func (c Config) IsRemote() bool {
	return c.Type == TypeS3 || c.Type == TypeCloudflareR2
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case TypeLocal, "":
		return NewLocalStorage(cfg)
	case TypeS3:
		return NewS3Storage(cfg)
	case TypeCloudflareR2:
		return NewCloudflareR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
