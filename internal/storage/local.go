package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPublicPrefix is the URL prefix of the upload root when none is configured.
const DefaultPublicPrefix = "/static/uploads"

// LocalStorage keeps files under basePath. media.Placer writes every primary asset through it.
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocal builds a LocalStorage without touching the disk.
func NewLocal(basePath, baseURL string) *LocalStorage {
	if basePath == "" {
		basePath = "./static/uploads"
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = DefaultPublicPrefix
	}
	return &LocalStorage{basePath: basePath, baseURL: baseURL}
}

// NewLocalStorage creates the base directory and returns the storage
func NewLocalStorage(cfg Config) (*LocalStorage, error) {
	s := NewLocal(cfg.BasePath, cfg.BaseURL)
	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return s, nil
}

func (s *LocalStorage) BasePath() string { return s.basePath }

// Path resolves a key to a file path. Keys never escape basePath.
func (s *LocalStorage) Path(key string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(key))
	if clean == string(filepath.Separator) {
		return "", fmt.Errorf("invalid storage path: %q", key)
	}
	return filepath.Join(s.basePath, clean), nil
}

// URL is the public path of a key, e.g. /static/uploads/images/<name>.
func (s *LocalStorage) URL(key string) string {
	return s.baseURL + "/" + strings.TrimLeft(filepath.ToSlash(key), "/")
}

// Save writes reader to key. A failed write leaves no partial file behind.
func (s *LocalStorage) Save(ctx context.Context, key string, reader io.Reader, contentType string) error {
	fullPath, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(file, reader); err != nil {
		file.Close()
		os.Remove(fullPath)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(fullPath)
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}

// Delete removes a file; a missing file is not an error
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	fullPath, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalStorage) GetURL(ctx context.Context, key string) (string, error) {
	return s.URL(key), nil
}
