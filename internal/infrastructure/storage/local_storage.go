package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	catalogapp "github.com/pupuk/storefront/internal/application/catalog"
)

var _ catalogapp.ImageStorage = (*LocalImageStorage)(nil)

// LocalImageStorage writes images under a directory that the HTTP server
// exposes as static files. Meant for development and single-node installs.
type LocalImageStorage struct {
	dir     string
	baseURL string
}

// NewLocalImageStorage creates dir when missing.
func NewLocalImageStorage(dir, baseURL string) (*LocalImageStorage, error) {
	if dir == "" {
		return nil, errors.New("storage local directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalImageStorage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalImageStorage) path(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if key == "" || clean == "/" {
		return "", errors.New("storage key is required")
	}
	return filepath.Join(s.dir, clean), nil
}

func (s *LocalImageStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	p, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(p)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return s.PublicURL(key), nil
}

func (s *LocalImageStorage) Delete(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalImageStorage) PublicURL(key string) string {
	return s.baseURL + "/" + strings.TrimLeft(key, "/")
}

func (s *LocalImageStorage) KeyFromURL(url string) (string, bool) {
	return keyFromURL(s.baseURL, url)
}

// Dir is the directory served as static files.
func (s *LocalImageStorage) Dir() string {
	return s.dir
}
