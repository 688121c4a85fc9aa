package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cfascholars/backend/internal/pkg/logger"
)

// LocalStorage keeps blobs on the local filesystem. Used for development
// and tests; production deployments use S3Storage.
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates a LocalStorage rooted at basePath. baseURL is
// prepended to returned blob URLs.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload writes the payload to basePath/key, creating the entity
// subdirectory as needed.
func (ls *LocalStorage) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	dstPath := filepath.Join(ls.basePath, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(dstPath), os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create blob subdirectory: %w", err)
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create blob file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, body); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to write blob content: %w", err)
	}

	return ls.baseURL + "/" + key, nil
}

// Delete removes the blob referenced by the given URL. Deleting a missing
// blob is treated as success so deletes stay idempotent.
func (ls *LocalStorage) Delete(ctx context.Context, blobURL string) error {
	// Upload returns baseURL + "/" + key, so the key is what follows the
	// configured base. The URL path alone would keep the base's own path
	// segments (such as /uploads) and point beside the blob.
	key := strings.TrimPrefix(blobURL, ls.baseURL+"/")
	if key == blobURL {
		parsed, err := url.Parse(blobURL)
		if err != nil {
			return fmt.Errorf("invalid blob URL %q: %w", blobURL, err)
		}
		key = strings.TrimPrefix(parsed.Path, "/")
	}
	if key == "" || key == "." {
		return fmt.Errorf("invalid blob URL %q", blobURL)
	}

	physicalPath := filepath.Join(ls.basePath, filepath.FromSlash(key))
	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("Blob to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete blob")
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}
