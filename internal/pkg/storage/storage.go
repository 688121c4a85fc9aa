package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// BlobStore uploads and deletes opaque byte payloads in an external object
// store and returns a dereferenceable URL for each upload.
type BlobStore interface {
	// Upload persists the payload under key and returns its public URL.
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	// Delete removes the blob referenced by the given URL.
	Delete(ctx context.Context, url string) error
}

// BuildObjectKey generates a collision-resistant storage key, namespaced by
// the related entity type: <folder>/<unix-ms>-<uuid><ext>.
func BuildObjectKey(folder, originalName string) string {
	ext := filepath.Ext(originalName)
	return fmt.Sprintf("%s/%d-%s%s", folder, time.Now().UnixMilli(), uuid.New().String(), ext)
}
