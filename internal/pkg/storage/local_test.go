package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageUploadWritesUnderBasePath(t *testing.T) {
	basePath := t.TempDir()
	ls, err := NewLocalStorage(basePath, "http://localhost:8080/uploads")
	require.NoError(t, err)

	url, err := ls.Upload(context.Background(), "applications/123-abc.pdf", "application/pdf", strings.NewReader("%PDF-1.4"), 8)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/applications/123-abc.pdf", url)

	content, err := os.ReadFile(filepath.Join(basePath, "applications", "123-abc.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(content))
}

func TestLocalStorageDeleteRemovesUploadedBlob(t *testing.T) {
	basePath := t.TempDir()
	ls, err := NewLocalStorage(basePath, "http://localhost:8080/uploads")
	require.NoError(t, err)

	url, err := ls.Upload(context.Background(), "applications/123-abc.pdf", "application/pdf", strings.NewReader("%PDF-1.4"), 8)
	require.NoError(t, err)

	require.NoError(t, ls.Delete(context.Background(), url))

	_, err = os.Stat(filepath.Join(basePath, "applications", "123-abc.pdf"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorageDeleteIsIdempotent(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	url, err := ls.Upload(context.Background(), "mid-year-reports/456-def.png", "image/png", strings.NewReader("png"), 3)
	require.NoError(t, err)

	require.NoError(t, ls.Delete(context.Background(), url))
	assert.NoError(t, ls.Delete(context.Background(), url))
}
