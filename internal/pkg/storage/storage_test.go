package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildObjectKey(t *testing.T) {
	key := BuildObjectKey("applications", "transcript.pdf")

	assert.True(t, strings.HasPrefix(key, "applications/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))
	assert.NotContains(t, key, "transcript")
}

func TestBuildObjectKeyWithoutExtension(t *testing.T) {
	key := BuildObjectKey("payment-requests", "receipt")

	assert.True(t, strings.HasPrefix(key, "payment-requests/"))
	assert.NotContains(t, strings.TrimPrefix(key, "payment-requests/"), ".")
}

func TestBuildObjectKeyIsCollisionResistant(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key := BuildObjectKey("mid-year-reports", "report.docx")
		assert.False(t, seen[key])
		seen[key] = true
	}
}
