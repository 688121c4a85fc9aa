package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewSessionToken returns an opaque 64-character hex token backed by 32
// bytes of crypto/rand entropy. The token carries no identity; the session
// store maps it to a user id server-side.
func NewSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
