package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Sup3r$ecret")
	require.NoError(t, err)
	require.NotEqual(t, "Sup3r$ecret", hash)

	assert.True(t, CheckPassword(hash, "Sup3r$ecret"))
	assert.False(t, CheckPassword(hash, "sup3r$ecret"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"valid", "Abcdef1!", true},
		{"too short", "Ab1!", false},
		{"too long", "Abcdef1!Abcdef1!Abcdef1!Abcdef1!X", false},
		{"no uppercase", "abcdef1!", false},
		{"no lowercase", "ABCDEF1!", false},
		{"no digit", "Abcdefg!", false},
		{"no special", "Abcdefg1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePasswordStrength(tt.password))
		})
	}
}

func TestNewSessionToken(t *testing.T) {
	first, err := NewSessionToken()
	require.NoError(t, err)
	assert.Len(t, first, 64)

	second, err := NewSessionToken()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
