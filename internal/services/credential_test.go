package services_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crotools/cro-admin-backend/internal/services"
)

func TestHashPassword(t *testing.T) {
	t.Run("produces hex key dot hex salt", func(t *testing.T) {
		hash, err := services.HashPassword("password123")
		require.NoError(t, err)

		parts := strings.Split(hash, ".")
		require.Len(t, parts, 2)
		assert.Len(t, parts[0], 128) // 64-byte key
		assert.Len(t, parts[1], 32)  // 16-byte salt
	})

	t.Run("same password produces different hashes", func(t *testing.T) {
		hash1, err := services.HashPassword("samepassword")
		require.NoError(t, err)
		hash2, err := services.HashPassword("samepassword")
		require.NoError(t, err)
		assert.NotEqual(t, hash1, hash2)
	})
}

func TestVerifyPassword(t *testing.T) {
	t.Run("correct password verifies", func(t *testing.T) {
		hash, err := services.HashPassword("correctpassword")
		require.NoError(t, err)
		assert.True(t, services.VerifyPassword("correctpassword", hash))
	})

	t.Run("incorrect password fails", func(t *testing.T) {
		hash, err := services.HashPassword("correctpassword")
		require.NoError(t, err)
		assert.False(t, services.VerifyPassword("wrongpassword", hash))
	})

	t.Run("hash of a different password fails", func(t *testing.T) {
		hash, err := services.HashPassword("password-a")
		require.NoError(t, err)
		assert.False(t, services.VerifyPassword("password-b", hash))
	})

	t.Run("malformed stored values fail closed", func(t *testing.T) {
		for _, stored := range []string{
			"",
			"no-separator",
			"deadbeef",
			"nothex.deadbeef",
			"deadbeef.nothex",
			".deadbeef",
		} {
			assert.False(t, services.VerifyPassword("password", stored), "stored=%q", stored)
		}
	})
}
