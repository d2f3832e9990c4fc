package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("pw123456")
	require.NoError(t, err)

	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "pw123456", hash)
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := HashPassword("pw123456")
	require.NoError(t, err)

	second, err := HashPassword("pw123456")
	require.NoError(t, err)

	// bcrypt salts each hash, so two hashes of the same password differ
	assert.NotEqual(t, first, second)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("pw123456")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("pw123456", hash))
	assert.False(t, VerifyPassword("wrong-password", hash))
	assert.False(t, VerifyPassword("", hash))
	assert.False(t, VerifyPassword("pw123456", "not-a-bcrypt-hash"))
}
