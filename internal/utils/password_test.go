package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("motdepasse123")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	assert.Len(t, strings.Split(hash, "$"), 6)
}

func TestHashPasswordSelUnique(t *testing.T) {
	h1, err := HashPassword("motdepasse123")
	require.NoError(t, err)
	h2, err := HashPassword("motdepasse123")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("motdepasse123")
	require.NoError(t, err)

	ok, err := VerifyPassword("motdepasse123", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("mauvais", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordHashInvalide(t *testing.T) {
	_, err := VerifyPassword("motdepasse123", "pas-un-hash")
	assert.Error(t, err)
}
