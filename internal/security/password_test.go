package security_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"warbler/internal/models"
	"warbler/internal/security"
)

func TestHashPassword(t *testing.T) {
	hash, err := security.HashPassword("elleelle")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	// The stored value must never equal the plaintext.
	assert.NotEqual(t, "elleelle", hash)

	// Hashing the same password twice must not produce the same hash (salt).
	hash2, err := security.HashPassword("elleelle")
	assert.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
}

func TestHashPasswordEmpty(t *testing.T) {
	_, err := security.HashPassword("")
	assert.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestCheckPassword(t *testing.T) {
	hash, err := security.HashPassword("darcydarcy")
	assert.NoError(t, err)

	assert.True(t, security.CheckPassword("darcydarcy", hash))
	assert.False(t, security.CheckPassword("wrongpassword", hash))
	assert.False(t, security.CheckPassword("", hash))
	// Garbage hash must return false, never panic.
	assert.False(t, security.CheckPassword("darcydarcy", "not-a-bcrypt-hash"))
}
