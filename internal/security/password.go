package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"warbler/internal/models"
)

// HashPassword hashes a plaintext password with bcrypt. An empty password is
// rejected before any hashing or persistence work happens. The plaintext is
// never logged or returned.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password must not be empty", models.ErrValidation)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether the plaintext matches the stored bcrypt hash.
// A mismatch is a normal outcome, not an error.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
