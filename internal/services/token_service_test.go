package services_test

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"

	"warbler/internal/models"
	"warbler/internal/services"
)

func TestTokenService_IssueAndValidate(t *testing.T) {
	svc := services.NewTokenService("test_jwt_secret")

	user := &models.User{ID: "user-123", Username: "testuser"}
	token, err := svc.Issue(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, "testuser", claims["username"])
}

func TestTokenService_ValidateInvalid(t *testing.T) {
	svc := services.NewTokenService("test_jwt_secret")

	_, err := svc.Validate("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	// Token signed with a different secret.
	other := services.NewTokenService("other_secret")
	user := &models.User{ID: "user-123", Username: "testuser"}
	token, _ := other.Issue(user)
	_, err = svc.Validate(token)
	assert.Error(t, err)

	// Expired token.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  "user-123",
		"username": "testuser",
		"exp":      time.Now().Add(-time.Hour).Unix(), // Expired 1 hour ago
	})
	expiredString, _ := expired.SignedString([]byte("test_jwt_secret"))
	_, err = svc.Validate(expiredString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}
