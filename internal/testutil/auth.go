package testutil

import (
	"net/http"
	"testing"
	"time"

	"skilltrack/internal/auth"
	"skilltrack/internal/config"
	"skilltrack/internal/models"
)

// JWTSecret is the HS256 secret shared by AuthHelper and servers under test
const JWTSecret = "test-secret-key-for-testing-only"

// JWTConfig returns the token settings used in tests
func JWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Secret:     JWTSecret,
		Issuer:     "skilltrack-test",
		Expiration: time.Hour,
	}
}

// AuthHelper provides JWT token generation for tests
type AuthHelper struct {
	Tokens *auth.Service
}

// NewAuthHelper creates a new auth helper
func NewAuthHelper(t *testing.T) *AuthHelper {
	t.Helper()

	tokens, err := auth.NewService(JWTConfig())
	if err != nil {
		t.Fatalf("Failed to create token service: %v", err)
	}
	return &AuthHelper{Tokens: tokens}
}

// AddAuthHeader adds an authorization header to the request
func (h *AuthHelper) AddAuthHeader(t *testing.T, req *http.Request, user *models.User) {
	t.Helper()

	token, err := h.Tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
}
