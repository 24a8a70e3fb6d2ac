package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"skilltrack/internal/config"
)

func newTestService(t *testing.T, secret string, expiration time.Duration) *Service {
	t.Helper()
	svc, err := NewService(&config.JWTConfig{
		Secret:     secret,
		Issuer:     "skilltrack",
		Expiration: expiration,
	})
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	return svc
}

func TestValidateToken(t *testing.T) {
	svc := newTestService(t, "test-secret-with-enough-entropy", time.Hour)
	if svc.Algorithm() != "HS256" {
		t.Fatalf("Expected HS256, got %s", svc.Algorithm())
	}

	token, err := svc.GenerateToken(1, "test@example.com")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}
	if claims.UserID != 1 {
		t.Errorf("Expected user ID 1, got %d", claims.UserID)
	}
	if claims.Email != "test@example.com" {
		t.Errorf("Expected email test@example.com, got %s", claims.Email)
	}
	if claims.ID == "" {
		t.Error("Token should carry a JTI")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	svc := newTestService(t, "test-secret-with-enough-entropy", -time.Hour)

	token, err := svc.GenerateToken(1, "test@example.com")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	_, err = svc.ValidateToken(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := newTestService(t, "secret-one-secret-one-secret-one", time.Hour)
	verifier := newTestService(t, "secret-two-secret-two-secret-two", time.Hour)

	token, err := issuer.GenerateToken(1, "test@example.com")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	if _, err := verifier.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateTokenWrongIssuer(t *testing.T) {
	svc := newTestService(t, "test-secret-with-enough-entropy", time.Hour)
	other, err := NewService(&config.JWTConfig{Secret: "test-secret-with-enough-entropy", Issuer: "someone-else", Expiration: time.Hour})
	if err != nil {
		t.Fatal(err)
	}

	token, err := other.GenerateToken(1, "test@example.com")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	if _, err := svc.ValidateToken(token); err == nil {
		t.Error("Should reject a token from another issuer")
	}
}

func TestECDSAKeys(t *testing.T) {
	privatePEM, err := GenerateKeyPEM()
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	publicPEM, err := PublicKeyPEM(privatePEM)
	if err != nil {
		t.Fatalf("Failed to derive public key: %v", err)
	}

	// single-line form as written to .env
	signer := newTestService(t, strings.ReplaceAll(string(privatePEM), "\n", `\n`), time.Hour)
	verifier := newTestService(t, string(publicPEM), time.Hour)
	if signer.Algorithm() != "ES256" || verifier.Algorithm() != "ES256" {
		t.Fatalf("Expected ES256, got %s and %s", signer.Algorithm(), verifier.Algorithm())
	}

	token, err := signer.GenerateToken(5, "lead@example.com")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	claims, err := verifier.ValidateToken(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}
	if claims.UserID != 5 {
		t.Errorf("Expected user ID 5, got %d", claims.UserID)
	}

	if _, err := verifier.GenerateToken(5, "lead@example.com"); !errors.Is(err, ErrVerifyOnly) {
		t.Errorf("Expected ErrVerifyOnly, got %v", err)
	}
}

func TestRejectsAlgorithmSwitch(t *testing.T) {
	privatePEM, err := GenerateKeyPEM()
	if err != nil {
		t.Fatal(err)
	}
	ecdsaSvc := newTestService(t, string(privatePEM), time.Hour)
	hmacSvc := newTestService(t, "test-secret-with-enough-entropy", time.Hour)

	token, err := hmacSvc.GenerateToken(1, "test@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ecdsaSvc.ValidateToken(token); err == nil {
		t.Error("ES256 service should reject an HS256 token")
	}
}
