package auth_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/santiagosuaza01/suaza-erp-system/internal/auth"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret"
	userID := uuid.New()
	role := "SELLER"

	token, err := auth.GenerateToken(secret, userID, role)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, err := auth.ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("user ID: got %v, want %v", claims.UserID, userID)
	}
	if claims.Role != role {
		t.Errorf("role: got %v, want %v", claims.Role, role)
	}
}

func TestValidateTokenWithWrongSecret(t *testing.T) {
	userID := uuid.New()

	token, err := auth.GenerateToken("secret-a", userID, "SELLER")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	_, err = auth.ValidateToken("secret-b", token)
	if err == nil {
		t.Fatal("expected error validating with wrong secret")
	}
}

func TestValidateTokenWithInvalidString(t *testing.T) {
	_, err := auth.ValidateToken("secret", "not-a-jwt")
	if err == nil {
		t.Fatal("expected error validating invalid token string")
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	secret := "test-secret"
	userID := uuid.New()

	token, err := auth.GenerateRefreshToken(secret, userID)
	if err != nil {
		t.Fatalf("generate refresh token: %v", err)
	}

	got, err := auth.ValidateRefreshToken(secret, token)
	if err != nil {
		t.Fatalf("validate refresh token: %v", err)
	}
	if got != userID {
		t.Errorf("user ID: got %v, want %v", got, userID)
	}
}
