package auth

import (
	"testing"
	"time"

	"github.com/sunethdesoyza/lyst-backend/internal/config"
	"github.com/sunethdesoyza/lyst-backend/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager(config.JWTConfig{Secret: "test-secret", ExpiresIn: "1h"})
	user := &models.User{ID: 42, Username: "alice", Email: "alice@example.com"}

	token, err := manager.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	userID, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if userID != 42 {
		t.Errorf("user id = %d, want 42", userID)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTManager(config.JWTConfig{Secret: "secret-a", ExpiresIn: "1h"})
	verifier := NewJWTManager(config.JWTConfig{Secret: "secret-b", ExpiresIn: "1h"})

	token, err := issuer.GenerateToken(&models.User{ID: 1, Username: "x"})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := verifier.Verify(token); err == nil {
		t.Error("token signed with another secret must not verify")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	manager := NewJWTManager(config.JWTConfig{Secret: "test-secret", ExpiresIn: "1h"})

	if _, err := manager.Verify("not.a.jwt"); err == nil {
		t.Error("garbage token must not verify")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword("secret123", hash) {
		t.Error("correct password must verify")
	}
	if CheckPassword("wrong", hash) {
		t.Error("wrong password must not verify")
	}
}

func TestExpiresInParsing(t *testing.T) {
	m := NewJWTManager(config.JWTConfig{Secret: "s", ExpiresIn: "7d"})
	if m.expiresIn != 7*24*time.Hour {
		t.Errorf("7d parsed to %v", m.expiresIn)
	}

	m = NewJWTManager(config.JWTConfig{Secret: "s", ExpiresIn: "30m"})
	if m.expiresIn.Minutes() != 30 {
		t.Errorf("30m parsed to %v", m.expiresIn)
	}
}
