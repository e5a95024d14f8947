package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", 30*time.Minute)

	token, err := issuer.GenerateToken("tera")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	username, err := issuer.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if username != "tera" {
		t.Fatalf("expected tera, got %q", username)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	issuer := NewTokenIssuer("secret", 30*time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-31 * time.Minute) }

	token, err := issuer.GenerateToken("tera")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := issuer.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenFromOtherKeyRejected(t *testing.T) {
	token, err := NewTokenIssuer("one", time.Minute).GenerateToken("tera")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := NewTokenIssuer("two", time.Minute).ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)
	token, err := issuer.GenerateToken("tera")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	parts := strings.Split(token, ".")
	parts[2] = strings.Repeat("A", len(parts[2]))
	if _, err := issuer.ValidateToken(strings.Join(parts, ".")); err == nil {
		t.Fatal("expected tampered token to be rejected")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("tera")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "tera" {
		t.Fatal("password stored in cleartext")
	}
	if err := VerifyPassword(hash, "tera"); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := VerifyPassword(hash, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRejectUnknownUser(t *testing.T) {
	if err := RejectUnknownUser("anything"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
	if len(dummyHash()) == 0 {
		t.Fatal("dummy hash not generated")
	}
	if _, err := bcrypt.Cost(dummyHash()); err != nil {
		t.Errorf("dummy hash is not a bcrypt hash: %v", err)
	}
}
