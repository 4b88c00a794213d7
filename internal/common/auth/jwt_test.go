package auth

import (
	"testing"
	"time"

	"github.com/RentalDrive/RentalDrive/internal/common/apperr"
	"github.com/RentalDrive/RentalDrive/internal/common/config"
)

func testAuthCfg() config.AuthConfig {
	return config.AuthConfig{
		Enabled:     true,
		JWTSecret:   "test-secret",
		Issuer:      "rentaldrive",
		Audience:    "rentaldrive",
		TokenTTLMin: 60,
	}
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	cfg := testAuthCfg()

	token, exp, err := GenerateAccessToken(cfg, "u-1", "admin@rental.test", "admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if exp.Before(time.Now()) {
		t.Fatalf("expected exp in future")
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.Subject != "u-1" {
		t.Fatalf("subject mismatch: %s", claims.Subject)
	}
	if claims.Email != "admin@rental.test" {
		t.Fatalf("email mismatch: %s", claims.Email)
	}
	if claims.Role != "admin" {
		t.Fatalf("role mismatch: %s", claims.Role)
	}
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	cfg := testAuthCfg()
	token, _, err := GenerateAccessToken(cfg, "u-1", "a@b.c", "client")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	other := cfg
	other.JWTSecret = "another-secret"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatalf("expected parse failure with wrong secret")
	} else if apperr.KindOf(err) != apperr.KindUnauthorized {
		t.Fatalf("expected unauthorized kind, got %d", apperr.KindOf(err))
	}
}

func TestParseAccessTokenWrongIssuer(t *testing.T) {
	cfg := testAuthCfg()
	token, _, err := GenerateAccessToken(cfg, "u-1", "a@b.c", "client")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	other := cfg
	other.Issuer = "someone-else"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatalf("expected issuer mismatch to fail")
	}
}
