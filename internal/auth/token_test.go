package auth

import (
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenRoundTrip(t *testing.T) {
	tok, err := GenerateToken(testSecret, "a@x.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken(testSecret, tok)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Email != "a@x.com" {
		t.Errorf("Email = %q, want a@x.com", claims.Email)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	tok, err := GenerateToken(testSecret, "a@x.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ParseToken("another-secret-another-secret-32", tok); err == nil {
		t.Error("ParseToken with wrong secret succeeded, want error")
	}
}

func TestParseTokenExpired(t *testing.T) {
	tok, err := GenerateToken(testSecret, "a@x.com", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ParseToken(testSecret, tok); err == nil {
		t.Error("ParseToken on expired token succeeded, want error")
	}
}
