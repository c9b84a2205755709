package jwt

import (
	"errors"
	"testing"
	"time"
)

func TestNewTokenAndParse(t *testing.T) {
	token, err := NewToken("user-1", "secret", time.Hour)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}

	userID, err := Parse(token, "secret")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("got subject %q, want %q", userID, "user-1")
	}
}

func TestParseWrongSecret(t *testing.T) {
	token, err := NewToken("user-1", "secret", time.Hour)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}

	if _, err := Parse(token, "other-secret"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestParseExpiredToken(t *testing.T) {
	token, err := NewToken("user-1", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}

	if _, err := Parse(token, "secret"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestParseGarbage(t *testing.T) {
	if _, err := Parse("not-a-token", "secret"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}
