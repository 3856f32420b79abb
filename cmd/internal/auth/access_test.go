package auth

import (
	"errors"
	"testing"
	"time"
)

func TestAccessTokenRoundtrip(t *testing.T) {
	a := NewAccessTokens(testSecret, time.Hour)

	token, err := a.Issue(1234)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	userID, err := a.Validate(token)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}

	if userID != 1234 {
		t.Errorf("expected user ID 1234, got %d", userID)
	}
}

func TestAccessTokenBearerPrefix(t *testing.T) {
	a := NewAccessTokens(testSecret, time.Hour)

	token, err := a.Issue(99)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	userID, err := a.Validate("Bearer " + token)
	if err != nil {
		t.Fatalf("Validate rejected Authorization header form: %v", err)
	}

	if userID != 99 {
		t.Errorf("expected user ID 99, got %d", userID)
	}
}

func TestAccessTokenInvalid(t *testing.T) {
	a := NewAccessTokens(testSecret, time.Hour)
	other := NewAccessTokens("a-different-secret", time.Hour)

	token, err := other.Issue(7)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err = a.Validate(token); !errors.Is(err, ErrInvalidAccessToken) {
		t.Errorf("expected ErrInvalidAccessToken for foreign signature, got %v", err)
	}

	if _, err = a.Validate(""); !errors.Is(err, ErrInvalidAccessToken) {
		t.Errorf("expected ErrInvalidAccessToken for empty header, got %v", err)
	}
}

func TestAccessTokenExpired(t *testing.T) {
	a := NewAccessTokens(testSecret, -time.Minute)

	token, err := a.Issue(7)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err = a.Validate(token); !errors.Is(err, ErrInvalidAccessToken) {
		t.Errorf("expected ErrInvalidAccessToken for expired token, got %v", err)
	}
}
