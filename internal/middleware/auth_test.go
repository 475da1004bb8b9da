package middleware

import (
	"testing"

	"github.com/google/uuid"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret")
	userID := uuid.New().String()

	token, err := tm.Generate(userID)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	sub, err := tm.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if sub != userID {
		t.Errorf("sub = %q, want %q", sub, userID)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a").Generate(uuid.New().String())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := NewTokenManager("secret-b").Validate(token); err == nil {
		t.Fatal("token signed with another secret must not validate")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret")
	if _, err := tm.Validate("not-a-token"); err == nil {
		t.Fatal("garbage must not validate")
	}
}
