package auth

import (
	"testing"
	"time"
)

func TestPasswordRoundtrip(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter2" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword(hash, "hunter2") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("wrong password accepted")
	}
}

func TestTokenRoundtrip(t *testing.T) {
	m := NewManager("test-secret", 0)

	token, err := m.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	sub, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if sub != "user-123" {
		t.Fatalf("subject = %q, want user-123", sub)
	}
}

func TestTokenExpired(t *testing.T) {
	m := NewManager("test-secret", -time.Hour)

	token, err := m.Issue("user-123")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Validate(token); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", 0).Issue("user-123")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewManager("secret-b", 0).Validate(token); err == nil {
		t.Fatal("token signed with a different secret accepted")
	}
}

func TestTokenGarbage(t *testing.T) {
	if _, err := NewManager("secret", 0).Validate("not.a.token"); err == nil {
		t.Fatal("garbage token accepted")
	}
}
