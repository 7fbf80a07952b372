package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashingLifecycle(t *testing.T) {
	password := "S3curePass!"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("unexpected error hashing password: %v", err)
	}
	if hash == "" || hash == password {
		t.Fatal("expected an opaque hash")
	}
	if !CheckPassword(hash, password) {
		t.Fatal("expected password to verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("expected verification to fail for wrong password")
	}
}

func TestHashPasswordUsesConfiguredCost(t *testing.T) {
	hash, err := HashPassword("another-pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("unexpected error reading cost: %v", err)
	}
	if cost != 10 {
		t.Fatalf("expected cost 10, got %d", cost)
	}
}

func TestHashPasswordRejectsBlank(t *testing.T) {
	if _, err := HashPassword("   "); !errors.Is(err, ErrPasswordBlank) {
		t.Fatalf("expected ErrPasswordBlank, got %v", err)
	}
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	for _, hash := range []string{"", "plain-text", "$2a$10$short"} {
		if CheckPassword(hash, "anything") {
			t.Fatalf("expected malformed hash %q not to match", hash)
		}
	}
}

func TestValidateNewPassword(t *testing.T) {
	cases := []struct {
		password string
		want     error
	}{
		{"        ", ErrPasswordBlank},
		{"short", ErrPasswordTooShort},
		{strings.Repeat("x", 73), ErrPasswordTooLong},
		{"exactly8", nil},
		{strings.Repeat("x", 72), nil},
	}
	for _, tc := range cases {
		if err := ValidateNewPassword(tc.password); !errors.Is(err, tc.want) {
			t.Errorf("ValidateNewPassword(len %d) = %v, want %v", len(tc.password), err, tc.want)
		}
	}
}
