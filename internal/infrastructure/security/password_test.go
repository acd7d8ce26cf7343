package security

import (
	"strings"
	"testing"
)

func TestGeneratePassword_Length(t *testing.T) {
	t.Parallel()

	pw, err := GeneratePassword(20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pw) != 20 {
		t.Fatalf("expected length 20, got %d", len(pw))
	}

	for _, c := range pw {
		if !strings.ContainsRune(passwordAlphabet, c) {
			t.Fatalf("unexpected character %q", c)
		}
	}
}

func TestGeneratePassword_MinimumLengthEnforced(t *testing.T) {
	t.Parallel()

	pw, err := GeneratePassword(4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pw) < 12 {
		t.Fatalf("expected at least 12 chars, got %d", len(pw))
	}
}

func TestGeneratePassword_NotConstant(t *testing.T) {
	t.Parallel()

	a, err := GeneratePassword(20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := GeneratePassword(20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Fatal("two generated passwords should not collide")
	}
}
