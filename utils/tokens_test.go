package utils

import (
	"strings"
	"testing"
)

func TestGenerateShortToken(t *testing.T) {
	token := GenerateShortToken(24)

	if len(token) != 48 {
		t.Fatalf("expected 48 hex chars, got %d", len(token))
	}
	for _, c := range token {
		if !strings.ContainsRune("0123456789abcdef", c) {
			t.Fatalf("non-hex character %q in token", c)
		}
	}
	if other := GenerateShortToken(24); other == token {
		t.Fatal("two tokens should not collide")
	}
}
