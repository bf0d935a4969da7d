package utils

import (
	"strings"
	"testing"
)

func TestGenerateRandomStringLengthAndCharset(t *testing.T) {
	s := GenerateRandomString(16)
	if len(s) != 16 {
		t.Fatalf("length = %d, want 16", len(s))
	}
	for _, r := range s {
		if !strings.ContainsRune(string(letterRunes), r) {
			t.Errorf("unexpected rune %q", r)
		}
	}
}

func TestNewIDIsUnique(t *testing.T) {
	if NewID() == NewID() {
		t.Error("consecutive ids must differ")
	}
}

func TestDigitsOnly(t *testing.T) {
	if got := DigitsOnly("+51 987-654-321"); got != "51987654321" {
		t.Errorf("DigitsOnly = %q, want 51987654321", got)
	}
	if got := DigitsOnly("no digits"); got != "" {
		t.Errorf("DigitsOnly = %q, want empty", got)
	}
}
