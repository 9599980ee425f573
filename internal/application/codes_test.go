package application

import (
	"regexp"
	"testing"
)

func TestGenerateCancellationCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{8}$`)

	seen := make(map[string]bool)
	for i := 0; i < 10000; i++ {
		code, err := GenerateCancellationCode()
		if err != nil {
			t.Fatalf("GenerateCancellationCode: %v", err)
		}
		if !pattern.MatchString(code) {
			t.Fatalf("code %q does not match %s", code, pattern)
		}
		seen[code] = true
	}

	// 10000 draws from a 36^8 space colliding would point at a broken
	// generator, not bad luck.
	if len(seen) < 9999 {
		t.Errorf("got %d distinct codes out of 10000", len(seen))
	}
}

func TestGenerateToken(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9a-f]{64}$`)

	a, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	b, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if !pattern.MatchString(a) {
		t.Errorf("token %q is not 64 hex characters", a)
	}
	if a == b {
		t.Error("two tokens came out identical")
	}
}
