package application

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "first.last@example.com", "user+tag@sub.domain.org"}
	for _, email := range valid {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("ValidateEmail(%q): %v", email, err)
		}
	}

	invalid := []string{"", "plain", "@example.com", "user@", "user@@example.com", "user@example"}
	for _, email := range invalid {
		if err := ValidateEmail(email); err == nil {
			t.Errorf("ValidateEmail(%q): expected error", email)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Student@Example.COM "); got != "student@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}
