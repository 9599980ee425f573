package domain

import "time"

// MagicLink is a bearer token granting read and manage access to all active
// reservations owned by one email. Expiry is checked at redemption time
// only; expired rows are never swept.
type MagicLink struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Expired reports whether the link is past its expiry at the given instant.
func (l *MagicLink) Expired(now time.Time) bool {
	return now.After(l.ExpiresAt)
}

// MagicLinkRepository defines the operations on magic links.
// GetByToken returns (nil, nil) when no row matches.
type MagicLinkRepository interface {
	// Create inserts a new magic link.
	Create(link *MagicLink) error
	// GetByToken looks up a link by its token value.
	GetByToken(token string) (*MagicLink, error)
}
