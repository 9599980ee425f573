package domain

import "time"

// AllowedEmail is an identity whitelist entry. An email that is not present
// in the allow list can never own a reservation.
type AllowedEmail struct {
	ID      string    `json:"id"`
	Email   string    `json:"email"`
	AddedAt time.Time `json:"addedAt"`
}

// AllowedEmailSummary is an allow-list entry enriched with its number of
// active reservations, used by the admin dashboard.
type AllowedEmailSummary struct {
	AllowedEmail
	ActiveReservations int `json:"activeReservations"`
}

// AllowedEmailRepository defines the operations on the email allow list.
// Lookups return (nil, nil) when no row matches.
type AllowedEmailRepository interface {
	// FindByEmail looks up an entry by its email address.
	FindByEmail(email string) (*AllowedEmail, error)
	// Create inserts a new allow-list entry.
	Create(entry *AllowedEmail) error
	// Delete removes an entry by ID.
	Delete(id string) error
	// GetByID looks up an entry by ID.
	GetByID(id string) (*AllowedEmail, error)
	// ListWithActiveCounts returns all entries newest first, each with its
	// count of active reservations.
	ListWithActiveCounts() ([]AllowedEmailSummary, error)
}
