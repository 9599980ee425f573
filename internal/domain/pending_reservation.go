package domain

import "time"

// SlotSelection is one (slot, date) choice inside a pending reservation.
// Date is a business day key ("YYYY-MM-DD").
type SlotSelection struct {
	SlotID string `json:"slotId"`
	Date   string `json:"date"`
}

// PendingReservation is a provisional booking intent tied to an email,
// awaiting proof of email ownership before its selections become real
// reservations. Unlike magic links, expired rows are deleted eagerly when
// looked up.
type PendingReservation struct {
	ID         string          `json:"id"`
	Email      string          `json:"email"`
	Token      string          `json:"token"`
	Selections []SlotSelection `json:"selections"`
	ExpiresAt  time.Time       `json:"expiresAt"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// Expired reports whether the pending reservation is past its expiry.
func (p *PendingReservation) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

// PendingReservationRepository defines the operations on pending
// reservations. GetByToken returns (nil, nil) when no row matches.
type PendingReservationRepository interface {
	// Create inserts a new pending reservation.
	Create(pending *PendingReservation) error
	// GetByToken looks up a pending reservation by its token value.
	GetByToken(token string) (*PendingReservation, error)
	// DeleteByToken removes a pending reservation. Deleting a missing row
	// is not an error.
	DeleteByToken(token string) error
}
