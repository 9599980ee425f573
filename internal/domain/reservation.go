package domain

import "time"

// Reservation books one allowed email into one time slot on one concrete
// calendar date. Date is the canonical business day key ("YYYY-MM-DD"); raw
// timestamps never cross the store boundary for date comparison. A
// reservation is active while CancelledAt is nil; cancelled rows are kept
// forever and do not block re-booking the same (email, slot, date) triple.
type Reservation struct {
	ID               string     `json:"id"`
	AllowedEmailID   string     `json:"allowedEmailId"`
	Email            string     `json:"email"`
	TimeSlotID       string     `json:"timeSlotId"`
	TimeSlot         *TimeSlot  `json:"timeSlot,omitempty"`
	Date             string     `json:"date"`
	CancellationCode string     `json:"cancellationCode"`
	CreatedAt        time.Time  `json:"createdAt"`
	CancelledAt      *time.Time `json:"cancelledAt,omitempty"`
}

// SlotDateCount is one row of the grouped active-reservation aggregate.
type SlotDateCount struct {
	TimeSlotID string
	Date       string
	Count      int
}

// ReservationRepository defines the operations on reservations. Lookups
// return (nil, nil) when no row matches; reads that feed cancellation or
// listing join the owning email and the slot definition.
type ReservationRepository interface {
	// Create inserts a reservation. The capacity count is re-validated
	// inside the same transaction as the insert, after serializing on the
	// slot row, so concurrent bookings can never overshoot MaxCapacity.
	// Returns ErrSlotFull when the re-check fails, ErrAlreadyReserved when
	// the active-uniqueness constraint rejects the row, and
	// ErrSlotInactiveOrMissing when the slot has disappeared.
	Create(reservation *Reservation) error
	// GetByID looks up a reservation by ID.
	GetByID(id string) (*Reservation, error)
	// GetByCancellationCode looks up a reservation by its cancellation code.
	GetByCancellationCode(code string) (*Reservation, error)
	// HasActive reports whether an active reservation exists for the
	// (allowed email, slot, date) triple.
	HasActive(allowedEmailID, timeSlotID, date string) (bool, error)
	// CountActive counts active reservations for one (slot, date) pair.
	CountActive(timeSlotID, date string) (int, error)
	// CountActiveByDates counts active reservations grouped by slot and
	// date for the given dates, in a single query.
	CountActiveByDates(dates []string) ([]SlotDateCount, error)
	// Cancel sets the cancellation timestamp of a still-active reservation.
	// Returns ErrAlreadyCancelled when the row was already cancelled.
	Cancel(id string, at time.Time) error
	// ListActiveFromDate returns the active reservations owned by an email
	// with date >= from, ascending by date then start time.
	ListActiveFromDate(email, from string) ([]Reservation, error)
	// CountActiveByEmail counts the active reservations owned by an
	// allow-list entry, past or future.
	CountActiveByEmail(allowedEmailID string) (int, error)
	// ListAll returns every reservation, newest date first.
	ListAll() ([]Reservation, error)
}
