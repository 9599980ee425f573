package domain

import "errors"

// Business rejections form a closed set so that handlers can render a
// specific, non-leaking message for each one. Infrastructure failures are
// wrapped with %w instead and never reach the client verbatim.
var (
	// Booking rejections, in the order the rule engine checks them.
	ErrEmailNotAllowed       = errors.New("email is not allowed to reserve")
	ErrSlotInactiveOrMissing = errors.New("time slot is invalid or inactive")
	ErrDayMismatch           = errors.New("date does not fall on the slot's weekday")
	ErrSlotInPast            = errors.New("time slot is in the past")
	ErrAlreadyReserved       = errors.New("an active reservation already exists for this slot and date")
	ErrSlotFull              = errors.New("no places left for this slot and date")

	// Cancellation rejections.
	ErrCodeNotFound             = errors.New("cancellation code not found")
	ErrAlreadyCancelled         = errors.New("reservation is already cancelled")
	ErrCancellationWindowClosed = errors.New("reservations can only be cancelled at least 24 hours in advance")
	ErrSessionExpired           = errors.New("session expired")
	// ErrNotOwnerOrNotFound deliberately collapses "reservation does not
	// exist" and "reservation belongs to someone else" so a token holder
	// cannot probe ownership of reservation IDs.
	ErrNotOwnerOrNotFound = errors.New("reservation not found or not authorized")

	// Token rejections.
	ErrLinkInvalid = errors.New("link is invalid")
	ErrLinkExpired = errors.New("link has expired")

	// Admin catalog rejections.
	ErrEmailAlreadyAllowed  = errors.New("email is already in the allow list")
	ErrEmailHasReservations = errors.New("email still owns active reservations")
	ErrSlotWindowExists     = errors.New("a slot already exists for this weekday and time window")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrNotFound             = errors.New("not found")
)
