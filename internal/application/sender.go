package application

// ReservationEmail carries the details of one committed reservation for a
// confirmation email.
type ReservationEmail struct {
	Date             string
	StartTime        string
	EndTime          string
	CancellationCode string
}

// EmailSender is the transactional email contract the services depend on.
// A failed send never rolls back a committed reservation; only the pending
// reservation flow treats it as fatal, because no reservation exists yet to
// fall back on.
type EmailSender interface {
	// SendReservationConfirmation confirms a single committed reservation.
	SendReservationConfirmation(to string, reservation ReservationEmail) error
	// SendBulkReservationConfirmation confirms a batch of committed
	// reservations in one consolidated email.
	SendBulkReservationConfirmation(to string, reservations []ReservationEmail) error
	// SendMagicLink delivers a link URL granting access to the recipient's
	// reservations.
	SendMagicLink(to, linkURL string) error
}
