package application

import (
	"fmt"
	"time"

	"github.com/OthmanASSAS/slotify/internal/domain"
)

// cancellationWindow is how long before a slot starts that cancellation
// closes. Exactly 24h00m00s before the start is still allowed.
const cancellationWindow = 24 * time.Hour

// CanCancel reports whether a reservation starting at slotStart may still be
// cancelled at instant now.
func CanCancel(now, slotStart time.Time) bool {
	return slotStart.Sub(now) >= cancellationWindow
}

// CancellationService cancels reservations through either a cancellation
// code or a magic-link token, sharing one commit path. Cancellation frees
// capacity immediately because availability is always derived from active
// rows.
type CancellationService struct {
	reservationRepo domain.ReservationRepository
	magicLinkRepo   domain.MagicLinkRepository
	calendar        *BusinessCalendar
	now             Clock
}

// NewCancellationService creates a new cancellation service.
func NewCancellationService(
	reservationRepo domain.ReservationRepository,
	magicLinkRepo domain.MagicLinkRepository,
	calendar *BusinessCalendar,
	now Clock,
) *CancellationService {
	return &CancellationService{
		reservationRepo: reservationRepo,
		magicLinkRepo:   magicLinkRepo,
		calendar:        calendar,
		now:             now,
	}
}

// CancelByCode cancels the reservation identified by a cancellation code.
func (s *CancellationService) CancelByCode(code string) error {
	reservation, err := s.reservationRepo.GetByCancellationCode(code)
	if err != nil {
		return fmt.Errorf("failed to look up reservation: %w", err)
	}
	if reservation == nil {
		return domain.ErrCodeNotFound
	}
	return s.cancel(reservation)
}

// CancelByToken cancels a reservation by ID on behalf of a magic-link
// holder. A missing reservation and a reservation owned by another email
// produce the same rejection, so token holders cannot probe ownership.
func (s *CancellationService) CancelByToken(token, reservationID string) error {
	link, err := s.magicLinkRepo.GetByToken(token)
	if err != nil {
		return fmt.Errorf("failed to look up magic link: %w", err)
	}
	if link == nil || link.Expired(s.now()) {
		return domain.ErrSessionExpired
	}

	reservation, err := s.reservationRepo.GetByID(reservationID)
	if err != nil {
		return fmt.Errorf("failed to look up reservation: %w", err)
	}
	if reservation == nil || reservation.Email != link.Email {
		return domain.ErrNotOwnerOrNotFound
	}
	return s.cancel(reservation)
}

// cancel is the shared commit path. The store update is conditional on the
// row still being active, so a double-cancel race degrades to the second
// caller seeing ErrAlreadyCancelled.
func (s *CancellationService) cancel(reservation *domain.Reservation) error {
	if reservation.CancelledAt != nil {
		return domain.ErrAlreadyCancelled
	}

	if reservation.TimeSlot == nil {
		return fmt.Errorf("reservation %s is missing its slot definition", reservation.ID)
	}
	start, err := s.calendar.SlotStart(reservation.Date, reservation.TimeSlot.StartTime)
	if err != nil {
		return err
	}
	if !CanCancel(s.now(), start) {
		return domain.ErrCancellationWindowClosed
	}

	return s.reservationRepo.Cancel(reservation.ID, s.now())
}
