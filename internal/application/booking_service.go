package application

import (
	"fmt"
	"log"
	"sync"

	"github.com/OthmanASSAS/slotify/internal/domain"
	"github.com/google/uuid"
)

// BookingResult identifies a committed reservation.
type BookingResult struct {
	ReservationID    string `json:"reservationId"`
	CancellationCode string `json:"cancellationCode"`
}

// BatchItem is one (slot, date) pair of a batch booking request.
type BatchItem struct {
	SlotID string `json:"slotId"`
	Date   string `json:"date"`
}

// BatchOutcome is the per-pair result of a batch booking. Partial success is
// expected: some pairs commit, others carry a rejection.
type BatchOutcome struct {
	SlotID string         `json:"slotId"`
	Date   string         `json:"date"`
	Result *BookingResult `json:"result,omitempty"`
	Err    error          `json:"-"`
}

// BookingService validates and commits reservations. The checks run in a
// fixed order so the first failure names the most specific reason; the
// store's transactional capacity re-check and the active-uniqueness
// constraint close the read-then-write races the in-process checks leave
// open.
type BookingService struct {
	emailRepo       domain.AllowedEmailRepository
	slotRepo        domain.TimeSlotRepository
	reservationRepo domain.ReservationRepository
	sender          EmailSender
	calendar        *BusinessCalendar
	now             Clock
}

// NewBookingService creates a new booking service. The sender may be nil
// when no mail transport is configured; confirmations are then skipped.
func NewBookingService(
	emailRepo domain.AllowedEmailRepository,
	slotRepo domain.TimeSlotRepository,
	reservationRepo domain.ReservationRepository,
	sender EmailSender,
	calendar *BusinessCalendar,
	now Clock,
) *BookingService {
	return &BookingService{
		emailRepo:       emailRepo,
		slotRepo:        slotRepo,
		reservationRepo: reservationRepo,
		sender:          sender,
		calendar:        calendar,
		now:             now,
	}
}

// Book commits a single reservation for (email, slot, date) and sends a
// confirmation email. The email is best-effort: a failed send is logged and
// never undoes the committed reservation.
func (s *BookingService) Book(email, slotID, date string) (*BookingResult, error) {
	reservation, slot, err := s.book(email, slotID, date)
	if err != nil {
		return nil, err
	}

	if s.sender != nil {
		confirmation := ReservationEmail{
			Date:             reservation.Date,
			StartTime:        slot.StartTime,
			EndTime:          slot.EndTime,
			CancellationCode: reservation.CancellationCode,
		}
		if err := s.sender.SendReservationConfirmation(reservation.Email, confirmation); err != nil {
			log.Printf("Failed to send confirmation email for reservation %s: %v", reservation.ID, err)
		}
	}

	return &BookingResult{
		ReservationID:    reservation.ID,
		CancellationCode: reservation.CancellationCode,
	}, nil
}

// BookBatch runs every (slot, date) pair through the rule engine
// concurrently. Completion order is unspecified; outcomes are reported in
// input order. One consolidated confirmation email covers the succeeded
// subset, if any; a batch of one falls back to the plain confirmation.
func (s *BookingService) BookBatch(email string, items []BatchItem) ([]BatchOutcome, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("at least one slot is required")
	}

	outcomes := make([]BatchOutcome, len(items))
	confirmations := make([]ReservationEmail, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item BatchItem) {
			defer wg.Done()
			reservation, slot, err := s.book(email, item.SlotID, item.Date)
			if err != nil {
				outcomes[i] = BatchOutcome{SlotID: item.SlotID, Date: item.Date, Err: err}
				return
			}
			outcomes[i] = BatchOutcome{
				SlotID: item.SlotID,
				Date:   item.Date,
				Result: &BookingResult{
					ReservationID:    reservation.ID,
					CancellationCode: reservation.CancellationCode,
				},
			}
			confirmations[i] = ReservationEmail{
				Date:             reservation.Date,
				StartTime:        slot.StartTime,
				EndTime:          slot.EndTime,
				CancellationCode: reservation.CancellationCode,
			}
		}(i, item)
	}
	wg.Wait()

	var succeeded []ReservationEmail
	for i := range outcomes {
		if outcomes[i].Result != nil {
			succeeded = append(succeeded, confirmations[i])
		}
	}

	if len(succeeded) > 0 && s.sender != nil {
		to := NormalizeEmail(email)
		if len(items) == 1 {
			if err := s.sender.SendReservationConfirmation(to, succeeded[0]); err != nil {
				log.Printf("Failed to send confirmation email to %s: %v", to, err)
			}
		} else if err := s.sender.SendBulkReservationConfirmation(to, succeeded); err != nil {
			log.Printf("Failed to send bulk confirmation email to %s: %v", to, err)
		}
	}

	return outcomes, nil
}

// book runs the rule engine for one pair and commits on success, without
// sending email. Checks short-circuit on the first failure; the order
// matters for user-facing error specificity, not for correctness.
func (s *BookingService) book(email, slotID, date string) (*domain.Reservation, *domain.TimeSlot, error) {
	email = NormalizeEmail(email)
	if !s.calendar.ValidDayKey(date) {
		return nil, nil, fmt.Errorf("invalid date %q", date)
	}

	// 1. The email must be on the allow list.
	allowed, err := s.emailRepo.FindByEmail(email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up allowed email: %w", err)
	}
	if allowed == nil {
		return nil, nil, domain.ErrEmailNotAllowed
	}

	// 2. The slot must exist and be active.
	slot, err := s.slotRepo.GetByID(slotID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load slot: %w", err)
	}
	if slot == nil || !slot.IsActive {
		return nil, nil, domain.ErrSlotInactiveOrMissing
	}

	// 3. The date must fall on the slot's weekday.
	dayOfWeek, err := s.calendar.DayOfWeek(date)
	if err != nil {
		return nil, nil, err
	}
	if dayOfWeek != slot.DayOfWeek {
		return nil, nil, domain.ErrDayMismatch
	}

	// 4. The slot's start instant must not be in the past.
	start, err := s.calendar.SlotStart(date, slot.StartTime)
	if err != nil {
		return nil, nil, err
	}
	if start.Before(s.now()) {
		return nil, nil, domain.ErrSlotInPast
	}

	// 5. No active duplicate for the same (email, slot, date).
	exists, err := s.reservationRepo.HasActive(allowed.ID, slotID, date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check for existing reservation: %w", err)
	}
	if exists {
		return nil, nil, domain.ErrAlreadyReserved
	}

	// 6. Capacity must remain. The store re-validates this count inside the
	// insert transaction; this read only exists to reject early with the
	// specific reason.
	count, err := s.reservationRepo.CountActive(slotID, date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count active reservations: %w", err)
	}
	if count >= slot.MaxCapacity {
		return nil, nil, domain.ErrSlotFull
	}

	// 7. Commit.
	code, err := GenerateCancellationCode()
	if err != nil {
		return nil, nil, err
	}

	reservation := &domain.Reservation{
		ID:               uuid.NewString(),
		AllowedEmailID:   allowed.ID,
		Email:            email,
		TimeSlotID:       slotID,
		Date:             date,
		CancellationCode: code,
		CreatedAt:        s.now(),
	}
	if err := s.reservationRepo.Create(reservation); err != nil {
		return nil, nil, err
	}

	return reservation, slot, nil
}
