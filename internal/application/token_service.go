package application

import (
	"fmt"
	"log"
	"time"

	"github.com/OthmanASSAS/slotify/internal/domain"
	"github.com/google/uuid"
)

const (
	// magicLinkTTL is the lifetime of a directly requested magic link.
	magicLinkTTL = time.Hour
	// pendingReservationTTL is how long a pending reservation waits for the
	// requester to prove email ownership.
	pendingReservationTTL = time.Hour
	// promotedLinkTTL is the lifetime of a magic link promoted from a
	// completed pending reservation.
	promotedLinkTTL = 30 * 24 * time.Hour
)

// MagicLinkSession is the result of redeeming a magic link: the bound email
// and its active, future-or-today reservations.
type MagicLinkSession struct {
	Email        string               `json:"email"`
	Reservations []domain.Reservation `json:"reservations"`
}

// TokenService issues and redeems the two capability tokens that stand in
// for session auth: magic links and pending-reservation tokens. Possession
// of a token is the authorization; validation is existence plus expiry plus,
// where relevant, ownership.
type TokenService struct {
	emailRepo       domain.AllowedEmailRepository
	magicLinkRepo   domain.MagicLinkRepository
	pendingRepo     domain.PendingReservationRepository
	reservationRepo domain.ReservationRepository
	booking         *BookingService
	sender          EmailSender
	calendar        *BusinessCalendar
	now             Clock
	baseURL         string
}

// NewTokenService creates a new token service. baseURL is the public origin
// used to build emailed redemption URLs.
func NewTokenService(
	emailRepo domain.AllowedEmailRepository,
	magicLinkRepo domain.MagicLinkRepository,
	pendingRepo domain.PendingReservationRepository,
	reservationRepo domain.ReservationRepository,
	booking *BookingService,
	sender EmailSender,
	calendar *BusinessCalendar,
	now Clock,
	baseURL string,
) *TokenService {
	return &TokenService{
		emailRepo:       emailRepo,
		magicLinkRepo:   magicLinkRepo,
		pendingRepo:     pendingRepo,
		reservationRepo: reservationRepo,
		booking:         booking,
		sender:          sender,
		calendar:        calendar,
		now:             now,
		baseURL:         baseURL,
	}
}

// linkURL builds the redemption URL embedded in magic-link emails.
func (s *TokenService) linkURL(token string) string {
	return fmt.Sprintf("%s/my-reservations/dashboard?token=%s", s.baseURL, token)
}

// RequestMagicLink issues a 1-hour magic link for a known email and mails
// the redemption URL. When the email is not on the allow list nothing is
// issued and nil is returned anyway: the caller must not be able to tell a
// known address from an unknown one.
func (s *TokenService) RequestMagicLink(email string) error {
	email = NormalizeEmail(email)

	allowed, err := s.emailRepo.FindByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to look up allowed email: %w", err)
	}
	if allowed == nil {
		return nil
	}

	token, err := GenerateToken()
	if err != nil {
		return err
	}

	link := &domain.MagicLink{
		ID:        uuid.NewString(),
		Email:     email,
		Token:     token,
		ExpiresAt: s.now().Add(magicLinkTTL),
		CreatedAt: s.now(),
	}
	if err := s.magicLinkRepo.Create(link); err != nil {
		return fmt.Errorf("failed to store magic link: %w", err)
	}

	if s.sender != nil {
		if err := s.sender.SendMagicLink(email, s.linkURL(token)); err != nil {
			log.Printf("Failed to send magic link email to %s: %v", email, err)
		}
	}

	return nil
}

// RedeemMagicLink validates a magic-link token and returns the bound email
// with its active reservations from today onward, ascending by date. Expiry
// is a read-time check only; the expired row is kept.
func (s *TokenService) RedeemMagicLink(token string) (*MagicLinkSession, error) {
	link, err := s.magicLinkRepo.GetByToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to look up magic link: %w", err)
	}
	if link == nil {
		return nil, domain.ErrLinkInvalid
	}
	if link.Expired(s.now()) {
		return nil, domain.ErrLinkExpired
	}

	today := s.calendar.DayKey(s.now())
	reservations, err := s.reservationRepo.ListActiveFromDate(link.Email, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	return &MagicLinkSession{Email: link.Email, Reservations: reservations}, nil
}

// CreatePendingReservation stores a provisional selection under a fresh
// token and mails the redemption URL. The allow-list check happens before
// any token is issued: this flow starts from a selection the user just made,
// so reporting the rejection is acceptable. A failed email send is fatal
// here because no reservation exists yet to fall back on.
func (s *TokenService) CreatePendingReservation(email string, selections []domain.SlotSelection) error {
	email = NormalizeEmail(email)
	if len(selections) == 0 {
		return fmt.Errorf("at least one slot selection is required")
	}
	for _, sel := range selections {
		if !s.calendar.ValidDayKey(sel.Date) {
			return fmt.Errorf("invalid date %q", sel.Date)
		}
	}

	allowed, err := s.emailRepo.FindByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to look up allowed email: %w", err)
	}
	if allowed == nil {
		return domain.ErrEmailNotAllowed
	}

	token, err := GenerateToken()
	if err != nil {
		return err
	}

	pending := &domain.PendingReservation{
		ID:         uuid.NewString(),
		Email:      email,
		Token:      token,
		Selections: selections,
		ExpiresAt:  s.now().Add(pendingReservationTTL),
		CreatedAt:  s.now(),
	}
	if err := s.pendingRepo.Create(pending); err != nil {
		return fmt.Errorf("failed to store pending reservation: %w", err)
	}

	if s.sender == nil {
		return fmt.Errorf("no mail transport configured")
	}
	if err := s.sender.SendMagicLink(email, s.linkURL(token)); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}

	return nil
}

// RedeemPendingReservation validates a pending-reservation token and returns
// the stored selection. An expired row is deleted before rejecting, unlike
// magic links.
func (s *TokenService) RedeemPendingReservation(token string) (*domain.PendingReservation, error) {
	pending, err := s.pendingRepo.GetByToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to look up pending reservation: %w", err)
	}
	if pending == nil {
		return nil, domain.ErrLinkInvalid
	}
	if pending.Expired(s.now()) {
		if err := s.pendingRepo.DeleteByToken(token); err != nil {
			log.Printf("Failed to delete expired pending reservation %s: %v", pending.ID, err)
		}
		return nil, domain.ErrLinkExpired
	}
	return pending, nil
}

// CompletePendingReservation redeems a pending token, books its selections
// as a batch, and on any success promotes the same token into a 30-day
// magic link before deleting the pending row. Per-pair outcomes are
// returned so the caller can report partial success.
func (s *TokenService) CompletePendingReservation(token string) (string, []BatchOutcome, error) {
	pending, err := s.RedeemPendingReservation(token)
	if err != nil {
		return "", nil, err
	}

	items := make([]BatchItem, len(pending.Selections))
	for i, sel := range pending.Selections {
		items[i] = BatchItem{SlotID: sel.SlotID, Date: sel.Date}
	}

	outcomes, err := s.booking.BookBatch(pending.Email, items)
	if err != nil {
		return "", nil, err
	}

	anySuccess := false
	for i := range outcomes {
		if outcomes[i].Result != nil {
			anySuccess = true
			break
		}
	}

	if anySuccess {
		if err := s.PromoteToken(pending.Email, token); err != nil {
			log.Printf("Failed to promote pending token for %s: %v", pending.Email, err)
		}
		if err := s.pendingRepo.DeleteByToken(token); err != nil {
			log.Printf("Failed to delete completed pending reservation %s: %v", pending.ID, err)
		}
	}

	return pending.Email, outcomes, nil
}

// PromoteToken turns a pending-reservation token into a permanent 30-day
// magic link with the same token value. Creation is idempotent: when a link
// with this token already exists, nothing changes.
func (s *TokenService) PromoteToken(email, token string) error {
	existing, err := s.magicLinkRepo.GetByToken(token)
	if err != nil {
		return fmt.Errorf("failed to look up magic link: %w", err)
	}
	if existing != nil {
		return nil
	}

	link := &domain.MagicLink{
		ID:        uuid.NewString(),
		Email:     NormalizeEmail(email),
		Token:     token,
		ExpiresAt: s.now().Add(promotedLinkTTL),
		CreatedAt: s.now(),
	}
	if err := s.magicLinkRepo.Create(link); err != nil {
		return fmt.Errorf("failed to store magic link: %w", err)
	}
	return nil
}
