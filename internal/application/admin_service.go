package application

import (
	"fmt"

	"github.com/OthmanASSAS/slotify/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AdminService manages the slot catalog, the email allow list, and admin
// credentials. Everything here sits behind the admin session middleware.
type AdminService struct {
	emailRepo       domain.AllowedEmailRepository
	slotRepo        domain.TimeSlotRepository
	reservationRepo domain.ReservationRepository
	adminRepo       domain.AdminRepository
	now             Clock
}

// NewAdminService creates a new admin service.
func NewAdminService(
	emailRepo domain.AllowedEmailRepository,
	slotRepo domain.TimeSlotRepository,
	reservationRepo domain.ReservationRepository,
	adminRepo domain.AdminRepository,
	now Clock,
) *AdminService {
	return &AdminService{
		emailRepo:       emailRepo,
		slotRepo:        slotRepo,
		reservationRepo: reservationRepo,
		adminRepo:       adminRepo,
		now:             now,
	}
}

// ListAllowedEmails returns the allow list with active reservation counts.
func (s *AdminService) ListAllowedEmails() ([]domain.AllowedEmailSummary, error) {
	return s.emailRepo.ListWithActiveCounts()
}

// AddAllowedEmail adds an address to the allow list.
func (s *AdminService) AddAllowedEmail(email string) (*domain.AllowedEmail, error) {
	email = NormalizeEmail(email)
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}

	existing, err := s.emailRepo.FindByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up allowed email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyAllowed
	}

	entry := &domain.AllowedEmail{
		ID:      uuid.NewString(),
		Email:   email,
		AddedAt: s.now(),
	}
	if err := s.emailRepo.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to create allowed email: %w", err)
	}
	return entry, nil
}

// RemoveAllowedEmail deletes an allow-list entry, refusing while the email
// still owns active reservations.
func (s *AdminService) RemoveAllowedEmail(id string) error {
	entry, err := s.emailRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to look up allowed email: %w", err)
	}
	if entry == nil {
		return domain.ErrNotFound
	}

	count, err := s.reservationRepo.CountActiveByEmail(id)
	if err != nil {
		return fmt.Errorf("failed to count reservations: %w", err)
	}
	if count > 0 {
		return domain.ErrEmailHasReservations
	}

	return s.emailRepo.Delete(id)
}

// ListSlots returns the whole slot catalog, active or not.
func (s *AdminService) ListSlots() ([]domain.TimeSlot, error) {
	return s.slotRepo.GetAll()
}

// CreateSlots splits the window [startTime, endTime) on the given weekday
// into hour-aligned segments of at most one hour and inserts them all. Each
// segment's recurring window must be free; minutes must be :00 or :30.
func (s *AdminService) CreateSlots(dayOfWeek int, startTime, endTime string, maxCapacity int) ([]domain.TimeSlot, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, fmt.Errorf("day of week must be between 0 and 6")
	}
	if maxCapacity < 1 {
		return nil, fmt.Errorf("max capacity must be positive")
	}

	segments, err := splitSlotRange(startTime, endTime)
	if err != nil {
		return nil, err
	}

	slots := make([]domain.TimeSlot, 0, len(segments))
	for _, seg := range segments {
		exists, err := s.slotRepo.WindowExists(dayOfWeek, seg.start, seg.end)
		if err != nil {
			return nil, fmt.Errorf("failed to check slot window: %w", err)
		}
		if exists {
			return nil, fmt.Errorf("%w: %s-%s", domain.ErrSlotWindowExists, seg.start, seg.end)
		}
		slots = append(slots, domain.TimeSlot{
			ID:          uuid.NewString(),
			DayOfWeek:   dayOfWeek,
			StartTime:   seg.start,
			EndTime:     seg.end,
			MaxCapacity: maxCapacity,
			IsActive:    true,
			CreatedAt:   s.now(),
		})
	}

	if err := s.slotRepo.CreateMany(slots); err != nil {
		return nil, fmt.Errorf("failed to create slots: %w", err)
	}
	return slots, nil
}

// SetSlotActive flips a slot's active flag.
func (s *AdminService) SetSlotActive(id string, active bool) error {
	return s.slotRepo.SetActive(id, active)
}

// DeleteSlot removes a slot unconditionally.
func (s *AdminService) DeleteSlot(id string) error {
	return s.slotRepo.Delete(id)
}

// ListReservations returns every reservation, newest date first, for the
// admin overview.
func (s *AdminService) ListReservations() ([]domain.Reservation, error) {
	return s.reservationRepo.ListAll()
}

// Authenticate verifies an admin credential. The same rejection covers an
// unknown email and a wrong password.
func (s *AdminService) Authenticate(email, password string) (*domain.Admin, error) {
	admin, err := s.adminRepo.FindByEmail(NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}
	if admin == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return admin, nil
}

// CreateAdmin stores a new admin credential with a bcrypt password hash.
func (s *AdminService) CreateAdmin(email, password string) (*domain.Admin, error) {
	email = NormalizeEmail(email)
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &domain.Admin{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	if err := s.adminRepo.Create(admin); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, nil
}

type slotSegment struct {
	start string
	end   string
}

// splitSlotRange cuts [startTime, endTime) into segments: full hours where
// the boundary is aligned on :00, shorter pieces up to the next full hour or
// the range end otherwise. "08:30"-"10:00" becomes 08:30-09:00, 09:00-10:00.
func splitSlotRange(startTime, endTime string) ([]slotSegment, error) {
	startHour, startMin, err := parseTimeOfDay(startTime)
	if err != nil {
		return nil, err
	}
	endHour, endMin, err := parseTimeOfDay(endTime)
	if err != nil {
		return nil, err
	}

	if (startMin != 0 && startMin != 30) || (endMin != 0 && endMin != 30) {
		return nil, fmt.Errorf("only full hours (:00) and half hours (:30) are allowed")
	}

	start := startHour*60 + startMin
	end := endHour*60 + endMin
	if end <= start {
		return nil, fmt.Errorf("end time must be after start time")
	}

	var segments []slotSegment
	current := start
	for current < end {
		nextHour := (current/60 + 1) * 60
		segmentEnd := nextHour
		if segmentEnd > end {
			segmentEnd = end
		}
		segments = append(segments, slotSegment{
			start: formatMinutes(current),
			end:   formatMinutes(segmentEnd),
		})
		current = segmentEnd
	}
	return segments, nil
}

// formatMinutes renders minutes-since-midnight as "HH:MM".
func formatMinutes(total int) string {
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
