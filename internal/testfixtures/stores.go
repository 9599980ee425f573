package testfixtures

import (
	"sort"
	"sync"
	"time"

	"github.com/OthmanASSAS/slotify/internal/domain"
)

// Stores is an in-memory implementation of every repository interface,
// sharing one lock so the capacity and uniqueness checks in Create are as
// atomic as their SQL counterparts.
type Stores struct {
	mu sync.Mutex

	AllowedEmails *AllowedEmailStore
	TimeSlots     *TimeSlotStore
	Reservations  *ReservationStore
	MagicLinks    *MagicLinkStore
	Pending       *PendingReservationStore
	Admins        *AdminStore
}

// NewStores creates an empty in-memory store bundle.
func NewStores() *Stores {
	s := &Stores{}
	s.AllowedEmails = &AllowedEmailStore{root: s}
	s.TimeSlots = &TimeSlotStore{root: s}
	s.Reservations = &ReservationStore{root: s}
	s.MagicLinks = &MagicLinkStore{root: s}
	s.Pending = &PendingReservationStore{root: s}
	s.Admins = &AdminStore{root: s}
	return s
}

// AllowedEmailStore is the in-memory allow list.
type AllowedEmailStore struct {
	root    *Stores
	entries []domain.AllowedEmail
}

func (s *AllowedEmailStore) FindByEmail(email string) (*domain.AllowedEmail, error) {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].Email == email {
			e := s.entries[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (s *AllowedEmailStore) GetByID(id string) (*domain.AllowedEmail, error) {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].ID == id {
			e := s.entries[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (s *AllowedEmailStore) Create(entry *domain.AllowedEmail) error {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *AllowedEmailStore) Delete(id string) error {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			// Cascade, like the schema's foreign key.
			kept := s.root.Reservations.rows[:0]
			for _, r := range s.root.Reservations.rows {
				if r.AllowedEmailID != id {
					kept = append(kept, r)
				}
			}
			s.root.Reservations.rows = kept
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *AllowedEmailStore) ListWithActiveCounts() ([]domain.AllowedEmailSummary, error) {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()

	summaries := make([]domain.AllowedEmailSummary, 0, len(s.entries))
	for _, e := range s.entries {
		count := 0
		for _, r := range s.root.Reservations.rows {
			if r.AllowedEmailID == e.ID && r.CancelledAt == nil {
				count++
			}
		}
		summaries = append(summaries, domain.AllowedEmailSummary{
			AllowedEmail:       e,
			ActiveReservations: count,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].AddedAt.After(summaries[j].AddedAt)
	})
	return summaries, nil
}

// TimeSlotStore is the in-memory slot catalog.
type TimeSlotStore struct {
	root  *Stores
	slots []domain.TimeSlot
}

func (s *TimeSlotStore) GetByID(id string) (*domain.TimeSlot, error) {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	return s.getLocked(id), nil
}

func (s *TimeSlotStore) getLocked(id string) *domain.TimeSlot {
	for i := range s.slots {
		if s.slots[i].ID == id {
			slot := s.slots[i]
			return &slot
		}
	}
	return nil
}

func (s *TimeSlotStore) sorted(activeOnly bool) []domain.TimeSlot {
	var out []domain.TimeSlot
	for _, slot := range s.slots {
		if activeOnly && !slot.IsActive {
			continue
		}
		out = append(out, slot)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DayOfWeek != out[j].DayOfWeek {
			return out[i].DayOfWeek < out[j].DayOfWeek
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

func (s *TimeSlotStore) GetActive() ([]domain.TimeSlot, error) {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	return s.sorted(true), nil
}

func (s *TimeSlotStore) GetAll() ([]domain.TimeSlot, error) {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	return s.sorted(false), nil
}

func (s *TimeSlotStore) WindowExists(dayOfWeek int, startTime, endTime string) (bool, error) {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	for _, slot := range s.slots {
		if slot.DayOfWeek == dayOfWeek && slot.StartTime == startTime && slot.EndTime == endTime {
			return true, nil
		}
	}
	return false, nil
}

func (s *TimeSlotStore) CreateMany(slots []domain.TimeSlot) error {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	s.slots = append(s.slots, slots...)
	return nil
}

func (s *TimeSlotStore) SetActive(id string, active bool) error {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	for i := range s.slots {
		if s.slots[i].ID == id {
			s.slots[i].IsActive = active
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *TimeSlotStore) Delete(id string) error {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	for i := range s.slots {
		if s.slots[i].ID == id {
			s.slots = append(s.slots[:i], s.slots[i+1:]...)
			// Cascade, like the schema's foreign key.
			kept := s.root.Reservations.rows[:0]
			for _, r := range s.root.Reservations.rows {
				if r.TimeSlotID != id {
					kept = append(kept, r)
				}
			}
			s.root.Reservations.rows = kept
			return nil
		}
	}
	return domain.ErrNotFound
}

// ReservationStore is the in-memory reservation table. Create re-validates
// capacity and active-uniqueness under the shared lock, mirroring the
// transactional checks of the SQL implementation.
type ReservationStore struct {
	root *Stores
	rows []domain.Reservation
}

func (s *ReservationStore) Create(reservation *domain.Reservation) error {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()

	slot := s.root.TimeSlots.getLocked(reservation.TimeSlotID)
	if slot == nil || !slot.IsActive {
		return domain.ErrSlotInactiveOrMissing
	}

	count := 0
	for _, r := range s.rows {
		if r.CancelledAt != nil {
			continue
		}
		if r.AllowedEmailID == reservation.AllowedEmailID &&
			r.TimeSlotID == reservation.TimeSlotID &&
			r.Date == reservation.Date {
			return domain.ErrAlreadyReserved
		}
		if r.TimeSlotID == reservation.TimeSlotID && r.Date == reservation.Date {
			count++
		}
	}
	if count >= slot.MaxCapacity {
		return domain.ErrSlotFull
	}

	s.rows = append(s.rows, *reservation)
	return nil
}

func (s *ReservationStore) withSlot(r domain.Reservation) domain.Reservation {
	r.TimeSlot = s.root.TimeSlots.getLocked(r.TimeSlotID)
	return r
}

func (s *ReservationStore) GetByID(id string) (*domain.Reservation, error) {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	for _, r := range s.rows {
		if r.ID == id {
			row := s.withSlot(r)
			return &row, nil
		}
	}
	return nil, nil
}

func (s *ReservationStore) GetByCancellationCode(code string) (*domain.Reservation, error) {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	for _, r := range s.rows {
		if r.CancellationCode == code {
			row := s.withSlot(r)
			return &row, nil
		}
	}
	return nil, nil
}

func (s *ReservationStore) HasActive(allowedEmailID, timeSlotID, date string) (bool, error) {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	for _, r := range s.rows {
		if r.CancelledAt == nil &&
			r.AllowedEmailID == allowedEmailID &&
			r.TimeSlotID == timeSlotID &&
			r.Date == date {
			return true, nil
		}
	}
	return false, nil
}

func (s *ReservationStore) CountActive(timeSlotID, date string) (int, error) {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	count := 0
	for _, r := range s.rows {
		if r.CancelledAt == nil && r.TimeSlotID == timeSlotID && r.Date == date {
			count++
		}
	}
	return count, nil
}

func (s *ReservationStore) CountActiveByDates(dates []string) ([]domain.SlotDateCount, error) {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()

	wanted := make(map[string]bool, len(dates))
	for _, d := range dates {
		wanted[d] = true
	}

	grouped := make(map[string]*domain.SlotDateCount)
	for _, r := range s.rows {
		if r.CancelledAt != nil || !wanted[r.Date] {
			continue
		}
		key := r.TimeSlotID + "|" + r.Date
		if grouped[key] == nil {
			grouped[key] = &domain.SlotDateCount{TimeSlotID: r.TimeSlotID, Date: r.Date}
		}
		grouped[key].Count++
	}

	var counts []domain.SlotDateCount
	for _, c := range grouped {
		counts = append(counts, *c)
	}
	return counts, nil
}

func (s *ReservationStore) Cancel(id string, at time.Time) error {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			if s.rows[i].CancelledAt != nil {
				return domain.ErrAlreadyCancelled
			}
			t := at
			s.rows[i].CancelledAt = &t
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *ReservationStore) ListActiveFromDate(email, from string) ([]domain.Reservation, error) {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()

	var out []domain.Reservation
	for _, r := range s.rows {
		if r.CancelledAt == nil && r.Email == email && r.Date >= from {
			out = append(out, s.withSlot(r))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].TimeSlot.StartTime < out[j].TimeSlot.StartTime
	})
	return out, nil
}

func (s *ReservationStore) CountActiveByEmail(allowedEmailID string) (int, error) {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	count := 0
	for _, r := range s.rows {
		if r.CancelledAt == nil && r.AllowedEmailID == allowedEmailID {
			count++
		}
	}
	return count, nil
}

func (s *ReservationStore) ListAll() ([]domain.Reservation, error) {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()

	out := make([]domain.Reservation, 0, len(s.rows))
	for _, r := range s.rows {
		out = append(out, s.withSlot(r))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out, nil
}

// MagicLinkStore is the in-memory magic link table.
type MagicLinkStore struct {
	root  *Stores
	links []domain.MagicLink
}

func (s *MagicLinkStore) Create(link *domain.MagicLink) error {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	s.links = append(s.links, *link)
	return nil
}

func (s *MagicLinkStore) GetByToken(token string) (*domain.MagicLink, error) {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	for i := range s.links {
		if s.links[i].Token == token {
			l := s.links[i]
			return &l, nil
		}
	}
	return nil, nil
}

// Count returns the number of stored links.
func (s *MagicLinkStore) Count() int {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	return len(s.links)
}

// PendingReservationStore is the in-memory pending reservation table.
type PendingReservationStore struct {
	root *Stores
	rows []domain.PendingReservation
}

func (s *PendingReservationStore) Create(pending *domain.PendingReservation) error {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	s.rows = append(s.rows, *pending)
	return nil
}

func (s *PendingReservationStore) GetByToken(token string) (*domain.PendingReservation, error) {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].Token == token {
			p := s.rows[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (s *PendingReservationStore) DeleteByToken(token string) error {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].Token == token {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

// Count returns the number of stored pending reservations.
func (s *PendingReservationStore) Count() int {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	return len(s.rows)
}

// AdminStore is the in-memory admin credential table.
type AdminStore struct {
	root   *Stores
	admins []domain.Admin
}

func (s *AdminStore) FindByEmail(email string) (*domain.Admin, error) {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	for i := range s.admins {
		if s.admins[i].Email == email {
			a := s.admins[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (s *AdminStore) Create(admin *domain.Admin) error {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	s.admins = append(s.admins, *admin)
	return nil
}
