package application

import (
	"fmt"

	"github.com/OthmanASSAS/slotify/internal/domain"
)

// Availability is the remaining and total capacity of one (slot, date) cell.
type Availability struct {
	Available int `json:"available"`
	Capacity  int `json:"capacity"`
}

// AvailabilityService derives remaining capacity from live active-reservation
// counts. Capacity is never materialized as a counter, so cancellations free
// places immediately and there is no second source of truth to drift.
type AvailabilityService struct {
	slotRepo        domain.TimeSlotRepository
	reservationRepo domain.ReservationRepository
	calendar        *BusinessCalendar
}

// NewAvailabilityService creates a new availability service.
func NewAvailabilityService(
	slotRepo domain.TimeSlotRepository,
	reservationRepo domain.ReservationRepository,
	calendar *BusinessCalendar,
) *AvailabilityService {
	return &AvailabilityService{
		slotRepo:        slotRepo,
		reservationRepo: reservationRepo,
		calendar:        calendar,
	}
}

// AvailabilityKey builds the "slotID|date" key of the availability map.
func AvailabilityKey(slotID, date string) string {
	return slotID + "|" + date
}

// ActiveSlots returns the active slot catalog ordered by weekday and start
// time, for the public calendar.
func (s *AvailabilityService) ActiveSlots() ([]domain.TimeSlot, error) {
	slots, err := s.slotRepo.GetActive()
	if err != nil {
		return nil, fmt.Errorf("failed to list active slots: %w", err)
	}
	return slots, nil
}

// RemainingCapacity returns how many places are left for a (slot, date)
// pair, floored at zero. A missing slot has zero places.
func (s *AvailabilityService) RemainingCapacity(slotID, date string) (int, error) {
	slot, err := s.slotRepo.GetByID(slotID)
	if err != nil {
		return 0, fmt.Errorf("failed to load slot: %w", err)
	}
	if slot == nil {
		return 0, nil
	}

	count, err := s.reservationRepo.CountActive(slotID, date)
	if err != nil {
		return 0, fmt.Errorf("failed to count active reservations: %w", err)
	}

	remaining := slot.MaxCapacity - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// WeekAvailability computes the availability of every active slot for the
// given dates. The active-reservation counts come from a single grouped
// query; a week view renders up to 7 days of cells per slot, so one query
// per cell would not scale.
func (s *AvailabilityService) WeekAvailability(dates []string) (map[string]Availability, error) {
	for _, date := range dates {
		if !s.calendar.ValidDayKey(date) {
			return nil, fmt.Errorf("invalid date %q", date)
		}
	}

	slots, err := s.slotRepo.GetActive()
	if err != nil {
		return nil, fmt.Errorf("failed to list active slots: %w", err)
	}

	counts, err := s.reservationRepo.CountActiveByDates(dates)
	if err != nil {
		return nil, fmt.Errorf("failed to count active reservations: %w", err)
	}

	countByKey := make(map[string]int, len(counts))
	for _, c := range counts {
		countByKey[AvailabilityKey(c.TimeSlotID, c.Date)] = c.Count
	}

	result := make(map[string]Availability)
	for _, slot := range slots {
		for _, date := range dates {
			dayOfWeek, err := s.calendar.DayOfWeek(date)
			if err != nil {
				return nil, err
			}
			if dayOfWeek != slot.DayOfWeek {
				continue
			}

			key := AvailabilityKey(slot.ID, date)
			available := slot.MaxCapacity - countByKey[key]
			if available < 0 {
				available = 0
			}
			result[key] = Availability{Available: available, Capacity: slot.MaxCapacity}
		}
	}

	return result, nil
}
