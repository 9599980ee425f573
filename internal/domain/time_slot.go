package domain

import "time"

// TimeSlot is a recurring weekly time window with a fixed capacity.
// DayOfWeek uses 0 = Sunday through 6 = Saturday; StartTime and EndTime are
// "HH:MM" in 24-hour business time. The (DayOfWeek, StartTime, EndTime)
// triple is unique across the catalog.
type TimeSlot struct {
	ID          string    `json:"id"`
	DayOfWeek   int       `json:"dayOfWeek"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	MaxCapacity int       `json:"maxCapacity"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TimeSlotRepository defines the operations on the slot catalog.
// Lookups return (nil, nil) when no row matches.
type TimeSlotRepository interface {
	// GetByID looks up a slot by ID.
	GetByID(id string) (*TimeSlot, error)
	// GetActive returns active slots ordered by weekday then start time.
	GetActive() ([]TimeSlot, error)
	// GetAll returns every slot ordered by weekday then start time.
	GetAll() ([]TimeSlot, error)
	// WindowExists reports whether a slot already occupies the recurring
	// window (dayOfWeek, startTime, endTime).
	WindowExists(dayOfWeek int, startTime, endTime string) (bool, error)
	// CreateMany inserts a batch of slots.
	CreateMany(slots []TimeSlot) error
	// SetActive flips the active flag of a slot.
	SetActive(id string, active bool) error
	// Delete removes a slot unconditionally.
	Delete(id string) error
}
