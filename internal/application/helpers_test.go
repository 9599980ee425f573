package application_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/OthmanASSAS/slotify/internal/application"
	"github.com/OthmanASSAS/slotify/internal/domain"
	"github.com/OthmanASSAS/slotify/internal/testfixtures"
)

// The fixed test week: the clock starts Thursday Jan 1st 2026, 09:00 UTC,
// and the fixture slots live on the following Monday and Tuesday.
const (
	testMonday  = "2026-01-05"
	testTuesday = "2026-01-06"
	testBaseURL = "https://booking.example.com"
)

var testEpoch = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

type env struct {
	stores       *testfixtures.Stores
	clock        *testfixtures.Clock
	calendar     *application.BusinessCalendar
	sender       *testfixtures.RecordingSender
	booking      *application.BookingService
	cancellation *application.CancellationService
	tokens       *application.TokenService
	admin        *application.AdminService
	availability *application.AvailabilityService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	stores := testfixtures.NewStores()
	clock := testfixtures.NewClock(testEpoch)
	calendar := application.NewBusinessCalendar(time.UTC)
	sender := &testfixtures.RecordingSender{}

	booking := application.NewBookingService(
		stores.AllowedEmails, stores.TimeSlots, stores.Reservations,
		sender, calendar, clock.Now,
	)

	return &env{
		stores:   stores,
		clock:    clock,
		calendar: calendar,
		sender:   sender,
		booking:  booking,
		cancellation: application.NewCancellationService(
			stores.Reservations, stores.MagicLinks, calendar, clock.Now,
		),
		tokens: application.NewTokenService(
			stores.AllowedEmails, stores.MagicLinks, stores.Pending,
			stores.Reservations, booking, sender, calendar, clock.Now, testBaseURL,
		),
		admin: application.NewAdminService(
			stores.AllowedEmails, stores.TimeSlots, stores.Reservations,
			stores.Admins, clock.Now,
		),
		availability: application.NewAvailabilityService(
			stores.TimeSlots, stores.Reservations, calendar,
		),
	}
}

func (e *env) allowEmail(t *testing.T, email string) *domain.AllowedEmail {
	t.Helper()
	entry := &domain.AllowedEmail{
		ID:      uuid.NewString(),
		Email:   email,
		AddedAt: e.clock.Now(),
	}
	if err := e.stores.AllowedEmails.Create(entry); err != nil {
		t.Fatalf("failed to seed allowed email: %v", err)
	}
	return entry
}

func (e *env) addSlot(t *testing.T, dayOfWeek int, start, end string, capacity int, active bool) domain.TimeSlot {
	t.Helper()
	slot := domain.TimeSlot{
		ID:          uuid.NewString(),
		DayOfWeek:   dayOfWeek,
		StartTime:   start,
		EndTime:     end,
		MaxCapacity: capacity,
		IsActive:    active,
		CreatedAt:   e.clock.Now(),
	}
	if err := e.stores.TimeSlots.CreateMany([]domain.TimeSlot{slot}); err != nil {
		t.Fatalf("failed to seed slot: %v", err)
	}
	return slot
}

// mondaySlot seeds the default bookable fixture: Monday 10:00-11:00.
func (e *env) mondaySlot(t *testing.T, capacity int) domain.TimeSlot {
	t.Helper()
	return e.addSlot(t, 1, "10:00", "11:00", capacity, true)
}
