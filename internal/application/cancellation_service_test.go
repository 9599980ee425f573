package application_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/OthmanASSAS/slotify/internal/application"
	"github.com/OthmanASSAS/slotify/internal/domain"
)

func TestCanCancel(t *testing.T) {
	start := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"two days before", start.Add(-48 * time.Hour), true},
		{"25 hours before", start.Add(-25 * time.Hour), true},
		{"exactly 24 hours before", start.Add(-24 * time.Hour), true},
		{"23 hours before", start.Add(-23 * time.Hour), false},
		{"12 hours before", start.Add(-12 * time.Hour), false},
		{"after start", start.Add(2 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := application.CanCancel(tt.now, start); got != tt.want {
				t.Errorf("CanCancel = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCancelByCode(t *testing.T) {
	e := newEnv(t)
	e.allowEmail(t, "student@example.com")
	slot := e.mondaySlot(t, 1)

	result, err := e.booking.Book("student@example.com", slot.ID, testMonday)
	if err != nil {
		t.Fatalf("Book: %v", err)
	}

	if err := e.cancellation.CancelByCode("NOPE1234"); !errors.Is(err, domain.ErrCodeNotFound) {
		t.Errorf("unknown code error = %v, want ErrCodeNotFound", err)
	}

	if err := e.cancellation.CancelByCode(result.CancellationCode); err != nil {
		t.Fatalf("CancelByCode: %v", err)
	}

	stored, err := e.stores.Reservations.GetByID(result.ReservationID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.CancelledAt == nil {
		t.Fatal("reservation is still active")
	}
	firstCancelledAt := *stored.CancelledAt

	// A second cancel is rejected and leaves the timestamp untouched.
	e.clock.Advance(time.Hour)
	if err := e.cancellation.CancelByCode(result.CancellationCode); !errors.Is(err, domain.ErrAlreadyCancelled) {
		t.Errorf("double cancel error = %v, want ErrAlreadyCancelled", err)
	}
	stored, _ = e.stores.Reservations.GetByID(result.ReservationID)
	if !stored.CancelledAt.Equal(firstCancelledAt) {
		t.Error("double cancel moved the cancellation timestamp")
	}
}

func TestCancelWindowClosed(t *testing.T) {
	e := newEnv(t)
	e.allowEmail(t, "student@example.com")
	slot := e.mondaySlot(t, 1)

	result, err := e.booking.Book("student@example.com", slot.ID, testMonday)
	if err != nil {
		t.Fatalf("Book: %v", err)
	}

	// Jump to 12 hours before the slot. The reservation stays active.
	e.clock.Set(time.Date(2026, 1, 4, 22, 0, 0, 0, time.UTC))
	if err := e.cancellation.CancelByCode(result.CancellationCode); !errors.Is(err, domain.ErrCancellationWindowClosed) {
		t.Fatalf("late cancel error = %v, want ErrCancellationWindowClosed", err)
	}

	stored, _ := e.stores.Reservations.GetByID(result.ReservationID)
	if stored.CancelledAt != nil {
		t.Error("late cancel still deactivated the reservation")
	}
}

func TestCancelByToken(t *testing.T) {
	e := newEnv(t)
	e.allowEmail(t, "owner@example.com")
	e.allowEmail(t, "other@example.com")
	slot := e.mondaySlot(t, 2)

	owned, err := e.booking.Book("owner@example.com", slot.ID, testMonday)
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	foreign, err := e.booking.Book("other@example.com", slot.ID, testMonday)
	if err != nil {
		t.Fatalf("Book: %v", err)
	}

	link := &domain.MagicLink{
		ID:        uuid.NewString(),
		Email:     "owner@example.com",
		Token:     "tok-owner",
		ExpiresAt: e.clock.Now().Add(time.Hour),
		CreatedAt: e.clock.Now(),
	}
	if err := e.stores.MagicLinks.Create(link); err != nil {
		t.Fatal(err)
	}

	if err := e.cancellation.CancelByToken("tok-unknown", owned.ReservationID); !errors.Is(err, domain.ErrSessionExpired) {
		t.Errorf("unknown token error = %v, want ErrSessionExpired", err)
	}

	// Another owner's reservation and a missing one are indistinguishable.
	if err := e.cancellation.CancelByToken("tok-owner", foreign.ReservationID); !errors.Is(err, domain.ErrNotOwnerOrNotFound) {
		t.Errorf("foreign reservation error = %v, want ErrNotOwnerOrNotFound", err)
	}
	if err := e.cancellation.CancelByToken("tok-owner", uuid.NewString()); !errors.Is(err, domain.ErrNotOwnerOrNotFound) {
		t.Errorf("missing reservation error = %v, want ErrNotOwnerOrNotFound", err)
	}

	if err := e.cancellation.CancelByToken("tok-owner", owned.ReservationID); err != nil {
		t.Fatalf("CancelByToken: %v", err)
	}

	// An expired link is a dead session.
	e.clock.Advance(2 * time.Hour)
	if err := e.cancellation.CancelByToken("tok-owner", owned.ReservationID); !errors.Is(err, domain.ErrSessionExpired) {
		t.Errorf("expired token error = %v, want ErrSessionExpired", err)
	}
}
