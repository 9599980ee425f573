package application_test

import (
	"errors"
	"testing"

	"github.com/OthmanASSAS/slotify/internal/domain"
)

func TestAddAllowedEmail(t *testing.T) {
	e := newEnv(t)

	entry, err := e.admin.AddAllowedEmail("  New.Student@Example.COM ")
	if err != nil {
		t.Fatalf("AddAllowedEmail: %v", err)
	}
	if entry.Email != "new.student@example.com" {
		t.Errorf("stored email %q, want the normalized form", entry.Email)
	}

	if _, err := e.admin.AddAllowedEmail("new.student@example.com"); !errors.Is(err, domain.ErrEmailAlreadyAllowed) {
		t.Errorf("duplicate error = %v, want ErrEmailAlreadyAllowed", err)
	}

	if _, err := e.admin.AddAllowedEmail("not-an-email"); err == nil {
		t.Error("malformed address was accepted")
	}
}

func TestRemoveAllowedEmail(t *testing.T) {
	e := newEnv(t)
	entry := e.allowEmail(t, "student@example.com")
	slot := e.mondaySlot(t, 1)

	result, err := e.booking.Book("student@example.com", slot.ID, testMonday)
	if err != nil {
		t.Fatal(err)
	}

	// An address with active reservations cannot leave the allow list.
	if err := e.admin.RemoveAllowedEmail(entry.ID); !errors.Is(err, domain.ErrEmailHasReservations) {
		t.Fatalf("RemoveAllowedEmail error = %v, want ErrEmailHasReservations", err)
	}

	if err := e.cancellation.CancelByCode(result.CancellationCode); err != nil {
		t.Fatal(err)
	}
	if err := e.admin.RemoveAllowedEmail(entry.ID); err != nil {
		t.Fatalf("RemoveAllowedEmail after cancel: %v", err)
	}

	if err := e.admin.RemoveAllowedEmail(entry.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("removing twice error = %v, want ErrNotFound", err)
	}
}

func TestRemoveAllowedEmailDropsCancelledHistory(t *testing.T) {
	e := newEnv(t)
	entry := e.allowEmail(t, "student@example.com")
	slot := e.mondaySlot(t, 1)

	result, err := e.booking.Book("student@example.com", slot.ID, testMonday)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.cancellation.CancelByCode(result.CancellationCode); err != nil {
		t.Fatal(err)
	}

	// Cancelled reservations never block the removal; they leave with the
	// entry.
	if err := e.admin.RemoveAllowedEmail(entry.ID); err != nil {
		t.Fatalf("RemoveAllowedEmail with only cancelled reservations: %v", err)
	}

	reservations, err := e.admin.ListReservations()
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range reservations {
		if r.AllowedEmailID == entry.ID {
			t.Fatal("a reservation of the removed email survived")
		}
	}

	// A re-added address starts over with the full slot.
	e.allowEmail(t, "student@example.com")
	if _, err := e.booking.Book("student@example.com", slot.ID, testMonday); err != nil {
		t.Fatalf("re-book after re-adding the email: %v", err)
	}
}

func TestListAllowedEmailsCounts(t *testing.T) {
	e := newEnv(t)
	e.allowEmail(t, "busy@example.com")
	e.allowEmail(t, "idle@example.com")
	slot := e.mondaySlot(t, 5)

	if _, err := e.booking.Book("busy@example.com", slot.ID, testMonday); err != nil {
		t.Fatal(err)
	}

	summaries, err := e.admin.ListAllowedEmails()
	if err != nil {
		t.Fatal(err)
	}

	counts := make(map[string]int, len(summaries))
	for _, s := range summaries {
		counts[s.Email] = s.ActiveReservations
	}
	if counts["busy@example.com"] != 1 || counts["idle@example.com"] != 0 {
		t.Errorf("unexpected counts %v", counts)
	}
}

func TestCreateSlotsSplitsRange(t *testing.T) {
	e := newEnv(t)

	slots, err := e.admin.CreateSlots(1, "08:30", "11:00", 4)
	if err != nil {
		t.Fatalf("CreateSlots: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("created %d slots, want 3", len(slots))
	}

	wantWindows := [][2]string{{"08:30", "09:00"}, {"09:00", "10:00"}, {"10:00", "11:00"}}
	for i, slot := range slots {
		if slot.StartTime != wantWindows[i][0] || slot.EndTime != wantWindows[i][1] {
			t.Errorf("slot %d window %s-%s, want %s-%s", i, slot.StartTime, slot.EndTime, wantWindows[i][0], wantWindows[i][1])
		}
		if slot.DayOfWeek != 1 || slot.MaxCapacity != 4 || !slot.IsActive {
			t.Errorf("slot %d has unexpected attributes: %+v", i, slot)
		}
	}

	// Any overlap with an existing window rejects the whole request.
	if _, err := e.admin.CreateSlots(1, "09:00", "10:00", 2); !errors.Is(err, domain.ErrSlotWindowExists) {
		t.Errorf("overlapping CreateSlots error = %v, want ErrSlotWindowExists", err)
	}

	all, err := e.admin.ListSlots()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("catalog holds %d slots after the rejected request, want 3", len(all))
	}
}

func TestCreateSlotsValidation(t *testing.T) {
	e := newEnv(t)

	if _, err := e.admin.CreateSlots(7, "09:00", "10:00", 1); err == nil {
		t.Error("day of week 7 was accepted")
	}
	if _, err := e.admin.CreateSlots(1, "09:00", "10:00", 0); err == nil {
		t.Error("zero capacity was accepted")
	}
}

func TestSetSlotActiveAndDelete(t *testing.T) {
	e := newEnv(t)
	e.allowEmail(t, "student@example.com")
	slot := e.mondaySlot(t, 1)

	if _, err := e.booking.Book("student@example.com", slot.ID, testMonday); err != nil {
		t.Fatal(err)
	}

	if err := e.admin.SetSlotActive(slot.ID, false); err != nil {
		t.Fatal(err)
	}
	e.allowEmail(t, "other@example.com")
	if _, err := e.booking.Book("other@example.com", slot.ID, testMonday); !errors.Is(err, domain.ErrSlotInactiveOrMissing) {
		t.Errorf("booking a deactivated slot error = %v, want ErrSlotInactiveOrMissing", err)
	}

	// Deletion is unconditional and takes the reservations with it.
	if err := e.admin.DeleteSlot(slot.ID); err != nil {
		t.Fatal(err)
	}
	count, err := e.stores.Reservations.CountActive(slot.ID, testMonday)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("%d reservations survived the slot deletion", count)
	}

	if err := e.admin.DeleteSlot(slot.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("deleting twice error = %v, want ErrNotFound", err)
	}
}

func TestAuthenticate(t *testing.T) {
	e := newEnv(t)

	if _, err := e.admin.CreateAdmin("admin@example.com", "short"); err == nil {
		t.Error("a password under 8 characters was accepted")
	}

	created, err := e.admin.CreateAdmin("Admin@Example.com", "correct horse")
	if err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	if created.Email != "admin@example.com" {
		t.Errorf("stored email %q, want the normalized form", created.Email)
	}
	if created.PasswordHash == "correct horse" {
		t.Fatal("password was stored in clear")
	}

	if _, err := e.admin.Authenticate("admin@example.com", "correct horse"); err != nil {
		t.Errorf("Authenticate with the right password: %v", err)
	}
	if _, err := e.admin.Authenticate("admin@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := e.admin.Authenticate("ghost@example.com", "correct horse"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("unknown admin error = %v, want ErrInvalidCredentials", err)
	}
}
