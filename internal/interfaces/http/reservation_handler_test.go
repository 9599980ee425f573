package http

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/OthmanASSAS/slotify/internal/application"
	"github.com/OthmanASSAS/slotify/internal/domain"
	"github.com/OthmanASSAS/slotify/internal/testfixtures"
)

func newBookingApp(t *testing.T) (*fiber.App, *testfixtures.Stores, domain.TimeSlot) {
	t.Helper()

	stores := testfixtures.NewStores()
	clock := testfixtures.NewClock(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	calendar := application.NewBusinessCalendar(time.UTC)
	sender := &testfixtures.RecordingSender{}

	if err := stores.AllowedEmails.Create(&domain.AllowedEmail{
		ID:      uuid.NewString(),
		Email:   "student@example.com",
		AddedAt: clock.Now(),
	}); err != nil {
		t.Fatal(err)
	}

	slot := domain.TimeSlot{
		ID:          uuid.NewString(),
		DayOfWeek:   1,
		StartTime:   "10:00",
		EndTime:     "11:00",
		MaxCapacity: 1,
		IsActive:    true,
		CreatedAt:   clock.Now(),
	}
	if err := stores.TimeSlots.CreateMany([]domain.TimeSlot{slot}); err != nil {
		t.Fatal(err)
	}

	booking := application.NewBookingService(
		stores.AllowedEmails, stores.TimeSlots, stores.Reservations,
		sender, calendar, clock.Now,
	)
	cancellation := application.NewCancellationService(
		stores.Reservations, stores.MagicLinks, calendar, clock.Now,
	)
	handler := NewReservationHandler(booking, cancellation)

	app := fiber.New()
	app.Post("/api/reservations", handler.Create)
	app.Post("/api/reservations/cancel", handler.CancelByCode)

	return app, stores, slot
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, decoded
}

func TestCreateReservationEndpoint(t *testing.T) {
	app, _, slot := newBookingApp(t)

	status, body := postJSON(t, app, "/api/reservations", CreateReservationRequest{
		Email:  "student@example.com",
		SlotID: slot.ID,
		Date:   "2026-01-05",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("status %d, want 201: %v", status, body)
	}
	code, _ := body["cancellationCode"].(string)
	if len(code) != 8 {
		t.Errorf("cancellationCode = %q, want 8 characters", code)
	}

	// Booking the full slot again surfaces the specific conflict.
	status, body = postJSON(t, app, "/api/reservations", CreateReservationRequest{
		Email:  "student@example.com",
		SlotID: slot.ID,
		Date:   "2026-01-05",
	})
	if status != fiber.StatusConflict {
		t.Fatalf("duplicate status %d, want 409: %v", status, body)
	}

	// The cancellation code from the first booking closes the loop.
	status, body = postJSON(t, app, "/api/reservations/cancel", CancelByCodeRequest{Code: code})
	if status != fiber.StatusOK {
		t.Fatalf("cancel status %d, want 200: %v", status, body)
	}
}

func TestCreateReservationEndpointValidation(t *testing.T) {
	app, _, slot := newBookingApp(t)

	status, _ := postJSON(t, app, "/api/reservations", CreateReservationRequest{
		Email:  "not-an-email",
		SlotID: slot.ID,
		Date:   "2026-01-05",
	})
	if status != fiber.StatusBadRequest {
		t.Errorf("bad email status %d, want 400", status)
	}

	status, _ = postJSON(t, app, "/api/reservations", CreateReservationRequest{
		Email: "student@example.com",
	})
	if status != fiber.StatusBadRequest {
		t.Errorf("missing fields status %d, want 400", status)
	}

	// Unknown emails get a 403, not an existence oracle beyond it.
	status, _ = postJSON(t, app, "/api/reservations", CreateReservationRequest{
		Email:  "stranger@example.com",
		SlotID: slot.ID,
		Date:   "2026-01-05",
	})
	if status != fiber.StatusForbidden {
		t.Errorf("unlisted email status %d, want 403", status)
	}
}
