package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/OthmanASSAS/slotify/internal/application"
)

type ReservationHandler struct {
	booking      *application.BookingService
	cancellation *application.CancellationService
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(
	booking *application.BookingService,
	cancellation *application.CancellationService,
) *ReservationHandler {
	return &ReservationHandler{
		booking:      booking,
		cancellation: cancellation,
	}
}

// CreateReservationRequest is the payload for booking a single slot
type CreateReservationRequest struct {
	Email  string `json:"email"`
	SlotID string `json:"slotId"`
	Date   string `json:"date"` // Format: YYYY-MM-DD
}

// CreateBatchRequest is the payload for booking several slots at once
type CreateBatchRequest struct {
	Email string                  `json:"email"`
	Slots []application.BatchItem `json:"slots"`
}

// CancelByCodeRequest is the payload for cancelling with a cancellation code
type CancelByCodeRequest struct {
	Code string `json:"code"`
}

// CancelByTokenRequest is the payload for cancelling through a magic link session
type CancelByTokenRequest struct {
	Token string `json:"token"`
}

// batchOutcomeView is the wire form of one batch booking outcome
type batchOutcomeView struct {
	SlotID           string `json:"slotId"`
	Date             string `json:"date"`
	Success          bool   `json:"success"`
	ReservationID    string `json:"reservationId,omitempty"`
	CancellationCode string `json:"cancellationCode,omitempty"`
	Error            string `json:"error,omitempty"`
}

func viewOutcomes(outcomes []application.BatchOutcome) []batchOutcomeView {
	views := make([]batchOutcomeView, len(outcomes))
	for i, o := range outcomes {
		view := batchOutcomeView{
			SlotID: o.SlotID,
			Date:   o.Date,
		}
		if o.Result != nil {
			view.Success = true
			view.ReservationID = o.Result.ReservationID
			view.CancellationCode = o.Result.CancellationCode
		} else {
			view.Error = rejectionMessage(o.Err)
		}
		views[i] = view
	}
	return views
}

// rejectionMessage renders a per-item booking failure without leaking
// infrastructure details.
func rejectionMessage(err error) string {
	for sentinel := range rejectionStatus {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "Internal server error"
}

// Create books a single reservation
func (h *ReservationHandler) Create(c *fiber.Ctx) error {
	var req CreateReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request format",
		})
	}

	if err := application.ValidateEmail(req.Email); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid email address",
		})
	}
	if req.SlotID == "" || req.Date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "slotId and date are required",
		})
	}

	result, err := h.booking.Book(req.Email, req.SlotID, req.Date)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// CreateBatch books several reservations in one call. Partial success is a
// 200 with a per-slot outcome list.
func (h *ReservationHandler) CreateBatch(c *fiber.Ctx) error {
	var req CreateBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request format",
		})
	}

	if err := application.ValidateEmail(req.Email); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid email address",
		})
	}
	if len(req.Slots) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "At least one slot is required",
		})
	}

	outcomes, err := h.booking.BookBatch(req.Email, req.Slots)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"results": viewOutcomes(outcomes),
	})
}

// CancelByCode cancels the reservation matching a cancellation code
func (h *ReservationHandler) CancelByCode(c *fiber.Ctx) error {
	var req CancelByCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request format",
		})
	}

	if req.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cancellation code is required",
		})
	}

	if err := h.cancellation.CancelByCode(req.Code); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Reservation cancelled",
	})
}

// CancelByToken cancels one of the reservations owned by a magic link session
func (h *ReservationHandler) CancelByToken(c *fiber.Ctx) error {
	reservationID := c.Params("id")

	var req CancelByTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request format",
		})
	}

	if req.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Token is required",
		})
	}

	if err := h.cancellation.CancelByToken(req.Token, reservationID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Reservation cancelled",
	})
}
