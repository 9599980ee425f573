package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/OthmanASSAS/slotify/internal/application"
)

type SlotHandler struct {
	availability *application.AvailabilityService
	calendar     *application.BusinessCalendar
}

// NewSlotHandler creates a new slot catalog handler
func NewSlotHandler(
	availability *application.AvailabilityService,
	calendar *application.BusinessCalendar,
) *SlotHandler {
	return &SlotHandler{
		availability: availability,
		calendar:     calendar,
	}
}

// GetActiveSlots returns the bookable slot catalog
func (h *SlotHandler) GetActiveSlots(c *fiber.Ctx) error {
	slots, err := h.availability.ActiveSlots()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"slots": slots,
	})
}

// GetWeekAvailability returns the remaining capacity of every active slot
// over the seven days starting at ?start=YYYY-MM-DD. The response is keyed
// by "slotId|date".
func (h *SlotHandler) GetWeekAvailability(c *fiber.Ctx) error {
	start := c.Query("start")
	if !h.calendar.ValidDayKey(start) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "start must be a valid date in YYYY-MM-DD format",
		})
	}

	dates := make([]string, 7)
	for i := range dates {
		day, err := h.calendar.AddDays(start, i)
		if err != nil {
			return respondError(c, err)
		}
		dates[i] = day
	}

	availability, err := h.availability.WeekAvailability(dates)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"availability": availability,
	})
}
