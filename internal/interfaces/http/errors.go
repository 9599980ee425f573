package http

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/OthmanASSAS/slotify/internal/domain"
)

// rejectionStatus maps each business rejection to its HTTP status. Anything
// outside this set is an infrastructure failure and must not leak details
// to the client.
var rejectionStatus = map[error]int{
	domain.ErrEmailNotAllowed:          fiber.StatusForbidden,
	domain.ErrSlotInactiveOrMissing:    fiber.StatusBadRequest,
	domain.ErrDayMismatch:              fiber.StatusBadRequest,
	domain.ErrSlotInPast:               fiber.StatusBadRequest,
	domain.ErrAlreadyReserved:          fiber.StatusConflict,
	domain.ErrSlotFull:                 fiber.StatusConflict,
	domain.ErrCodeNotFound:             fiber.StatusNotFound,
	domain.ErrAlreadyCancelled:         fiber.StatusConflict,
	domain.ErrCancellationWindowClosed: fiber.StatusBadRequest,
	domain.ErrSessionExpired:           fiber.StatusUnauthorized,
	domain.ErrNotOwnerOrNotFound:       fiber.StatusNotFound,
	domain.ErrLinkInvalid:              fiber.StatusNotFound,
	domain.ErrLinkExpired:              fiber.StatusGone,
	domain.ErrEmailAlreadyAllowed:      fiber.StatusConflict,
	domain.ErrEmailHasReservations:     fiber.StatusConflict,
	domain.ErrSlotWindowExists:         fiber.StatusConflict,
	domain.ErrInvalidCredentials:       fiber.StatusUnauthorized,
	domain.ErrNotFound:                 fiber.StatusNotFound,
}

// respondError renders a business rejection with its specific message, or a
// generic 500 for anything else after logging the cause server-side.
func respondError(c *fiber.Ctx, err error) error {
	for sentinel, status := range rejectionStatus {
		if errors.Is(err, sentinel) {
			return c.Status(status).JSON(fiber.Map{
				"error": sentinel.Error(),
			})
		}
	}

	log.Printf("internal error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}
