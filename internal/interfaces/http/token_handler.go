package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/OthmanASSAS/slotify/internal/application"
	"github.com/OthmanASSAS/slotify/internal/domain"
)

type TokenHandler struct {
	tokens *application.TokenService
}

// NewTokenHandler creates a new handler for magic links and pending reservations
func NewTokenHandler(tokens *application.TokenService) *TokenHandler {
	return &TokenHandler{tokens: tokens}
}

// RequestMagicLinkRequest is the payload for requesting a magic link
type RequestMagicLinkRequest struct {
	Email string `json:"email"`
}

// CreatePendingRequest is the payload for opening a pending reservation
type CreatePendingRequest struct {
	Email string                 `json:"email"`
	Slots []domain.SlotSelection `json:"slots"`
}

// RequestMagicLink issues a magic link for a known email. The response is
// identical for known and unknown addresses.
func (h *TokenHandler) RequestMagicLink(c *fiber.Ctx) error {
	var req RequestMagicLinkRequest
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

	if err := h.tokens.RequestMagicLink(req.Email); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "If this address is registered, an email is on its way",
	})
}

// RedeemMagicLink resolves a magic link token into the owner's active
// reservations
func (h *TokenHandler) RedeemMagicLink(c *fiber.Ctx) error {
	session, err := h.tokens.RedeemMagicLink(c.Params("token"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(session)
}

// CreatePending opens a pending reservation and mails its confirmation link
func (h *TokenHandler) CreatePending(c *fiber.Ctx) error {
	var req CreatePendingRequest
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

	if err := h.tokens.CreatePendingReservation(req.Email, req.Slots); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Check your inbox to confirm your reservations",
	})
}

// GetPending resolves a pending reservation token into its selections
func (h *TokenHandler) GetPending(c *fiber.Ctx) error {
	pending, err := h.tokens.RedeemPendingReservation(c.Params("token"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"email":     pending.Email,
		"slots":     pending.Selections,
		"expiresAt": pending.ExpiresAt,
	})
}

// CompletePending books the selections held by a pending reservation and
// promotes its token into a long-lived magic link
func (h *TokenHandler) CompletePending(c *fiber.Ctx) error {
	email, outcomes, err := h.tokens.CompletePendingReservation(c.Params("token"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"email":   email,
		"results": viewOutcomes(outcomes),
	})
}
