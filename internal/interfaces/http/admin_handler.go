package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/OthmanASSAS/slotify/internal/application"
)

type AdminHandler struct {
	admin    *application.AdminService
	sessions *SessionManager
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(admin *application.AdminService, sessions *SessionManager) *AdminHandler {
	return &AdminHandler{
		admin:    admin,
		sessions: sessions,
	}
}

// LoginRequest is the payload for admin authentication
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AddEmailRequest is the payload for adding an allow-list entry
type AddEmailRequest struct {
	Email string `json:"email"`
}

// CreateSlotsRequest is the payload for creating slots over a time range.
// The range is cut into one-hour segments, each becoming its own slot.
type CreateSlotsRequest struct {
	DayOfWeek   int    `json:"dayOfWeek"` // 0 = Sunday .. 6 = Saturday
	StartTime   string `json:"startTime"` // Format: HH:MM
	EndTime     string `json:"endTime"`   // Format: HH:MM
	MaxCapacity int    `json:"maxCapacity"`
}

// SetSlotActiveRequest is the payload for toggling a slot
type SetSlotActiveRequest struct {
	IsActive bool `json:"isActive"`
}

// Login authenticates an admin and opens a session cookie
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request format",
		})
	}

	admin, err := h.admin.Authenticate(req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	token, err := h.sessions.Open(admin.Email)
	if err != nil {
		return respondError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     AdminSessionCookie,
		Value:    token,
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})

	return c.JSON(fiber.Map{
		"email": admin.Email,
	})
}

// Logout closes the admin session
func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	token := c.Cookies(AdminSessionCookie)
	if token != "" {
		h.sessions.Close(token)
	}

	c.ClearCookie(AdminSessionCookie)
	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}

// ListEmails returns the allow list with active reservation counts
func (h *AdminHandler) ListEmails(c *fiber.Ctx) error {
	emails, err := h.admin.ListAllowedEmails()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"emails": emails,
	})
}

// AddEmail adds an address to the allow list
func (h *AdminHandler) AddEmail(c *fiber.Ctx) error {
	var req AddEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request format",
		})
	}

	entry, err := h.admin.AddAllowedEmail(req.Email)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

// RemoveEmail removes an allow-list entry that owns no active reservations
func (h *AdminHandler) RemoveEmail(c *fiber.Ctx) error {
	if err := h.admin.RemoveAllowedEmail(c.Params("id")); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Email removed",
	})
}

// ListSlots returns the full slot catalog, inactive slots included
func (h *AdminHandler) ListSlots(c *fiber.Ctx) error {
	slots, err := h.admin.ListSlots()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"slots": slots,
	})
}

// CreateSlots creates the slots covering a weekly time range
func (h *AdminHandler) CreateSlots(c *fiber.Ctx) error {
	var req CreateSlotsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request format",
		})
	}

	slots, err := h.admin.CreateSlots(req.DayOfWeek, req.StartTime, req.EndTime, req.MaxCapacity)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"slots": slots,
	})
}

// SetSlotActive toggles whether a slot accepts new reservations
func (h *AdminHandler) SetSlotActive(c *fiber.Ctx) error {
	var req SetSlotActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request format",
		})
	}

	if err := h.admin.SetSlotActive(c.Params("id"), req.IsActive); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Slot updated",
	})
}

// DeleteSlot removes a slot and every reservation pointing at it
func (h *AdminHandler) DeleteSlot(c *fiber.Ctx) error {
	if err := h.admin.DeleteSlot(c.Params("id")); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Slot deleted",
	})
}

// ListReservations returns every reservation, newest first
func (h *AdminHandler) ListReservations(c *fiber.Ctx) error {
	reservations, err := h.admin.ListReservations()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"reservations": reservations,
	})
}
