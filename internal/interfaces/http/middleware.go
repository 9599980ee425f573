package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/OthmanASSAS/slotify/internal/application"
)

// RequireAdmin gates a route group behind a valid admin session cookie.
func RequireAdmin(sessions *SessionManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(AdminSessionCookie)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		email, ok := sessions.Resolve(token)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Session expired",
			})
		}

		c.Locals("adminEmail", email)
		return c.Next()
	}
}

// RateLimit throttles by client IP. Exceeding the window budget gets a 429
// with a Retry-After header.
func RateLimit(limiter *application.RateLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		allowed, reset := limiter.Allow(c.IP())
		if !allowed {
			retryAfter := int(time.Until(reset).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Set("Retry-After", strconv.Itoa(retryAfter))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, try again later",
			})
		}
		return c.Next()
	}
}
