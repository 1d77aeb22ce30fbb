package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vcostin/pic-gallery-sub004/internal/application"
)

// RequireAuth verifies the Bearer token and stores the caller's user id
// in the request locals.
func RequireAuth(auth *application.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing bearer token"})
		}

		userID, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals("userID", userID)
		return c.Next()
	}
}
