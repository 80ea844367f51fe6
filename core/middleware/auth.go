package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// Auth returns a middleware that requires the X-API-Key header to match
// apiKey. An empty apiKey disables authentication.
func Auth(apiKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if apiKey == "" {
			return c.Next()
		}
		provided := c.Get("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or missing API key",
			})
		}
		return c.Next()
	}
}
