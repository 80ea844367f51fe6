package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RayID assigns every request a unique ID, stored in the context locals
// and echoed in the X-Ray-ID response header for tracing.
func RayID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Ray-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals("ray_id", id)
		c.Set("X-Ray-ID", id)
		return c.Next()
	}
}
