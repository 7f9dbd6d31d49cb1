package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	apimodels "pmfin-backend/models/api"
)

// WithBodyLimit rejects requests whose declared Content-Length exceeds limitMb.
// Chunked bodies are left to the fiber BodyLimit.
func WithBodyLimit(limitMb int64) fiber.Handler {
	limit := limitMb * 1024 * 1024
	return func(c *fiber.Ctx) error {
		if limit <= 0 {
			return c.Next()
		}
		if size := int64(c.Request().Header.ContentLength()); size > limit {
			return c.Status(fiber.StatusRequestEntityTooLarge).
				JSON(apimodels.NewError(fmt.Sprintf("request body too large, maximum allowed: %d MB", limitMb)))
		}
		return c.Next()
	}
}
