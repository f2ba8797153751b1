package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// TokenMiddleware pulls the operator's Google access token from the
// Authorization header. The API never stores the token; every Sheets and
// Drive call downstream uses the one presented on the request.
type TokenMiddleware struct{}

func NewTokenMiddleware() *TokenMiddleware {
	return &TokenMiddleware{}
}

func (m *TokenMiddleware) RequireToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing Authorization header",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing access token",
			})
		}

		c.Locals("access_token", token)
		return c.Next()
	}
}
