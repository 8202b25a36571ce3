package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "sucree/internal/log"
	"sucree/internal/services"
)

// RequireAdmin lets the request through when the visitor's gate is unlocked
// or a bearer token is accepted by tokens. tokens may be nil.
func RequireAdmin(tokens services.Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if storefront(c).AdminUnlocked() {
			return c.Next()
		}
		if tok, ok := bearer(c); ok && tokens != nil {
			if err := tokens.Authenticate(c.UserContext(), tok); err == nil {
				c.Locals("admin", "token")
				return c.Next()
			}
			applog.Security(c, "access.denied.token", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}
		applog.Security(c, "access.denied.admin", nil)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "admin access required"})
	}
}

func bearer(c *fiber.Ctx) (string, bool) {
	h := c.Get(fiber.HeaderAuthorization)
	tok, ok := strings.CutPrefix(h, "Bearer ")
	tok = strings.TrimSpace(tok)
	return tok, ok && tok != ""
}
