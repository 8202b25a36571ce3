package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "sucree/internal/log"
)

// AdminHandler opens and closes the admin gate of the current session.
type AdminHandler struct{}

type unlockForm struct {
	PIN string `json:"pin"`
}

func (h *AdminHandler) Unlock(c *fiber.Ctx) error {
	var f unlockForm
	if err := c.BodyParser(&f); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := acquire(c).Unlock(c.UserContext(), f.PIN); err != nil {
		applog.Security(c, "admin.unlock.fail", nil)
		return writeError(c, "admin.unlock", "Authentication error", err)
	}
	applog.Audit(c, "admin.unlock", nil)
	return c.JSON(fiber.Map{"unlocked": true})
}

func (h *AdminHandler) Lock(c *fiber.Ctx) error {
	storefront(c).Lock()
	applog.Audit(c, "admin.lock", nil)
	return c.JSON(fiber.Map{"unlocked": false})
}

func (h *AdminHandler) Status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"unlocked": storefront(c).AdminUnlocked()})
}
