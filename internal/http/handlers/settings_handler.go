package handlers

import (
	"github.com/gofiber/fiber/v2"

	"sucree/internal/domain"
	applog "sucree/internal/log"
	"sucree/internal/services"
)

type SettingsHandler struct {
	Settings *services.SettingsService
}

func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	s, err := h.Settings.Get(c.UserContext())
	if err != nil {
		return writeError(c, "settings.get", "Error loading settings", err)
	}
	return c.JSON(s)
}

func (h *SettingsHandler) Save(c *fiber.Ctx) error {
	var p domain.SettingsPatch
	if err := c.BodyParser(&p); err != nil {
		return badRequest(c, "invalid body")
	}
	s, err := h.Settings.Save(c.UserContext(), p)
	if err != nil {
		return writeError(c, "settings.save", "Error saving settings", err)
	}
	applog.Audit(c, "settings.save", nil)
	return c.JSON(s)
}
