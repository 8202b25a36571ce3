package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "sucree/internal/log"
	"sucree/internal/services"
)

type CategoryHandler struct {
	Cats     *services.CategoryService
	Sessions *Sessions
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Cats.List(c.UserContext())
	if err != nil {
		return writeError(c, "category.list", "Error loading categories", err)
	}
	return c.JSON(cats)
}

func (h *CategoryHandler) Save(c *fiber.Ctx) error {
	var f services.CategoryForm
	if err := c.BodyParser(&f); err != nil {
		return badRequest(c, "invalid body")
	}
	cat, err := h.Cats.Save(c.UserContext(), f)
	if err != nil {
		return writeError(c, "category.save", "Error saving category", err)
	}
	applog.Audit(c, "category.save", map[string]any{"id": cat.ID})
	return c.JSON(cat)
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id := c.Query("id")
	if err := h.Cats.Delete(c.UserContext(), id); err != nil {
		return writeError(c, "category.delete", "Error deleting category", err)
	}
	if h.Sessions != nil {
		h.Sessions.Each(func(f *services.Storefront) { f.ResetSelectionIf(id) })
	}
	applog.Audit(c, "category.delete", map[string]any{"id": id})
	return c.JSON(fiber.Map{"success": true})
}
