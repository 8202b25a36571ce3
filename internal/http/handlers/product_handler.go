package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"sucree/internal/domain"
	applog "sucree/internal/log"
	"sucree/internal/services"
)

type ProductHandler struct {
	Prods *services.ProductService
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	ps, err := h.Prods.List(c.UserContext())
	if err != nil {
		return writeError(c, "product.list", "Error loading products", err)
	}
	return c.JSON(ps)
}

func (h *ProductHandler) Save(c *fiber.Ctx) error {
	var f services.ProductForm
	if err := c.BodyParser(&f); err != nil {
		return badRequest(c, "invalid body")
	}
	p, err := h.Prods.Save(c.UserContext(), f)
	if errors.Is(err, domain.ErrSaveFailed) {
		applog.Error(c, "product.save", err, map[string]any{"id": f.ID})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Error saving product",
			"details": err.Error(),
		})
	}
	if err != nil {
		return writeError(c, "product.save", "Error saving product", err)
	}
	applog.Audit(c, "product.save", map[string]any{"id": p.ID, "created": f.Creates()})
	return c.JSON(p)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return badRequest(c, "ID required")
	}
	if err := h.Prods.Delete(c.UserContext(), id); err != nil {
		return writeError(c, "product.delete", "Error deleting product", err)
	}
	applog.Audit(c, "product.delete", map[string]any{"id": id})
	return c.JSON(fiber.Map{"success": true})
}
