package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"sucree/internal/domain"
	applog "sucree/internal/log"
)

func status(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidImageFormat),
		errors.Is(err, domain.ErrInvalidOperation),
		errors.Is(err, domain.ErrEmptyCart):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrAuthenticationFailed):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrOutOfStock):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError maps a domain error to a JSON response. Client errors carry the
// error text; server errors are logged and answered with msg only.
func writeError(c *fiber.Ctx, action, msg string, err error) error {
	code := status(err)
	if code < fiber.StatusInternalServerError {
		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}
	c.Status(code)
	applog.Error(c, action, err, nil)
	return c.JSON(fiber.Map{"error": msg})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
