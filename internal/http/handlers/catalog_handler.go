package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"sucree/internal/services"
	"sucree/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
	// BaseURL is the public origin used for the page's canonical link. Optional.
	BaseURL string
}

// selection applies ?category= and ?q= when present and returns the
// session's current choice otherwise. Only a request that changes the
// choice starts a session.
func selection(c *fiber.Ctx) (string, string, bool) {
	args := c.Context().QueryArgs()
	if !args.Has("category") && !args.Has("q") {
		cat, q := storefront(c).Selection()
		return cat, q, true
	}
	front := acquire(c)
	cat, q := front.Selection()
	if args.Has("category") {
		id, ok := validate.ID(c.Query("category"))
		if !ok && c.Query("category") != "" {
			return "", "", false
		}
		cat = id
	}
	if args.Has("q") {
		clean, ok := validate.Q(c.Query("q"))
		if !ok {
			return "", "", false
		}
		q = clean
	}
	// c.Query aliases the request buffer; the storefront keeps these.
	cat, q = front.Select(utils.CopyString(cat), utils.CopyString(q))
	return cat, q, true
}

func (h *CatalogHandler) View(c *fiber.Ctx) error {
	cat, q, ok := selection(c)
	if !ok {
		return badRequest(c, "invalid category or query")
	}
	v := h.Catalog.Snapshot(c.UserContext()).View(cat, q)
	return c.JSON(fiber.Map{
		"settings":         v.Settings,
		"categories":       v.Categories,
		"products":         v.Visible,
		"selectedCategory": v.SelectedCategory,
		"query":            v.Query,
		"cartCount":        storefront(c).Cart().Count(),
	})
}

// Home renders the storefront page.
func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	cat, q, ok := selection(c)
	front := storefront(c)
	if !ok {
		cat, q = front.Selection()
	}
	cart := front.Cart()
	return render(c, "home", fiber.Map{
		"View":      h.Catalog.Snapshot(c.UserContext()).View(cat, q),
		"Cart":      cart,
		"CartTotal": cart.Total().StringFixed(2),
		"BaseURL":   h.BaseURL,
	})
}
