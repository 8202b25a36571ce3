package handlers

import (
	"github.com/gofiber/fiber/v2"

	"sucree/internal/domain"
	applog "sucree/internal/log"
	"sucree/internal/services"
	"sucree/internal/validate"
)

type CartHandler struct {
	Catalog  *services.CatalogService
	WhatsApp services.WhatsApp
}

type addForm struct {
	ProductID    string `json:"productId"`
	Quantity     int    `json:"quantity"`
	SelectedSize string `json:"selectedSize"`
}

type quantityForm struct {
	ProductID string `json:"productId"`
	Delta     int    `json:"delta"`
}

func cartJSON(cart services.Cart) fiber.Map {
	items := cart.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	return fiber.Map{
		"items": items,
		"total": cart.Total().StringFixed(2),
		"count": cart.Count(),
	}
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	return c.JSON(cartJSON(storefront(c).Cart()))
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	var f addForm
	if err := c.BodyParser(&f); err != nil {
		return badRequest(c, "invalid body")
	}
	id, ok := validate.ID(f.ProductID)
	if !ok {
		return badRequest(c, "missing productId")
	}
	p, err := h.Catalog.Product(c.UserContext(), id)
	if err != nil {
		return writeError(c, "cart.add", "Error loading product", err)
	}
	cart, err := acquire(c).AddToCart(p, validate.Qty(f.Quantity), f.SelectedSize)
	if err != nil {
		return writeError(c, "cart.add", "Error adding to cart", err)
	}
	applog.Info(c, "cart.add", map[string]any{"product": p.ID, "count": cart.Count()})
	return c.JSON(cartJSON(cart))
}

func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	var f quantityForm
	if err := c.BodyParser(&f); err != nil {
		return badRequest(c, "invalid body")
	}
	id, ok := validate.ID(f.ProductID)
	if !ok {
		return badRequest(c, "missing productId")
	}
	return c.JSON(cartJSON(storefront(c).UpdateQuantity(id, f.Delta)))
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Query("productId"))
	if !ok {
		return badRequest(c, "missing productId")
	}
	return c.JSON(cartJSON(storefront(c).RemoveItem(id)))
}

func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	msg, err := storefront(c).Checkout(h.WhatsApp)
	if err != nil {
		return writeError(c, "cart.checkout", "Error building checkout", err)
	}
	applog.Audit(c, "cart.checkout", map[string]any{"count": storefront(c).Cart().Count()})
	return c.JSON(msg)
}
