package services

import (
	"github.com/shopspring/decimal"

	"sucree/internal/domain"
)

// Cart is an ordered list of line items. Every operation returns a new Cart
// and leaves the receiver untouched.
type Cart struct {
	Items []domain.CartItem `json:"items"`
}

func (c Cart) clone() Cart {
	items := make([]domain.CartItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}

// Add merges into the line keyed by (product id, size) or appends a new one.
func (c Cart) Add(p domain.Product, quantity int, selectedSize string) Cart {
	if quantity < 1 {
		quantity = 1
	}
	out := c.clone()
	for i := range out.Items {
		if out.Items[i].ID == p.ID && out.Items[i].SelectedSize == selectedSize {
			out.Items[i].Quantity += quantity
			return out
		}
	}
	out.Items = append(out.Items, domain.CartItem{Product: p, Quantity: quantity, SelectedSize: selectedSize})
	return out
}

// UpdateQuantity shifts every line of productID by delta, never below 1.
// Lines are matched by product id only, so all sizes of a product move together.
func (c Cart) UpdateQuantity(productID string, delta int) Cart {
	out := c.clone()
	for i := range out.Items {
		if out.Items[i].ID == productID {
			out.Items[i].Quantity = max(1, out.Items[i].Quantity+delta)
		}
	}
	return out
}

// RemoveItem drops every line of productID, whatever its size.
func (c Cart) RemoveItem(productID string) Cart {
	out := Cart{Items: make([]domain.CartItem, 0, len(c.Items))}
	for _, it := range c.Items {
		if it.ID != productID {
			out.Items = append(out.Items, it)
		}
	}
	return out
}

func lineTotal(it domain.CartItem) decimal.Decimal {
	return decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Total is exact; round only when displaying.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(lineTotal(it))
	}
	return total
}

// Count is the number of units, shown on the cart badge.
func (c Cart) Count() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

func (c Cart) Empty() bool { return len(c.Items) == 0 }
