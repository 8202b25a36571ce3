package services

import (
	"context"
	"fmt"
	"sync"

	"sucree/internal/domain"
)

// Storefront is the state one visitor session carries: selection, search,
// cart and admin gate. It lives in memory only.
type Storefront struct {
	mu               sync.Mutex
	selectedCategory string
	query            string
	cart             Cart
	gate             Gate
}

func NewStorefront(auth Authenticator) *Storefront {
	return &Storefront{selectedCategory: domain.AllCategoryID, gate: NewGate(auth)}
}

// Select records the category and search used for the next catalog view.
func (s *Storefront) Select(category, query string) (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if category == "" {
		category = domain.AllCategoryID
	}
	s.selectedCategory, s.query = category, query
	return s.selectedCategory, s.query
}

func (s *Storefront) Selection() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedCategory, s.query
}

// ResetSelectionIf goes back to "all" when the selected category disappears.
func (s *Storefront) ResetSelectionIf(categoryID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedCategory == categoryID {
		s.selectedCategory = domain.AllCategoryID
	}
}

func (s *Storefront) Cart() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

// AddToCart applies the product page rules before merging into the cart:
// sold out products are refused, quantity is held within stock and a
// product with sizes always gets one.
func (s *Storefront) AddToCart(p domain.Product, quantity int, size string) (Cart, error) {
	if p.Stock <= 0 {
		return Cart{}, fmt.Errorf("%w: %s", domain.ErrOutOfStock, p.Name)
	}
	quantity = min(max(quantity, 1), p.Stock)
	if len(p.Sizes) > 0 {
		if size == "" {
			size = p.Sizes[0]
		} else if !p.HasSize(size) {
			return Cart{}, fmt.Errorf("%w: size %q not offered for %s", domain.ErrValidation, size, p.Name)
		}
	} else {
		size = ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = s.cart.Add(p, quantity, size)
	return s.cart, nil
}

func (s *Storefront) UpdateQuantity(productID string, delta int) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = s.cart.UpdateQuantity(productID, delta)
	return s.cart
}

func (s *Storefront) RemoveItem(productID string) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = s.cart.RemoveItem(productID)
	return s.cart
}

func (s *Storefront) Checkout(w WhatsApp) (CheckoutMessage, error) {
	return s.Cart().Checkout(w)
}

func (s *Storefront) Unlock(ctx context.Context, pin string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gate.Submit(ctx, pin)
}

func (s *Storefront) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gate.Lock()
}

func (s *Storefront) AdminUnlocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gate.Unlocked()
}
