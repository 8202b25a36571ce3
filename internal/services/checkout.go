package services

import (
	"fmt"
	"net/url"
	"strings"

	"sucree/internal/domain"
)

const (
	checkoutGreeting = "Olá! Gostaria de fazer o seguinte pedido:\n\n"
	checkoutClosing  = "\n\nPoderia confirmar a disponibilidade e a taxa de entrega?"
)

// CheckoutMessage is the order summary handed to the chat app.
type CheckoutMessage struct {
	Text string `json:"message"`
	URL  string `json:"url"`
}

// WhatsApp builds wa.me links that open a chat with Phone pre-filled.
type WhatsApp struct {
	Phone string
}

func (w WhatsApp) Link(text string) string {
	// wa.me wants %20, QueryEscape emits "+" (a literal plus is already %2B).
	return "https://wa.me/" + w.Phone + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

// Summary renders the order text for c.
func (c Cart) Summary() string {
	var b strings.Builder
	b.WriteString(checkoutGreeting)
	for _, it := range c.Items {
		fmt.Fprintf(&b, "%dx %s - R$ %s\n", it.Quantity, it.Name, lineTotal(it).StringFixed(2))
	}
	fmt.Fprintf(&b, "\n*Total: R$ %s*", c.Total().StringFixed(2))
	b.WriteString(checkoutClosing)
	return b.String()
}

// Checkout formats the order for w. It does not change the cart.
func (c Cart) Checkout(w WhatsApp) (CheckoutMessage, error) {
	if c.Empty() {
		return CheckoutMessage{}, domain.ErrEmptyCart
	}
	text := c.Summary()
	return CheckoutMessage{Text: text, URL: w.Link(text)}, nil
}
