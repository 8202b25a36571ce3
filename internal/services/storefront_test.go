package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sucree/internal/domain"
	"sucree/internal/services"
)

func TestStorefrontSelection(t *testing.T) {
	s := services.NewStorefront(nil)
	cat, q := s.Selection()
	assert.Equal(t, domain.AllCategoryID, cat)
	assert.Empty(t, q)

	cat, q = s.Select("cakes", "red")
	assert.Equal(t, "cakes", cat)
	assert.Equal(t, "red", q)

	s.ResetSelectionIf("tarts")
	cat, _ = s.Selection()
	assert.Equal(t, "cakes", cat)

	s.ResetSelectionIf("cakes")
	cat, q = s.Selection()
	assert.Equal(t, domain.AllCategoryID, cat)
	assert.Equal(t, "red", q)

	cat, _ = s.Select("", "")
	assert.Equal(t, domain.AllCategoryID, cat)
}

func TestStorefrontAddToCart(t *testing.T) {
	s := services.NewStorefront(nil)

	soldOut := domain.Product{ID: "dark", Name: "Dark Chocolate Cookie", Price: 18}
	_, err := s.AddToCart(soldOut, 1, "")
	assert.ErrorIs(t, err, domain.ErrOutOfStock)

	c, err := s.AddToCart(citron, 50, "ignored")
	require.NoError(t, err)
	assert.Equal(t, citron.Stock, c.Items[0].Quantity, "clamped to stock")
	assert.Empty(t, c.Items[0].SelectedSize)

	c, err = s.AddToCart(redVelvet, 0, "")
	require.NoError(t, err)
	require.Len(t, c.Items, 2)
	assert.Equal(t, "P", c.Items[1].SelectedSize)
	assert.Equal(t, 1, c.Items[1].Quantity)

	_, err = s.AddToCart(redVelvet, 1, "XL")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Len(t, s.Cart().Items, 2)

	c = s.UpdateQuantity(redVelvet.ID, 2)
	assert.Equal(t, 3, c.Items[1].Quantity)
	c = s.RemoveItem(citron.ID)
	require.Len(t, c.Items, 1)

	msg, err := s.Checkout(services.WhatsApp{Phone: "1"})
	require.NoError(t, err)
	assert.Contains(t, msg.Text, "3x Red Velvet Royale - R$ 540.00")
}

func TestStorefrontConcurrentAdds(t *testing.T) {
	s := services.NewStorefront(nil)
	box := domain.Product{ID: "box", Name: "Box", Price: 1, Stock: 99}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.AddToCart(box, 1, "")
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, s.Cart().Count())
}

func TestStorefrontAdminGate(t *testing.T) {
	pin, err := services.NewStaticSecret("1234")
	require.NoError(t, err)
	s := services.NewStorefront(pin)
	ctx := context.Background()

	assert.False(t, s.AdminUnlocked())
	assert.ErrorIs(t, s.Unlock(ctx, "9999"), domain.ErrAuthenticationFailed)
	require.NoError(t, s.Unlock(ctx, "1234"))
	assert.True(t, s.AdminUnlocked())
	s.Lock()
	assert.False(t, s.AdminUnlocked())
}
