package validate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sucree/internal/domain"
)

func TestPrice(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{`180`, 180},
		{`85.5`, 85.5},
		{`"22.00"`, 22},
		{`" 12,50 "`, 12.5},
		{`0`, 0},
	}
	for _, tc := range cases {
		got, err := Price(json.RawMessage(tc.raw))
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}

	for _, bad := range []string{``, `null`, `"abc"`, `""`, `-1`, `"-3"`, `true`, `[1]`} {
		_, err := Price(json.RawMessage(bad))
		assert.ErrorIs(t, err, domain.ErrValidation, bad)
	}
}

func TestStock(t *testing.T) {
	cases := map[string]int{``: 0, `null`: 0, `""`: 0, `7`: 7, `"12"`: 12, `3.9`: 3, `"4.2"`: 4}
	for raw, want := range cases {
		got, err := Stock(json.RawMessage(raw))
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	for _, bad := range []string{`"muitos"`, `-2`, `{}`} {
		_, err := Stock(json.RawMessage(bad))
		assert.ErrorIs(t, err, domain.ErrValidation, bad)
	}
}

func TestIngredients(t *testing.T) {
	t.Run("delimited string is split and trimmed", func(t *testing.T) {
		got, err := Ingredients(json.RawMessage(`"Trigo, Ovo, "`))
		require.NoError(t, err)
		assert.Equal(t, []string{"Trigo", "Ovo"}, got)
	})

	t.Run("empty string gives empty list", func(t *testing.T) {
		got, err := Ingredients(json.RawMessage(`""`))
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)

		got, err = Ingredients(json.RawMessage(`"   "`))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("list passes through unchanged", func(t *testing.T) {
		got, err := Ingredients(json.RawMessage(`["Farinha T45"," manteiga "]`))
		require.NoError(t, err)
		assert.Equal(t, []string{"Farinha T45", " manteiga "}, got)
	})

	t.Run("missing gives empty list", func(t *testing.T) {
		got, err := Ingredients(nil)
		require.NoError(t, err)
		assert.Equal(t, []string{}, got)
	})

	t.Run("other types rejected", func(t *testing.T) {
		_, err := Ingredients(json.RawMessage(`42`))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "paes-doces", Slugify("  Pães   Doces "))
	assert.Equal(t, "macarons", Slugify("Macarons"))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestHeroLink(t *testing.T) {
	for _, ok := range []string{"", "#product-grid", "https://wa.me/5532999846921"} {
		_, valid := HeroLink(ok)
		assert.True(t, valid, ok)
	}
	for _, bad := range []string{"#", "javascript:alert(1)", "wa.me/123", "ftp://x.y/z"} {
		_, valid := HeroLink(bad)
		assert.False(t, valid, bad)
	}
}

func TestFolderAndID(t *testing.T) {
	_, ok := Folder("products")
	assert.True(t, ok)
	_, ok = Folder("../etc")
	assert.False(t, ok)
	_, ok = ID("gbc-001")
	assert.True(t, ok)
	_, ok = ID("a b")
	assert.False(t, ok)
}
