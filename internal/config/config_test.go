package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DSN", "UPLOAD_DIR", "STORE_NAME", "ADMIN_PIN", "ADMIN_PIN_HASH", "ADMIN_TOKENS", "MAX_BODY_BYTES", "PUBLIC_BASE_URL"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "Maison Sucrée", cfg.StoreName)
	assert.Equal(t, "1234", cfg.AdminPIN)
	assert.Equal(t, 10<<20, cfg.MaxBodyBytes)
	assert.Empty(t, cfg.AdminTokens)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ADMIN_PIN", "9876")
	t.Setenv("ADMIN_TOKENS", " tok-a, ,tok-b ")
	t.Setenv("MAX_BODY_BYTES", "2048")
	t.Setenv("PUBLIC_BASE_URL", "https://doces.example/")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "9876", cfg.AdminPIN)
	assert.Equal(t, []string{"tok-a", "tok-b"}, cfg.AdminTokens)
	assert.Equal(t, 2048, cfg.MaxBodyBytes)
	assert.Equal(t, "https://doces.example", cfg.PublicBaseURL)
}
