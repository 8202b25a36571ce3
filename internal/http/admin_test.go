package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRoutesRequireUnlockedSession(t *testing.T) {
	a := newTestApp(t)
	cat := map[string]string{"id": "bolos-de-pote", "name": "Bolos de Pote"}

	resp, _ := a.do(t, "POST", "/api/categories", cat)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := a.do(t, "GET", "/api/admin/session", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, decode[map[string]bool](t, body)["unlocked"])

	resp, _ = a.do(t, "POST", "/api/admin/session", map[string]string{"pin": "0000"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	a.unlock(t)
	_, body = a.do(t, "GET", "/api/admin/session", nil)
	assert.Equal(t, true, decode[map[string]bool](t, body)["unlocked"])

	resp, _ = a.do(t, "POST", "/api/categories", cat)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = a.do(t, "DELETE", "/api/admin/session", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = a.do(t, "DELETE", "/api/categories?id=bolos-de-pote", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminGateIsPerSession(t *testing.T) {
	admin := newTestApp(t)
	admin.unlock(t)

	visitor := &testApp{app: admin.app}
	resp, _ := visitor.do(t, "POST", "/api/settings", map[string]string{"name": "Hacked"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.NotEqual(t, admin.sid, visitor.sid)
}

func TestAdminBearerToken(t *testing.T) {
	a := newTestApp(t)

	resp, _ := a.do(t, "DELETE", "/api/products?id=croissant-au-beurre", nil, "Authorization", "Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = a.do(t, "DELETE", "/api/products?id=croissant-au-beurre", nil, "Authorization", "Bearer tok-admin")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = a.do(t, "DELETE", "/api/products?id=croissant-au-beurre", nil, "Authorization", "Bearer tok-admin")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminUnlockLogs(t *testing.T) {
	a := newTestApp(t)
	entries := captureLogs(t, func() {
		a.do(t, "POST", "/api/admin/session", map[string]string{"pin": "9999"})
		a.unlock(t)
	})

	fail, ok := findLog(entries, "admin.unlock.fail")
	require.True(t, ok, "failed unlock not logged")
	assert.Equal(t, "warn", fail.Level)

	okEntry, ok := findLog(entries, "admin.unlock")
	require.True(t, ok, "unlock not audited")
	assert.Equal(t, "audit", okEntry.Level)
	assert.Equal(t, a.sid, okEntry.Session)
	assert.NotEmpty(t, okEntry.ReqID)
}
