package handlers_test

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadWritesFile(t *testing.T) {
	a := newTestApp(t)
	a.unlock(t)

	resp, body := a.do(t, "POST", "/api/upload", map[string]string{"image": pngPayload, "folder": "products"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	u := decode[map[string]string](t, body)["url"]
	require.True(t, strings.HasPrefix(u, "/uploads/products/"), u)
	assert.True(t, strings.HasSuffix(u, ".png"), u)

	data, err := os.ReadFile(filepath.Join(a.dir, "products", filepath.Base(u)))
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), data)

	_, body = a.do(t, "POST", "/api/upload", map[string]string{"image": pngPayload})
	assert.True(t, strings.HasPrefix(decode[map[string]string](t, body)["url"], "/uploads/misc/"))
}

func TestUploadRejectsBadInput(t *testing.T) {
	a := newTestApp(t)
	a.unlock(t)

	for name, in := range map[string]map[string]string{
		"not an image": {"image": "hello"},
		"missing":      {},
		"empty body":   {"image": "data:image/png;base64,"},
		"bad folder":   {"image": pngPayload, "folder": "../etc"},
		"svg":          {"image": "data:image/svg+xml;base64,PHN2Zy8+"},
	} {
		t.Run(name, func(t *testing.T) {
			resp, _ := a.do(t, "POST", "/api/upload", in)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}
