package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/require"

	"sucree/internal/blob"
	"sucree/internal/config"
	"sucree/internal/http/handlers"
	"sucree/internal/repos"
	"sucree/internal/services"
)

const testPIN = "1234"

type testApp struct {
	app  *fiber.App
	deps *handlers.Deps
	dir  string
	sid  string
}

// newTestApp wires the real routes over an in-memory database and a disk
// store rooted in a temp dir. Bearer token "tok-admin" is accepted.
func newTestApp(t *testing.T, opts ...func(*config.Config)) *testApp {
	t.Helper()
	cfg := config.Config{DBDSN: ":memory:", StoreName: "Maison Sucrée", WhatsAppPhone: "5532999846921"}
	for _, o := range opts {
		o(&cfg)
	}
	db, err := repos.OpenDB(cfg.DBDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	pin, err := services.NewStaticSecret(testPIN)
	require.NoError(t, err)
	dir := t.TempDir()

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())

	deps := handlers.NewDeps(db, cfg, blob.NewDiskStore(dir), pin, services.NewTokenSet("tok-admin"))
	deps.Mount(app, nil)
	return &testApp{app: app, deps: deps, dir: dir}
}

// do sends a request carrying the app's sid and remembers a newly issued one.
func (a *testApp) do(t *testing.T, method, target string, body any, headers ...string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	if a.sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: a.sid})
	}
	resp, err := a.app.Test(req, 5000)
	require.NoError(t, err)
	for _, c := range resp.Cookies() {
		if c.Name == "sid" {
			a.sid = c.Value
		}
	}
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func (a *testApp) unlock(t *testing.T) {
	t.Helper()
	resp, _ := a.do(t, "POST", "/api/admin/session", map[string]string{"pin": testPIN})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v), string(b))
	return v
}

type logEntry struct {
	Level   string         `json:"level"`
	Action  string         `json:"action"`
	Session string         `json:"session"`
	ReqID   string         `json:"req_id"`
	Fields  map[string]any `json:"fields"`
}

type lockedBuf struct {
	b  *bytes.Buffer
	mu *sync.Mutex
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	oldW := log.Writer()
	oldFlags := log.Flags()
	log.SetOutput(&lockedBuf{b: &buf, mu: &mu})
	log.SetFlags(0)
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}

const pngPayload = "data:image/png;base64,iVBORw0KGgo="
