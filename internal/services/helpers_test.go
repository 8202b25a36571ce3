package services_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"sucree/internal/blob"
	"sucree/internal/repos"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// fakeBlobs names each upload after its payload body so results are
// predictable under concurrent uploads.
type fakeBlobs struct {
	mu      sync.Mutex
	folders []string
	fail    map[string]bool
}

func (f *fakeBlobs) Save(_ context.Context, encoded, folder string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.folders = append(f.folders, folder)
	if f.fail[encoded] {
		return "", errors.New("disk full")
	}
	if _, err := blob.Decode(encoded); err != nil {
		return "", err
	}
	body := encoded[strings.Index(encoded, ",")+1:]
	return "/uploads/" + folder + "/" + body + ".png", nil
}

func (f *fakeBlobs) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.folders)
}

// img wraps a base64 body in a png data URI.
func img(body string) string { return "data:image/png;base64," + body }
