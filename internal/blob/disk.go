package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// URLPrefix is where the app serves files written by DiskStore.
const URLPrefix = "/uploads"

// DiskStore writes images below Root. Returned URLs are always relative:
// /uploads/<folder>/<uuid>.<ext>.
type DiskStore struct {
	Root string // e.g. ./public/uploads
}

func NewDiskStore(root string) *DiskStore {
	return &DiskStore{Root: root}
}

func (s *DiskStore) Save(ctx context.Context, encoded, folder string) (string, error) {
	img, err := Decode(encoded)
	if err != nil {
		return "", err
	}
	folder, err = Folder(folder)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(s.Root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	name := uuid.NewString() + "." + img.Ext
	if err := os.WriteFile(filepath.Join(dir, name), img.Data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return URLPrefix + "/" + folder + "/" + name, nil
}
