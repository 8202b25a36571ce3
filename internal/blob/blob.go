// Package blob persists embedded (data URI) images and hands back a URL the
// storefront can serve.
package blob

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"sucree/internal/domain"
	"sucree/internal/validate"
)

// DefaultFolder is used when an upload names no folder.
const DefaultFolder = "misc"

// Store saves an embedded image under folder and returns its retrieval URL.
type Store interface {
	Save(ctx context.Context, encoded, folder string) (string, error)
}

var reDataURI = regexp.MustCompile(`^data:image/([A-Za-z+/-]+);base64,(.+)$`)

// Image is a decoded embedded payload.
type Image struct {
	Ext  string
	Data []byte
}

// IsEmbedded reports whether s is an inline payload rather than a URL.
func IsEmbedded(s string) bool { return strings.HasPrefix(s, "data:") }

// Decode parses a data:image/<type>;base64,<body> payload.
func Decode(encoded string) (Image, error) {
	if !strings.HasPrefix(encoded, "data:image") {
		return Image{}, fmt.Errorf("%w: not an embedded image", domain.ErrInvalidImageFormat)
	}
	m := reDataURI.FindStringSubmatch(encoded)
	if m == nil {
		return Image{}, fmt.Errorf("%w: malformed data uri", domain.ErrInvalidImageFormat)
	}
	ext, err := extension(m[1])
	if err != nil {
		return Image{}, err
	}
	data, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil || len(data) == 0 {
		return Image{}, fmt.Errorf("%w: bad base64 body", domain.ErrInvalidImageFormat)
	}
	return Image{Ext: ext, Data: data}, nil
}

// rasterExt lists the accepted subtypes. Scriptable formats such as svg+xml
// are refused because uploads are served from the storefront origin.
var rasterExt = map[string]string{
	"png":  "png",
	"jpeg": "jpg",
	"jpg":  "jpg",
	"gif":  "gif",
	"webp": "webp",
	"avif": "avif",
}

func extension(subtype string) (string, error) {
	ext, ok := rasterExt[strings.ToLower(subtype)]
	if !ok {
		return "", fmt.Errorf("%w: unsupported image type %q", domain.ErrInvalidImageFormat, subtype)
	}
	return ext, nil
}

// Folder normalizes the upload folder; empty means DefaultFolder.
func Folder(folder string) (string, error) {
	if strings.TrimSpace(folder) == "" {
		return DefaultFolder, nil
	}
	f, ok := validate.Folder(folder)
	if !ok {
		return "", fmt.Errorf("%w: invalid folder %q", domain.ErrValidation, folder)
	}
	return f, nil
}
