// Package posters stores event poster images and turns stored references
// into URLs a browser can fetch.
package posters

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"
)

// Store persists a poster under name and returns the reference to keep on
// the event. Resolve maps such a reference back to an absolute URL.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader, contentType string) (string, error)
	Resolve(ctx context.Context, ref, baseURL string) (string, error)
}

var allowedExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// Allowed reports whether filename carries an accepted image extension.
func Allowed(filename string) bool {
	_, ok := allowedExt[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// ContentType guesses the media type from the extension.
func ContentType(filename string) string {
	if ct, ok := allowedExt[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// NewName builds "<unix-millis>-<random>-<original>". The random part only
// avoids collisions between uploads in the same millisecond.
func NewName(original string, now time.Time) string {
	return fmt.Sprintf("%d-%d-%s", now.UnixMilli(), rand.IntN(1_000_000_000), sanitize(original))
}

func sanitize(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 || name == "." || name == "/" {
		return "poster"
	}
	return b.String()
}

func isURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// joinBase prefixes a path-like reference with baseURL. Windows separators
// left by older uploads are normalised first.
func joinBase(ref, baseURL string) string {
	p := strings.TrimLeft(strings.ReplaceAll(ref, `\`, "/"), "/")
	return strings.TrimRight(baseURL, "/") + "/" + p
}
