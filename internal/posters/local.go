package posters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// URLPrefix is where local posters are served.
const URLPrefix = "/uploads/"

// Local keeps posters in a directory on disk.
type Local struct {
	Dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &Local{Dir: dir}, nil
}

func (l *Local) Save(_ context.Context, name string, r io.Reader, _ string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid poster name %q", name)
	}
	f, err := os.OpenFile(filepath.Join(l.Dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create poster: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write poster: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return strings.TrimPrefix(URLPrefix, "/") + name, nil
}

func (l *Local) Resolve(_ context.Context, ref, baseURL string) (string, error) {
	if ref == "" || isURL(ref) {
		return ref, nil
	}
	if strings.HasPrefix(ref, "s3://") {
		return "", fmt.Errorf("poster %q is held in object storage but the local backend is active", ref)
	}
	return joinBase(ref, baseURL), nil
}

// Handler serves the directory; mount it under URLPrefix.
func (l *Local) Handler() http.Handler {
	return http.StripPrefix(URLPrefix, http.FileServer(http.Dir(l.Dir)))
}
