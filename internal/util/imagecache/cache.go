// Package imagecache downloads remote wallpapers into a local cache.
package imagecache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/rze-theme/rze/internal/fsutil"
	"github.com/rze-theme/rze/internal/security"
	httputil "github.com/rze-theme/rze/internal/util/http"
)

// validateURL is replaced in tests so httptest servers on loopback pass.
var validateURL = security.ValidateHTTPURL

// CacheOptions configures image caching behavior.
type CacheOptions struct {
	// CacheDir is the directory where images will be cached. Required.
	CacheDir string

	// Filename overrides the hash-derived cache filename.
	Filename string

	// AllowOverwrite re-downloads even when a cached copy exists.
	AllowOverwrite bool

	// Client overrides the HTTP client used for the download.
	Client *http.Client
}

// Filename derives a deterministic cache filename from a URL: the first
// 16 bytes of its SHA-256 in hex plus the URL path's extension.
func Filename(rawURL string) string {
	hash := sha256.Sum256([]byte(rawURL))

	ext := ""
	if u, err := url.Parse(rawURL); err == nil {
		ext = path.Ext(u.Path)
	}
	if ext == "" || len(ext) > 5 {
		ext = ".jpg"
	}

	return fmt.Sprintf("%x%s", hash[:16], ext)
}

// DownloadAndCache downloads a remote image into the cache directory and
// returns its local path. An existing cached copy is reused.
func DownloadAndCache(ctx context.Context, rawURL string, opts CacheOptions) (string, error) {
	if err := validateURL(rawURL); err != nil {
		return "", err
	}
	if opts.CacheDir == "" {
		return "", fmt.Errorf("image cache directory not set")
	}

	filename := opts.Filename
	if filename == "" {
		filename = Filename(rawURL)
	}
	cachedPath := filepath.Join(opts.CacheDir, filename)

	if !opts.AllowOverwrite {
		if _, err := os.Stat(cachedPath); err == nil {
			return cachedPath, nil
		}
	}

	data, err := httputil.Fetch(ctx, rawURL, httputil.FetchOptions{Client: opts.Client})
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}

	if err := fsutil.AtomicWrite(cachedPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write cached image: %w", err)
	}

	return cachedPath, nil
}
