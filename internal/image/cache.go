package image

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	httputil "github.com/YeenieBeans/Tools-For-Artists/internal/util/http"
)

// Cache keeps downloaded images on disk, keyed by URL.
type Cache struct {
	dir string
}

// NewCache returns a cache rooted at dir. An empty dir selects
// DefaultCacheDir.
func NewCache(dir string) (*Cache, error) {
	if dir == "" {
		d, err := DefaultCacheDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return &Cache{dir: dir}, nil
}

// DefaultCacheDir returns the per-user image cache directory.
func DefaultCacheDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "arttools", "images"), nil
	}
	return filepath.Join(cacheDir, "arttools", "images"), nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Path returns where url is stored: the first 16 bytes of its SHA-256 in
// hex plus the URL's image extension, keeping ".xz" suffixes intact.
func (c *Cache) Path(url string) string {
	sum := sha256.Sum256([]byte(url))
	name := hex.EncodeToString(sum[:16])

	rawPath := url
	if i := strings.IndexAny(rawPath, "?#"); i >= 0 {
		rawPath = rawPath[:i]
	}
	base := strings.ToLower(filepath.Base(rawPath))
	compressed := strings.HasSuffix(base, compressedSuffix)
	base = strings.TrimSuffix(base, compressedSuffix)

	ext := filepath.Ext(base)
	if !slices.Contains(SupportedImageExtensions(), ext) {
		ext = ".img"
	}
	if compressed {
		ext += compressedSuffix
	}
	return filepath.Join(c.dir, name+ext)
}

// Fetch returns the cached bytes for url, downloading and storing them on a
// miss.
func (c *Cache) Fetch(ctx context.Context, url string, opts httputil.FetchOptions) ([]byte, error) {
	path := c.Path(url)
	if data, err := os.ReadFile(path); err == nil { // #nosec G304 - path is derived from the cache directory
		return data, nil
	}

	data, err := httputil.Fetch(ctx, url, opts)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil { // #nosec G301 - cache directory needs standard permissions
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 - cached images are not sensitive
		return nil, fmt.Errorf("failed to write cached image: %w", err)
	}
	return data, nil
}
