// Package image provides utilities for loading images and normalising them
// into fixed-size RGB rasters for colour analysis.
package image

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"io"
	"math/big"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "github.com/gen2brain/avif" // Register AVIF format
	"github.com/ulikunitz/xz"
	_ "golang.org/x/image/webp" // Register WebP format

	httputil "github.com/YeenieBeans/Tools-For-Artists/internal/util/http"
)

// compressedSuffix marks images stored inside an xz stream (e.g. "scan.png.xz").
const compressedSuffix = ".xz"

// MaxDecompressedBytes bounds the size of a decompressed xz image.
const MaxDecompressedBytes = 256 * 1024 * 1024

// ErrDecompressedTooLarge is returned when an xz stream inflates past
// MaxDecompressedBytes.
var ErrDecompressedTooLarge = errors.New("decompression size limit exceeded")

// limitedReader fails once more than remaining bytes have been read.
type limitedReader struct {
	r         io.Reader
	remaining int64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.remaining <= 0 {
		return 0, ErrDecompressedTooLarge
	}
	if int64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	return n, err
}

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path.
	Load(ctx context.Context, path string) (image.Image, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path.
// Supported formats: JPEG, PNG, GIF, WebP, AVIF, optionally xz-compressed.
func (l *FileLoader) Load(_ context.Context, path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	return Decode(file, isCompressed(path))
}

// Decode decodes an image from r, unwrapping an xz stream first when
// compressed is set.
func Decode(r io.Reader, compressed bool) (image.Image, error) {
	if compressed {
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to open xz stream: %w", err)
		}
		r = &limitedReader{r: xr, remaining: MaxDecompressedBytes}
	}

	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	return img, nil
}

func isCompressed(path string) bool {
	return strings.EqualFold(filepath.Ext(path), compressedSuffix)
}

// ValidateImagePath checks if the given path is valid and points to a
// supported image file or directory. URLs are only checked for their scheme.
func ValidateImagePath(path string) error {
	if path == "" {
		return fmt.Errorf("image path cannot be empty")
	}
	if isURL(path) {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("image file or directory not found: %s", path)
		}
		return fmt.Errorf("failed to access image path: %w", err)
	}
	if info.IsDir() {
		return nil
	}

	// Compressed images are only checked by extension; decoding the config
	// would mean inflating the stream twice.
	if isCompressed(path) {
		if !isImageFile(path) {
			return fmt.Errorf("unsupported compressed image: %s", path)
		}
		return nil
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	if _, _, err := image.DecodeConfig(file); err != nil {
		return fmt.Errorf("unsupported or invalid image format: %w", err)
	}
	return nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".avif"}
}

// isImageFile checks if a file has a supported image extension, looking
// through a trailing ".xz".
func isImageFile(path string) bool {
	if isCompressed(path) {
		path = strings.TrimSuffix(path, filepath.Ext(path))
	}
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(SupportedImageExtensions(), ext)
}

// ScanDirectoryForImages scans a directory and returns all valid image files.
// It does not recurse into subdirectories, but follows symlinks.
func ScanDirectoryForImages(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var imageFiles []string
	for _, entry := range entries {
		fullPath := filepath.Join(dirPath, entry.Name())

		info, err := os.Stat(fullPath)
		if err != nil {
			// Broken symlinks and permission problems are skipped.
			continue
		}
		if info.IsDir() {
			continue
		}
		if isImageFile(entry.Name()) {
			imageFiles = append(imageFiles, fullPath)
		}
	}

	if len(imageFiles) == 0 {
		return nil, fmt.Errorf("no supported image files found in directory: %s", dirPath)
	}
	return imageFiles, nil
}

// SelectRandomImage selects a random image from a list of image paths.
func SelectRandomImage(imagePaths []string) (string, error) {
	if len(imagePaths) == 0 {
		return "", fmt.Errorf("image path list is empty")
	}

	idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(imagePaths))))
	if err != nil {
		return "", fmt.Errorf("failed to generate random number: %w", err)
	}
	return imagePaths[idx.Int64()], nil
}

// ResolveImagePath resolves a path that could be a file or directory.
// Directories yield a random image from their contents; files and URLs are
// returned as-is.
func ResolveImagePath(path string) (string, error) {
	if isURL(path) {
		return path, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return path, nil
	}

	imageFiles, err := ScanDirectoryForImages(path)
	if err != nil {
		return "", err
	}
	return SelectRandomImage(imageFiles)
}

// SmartLoader loads images from both local files and HTTP(S) URLs.
type SmartLoader struct {
	fileLoader *FileLoader
	fetch      httputil.FetchOptions
	cache      *Cache
}

// NewSmartLoader creates a new SmartLoader instance.
func NewSmartLoader(opts httputil.FetchOptions) *SmartLoader {
	return &SmartLoader{
		fileLoader: NewFileLoader(),
		fetch:      opts,
	}
}

// WithCache stores downloaded images in c and reuses them on later loads.
func (l *SmartLoader) WithCache(c *Cache) *SmartLoader {
	l.cache = c
	return l
}

// Load loads an image from either a local file path or HTTP(S) URL.
func (l *SmartLoader) Load(ctx context.Context, path string) (image.Image, error) {
	if isURL(path) {
		return l.loadFromURL(ctx, path)
	}
	return l.fileLoader.Load(ctx, path)
}

// loadFromURL fetches and decodes an image from an HTTP(S) URL.
func (l *SmartLoader) loadFromURL(ctx context.Context, url string) (image.Image, error) {
	var (
		data []byte
		err  error
	)
	if l.cache != nil {
		data, err = l.cache.Fetch(ctx, url, l.fetch)
	} else {
		data, err = httputil.Fetch(ctx, url, l.fetch)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}

	rawPath := url
	if i := strings.IndexAny(rawPath, "?#"); i >= 0 {
		rawPath = rawPath[:i]
	}
	return Decode(bytes.NewReader(data), isCompressed(rawPath))
}

func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
