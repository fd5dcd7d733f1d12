package image

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/ulikunitz/xz"

	httputil "github.com/YeenieBeans/Tools-For-Artists/internal/util/http"
)

func encodePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	fillRect(img, img.Bounds(), color.NRGBA{R: 255, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func compressXZ(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatalf("xz writer: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("xz write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("xz close: %v", err)
	}
	return buf.Bytes()
}

func TestFileLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	raw := encodePNG(t)

	plain := filepath.Join(dir, "plain.png")
	if err := os.WriteFile(plain, raw, 0o600); err != nil {
		t.Fatal(err)
	}
	packed := filepath.Join(dir, "packed.png.xz")
	if err := os.WriteFile(packed, compressXZ(t, raw), 0o600); err != nil {
		t.Fatal(err)
	}
	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "png", path: plain},
		{name: "xz compressed png", path: packed},
		{name: "empty path", path: "", wantErr: true},
		{name: "missing", path: filepath.Join(dir, "missing.png"), wantErr: true},
		{name: "directory", path: dir, wantErr: true},
		{name: "undecodable", path: garbage, wantErr: true},
	}

	loader := NewFileLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := loader.Load(context.Background(), tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
				t.Errorf("bounds = %v, want 8x4", b)
			}
		})
	}
}

func TestSmartLoaderURL(t *testing.T) {
	raw := encodePNG(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/img.png":
			_, _ = w.Write(raw)
		case "/img.png.xz":
			_, _ = w.Write(compressXZ(t, raw))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	loader := NewSmartLoader(httputil.FetchOptions{Client: srv.Client()})
	for _, path := range []string{"/img.png", "/img.png.xz?v=1"} {
		img, err := loader.Load(context.Background(), srv.URL+path)
		if err != nil {
			t.Fatalf("Load(%s) error = %v", path, err)
		}
		if b := img.Bounds(); b.Dx() != 8 {
			t.Errorf("Load(%s) width = %d, want 8", path, b.Dx())
		}
	}

	if _, err := loader.Load(context.Background(), srv.URL+"/missing.png"); err == nil {
		t.Error("expected error for missing URL")
	}
}

func TestScanDirectoryForImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.JPG", "c.png.xz", "d.txt", "e.avif"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte{0}, 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o700); err != nil {
		t.Fatal(err)
	}

	files, err := ScanDirectoryForImages(dir)
	if err != nil {
		t.Fatalf("ScanDirectoryForImages() error = %v", err)
	}
	if len(files) != 4 {
		t.Errorf("found %d images, want 4: %v", len(files), files)
	}

	picked, err := ResolveImagePath(dir)
	if err != nil {
		t.Fatalf("ResolveImagePath() error = %v", err)
	}
	found := false
	for _, f := range files {
		if f == picked {
			found = true
		}
	}
	if !found {
		t.Errorf("ResolveImagePath() = %q, not one of %v", picked, files)
	}

	if _, err := ScanDirectoryForImages(t.TempDir()); err == nil {
		t.Error("expected error for empty directory")
	}
}

func TestValidateImagePath(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.png")
	if err := os.WriteFile(good, encodePNG(t), 0o600); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("nope"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "valid file", path: good},
		{name: "directory", path: dir},
		{name: "url", path: "https://example.com/a.png"},
		{name: "compressed by extension", path: filepath.Join(dir, "x.png.xz"), wantErr: true},
		{name: "empty", path: "", wantErr: true},
		{name: "invalid image", path: bad, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImagePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImagePath() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSmartLoaderCache(t *testing.T) {
	raw := encodePNG(t)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write(raw)
	}))
	defer srv.Close()

	cache, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}
	loader := NewSmartLoader(httputil.FetchOptions{Client: srv.Client()}).WithCache(cache)

	url := srv.URL + "/ref.png?size=large"
	for i := 0; i < 2; i++ {
		if _, err := loader.Load(context.Background(), url); err != nil {
			t.Fatalf("Load() #%d error = %v", i, err)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1", got)
	}
	if _, err := os.Stat(cache.Path(url)); err != nil {
		t.Errorf("cached file missing: %v", err)
	}
}

func TestCachePath(t *testing.T) {
	cache, err := NewCache("/cache")
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}

	tests := []struct {
		url     string
		wantExt string
	}{
		{"https://example.com/a.PNG", ".png"},
		{"https://example.com/a.png.xz?x=1", ".png.xz"},
		{"https://example.com/download?id=3", ".img"},
		{"https://example.com/a.webp#frag", ".webp"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got := cache.Path(tt.url)
			if filepath.Dir(got) != "/cache" {
				t.Errorf("Path() dir = %q", filepath.Dir(got))
			}
			name := filepath.Base(got)
			if len(name) != 32+len(tt.wantExt) || name[32:] != tt.wantExt {
				t.Errorf("Path() = %q, want 32 hex chars + %q", name, tt.wantExt)
			}
		})
	}

	if cache.Path("https://a/x.png") == cache.Path("https://b/x.png") {
		t.Error("different URLs should not share a cache entry")
	}
}

func TestDecodeLimitsDecompressedSize(t *testing.T) {
	lr := &limitedReader{r: bytes.NewReader(make([]byte, 10)), remaining: 4}
	buf := make([]byte, 8)

	n, err := lr.Read(buf)
	if n != 4 || err != nil {
		t.Fatalf("first Read() = %d, %v; want 4, nil", n, err)
	}
	if _, err := lr.Read(buf); !errors.Is(err, ErrDecompressedTooLarge) {
		t.Errorf("second Read() error = %v, want ErrDecompressedTooLarge", err)
	}
}
