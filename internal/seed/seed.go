// Package seed derives the random seed used to initialise k-means clustering,
// so the same image can produce the same colour distribution on every run.
package seed

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"image"
	"math/rand/v2"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Mode determines how the seed is generated.
type Mode string

const (
	// ModeContent hashes the image content (default).
	ModeContent Mode = "content"
	// ModeFilepath hashes the absolute file path.
	ModeFilepath Mode = "filepath"
	// ModeManual uses a user-provided seed value.
	ModeManual Mode = "manual"
	// ModeRandom uses a non-deterministic seed.
	ModeRandom Mode = "random"
)

// Config holds configuration for seed generation.
type Config struct {
	Mode  Mode
	Value *int64 // only used by ModeManual
}

// Calculate determines the seed value for the configured mode.
func Calculate(img image.Image, imagePath string, config Config) (int64, error) {
	switch config.Mode {
	case ModeContent:
		if img == nil {
			return 0, fmt.Errorf("image is required for content-based seed mode")
		}
		return ContentSeed(img), nil
	case ModeFilepath:
		if imagePath == "" {
			return 0, fmt.Errorf("image path is required for filepath-based seed mode")
		}
		return FilepathSeed(imagePath), nil
	case ModeManual:
		if config.Value == nil {
			return 0, fmt.Errorf("seed value is required for manual seed mode")
		}
		return *config.Value, nil
	case ModeRandom:
		return RandomSeed(), nil
	default:
		return 0, fmt.Errorf("unknown seed mode: %s", config.Mode)
	}
}

// ContentSeed hashes the image dimensions and a grid of pixel samples, so the
// same pixels give the same seed regardless of file name or location.
func ContentSeed(img image.Image) int64 {
	bounds := img.Bounds()
	hasher := sha256.New()

	dimBytes := make([]byte, 8)
	binary.LittleEndian.PutUint32(dimBytes[0:4], uint32(bounds.Dx())) // #nosec G115 -- image dimensions are non-negative
	binary.LittleEndian.PutUint32(dimBytes[4:8], uint32(bounds.Dy())) // #nosec G115 -- image dimensions are non-negative
	hasher.Write(dimBytes)

	step := max(bounds.Dx()/100, bounds.Dy()/100, 1)
	pixelBytes := make([]byte, 4)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			pixelBytes[0] = byte(r >> 8)
			pixelBytes[1] = byte(g >> 8)
			pixelBytes[2] = byte(b >> 8)
			pixelBytes[3] = byte(a >> 8)
			hasher.Write(pixelBytes)
		}
	}

	return hashToSeed(hasher.Sum(nil))
}

// FilepathSeed hashes the absolute path (or the URL as given).
func FilepathSeed(imagePath string) int64 {
	key := imagePath
	if !isURL(imagePath) {
		if abs, err := filepath.Abs(imagePath); err == nil {
			key = abs
		}
	}
	sum := sha256.Sum256([]byte(key))
	return hashToSeed(sum[:])
}

// RandomSeed generates a non-deterministic seed.
func RandomSeed() int64 {
	// #nosec G404 -- seeds are intentionally non-deterministic here
	return time.Now().UnixNano() ^ rand.Int64()
}

func hashToSeed(hash []byte) int64 {
	return int64(binary.LittleEndian.Uint64(hash[:8])) // #nosec G115 -- wraparound is fine for a seed
}

func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// ValidModes returns a list of valid seed modes.
func ValidModes() []Mode {
	return []Mode{ModeContent, ModeFilepath, ModeManual, ModeRandom}
}

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(ValidModes(), mode) {
		return mode, nil
	}
	return "", fmt.Errorf("invalid seed mode: %s (valid: content, filepath, manual, random)", s)
}
