package colour

import (
	"errors"
	"fmt"
)

// Supported range of requested clusters.
const (
	MinColours     = 1
	MaxColours     = 20
	DefaultColours = 5
)

var (
	// ErrInvalidClusterCount reports a requested cluster count outside
	// [MinColours, MaxColours]. Counts are never clamped.
	ErrInvalidClusterCount = errors.New("invalid cluster count")

	// ErrUnknownAlgorithm reports an unrecognised clustering algorithm.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
)

// Clusterer partitions pixel samples into k colour clusters.
type Clusterer interface {
	Cluster(pixels []RGB, k int) ([]Cluster, error)
}

// Algorithm represents the clustering algorithm type.
type Algorithm string

const (
	// AlgorithmKMeans uses the built-in seeded k-means++ clusterer.
	AlgorithmKMeans Algorithm = "kmeans"

	// AlgorithmLloyd uses github.com/muesli/kmeans. Not reproducible.
	AlgorithmLloyd Algorithm = "lloyd"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{AlgorithmKMeans, AlgorithmLloyd}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	for _, valid := range ValidAlgorithms() {
		if alg == valid {
			return true
		}
	}
	return false
}

// NewClusterer creates a Clusterer for alg. The seed only affects
// AlgorithmKMeans. runs overrides the number of initialisations when > 0.
func NewClusterer(alg Algorithm, seed int64, runs int) (Clusterer, error) {
	switch alg {
	case AlgorithmKMeans:
		km := NewKMeans(seed)
		if runs > 0 {
			km.Runs = runs
		}
		return km, nil
	case AlgorithmLloyd:
		l := NewLloyd()
		if runs > 0 {
			l.Runs = runs
		}
		return l, nil
	default:
		return nil, fmt.Errorf("%w: %s (valid algorithms: %v)", ErrUnknownAlgorithm, alg, ValidAlgorithms())
	}
}

// ValidateColourCount fails for counts outside [MinColours, MaxColours].
func ValidateColourCount(n int) error {
	if n < MinColours || n > MaxColours {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidClusterCount, n, MinColours, MaxColours)
	}
	return nil
}

// ExtractorConfig holds configuration for colour distribution analysis.
type ExtractorConfig struct {
	Algorithm   Algorithm
	ColourCount int
	Sensitivity Sensitivity
	Runs        int
}

// DefaultExtractorConfig returns the default extractor configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Algorithm:   AlgorithmKMeans,
		ColourCount: DefaultColours,
		Sensitivity: VeryLow,
		Runs:        10,
	}
}

// Validate validates the extractor configuration.
func (c ExtractorConfig) Validate() error {
	if !IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("%w: %s", ErrUnknownAlgorithm, c.Algorithm)
	}
	if err := ValidateColourCount(c.ColourCount); err != nil {
		return err
	}
	if !c.Sensitivity.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSensitivity, int(c.Sensitivity))
	}
	if c.Runs < 1 {
		return fmt.Errorf("runs must be at least 1, got %d", c.Runs)
	}
	return nil
}
