package colour

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/YeenieBeans/Tools-For-Artists/internal/image"
)

// Analyzer turns a raster into a ranked colour distribution.
type Analyzer struct {
	clusterer Clusterer
	algorithm Algorithm
	logger    hclog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithClusterer sets the clustering backend and the algorithm name reported
// in results.
func WithClusterer(alg Algorithm, c Clusterer) Option {
	return func(a *Analyzer) {
		a.algorithm = alg
		a.clusterer = c
	}
}

// WithLogger sets the logger used for stage diagnostics.
func WithLogger(l hclog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = l
	}
}

// NewAnalyzer creates an Analyzer. Without options it uses the built-in
// k-means with seed 0 and discards logs.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		clusterer: NewKMeans(0),
		algorithm: AlgorithmKMeans,
		logger:    hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze normalises r to RGB, resamples it to the canonical resolution,
// clusters its pixels into numColours clusters, merges similar cluster
// colours under the sensitivity threshold and ranks the buckets.
func (a *Analyzer) Analyze(ctx context.Context, r *image.Raster, numColours int, sensitivity Sensitivity) (*Distribution, error) {
	if err := ValidateColourCount(numColours); err != nil {
		return nil, err
	}
	if !sensitivity.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSensitivity, int(sensitivity))
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	a.logger.Debug("normalising image", "width", r.Width, "height", r.Height, "channels", r.Channels)
	canonical, err := image.Canonical(r)
	if err != nil {
		return nil, fmt.Errorf("failed to normalise image: %w", err)
	}
	pixels := Pixels(canonical)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clusterStart := time.Now()
	clusters, err := a.clusterer.Cluster(pixels, numColours)
	if err != nil {
		return nil, fmt.Errorf("failed to cluster colours: %w", err)
	}
	a.logger.Debug("clustered pixels",
		"algorithm", a.algorithm,
		"pixels", len(pixels),
		"clusters", len(clusters),
		"elapsed", time.Since(clusterStart))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buckets := MergeSimilar(clusters, sensitivity.Threshold())
	shares := Rank(buckets)
	a.logger.Debug("merged similar colours",
		"sensitivity", sensitivity,
		"threshold", sensitivity.Threshold(),
		"buckets", len(buckets),
		"elapsed", time.Since(start))

	return &Distribution{
		Shares:      shares,
		Total:       len(pixels),
		Width:       canonical.Width,
		Height:      canonical.Height,
		Colours:     numColours,
		Sensitivity: sensitivity,
		Algorithm:   a.algorithm,
	}, nil
}

// Extract analyses r with the default analyzer and returns its ranked shares.
func Extract(r *image.Raster, numColours int, sensitivity Sensitivity) ([]Share, error) {
	d, err := NewAnalyzer().Analyze(context.Background(), r, numColours, sensitivity)
	if err != nil {
		return nil, err
	}
	return d.Shares, nil
}

// Pixels flattens a 3-channel raster into RGB samples in row-major order.
func Pixels(r *image.Raster) []RGB {
	pixels := make([]RGB, r.Len())
	for i := range pixels {
		pixels[i] = RGB{R: r.Pix[i*3], G: r.Pix[i*3+1], B: r.Pix[i*3+2]}
	}
	return pixels
}
