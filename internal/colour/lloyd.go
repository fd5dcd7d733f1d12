package colour

import (
	"fmt"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// Lloyd clusters colours with github.com/muesli/kmeans. Channels are scaled
// into [0, 1] because the library seeds its centroids in the unit cube. The
// library draws from the global random source, so results vary between runs.
type Lloyd struct {
	// Runs is the number of partitions attempted; the lowest inertia wins.
	Runs int
	// DeltaThreshold stops a partition once fewer than this fraction of
	// observations change cluster in an iteration.
	DeltaThreshold float64
}

// NewLloyd creates a Lloyd clusterer with default settings.
func NewLloyd() *Lloyd {
	return &Lloyd{
		Runs:           10,
		DeltaThreshold: 0.01,
	}
}

// Cluster partitions pixels into k clusters.
func (l *Lloyd) Cluster(pixels []RGB, k int) ([]Cluster, error) {
	if len(pixels) == 0 {
		return nil, fmt.Errorf("no pixels to cluster")
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidClusterCount, k)
	}

	km, err := kmeans.NewWithOptions(l.DeltaThreshold, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to configure k-means: %w", err)
	}

	dataset := make(clusters.Observations, len(pixels))
	for i, p := range pixels {
		dataset[i] = clusters.Coordinates{
			float64(p.R) / 255,
			float64(p.G) / 255,
			float64(p.B) / 255,
		}
	}

	var (
		best        clusters.Clusters
		bestInertia float64
	)
	for run := 0; run < max(l.Runs, 1); run++ {
		cc, err := km.Partition(dataset, k)
		if err != nil {
			return nil, fmt.Errorf("k-means partition failed: %w", err)
		}
		inertia := 0.0
		for _, c := range cc {
			for _, o := range c.Observations {
				inertia += o.Distance(c.Center)
			}
		}
		if best == nil || inertia < bestInertia {
			best, bestInertia = cc, inertia
		}
	}

	out := make([]Cluster, len(best))
	for i, c := range best {
		out[i] = Cluster{
			Centroid: [3]float64{c.Center[0] * 255, c.Center[1] * 255, c.Center[2] * 255},
			Count:    len(c.Observations),
		}
	}
	return out, nil
}
