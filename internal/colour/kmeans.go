package colour

import (
	"fmt"
	"math"
	"math/rand"
)

// KMeans clusters colours with weighted k-means in RGB space. Identical pixel
// samples are collapsed into one weighted point, which gives the same
// partition as clustering every sample but costs far less on typical images.
type KMeans struct {
	// Runs is the number of independent k-means++ initialisations; the
	// partition with the lowest inertia wins.
	Runs int
	// MaxIterations bounds the Lloyd iterations of a single run.
	MaxIterations int
	// Tolerance is the convergence threshold on squared centroid movement,
	// relative to the mean per-channel variance of the data.
	Tolerance float64

	seed int64
}

// NewKMeans creates a KMeans clusterer whose initialisations are drawn from
// seed.
func NewKMeans(seed int64) *KMeans {
	return &KMeans{
		Runs:          10,
		MaxIterations: 300,
		Tolerance:     1e-4,
		seed:          seed,
	}
}

// point3D is a weighted point in RGB space.
type point3D struct {
	R, G, B float64
	weight  float64
	count   int
}

// distance2 returns the squared Euclidean distance between two points.
func (p point3D) distance2(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return dr*dr + dg*dg + db*db
}

// result is the outcome of a single k-means run.
type result struct {
	centroids []point3D
	counts    []int
	inertia   float64
}

// Cluster partitions pixels into exactly k clusters, returned in centroid
// index order.
func (e *KMeans) Cluster(pixels []RGB, k int) ([]Cluster, error) {
	if len(pixels) == 0 {
		return nil, fmt.Errorf("no pixels to cluster")
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidClusterCount, k)
	}
	runs := max(e.Runs, 1)
	maxIterations := max(e.MaxIterations, 1)

	points := weightedPoints(pixels)
	tol := e.Tolerance * meanVariance(points)
	rng := rand.New(rand.NewSource(e.seed)) // #nosec G404 -- reproducible clustering, not security

	var best *result
	for run := 0; run < runs; run++ {
		centroids := initializeCentroidsKMeansPlusPlus(points, k, rng)
		res := iterate(points, centroids, maxIterations, tol)
		if best == nil || res.inertia < best.inertia {
			best = res
		}
	}

	clusters := make([]Cluster, k)
	for i, c := range best.centroids {
		clusters[i] = Cluster{
			Centroid: [3]float64{c.R, c.G, c.B},
			Count:    best.counts[i],
		}
	}
	return clusters, nil
}

// weightedPoints collapses identical pixels, keeping first-seen order so runs
// are reproducible.
func weightedPoints(pixels []RGB) []point3D {
	index := make(map[RGB]int)
	points := make([]point3D, 0, 1024)
	for _, p := range pixels {
		if i, ok := index[p]; ok {
			points[i].weight++
			points[i].count++
			continue
		}
		index[p] = len(points)
		points = append(points, point3D{
			R:      float64(p.R),
			G:      float64(p.G),
			B:      float64(p.B),
			weight: 1,
			count:  1,
		})
	}
	return points
}

// meanVariance returns the mean of the per-channel variances.
func meanVariance(points []point3D) float64 {
	var n, sr, sg, sb float64
	for _, p := range points {
		n += p.weight
		sr += p.weight * p.R
		sg += p.weight * p.G
		sb += p.weight * p.B
	}
	mean := point3D{R: sr / n, G: sg / n, B: sb / n}

	var v float64
	for _, p := range points {
		v += p.weight * p.distance2(mean)
	}
	return v / n / 3
}

// initializeCentroidsKMeansPlusPlus picks k starting centroids, each new one
// drawn with probability proportional to weight times squared distance to the
// nearest centroid chosen so far.
func initializeCentroidsKMeansPlusPlus(points []point3D, k int, rng *rand.Rand) []point3D {
	centroids := make([]point3D, 0, k)

	var totalWeight float64
	for _, p := range points {
		totalWeight += p.weight
	}
	centroids = append(centroids, points[pick(points, totalWeight, rng, func(i int) float64 {
		return points[i].weight
	})])

	minDist := make([]float64, len(points))
	for i, p := range points {
		minDist[i] = p.distance2(centroids[0])
	}

	for len(centroids) < k {
		total := 0.0
		for i, p := range points {
			total += p.weight * minDist[i]
		}

		var next point3D
		if total == 0 {
			// Every point already coincides with a centroid: fewer distinct
			// colours than clusters. Duplicate the last centroid slightly
			// perturbed; it will end up with no members.
			last := centroids[len(centroids)-1]
			next = point3D{R: last.R + 0.1, G: last.G + 0.1, B: last.B + 0.1}
		} else {
			next = points[pick(points, total, rng, func(i int) float64 {
				return points[i].weight * minDist[i]
			})]
		}
		centroids = append(centroids, next)

		for i, p := range points {
			if d := p.distance2(next); d < minDist[i] {
				minDist[i] = d
			}
		}
	}

	return centroids
}

// pick draws an index with probability proportional to mass(i).
func pick(points []point3D, total float64, rng *rand.Rand, mass func(int) float64) int {
	target := rng.Float64() * total
	cumulative := 0.0
	last := 0
	for i := range points {
		m := mass(i)
		if m == 0 {
			continue
		}
		cumulative += m
		last = i
		if cumulative >= target {
			return i
		}
	}
	return last
}

// iterate runs Lloyd assignment and update steps from the given centroids.
func iterate(points []point3D, centroids []point3D, maxIterations int, tol float64) *result {
	k := len(centroids)
	assignments := make([]int, len(points))
	for i := range assignments {
		assignments[i] = -1
	}

	for iter := 0; iter < maxIterations; iter++ {
		changed := 0
		for i, p := range points {
			if nearest, _ := findNearestCentroid(p, centroids); nearest != assignments[i] {
				assignments[i] = nearest
				changed++
			}
		}
		if changed == 0 {
			break
		}

		newCentroids := recalculateCentroids(points, assignments, centroids)
		shift := 0.0
		for i := range centroids {
			shift += centroids[i].distance2(newCentroids[i])
		}
		centroids = newCentroids
		if shift <= tol {
			break
		}
	}

	// Final assignment so counts and inertia match the reported centroids.
	res := &result{centroids: centroids, counts: make([]int, k)}
	for _, p := range points {
		nearest, d := findNearestCentroid(p, centroids)
		res.counts[nearest] += p.count
		res.inertia += p.weight * d
	}
	return res
}

// findNearestCentroid returns the index of the nearest centroid and the
// squared distance to it. Ties go to the lowest index.
func findNearestCentroid(point point3D, centroids []point3D) (int, float64) {
	minDist := math.MaxFloat64
	nearest := 0
	for i, centroid := range centroids {
		if dist := point.distance2(centroid); dist < minDist {
			minDist = dist
			nearest = i
		}
	}
	return nearest, minDist
}

// recalculateCentroids moves each centroid to the weighted mean of its
// points. A centroid that lost all its points stays where it was.
func recalculateCentroids(points []point3D, assignments []int, previous []point3D) []point3D {
	k := len(previous)
	sums := make([]point3D, k)
	weights := make([]float64, k)

	for i, p := range points {
		c := assignments[i]
		sums[c].R += p.weight * p.R
		sums[c].G += p.weight * p.G
		sums[c].B += p.weight * p.B
		weights[c] += p.weight
	}

	centroids := make([]point3D, k)
	for i := range k {
		if weights[i] == 0 {
			centroids[i] = previous[i]
			continue
		}
		centroids[i] = point3D{
			R: sums[i].R / weights[i],
			G: sums[i].G / weights[i],
			B: sums[i].B / weights[i],
		}
	}
	return centroids
}
