package colour

// Cluster is a k-means centroid and the number of pixels assigned to it.
type Cluster struct {
	Centroid [3]float64
	Count    int
}

// RGB truncates the centroid to 8-bit channels.
func (c Cluster) RGB() RGB {
	return RGB{
		R: truncateChannel(c.Centroid[0]),
		G: truncateChannel(c.Centroid[1]),
		B: truncateChannel(c.Centroid[2]),
	}
}

// Hex returns the truncated centroid as "#rrggbb".
func (c Cluster) Hex() string {
	return c.RGB().Hex()
}

// Bucket is a group of one or more merged clusters. Colour is the colour of
// the first cluster that opened the bucket.
type Bucket struct {
	Colour RGB
	Count  int
}

// Similar reports whether every channel of a and b differs by at most
// threshold.
func Similar(a, b RGB, threshold int) bool {
	return absDiff(a.R, b.R) <= threshold &&
		absDiff(a.G, b.G) <= threshold &&
		absDiff(a.B, b.B) <= threshold
}

// MergeSimilar folds clusters into buckets in input order. Each cluster joins
// the first existing bucket whose colour is similar to its own, adding its
// count and leaving the bucket colour untouched; otherwise it opens a new
// bucket. The result depends on input order.
func MergeSimilar(clusters []Cluster, threshold int) []Bucket {
	buckets := make([]Bucket, 0, len(clusters))

	for _, c := range clusters {
		rgb := c.RGB()
		merged := false
		for i := range buckets {
			if Similar(rgb, buckets[i].Colour, threshold) {
				buckets[i].Count += c.Count
				merged = true
				break
			}
		}
		if !merged {
			buckets = append(buckets, Bucket{Colour: rgb, Count: c.Count})
		}
	}

	return buckets
}
