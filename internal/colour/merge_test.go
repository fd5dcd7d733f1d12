package colour

import (
	"math"
	"reflect"
	"testing"
)

// clustersFromHex builds clusters whose centroids truncate to the given hex
// colours.
func clustersFromHex(t *testing.T, specs ...struct {
	hex   string
	count int
}) []Cluster {
	t.Helper()
	out := make([]Cluster, len(specs))
	for i, s := range specs {
		rgb, err := ParseHex(s.hex)
		if err != nil {
			t.Fatalf("ParseHex(%q): %v", s.hex, err)
		}
		// A fractional part must not change the truncated colour.
		out[i] = Cluster{
			Centroid: [3]float64{float64(rgb.R) + 0.4, float64(rgb.G) + 0.9, float64(rgb.B)},
			Count:    s.count,
		}
	}
	return out
}

type hc = struct {
	hex   string
	count int
}

func bucketHexes(buckets []Bucket) []string {
	out := make([]string, len(buckets))
	for i, b := range buckets {
		out[i] = b.Colour.Hex()
	}
	return out
}

func TestSimilar(t *testing.T) {
	tests := []struct {
		name      string
		a, b      RGB
		threshold int
		want      bool
	}{
		{name: "identical at zero", a: RGB{1, 2, 3}, b: RGB{1, 2, 3}, threshold: 0, want: true},
		{name: "off by one at zero", a: RGB{1, 2, 3}, b: RGB{1, 2, 4}, threshold: 0, want: false},
		{name: "exactly at threshold", a: RGB{0, 0, 0}, b: RGB{10, 10, 10}, threshold: 10, want: true},
		{name: "one channel over", a: RGB{0, 0, 0}, b: RGB{10, 11, 10}, threshold: 10, want: false},
		{name: "symmetric", a: RGB{200, 100, 50}, b: RGB{190, 110, 40}, threshold: 10, want: true},
		{name: "wide channel span", a: RGB{0, 255, 0}, b: RGB{255, 0, 255}, threshold: 50, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similar(tt.a, tt.b, tt.threshold); got != tt.want {
				t.Errorf("Similar(%v, %v, %d) = %v, want %v", tt.a, tt.b, tt.threshold, got, tt.want)
			}
			if got := Similar(tt.b, tt.a, tt.threshold); got != tt.want {
				t.Errorf("Similar is not symmetric for %v, %v", tt.a, tt.b)
			}
		})
	}
}

func TestMergeSimilarScenario(t *testing.T) {
	clusters := clustersFromHex(t,
		hc{"#FF0000", 100},
		hc{"#FE0101", 50},
		hc{"#0000FF", 30},
	)

	buckets := MergeSimilar(clusters, 10)
	want := []Bucket{
		{Colour: RGB{R: 255}, Count: 150},
		{Colour: RGB{B: 255}, Count: 30},
	}
	if !reflect.DeepEqual(buckets, want) {
		t.Fatalf("MergeSimilar() = %+v, want %+v", buckets, want)
	}

	shares := Rank(buckets)
	if len(shares) != 2 {
		t.Fatalf("Rank() returned %d shares, want 2", len(shares))
	}
	wantPct := []float64{150.0 / 180.0, 30.0 / 180.0}
	for i, s := range shares {
		if math.Abs(s.Percentage-wantPct[i]) > 1e-12 {
			t.Errorf("share %d percentage = %v, want %v", i, s.Percentage, wantPct[i])
		}
	}
	if shares[0].Hex() != "#ff0000" || shares[1].Hex() != "#0000ff" {
		t.Errorf("share colours = %s, %s", shares[0].Hex(), shares[1].Hex())
	}
}

func TestMergeSimilarFirstFitOrder(t *testing.T) {
	a := hc{"#000000", 5}
	b := hc{"#0a0a0a", 7}

	forward := MergeSimilar(clustersFromHex(t, a, b), 10)
	backward := MergeSimilar(clustersFromHex(t, b, a), 10)

	if got := bucketHexes(forward); !reflect.DeepEqual(got, []string{"#000000"}) {
		t.Errorf("forward buckets = %v, want [#000000]", got)
	}
	if got := bucketHexes(backward); !reflect.DeepEqual(got, []string{"#0a0a0a"}) {
		t.Errorf("backward buckets = %v, want [#0a0a0a]", got)
	}
	if forward[0].Count != 12 || backward[0].Count != 12 {
		t.Errorf("merged counts = %d, %d, want 12", forward[0].Count, backward[0].Count)
	}
}

func TestMergeSimilarJoinsFirstNotNearest(t *testing.T) {
	// #0a0a0a is 10 away from #000000 and 8 away from #121212. It joins the
	// bucket opened first.
	buckets := MergeSimilar(clustersFromHex(t,
		hc{"#000000", 1},
		hc{"#121212", 1},
		hc{"#0a0a0a", 1},
	), 10)

	want := []Bucket{
		{Colour: RGB{0, 0, 0}, Count: 2},
		{Colour: RGB{18, 18, 18}, Count: 1},
	}
	if !reflect.DeepEqual(buckets, want) {
		t.Errorf("MergeSimilar() = %+v, want %+v", buckets, want)
	}
}

func TestMergeSimilarRepresentativeNotAveraged(t *testing.T) {
	buckets := MergeSimilar(clustersFromHex(t,
		hc{"#646464", 1},
		hc{"#6e6e6e", 1000},
		hc{"#5a5a5a", 1000},
	), 10)

	if len(buckets) != 1 {
		t.Fatalf("got %d buckets, want 1", len(buckets))
	}
	if buckets[0].Colour.Hex() != "#646464" {
		t.Errorf("representative = %s, want #646464", buckets[0].Colour.Hex())
	}
}

func TestMergeSimilarThresholdZero(t *testing.T) {
	buckets := MergeSimilar(clustersFromHex(t,
		hc{"#102030", 1},
		hc{"#102031", 2},
		hc{"#102030", 3},
	), 0)

	want := []Bucket{
		{Colour: RGB{0x10, 0x20, 0x30}, Count: 4},
		{Colour: RGB{0x10, 0x20, 0x31}, Count: 2},
	}
	if !reflect.DeepEqual(buckets, want) {
		t.Errorf("MergeSimilar() = %+v, want %+v", buckets, want)
	}
}

func TestMergeSimilarDeterministic(t *testing.T) {
	clusters := clustersFromHex(t,
		hc{"#ff0000", 100}, hc{"#fe0101", 50}, hc{"#0000ff", 30},
		hc{"#e61414", 40}, hc{"#0028c8", 25}, hc{"#808080", 60},
	)

	first := MergeSimilar(clusters, 30)
	for i := 0; i < 20; i++ {
		if got := MergeSimilar(clusters, 30); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d = %+v, want %+v", i, got, first)
		}
	}
}

func TestMergeSimilarPreservesTotal(t *testing.T) {
	clusters := clustersFromHex(t,
		hc{"#ff0000", 100}, hc{"#fe0101", 50}, hc{"#0000ff", 30},
		hc{"#e61414", 40}, hc{"#0028c8", 25}, hc{"#808080", 60},
		hc{"#649664", 10}, hc{"#5aaa78", 5},
	)

	for _, s := range Sensitivities() {
		total := 0
		buckets := MergeSimilar(clusters, s.Threshold())
		for _, b := range buckets {
			total += b.Count
		}
		if total != 320 {
			t.Errorf("%s: total = %d, want 320", s, total)
		}
		if len(buckets) > len(clusters) {
			t.Errorf("%s: %d buckets from %d clusters", s, len(buckets), len(clusters))
		}
	}
}

func TestMergeSimilarMonotoneForFixedSet(t *testing.T) {
	clusters := clustersFromHex(t,
		hc{"#ff0000", 100}, hc{"#fe0101", 50}, hc{"#0000ff", 30},
		hc{"#e61414", 40}, hc{"#0028c8", 25}, hc{"#808080", 60},
		hc{"#649664", 10}, hc{"#5aaa78", 5},
	)

	want := []int{7, 6, 5, 5, 4}
	prev := len(clusters)
	for i, s := range Sensitivities() {
		got := len(MergeSimilar(clusters, s.Threshold()))
		if got != want[i] {
			t.Errorf("%s: %d buckets, want %d", s, got, want[i])
		}
		if got > prev {
			t.Errorf("%s: bucket count rose from %d to %d", s, prev, got)
		}
		prev = got
	}
}

func TestMergeSimilarChainCanSplitAtHigherThreshold(t *testing.T) {
	// First-fit representatives change with the threshold, so a wider
	// threshold can leave more buckets for chained colours.
	clusters := clustersFromHex(t,
		hc{"#121b3d", 1}, hc{"#2a2e25", 1}, hc{"#141330", 1},
		hc{"#38330f", 1}, hc{"#4c1222", 1}, hc{"#254d01", 1},
	)

	if got := len(MergeSimilar(clusters, High.Threshold())); got != 2 {
		t.Errorf("high: %d buckets, want 2", got)
	}
	if got := len(MergeSimilar(clusters, VeryHigh.Threshold())); got != 3 {
		t.Errorf("very high: %d buckets, want 3", got)
	}
}

func TestMergeSimilarEmpty(t *testing.T) {
	if got := MergeSimilar(nil, 10); len(got) != 0 {
		t.Errorf("MergeSimilar(nil) = %v, want empty", got)
	}
}
