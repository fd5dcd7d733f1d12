package colour

import (
	"encoding/json"
	"sort"
)

// Share is a bucket with its fraction of the total pixel count.
type Share struct {
	Colour     RGB     `json:"rgb"`
	Count      int     `json:"pixels"`
	Percentage float64 `json:"percentage"`
}

// Hex returns the share colour as "#rrggbb".
func (s Share) Hex() string {
	return s.Colour.Hex()
}

// Rank converts buckets into shares sorted by descending percentage. Buckets
// with equal percentages keep their merge order. Zero-weight buckets are
// dropped.
func Rank(buckets []Bucket) []Share {
	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	if total == 0 {
		return []Share{}
	}

	shares := make([]Share, 0, len(buckets))
	for _, b := range buckets {
		if b.Count == 0 {
			continue
		}
		shares = append(shares, Share{
			Colour:     b.Colour,
			Count:      b.Count,
			Percentage: float64(b.Count) / float64(total),
		})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Percentage > shares[j].Percentage
	})
	return shares
}

// Distribution is the ranked colour make-up of one analysed image.
type Distribution struct {
	Shares      []Share
	Total       int
	Width       int
	Height      int
	Colours     int
	Sensitivity Sensitivity
	Algorithm   Algorithm
}

// Len returns the number of shares.
func (d *Distribution) Len() int {
	return len(d.Shares)
}

type shareJSON struct {
	Hex        string  `json:"hex"`
	RGB        RGB     `json:"rgb"`
	Pixels     int     `json:"pixels"`
	Percentage float64 `json:"percentage"`
}

type distributionJSON struct {
	Algorithm   Algorithm   `json:"algorithm"`
	Colours     int         `json:"requested_colours"`
	Sensitivity Sensitivity `json:"sensitivity"`
	Threshold   int         `json:"threshold"`
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	Total       int         `json:"total_pixels"`
	Shares      []shareJSON `json:"colours"`
}

// ToJSON converts the distribution to indented JSON.
func (d *Distribution) ToJSON() ([]byte, error) {
	out := distributionJSON{
		Algorithm:   d.Algorithm,
		Colours:     d.Colours,
		Sensitivity: d.Sensitivity,
		Threshold:   d.Sensitivity.Threshold(),
		Width:       d.Width,
		Height:      d.Height,
		Total:       d.Total,
		Shares:      make([]shareJSON, len(d.Shares)),
	}
	for i, s := range d.Shares {
		out.Shares[i] = shareJSON{
			Hex:        s.Hex(),
			RGB:        s.Colour,
			Pixels:     s.Count,
			Percentage: s.Percentage,
		}
	}
	return json.MarshalIndent(out, "", "  ")
}
