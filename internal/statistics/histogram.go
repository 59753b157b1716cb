package statistics

import "math"

// Bin is one histogram bucket: [Low, High) except the last bin, which
// includes its upper edge so the maximum score is counted.
type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Histogram buckets scores into equal-width bins over [min, max]. bins
// values below 1 fall back to 10. Empty input returns nil.
func Histogram(scores []float64, bins int) []Bin {
	if len(scores) == 0 {
		return nil
	}
	if bins < 1 {
		bins = 10
	}

	min, max := scores[0], scores[0]
	for _, s := range scores {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}

	if min == max {
		// All scores identical: one bin holds everything.
		return []Bin{{Low: min, High: max, Count: len(scores)}}
	}

	width := (max - min) / float64(bins)
	result := make([]Bin, bins)
	for i := range result {
		result[i] = Bin{Low: min + float64(i)*width, High: min + float64(i+1)*width}
	}

	for _, s := range scores {
		idx := int(math.Floor((s - min) / width))
		if idx >= bins {
			idx = bins - 1
		}
		result[idx].Count++
	}
	return result
}
