package grading

import (
	"fmt"
	"strings"
)

// BoundaryMethod selects how grade cutoffs are derived.
type BoundaryMethod string

const (
	// PercentileBased derives cutoffs from fixed rank positions in the
	// sorted score list.
	PercentileBased BoundaryMethod = "percentile_based"
	// StandardsBased takes cutoffs from externally configured absolute
	// ranges rather than computing them from data.
	StandardsBased BoundaryMethod = "standards_based"
	// Hybrid is percentile-based with a minimum inter-grade gap
	// enforced on the cutoffs.
	Hybrid BoundaryMethod = "hybrid"
)

// ParseBoundaryMethod resolves a method name case-insensitively.
func ParseBoundaryMethod(s string) (BoundaryMethod, error) {
	switch BoundaryMethod(strings.ToLower(strings.TrimSpace(s))) {
	case PercentileBased:
		return PercentileBased, nil
	case StandardsBased:
		return StandardsBased, nil
	case Hybrid:
		return Hybrid, nil
	}
	return "", fmt.Errorf("unknown boundary method: %q", s)
}

// GradeRange is an externally configured band for one grade. Min and Max
// may be nil, meaning unbounded on that side; standards-based binning
// only uses ranges with both bounds present.
type GradeRange struct {
	Grade GradeLabel `json:"grade"`
	Min   *float64   `json:"min"`
	Max   *float64   `json:"max"`
}

// Binnable reports whether the range can place a score: both bounds set.
func (r GradeRange) Binnable() bool {
	return r.Min != nil && r.Max != nil
}

// Contains reports whether score falls inside the range (inclusive on
// both ends). Ranges missing a bound contain nothing.
func (r GradeRange) Contains(score float64) bool {
	return r.Binnable() && *r.Min <= score && score <= *r.Max
}

// Boundaries maps each grade to the minimum score required to earn at
// least that grade. A Fail entry (conventionally 0) is always present in
// non-empty boundaries.
type Boundaries map[GradeLabel]float64

// Distribution counts scores per grade. All six labels are present even
// when their count is zero.
type Distribution map[GradeLabel]int

// Total returns the number of scores placed in any bucket.
func (d Distribution) Total() int {
	total := 0
	for _, count := range d {
		total += count
	}
	return total
}

// Result is the output of a grade computation.
type Result struct {
	Boundaries   Boundaries   `json:"boundaries"`
	Distribution Distribution `json:"distribution"`
	// Unclassified counts scores that matched no configured range under
	// the standards-based method. Always zero for the other methods,
	// where every score lands in a bucket.
	Unclassified int `json:"unclassified"`
}

func emptyDistribution() Distribution {
	dist := make(Distribution, len(Labels))
	for _, label := range Labels {
		dist[label] = 0
	}
	return dist
}
