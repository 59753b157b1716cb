package grading

import (
	"fmt"
	"math"
	"sort"
)

// percentileRanks are the fixed rank positions used by the percentile
// and hybrid methods, per grade.
var percentileRanks = map[GradeLabel]float64{
	Distinction: 95,
	UpperCredit: 80,
	Credit:      50,
	LowerCredit: 20,
	Pass:        5,
}

// minCutoffGap is the minimum separation in score points the hybrid
// method enforces between adjacent grade cutoffs.
const minCutoffGap = 5.0

// Compute derives grade boundaries and a grade distribution for a set of
// scores under the selected method. It is a pure function: inputs are
// never mutated, identical inputs produce identical results, and absence
// of usable data is reported through empty return values, not errors.
//
// Scores must already be cleaned numeric marks; absence sentinels are
// handled upstream. ranges is only consulted by the standards-based
// method and may be nil otherwise.
func Compute(scores []float64, method BoundaryMethod, ranges []GradeRange) (Result, error) {
	switch method {
	case PercentileBased:
		return computeFromPercentiles(scores, false), nil
	case Hybrid:
		return computeFromPercentiles(scores, true), nil
	case StandardsBased:
		return computeFromRanges(scores, ranges), nil
	}
	return Result{}, fmt.Errorf("unknown boundary method: %q", method)
}

// computeFromPercentiles derives cutoffs from fixed rank positions in the
// sorted score list. With enforceGap set (hybrid), cutoffs are adjusted
// from Pass upward so every adjacent pair is separated by at least
// minCutoffGap points.
func computeFromPercentiles(scores []float64, enforceGap bool) Result {
	dist := emptyDistribution()
	if len(scores) == 0 {
		return Result{Boundaries: Boundaries{}, Distribution: dist}
	}

	sorted := append([]float64(nil), scores...)
	sort.Float64s(sorted)
	n := len(sorted)

	bounds := Boundaries{Fail: 0}
	for _, grade := range PassingLabels {
		idx := int(math.Floor(percentileRanks[grade] / 100 * float64(n-1)))
		bounds[grade] = sorted[idx]
	}

	if enforceGap {
		// Walk from Pass upward: raising a cutoff only depends on the
		// one below it, so a single pass leaves every adjacent pair at
		// least minCutoffGap apart.
		for i := len(PassingLabels) - 2; i >= 0; i-- {
			higher, lower := PassingLabels[i], PassingLabels[i+1]
			if bounds[higher]-bounds[lower] < minCutoffGap {
				bounds[higher] = bounds[lower] + minCutoffGap
			}
		}
	}

	for _, score := range scores {
		dist[Band(score, bounds)]++
	}

	return Result{Boundaries: bounds, Distribution: dist}
}

// UsableRanges filters a configured range set down to entries the
// standards-based method can bin with: a recognizable grade name
// (matched case-insensitively) and both bounds present. Grade names are
// rewritten to their canonical labels; supplied order is preserved.
func UsableRanges(ranges []GradeRange) []GradeRange {
	usable := make([]GradeRange, 0, len(ranges))
	for _, r := range ranges {
		grade, err := ParseGradeLabel(string(r.Grade))
		if err != nil || !r.Binnable() {
			continue
		}
		usable = append(usable, GradeRange{Grade: grade, Min: r.Min, Max: r.Max})
	}
	return usable
}

// BandByRanges places a score in the first supplied range containing it.
// The second return is false when no range matches (the unclassified
// case of the standards-based method).
func BandByRanges(score float64, ranges []GradeRange) (GradeLabel, bool) {
	for _, r := range ranges {
		if r.Contains(score) {
			return r.Grade, true
		}
	}
	return "", false
}

// Band assigns a score to the highest grade whose cutoff it meets or
// exceeds. Grades are considered from the highest cutoff down; equal
// cutoffs resolve in favor of the higher grade. A score below every
// passing cutoff is a Fail.
func Band(score float64, bounds Boundaries) GradeLabel {
	ordered := append([]GradeLabel(nil), PassingLabels...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return bounds[ordered[i]] > bounds[ordered[j]]
	})
	for _, grade := range ordered {
		if score >= bounds[grade] {
			return grade
		}
	}
	return Fail
}

// computeFromRanges takes cutoffs directly from externally configured
// ranges and bins each score into the first supplied range that contains
// it. Scores outside every range are counted as unclassified rather than
// silently dropped. With no usable ranges it returns the empty outcome:
// the caller is expected to prompt for configuration first.
func computeFromRanges(scores []float64, ranges []GradeRange) Result {
	dist := emptyDistribution()

	usable := UsableRanges(ranges)
	if len(scores) == 0 || len(usable) == 0 {
		return Result{Boundaries: Boundaries{}, Distribution: dist}
	}

	bounds := Boundaries{}
	for _, r := range usable {
		// First occurrence wins so the supplied order stays authoritative.
		if _, exists := bounds[r.Grade]; !exists {
			bounds[r.Grade] = *r.Min
		}
	}
	if _, exists := bounds[Fail]; !exists {
		bounds[Fail] = 0
	}

	unclassified := 0
	for _, score := range scores {
		if grade, ok := BandByRanges(score, usable); ok {
			dist[grade]++
		} else {
			unclassified++
		}
	}

	return Result{Boundaries: bounds, Distribution: dist, Unclassified: unclassified}
}
