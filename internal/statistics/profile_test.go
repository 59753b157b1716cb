package statistics

import (
	"math"
	"math/rand"
	"testing"
)

func TestDescribe_Empty(t *testing.T) {
	profile, err := Describe(nil)
	if err != nil {
		t.Fatalf("Describe(nil) returned error: %v", err)
	}
	if profile.Count != 0 {
		t.Errorf("expected zero count, got %d", profile.Count)
	}
}

func TestDescribe_KnownValues(t *testing.T) {
	scores := []float64{10, 20, 30, 40, 50}

	profile, err := Describe(scores)
	if err != nil {
		t.Fatalf("Describe returned error: %v", err)
	}
	if profile.Count != 5 {
		t.Errorf("Count = %d, want 5", profile.Count)
	}
	if math.Abs(profile.Mean-30) > 1e-9 {
		t.Errorf("Mean = %f, want 30", profile.Mean)
	}
	if math.Abs(profile.Median-30) > 1e-9 {
		t.Errorf("Median = %f, want 30", profile.Median)
	}
	if profile.Min != 10 || profile.Max != 50 {
		t.Errorf("Min/Max = %f/%f, want 10/50", profile.Min, profile.Max)
	}
	// Symmetric data: skewness near zero.
	if math.Abs(profile.Skewness) > 1e-9 {
		t.Errorf("Skewness = %f, want 0", profile.Skewness)
	}
}

func TestDescribe_NormalDataPassesScreen(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	scores := make([]float64, 2000)
	for i := range scores {
		scores[i] = 50 + 10*rng.NormFloat64()
	}

	profile, err := Describe(scores)
	if err != nil {
		t.Fatalf("Describe returned error: %v", err)
	}
	if !profile.IsNormal {
		t.Errorf("expected normal screen to pass for gaussian data (p=%f, skew=%f, kurt=%f)",
			profile.NormalP, profile.Skewness, profile.Kurtosis)
	}
}

func TestHistogram(t *testing.T) {
	scores := []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

	bins := Histogram(scores, 10)
	if len(bins) != 10 {
		t.Fatalf("expected 10 bins, got %d", len(bins))
	}

	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != len(scores) {
		t.Errorf("bin counts total %d, want %d", total, len(scores))
	}
	// The max score lands in the last bin, not off the end.
	if bins[9].Count != 2 { // 90 and 100
		t.Errorf("last bin count = %d, want 2", bins[9].Count)
	}
}

func TestHistogram_Degenerate(t *testing.T) {
	if bins := Histogram(nil, 10); bins != nil {
		t.Errorf("expected nil for empty input, got %v", bins)
	}

	bins := Histogram([]float64{42, 42, 42}, 5)
	if len(bins) != 1 || bins[0].Count != 3 {
		t.Errorf("identical scores should collapse to one bin, got %v", bins)
	}
}
