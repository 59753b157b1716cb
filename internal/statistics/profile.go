package statistics

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Profile summarizes the shape of a score distribution for one subject.
type Profile struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Q25      float64 `json:"q25"`
	Q75      float64 `json:"q75"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
	IsNormal bool    `json:"is_normal"`
	NormalP  float64 `json:"normal_p"`
	Outliers int     `json:"outliers"`
}

// Describe computes the statistics profile of a score set. An empty
// input yields a zero-count profile and no error, mirroring the grading
// engine's empty outcome.
func Describe(scores []float64) (Profile, error) {
	profile := Profile{Count: len(scores)}
	if len(scores) == 0 {
		return profile, nil
	}

	mean, err := stats.Mean(scores)
	if err != nil {
		return profile, err
	}
	median, err := stats.Median(scores)
	if err != nil {
		return profile, err
	}
	stdDev, err := stats.StandardDeviation(scores)
	if err != nil {
		return profile, err
	}
	min, err := stats.Min(scores)
	if err != nil {
		return profile, err
	}
	max, err := stats.Max(scores)
	if err != nil {
		return profile, err
	}
	q25, err := stats.Percentile(scores, 25)
	if err != nil {
		// Percentile needs more than one sample; collapse to the value.
		q25 = median
	}
	q75, err := stats.Percentile(scores, 75)
	if err != nil {
		q75 = median
	}

	profile.Mean = mean
	profile.Median = median
	profile.StdDev = stdDev
	profile.Min = min
	profile.Max = max
	profile.Q25 = q25
	profile.Q75 = q75
	profile.Skewness = sampleSkewness(scores, mean, stdDev)
	profile.Kurtosis = sampleKurtosis(scores, mean, stdDev)
	profile.IsNormal, profile.NormalP = testNormality(profile.Skewness, profile.Kurtosis, len(scores))
	profile.Outliers = countOutliers(scores, q25, q75)

	return profile, nil
}

// sampleSkewness computes sample skewness using the adjusted
// Fisher-Pearson coefficient.
func sampleSkewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 || stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sum := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sum += d * d * d
	}

	return (sum / n) * math.Sqrt(n*(n-1)) / (n - 2)
}

// sampleKurtosis computes bias-corrected sample kurtosis (not excess).
func sampleKurtosis(data []float64, mean, stdDev float64) float64 {
	if len(data) < 4 || stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sum := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sum += d * d * d * d
	}

	excess := sum/n - 3
	correction := (n - 1) / ((n - 2) * (n - 3))
	return excess*correction + 6/(n+1) + 3
}

// testNormality approximates a normality test from skewness and
// kurtosis, with the p-value taken from a chi-squared tail. It is a
// screening heuristic, not a substitute for a proper Shapiro-Wilk test.
func testNormality(skewness, kurtosis float64, n int) (isNormal bool, pValue float64) {
	if n < 3 {
		return false, 1.0
	}

	testStat := math.Abs(skewness) + math.Abs(kurtosis-3)/2
	chiDist := distuv.ChiSquared{K: 2}
	pValue = 1 - chiDist.CDF(testStat*testStat)

	return pValue > 0.05, pValue
}

// countOutliers applies the 1.5*IQR rule.
func countOutliers(data []float64, q25, q75 float64) int {
	iqr := q75 - q25
	lower := q25 - 1.5*iqr
	upper := q75 + 1.5*iqr

	count := 0
	for _, x := range data {
		if x < lower || x > upper {
			count++
		}
	}
	return count
}
