package hypothesis

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/sampleuv"
)

const (
	DefaultIterations = 30
	DefaultSampleSize = 30
)

// Bootstrap draws n values from data uniformly at random with replacement.
// n may exceed len(data).
func Bootstrap(rng *rand.Rand, data Sample, n int) (Sample, error) {
	if err := requireNonEmpty("data", data); err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, invalidf("sample size must be at least 1, got %d", n)
	}
	out := make(Sample, n)
	for i := range out {
		out[i] = data[rng.IntN(len(data))]
	}
	return out, nil
}

// CreateSamplingDistribution records the mean of iterations independent draws
// of n values taken from data without replacement.
func CreateSamplingDistribution(rng *rand.Rand, data Sample, iterations, n int) (SamplingDistribution, error) {
	if err := requireNonEmpty("data", data); err != nil {
		return nil, err
	}
	if iterations < 1 {
		return nil, invalidf("iterations must be at least 1, got %d", iterations)
	}
	if n < 1 || n > len(data) {
		return nil, invalidf("sample size %d out of range [1, %d] for sampling without replacement", n, len(data))
	}
	idxs := make([]int, n)
	draw := make([]float64, n)
	dist := make(SamplingDistribution, iterations)
	for i := range dist {
		sampleuv.WithoutReplacement(idxs, len(data), rng)
		for j, k := range idxs {
			draw[j] = data[k]
		}
		dist[i] = stat.Mean(draw, nil)
	}
	return dist, nil
}

// BootSamplingDist is CreateSamplingDistribution with each draw made by
// Bootstrap, so n is not bounded by len(data).
func BootSamplingDist(rng *rand.Rand, data Sample, n, iterations int) (SamplingDistribution, error) {
	if iterations < 1 {
		return nil, invalidf("iterations must be at least 1, got %d", iterations)
	}
	dist := make(SamplingDistribution, iterations)
	for i := range dist {
		s, err := Bootstrap(rng, data, n)
		if err != nil {
			return nil, err
		}
		dist[i] = stat.Mean(s, nil)
	}
	return dist, nil
}

// PercentileInterval returns the central confidence interval of dist using
// the percentile method.
func PercentileInterval(dist SamplingDistribution, confidence float64) (lo, hi float64, err error) {
	if len(dist) == 0 {
		return 0, 0, invalidf("sampling distribution is empty")
	}
	if !(confidence > 0 && confidence < 1) {
		return 0, 0, invalidf("confidence must be in (0, 1), got %v", confidence)
	}
	tail := (1 - confidence) / 2
	if lo, err = Quantile(Sample(dist), tail); err != nil {
		return 0, 0, err
	}
	if hi, err = Quantile(Sample(dist), 1-tail); err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}
