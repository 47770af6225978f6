package hypothesis

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrapLengthAndMembership(t *testing.T) {
	data := Sample{3, 1, 4, 1, 5, 9, 2, 6}
	rng := NewRand(7)
	for _, n := range []int{1, 5, len(data), 100} {
		got, err := Bootstrap(rng, data, n)
		require.NoError(t, err)
		assert.Len(t, got, n)
		for _, v := range got {
			assert.True(t, slices.Contains(data, v), "value %v not drawn from data", v)
		}
	}
}

func TestBootstrapReproducibleUnderSeed(t *testing.T) {
	data := Sample{10, 20, 30, 40, 50}
	a, err := Bootstrap(NewRand(42), data, 20)
	require.NoError(t, err)
	b, err := Bootstrap(NewRand(42), data, 20)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBootstrapDoesNotMutateInput(t *testing.T) {
	data := Sample{5, 4, 3, 2, 1}
	orig := slices.Clone(data)
	_, err := Bootstrap(NewRand(1), data, 50)
	require.NoError(t, err)
	assert.Equal(t, orig, data)
}

func TestBootstrapInvalid(t *testing.T) {
	_, err := Bootstrap(NewRand(1), nil, 3)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = Bootstrap(NewRand(1), Sample{1}, 0)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestCreateSamplingDistribution(t *testing.T) {
	data := make(Sample, 60)
	for i := range data {
		data[i] = float64(i)
	}
	dist, err := CreateSamplingDistribution(NewRand(3), data, DefaultIterations, DefaultSampleSize)
	require.NoError(t, err)
	assert.Len(t, dist, DefaultIterations)
	for _, m := range dist {
		assert.GreaterOrEqual(t, m, 0.0)
		assert.LessOrEqual(t, m, 59.0)
	}
}

func TestCreateSamplingDistributionFullPopulation(t *testing.T) {
	// Drawing every element without replacement always yields the population mean.
	data := Sample{2, 4, 6, 8}
	dist, err := CreateSamplingDistribution(NewRand(9), data, 5, len(data))
	require.NoError(t, err)
	require.Len(t, dist, 5)
	for _, m := range dist {
		assert.InDelta(t, 5.0, m, 1e-12)
	}
}

func TestCreateSamplingDistributionInvalid(t *testing.T) {
	data := Sample{1, 2, 3}
	cases := []struct {
		name          string
		data          Sample
		iterations, n int
	}{
		{"n exceeds population", data, 10, 4},
		{"zero iterations", data, 0, 2},
		{"zero size", data, 10, 0},
		{"empty data", nil, 10, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CreateSamplingDistribution(NewRand(1), tc.data, tc.iterations, tc.n)
			assert.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestBootSamplingDistAllowsOversizedDraws(t *testing.T) {
	data := Sample{1, 2, 3}
	dist, err := BootSamplingDist(NewRand(5), data, 50, 12)
	require.NoError(t, err)
	assert.Len(t, dist, 12)
	for _, m := range dist {
		assert.GreaterOrEqual(t, m, 1.0)
		assert.LessOrEqual(t, m, 3.0)
	}

	_, err = BootSamplingDist(NewRand(5), data, 3, 0)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = BootSamplingDist(NewRand(5), nil, 3, 2)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestPercentileInterval(t *testing.T) {
	dist := make(SamplingDistribution, 101)
	for i := range dist {
		dist[i] = float64(i)
	}
	lo, hi, err := PercentileInterval(dist, 0.9)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, lo, 1e-9)
	assert.InDelta(t, 95.0, hi, 1e-9)

	_, _, err = PercentileInterval(nil, 0.9)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, _, err = PercentileInterval(dist, 1)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
