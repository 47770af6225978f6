package hypothesis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCohensD(t *testing.T) {
	// population variances 2 and 8, pooled (5*2 + 5*8) / 10 = 5
	d, err := CohensD(groupA, groupB)
	require.NoError(t, err)
	assert.InDelta(t, 3/math.Sqrt(5), d, 1e-12)
	assert.Equal(t, Large, ClassifyEffect(d))

	rev, err := CohensD(groupB, groupA)
	require.NoError(t, err)
	assert.InDelta(t, d, rev, 1e-12)
}

func TestCohensDSameGroupIsZero(t *testing.T) {
	g := Sample{4.5, 3.2, 8.8, 6.1}
	d, err := CohensD(g, g)
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestCohensDConstantGroups(t *testing.T) {
	g := Sample{3, 3, 3}
	d, err := CohensD(g, g)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(d), "expected NaN for 0/0, got %v", d)

	d, err = CohensD(g, Sample{5, 5})
	require.NoError(t, err)
	assert.True(t, math.IsInf(d, 1), "expected +Inf, got %v", d)
}

func TestCohensDEmpty(t *testing.T) {
	_, err := CohensD(nil, groupA)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = CohensD(groupA, Sample{})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestClassifyEffect(t *testing.T) {
	cases := map[float64]EffectSize{
		0:     Negligible,
		0.19:  Negligible,
		0.2:   Small,
		-0.3:  Small,
		0.5:   Medium,
		0.79:  Medium,
		0.8:   Large,
		3.141: Large,
	}
	for d, want := range cases {
		assert.Equal(t, want, ClassifyEffect(d), "d=%v", d)
	}
	assert.Equal(t, "medium", Medium.String())
}
