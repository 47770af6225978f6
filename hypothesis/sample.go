package hypothesis

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// ErrInvalidParameter is wrapped by every precondition failure in this package.
var ErrInvalidParameter = errors.New("invalid parameter")

// Sample is an ordered sequence of real numbers.
type Sample []float64

// SamplingDistribution holds one statistic (the mean) per resample.
type SamplingDistribution []float64

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidParameter}, args...)...)
}

// NewRand returns a PCG backed generator. A zero seed draws one from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func requireNonEmpty(name string, s Sample) error {
	if len(s) == 0 {
		return invalidf("%s is empty", name)
	}
	return nil
}

func requireVarianceSize(name string, s Sample) error {
	if len(s) < 2 {
		return invalidf("%s needs at least 2 values for a sample variance, got %d", name, len(s))
	}
	return nil
}
