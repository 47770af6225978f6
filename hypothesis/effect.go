package hypothesis

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// EffectSize is the conventional reading of a Cohen's d value.
type EffectSize int

const (
	Negligible EffectSize = iota
	Small
	Medium
	Large
)

func (e EffectSize) String() string {
	switch e {
	case Small:
		return "small"
	case Medium:
		return "medium"
	case Large:
		return "large"
	default:
		return "negligible"
	}
}

// CohensD returns |mean1-mean2| divided by the pooled standard deviation,
// where the pooled variance weighs each group's population variance by its
// size. When both groups have zero spread the pooled variance is 0, so the
// result is +Inf if the means differ and NaN if they match; in particular
// CohensD(g, g) is NaN rather than 0 for a constant g.
func CohensD(group1, group2 Sample) (float64, error) {
	if err := requireNonEmpty("group1", group1); err != nil {
		return 0, err
	}
	if err := requireNonEmpty("group2", group2); err != nil {
		return 0, err
	}
	diff := math.Abs(stat.Mean(group1, nil) - stat.Mean(group2, nil))
	n1, n2 := float64(len(group1)), float64(len(group2))
	pooled := (n1*stat.PopVariance(group1, nil) + n2*stat.PopVariance(group2, nil)) / (n1 + n2)
	return diff / math.Sqrt(pooled), nil
}

// ClassifyEffect maps d onto the 0.2 / 0.5 / 0.8 thresholds.
func ClassifyEffect(d float64) EffectSize {
	switch d = math.Abs(d); {
	case d >= 0.8:
		return Large
	case d >= 0.5:
		return Medium
	case d >= 0.2:
		return Small
	default:
		return Negligible
	}
}
