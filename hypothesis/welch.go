package hypothesis

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// TestResult is one Welch's t-test evaluation.
type TestResult struct {
	T        float64
	DF       float64
	P        float64
	TwoSided bool
}

// WelchT returns |mean(a)-mean(b)| / sqrt(var(a)/len(a) + var(b)/len(b))
// using sample variances. Two constant groups give +Inf, or NaN if their
// means also match.
func WelchT(a, b Sample) (float64, error) {
	if err := requireVarianceSize("a", a); err != nil {
		return 0, err
	}
	if err := requireVarianceSize("b", b); err != nil {
		return 0, err
	}
	num := stat.Mean(a, nil) - stat.Mean(b, nil)
	den := math.Sqrt(stat.Variance(a, nil)/float64(len(a)) + stat.Variance(b, nil)/float64(len(b)))
	return math.Abs(num / den), nil
}

// WelchDF returns the Welch-Satterthwaite effective degrees of freedom.
func WelchDF(a, b Sample) (float64, error) {
	if err := requireVarianceSize("a", a); err != nil {
		return 0, err
	}
	if err := requireVarianceSize("b", b); err != nil {
		return 0, err
	}
	na, nb := float64(len(a)), float64(len(b))
	va, vb := stat.Variance(a, nil), stat.Variance(b, nil)
	se := va/na + vb/nb
	den := va*va/(na*na*(na-1)) + vb*vb/(nb*nb*(nb-1))
	return se * se / den, nil
}

// PValue is 1 - CDF_t(WelchT(a, b), WelchDF(a, b)). With twoSided the
// one-sided value is doubled as is; it is not clamped to 1.
func PValue(a, b Sample, twoSided bool) (float64, error) {
	r, err := WelchTest(a, b, twoSided)
	if err != nil {
		return 0, err
	}
	return r.P, nil
}

// WelchTest computes the statistic, the degrees of freedom and the p-value in
// one pass.
func WelchTest(a, b Sample, twoSided bool) (TestResult, error) {
	t, err := WelchT(a, b)
	if err != nil {
		return TestResult{}, err
	}
	df, err := WelchDF(a, b)
	if err != nil {
		return TestResult{}, err
	}
	p := 1 - distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.CDF(t)
	if twoSided {
		p += p
	}
	return TestResult{T: t, DF: df, P: p, TwoSided: twoSided}, nil
}
