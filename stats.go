package main

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"hypothesis_worker/hypothesis"
)

type compareOptions struct {
	TwoSided       bool
	RemoveOutliers bool
	BootIterations int
	Confidence     float64
}

// Comparison is everything persisted for one pair of sample groups.
type Comparison struct {
	SizeA    int
	SizeB    int
	RemovedA int
	RemovedB int
	MeanA    float64
	MeanB    float64
	Test     hypothesis.TestResult
	CohensD  float64
	Effect   hypothesis.EffectSize
	// Percentile bootstrap interval for MeanA - MeanB.
	DiffLow  float64
	DiffHigh float64
}

func compareGroups(a, b *hypothesis.Table, opts compareOptions, rng *rand.Rand) (Comparison, error) {
	var c Comparison
	var err error
	if opts.RemoveOutliers {
		before := a.Len()
		if a, err = hypothesis.RemoveOutliers(a, sampleColumn); err != nil {
			return c, fmt.Errorf("group a: %w", err)
		}
		c.RemovedA = before - a.Len()
		before = b.Len()
		if b, err = hypothesis.RemoveOutliers(b, sampleColumn); err != nil {
			return c, fmt.Errorf("group b: %w", err)
		}
		c.RemovedB = before - b.Len()
	}
	sa, err := a.Column(sampleColumn)
	if err != nil {
		return c, fmt.Errorf("group a: %w", err)
	}
	sb, err := b.Column(sampleColumn)
	if err != nil {
		return c, fmt.Errorf("group b: %w", err)
	}
	c.SizeA, c.SizeB = len(sa), len(sb)

	if c.Test, err = hypothesis.WelchTest(sa, sb, opts.TwoSided); err != nil {
		return c, fmt.Errorf("welch test: %w", err)
	}
	c.MeanA, c.MeanB = stat.Mean(sa, nil), stat.Mean(sb, nil)
	if c.CohensD, err = hypothesis.CohensD(sa, sb); err != nil {
		return c, fmt.Errorf("cohen's d: %w", err)
	}
	c.Effect = hypothesis.ClassifyEffect(c.CohensD)

	distA, err := hypothesis.BootSamplingDist(rng, sa, len(sa), opts.BootIterations)
	if err != nil {
		return c, fmt.Errorf("bootstrap a: %w", err)
	}
	distB, err := hypothesis.BootSamplingDist(rng, sb, len(sb), opts.BootIterations)
	if err != nil {
		return c, fmt.Errorf("bootstrap b: %w", err)
	}
	diff := floats.SubTo(make([]float64, len(distA)), distA, distB)
	if c.DiffLow, c.DiffHigh, err = hypothesis.PercentileInterval(diff, opts.Confidence); err != nil {
		return c, fmt.Errorf("mean difference interval: %w", err)
	}
	return c, nil
}
