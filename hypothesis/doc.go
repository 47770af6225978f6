// Package hypothesis holds small, stateless helpers for comparing two groups
// of measurements: bootstrap and without-replacement resampling, the pieces of
// Welch's t-test, Cohen's d and an IQR based outlier filter.
//
// Every function takes its inputs by value and returns fresh results; callers'
// slices and tables are never modified. Functions that draw random numbers
// take an explicit *rand.Rand so results are reproducible under a fixed seed.
package hypothesis
