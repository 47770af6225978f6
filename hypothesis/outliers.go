package hypothesis

import (
	"math"
	"slices"
)

// OutlierIQRMultiplier widens the retained range to 2 IQRs beyond the
// quartiles rather than the usual 1.5.
const OutlierIQRMultiplier = 2

// Quantile returns the p-quantile of data, interpolating linearly between the
// closest ranks at position (len(data)-1)*p.
func Quantile(data Sample, p float64) (float64, error) {
	if err := requireNonEmpty("data", data); err != nil {
		return 0, err
	}
	if p < 0 || p > 1 || math.IsNaN(p) {
		return 0, invalidf("quantile %v out of range [0, 1]", p)
	}
	s := slices.Clone(data)
	slices.Sort(s)
	h := float64(len(s)-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(s) {
		return s[len(s)-1], nil
	}
	return s[i] + (h-lo)*(s[i+1]-s[i]), nil
}

// OutlierBounds returns the open interval (q1 - 2*iqr, q3 + 2*iqr) of s.
func OutlierBounds(s Sample) (lower, upper float64, err error) {
	q1, err := Quantile(s, 0.25)
	if err != nil {
		return 0, 0, err
	}
	q3, err := Quantile(s, 0.75)
	if err != nil {
		return 0, 0, err
	}
	iqr := q3 - q1
	return q1 - OutlierIQRMultiplier*iqr, q3 + OutlierIQRMultiplier*iqr, nil
}

// RemoveOutliers returns a new table holding only the rows whose column value
// lies strictly inside OutlierBounds of that column.
func RemoveOutliers(table *Table, column string) (*Table, error) {
	if table.Len() == 0 {
		return nil, invalidf("table is empty")
	}
	s, err := table.Column(column)
	if err != nil {
		return nil, err
	}
	lower, upper, err := OutlierBounds(s)
	if err != nil {
		return nil, err
	}
	c := table.index[column]
	return table.filter(func(row []float64) bool {
		return row[c] > lower && row[c] < upper
	}), nil
}
