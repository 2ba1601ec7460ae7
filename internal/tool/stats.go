package tool

import "sort"

// Summary holds descriptive statistics over a set of numeric values.
type Summary struct {
	Count  int
	Median float64
	Mean   float64
	Min    float64
	Max    float64
}

// summarize computes median, mean and range over the given values.
// Returns nil for fewer than 2 values: a single point is not a
// distribution and rendering it as one would overstate the data.
func summarize(values []float64) *Summary {
	if len(values) < 2 {
		return nil
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}

	mid := len(sorted) / 2
	median := sorted[mid]
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}

	return &Summary{
		Count:  len(sorted),
		Median: median,
		Mean:   sum / float64(len(sorted)),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
}

// nonNil collects the values behind non-nil pointers, preserving order.
func nonNil(ptrs []*float64) []float64 {
	out := make([]float64, 0, len(ptrs))
	for _, p := range ptrs {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}
