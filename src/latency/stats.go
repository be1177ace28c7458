package latency

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// Summary captures the statistics of one input (or one order type within it).
// Median, Variance, Mean, Min and Max are NaN when no row survives the cutoff.
type Summary struct {
	Source    string  `json:"source"`
	OrderType string  `json:"order_type,omitempty"`
	Total     int     `json:"total"`
	Kept      int     `json:"kept"`
	Excluded  int     `json:"excluded"`
	Median    float64 `json:"median_ns"`
	Variance  float64 `json:"sample_variance"`
	Mean      float64 `json:"mean_ns"`
	Min       float64 `json:"min_ns"`
	Max       float64 `json:"max_ns"`
}

// Summarize filters ds at cutoff and computes its statistics over the kept values.
func Summarize(ds *Dataset, cutoff float64) Summary {
	kept := ds.Filter(cutoff)
	s := Summary{
		Source:   ds.Source,
		Total:    ds.Len(),
		Kept:     len(kept),
		Excluded: ds.Len() - len(kept),
		Median:   Median(kept),
		Variance: SampleVariance(kept),
		Mean:     math.NaN(),
		Min:      math.NaN(),
		Max:      math.NaN(),
	}
	if len(kept) > 0 {
		s.Mean = stats.Mean(kept)
		s.Min, s.Max = stats.Bounds(kept)
	}
	return s
}

// BreakdownByOrderType summarizes each OrderType separately, in first-seen order.
func BreakdownByOrderType(ds *Dataset, cutoff float64) []Summary {
	types := ds.OrderTypes()
	out := make([]Summary, 0, len(types))
	for _, t := range types {
		s := Summarize(ds.Subset(t), cutoff)
		s.OrderType = t
		out = append(out, s)
	}
	return out
}

// Median returns the 50th percentile; for an even count it is the midpoint of
// the two middle values. NaN for an empty slice.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	cp := append([]float64(nil), xs...)
	sort.Float64s(cp)
	n := len(cp)
	if n%2 == 1 {
		return cp[n/2]
	}
	return (cp[n/2-1] + cp[n/2]) / 2
}

// SampleVariance returns the Bessel-corrected variance (divisor n-1).
// NaN when fewer than two values are given.
func SampleVariance(xs []float64) float64 {
	if len(xs) < 2 {
		return math.NaN()
	}
	return stats.Variance(xs)
}
