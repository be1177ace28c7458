package latency

import "math"

// Histogram is a fixed partition of [0, cutoff) into equal-width buckets.
// Edges[i] is the start of bucket i; Counts[i] the number of values in
// [Edges[i], Edges[i]+Width). The last bucket also takes values equal to the
// cutoff, so every retained non-negative value is counted.
type Histogram struct {
	Edges  []float64
	Counts []int
	Width  float64
}

// NewHistogram bins xs. Edges depend only on cutoff and width, so histograms
// built with the same arguments are directly comparable.
func NewHistogram(xs []float64, cutoff, width float64) Histogram {
	n := int(math.Ceil(cutoff / width))
	if n < 1 {
		n = 1
	}
	h := Histogram{
		Edges:  make([]float64, n),
		Counts: make([]int, n),
		Width:  width,
	}
	for i := range h.Edges {
		h.Edges[i] = float64(i) * width
	}
	for _, x := range xs {
		if math.IsNaN(x) || x < 0 || x > cutoff {
			continue
		}
		i := int(x / width)
		if i >= n {
			i = n - 1
		}
		h.Counts[i]++
	}
	return h
}

// Total returns the number of binned values.
func (h Histogram) Total() int {
	t := 0
	for _, c := range h.Counts {
		t += c
	}
	return t
}

// Max returns the largest bucket count.
func (h Histogram) Max() int {
	m := 0
	for _, c := range h.Counts {
		if c > m {
			m = c
		}
	}
	return m
}

// Steps returns the outline of the histogram as x/y pairs: each bucket's
// count is held from its start edge until the next edge.
func (h Histogram) Steps() ([]float64, []float64) {
	xs := make([]float64, 0, 2*len(h.Edges))
	ys := make([]float64, 0, 2*len(h.Edges))
	for i, e := range h.Edges {
		c := float64(h.Counts[i])
		xs = append(xs, e, e+h.Width)
		ys = append(ys, c, c)
	}
	return xs, ys
}
