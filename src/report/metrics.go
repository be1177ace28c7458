package report

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// WriteMetrics writes the per-input statistics as a Prometheus text file
// (node_exporter textfile collector format). The file is replaced atomically.
func WriteMetrics(r *Report, path string) error {
	reg := prometheus.NewRegistry()
	labels := []string{"source"}
	median := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "latencyviz",
		Name:      "median_nanoseconds",
		Help:      "Median latency of rows at or below the cutoff.",
	}, labels)
	variance := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "latencyviz",
		Name:      "sample_variance_nanoseconds_squared",
		Help:      "Sample variance (n-1) of rows at or below the cutoff.",
	}, labels)
	kept := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "latencyviz",
		Name:      "kept_rows",
		Help:      "Rows at or below the cutoff.",
	}, labels)
	excluded := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "latencyviz",
		Name:      "excluded_rows",
		Help:      "Rows above the cutoff.",
	}, labels)
	cutoff := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "latencyviz",
		Name:      "cutoff_nanoseconds",
		Help:      "Inclusive latency cutoff applied before the statistics.",
	})
	reg.MustRegister(median, variance, kept, excluded, cutoff)

	cutoff.Set(r.Cutoff)
	for _, s := range r.Series {
		src := s.Summary.Source
		median.WithLabelValues(src).Set(s.Summary.Median)
		variance.WithLabelValues(src).Set(s.Summary.Variance)
		kept.WithLabelValues(src).Set(float64(s.Summary.Kept))
		excluded.WithLabelValues(src).Set(float64(s.Summary.Excluded))
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
