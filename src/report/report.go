// Package report turns a list of latency files into the overlaid
// filled-histogram comparison chart.
//
// Inputs are processed strictly in list order; the order decides each
// series' colour and legend position, never its statistics. All series share
// the same bucket edges so their histograms can be compared directly.
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/DesmondYau/latencyviz/src/latency"
	"github.com/DesmondYau/latencyviz/src/logging"
)

const (
	// DefaultOutput is written to the working directory and overwritten on every run.
	DefaultOutput = "latency_filled_histogram_comparison.png"
	Title         = "Latency Distribution – Filled Histogram Comparison"
	YLabel        = "Frequency"
)

var logger = logging.New("report")

// DefaultInputs are processed when no files are given on the command line.
var DefaultInputs = []string{
	"benchmark_time_model1.csv",
	"benchmark_time_model2.csv",
	"benchmark_time_model3.csv",
}

// Series is everything drawn for one input: a filled histogram plus a dotted
// median marker in the same colour.
type Series struct {
	Summary   latency.Summary
	Histogram latency.Histogram
	Label     string
	Color     drawing.Color
}

// Report is the set of series for one chart.
type Report struct {
	Series   []Series
	Cutoff   float64
	BinWidth float64
}

// Build loads every path in order and computes its series. The first load or
// parse error aborts the build.
func Build(paths []string) (*Report, error) {
	if len(paths) == 0 {
		return nil, errors.New("no input files")
	}
	defer logger.TimeTrack(time.Now(), "build report")
	datasets := make([]*latency.Dataset, 0, len(paths))
	for _, p := range paths {
		ds, err := latency.LoadCSV(p)
		if err != nil {
			return nil, err
		}
		logger.Debugf("loaded %s rows=%d", p, ds.Len())
		datasets = append(datasets, ds)
	}
	return FromDatasets(datasets), nil
}

// FromDatasets computes the series for already loaded datasets.
func FromDatasets(datasets []*latency.Dataset) *Report {
	r := &Report{Cutoff: latency.Cutoff, BinWidth: latency.BinWidth}
	for i, ds := range datasets {
		sum := latency.Summarize(ds, r.Cutoff)
		hist := latency.NewHistogram(ds.Filter(r.Cutoff), r.Cutoff, r.BinWidth)
		r.Series = append(r.Series, Series{
			Summary:   sum,
			Histogram: hist,
			Label:     Label(sum),
			Color:     chart.GetDefaultColor(i),
		})
		logger.Infof("[%s] rows=%d kept=%d excluded=%d median=%.1f var=%.1f", sum.Source, sum.Total, sum.Kept, sum.Excluded, sum.Median, sum.Variance)
		if binned := hist.Total(); binned != sum.Kept {
			logger.Debugf("[%s] %d kept rows fall outside [0, %g] and are not binned", sum.Source, sum.Kept-binned, r.Cutoff)
		}
	}
	return r
}

// Label is the legend text for one series.
func Label(s latency.Summary) string {
	return fmt.Sprintf("%s\nMedian=%.1f ns, Var=%.1f, Excluded=%d", s.Source, s.Median, s.Variance, s.Excluded)
}

// Legend returns one label per input, in input order.
func (r *Report) Legend() []string {
	out := make([]string, len(r.Series))
	for i, s := range r.Series {
		out[i] = s.Label
	}
	return out
}

// Summaries returns the per-input statistics in input order.
func (r *Report) Summaries() []latency.Summary {
	out := make([]latency.Summary, len(r.Series))
	for i, s := range r.Series {
		out[i] = s.Summary
	}
	return out
}

// XLabel names the x axis and the cutoff.
func (r *Report) XLabel() string {
	return fmt.Sprintf("Latency (ns) (>%g excluded)", r.Cutoff)
}

// MaxCount is the tallest bucket across all series.
func (r *Report) MaxCount() int {
	m := 0
	for _, s := range r.Series {
		if c := s.Histogram.Max(); c > m {
			m = c
		}
	}
	return m
}
