// Package latency loads orderbook benchmark latency files and computes the
// per-file statistics shown on the comparison chart.
//
// Input files are headerless two-column CSV as written by the orderbook
// benchmark: the action type (Add, Modify, Cancel) followed by the measured
// latency in nanoseconds.
package latency

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

const (
	// Cutoff is the inclusive upper bound for retained latencies (ns).
	Cutoff = 5000.0
	// BinWidth is the histogram bucket width (ns).
	BinWidth = 50.0
)

// Record is one input row.
type Record struct {
	OrderType string
	Latency   float64
}

// Dataset holds every row of one input file in file order.
type Dataset struct {
	Source  string
	Records []Record
}

// LoadCSV reads a headerless OrderType,Latency file. I/O and parse errors are
// returned as-is (wrapped with the source); nothing is skipped silently except
// blank lines. An empty latency cell loads as NaN and counts as excluded.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(path, f)
}

// ReadCSV parses rows from r. Columns are assigned positionally.
func ReadCSV(source string, r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	ds := &Dataset{Source: source}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		orderType := strings.TrimSpace(row[0])
		if len(ds.Records) == 0 {
			orderType = strings.TrimPrefix(orderType, utf8BOM)
		}
		v, err := parseLatency(row[1])
		if err != nil {
			line, _ := cr.FieldPos(1)
			return nil, fmt.Errorf("%s:%d: latency %q: %w", source, line, row[1], err)
		}
		ds.Records = append(ds.Records, Record{OrderType: orderType, Latency: v})
	}
	return ds, nil
}

const utf8BOM = "\ufeff"

// parseLatency reads one latency cell. An empty cell is a missing
// measurement: NaN, which the cutoff filter excludes.
func parseLatency(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(raw, 64)
}

// Len returns the total number of rows.
func (d *Dataset) Len() int { return len(d.Records) }

// Filter returns the latencies <= cutoff, in file order. The cutoff itself is
// retained; NaN never is.
func (d *Dataset) Filter(cutoff float64) []float64 {
	out := make([]float64, 0, len(d.Records))
	for _, r := range d.Records {
		if r.Latency <= cutoff {
			out = append(out, r.Latency)
		}
	}
	return out
}

// OrderTypes returns the distinct OrderType labels in first-seen order.
func (d *Dataset) OrderTypes() []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range d.Records {
		if seen[r.OrderType] {
			continue
		}
		seen[r.OrderType] = true
		out = append(out, r.OrderType)
	}
	return out
}

// Subset returns a dataset holding only rows with the given OrderType.
func (d *Dataset) Subset(orderType string) *Dataset {
	sub := &Dataset{Source: d.Source}
	for _, r := range d.Records {
		if r.OrderType == orderType {
			sub.Records = append(sub.Records, r)
		}
	}
	return sub
}
