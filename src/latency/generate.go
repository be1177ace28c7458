package latency

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strconv"

	"github.com/aclements/go-moremath/stats"
)

// ActionProfile describes one order action of a synthetic benchmark run: its
// relative frequency and the distribution of its latency in nanoseconds.
type ActionProfile struct {
	OrderType string
	Weight    float64
	Latency   stats.NormalDist
}

// DefaultProfiles follow the orderbook benchmark's order generator, which
// issues adds, modifies and cancels in a 65/10/25 mix.
func DefaultProfiles() []ActionProfile {
	return []ActionProfile{
		{OrderType: "Add", Weight: 65, Latency: stats.NormalDist{Mu: 900, Sigma: 300}},
		{OrderType: "Modify", Weight: 10, Latency: stats.NormalDist{Mu: 1600, Sigma: 500}},
		{OrderType: "Cancel", Weight: 25, Latency: stats.NormalDist{Mu: 600, Sigma: 200}},
	}
}

// GenerateOptions controls Generate. Zero values select the defaults.
type GenerateOptions struct {
	Rows     int
	Seed     int64
	Profiles []ActionProfile
	// Scale multiplies every latency mean and spread (1 when zero).
	Scale float64
	// TailRate is the share of rows drawn from a slow tail above Cutoff.
	TailRate float64
}

// Generate builds a synthetic benchmark dataset. The same options always
// produce the same rows.
func Generate(source string, opts GenerateOptions) (*Dataset, error) {
	if opts.Rows < 0 {
		return nil, fmt.Errorf("rows must be >= 0, got %d", opts.Rows)
	}
	if opts.TailRate < 0 || opts.TailRate > 1 {
		return nil, fmt.Errorf("tail rate must be within [0, 1], got %g", opts.TailRate)
	}
	profiles := opts.Profiles
	if len(profiles) == 0 {
		profiles = DefaultProfiles()
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	cum := make([]float64, len(profiles))
	total := 0.0
	for i, p := range profiles {
		if p.Weight < 0 {
			return nil, fmt.Errorf("%s: negative weight %g", p.OrderType, p.Weight)
		}
		total += p.Weight
		cum[i] = total
	}
	if total == 0 {
		return nil, errors.New("action weights sum to zero")
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	tail := stats.NormalDist{Mu: 0, Sigma: Cutoff}
	ds := &Dataset{Source: source, Records: make([]Record, 0, opts.Rows)}
	for i := 0; i < opts.Rows; i++ {
		u := rng.Float64() * total
		k := 0
		for k < len(cum)-1 && u >= cum[k] {
			k++
		}
		p := profiles[k]

		var v float64
		if opts.TailRate > 0 && rng.Float64() < opts.TailRate {
			v = Cutoff + 1 + math.Abs(tail.Rand(rng))
		} else {
			d := stats.NormalDist{Mu: p.Latency.Mu * scale, Sigma: p.Latency.Sigma * scale}
			v = d.Rand(rng)
		}
		ds.Records = append(ds.Records, Record{OrderType: p.OrderType, Latency: math.Max(1, math.Round(v))})
	}
	return ds, nil
}

// WriteCSV writes ds in the headerless OrderType,latency format ReadCSV reads.
func WriteCSV(w io.Writer, ds *Dataset) error {
	cw := csv.NewWriter(w)
	for _, r := range ds.Records {
		if err := cw.Write([]string{r.OrderType, strconv.FormatFloat(r.Latency, 'f', -1, 64)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes ds to path, truncating any existing file.
func SaveCSV(path string, ds *Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, ds); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
