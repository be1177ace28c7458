package report

import (
	"math"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
)

var (
	latencySteps = []float64{1, 2, 2.5, 5, 10}
	countSteps   = []float64{1, 2, 5, 10}
)

// tickStep returns the step from steps × 10^k whose tick count over [0, span]
// is closest to n.
func tickStep(span float64, n int, steps []float64) float64 {
	if span <= 0 || n < 2 || math.IsNaN(span) {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	best, bestScore := mag, math.MaxFloat64
	for _, c := range steps {
		step := c * mag
		score := math.Abs(math.Ceil(span/step) - float64(n))
		if score < bestScore {
			best, bestScore = step, score
		}
	}
	return best
}

// countStep is tickStep for bucket counts. Counts are integers, so never below one.
func countStep(top float64) float64 {
	return math.Max(1, tickStep(top, 6, countSteps))
}

// frequencyTop is the y-axis maximum for a tallest bucket of maxCount:
// 5% headroom, rounded up to the next count tick.
func frequencyTop(maxCount int) float64 {
	if maxCount <= 0 {
		return 1
	}
	raw := float64(maxCount) * 1.05
	step := countStep(raw)
	return math.Ceil(raw/step) * step
}

// latencyTicks labels the x axis from 0 to cutoff.
func latencyTicks(cutoff float64) []chart.Tick {
	return ticksTo(cutoff, tickStep(cutoff, 11, latencySteps))
}

// frequencyTicks labels the y axis from 0 to top.
func frequencyTicks(top float64) []chart.Tick {
	return ticksTo(top, countStep(top))
}

func ticksTo(top, step float64) []chart.Tick {
	var ticks []chart.Tick
	for i := 0; ; i++ {
		v := float64(i) * step
		if v > top+step/2 {
			break
		}
		ticks = append(ticks, chart.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)})
	}
	return ticks
}
