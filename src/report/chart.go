package report

import (
	"io"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

)

const (
	fillAlpha       = 128 // ~0.5 opacity so overlapping series stay visible
	medianLineWidth = 2
	legendFontSize  = 9
)

var medianDash = []float64{2, 4}

// ChartRenderer draws the report with go-chart. It is the default renderer.
type ChartRenderer struct {
	Width  int
	Height int
	SVG    bool
}

// legendEntry is one row of the upper-right legend.
type legendEntry struct {
	Label string
	Color drawing.Color
}

// Render writes the chart as PNG (or SVG when c.SVG is set).
func (c ChartRenderer) Render(r *Report, w io.Writer) error {
	ch := c.chartFor(r)
	rp := chart.PNG
	if c.SVG {
		rp = chart.SVG
	}
	return ch.Render(rp, w)
}

// legendEntries lists one row per input. Median markers are series too but
// never get a legend row.
func legendEntries(r *Report) []legendEntry {
	entries := make([]legendEntry, 0, len(r.Series))
	for _, s := range r.Series {
		entries = append(entries, legendEntry{Label: s.Label, Color: s.Color})
	}
	return entries
}

// chartFor builds the go-chart model.
func (c ChartRenderer) chartFor(r *Report) chart.Chart {
	top := frequencyTop(r.MaxCount())
	series := make([]chart.Series, 0, 2*len(r.Series))
	for _, s := range r.Series {
		xs, ys := s.Histogram.Steps()
		faded := s.Color.WithAlpha(fillAlpha)
		series = append(series, chart.ContinuousSeries{
			Name:    s.Label,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: faded,
				StrokeWidth: 1,
				FillColor:   faded,
			},
		})

		m := s.Summary.Median
		if math.IsNaN(m) {
			logger.Warnf("[%s] no latency <= %g; median marker skipped", s.Summary.Source, r.Cutoff)
			continue
		}
		series = append(series, chart.ContinuousSeries{
			Name:    "median " + s.Summary.Source,
			XValues: []float64{m, m},
			YValues: []float64{0, top},
			Style: chart.Style{
				StrokeColor:     faded,
				StrokeWidth:     medianLineWidth,
				StrokeDashArray: medianDash,
			},
		})
	}

	w, h := ClampSize(c.Width, c.Height)
	ch := chart.Chart{
		Title:      Title,
		TitleStyle: chart.Style{FontSize: 13},
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 20, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  r.XLabel(),
			Range: &chart.ContinuousRange{Min: 0, Max: r.Cutoff},
			Ticks: latencyTicks(r.Cutoff),
		},
		YAxis: chart.YAxis{
			Name:  YLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: top},
			Ticks: frequencyTicks(top),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{legendUpperRight(legendEntries(r))}
	return ch
}

// legendUpperRight draws one entry per input in the top right corner of the
// plot area. Multi-line labels are drawn line by line next to a colour swatch.
func legendUpperRight(entries []legendEntry) chart.Renderable {
	return func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
		if len(entries) == 0 {
			return
		}
		frame := chart.Style{
			FillColor:   drawing.ColorWhite.WithAlpha(220),
			FontColor:   chart.DefaultTextColor,
			FontSize:    legendFontSize,
			StrokeColor: chart.DefaultAxisColor,
			StrokeWidth: 1,
		}.InheritFrom(defaults)

		const pad, swatch, gap, lineGap, entryGap = 6, 14, 6, 3, 6

		frame.GetTextOptions().WriteToRenderer(r)
		lineH, textW := 0, 0
		lines := 0
		for _, e := range entries {
			for _, l := range strings.Split(e.Label, "\n") {
				tb := r.MeasureText(l)
				if tb.Width() > textW {
					textW = tb.Width()
				}
				if tb.Height() > lineH {
					lineH = tb.Height()
				}
				lines++
			}
		}
		width := pad + swatch + gap + textW + pad
		height := pad + lines*(lineH+lineGap) + (len(entries)-1)*entryGap + pad
		box := chart.Box{
			Top:    cb.Top + 5,
			Right:  cb.Right - 5,
			Left:   cb.Right - 5 - width,
			Bottom: cb.Top + 5 + height,
		}
		chart.Draw.Box(r, box, frame)

		y := box.Top + pad
		for _, e := range entries {
			sw := chart.Box{Top: y, Left: box.Left + pad, Right: box.Left + pad + swatch, Bottom: y + lineH}
			chart.Draw.Box(r, sw, chart.Style{FillColor: e.Color.WithAlpha(fillAlpha), StrokeColor: e.Color, StrokeWidth: 1})
			frame.GetTextOptions().WriteToRenderer(r)
			for _, l := range strings.Split(e.Label, "\n") {
				y += lineH
				r.Text(l, sw.Right+gap, y)
				y += lineGap
			}
			y += entryGap
		}
	}
}
