package report

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotRenderer draws the report with gonum/plot. Format is any format
// plot.WriterTo accepts (png, svg, pdf, eps, jpg, tiff).
type PlotRenderer struct {
	Width  int
	Height int
	Format string
}

// pxToLength converts pixels to plot units at the 96 DPI gonum uses for raster output.
func pxToLength(px int) vg.Length {
	return vg.Length(px) / 96 * vg.Inch
}

func (p PlotRenderer) Render(r *Report, w io.Writer) error {
	pl, err := p.plotFor(r)
	if err != nil {
		return err
	}
	format := p.Format
	if format == "" {
		format = "png"
	}
	width, height := ClampSize(p.Width, p.Height)
	wt, err := pl.WriterTo(pxToLength(width), pxToLength(height), format)
	if err != nil {
		return fmt.Errorf("plot %s: %w", format, err)
	}
	_, err = wt.WriteTo(w)
	return err
}

func (p PlotRenderer) plotFor(r *Report) (*plot.Plot, error) {
	top := frequencyTop(r.MaxCount())

	pl := plot.New()
	pl.Title.Text = Title
	pl.X.Label.Text = r.XLabel()
	pl.Y.Label.Text = YLabel
	pl.X.Min, pl.X.Max = 0, r.Cutoff
	pl.Y.Min, pl.Y.Max = 0, top
	pl.Legend.Top = true
	pl.Legend.TextStyle.Font.Size = vg.Points(legendFontSize)

	for _, s := range r.Series {
		h := s.Histogram
		pts := make(plotter.XYs, 0, len(h.Edges)+1)
		for i, e := range h.Edges {
			pts = append(pts, plotter.XY{X: e, Y: float64(h.Counts[i])})
		}
		// close the last bucket at its right edge
		last := len(h.Edges) - 1
		pts = append(pts, plotter.XY{X: h.Edges[last] + h.Width, Y: float64(h.Counts[last])})

		area, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Summary.Source, err)
		}
		faded := s.Color.WithAlpha(fillAlpha)
		area.StepStyle = plotter.PostStep
		area.FillColor = faded
		area.Color = faded
		area.Width = vg.Points(0.5)
		pl.Add(area)
		pl.Legend.Add(s.Label, area)

		m := s.Summary.Median
		if math.IsNaN(m) {
			continue
		}
		marker, err := plotter.NewLine(plotter.XYs{{X: m, Y: 0}, {X: m, Y: top}})
		if err != nil {
			return nil, fmt.Errorf("%s median: %w", s.Summary.Source, err)
		}
		marker.Color = faded
		marker.Width = vg.Points(medianLineWidth)
		marker.Dashes = []vg.Length{vg.Points(medianDash[0]), vg.Points(medianDash[1])}
		pl.Add(marker)
	}
	return pl, nil
}
