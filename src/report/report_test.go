package report

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/DesmondYau/latencyviz/src/latency"
)

// writeCSV writes rows of Add,<latency> under dir and returns the path.
func writeCSV(t *testing.T, dir, name string, vals ...float64) string {
	t.Helper()
	var b strings.Builder
	for _, v := range vals {
		b.WriteString("Add," + strconv.FormatFloat(v, 'f', -1, 64) + "\n")
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func threeInputs(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	return []string{
		writeCSV(t, dir, "model1.csv", 100, 200, 5200),
		writeCSV(t, dir, "model2.csv", 1000, 2000, 3000, 4000, 5000),
		writeCSV(t, dir, "model3.csv", 1000, 1000, 1000),
	}
}

func TestBuild_OneSeriesPerInput(t *testing.T) {
	paths := threeInputs(t)
	r, err := Build(paths)
	require.NoError(t, err)
	require.Len(t, r.Series, 3)
	assert.Len(t, r.Legend(), len(paths))

	for i, s := range r.Series {
		assert.Equal(t, paths[i], s.Summary.Source, "input order is preserved")
		assert.Equal(t, chart.GetDefaultColor(i), s.Color)
	}
	first := r.Series[0].Summary
	assert.Equal(t, 1, first.Excluded)
	assert.Equal(t, 150.0, first.Median)
	assert.Equal(t, 5000.0, first.Variance)
	assert.Equal(t, paths[0]+"\nMedian=150.0 ns, Var=5000.0, Excluded=1", r.Series[0].Label)

	assert.Equal(t, 3000.0, r.Series[1].Summary.Median)
	assert.Equal(t, 0, r.Series[1].Summary.Excluded)
	assert.Equal(t, 0.0, r.Series[2].Summary.Variance)
	assert.Equal(t, 3, r.MaxCount())
}

func TestBuild_Errors(t *testing.T) {
	_, err := Build(nil)
	require.Error(t, err)

	dir := t.TempDir()
	good := writeCSV(t, dir, "ok.csv", 10, 20)
	_, err = Build([]string{good, filepath.Join(dir, "missing.csv")})
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("Add,10\nAdd,oops\n"), 0o644))
	_, err = Build([]string{bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.csv:2")
}

func TestBuild_Deterministic(t *testing.T) {
	paths := threeInputs(t)
	a, err := Build(paths)
	require.NoError(t, err)
	b, err := Build(paths)
	require.NoError(t, err)
	assert.Equal(t, a.Summaries(), b.Summaries())
	assert.Equal(t, a.Legend(), b.Legend())
}

func TestXLabel(t *testing.T) {
	r := FromDatasets(nil)
	assert.Equal(t, "Latency (ns) (>5000 excluded)", r.XLabel())
}

func TestChartFor_LegendAndMedianMarkers(t *testing.T) {
	empty := &latency.Dataset{Source: "empty.csv", Records: []latency.Record{{OrderType: "Add", Latency: 9000}}}
	full := &latency.Dataset{Source: "full.csv", Records: []latency.Record{{OrderType: "Add", Latency: 10}, {OrderType: "Add", Latency: 30}}}
	r := FromDatasets([]*latency.Dataset{full, empty})
	require.True(t, math.IsNaN(r.Series[1].Summary.Median))

	ch := ChartRenderer{}.chartFor(r)
	entries := legendEntries(r)
	require.Len(t, entries, 2, "one legend entry per input")
	assert.Equal(t, r.Legend()[0], entries[0].Label)
	assert.Equal(t, r.Legend()[1], entries[1].Label)
	// fill + marker for full.csv, fill only for empty.csv
	require.Len(t, ch.Series, 3)

	marker, ok := ch.Series[1].(chart.ContinuousSeries)
	require.True(t, ok)
	assert.Equal(t, []float64{20, 20}, marker.XValues)
	assert.Equal(t, float64(medianLineWidth), marker.Style.StrokeWidth)
	assert.NotEmpty(t, marker.Style.StrokeDashArray)

	fill, ok := ch.Series[0].(chart.ContinuousSeries)
	require.True(t, ok)
	assert.Equal(t, fill.Style.FillColor, marker.Style.StrokeColor, "marker shares the fill colour")
	assert.Equal(t, uint8(fillAlpha), fill.Style.FillColor.A)
	assert.Equal(t, DefaultWidth, ch.Width)
	assert.Equal(t, DefaultHeight, ch.Height)
}

func TestRender_AllExcludedInput(t *testing.T) {
	full := &latency.Dataset{Source: "full.csv", Records: []latency.Record{{OrderType: "Add", Latency: 10}, {OrderType: "Add", Latency: 30}}}
	empty := &latency.Dataset{Source: "empty.csv", Records: []latency.Record{{OrderType: "Cancel", Latency: 9000}}}
	r := FromDatasets([]*latency.Dataset{full, empty})
	assert.Equal(t, "empty.csv\nMedian=NaN ns, Var=NaN, Excluded=1", r.Series[1].Label)
	assert.Equal(t, 0, r.Series[1].Histogram.Total())

	tests := []struct {
		name string
		rd   Renderer
	}{
		{name: "gochart png", rd: ChartRenderer{}},
		{name: "gochart svg", rd: ChartRenderer{SVG: true}},
		{name: "gonum png", rd: PlotRenderer{}},
		{name: "gonum svg", rd: PlotRenderer{Format: "svg"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.rd.Render(r, &buf))
			assert.NotZero(t, buf.Len())
		})
	}
}

func TestChartRenderer_PNG(t *testing.T) {
	r, err := Build(threeInputs(t))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, ChartRenderer{Width: 900, Height: 450}.Render(r, &buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 900, img.Bounds().Dx())
	assert.Equal(t, 450, img.Bounds().Dy())
}

func TestPlotRenderer(t *testing.T) {
	r, err := Build(threeInputs(t))
	require.NoError(t, err)

	var svg bytes.Buffer
	require.NoError(t, PlotRenderer{Format: "svg"}.Render(r, &svg))
	assert.Contains(t, svg.String(), "<svg")

	var raster bytes.Buffer
	require.NoError(t, PlotRenderer{Width: 800, Height: 400}.Render(r, &raster))
	img, err := png.Decode(&raster)
	require.NoError(t, err)
	assert.InDelta(t, 800, img.Bounds().Dx(), 1)
	assert.InDelta(t, 400, img.Bounds().Dy(), 1)

	pl, err := PlotRenderer{}.plotFor(r)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, pl.X.Max)
	assert.Equal(t, Title, pl.Title.Text)
}

func TestNewRenderer(t *testing.T) {
	tests := []struct {
		name, renderer, out string
		want                Renderer
		wantErr             bool
	}{
		{name: "default png", renderer: "", out: DefaultOutput, want: ChartRenderer{Width: 10, Height: 20}},
		{name: "gochart svg", renderer: "gochart", out: "chart.SVG", want: ChartRenderer{Width: 10, Height: 20, SVG: true}},
		{name: "gochart pdf", renderer: "gochart", out: "chart.pdf", wantErr: true},
		{name: "gonum pdf", renderer: "gonum", out: "chart.pdf", want: PlotRenderer{Width: 10, Height: 20, Format: "pdf"}},
		{name: "gonum no ext", renderer: "GONUM", out: "chart", want: PlotRenderer{Width: 10, Height: 20, Format: "png"}},
		{name: "unknown", renderer: "matplotlib", out: "chart.png", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewRenderer(tt.renderer, 10, 20, tt.out)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSave_OverwritesAndStamps(t *testing.T) {
	r, err := Build(threeInputs(t))
	require.NoError(t, err)
	out := filepath.Join(t.TempDir(), DefaultOutput)
	require.NoError(t, os.WriteFile(out, []byte("stale"), 0o644))

	require.NoError(t, Save(r, ChartRenderer{Width: 640, Height: 320}, out, "orderbook map vs vector"))
	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())

	// the caption backdrop is dark where the plain chart background is white
	cr, cg, cb, _ := img.At(4, img.Bounds().Max.Y-8).RGBA()
	assert.Less(t, cr+cg+cb, uint32(3*0x8000))
}

func TestWriteMetrics(t *testing.T) {
	paths := threeInputs(t)
	r, err := Build(paths)
	require.NoError(t, err)
	out := filepath.Join(t.TempDir(), "latencyviz.prom")
	require.NoError(t, WriteMetrics(r, out))

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	text := string(b)
	assert.Contains(t, text, `latencyviz_excluded_rows{source="`+paths[0]+`"} 1`)
	assert.Contains(t, text, `latencyviz_median_nanoseconds{source="`+paths[0]+`"} 150`)
	assert.Contains(t, text, `latencyviz_sample_variance_nanoseconds_squared{source="`+paths[0]+`"} 5000`)
	assert.Contains(t, text, "latencyviz_cutoff_nanoseconds 5000")
}

func TestSummaryTable(t *testing.T) {
	ds := &latency.Dataset{Source: "bench.csv", Records: []latency.Record{
		{OrderType: "Add", Latency: 100}, {OrderType: "Cancel", Latency: 9000},
	}}
	out := SummaryTable(append([]latency.Summary{latency.Summarize(ds, latency.Cutoff)}, latency.BreakdownByOrderType(ds, latency.Cutoff)...))
	for _, want := range []string{"SOURCE", "bench.csv", "all", "Add", "Cancel", "100.0", "NaN"} {
		assert.Contains(t, out, want)
	}
}

func TestAxisTicks(t *testing.T) {
	x := latencyTicks(5000)
	require.Len(t, x, 11)
	assert.Equal(t, 0.0, x[0].Value)
	assert.Equal(t, 500.0, x[1].Value)
	assert.Equal(t, "5000", x[10].Label)

	assert.Equal(t, 1.0, frequencyTop(0))
	assert.Equal(t, 4.0, frequencyTop(3))
	top := frequencyTop(937)
	assert.GreaterOrEqual(t, top, 937*1.05)
	for _, tk := range frequencyTicks(top) {
		assert.Equal(t, math.Trunc(tk.Value), tk.Value, "count ticks are integers")
	}
}

func TestWrapCaption(t *testing.T) {
	// basicfont glyphs are 7px wide
	lines := wrapCaption("map vs vector vs reversed vector", 7*15)
	assert.Equal(t, []string{"map vs vector", "vs reversed", "vector"}, lines)
	assert.Equal(t, []string{"run 1", "host a"}, wrapCaption("run 1\n\nhost a", 500))
	assert.Empty(t, wrapCaption("   ", 500))
}

func TestStamp_MultiLineBackdrop(t *testing.T) {
	white := image.NewRGBA(image.Rect(0, 0, 480, 240))
	draw.Draw(white, white.Bounds(), image.White, image.Point{}, draw.Src)

	one := Stamp(white, "one line")
	two := Stamp(white, "first line\nsecond line")
	probeY := white.Bounds().Max.Y - 30
	r1, _, _, _ := one.At(4, probeY).RGBA()
	r2, _, _, _ := two.At(4, probeY).RGBA()
	assert.Equal(t, uint32(0xffff), r1, "single line backdrop stays low")
	assert.Less(t, r2, uint32(0x8000), "second line raises the backdrop")
	assert.Same(t, image.Image(white), Stamp(white, ""))
}
