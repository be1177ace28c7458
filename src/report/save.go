package report

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Renderer draws a report into w.
type Renderer interface {
	Render(r *Report, w io.Writer) error
}

// Renderer names accepted by NewRenderer.
const (
	RendererGoChart = "gochart"
	RendererGonum   = "gonum"
)

// NewRenderer picks a renderer by name; the image format follows the
// extension of out (png when empty).
func NewRenderer(name string, width, height int, out string) (Renderer, error) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
	if format == "" {
		format = "png"
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", RendererGoChart:
		switch format {
		case "png":
			return ChartRenderer{Width: width, Height: height}, nil
		case "svg":
			return ChartRenderer{Width: width, Height: height, SVG: true}, nil
		}
		return nil, fmt.Errorf("renderer %s cannot write .%s (use png or svg, or --renderer %s)", RendererGoChart, format, RendererGonum)
	case RendererGonum:
		return PlotRenderer{Width: width, Height: height, Format: format}, nil
	}
	return nil, fmt.Errorf("unknown renderer %q (want %s or %s)", name, RendererGoChart, RendererGonum)
}

// Save renders r to path, replacing any existing file. A non-empty caption is
// stamped onto PNG output.
func Save(r *Report, rd Renderer, path, caption string) error {
	defer logger.TimeTrack(time.Now(), "render "+path)
	var buf bytes.Buffer
	if err := rd.Render(r, &buf); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	out := buf.Bytes()
	if strings.TrimSpace(caption) != "" {
		if !strings.EqualFold(filepath.Ext(path), ".png") {
			logger.Warnf("caption ignored for %s (png only)", path)
		} else {
			img, err := png.Decode(bytes.NewReader(out))
			if err != nil {
				return fmt.Errorf("decode rendered chart: %w", err)
			}
			var stamped bytes.Buffer
			if err := png.Encode(&stamped, Stamp(img, caption)); err != nil {
				return fmt.Errorf("png encode %s: %w", path, err)
			}
			out = stamped.Bytes()
		}
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logger.Infof("wrote %s (%d series, %d bytes)", path, len(r.Series), len(out))
	return nil
}
