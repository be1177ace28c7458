package report

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	DefaultWidth  = 1200
	DefaultHeight = 600
	minWidth      = 480
	minHeight     = 240
)

// ClampSize applies defaults and lower bounds to a requested chart size.
// A zero height keeps the default 2:1 aspect ratio.
func ClampSize(w, h int) (int, int) {
	if w <= 0 {
		w = DefaultWidth
	}
	if w < minWidth {
		w = minWidth
	}
	if h <= 0 {
		h = w / 2
	}
	if h < minHeight {
		h = minHeight
	}
	return w, h
}

const (
	captionMargin  = 8
	captionPad     = 5
	captionLeading = 3
)

var (
	captionFace     = basicfont.Face7x13
	captionBackdrop = image.NewUniform(color.RGBA{A: 200})
)

// wrapCaption splits text into lines at most maxW pixels wide, breaking at
// spaces. Explicit newlines start a new line; a single word wider than maxW
// keeps a line of its own.
func wrapCaption(text string, maxW int) []string {
	d := &font.Drawer{Face: captionFace}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			if d.MeasureString(cur+" "+w).Ceil() > maxW {
				lines = append(lines, cur)
				cur = w
				continue
			}
			cur += " " + w
		}
		lines = append(lines, cur)
	}
	return lines
}

// Stamp writes a caption in the bottom-left corner of img, wrapped to the
// image width and stacked upwards on a dark backdrop so it stays below the
// upper-right legend.
func Stamp(img image.Image, text string) image.Image {
	if img == nil {
		return img
	}
	b := img.Bounds()
	lines := wrapCaption(text, b.Dx()-2*(captionMargin+captionPad))
	if len(lines) == 0 {
		return img
	}
	out := image.NewRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)

	m := captionFace.Metrics()
	lineH := m.Height.Ceil() + captionLeading
	d := &font.Drawer{Dst: out, Src: image.White, Face: captionFace}
	textW := 0
	for _, l := range lines {
		if w := d.MeasureString(l).Ceil(); w > textW {
			textW = w
		}
	}
	x := b.Min.X + captionMargin
	lastBaseline := b.Max.Y - captionMargin - m.Descent.Ceil()
	firstBaseline := lastBaseline - (len(lines)-1)*lineH
	box := image.Rect(x-captionPad, firstBaseline-m.Ascent.Ceil()-captionPad, x+textW+captionPad, lastBaseline+m.Descent.Ceil()+captionPad)
	draw.Draw(out, box.Intersect(b), captionBackdrop, image.Point{}, draw.Over)

	for i, l := range lines {
		d.Dot = fixed.P(x, firstBaseline+i*lineH)
		d.DrawString(l)
	}
	return out
}

// Blank returns a dark placeholder image, shown by the viewer when a chart
// cannot be decoded.
func Blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 18, G: 18, B: 18, A: 255}), image.Point{}, draw.Src)
	return img
}
