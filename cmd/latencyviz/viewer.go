package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/cobra"

	"github.com/DesmondYau/latencyviz/src/logging"
	"github.com/DesmondYau/latencyviz/src/report"
)

type viewerState struct {
	app    fyne.App
	window fyne.Window
	path   string
	img    *canvas.Image
	label  *widget.Label
}

// viewerTheme is the default theme pinned to its dark variant so the white
// chart stands out.
type viewerTheme struct{ fyne.Theme }

func (t viewerTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(name, theme.VariantDark)
}

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [png]",
		Short: "Open a saved comparison chart in the viewer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := report.DefaultOutput
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err != nil {
				return err
			}
			if !displayAvailable() {
				return fmt.Errorf("no display available to show %s", path)
			}
			return showChart(path)
		},
	}
}

// displayAvailable reports whether a window can be opened. On X11/Wayland
// systems that means DISPLAY or WAYLAND_DISPLAY is set.
func displayAvailable() bool {
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
	}
	return true
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}

// showChart opens the chart in a window and blocks until it is closed.
func showChart(path string) error {
	img, err := loadPNG(path)
	if err != nil {
		return fmt.Errorf("open chart: %w", err)
	}
	a := app.NewWithID("io.github.desmondyau.latencyviz")
	a.Settings().SetTheme(viewerTheme{Theme: theme.DefaultTheme()})
	w := a.NewWindow("Latency Comparison")

	st := &viewerState{app: a, window: w, path: path}
	st.img = canvas.NewImageFromImage(img)
	st.img.FillMode = canvas.ImageFillContain
	b := img.Bounds()
	st.img.SetMinSize(fyne.NewSize(float32(b.Dx())/2, float32(b.Dy())/2))
	st.label = widget.NewLabel(shortenPath(path, 60))

	reload := widget.NewButton("Reload", func() { reloadChart(st) })
	export := widget.NewButton("Export PNG…", func() { exportChartPNG(st, filepath.Base(st.path)) })
	top := container.NewHBox(st.label, layout.NewSpacer(), reload, export)
	w.SetContent(container.NewBorder(top, nil, nil, nil, st.img))
	w.Resize(fyne.NewSize(float32(b.Dx())+24, float32(b.Dy())+72))
	logging.Debugf("viewer open: %s (%dx%d)", path, b.Dx(), b.Dy())
	w.ShowAndRun()
	return nil
}

// reloadChart re-reads the file, e.g. after another run rewrote it.
func reloadChart(st *viewerState) {
	img, err := loadPNG(st.path)
	if err != nil {
		logging.Warnf("reload %s: %v", st.path, err)
		b := st.img.Image.Bounds()
		img = report.Blank(b.Dx(), b.Dy())
	}
	st.img.Image = img
	st.img.Refresh()
}

// export PNG
func exportChartPNG(st *viewerState, defaultName string) {
	if st == nil || st.window == nil || st.img == nil || st.img.Image == nil {
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := png.Encode(wc, st.img.Image); err != nil {
			dialog.ShowError(err, st.window)
		}
	}, st.window)
	fs.SetFileName(defaultName)
	fs.Show()
}

// shortenPath fits p into about n bytes for display by dropping leading
// directories. The file name is always kept whole.
func shortenPath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	const elided = ".../"
	parts := strings.Split(filepath.ToSlash(p), "/")
	out := parts[len(parts)-1]
	for i := len(parts) - 2; i >= 0; i-- {
		next := parts[i] + "/" + out
		if len(elided)+len(next) > n {
			break
		}
		out = next
	}
	return elided + out
}
