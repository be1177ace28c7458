package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/DesmondYau/latencyviz/src/logging"
	"github.com/DesmondYau/latencyviz/src/report"
)

// options are the resolved settings of one report run (flags > env > config file > defaults).
type options struct {
	Out         string
	Renderer    string
	Width       int
	Height      int
	Caption     string
	MetricsFile string
	NoShow      bool
}

func optionsFrom(v *viper.Viper) options {
	return options{
		Out:         v.GetString("out"),
		Renderer:    v.GetString("renderer"),
		Width:       v.GetInt("width"),
		Height:      v.GetInt("height"),
		Caption:     v.GetString("caption"),
		MetricsFile: v.GetString("metrics-file"),
		NoShow:      v.GetBool("no-show"),
	}
}

// newRootCmd builds the command tree. Each call gets its own viper instance.
func newRootCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "latencyviz [csv files...]",
		Short: "Compare orderbook latency distributions as an overlaid filled histogram",
		Long: `latencyviz reads headerless OrderType,latency CSV files, prints per-file
statistics (median, sample variance, rows above the cutoff) and saves an
overlaid filled-histogram chart. Without arguments it compares
` + strings.Join(report.DefaultInputs, ", ") + `.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logging.SetOutput(cmd.ErrOrStderr())
			return initConfig(v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.OutOrStdout(), optionsFrom(v), inputsOrDefault(v, args))
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "config file (default ./latencyviz.yaml when present)")
	pf.String("log-level", "info", "log level (debug|info|warn|error)")

	f := cmd.Flags()
	f.StringP("out", "o", report.DefaultOutput, "output image; .png or .svg (gonum also writes .pdf, .eps, .jpg, .tif)")
	f.String("renderer", report.RendererGoChart, "chart renderer: gochart or gonum")
	f.Int("width", report.DefaultWidth, "image width in pixels")
	f.Int("height", report.DefaultHeight, "image height in pixels")
	f.String("caption", "", "caption stamped at the bottom-left of PNG output")
	f.String("metrics-file", "", "also write the statistics as a Prometheus text file")
	f.Bool("no-show", false, "do not open the viewer window")

	_ = v.BindPFlags(pf)
	_ = v.BindPFlags(f)
	v.SetEnvPrefix("LATENCYVIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd.AddCommand(newStatsCmd(v), newGenerateCmd(v), newViewCmd())
	return cmd
}

// initConfig reads the optional config file and applies the log level.
func initConfig(v *viper.Viper) error {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("latencyviz")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("read config: %w", err)
			}
		}
	}
	if lvl := v.GetString("log-level"); !logging.SetLevel(lvl) {
		logging.Warnf("unknown log level %q, keeping %s", lvl, logging.GetLevel())
	}
	if used := v.ConfigFileUsed(); used != "" {
		logging.Debugf("config file: %s", used)
	}
	return nil
}

// inputsOrDefault resolves the input list: arguments, then the config file's
// inputs key, then the built-in benchmark files.
func inputsOrDefault(v *viper.Viper, args []string) []string {
	if len(args) > 0 {
		return args
	}
	if in := v.GetStringSlice("inputs"); len(in) > 0 {
		return in
	}
	return report.DefaultInputs
}

func runReport(w io.Writer, opts options, inputs []string) error {
	rd, err := report.NewRenderer(opts.Renderer, opts.Width, opts.Height, opts.Out)
	if err != nil {
		return err
	}
	r, err := report.Build(inputs)
	if err != nil {
		return err
	}
	if logging.Enabled(logging.LevelDebug) {
		logging.Debugf("summaries: %s", pp.Sprint(r.Summaries()))
	}
	if err := report.Save(r, rd, opts.Out, opts.Caption); err != nil {
		return err
	}
	fmt.Fprintln(w, report.Table(r))

	if opts.MetricsFile != "" {
		if err := report.WriteMetrics(r, opts.MetricsFile); err != nil {
			return err
		}
		logging.Infof("wrote metrics %s", opts.MetricsFile)
	}

	switch {
	case opts.NoShow:
		return nil
	case !strings.EqualFold(filepath.Ext(opts.Out), ".png"):
		logging.Infof("viewer shows PNG only; open %s externally", opts.Out)
		return nil
	case !displayAvailable():
		logging.Infof("no display available, not opening viewer for %s", opts.Out)
		return nil
	}
	return showChart(opts.Out)
}
