package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/DesmondYau/latencyviz/src/latency"
	"github.com/DesmondYau/latencyviz/src/logging"
)

type generateOptions struct {
	Rows int
	Seed int64
	Step float64
	Tail float64
}

func newGenerateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [csv files...]",
		Short: "Write synthetic benchmark CSVs (Add/Modify/Cancel in a 65/10/25 mix)",
		Long: `generate writes headerless OrderType,latency files shaped like the orderbook
benchmark output, for demos and for trying the chart without a benchmark run.
File i uses seed+i and scales latencies by 1+step*i, so successive files
read as progressively slower models. Existing files are overwritten.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := generateOptions{
				Rows: v.GetInt("rows"),
				Seed: v.GetInt64("seed"),
				Step: v.GetFloat64("step"),
				Tail: v.GetFloat64("tail"),
			}
			return runGenerate(cmd.OutOrStdout(), inputsOrDefault(v, args), opts)
		},
	}
	f := cmd.Flags()
	f.Int("rows", 100000, "rows per file")
	f.Int64("seed", 1, "random seed of the first file")
	f.Float64("step", 0.25, "latency scale added per successive file")
	f.Float64("tail", 0.002, "share of rows above the cutoff")
	for _, name := range []string{"rows", "seed", "step", "tail"} {
		_ = v.BindPFlag(name, f.Lookup(name))
	}
	return cmd
}

func runGenerate(w io.Writer, paths []string, opts generateOptions) error {
	for i, p := range paths {
		ds, err := latency.Generate(p, latency.GenerateOptions{
			Rows:     opts.Rows,
			Seed:     opts.Seed + int64(i),
			Scale:    1 + opts.Step*float64(i),
			TailRate: opts.Tail,
		})
		if err != nil {
			return err
		}
		if err := latency.SaveCSV(p, ds); err != nil {
			return err
		}
		logging.Debugf("generated %s rows=%d", p, ds.Len())
		fmt.Fprintf(w, "wrote %s (%d rows)\n", p, ds.Len())
	}
	return nil
}
