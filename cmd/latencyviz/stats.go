package main

import (
	"fmt"
	"io"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/DesmondYau/latencyviz/src/latency"
	"github.com/DesmondYau/latencyviz/src/logging"
	"github.com/DesmondYau/latencyviz/src/report"
)

func newStatsCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [csv files...]",
		Short: "Print per-file latency statistics without drawing a chart",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd.OutOrStdout(), inputsOrDefault(v, args), v.GetBool("by-type"))
		},
	}
	cmd.Flags().Bool("by-type", false, "add one row per order type (Add, Modify, Cancel) under each file")
	_ = v.BindPFlag("by-type", cmd.Flags().Lookup("by-type"))
	return cmd
}

func runStats(w io.Writer, inputs []string, byType bool) error {
	var sums []latency.Summary
	for _, p := range inputs {
		ds, err := latency.LoadCSV(p)
		if err != nil {
			return err
		}
		sums = append(sums, latency.Summarize(ds, latency.Cutoff))
		if byType {
			sums = append(sums, latency.BreakdownByOrderType(ds, latency.Cutoff)...)
		}
	}
	if logging.Enabled(logging.LevelDebug) {
		logging.Debugf("summaries: %s", pp.Sprint(sums))
	}
	fmt.Fprintln(w, report.SummaryTable(sums))
	return nil
}
