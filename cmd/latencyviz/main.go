// latencyviz compares orderbook benchmark latency files.
//
// Each input is a headerless "OrderType,latency_ns" CSV. For every input the
// latencies at or below the 5000 ns cutoff are summarized (median, sample
// variance, excluded count) and drawn as a filled histogram with a dotted
// median marker; all inputs share one chart, saved as
// latency_filled_histogram_comparison.png and then shown in a viewer window
// when a display is available.
//
// Without arguments the three benchmark_time_model{1,2,3}.csv files in the
// working directory are compared.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
