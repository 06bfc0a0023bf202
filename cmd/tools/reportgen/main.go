// Command reportgen computes seller performance reports from a JSON dataset
// file and writes the result to stdout.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/salesboard/backend-insight/internal/insight"
	"github.com/salesboard/backend-insight/internal/report"
	"github.com/salesboard/backend-insight/internal/store"
)

func main() {
	var (
		input   = flag.String("input", "", "path to the dataset JSON file (defaults to stdin)")
		revenue = flag.String("revenue", "discounted", "revenue strategy: discounted or catalog")
		bonus   = flag.String("bonus", "tiered", "bonus strategy: tiered or flat")
		pretty  = flag.Bool("pretty", true, "indent the JSON output")
		stats   = flag.Bool("stats", false, "print skipped-row counters to stderr")
	)
	flag.Parse()

	if err := run(*input, *revenue, *bonus, *pretty, *stats); err != nil {
		fmt.Fprintln(os.Stderr, "reportgen:", err)
		os.Exit(1)
	}
}

func run(input, revenue, bonus string, pretty, printStats bool) error {
	in := os.Stdin
	if input != "" {
		f, err := os.Open(input)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	dataset, err := store.DecodeDataset(in)
	if err != nil {
		return err
	}

	opts, err := insight.StrategyNames{Revenue: revenue, Bonus: bonus}.Options()
	if err != nil {
		return err
	}

	rows, stats, err := report.AnalyzeWithStats(dataset, opts)
	if err != nil {
		return err
	}
	if printStats {
		fmt.Fprintf(os.Stderr, "skipped records: %d, skipped items: %d\n", stats.SkippedRecords, stats.SkippedItems)
	}

	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(rows)
}
