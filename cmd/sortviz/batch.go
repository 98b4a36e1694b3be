package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/sortviz/internal/automation"
	"github.com/san-kum/sortviz/internal/catalog"
)

var (
	sweepMin    int
	sweepMax    int
	sweepStride int
	sweepTrials int
)

var seriesColors = []asciigraph.AnsiColor{asciigraph.Red, asciigraph.Green, asciigraph.Yellow, asciigraph.Blue, asciigraph.Magenta}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	log, err := cliLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	if sc.Seed == 0 {
		sc.Seed = cfg.Seed
	}

	results, err := automation.NewRunner(cfg.MaxSize, log).RunScenario(context.Background(), sc)
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Println(sc.Description)
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tALGORITHM\tSIZE\tCOMPARISONS\tSWAPS\tSTEPS\tSORTED")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\t%s\n",
			i+1,
			r.Algorithm,
			len(r.Input),
			r.Outcome.Counts.Comparisons,
			r.Outcome.Counts.Swaps,
			r.Outcome.Steps,
			formatValues(r.Outcome.Seq.Labels),
		)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	log, err := cliLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	ids := catalog.IDs()
	if len(args) > 0 {
		ids = ids[:0]
		for _, a := range args {
			id, err := catalog.Parse(a)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
	}

	results, err := automation.NewRunner(cfg.MaxSize, log).RunSweep(context.Background(), automation.SizeSweep{
		Algorithms: ids,
		MinSize:    sweepMin,
		MaxSize:    sweepMax,
		Stride:     sweepStride,
		Trials:     sweepTrials,
		Seed:       cfg.Seed,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tALGORITHM\tCOMPARISONS\tSWAPS\tSTEPS")
	series := make(map[catalog.ID][]float64, len(ids))
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%.1f\t%.1f\t%.1f\n", r.Size, r.Algorithm, r.Comparisons, r.Swaps, r.Steps)
		series[r.Algorithm] = append(series[r.Algorithm], r.Comparisons)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	data := make([][]float64, 0, len(ids))
	colors := make([]asciigraph.AnsiColor, 0, len(ids))
	caption := "mean comparisons by size:"
	for i, id := range ids {
		if len(series[id]) < 2 {
			continue
		}
		data = append(data, series[id])
		colors = append(colors, seriesColors[i%len(seriesColors)])
		caption += fmt.Sprintf(" %s", id)
	}
	if len(data) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println(asciigraph.PlotMany(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(caption),
	))
	return nil
}
