package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/sortviz/internal/catalog"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/export"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/pace"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/sorting"
	"github.com/san-kum/sortviz/internal/tui"
)

func runSort(cmd *cobra.Command, args []string) error {
	cfg, sess, err := setup(cmd, args, pace.Instant{})
	if err != nil {
		return err
	}
	id := cfg.AlgorithmID()
	d, _ := catalog.Describe(id)

	fmt.Printf("running %s on %d values...\n", strings.ToLower(d.Name), sess.Sequence().Len())

	_, res, err := record(context.Background(), sess, id, cfg.PaceMs, nil)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %.3fms\n", res.Counts.ElapsedMillis())
	fmt.Printf("run id: %s\n", res.RunID)
	fmt.Printf("input:  %s\n", formatValues(res.Input.Labels))
	fmt.Printf("sorted: %s\n", formatValues(res.Final.Labels))
	fmt.Printf("comparisons: %d\n", res.Counts.Comparisons)
	fmt.Printf("swaps: %d\n", res.Counts.Swaps)
	fmt.Printf("steps: %d\n", res.Steps)
	if len(res.Observed) > 0 {
		fmt.Println("\nmetrics:")
		names := make([]string, 0, len(res.Observed))
		for name := range res.Observed {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s: %.4f\n", name, res.Observed[name])
		}
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, sess, err := setup(cmd, args, pace.NewTimer())
	if err != nil {
		return err
	}
	id := cfg.AlgorithmID()
	d, _ := catalog.Describe(id)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := tui.NewWatchRenderer(os.Stdout, d.Name, frameRate)
	r.Start()
	defer r.Stop()

	_, res, err := record(ctx, sess, id, cfg.PaceMs, r.OnStep)
	if err != nil {
		return err
	}
	r.OnDone(res)
	return nil
}

func listAlgorithms(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tAVERAGE\tBEST\tWORST\tSPACE\tSTABLE")

	for _, id := range catalog.IDs() {
		d, err := catalog.Describe(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%t\n",
			d.ID,
			d.Name,
			d.TimeComplexity,
			d.Best,
			d.Worst,
			d.SpaceComplexity,
			d.Stable,
		)
	}

	return w.Flush()
}

func describeAlgorithm(cmd *cobra.Command, args []string) error {
	id, err := catalog.Parse(args[0])
	if err != nil {
		return err
	}
	d, err := catalog.Describe(id)
	if err != nil {
		return err
	}

	switch format {
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case "text":
	default:
		return fmt.Errorf("unknown format: %s (text, yaml, json)", format)
	}

	fmt.Println(d.Name)
	fmt.Println(d.Description)
	fmt.Println()
	fmt.Printf("time complexity:  %s\n", d.TimeComplexity)
	fmt.Printf("best case:        %s\n", d.Best)
	fmt.Printf("worst case:       %s\n", d.Worst)
	fmt.Printf("space complexity: %s\n", d.SpaceComplexity)
	fmt.Printf("stable:           %t\n", d.Stable)
	return nil
}

func recommend(cmd *cobra.Command, args []string) error {
	var size int
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("size must be a positive integer, got %q", args[0])
		}
		size = n
	} else {
		cfg, err := loadConfig(cmd, nil)
		if err != nil {
			return err
		}
		values, err := cfg.Values()
		if err != nil {
			return err
		}
		size = cfg.RandomSize
		if values != nil {
			size = len(values)
		}
	}

	fmt.Printf("size %d: %s\n", size, catalog.Recommend(size))
	return nil
}

func compareAlgorithms(cmd *cobra.Command, args []string) error {
	cfg, sess, err := setup(cmd, nil, pace.Instant{})
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

	values := sess.Sequence().Labels
	fmt.Printf("input (%d): %s\n\n", len(values), formatValues(values))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tCOMPARISONS\tSWAPS\tSTEPS\tPEAK INV\tTIME")

	for _, id := range ids {
		// each run commits its sorted output, so start from the same input
		if _, err := sess.SetInput(values); err != nil {
			return err
		}
		_, res, err := record(context.Background(), sess, id, cfg.PaceMs, nil)
		if err != nil {
			return err
		}
		d, _ := catalog.Describe(id)
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.0f\t%.3fms\n",
			d.Name,
			res.Counts.Comparisons,
			res.Counts.Swaps,
			res.Steps,
			res.Observed["peak_inversions"],
			res.Counts.ElapsedMillis(),
		)
	}

	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%s\n", catalog.Recommend(len(values)))
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	cfg, sess, err := setup(cmd, args, pace.Instant{})
	if err != nil {
		return err
	}
	id := cfg.AlgorithmID()
	d, _ := catalog.Describe(id)

	steps, res, err := record(context.Background(), sess, id, cfg.PaceMs, nil)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", res.RunID)
	fmt.Printf("algorithm: %s\n", d.Name)
	fmt.Printf("steps: %d\n\n", len(steps))

	if len(steps) == 0 {
		fmt.Println("no steps to plot (input already sorted)")
		return nil
	}

	comparisons := []float64{0}
	swaps := []float64{0}
	sortedness := []float64{100 * metrics.Sortedness(res.Input.Labels)}
	for _, s := range steps {
		comparisons = append(comparisons, float64(s.Counts.Comparisons))
		swaps = append(swaps, float64(s.Counts.Swaps))
		sortedness = append(sortedness, 100*metrics.Sortedness(s.Seq.Labels))
	}

	graph := asciigraph.PlotMany([][]float64{comparisons, swaps},
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green),
		asciigraph.Caption("comparisons (red) and swaps (green) by step"),
	)
	fmt.Println(graph)
	fmt.Println()

	graph = asciigraph.Plot(sortedness,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("sortedness % by step"),
	)
	fmt.Println(graph)
	fmt.Println()
	return nil
}

func traceFor(cmd *cobra.Command, args []string) (export.Trace, []sorting.Step, session.Result, error) {
	cfg, sess, err := setup(cmd, args, pace.Instant{})
	if err != nil {
		return export.Trace{}, nil, session.Result{}, err
	}
	steps, res, err := record(context.Background(), sess, cfg.AlgorithmID(), cfg.PaceMs, nil)
	if err != nil {
		return export.Trace{}, nil, session.Result{}, err
	}
	return export.NewTrace(res, steps), steps, res, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	trace, _, _, err := traceFor(cmd, args)
	if err != nil {
		return err
	}
	if err := export.SaveJSON(outPath, trace); err != nil {
		return err
	}
	if outPath != "" && outPath != "-" {
		fmt.Fprintf(os.Stderr, "exported %d steps to %s\n", len(trace.Steps), outPath)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	trace, _, _, err := traceFor(cmd, args)
	if err != nil {
		return err
	}
	out, err := openOut(outPath)
	if err != nil {
		return err
	}
	defer out.Close()
	return export.WriteCSV(out, trace)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, steps, res, err := traceFor(cmd, args)
	if err != nil {
		return err
	}

	seq, marker := res.Final, sorting.NoMarker()
	if stepIndex > 0 {
		if stepIndex > len(steps) {
			return fmt.Errorf("step %d out of range (run has %d steps)", stepIndex, len(steps))
		}
		s := steps[stepIndex-1]
		seq, marker = s.Seq, s.Marker
	}

	out, err := openOut(outPath)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = fmt.Fprintln(out, export.BarsToSVG(seq, marker, svgWidth, svgHeight, export.DefaultPalette))
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tALGORITHM\tDESCRIPTION\tINPUT")
	for _, name := range config.ListPresets() {
		p, _ := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, p.Algorithm, p.Description, p.Input)
	}
	return w.Flush()
}

func formatValues(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ", ")
}
