package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/gops/agent"
	"github.com/spf13/cobra"

	"github.com/san-kum/sortviz/internal/viz"
)

var (
	// Config file
	configFile string
	// Preset name
	preset string
	// Input selection
	input     string
	random    bool
	seed      int64
	paceMs    int
	maxSize   int
	theme     string
	logLevel  string
	logFile   string
	frameRate int
	diag      bool
	// Export options
	outPath   string
	stepIndex int
	svgWidth  int
	svgHeight int
	format    string
)

// main registers the commands and runs the interactive visualizer when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:           "sortviz",
		Short:         "step-by-step sorting algorithm visualizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, args)
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if diag {
				if err := agent.Listen(agent.Options{ShutdownCleanup: true}); err != nil {
					fmt.Fprintln(os.Stderr, "gops agent:", err)
				}
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if diag {
				agent.Close()
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use a named input preset")
	pf.StringVar(&input, "input", "", "comma separated numbers to sort")
	pf.BoolVar(&random, "random", false, "ignore configured input and generate a random array")
	pf.Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	pf.IntVar(&paceMs, "pace", 70, "milliseconds between steps")
	pf.IntVar(&maxSize, "max-size", 30, "largest accepted input")
	pf.StringVar(&theme, "theme", "default", "color theme")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "log file for interactive mode")
	pf.BoolVar(&diag, "diag", false, "start a gops agent for runtime diagnostics")

	runCmd := &cobra.Command{
		Use:   "run [algorithm]",
		Short: "sort once without pacing and print the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSort,
	}

	liveCmd := &cobra.Command{
		Use:   "live [algorithm]",
		Short: "open the visualizer with an algorithm selected",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTUI,
	}

	watchCmd := &cobra.Command{
		Use:   "watch [algorithm]",
		Short: "animate a sort with plain terminal output",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runWatch,
	}
	watchCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate cap")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list algorithms",
		RunE:  listAlgorithms,
	}

	describeCmd := &cobra.Command{
		Use:   "describe [algorithm]",
		Short: "show an algorithm's complexity and stability",
		Args:  cobra.ExactArgs(1),
		RunE:  describeAlgorithm,
	}
	describeCmd.Flags().StringVar(&format, "format", "text", "output format (text, yaml, json)")

	recommendCmd := &cobra.Command{
		Use:   "recommend [size]",
		Short: "suggest an algorithm for an input size",
		Args:  cobra.MaximumNArgs(1),
		RunE:  recommend,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [algorithm...]",
		Short: "compare algorithms on the same input",
		RunE:  compareAlgorithms,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [algorithm]",
		Short: "plot counters and sortedness per step",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [algorithm]",
		Short: "export a step trace to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [algorithm]",
		Short: "export a step trace to CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [algorithm]",
		Short: "render one step as an SVG bar chart",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&stepIndex, "step", 0, "step to render (0 for the final state)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 600, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 300, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list input presets",
		RunE:  listPresets,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario of sorts",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [algorithm...]",
		Short: "average counters over random inputs of growing size",
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&sweepMin, "min", 2, "smallest input size")
	sweepCmd.Flags().IntVar(&sweepMax, "max", 30, "largest input size")
	sweepCmd.Flags().IntVar(&sweepStride, "stride", 2, "size increment")
	sweepCmd.Flags().IntVar(&sweepTrials, "trials", 5, "random inputs per size")

	rootCmd.AddCommand(runCmd, liveCmd, watchCmd, listCmd, describeCmd, recommendCmd, compareCmd, plotCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, presetsCmd, scenarioCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	log, closer, err := tuiLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	sess, err := newSession(cfg, nil, log)
	if err != nil {
		return err
	}
	return viz.Run(sess, viz.Options{
		Algorithm: cfg.AlgorithmID(),
		PaceMs:    cfg.PaceMs,
		Theme:     cfg.Theme,
		Logger:    log,
	})
}
