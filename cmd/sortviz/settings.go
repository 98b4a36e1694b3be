package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/sortviz/internal/catalog"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/pace"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/sorting"
)

// loadConfig merges defaults, the preset, the config file and changed flags,
// in that order. A positional argument names the algorithm.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, ok := config.GetPreset(preset)
		if !ok {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		p.Apply(cfg)
	}

	// config file overrides preset
	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = input
	}
	if random {
		cfg.Input = ""
	}
	if flags.Changed("pace") {
		cfg.PaceMs = paceMs
	}
	if flags.Changed("max-size") {
		cfg.MaxSize = maxSize
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if cfg.Seed == 0 || flags.Changed("seed") {
		cfg.Seed = seed
	}
	if len(args) > 0 {
		cfg.Algorithm = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func cliLogger(level string) (*logrus.Logger, error) {
	return logging.New(level, os.Stderr)
}

// tuiLogger keeps the terminal clean while the TUI owns it.
func tuiLogger(level string) (*logrus.Logger, io.Closer, error) {
	if logFile == "" {
		return logging.Discard(), nil, nil
	}
	return logging.ToFile(level, logFile)
}

// newSession builds a session holding the configured input, or a random
// array when none is configured.
func newSession(cfg *config.Config, p pace.Pacer, log logrus.FieldLogger) (*session.Session, error) {
	sess := session.New(session.Options{
		MaxSize:    cfg.MaxSize,
		RandomSize: cfg.RandomSize,
		RandomMax:  cfg.RandomMax,
		Seed:       cfg.Seed,
		Pacer:      p,
		Logger:     log,
	})

	values, err := cfg.Values()
	if err != nil {
		return nil, err
	}
	if values == nil {
		_, err = sess.Randomize()
	} else {
		_, err = sess.SetInput(values)
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// setup is the common prologue of the headless commands.
func setup(cmd *cobra.Command, args []string, p pace.Pacer) (*config.Config, *session.Session, error) {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return nil, nil, err
	}
	log, err := cliLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	sess, err := newSession(cfg, p, log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, sess, nil
}

// record runs id to the end and keeps every step.
func record(ctx context.Context, sess *session.Session, id catalog.ID, paceMs int, onStep func(sorting.Step)) ([]sorting.Step, session.Result, error) {
	events, err := sess.RunSort(ctx, id, paceMs)
	if err != nil {
		return nil, session.Result{}, err
	}

	var steps []sorting.Step
	var res *session.Result
	for ev := range events {
		switch ev.Kind {
		case session.EventStep:
			steps = append(steps, ev.Step)
			if onStep != nil {
				onStep(ev.Step)
			}
		case session.EventDone:
			res = ev.Result
		}
	}
	if res == nil {
		return steps, session.Result{}, errors.New("run ended without a result")
	}
	if res.Status == session.StatusFailed {
		return steps, *res, res.Err
	}
	return steps, *res, nil
}

// openOut returns stdout for an empty path or "-".
func openOut(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
