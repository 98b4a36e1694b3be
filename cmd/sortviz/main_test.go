package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/sortviz/internal/catalog"
	"github.com/san-kum/sortviz/internal/pace"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/sorting"
)

func resetFlags() {
	configFile, preset, input = "", "", ""
	random = false
	seed = 42
}

func TestLoadConfig_Preset(t *testing.T) {
	resetFlags()
	preset = "example"
	defer resetFlags()

	cfg, err := loadConfig(&cobra.Command{}, nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.AlgorithmID() != catalog.Insertion {
		t.Errorf("expected insertion, got %s", cfg.Algorithm)
	}
	if cfg.Input != "5, 2, 8, 1, 9" {
		t.Errorf("unexpected input %q", cfg.Input)
	}
	if cfg.Seed != 42 {
		t.Errorf("expected seed from flag, got %d", cfg.Seed)
	}

	cfg, err = loadConfig(&cobra.Command{}, []string{"merge"})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.AlgorithmID() != catalog.Merge {
		t.Errorf("expected argument to select merge, got %s", cfg.Algorithm)
	}
}

func TestLoadConfig_FileOverPreset(t *testing.T) {
	resetFlags()
	defer resetFlags()

	configFile = filepath.Join(t.TempDir(), "sortviz.yaml")
	if err := os.WriteFile(configFile, []byte("pace_ms: 150\ntheme: ocean\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	preset = "example"

	cfg, err := loadConfig(&cobra.Command{}, nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.PaceMs != 150 || cfg.Theme != "ocean" {
		t.Errorf("expected file values, got pace %d theme %s", cfg.PaceMs, cfg.Theme)
	}
	if cfg.AlgorithmID() != catalog.Insertion {
		t.Errorf("expected preset algorithm insertion, got %s", cfg.Algorithm)
	}
	if cfg.Input != "5, 2, 8, 1, 9" {
		t.Errorf("expected preset input, got %q", cfg.Input)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	resetFlags()
	preset = "nope"
	defer resetFlags()

	if _, err := loadConfig(&cobra.Command{}, nil); err == nil {
		t.Error("expected error for unknown preset")
	}

	preset = ""
	if _, err := loadConfig(&cobra.Command{}, []string{"bogo"}); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}

func TestRecord(t *testing.T) {
	resetFlags()
	preset = "reversed"
	defer resetFlags()

	cfg, err := loadConfig(&cobra.Command{}, nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	sess, err := newSession(cfg, pace.Instant{}, nil)
	if err != nil {
		t.Fatalf("session failed: %v", err)
	}

	var seen int
	steps, res, err := record(context.Background(), sess, cfg.AlgorithmID(), cfg.PaceMs, func(sorting.Step) { seen++ })
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if res.Status != session.StatusCompleted {
		t.Errorf("expected completed, got %s", res.Status)
	}
	if len(steps) != res.Steps || seen != res.Steps {
		t.Errorf("expected %d steps, got %d recorded and %d seen", res.Steps, len(steps), seen)
	}
	if formatValues(res.Final.Labels) != "1, 2, 3, 4, 5, 6, 7, 8, 9, 10" {
		t.Errorf("unexpected result %s", formatValues(res.Final.Labels))
	}
}
