package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/sortviz/internal/catalog"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/sorting"
)

// Trace is one run with every step it published.
type Trace struct {
	RunID     string             `json:"run_id"`
	Algorithm catalog.ID         `json:"algorithm"`
	Status    session.Status     `json:"status"`
	PaceMs    int                `json:"pace_ms"`
	StartedAt time.Time          `json:"started_at"`
	Input     []float64          `json:"input"`
	Final     []float64          `json:"final"`
	Counts    metrics.Counts     `json:"counts"`
	ElapsedMs float64            `json:"elapsed_ms"`
	Observed  map[string]float64 `json:"observed,omitempty"`
	Steps     []TraceStep        `json:"steps"`
}

type TraceStep struct {
	Index       int       `json:"index"`
	Active      int       `json:"active"`
	Comparison  int       `json:"comparison"`
	Comparisons int       `json:"comparisons"`
	Swaps       int       `json:"swaps"`
	Labels      []float64 `json:"labels"`
}

func NewTrace(res session.Result, steps []sorting.Step) Trace {
	t := Trace{
		RunID:     res.RunID,
		Algorithm: res.Algorithm,
		Status:    res.Status,
		PaceMs:    res.PaceMs,
		StartedAt: res.StartedAt,
		Input:     res.Input.Labels,
		Final:     res.Final.Labels,
		Counts:    res.Counts,
		ElapsedMs: res.Counts.ElapsedMillis(),
		Observed:  res.Observed,
		Steps:     make([]TraceStep, len(steps)),
	}
	for i, s := range steps {
		t.Steps[i] = TraceStep{
			Index:       s.Index,
			Active:      s.Marker.Active,
			Comparison:  s.Marker.Comparison,
			Comparisons: s.Counts.Comparisons,
			Swaps:       s.Counts.Swaps,
			Labels:      s.Seq.Labels,
		}
	}
	return t
}

func WriteJSON(w io.Writer, t Trace) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(t)
}

// SaveJSON writes the trace to path, or to stdout when path is empty or "-".
func SaveJSON(path string, t Trace) error {
	if path == "" || path == "-" {
		return WriteJSON(os.Stdout, t)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, t)
}

var csvHeader = []string{"step", "active", "comparison", "comparisons", "swaps", "labels"}

// WriteCSV writes one row per step. Labels are joined with spaces.
func WriteCSV(w io.Writer, t Trace) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, s := range t.Steps {
		row := []string{
			strconv.Itoa(s.Index),
			strconv.Itoa(s.Active),
			strconv.Itoa(s.Comparison),
			strconv.Itoa(s.Comparisons),
			strconv.Itoa(s.Swaps),
			joinFloats(s.Labels),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func joinFloats(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}
