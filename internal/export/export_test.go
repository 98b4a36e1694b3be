package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/sortviz/internal/catalog"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/scale"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/sorting"
)

func testTrace(t *testing.T) Trace {
	t.Helper()
	input, err := sorting.NewSequence([]float64{2, 1}, scale.DefaultMaxSize)
	if err != nil {
		t.Fatalf("sequence failed: %v", err)
	}
	final, _ := sorting.NewSequence([]float64{1, 2}, scale.DefaultMaxSize)

	res := session.Result{
		RunID:     "run-1",
		Algorithm: catalog.Bubble,
		Status:    session.StatusCompleted,
		PaceMs:    70,
		Input:     input,
		Final:     final,
		Counts:    metrics.Counts{Comparisons: 1, Swaps: 1},
		Steps:     1,
	}
	steps := []sorting.Step{{
		Index:  1,
		Seq:    final,
		Marker: sorting.Marker{Active: 0, Comparison: 1},
		Counts: metrics.Counts{Comparisons: 1, Swaps: 1},
	}}
	return NewTrace(res, steps)
}

func TestWriteJSON(t *testing.T) {
	tr := testTrace(t)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, tr); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var back Trace
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if back.RunID != "run-1" {
		t.Errorf("expected run id run-1, got %s", back.RunID)
	}
	if back.Algorithm != catalog.Bubble {
		t.Errorf("expected bubble, got %s", back.Algorithm)
	}
	if len(back.Steps) != 1 || back.Steps[0].Swaps != 1 {
		t.Errorf("unexpected steps %+v", back.Steps)
	}
}

func TestSaveJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.json")
	if err := SaveJSON(path, testTrace(t)); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("trace.json not created")
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testTrace(t)); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header and one row, got %d rows", len(rows))
	}
	if rows[0][0] != "step" {
		t.Errorf("unexpected header %v", rows[0])
	}
	if rows[1][5] != "1 2" {
		t.Errorf("expected labels '1 2', got %q", rows[1][5])
	}
}

func TestBarsToSVG(t *testing.T) {
	seq, _ := sorting.NewSequence([]float64{3, 1, 2}, scale.DefaultMaxSize)
	svg := BarsToSVG(seq, sorting.Marker{Active: 0, Comparison: 2}, 300, 200, DefaultPalette)

	if !strings.HasPrefix(svg, "<?xml") {
		t.Error("expected xml header")
	}
	if n := strings.Count(svg, "<rect "); n != 4 {
		t.Errorf("expected background and 3 bars, got %d rects", n)
	}
	if !strings.Contains(svg, DefaultPalette.Active) || !strings.Contains(svg, DefaultPalette.Comparison) {
		t.Error("expected highlighted bars")
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("expected closing tag")
	}
}

func TestBarsToSVG_Empty(t *testing.T) {
	if svg := BarsToSVG(sorting.Sequence{}, sorting.NoMarker(), 300, 200, DefaultPalette); svg != "" {
		t.Error("expected empty output for empty sequence")
	}
}
