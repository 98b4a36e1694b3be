package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/san-kum/sortviz/internal/catalog"
	"github.com/san-kum/sortviz/internal/pace"
	"github.com/san-kum/sortviz/internal/scale"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/sorting"
)

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, values ...float64) Model {
	t.Helper()
	sess := session.New(session.Options{Seed: 7, Pacer: pace.Instant{}, Buffer: 4})
	if _, err := sess.SetInput(values); err != nil {
		t.Fatalf("set input failed: %v", err)
	}
	return NewModel(sess, Options{Algorithm: catalog.Insertion, PaceMs: 70})
}

// pump feeds cmd results back into the model until no command is left.
func pump(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		if i > 10000 {
			t.Fatal("run did not finish")
		}
		msg := cmd()
		if msg == nil {
			return m
		}
		next, c := m.Update(msg)
		m, cmd = next.(Model), c
	}
	return m
}

func TestRenderBars(t *testing.T) {
	seq, err := sorting.NewSequence([]float64{100, 1}, scale.DefaultMaxSize)
	if err != nil {
		t.Fatalf("sequence failed: %v", err)
	}
	out := RenderBars(seq, sorting.NoMarker(), ThemeDefault, 9)

	lines := strings.Split(out, "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 9 bar rows and a label row, got %d lines", len(lines))
	}
	if n := strings.Count(out, "█"); n != (9+1)*barWidth {
		t.Errorf("expected %d blocks, got %d", (9+1)*barWidth, n)
	}
	if !strings.Contains(lines[9], "100") {
		t.Errorf("expected labels under bars, got %q", lines[9])
	}
}

func TestRenderBars_Empty(t *testing.T) {
	if out := RenderBars(sorting.Sequence{}, sorting.NoMarker(), ThemeDefault, 5); !strings.Contains(out, "no input") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestFitLabel(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{5, " 5 "},
		{42, "42 "},
		{100, "100"},
	}
	for _, tt := range tests {
		if got := fitLabel(tt.in); got != tt.want {
			t.Errorf("fitLabel(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := fitLabel(12345); len([]rune(got)) != barWidth {
		t.Errorf("expected width %d, got %q", barWidth, got)
	}
}

func TestGradientText(t *testing.T) {
	lipgloss.SetColorProfile(termenv.TrueColor)
	defer lipgloss.SetColorProfile(termenv.Ascii)

	out := GradientText("é→x", lipgloss.Color("#000000"), lipgloss.Color("#ffffff"))
	for _, want := range []string{"38;2;0;0;0", "38;2;127;127;127", "38;2;255;255;255"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected color %s in %q", want, out)
		}
	}
	if n := strings.Count(out, "38;2;"); n != 3 {
		t.Errorf("expected one color per rune, got %d", n)
	}

	if GradientText("", ThemeDefault.Primary, ThemeDefault.Secondary) != "" {
		t.Error("expected empty output for empty text")
	}
}

func TestAnimatedSpinner(t *testing.T) {
	if AnimatedSpinner(0) != AnimatedSpinner(len(spinnerFrames)) {
		t.Error("expected spinner to wrap")
	}
	if AnimatedSpinner(-1) == "" {
		t.Error("expected a glyph for negative frames")
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != "default" {
		t.Error("unknown theme should fall back to default")
	}
	th := ThemeDefault
	for range Themes {
		th = NextTheme(th)
	}
	if th.Name != ThemeDefault.Name {
		t.Errorf("expected cycle back to default, got %s", th.Name)
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names mismatch")
	}
}

func TestModelSortsOnStart(t *testing.T) {
	m := newTestModel(t, 5, 2, 8, 1, 9)

	next, cmd := m.Update(keyPress("s"))
	m = next.(Model)
	if !m.running {
		t.Fatal("expected model to be running")
	}
	m = pump(t, m, cmd)

	if m.running {
		t.Error("expected run to finish")
	}
	if m.result == nil || m.result.Status != session.StatusCompleted {
		t.Fatalf("expected completed result, got %+v", m.result)
	}
	want := []float64{1, 2, 5, 8, 9}
	for i, v := range want {
		if m.seq.Labels[i] != v {
			t.Fatalf("expected %v, got %v", want, m.seq.Labels)
		}
	}
	if m.sortedness != 1 {
		t.Errorf("expected sortedness 1, got %f", m.sortedness)
	}

	view := m.View()
	for _, s := range []string{"Insertion Sort", "Comparisons", "Swaps"} {
		if !strings.Contains(view, s) {
			t.Errorf("expected %q in view", s)
		}
	}
}

func TestModelKeys(t *testing.T) {
	m := newTestModel(t, 3, 1, 2)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if m.algorithm != catalog.Quick {
		t.Errorf("expected quick after insertion, got %s", m.algorithm)
	}

	next, _ = m.Update(keyPress("+"))
	m = next.(Model)
	if m.paceMs != 60 {
		t.Errorf("expected pace 60, got %d", m.paceMs)
	}

	next, _ = m.Update(keyPress("t"))
	m = next.(Model)
	if m.theme.Name == ThemeDefault.Name {
		t.Error("expected theme to change")
	}

	next, _ = m.Update(keyPress("r"))
	m = next.(Model)
	if m.seq.Len() != scale.DefaultRandomSize {
		t.Errorf("expected %d random values, got %d", scale.DefaultRandomSize, m.seq.Len())
	}
}

func TestModelRejectsBadInput(t *testing.T) {
	m := newTestModel(t, 3, 1, 2)

	next, _ := m.Update(keyPress("i"))
	m = next.(Model)
	if !m.editing {
		t.Fatal("expected edit mode")
	}
	m.input.SetValue("5, two, 8")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if m.editing {
		t.Error("expected edit mode to end")
	}
	if m.errMsg == "" {
		t.Error("expected inline error")
	}
	if m.seq.Len() != 3 || m.seq.Labels[0] != 3 {
		t.Errorf("expected previous input kept, got %v", m.seq.Labels)
	}
}
