package viz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/sortviz/internal/catalog"
	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/sorting"
)

const (
	MinPaceMs  = 10
	MaxPaceMs  = 2000
	paceStepMs = 10

	barRows         = 12
	historyCapacity = 600
)

type stepMsg struct {
	events <-chan session.Event
	step   sorting.Step
}

type doneMsg struct {
	events <-chan session.Event
	result session.Result
}

// waitEvent reads one event off a run's channel. Messages carry the channel
// so events from a superseded run are drained but not applied.
func waitEvent(events <-chan session.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		if ev.Kind == session.EventDone {
			return doneMsg{events: events, result: *ev.Result}
		}
		return stepMsg{events: events, step: ev.Step}
	}
}

// Options configure a Model.
type Options struct {
	Algorithm catalog.ID
	PaceMs    int
	Theme     string
	Logger    logrus.FieldLogger
}

// Model is the interactive sorting visualizer.
type Model struct {
	sess      *session.Session
	log       logrus.FieldLogger
	keys      keyMap
	help      help.Model
	input     textinput.Model
	editing   bool
	theme     Theme
	st        styles
	algorithm catalog.ID
	paceMs    int

	seq        sorting.Sequence
	marker     sorting.Marker
	counts     metrics.Counts
	steps      int
	events     <-chan session.Event
	running    bool
	cancelling bool
	result     *session.Result
	history    []float64
	swaps      []float64
	sortedness float64

	status string
	errMsg string
	frame  int
	width  int
}

func NewModel(sess *session.Session, opts Options) Model {
	if opts.Algorithm == "" {
		opts.Algorithm = catalog.Bubble
	}
	if opts.PaceMs < MinPaceMs {
		opts.PaceMs = MinPaceMs
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	in := textinput.New()
	in.Placeholder = "5, 2, 8, 1, 9"
	in.Prompt = "input> "
	in.CharLimit = 256
	in.Width = 60

	theme := GetTheme(opts.Theme)
	seq := sess.Sequence()
	return Model{
		sess:       sess,
		log:        opts.Logger,
		keys:       defaultKeys(),
		help:       help.New(),
		input:      in,
		theme:      theme,
		st:         newStyles(theme),
		algorithm:  opts.Algorithm,
		paceMs:     opts.PaceMs,
		seq:        seq,
		marker:     sorting.NoMarker(),
		sortedness: metrics.Sortedness(seq.Labels),
		history:    make([]float64, 0, historyCapacity),
		swaps:      make([]float64, 0, historyCapacity),
		status:     "ready",
		width:      80,
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case stepMsg:
		if msg.events == m.events {
			m.applyStep(msg.step)
		}
		return m, waitEvent(msg.events)
	case doneMsg:
		if msg.events == m.events {
			m.applyDone(msg.result)
		}
		return m, nil
	case tea.KeyMsg:
		if m.editing {
			return m.editKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stopRun()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Start):
		return m.start()
	case key.Matches(msg, m.keys.Cancel):
		if m.sess.Cancel() {
			m.cancelling = true
			m.status = "cancelling"
		}
	case key.Matches(msg, m.keys.Randomize):
		m.stopRun()
		seq, err := m.sess.Randomize()
		m.setInput(seq, err)
	case key.Matches(msg, m.keys.Edit):
		m.editing = true
		m.errMsg = ""
		m.input.SetValue(joinLabels(m.seq.Labels))
		m.input.CursorEnd()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Next):
		m.algorithm = catalog.Next(m.algorithm)
	case key.Matches(msg, m.keys.Prev):
		m.algorithm = catalog.Prev(m.algorithm)
	case key.Matches(msg, m.keys.Faster):
		m.paceMs = max(MinPaceMs, m.paceMs-paceStepMs)
	case key.Matches(msg, m.keys.Slower):
		m.paceMs = min(MaxPaceMs, m.paceMs+paceStepMs)
	case key.Matches(msg, m.keys.Theme):
		m.theme = NextTheme(m.theme)
		m.st = newStyles(m.theme)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) editKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.editing = false
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Apply):
		m.editing = false
		m.input.Blur()
		m.stopRun()
		seq, err := m.sess.SetInputText(m.input.Value())
		m.setInput(seq, err)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) start() (Model, tea.Cmd) {
	if m.running {
		return m, nil
	}
	events, err := m.sess.RunSort(context.Background(), m.algorithm, m.paceMs)
	if err != nil {
		m.errMsg = err.Error()
		m.log.WithError(err).Warn("start rejected")
		return m, nil
	}
	m.events = events
	m.running = true
	m.cancelling = false
	m.result = nil
	m.errMsg = ""
	m.steps = 0
	m.counts = metrics.Counts{}
	m.history = m.history[:0]
	m.swaps = m.swaps[:0]
	m.status = "sorting"
	return m, waitEvent(events)
}

// stopRun cancels an active run and waits for the session to go idle. The
// run's remaining events are drained by its pending waitEvent command.
func (m *Model) stopRun() {
	if !m.running {
		return
	}
	m.sess.Cancel()
	m.sess.Wait()
	m.running = false
	m.cancelling = false
	m.events = nil
	m.marker = sorting.NoMarker()
	m.status = "cancelled"
}

func (m *Model) setInput(seq sorting.Sequence, err error) {
	if err != nil {
		m.errMsg = inputError(err)
		return
	}
	m.errMsg = ""
	m.seq = seq
	m.marker = sorting.NoMarker()
	m.counts = metrics.Counts{}
	m.steps = 0
	m.result = nil
	m.history = m.history[:0]
	m.swaps = m.swaps[:0]
	m.sortedness = metrics.Sortedness(seq.Labels)
	m.status = "ready"
}

func (m *Model) applyStep(s sorting.Step) {
	m.seq = s.Seq
	m.marker = s.Marker
	m.counts = s.Counts
	m.steps = s.Index
	m.frame++
	m.sortedness = metrics.Sortedness(s.Seq.Labels)
	if len(m.history) >= historyCapacity {
		m.history = m.history[1:]
		m.swaps = m.swaps[1:]
	}
	m.history = append(m.history, float64(s.Counts.Comparisons))
	m.swaps = append(m.swaps, float64(s.Counts.Swaps))
}

func (m *Model) applyDone(res session.Result) {
	m.running = false
	m.cancelling = false
	m.events = nil
	m.result = &res
	m.counts = res.Counts
	m.steps = res.Steps
	m.marker = sorting.NoMarker()
	m.seq = m.sess.Sequence()
	m.sortedness = metrics.Sortedness(m.seq.Labels)
	m.status = string(res.Status)
	if res.Status == session.StatusFailed && res.Err != nil {
		m.errMsg = res.Err.Error()
	}
}

func inputError(err error) string {
	if errors.Is(err, session.ErrBusy) {
		return "a sort is running; press x to cancel it first"
	}
	return err.Error()
}

func joinLabels(labels []float64) string {
	parts := make([]string, len(labels))
	for i, v := range labels {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}

func (m Model) View() string {
	var b strings.Builder
	st := m.st

	b.WriteString("\n  " + GradientText("SORTVIZ", m.theme.Primary, m.theme.Secondary) + "  " + st.subtle.Render("sorting algorithm visualizer") + "\n")
	b.WriteString("  " + st.separator(40) + "\n\n")

	tabs := make([]string, 0, len(catalog.IDs()))
	for _, id := range catalog.IDs() {
		d, _ := catalog.Describe(id)
		if id == m.algorithm {
			tabs = append(tabs, st.tabOn.Render(d.Name))
		} else {
			tabs = append(tabs, st.tab.Render(d.Name))
		}
	}
	b.WriteString("  " + lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n\n")

	bars := lipgloss.NewStyle().Padding(0, 2).Render(st.bars(m.seq, m.marker, barRows))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, bars, m.viewStats()) + "\n\n")

	if m.editing {
		b.WriteString("  " + m.input.View() + "\n")
	}
	if m.errMsg != "" {
		b.WriteString("  " + st.errText.Render(m.errMsg) + "\n")
	}
	b.WriteString("  " + m.help.View(m.keys) + "\n")
	return b.String()
}

func (m Model) viewStats() string {
	st := m.st
	var s strings.Builder

	status := st.value.Render(m.status)
	switch {
	case m.cancelling:
		status = st.warn.Render(AnimatedSpinner(m.frame) + " cancelling")
	case m.running:
		status = st.running.Render(AnimatedSpinner(m.frame) + " sorting")
	case m.result != nil && m.result.Status == session.StatusCompleted:
		status = st.done.Render("✓ sorted")
	}

	d, _ := catalog.Describe(m.algorithm)
	stable := "no"
	if d.Stable {
		stable = "yes"
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}

	s.WriteString(st.title.Render(d.Name) + "  " + status + "\n")
	s.WriteString(st.subtle.Render(d.Description) + "\n\n")
	row("Time", d.TimeComplexity)
	row("Space", d.SpaceComplexity)
	row("Stable", stable)
	s.WriteString("\n")
	row("Comparisons", fmt.Sprint(m.counts.Comparisons))
	row("Swaps", fmt.Sprint(m.counts.Swaps))
	row("Steps", fmt.Sprint(m.steps))
	if m.result != nil {
		row("Elapsed", fmt.Sprintf("%.0f ms", m.result.Counts.ElapsedMillis()))
	}
	row("Pace", fmt.Sprintf("%d ms", m.paceMs))
	row("Size", fmt.Sprint(m.seq.Len()))
	row("Theme", m.theme.Name)
	s.WriteString(st.label.Render("Sortedness") + st.progressBar(m.sortedness, 20) + st.value.Render(fmt.Sprintf(" %3.0f%%", m.sortedness*100)) + "\n")
	s.WriteString(st.label.Render("Swap trend") + st.sparkline(m.swaps, 20) + "\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Comparisons"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}

	s.WriteString("\n" + st.subtle.Render(catalog.Recommend(m.seq.Len())))
	return st.panel.Width(52).Render(s.String())
}

// Run starts the TUI and blocks until the user quits.
func Run(sess *session.Session, opts Options) error {
	_, err := tea.NewProgram(NewModel(sess, opts), tea.WithAltScreen()).Run()
	return err
}
