package sorting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/pace"
)

// Run is the live state of one algorithm invocation. Only the algorithm
// goroutine touches it; observers see copies through Step.
type Run struct {
	seq      Sequence
	marker   Marker
	counter  *metrics.Collector
	observed []metrics.Metric
	pacer    pace.Pacer
	interval time.Duration
	emit     func(Step) error
	steps    int
}

func (r *Run) mark(active, comparison int) {
	r.marker = Marker{Active: active, Comparison: comparison}
}

// compare orders the labels at i and j.
func (r *Run) compare(i, j int) int {
	return r.compareValues(r.seq.Labels[i], r.seq.Labels[j])
}

func (r *Run) compareValues(a, b float64) int {
	r.counter.Compared()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (r *Run) swap(i, j int) {
	r.seq.swap(i, j)
	r.counter.Swapped()
}

// place copies an element into k. Not counted as a swap.
func (r *Run) place(k int, display, label float64) {
	r.seq.set(k, display, label)
}

// step publishes the current state and waits for the pacing interval.
func (r *Run) step(ctx context.Context) error {
	r.steps++
	for _, m := range r.observed {
		m.Observe(r.seq.Labels)
	}
	if r.emit != nil {
		if err := r.emit(r.snapshot()); err != nil {
			return err
		}
	}
	return r.pacer.Pace(ctx, r.interval)
}

func (r *Run) snapshot() Step {
	return Step{
		Index:  r.steps,
		Seq:    r.seq.Clone(),
		Marker: r.marker,
		Counts: r.counter.Snapshot(),
	}
}

// Outcome is the final state of a run, complete or not.
type Outcome struct {
	Seq      Sequence           `json:"sequence"`
	Counts   metrics.Counts     `json:"counts"`
	Steps    int                `json:"steps"`
	Observed map[string]float64 `json:"observed,omitempty"`
}

// Engine drives algorithms with a fixed pacer and interval.
type Engine struct {
	pacer    pace.Pacer
	interval time.Duration
	metrics  []func() metrics.Metric
	log      logrus.FieldLogger
}

func New(p pace.Pacer, interval time.Duration) *Engine {
	if p == nil {
		p = pace.Instant{}
	}
	return &Engine{
		pacer:    p,
		interval: interval,
		metrics:  make([]func() metrics.Metric, 0),
		log:      logging.Discard(),
	}
}

// AddMetric registers a factory for a per-run observer of the labels.
func (e *Engine) AddMetric(f func() metrics.Metric) { e.metrics = append(e.metrics, f) }

func (e *Engine) SetLogger(l logrus.FieldLogger) { e.log = l }

func (e *Engine) Interval() time.Duration { return e.interval }

// Sort runs alg over a copy of seq. emit, if non-nil, receives a Step at
// every pause point; an error from emit stops the run. On cancellation the
// returned error wraps both ErrCanceled and the context error, and Outcome
// holds the partial state.
func (e *Engine) Sort(ctx context.Context, alg Algorithm, seq Sequence, emit func(Step) error) (Outcome, error) {
	if err := seq.Validate(); err != nil {
		return Outcome{}, err
	}

	r := &Run{
		seq:      seq.Clone(),
		marker:   NoMarker(),
		counter:  metrics.NewCollector(),
		pacer:    e.pacer,
		interval: e.interval,
		emit:     emit,
	}
	for _, f := range e.metrics {
		m := f()
		m.Reset()
		m.Observe(r.seq.Labels)
		r.observed = append(r.observed, m)
	}

	log := e.log.WithFields(logrus.Fields{"algorithm": alg.ID(), "size": seq.Len()})
	log.Debug("sort started")

	r.counter.Reset()
	err := alg.Sort(ctx, r)
	counts := r.counter.Finish()
	r.marker = NoMarker()

	out := Outcome{Seq: r.seq, Counts: counts, Steps: r.steps}
	if len(r.observed) > 0 {
		// metrics see the input and the end state even when no step fired
		out.Observed = make(map[string]float64, len(r.observed))
		for _, m := range r.observed {
			m.Observe(r.seq.Labels)
			out.Observed[m.Name()] = m.Value()
		}
	}

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %w", ErrCanceled, err)
		}
		log.WithError(err).WithField("steps", r.steps).Debug("sort stopped")
		return out, err
	}

	log.WithFields(logrus.Fields{
		"steps":       r.steps,
		"comparisons": counts.Comparisons,
		"swaps":       counts.Swaps,
	}).Debug("sort finished")
	return out, nil
}
