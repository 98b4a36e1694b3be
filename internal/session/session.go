// Package session is the boundary the front ends talk to. A Session owns the
// current input sequence and allows at most one sort run over it at a time.
package session

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/sortviz/internal/catalog"
	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/pace"
	"github.com/san-kum/sortviz/internal/scale"
	"github.com/san-kum/sortviz/internal/sorting"
)

var (
	// ErrBusy is returned when a run or new input is requested while a run is
	// active. Cancel the active run and Wait before retrying.
	ErrBusy = errors.New("session: a sort is already running")

	ErrInvalidPace = errors.New("session: pace must be a positive number of milliseconds")
)

type State int

const (
	Idle State = iota
	Running
	Cancelling
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Cancelling:
		return "cancelling"
	default:
		return "unknown"
	}
}

type Status string

const (
	StatusCompleted Status = "completed"
	StatusAborted   Status = "aborted"
	StatusFailed    Status = "failed"
)

// Result is the terminal record of one run.
type Result struct {
	RunID     string             `json:"run_id"`
	Algorithm catalog.ID         `json:"algorithm"`
	Status    Status             `json:"status"`
	PaceMs    int                `json:"pace_ms"`
	StartedAt time.Time          `json:"started_at"`
	Input     sorting.Sequence   `json:"input"`
	Final     sorting.Sequence   `json:"final"`
	Counts    metrics.Counts     `json:"counts"`
	Steps     int                `json:"steps"`
	Observed  map[string]float64 `json:"observed,omitempty"`
	Err       error              `json:"-"`
}

type EventKind int

const (
	EventStep EventKind = iota
	EventDone
)

// Event is either a Step of a live run or the terminal Done carrying Result.
type Event struct {
	Kind   EventKind
	Step   sorting.Step
	Result *Result
}

type Options struct {
	MaxSize    int
	RandomSize int
	RandomMax  int
	Seed       int64
	Pacer      pace.Pacer
	Logger     logrus.FieldLogger
	// Buffer is the capacity of each run's event channel.
	Buffer int
}

func DefaultOptions() Options {
	return Options{
		MaxSize:    scale.DefaultMaxSize,
		RandomSize: scale.DefaultRandomSize,
		RandomMax:  scale.DefaultRandomMax,
		Seed:       time.Now().UnixNano(),
		Pacer:      pace.NewTimer(),
		Buffer:     1,
	}
}

type Session struct {
	mu       sync.Mutex
	opts     Options
	seq      sorting.Sequence
	state    State
	cancel   context.CancelFunc
	done     chan struct{}
	last     *Result
	registry *sorting.Registry
	rng      *rand.Rand
	log      logrus.FieldLogger
}

func New(opts Options) *Session {
	def := DefaultOptions()
	if opts.MaxSize <= 0 {
		opts.MaxSize = def.MaxSize
	}
	if opts.RandomSize <= 0 {
		opts.RandomSize = def.RandomSize
	}
	if opts.RandomMax <= 0 {
		opts.RandomMax = def.RandomMax
	}
	if opts.Seed == 0 {
		opts.Seed = def.Seed
	}
	if opts.Pacer == nil {
		opts.Pacer = def.Pacer
	}
	if opts.Buffer < 0 {
		opts.Buffer = 0
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &Session{
		opts:     opts,
		registry: sorting.NewRegistry(),
		rng:      rand.New(rand.NewSource(opts.Seed)),
		log:      opts.Logger,
	}
}

func (s *Session) MaxSize() int { return s.opts.MaxSize }

// SetInput replaces the sequence. On error the previous sequence is kept.
func (s *Session) SetInput(values []float64) (sorting.Sequence, error) {
	seq, err := sorting.NewSequence(values, s.opts.MaxSize)
	if err != nil {
		s.log.WithError(err).Debug("input rejected")
		return sorting.Sequence{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Idle {
		return sorting.Sequence{}, ErrBusy
	}
	s.seq = seq
	s.log.WithField("size", seq.Len()).Debug("input set")
	return seq.Clone(), nil
}

// SetInputText parses comma or whitespace separated numbers.
func (s *Session) SetInputText(text string) (sorting.Sequence, error) {
	values, err := scale.Parse(text, s.opts.MaxSize)
	if err != nil {
		s.log.WithError(err).Debug("input rejected")
		return sorting.Sequence{}, err
	}
	return s.SetInput(values)
}

// Randomize replaces the sequence with RandomSize integers in [0, RandomMax).
func (s *Session) Randomize() (sorting.Sequence, error) {
	s.mu.Lock()
	values := scale.Random(s.rng, s.opts.RandomSize, s.opts.RandomMax)
	s.mu.Unlock()
	return s.SetInput(values)
}

func (s *Session) Sequence() sorting.Sequence {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq.Clone()
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) LastResult() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return Result{}, false
	}
	return *s.last, true
}

func (s *Session) Descriptor(id catalog.ID) (catalog.Descriptor, error) {
	return catalog.Describe(id)
}

func (s *Session) Recommendation(size int) string {
	return catalog.Recommend(size)
}

// RunSort starts algorithm id over the current sequence, pausing paceMs
// between steps. The returned channel yields Step events followed by exactly
// one Done event and is then closed; callers must drain it.
func (s *Session) RunSort(ctx context.Context, id catalog.ID, paceMs int) (<-chan Event, error) {
	if paceMs <= 0 {
		return nil, ErrInvalidPace
	}
	alg, err := s.registry.Get(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.state != Idle {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	if s.seq.Len() == 0 {
		s.mu.Unlock()
		return nil, sorting.ErrEmptySequence
	}
	input := s.seq.Clone()
	runCtx, cancel := context.WithCancel(ctx)
	s.state = Running
	s.cancel = cancel
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()

	eng := sorting.New(s.opts.Pacer, pace.Millis(paceMs))
	eng.AddMetric(func() metrics.Metric { return metrics.NewProgress() })
	eng.AddMetric(func() metrics.Metric { return metrics.NewPeakDisorder() })

	res := Result{
		RunID:     uuid.NewString(),
		Algorithm: id,
		PaceMs:    paceMs,
		StartedAt: time.Now(),
		Input:     input,
	}
	log := s.log.WithFields(logrus.Fields{
		"run_id":    res.RunID,
		"algorithm": id,
		"size":      input.Len(),
		"pace_ms":   paceMs,
	})
	eng.SetLogger(log)

	events := make(chan Event, s.opts.Buffer)
	go func() {
		defer close(events)

		log.Info("sort started")
		emit := func(st sorting.Step) error {
			select {
			case events <- Event{Kind: EventStep, Step: st}:
				return nil
			case <-runCtx.Done():
				return runCtx.Err()
			}
		}

		out, err := eng.Sort(runCtx, alg, input, emit)
		res.Final = out.Seq
		res.Counts = out.Counts
		res.Steps = out.Steps
		res.Observed = out.Observed
		res.Err = err

		switch {
		case err == nil:
			res.Status = StatusCompleted
		case errors.Is(err, sorting.ErrCanceled), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			res.Status = StatusAborted
		default:
			res.Status = StatusFailed
		}

		s.finish(&res, cancel)
		close(done)

		log.WithFields(logrus.Fields{
			"status":      res.Status,
			"steps":       res.Steps,
			"comparisons": res.Counts.Comparisons,
			"swaps":       res.Counts.Swaps,
			"elapsed_ms":  res.Counts.ElapsedMillis(),
		}).Info("sort ended")

		final := res
		events <- Event{Kind: EventDone, Result: &final}
	}()

	return events, nil
}

// finish commits a completed run and returns the session to Idle.
func (s *Session) finish(res *Result, cancel context.CancelFunc) {
	cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	if res.Status == StatusCompleted {
		s.seq = res.Final.Clone()
	}
	last := *res
	s.last = &last
	s.state = Idle
	s.cancel = nil
}

// Cancel asks the active run to stop at its next pause. It reports whether a
// run was signalled.
func (s *Session) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Running {
		return false
	}
	s.state = Cancelling
	s.cancel()
	s.log.Debug("sort cancel requested")
	return true
}

// Wait blocks until the most recent run has returned the session to Idle.
func (s *Session) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}
