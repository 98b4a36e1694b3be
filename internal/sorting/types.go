package sorting

import (
	"context"
	"fmt"

	"github.com/san-kum/sortviz/internal/catalog"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/scale"
)

// Sequence pairs each bar height with the original input value it stands for.
type Sequence struct {
	Display []float64 `json:"display"`
	Labels  []float64 `json:"labels"`
}

// NewSequence validates and scales labels.
func NewSequence(labels []float64, maxSize int) (Sequence, error) {
	display, err := scale.Scale(labels, maxSize)
	if err != nil {
		return Sequence{}, err
	}
	l := make([]float64, len(labels))
	copy(l, labels)
	return Sequence{Display: display, Labels: l}, nil
}

func (s Sequence) Len() int { return len(s.Labels) }

func (s Sequence) Clone() Sequence {
	c := Sequence{
		Display: make([]float64, len(s.Display)),
		Labels:  make([]float64, len(s.Labels)),
	}
	copy(c.Display, s.Display)
	copy(c.Labels, s.Labels)
	return c
}

func (s Sequence) Validate() error {
	if len(s.Display) != len(s.Labels) {
		return fmt.Errorf("%w: %d display, %d labels", ErrMismatchedSequence, len(s.Display), len(s.Labels))
	}
	if len(s.Labels) == 0 {
		return ErrEmptySequence
	}
	return nil
}

// IsSorted reports whether labels are in ascending order.
func (s Sequence) IsSorted() bool {
	for i := 1; i < len(s.Labels); i++ {
		if s.Labels[i-1] > s.Labels[i] {
			return false
		}
	}
	return true
}

func (s Sequence) swap(i, j int) {
	s.Display[i], s.Display[j] = s.Display[j], s.Display[i]
	s.Labels[i], s.Labels[j] = s.Labels[j], s.Labels[i]
}

func (s Sequence) set(k int, display, label float64) {
	s.Display[k] = display
	s.Labels[k] = label
}

func (s Sequence) slice(lo, hi int) Sequence {
	return Sequence{Display: s.Display[lo:hi], Labels: s.Labels[lo:hi]}.Clone()
}

// Unset marks a highlight slot with no index.
const Unset = -1

// Marker is what the viewer should highlight right now.
type Marker struct {
	Active     int `json:"active"`
	Comparison int `json:"comparison"`
}

func NoMarker() Marker { return Marker{Active: Unset, Comparison: Unset} }

func (m Marker) IsSet() bool { return m.Active != Unset || m.Comparison != Unset }

// Step is one observable unit of progress.
type Step struct {
	Index  int            `json:"index"`
	Seq    Sequence       `json:"sequence"`
	Marker Marker         `json:"marker"`
	Counts metrics.Counts `json:"counts"`
}

// Algorithm is a step-wise sorting algorithm. Sort must report every
// comparison and exchange through r and return the first error from r.step.
type Algorithm interface {
	ID() catalog.ID
	Sort(ctx context.Context, r *Run) error
}
