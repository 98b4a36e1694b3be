package sorting

import (
	"context"

	"github.com/san-kum/sortviz/internal/catalog"
)

// Selection pauses on every candidate of the inner scan and swaps at most
// once per outer pass.
type Selection struct{}

func (Selection) ID() catalog.ID { return catalog.Selection }

func (Selection) Sort(ctx context.Context, r *Run) error {
	n := r.seq.Len()
	for i := 0; i < n-1; i++ {
		lowest := i
		r.mark(i, Unset)
		for j := i + 1; j < n; j++ {
			r.mark(i, j)
			if r.compare(j, lowest) < 0 {
				lowest = j
			}
			if err := r.step(ctx); err != nil {
				return err
			}
		}
		if lowest != i {
			r.swap(i, lowest)
		}
	}
	return nil
}
