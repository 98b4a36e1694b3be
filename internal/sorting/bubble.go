package sorting

import (
	"context"

	"github.com/san-kum/sortviz/internal/catalog"
)

// Bubble pauses only after a swap; in-order comparisons run without delay.
type Bubble struct{}

func (Bubble) ID() catalog.ID { return catalog.Bubble }

func (Bubble) Sort(ctx context.Context, r *Run) error {
	n := r.seq.Len()
	for i := 0; i < n-1; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for j := 0; j < n-i-1; j++ {
			r.mark(j, j+1)
			if r.compare(j, j+1) > 0 {
				r.swap(j, j+1)
				if err := r.step(ctx); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
