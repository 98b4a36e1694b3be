package sorting

import (
	"context"

	"github.com/san-kum/sortviz/internal/catalog"
)

// Insertion walks each key left by adjacent exchanges, so every snapshot is a
// permutation of the input.
type Insertion struct{}

func (Insertion) ID() catalog.ID { return catalog.Insertion }

func (Insertion) Sort(ctx context.Context, r *Run) error {
	n := r.seq.Len()
	for i := 1; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.mark(i, Unset)
		for j := i - 1; j >= 0; j-- {
			if r.compare(j, j+1) <= 0 {
				break
			}
			r.mark(i, j)
			r.swap(j, j+1)
			if err := r.step(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}
