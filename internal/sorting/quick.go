package sorting

import (
	"context"

	"github.com/san-kum/sortviz/internal/catalog"
)

// Quick is Lomuto quicksort with the last element of each range as pivot.
type Quick struct{}

func (Quick) ID() catalog.ID { return catalog.Quick }

func (q Quick) Sort(ctx context.Context, r *Run) error {
	return q.sort(ctx, r, 0, r.seq.Len()-1)
}

func (q Quick) sort(ctx context.Context, r *Run, low, high int) error {
	if low >= high {
		return nil
	}
	p, err := q.partition(ctx, r, low, high)
	if err != nil {
		return err
	}
	if err := q.sort(ctx, r, low, p-1); err != nil {
		return err
	}
	return q.sort(ctx, r, p+1, high)
}

func (Quick) partition(ctx context.Context, r *Run, low, high int) (int, error) {
	i := low - 1
	for j := low; j < high; j++ {
		r.mark(j, high)
		if r.compare(j, high) < 0 {
			i++
			if i != j {
				r.swap(i, j)
			}
		}
		if err := r.step(ctx); err != nil {
			return 0, err
		}
	}
	if i+1 != high {
		r.swap(i+1, high)
	}
	return i + 1, nil
}
