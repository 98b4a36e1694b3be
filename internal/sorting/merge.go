package sorting

import (
	"context"

	"github.com/san-kum/sortviz/internal/catalog"
)

// Merge is top-down merge sort. Elements are copied back from the halves,
// so placements count as steps but not as swaps, and a snapshot taken in the
// middle of a merge may show a value twice within the merged range.
type Merge struct{}

func (Merge) ID() catalog.ID { return catalog.Merge }

func (m Merge) Sort(ctx context.Context, r *Run) error {
	return m.sort(ctx, r, 0, r.seq.Len()-1)
}

func (m Merge) sort(ctx context.Context, r *Run, left, right int) error {
	if left >= right {
		return nil
	}
	mid := (left + right) / 2
	if err := m.sort(ctx, r, left, mid); err != nil {
		return err
	}
	if err := m.sort(ctx, r, mid+1, right); err != nil {
		return err
	}
	return m.merge(ctx, r, left, mid, right)
}

func (Merge) merge(ctx context.Context, r *Run, left, mid, right int) error {
	lo := r.seq.slice(left, mid+1)
	hi := r.seq.slice(mid+1, right+1)

	i, j, k := 0, 0, left
	for i < lo.Len() && j < hi.Len() {
		r.mark(k, mid+1+j)
		if r.compareValues(lo.Labels[i], hi.Labels[j]) <= 0 {
			r.place(k, lo.Display[i], lo.Labels[i])
			i++
		} else {
			r.place(k, hi.Display[j], hi.Labels[j])
			j++
		}
		k++
		if err := r.step(ctx); err != nil {
			return err
		}
	}

	for ; i < lo.Len(); i, k = i+1, k+1 {
		r.mark(k, Unset)
		r.place(k, lo.Display[i], lo.Labels[i])
		if err := r.step(ctx); err != nil {
			return err
		}
	}

	for ; j < hi.Len(); j, k = j+1, k+1 {
		r.mark(k, mid+1+j)
		r.place(k, hi.Display[j], hi.Labels[j])
		if err := r.step(ctx); err != nil {
			return err
		}
	}
	return nil
}
