// Package sorting runs the step-wise sorting algorithms behind the visualizer.
//
// Each algorithm mutates a [Sequence] (a display magnitude and a label per
// element, always moved together) and, at every pause point, emits a [Step]
// with a snapshot of the sequence, the highlighted indices and the running
// comparison and swap counts, then waits on a [pace.Pacer].
//
//   - [Bubble], [Selection], [Insertion], [Quick], [Merge]: the algorithms
//   - [Engine]: drives one algorithm over a private copy of a sequence
//   - [Registry]: lookup by [catalog.ID]
//
// # Example
//
//	seq, _ := sorting.NewSequence([]float64{5, 2, 8, 1, 9}, 30)
//	eng := sorting.New(pace.NewTimer(), 70*time.Millisecond)
//	out, err := eng.Sort(ctx, sorting.Insertion{}, seq, func(s sorting.Step) error {
//		render(s)
//		return nil
//	})
//
// # Thread Safety
//
// An Engine may be shared, but a given Sequence must only be sorted by one
// run at a time. The session package enforces that with its single-flight
// guard.
package sorting
