package sorting_test

import (
	"context"
	"errors"
	"sort"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sortviz/internal/catalog"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/pace"
	"github.com/san-kum/sortviz/internal/scale"
	"github.com/san-kum/sortviz/internal/sorting"
)

var algorithms = []sorting.Algorithm{
	sorting.Bubble{},
	sorting.Selection{},
	sorting.Insertion{},
	sorting.Quick{},
	sorting.Merge{},
}

func permutations(in []float64) [][]float64 {
	a := append([]float64(nil), in...)
	var out [][]float64
	var generate func(k int)
	generate = func(k int) {
		if k == 1 {
			out = append(out, append([]float64(nil), a...))
			return
		}
		generate(k - 1)
		for i := 0; i < k-1; i++ {
			if k%2 == 0 {
				a[i], a[k-1] = a[k-1], a[i]
			} else {
				a[0], a[k-1] = a[k-1], a[0]
			}
			generate(k - 1)
		}
	}
	generate(len(a))
	return out
}

func mustSequence(labels ...float64) sorting.Sequence {
	seq, err := sorting.NewSequence(labels, scale.DefaultMaxSize)
	Expect(err).NotTo(HaveOccurred())
	return seq
}

func sortedCopy(in []float64) []float64 {
	out := append([]float64(nil), in...)
	sort.Float64s(out)
	return out
}

var _ = Describe("Engine", func() {
	var eng *sorting.Engine

	BeforeEach(func() {
		eng = sorting.New(pace.Instant{}, 0)
	})

	for _, alg := range algorithms {
		alg := alg

		Describe(string(alg.ID()), func() {
			It("sorts every permutation and keeps displays in lock-step", func() {
				for _, p := range permutations([]float64{3, 1, 4, 1, 5}) {
					seq := mustSequence(p...)
					out, err := eng.Sort(context.Background(), alg, seq, nil)
					Expect(err).NotTo(HaveOccurred())

					Expect(out.Seq.Labels).To(Equal(sortedCopy(p)))
					Expect(sort.Float64sAreSorted(out.Seq.Display)).To(BeTrue())

					want, err := scale.Scale(out.Seq.Labels, scale.DefaultMaxSize)
					Expect(err).NotTo(HaveOccurred())
					Expect(out.Seq.Display).To(Equal(want))
				}
			})

			It("does not touch the caller's sequence", func() {
				seq := mustSequence(9, 7, 8)
				_, err := eng.Sort(context.Background(), alg, seq, nil)
				Expect(err).NotTo(HaveOccurred())
				Expect(seq.Labels).To(Equal([]float64{9, 7, 8}))
			})

			It("emits markers that are unset or in range", func() {
				seq := mustSequence(6, 2, 9, 4, 4, 1, 7)
				_, err := eng.Sort(context.Background(), alg, seq, func(s sorting.Step) error {
					for _, idx := range []int{s.Marker.Active, s.Marker.Comparison} {
						Expect(idx == sorting.Unset || (idx >= 0 && idx < seq.Len())).To(BeTrue())
					}
					Expect(s.Counts.Comparisons).To(BeNumerically(">=", 0))
					Expect(s.Counts.Swaps).To(BeNumerically(">=", 0))
					Expect(s.Seq.Display).To(HaveLen(len(s.Seq.Labels)))
					return nil
				})
				Expect(err).NotTo(HaveOccurred())
			})

			It("numbers steps consecutively and paces each one", func() {
				counter := &pace.Counter{Pacer: pace.Instant{}}
				eng = sorting.New(counter, pace.Millis(70))
				seq := mustSequence(5, 4, 3, 2, 1)

				var indexes []int
				out, err := eng.Sort(context.Background(), alg, seq, func(s sorting.Step) error {
					indexes = append(indexes, s.Index)
					return nil
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(counter.Calls).To(Equal(out.Steps))
				Expect(indexes).To(HaveLen(out.Steps))
				for i, idx := range indexes {
					Expect(idx).To(Equal(i + 1))
				}
			})

			It("stops when the context is canceled", func() {
				ctx, cancel := context.WithCancel(context.Background())
				defer cancel()

				seq := mustSequence(9, 8, 7, 6, 5, 4, 3, 2, 1)
				out, err := eng.Sort(ctx, alg, seq, func(s sorting.Step) error {
					if s.Index == 3 {
						cancel()
					}
					return nil
				})
				Expect(errors.Is(err, sorting.ErrCanceled)).To(BeTrue())
				Expect(errors.Is(err, context.Canceled)).To(BeTrue())
				Expect(out.Steps).To(Equal(3))
			})
		})
	}

	Describe("stability", func() {
		// Equal labels carry distinct display values so their order can be traced.
		tagged := func() sorting.Sequence {
			return sorting.Sequence{
				Labels:  []float64{2, 1, 2, 1, 2},
				Display: []float64{10, 20, 30, 40, 50},
			}
		}

		for _, alg := range []sorting.Algorithm{sorting.Bubble{}, sorting.Insertion{}, sorting.Merge{}} {
			alg := alg
			It(string(alg.ID())+" keeps equal labels in input order", func() {
				out, err := eng.Sort(context.Background(), alg, tagged(), nil)
				Expect(err).NotTo(HaveOccurred())
				Expect(out.Seq.Labels).To(Equal([]float64{1, 1, 2, 2, 2}))
				Expect(out.Seq.Display).To(Equal([]float64{20, 40, 10, 30, 50}))
			})
		}
	})

	Describe("counts", func() {
		It("bubble performs no swaps on sorted input", func() {
			out, err := eng.Sort(context.Background(), sorting.Bubble{}, mustSequence(1, 2, 3, 4, 5), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Counts.Swaps).To(Equal(0))
			Expect(out.Counts.Comparisons).To(Equal(10))
			Expect(out.Steps).To(Equal(0))
		})

		It("bubble swaps every pair of a reversed input", func() {
			out, err := eng.Sort(context.Background(), sorting.Bubble{}, mustSequence(5, 4, 3, 2, 1), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Counts.Swaps).To(Equal(10))
			Expect(out.Counts.Comparisons).To(Equal(10))
		})

		It("selection swaps once per misplaced minimum on a reversed input", func() {
			out, err := eng.Sort(context.Background(), sorting.Selection{}, mustSequence(5, 4, 3, 2, 1), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Counts.Swaps).To(Equal(2))
			Expect(out.Counts.Comparisons).To(Equal(10))
			Expect(out.Steps).To(Equal(10))
		})

		It("selection reaches n-1 swaps when every minimum is misplaced", func() {
			out, err := eng.Sort(context.Background(), sorting.Selection{}, mustSequence(2, 3, 4, 5, 1), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Counts.Swaps).To(Equal(4))
		})

		It("insertion exchanges once per inversion", func() {
			out, err := eng.Sort(context.Background(), sorting.Insertion{}, mustSequence(5, 4, 3, 2, 1), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Counts.Swaps).To(Equal(10))
			Expect(out.Steps).To(Equal(10))
		})

		It("merge never counts swaps", func() {
			out, err := eng.Sort(context.Background(), sorting.Merge{}, mustSequence(5, 4, 3, 2, 1), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Counts.Swaps).To(Equal(0))
			Expect(out.Counts.Comparisons).To(BeNumerically(">", 0))
		})

		It("quick pauses on every partition scan step", func() {
			out, err := eng.Sort(context.Background(), sorting.Quick{}, mustSequence(1, 2, 3, 4, 5), nil)
			Expect(err).NotTo(HaveOccurred())
			// sorted input degenerates to n(n-1)/2 scans
			Expect(out.Steps).To(Equal(10))
			Expect(out.Counts.Comparisons).To(Equal(10))
		})
	})

	Describe("end to end", func() {
		It("sorts the example input with insertion sort", func() {
			values, err := scale.Parse("5, 2, 8, 1, 9", scale.DefaultMaxSize)
			Expect(err).NotTo(HaveOccurred())
			out, err := eng.Sort(context.Background(), sorting.Insertion{}, mustSequence(values...), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Seq.Labels).To(Equal([]float64{1, 2, 5, 8, 9}))
		})
	})

	Describe("observed metrics", func() {
		It("reports sortedness at the last step", func() {
			eng.AddMetric(func() metrics.Metric { return metrics.NewProgress() })
			eng.AddMetric(func() metrics.Metric { return metrics.NewPeakDisorder() })
			out, err := eng.Sort(context.Background(), sorting.Bubble{}, mustSequence(3, 2, 1), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Observed).To(HaveKeyWithValue("sortedness", 1.0))
			Expect(out.Observed).To(HaveKey("peak_inversions"))
		})

		It("reports a sorted input without taking a step", func() {
			eng.AddMetric(func() metrics.Metric { return metrics.NewProgress() })
			eng.AddMetric(func() metrics.Metric { return metrics.NewPeakDisorder() })
			out, err := eng.Sort(context.Background(), sorting.Bubble{}, mustSequence(1, 2, 3, 4, 5), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Steps).To(Equal(0))
			Expect(out.Observed).To(HaveKeyWithValue("sortedness", 1.0))
			Expect(out.Observed).To(HaveKeyWithValue("peak_inversions", 0.0))
		})

		It("reports sortedness of a single element", func() {
			eng.AddMetric(func() metrics.Metric { return metrics.NewProgress() })
			out, err := eng.Sort(context.Background(), sorting.Quick{}, mustSequence(7), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Observed).To(HaveKeyWithValue("sortedness", 1.0))
		})

		It("counts the disorder of the input in the peak", func() {
			eng.AddMetric(func() metrics.Metric { return metrics.NewPeakDisorder() })
			for _, alg := range algorithms {
				out, err := eng.Sort(context.Background(), alg, mustSequence(5, 4, 3, 2, 1), nil)
				Expect(err).NotTo(HaveOccurred())
				Expect(out.Observed).To(HaveKeyWithValue("peak_inversions", 10.0), string(alg.ID()))
			}
		})

		It("reports the partial state of a canceled run", func() {
			eng.AddMetric(func() metrics.Metric { return metrics.NewProgress() })
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			out, err := eng.Sort(ctx, sorting.Selection{}, mustSequence(3, 2, 1), nil)
			Expect(errors.Is(err, sorting.ErrCanceled)).To(BeTrue())
			Expect(out.Observed["sortedness"]).To(Equal(metrics.Sortedness(out.Seq.Labels)))
		})
	})

	Describe("emit", func() {
		It("stops the run on emit errors", func() {
			boom := errors.New("renderer gone")
			_, err := eng.Sort(context.Background(), sorting.Selection{}, mustSequence(3, 2, 1), func(sorting.Step) error {
				return boom
			})
			Expect(err).To(MatchError(boom))
		})

		It("hands out copies", func() {
			var first sorting.Step
			out, err := eng.Sort(context.Background(), sorting.Insertion{}, mustSequence(3, 2, 1), func(s sorting.Step) error {
				if s.Index == 1 {
					first = s
				}
				return nil
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(first.Seq.Labels).To(Equal([]float64{2, 3, 1}))
			Expect(out.Seq.Labels).To(Equal([]float64{1, 2, 3}))
		})
	})

	Describe("validation", func() {
		It("rejects an empty sequence", func() {
			_, err := eng.Sort(context.Background(), sorting.Bubble{}, sorting.Sequence{}, nil)
			Expect(err).To(MatchError(sorting.ErrEmptySequence))
		})

		It("rejects mismatched halves", func() {
			seq := sorting.Sequence{Display: []float64{10}, Labels: []float64{1, 2}}
			_, err := eng.Sort(context.Background(), sorting.Bubble{}, seq, nil)
			Expect(errors.Is(err, sorting.ErrMismatchedSequence)).To(BeTrue())
		})
	})
})

var _ = Describe("Registry", func() {
	It("resolves every catalog id", func() {
		r := sorting.NewRegistry()
		Expect(r.IDs()).To(Equal(catalog.IDs()))
		for _, id := range catalog.IDs() {
			alg, err := r.Get(id)
			Expect(err).NotTo(HaveOccurred())
			Expect(alg.ID()).To(Equal(id))
		}
	})

	It("accepts loose names", func() {
		alg, err := sorting.NewRegistry().Lookup("Merge Sort")
		Expect(err).NotTo(HaveOccurred())
		Expect(alg.ID()).To(Equal(catalog.Merge))
	})

	It("rejects unknown ids", func() {
		_, err := sorting.NewRegistry().Get("bogo")
		Expect(errors.Is(err, sorting.ErrUnknownAlgorithm)).To(BeTrue())
	})
})
