package metrics

// Metric observes the label sequence after every step of a run.
type Metric interface {
	Name() string
	Observe(labels []float64)
	Value() float64
	Reset()
}

// Inversions counts pairs i<j with labels[i] > labels[j].
func Inversions(labels []float64) int {
	n := 0
	for i := 0; i < len(labels); i++ {
		for j := i + 1; j < len(labels); j++ {
			if labels[i] > labels[j] {
				n++
			}
		}
	}
	return n
}

// Sortedness is 1 for an ascending sequence and 0 for a strictly descending
// one.
func Sortedness(labels []float64) float64 {
	n := len(labels)
	if n < 2 {
		return 1
	}
	pairs := n * (n - 1) / 2
	return 1 - float64(Inversions(labels))/float64(pairs)
}

// Progress tracks sortedness of the most recent observation.
type Progress struct {
	name    string
	value   float64
	samples int
}

func NewProgress() *Progress {
	return &Progress{name: "sortedness"}
}

func (p *Progress) Name() string { return p.name }

func (p *Progress) Observe(labels []float64) {
	p.value = Sortedness(labels)
	p.samples++
}

func (p *Progress) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.value
}

func (p *Progress) Reset() {
	p.value = 0
	p.samples = 0
}

// PeakDisorder records the largest inversion count seen during a run.
type PeakDisorder struct {
	name string
	peak int
}

func NewPeakDisorder() *PeakDisorder {
	return &PeakDisorder{name: "peak_inversions"}
}

func (p *PeakDisorder) Name() string { return p.name }

func (p *PeakDisorder) Observe(labels []float64) {
	if inv := Inversions(labels); inv > p.peak {
		p.peak = inv
	}
}

func (p *PeakDisorder) Value() float64 { return float64(p.peak) }

func (p *PeakDisorder) Reset() { p.peak = 0 }
