package metrics

import (
	"sync"
	"time"
)

// Counts is a point-in-time copy of a run's counters.
type Counts struct {
	Comparisons int           `json:"comparisons"`
	Swaps       int           `json:"swaps"`
	Elapsed     time.Duration `json:"elapsed_ns"`
}

// ElapsedMillis reports the elapsed time in fractional milliseconds.
func (c Counts) ElapsedMillis() float64 {
	return float64(c.Elapsed.Microseconds()) / 1000
}

// Collector counts comparisons and swaps for a single run. Once Finish has
// been called the counters are frozen until the next Reset.
type Collector struct {
	mu       sync.Mutex
	counts   Counts
	start    time.Time
	finished bool
	now      func() time.Time
}

func NewCollector() *Collector {
	return &Collector{now: time.Now, finished: true}
}

func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts = Counts{}
	c.start = c.now()
	c.finished = false
}

func (c *Collector) Compared() {
	c.mu.Lock()
	if !c.finished {
		c.counts.Comparisons++
	}
	c.mu.Unlock()
}

func (c *Collector) Swapped() {
	c.mu.Lock()
	if !c.finished {
		c.counts.Swaps++
	}
	c.mu.Unlock()
}

// Finish stamps the elapsed time and freezes the counters.
func (c *Collector) Finish() Counts {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.finished {
		c.counts.Elapsed = c.now().Sub(c.start)
		c.finished = true
	}
	return c.counts
}

// Snapshot returns the current counters. While running, Elapsed is the time
// since Reset.
func (c *Collector) Snapshot() Counts {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.counts
	if !c.finished {
		out.Elapsed = c.now().Sub(c.start)
	}
	return out
}

func (c *Collector) Finished() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.finished
}
