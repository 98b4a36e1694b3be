// Package tui holds the plain ANSI renderer used by the watch command. It
// redraws a character canvas in place and needs no terminal library.
package tui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/scale"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/sorting"
)

const (
	height      = 16
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// WatchRenderer draws each step as ASCII bars. When the writer is not a
// terminal, frames are appended instead of redrawn.
type WatchRenderer struct {
	out       io.Writer
	name      string
	frameRate int
	lastFrame time.Time
	ansi      bool
	canvas    [][]rune
	frames    int
}

func NewWatchRenderer(out io.Writer, name string, frameRate int) *WatchRenderer {
	return &WatchRenderer{
		out:       out,
		name:      name,
		frameRate: frameRate,
		ansi:      logging.IsTerminal(out),
	}
}

// OnStep renders s unless the previous frame is too recent.
func (r *WatchRenderer) OnStep(s sorting.Step) {
	if r.frameRate > 0 && time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()
	r.draw(s.Seq, s.Marker)
	r.render(fmt.Sprintf("step %d  comparisons=%d swaps=%d", s.Index, s.Counts.Comparisons, s.Counts.Swaps))
}

// OnDone always renders the final state.
func (r *WatchRenderer) OnDone(res session.Result) {
	r.draw(res.Final, sorting.NoMarker())
	r.render(fmt.Sprintf("%s  steps=%d comparisons=%d swaps=%d elapsed=%.0fms",
		res.Status, res.Steps, res.Counts.Comparisons, res.Counts.Swaps, res.Counts.ElapsedMillis()))
}

// Frames reports how many frames were written.
func (r *WatchRenderer) Frames() int { return r.frames }

func (r *WatchRenderer) draw(seq sorting.Sequence, marker sorting.Marker) {
	n := seq.Len()
	width := n * 3
	r.canvas = make([][]rune, height+1)
	for y := range r.canvas {
		r.canvas[y] = []rune(strings.Repeat(" ", width))
	}

	for i, d := range seq.Display {
		h := int(math.Round(d / scale.MaxMagnitude * height))
		if h < 1 {
			h = 1
		}
		c := '#'
		switch i {
		case marker.Active:
			c = '@'
		case marker.Comparison:
			c = '+'
		}
		for y := height - h; y < height; y++ {
			r.set(i*3, y, c)
			r.set(i*3+1, y, c)
		}
	}

	if marker.Active != sorting.Unset {
		r.set(marker.Active*3, height, '^')
	}
	if marker.Comparison != sorting.Unset {
		r.set(marker.Comparison*3, height, '~')
	}
}

func (r *WatchRenderer) set(x, y int, c rune) {
	if y >= 0 && y < len(r.canvas) && x >= 0 && x < len(r.canvas[y]) {
		r.canvas[y][x] = c
	}
}

func (r *WatchRenderer) render(status string) {
	var b strings.Builder
	if r.ansi {
		b.WriteString(clearScreen)
	}
	b.WriteString(fmt.Sprintf("  %s\n", r.name))
	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(strings.TrimRight(string(row), " "))
		b.WriteString("\n")
	}
	b.WriteString("  " + status + "\n")
	fmt.Fprint(r.out, b.String())
	r.frames++
}

func (r *WatchRenderer) Start() {
	if r.ansi {
		fmt.Fprint(r.out, hideCursor)
	}
}

func (r *WatchRenderer) Stop() {
	if r.ansi {
		fmt.Fprint(r.out, showCursor)
	}
}
