package viz

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sortviz/internal/scale"
	"github.com/san-kum/sortviz/internal/sorting"
)

const barWidth = 3

// RenderBars draws seq as vertical bars rows tall. Each bar's height follows
// its display magnitude; the value label is printed underneath.
func RenderBars(seq sorting.Sequence, marker sorting.Marker, t Theme, rows int) string {
	return newStyles(t).bars(seq, marker, rows)
}

func (s styles) bars(seq sorting.Sequence, marker sorting.Marker, rows int) string {
	n := seq.Len()
	if n == 0 || rows <= 0 {
		return s.subtle.Render("(no input)")
	}

	heights := make([]int, n)
	for i, d := range seq.Display {
		h := int(math.Round(d / scale.MaxMagnitude * float64(rows)))
		if h < 1 {
			h = 1
		}
		if h > rows {
			h = rows
		}
		heights[i] = h
	}

	block := strings.Repeat("█", barWidth)
	blank := strings.Repeat(" ", barWidth)

	var b strings.Builder
	for r := rows; r >= 1; r-- {
		for i, h := range heights {
			if i > 0 {
				b.WriteByte(' ')
			}
			if h < r {
				b.WriteString(blank)
				continue
			}
			b.WriteString(s.barStyle(i, marker).Render(block))
		}
		b.WriteByte('\n')
	}

	for i, v := range seq.Labels {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s.barStyle(i, marker).Render(fitLabel(v)))
	}
	return b.String()
}

func (s styles) barStyle(i int, marker sorting.Marker) lipgloss.Style {
	switch i {
	case marker.Active:
		return s.active
	case marker.Comparison:
		return s.compared
	default:
		return s.bar
	}
}

func fitLabel(v float64) string {
	text := strconv.FormatFloat(v, 'g', -1, 64)
	if len(text) > barWidth {
		text = strconv.FormatFloat(v, 'g', 2, 64)
	}
	if len(text) > barWidth {
		text = text[:barWidth-1] + "…"
	}
	pad := barWidth - len([]rune(text))
	return strings.Repeat(" ", pad/2) + text + strings.Repeat(" ", pad-pad/2)
}
