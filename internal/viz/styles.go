package viz

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles are rebuilt whenever the theme changes.
type styles struct {
	title    lipgloss.Style
	subtle   lipgloss.Style
	tab      lipgloss.Style
	tabOn    lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	panel    lipgloss.Style
	graph    lipgloss.Style
	running  lipgloss.Style
	done     lipgloss.Style
	warn     lipgloss.Style
	errText  lipgloss.Style
	bar      lipgloss.Style
	active   lipgloss.Style
	compared lipgloss.Style
	high     lipgloss.Style
	mid      lipgloss.Style
	low      lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		subtle:   lipgloss.NewStyle().Foreground(t.Muted),
		tab:      lipgloss.NewStyle().Padding(0, 1).Foreground(t.Muted),
		tabOn:    lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(t.Text).Background(t.Primary),
		label:    lipgloss.NewStyle().Foreground(t.Muted).Width(14),
		value:    lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Muted).Padding(0, 1),
		graph:    lipgloss.NewStyle().Foreground(t.Secondary),
		running:  lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		done:     lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		warn:     lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		errText:  lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		bar:      lipgloss.NewStyle().Foreground(t.Bar),
		active:   lipgloss.NewStyle().Foreground(t.Active),
		compared: lipgloss.NewStyle().Foreground(t.Comparison),
		high:     lipgloss.NewStyle().Foreground(t.Success),
		mid:      lipgloss.NewStyle().Foreground(t.Warning),
		low:      lipgloss.NewStyle().Foreground(t.Error),
	}
}

// GradientText colors each rune of text along a linear blend from start to
// end.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	switch len(runes) {
	case 0:
		return ""
	case 1:
		return lipgloss.NewStyle().Foreground(start).Render(text)
	}

	sr, sg, sb := parseHex(string(start))
	er, eg, eb := parseHex(string(end))
	last := float64(len(runes) - 1)

	var b strings.Builder
	for i, c := range runes {
		t := float64(i) / last
		r := clampByte(sr + int(t*float64(er-sr)))
		g := clampByte(sg + int(t*float64(eg-sg)))
		bl := clampByte(sb + int(t*float64(eb-sb)))
		color := lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, bl))
		b.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(c)))
	}
	return b.String()
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// AnimatedSpinner picks the braille spinner glyph for a frame counter.
func AnimatedSpinner(frame int) string {
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

// progressBar renders fraction in [0, 1] as a colored bar.
func (s styles) progressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	switch {
	case fraction > 0.8:
		return s.high.Render(bar)
	case fraction > 0.4:
		return s.mid.Render(bar)
	default:
		return s.low.Render(bar)
	}
}

// sparkline renders the tail of values that fits in width.
func (s styles) sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var result strings.Builder
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(chars)-1))
		result.WriteRune(chars[idx])
	}
	return s.graph.Render(result.String())
}

func (s styles) separator(width int) string {
	if width < 8 {
		return s.subtle.Render(strings.Repeat("─", width))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return s.subtle.Render(left + " ◆ " + right)
}

func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 255, 255, 255
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}

func clampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
