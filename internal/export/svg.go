package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/sortviz/internal/scale"
	"github.com/san-kum/sortviz/internal/sorting"
)

// Palette holds the SVG fill colors for bars.
type Palette struct {
	Background string
	Bar        string
	Active     string
	Comparison string
	Label      string
}

var DefaultPalette = Palette{
	Background: "#0a0a0a",
	Bar:        "#4a90d9",
	Active:     "#e74c3c",
	Comparison: "#f1c40f",
	Label:      "#cccccc",
}

// BarsToSVG draws seq as a bar chart. Bar heights are the display
// magnitudes as a percentage of height; labels sit under each bar.
func BarsToSVG(seq sorting.Sequence, marker sorting.Marker, width, height int, p Palette) string {
	n := seq.Len()
	if n == 0 || width <= 0 || height <= 0 {
		return ""
	}

	const labelBand = 20.0
	chart := float64(height) - labelBand
	slot := float64(width) / float64(n)
	gap := slot * 0.1

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, p.Background))

	for i := 0; i < n; i++ {
		fill := p.Bar
		switch i {
		case marker.Active:
			fill = p.Active
		case marker.Comparison:
			fill = p.Comparison
		}

		h := chart * seq.Display[i] / scale.MaxMagnitude
		x := float64(i)*slot + gap/2
		y := chart - h
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, x, y, slot-gap, h, fill))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-size="10" text-anchor="middle">%s</text>
`, x+(slot-gap)/2, float64(height)-6, p.Label, strconv.FormatFloat(seq.Labels[i], 'g', -1, 64)))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
