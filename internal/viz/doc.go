// Package viz is the interactive terminal front end for sortviz.
//
// The package implements a Bubble Tea program over a [session.Session]:
//
//   - [Model]: bars, algorithm selector, counters and a comparisons chart
//   - [RenderBars]: colored vertical bars with value labels underneath
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	s       - Start sorting with the selected algorithm
//	x       - Cancel the running sort
//	r       - Generate a new random array
//	i       - Edit the input (comma separated numbers)
//	tab/←/→ - Cycle algorithms
//	+/-     - Adjust the pace between steps
//	t       - Cycle color themes
//	?       - Toggle full help
//	q       - Quit
package viz
