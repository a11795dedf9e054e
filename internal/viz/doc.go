// Package viz renders filter runs in the terminal.
//
//   - [Plot] and [PlotCompare]: asciigraph charts of target and output
//   - [Summary] and [CompareTable]: lipgloss metric panels
//   - [SVG]: standalone vector plot of a run
//   - [Tuner]: interactive Bubble Tea program for live parameter tuning
//
// # Key Bindings
//
//	j/k, tab - Select parameter
//	h/l      - Adjust selected parameter (H/L for coarse steps)
//	s        - Cycle target signal
//	e        - Toggle rate estimation
//	r        - Reset parameters
//	t        - Cycle color themes
//	q        - Quit
package viz
