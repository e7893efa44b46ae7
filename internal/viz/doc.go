// Package viz animates the line pattern in a terminal.
//
// [CanvasBackend] rasterizes draw requests into a braille [Canvas] that
// remembers per-cell ink, and [Model] is a Bubble Tea program that drives
// the pacer from tick messages scheduled at the hinted wake instant.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	T     - Cycle color themes
//	Q/Esc - Quit
//	?     - Show help overlay
package viz
