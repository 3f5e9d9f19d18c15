// Package viz renders solver output in the terminal.
//
//   - [Summary]: lipgloss panel with the run summary, metrics and error report
//   - [SlicePlot]: asciigraph profile of U along one grid row or column
//   - [LevelSets]: Braille drawing of level sets of U on a [Canvas]
//   - [Viewer]: Bubble Tea heat map browser
//
// # Key Bindings
//
//	arrows/hjkl - Move the cursor
//	+/-         - Raise/lower the color cap
//	T           - Cycle color themes
//	Q           - Quit
package viz
