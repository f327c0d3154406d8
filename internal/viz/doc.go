// Package viz is the terminal front end for algorithm playback.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [App]: algorithm menu, input form and playback view
//   - [Player]: one playback view bound to a [playback.Controller]
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	Space - Play/Pause
//	N     - Single step while paused
//	+/-   - Faster/Slower
//	R     - Restart with the same input
//	T     - Cycle color themes
//	Esc   - Back to the input form (pauses playback)
//
// Step events reach the view through an [emit.Buffer] that is drained on
// every frame tick, so the controller never blocks on the UI goroutine.
package viz
