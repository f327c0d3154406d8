// Package playback drives a [stepper.Sequence] one step at a time.
//
// The [Controller] owns the run/pause/resume/speed state machine:
//
//	Idle ──Start──▶ Paused ◀──toggle──▶ Playing ──done──▶ Finished
//
// While playing, every advance is scheduled through a [Scheduler]. Each
// scheduled callback carries the generation it was created in; Start,
// pause, Cancel and Reset bump the generation, so a callback that fires
// late (because the platform could not stop its timer) does nothing.
//
// # Key Bindings
//
// The TUI maps keys onto the controller:
//
//	Space - TogglePlayPause
//	N     - Step (while paused)
//	+/-   - SetSpeed
//	R     - Start a fresh run
package playback
