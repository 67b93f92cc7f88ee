// Package playback implements the preview scheduler: a two-state machine
// (Idle, Playing) that walks a frame index from 0 to the last frame on a
// fixed tick and then stops.
//
// The scheduler can be driven two ways:
//
//   - externally, by calling [Scheduler.Start] once and [Scheduler.Advance]
//     on every tick (the terminal UI feeds it tea.Tick messages)
//   - internally, by [Scheduler.Play], which owns a time.Ticker goroutine
//
// Every run is identified by a [Token]. Starting a new run or cancelling
// invalidates the previous token, so ticks belonging to an older run are
// dropped instead of moving the displayed frame.
package playback
