// Package pixel provides the colour value and the square cell matrix that
// make up a single animation frame.
//
//   - [Color]: exact RGB triple, comparable with ==
//   - [Grid]: N×N matrix of colours, dimension fixed at creation
//
// # Thread Safety
//
// Grid instances are NOT thread-safe. Callers that hand a grid to another
// goroutine (for example an exporter) must pass a [Grid.Clone].
package pixel
