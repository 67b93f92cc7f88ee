// Package session owns one editing session: the frame store, the tool state,
// the playback scheduler and the export entry points.
//
// Every user action is a method on [Session]. Methods are serialized by the
// session's mutex, so a redraw or export always sees a settled store.
// Structural and editing actions cancel a running playback first.
//
// # Exports
//
// [Session.ExportStill] and [Session.ExportAnimated] snapshot the grids
// under the lock and encode outside it. [Session.ExportAnimatedAsync] runs
// the encode in a goroutine so editing can continue while it works.
package session
