// Package encode rasterizes grids into portable image bytes.
//
//   - [EncodeStill]: one grid as a lossless PNG
//   - [EncodeAnimated]: every grid in order as a looping GIF with a fixed
//     per-frame delay
//
// Both functions are pure: they read their arguments, never retain them, and
// return either a complete buffer or an error.
//
// # Colour limits
//
// GIF frames carry at most 256 palette entries. When all frames together use
// 256 colours or fewer the palette is exact. Beyond that the most frequent
// colours are kept and the rest map to their nearest entry in CIE Lab space.
// This is a property of the format, not a bug.
package encode
