// Package viz holds the presentation constants shared by the terminal shell
// and the CLI: chrome themes, the default colour swatches and lipgloss styles.
//
// Themes only colour the editor chrome (borders, labels, status line). Grid
// cells are always drawn in their own colours.
//
//   - [Theme]: background/foreground pair plus accent and muted tones
//   - [Styles]: lipgloss styles derived from a theme
//   - [DefaultSwatches]: the colour picker palette
package viz
