// Copyright © 2025 extraterm contributors
//
// File: vt/width.go
// Summary: Wide-glyph detection (C1/C5) via go-runewidth.
// Usage: Consulted by Screen.PlaceChar to decide whether a glyph occupies two columns.

package vt

import "github.com/mattn/go-runewidth"

// RuneWidth returns the number of columns r occupies: 0 for combining
// marks and most control characters, 1 for ordinary glyphs, 2 for wide
// (fullwidth/wide East-Asian and other double-width) code points.
func RuneWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// IsWide reports whether r occupies two adjacent cells.
func IsWide(r rune) bool {
	return RuneWidth(r) == 2
}
