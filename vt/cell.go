// Copyright © 2025 extraterm contributors
//
// File: vt/cell.go
// Summary: Packed cell/attribute model (C1): Style bit layout, SGR application.
// Usage: Consumed by the screen model and the CSI dispatcher.

package vt

// Style packs a cell's rendition into a single 32-bit word: a 9-bit
// background palette index, a 9-bit foreground palette index, and 5 flag
// bits. The remaining bits are reserved. Style is signed so that a
// negative value can serve as a cursor-overlay sentinel distinguishable
// from any real style (see CursorOverlayStyle).
type Style int32

const (
	styleBGShift   = 0
	styleBGMask    = 0x1FF // 9 bits
	styleFGShift   = 9
	styleFGMask    = 0x1FF // 9 bits
	styleFlagShift = 18
	styleFlagMask  = 0x1F // 5 bits
)

// Flag bits, packed into Style's 5 flag bits.
const (
	FlagBold Style = 1 << iota
	FlagUnderline
	FlagBlink
	FlagInverse
	FlagInvisible
)

// Palette index sentinels. Real palette colors occupy 0-255; each field
// carries its own "use the terminal's default color" sentinel per spec.
const (
	DefaultBackground = 256
	DefaultForeground = 257
)

// overlayStyle is returned by CursorOverlayStyle and is never a
// value any real cell's Style takes on, since packed styles are always
// non-negative.
const overlayStyle Style = -1

// CursorOverlayStyle reports the sentinel style a renderer should treat as
// "show this cell in reverse video" regardless of the cell's own style.
func CursorOverlayStyle() Style { return overlayStyle }

// IsOverlay reports whether s is the cursor-overlay sentinel.
func (s Style) IsOverlay() bool { return s < 0 }

// DefaultStyle returns the style used for a freshly cleared cell.
func DefaultStyle() Style {
	return newStyle(DefaultBackground, DefaultForeground, 0)
}

func newStyle(bg, fg int, flags Style) Style {
	return Style(bg&styleBGMask) |
		Style(fg&styleFGMask)<<styleFGShift |
		(flags&styleFlagMask)<<styleFlagShift
}

// Background returns the packed background palette index.
func (s Style) Background() int {
	if s.IsOverlay() {
		return DefaultBackground
	}
	return int(s>>styleBGShift) & styleBGMask
}

// Foreground returns the packed foreground palette index.
func (s Style) Foreground() int {
	if s.IsOverlay() {
		return DefaultForeground
	}
	return int(s>>styleFGShift) & styleFGMask
}

func (s Style) flags() Style {
	if s.IsOverlay() {
		return 0
	}
	return (s >> styleFlagShift) & styleFlagMask
}

func (s Style) has(f Style) bool { return s.flags()&f != 0 }

// Bold, Underline, Blink, Inverse and Invisible report the corresponding
// SGR flag bit.
func (s Style) Bold() bool      { return s.has(FlagBold) }
func (s Style) Underline() bool { return s.has(FlagUnderline) }
func (s Style) Blink() bool     { return s.has(FlagBlink) }
func (s Style) Inverse() bool   { return s.has(FlagInverse) }
func (s Style) Invisible() bool { return s.has(FlagInvisible) }

// WithBackground returns a copy of s with the background index replaced.
func (s Style) WithBackground(idx int) Style {
	return newStyle(idx, s.Foreground(), s.flags())
}

// WithForeground returns a copy of s with the foreground index replaced.
func (s Style) WithForeground(idx int) Style {
	return newStyle(s.Background(), idx, s.flags())
}

// WithFlag returns a copy of s with flag f set.
func (s Style) WithFlag(f Style) Style {
	return newStyle(s.Background(), s.Foreground(), s.flags()|f)
}

// WithoutFlag returns a copy of s with flag f cleared.
func (s Style) WithoutFlag(f Style) Style {
	return newStyle(s.Background(), s.Foreground(), s.flags()&^f)
}

// EraseStyle returns the style used to fill cells erased by ED/EL/EL:
// default background, current foreground, attributes cleared.
func (s Style) EraseStyle() Style {
	return newStyle(DefaultBackground, s.Foreground(), 0)
}

// Cell is a single character cell: a 21-bit code point plus its packed
// style. Wide glyphs occupy two adjacent cells; Wide marks the leading
// cell and Wrapped marks a cell at the end of a row that continues onto
// the next row without an explicit newline.
type Cell struct {
	Rune    rune
	Style   Style
	Wide    bool
	Wrapped bool
}

// BlankCell returns a single-width space cell carrying the given style.
func BlankCell(style Style) Cell {
	return Cell{Rune: ' ', Style: style}
}

// ApplySGR folds the parameters of a CSI ... m sequence into current,
// returning the resulting style. Unknown parameters are reported through
// warn (which may be nil) and otherwise skipped.
func ApplySGR(params []int, current Style, match PaletteMatcher, warn func(int)) Style {
	if len(params) == 0 {
		params = []int{0}
	}
	s := current
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			s = DefaultStyle()
		case p == 1:
			s = s.WithFlag(FlagBold)
		case p == 4:
			s = s.WithFlag(FlagUnderline)
		case p == 5:
			s = s.WithFlag(FlagBlink)
		case p == 7:
			s = s.WithFlag(FlagInverse)
		case p == 8:
			s = s.WithFlag(FlagInvisible)
		case p == 22:
			s = s.WithoutFlag(FlagBold)
		case p == 24:
			s = s.WithoutFlag(FlagUnderline)
		case p == 25:
			s = s.WithoutFlag(FlagBlink)
		case p == 27:
			s = s.WithoutFlag(FlagInverse)
		case p == 28:
			s = s.WithoutFlag(FlagInvisible)
		case p >= 30 && p <= 37:
			s = s.WithForeground(p - 30)
		case p == 38:
			var idx int
			idx, i = extendedColor(params, i, match)
			if idx >= 0 {
				s = s.WithForeground(idx)
			}
		case p == 39:
			s = s.WithForeground(DefaultForeground)
		case p >= 40 && p <= 47:
			s = s.WithBackground(p - 40)
		case p == 48:
			var idx int
			idx, i = extendedColor(params, i, match)
			if idx >= 0 {
				s = s.WithBackground(idx)
			}
		case p == 49:
			s = s.WithBackground(DefaultBackground)
		case p >= 90 && p <= 97:
			s = s.WithForeground(p - 90 + 8)
		case p >= 100 && p <= 107:
			s = s.WithBackground(p - 100 + 8)
		default:
			if warn != nil {
				warn(p)
			}
		}
	}
	return s
}

// extendedColor parses the "5;n" or "2;r;g;b" tail of an SGR 38/48
// sequence starting at params[i+1], returning the resolved palette index
// and the new scan cursor (the index of the last consumed parameter).
func extendedColor(params []int, i int, match PaletteMatcher) (int, int) {
	if i+1 >= len(params) {
		return -1, i
	}
	switch params[i+1] {
	case 5:
		if i+2 < len(params) {
			return params[i+2], i + 2
		}
	case 2:
		if i+4 < len(params) {
			r, g, b := params[i+2], params[i+3], params[i+4]
			if match == nil {
				match = DefaultPaletteMatcher{}
			}
			return match.Nearest(uint8(r), uint8(g), uint8(b)), i + 4
		}
	}
	return -1, i
}
