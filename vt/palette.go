// Copyright © 2025 extraterm contributors
//
// File: vt/palette.go
// Summary: 256-entry xterm-compatible palette and nearest-color matching (C1).
// Usage: Backs Style's background/foreground indices; used by SGR 38/48 extended color.

package vt

import "github.com/lucasb-eyer/go-colorful"

// RGB is a plain 24-bit color triple.
type RGB struct {
	R, G, B uint8
}

// Palette holds the 256 indexed colors a Screen renders through, plus the
// pair of colors that DefaultForeground/DefaultBackground resolve to.
type Palette struct {
	Colors     [256]RGB
	DefaultFG  RGB
	DefaultBG  RGB
}

// DefaultPalette builds the standard xterm layout: 16 named colors, then a
// 6x6x6 color cube, then a 24-step greyscale ramp. Grounded on the layout
// built by the teacher's newDefaultPalette (apps/texelterm/term.go), here
// producing plain RGB triples instead of tcell.Color values.
func DefaultPalette() Palette {
	var p Palette
	named := [16]RGB{
		{0, 0, 0}, {128, 0, 0}, {0, 128, 0}, {128, 128, 0},
		{0, 0, 128}, {128, 0, 128}, {0, 128, 128}, {192, 192, 192},
		{128, 128, 128}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
		{0, 0, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
	}
	copy(p.Colors[:16], named[:])

	levels := [6]uint8{0, 95, 135, 175, 215, 255}
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p.Colors[i] = RGB{levels[r], levels[g], levels[b]}
				i++
			}
		}
	}

	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		p.Colors[i] = RGB{gray, gray, gray}
		i++
	}

	p.DefaultFG = p.Colors[15]
	p.DefaultBG = p.Colors[0]
	return p
}

// WithSeed overrides palette entries 0-15 (the "16 named" colors) with a
// caller-supplied seed, as WithPalette allows at construction.
func (p Palette) WithSeed(seed [16]RGB) Palette {
	copy(p.Colors[:16], seed[:])
	return p
}

// Resolve returns the RGB color a palette index denotes, honoring the
// DefaultBackground/DefaultForeground sentinels.
func (p Palette) Resolve(index int, isBackground bool) RGB {
	switch index {
	case DefaultBackground:
		return p.DefaultBG
	case DefaultForeground:
		return p.DefaultFG
	}
	if index < 0 || index >= len(p.Colors) {
		if isBackground {
			return p.DefaultBG
		}
		return p.DefaultFG
	}
	return p.Colors[index]
}

// PaletteMatcher resolves an arbitrary 24-bit color (SGR 38;2/48;2) to the
// nearest entry in a 256-color palette.
type PaletteMatcher interface {
	Nearest(r, g, b uint8) int
}

// DefaultPaletteMatcher implements spec's byte-exact weighted-Euclidean
// distance formula: 30^2*dr^2 + 59^2*dg^2 + 11^2*db^2, matched against
// the 256 entries of Palette (DefaultPalette when Palette is the zero
// value). Ties resolve to the lowest index. This is the matcher ApplySGR
// uses unless Options.PaletteMatch overrides it.
type DefaultPaletteMatcher struct {
	Palette Palette
}

func (m DefaultPaletteMatcher) Nearest(r, g, b uint8) int {
	pal := m.Palette
	if pal == (Palette{}) {
		pal = DefaultPalette()
	}
	best, bestDist := 0, -1
	for i, c := range pal.Colors {
		dr := int(c.R) - int(r)
		dg := int(c.G) - int(g)
		db := int(c.B) - int(b)
		dist := 30*30*dr*dr + 59*59*dg*dg + 11*11*db*db
		if bestDist < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

// CIE94PaletteMatcher is an alternate matcher, backed by go-colorful's
// perceptual CIE94 distance, offered as a selectable Options.PaletteMatch
// strategy (see SPEC_FULL.md's Open Question decision on nearest-color
// matching). It is not the default because spec.md pins the weighted
// Euclidean formula as a testable property.
type CIE94PaletteMatcher struct {
	Palette Palette
}

func (m CIE94PaletteMatcher) Nearest(r, g, b uint8) int {
	pal := m.Palette
	if pal == (Palette{}) {
		pal = DefaultPalette()
	}
	target := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	best, bestDist := 0, -1.0
	for i, c := range pal.Colors {
		cand := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
		dist := target.DistanceCIE94(cand)
		if bestDist < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}
