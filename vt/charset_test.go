// Copyright © 2025 extraterm contributors

package vt

import "testing"

func TestSCLDLineDrawingRemap(t *testing.T) {
	term := NewTerminal(10, 1)
	// Designate G0 as line-drawing, then print '`', which maps to the diamond.
	term.WriteString("\x1b(0`")
	term.Flush()

	row := term.Screen().Buffer().Row(0)
	if row[0].Rune != '◆' {
		t.Errorf("cell 0 = %q, want line-drawing diamond", row[0].Rune)
	}
}

func TestUKPoundSubstitution(t *testing.T) {
	term := NewTerminal(10, 1)
	term.WriteString("\x1b(A#")
	term.Flush()

	row := term.Screen().Buffer().Row(0)
	if row[0].Rune != '£' {
		t.Errorf("cell 0 = %q, want £", row[0].Rune)
	}
}

func TestSOSIShiftsBetweenG0AndG1(t *testing.T) {
	term := NewTerminal(10, 1)
	// G0 stays ASCII, G1 becomes line-drawing; SO selects G1 for one glyph,
	// SI shifts back to G0 for the next.
	term.WriteString("\x1b)0\x0e`\x0fa")
	term.Flush()

	row := term.Screen().Buffer().Row(0)
	if row[0].Rune != '◆' {
		t.Errorf("cell 0 (G1 active) = %q, want ◆", row[0].Rune)
	}
	if row[1].Rune != 'a' {
		t.Errorf("cell 1 (G0 active again) = %q, want a", row[1].Rune)
	}
}
