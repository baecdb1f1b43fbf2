// Copyright © 2025 extraterm contributors
//
// File: vt/charset.go
// Summary: Named replacement character tables and G0-G3 bank selection (C4).
// Usage: Escape-state charset designators select into these tables; the
// active table remaps printable bytes before they reach the grid.

package vt

import "golang.org/x/text/encoding/charmap"

// CharsetID names one of the designatable replacement tables.
type CharsetID int

const (
	CharsetASCII CharsetID = iota
	CharsetSCLD            // DEC Special Character and Line Drawing
	CharsetUK
	CharsetDutch
	CharsetFinnish
	CharsetFrench
	CharsetFrenchCanadian
	CharsetGerman
	CharsetItalian
	CharsetNorwegianDanish
	CharsetSpanish
	CharsetSwedish
	CharsetSwiss
	CharsetISOLatin
)

// charsetFinal maps an ESC ( / ) / * / + final byte to a CharsetID, per
// spec.md's Charset-state enumeration.
var charsetFinal = map[byte]CharsetID{
	'0': CharsetSCLD,
	'A': CharsetUK,
	'B': CharsetASCII,
	'4': CharsetDutch,
	'C': CharsetFinnish,
	'5': CharsetFinnish,
	'R': CharsetFrench,
	'Q': CharsetFrenchCanadian,
	'K': CharsetGerman,
	'Y': CharsetItalian,
	'E': CharsetNorwegianDanish,
	'6': CharsetNorwegianDanish,
	'Z': CharsetSpanish,
	'H': CharsetSwedish,
	'7': CharsetSwedish,
	'=': CharsetSwiss,
}

// LookupCharsetFinal resolves an ESC-designator final byte to a CharsetID.
// ok is false for an unrecognized final (the designator is logged and
// ignored, per spec.md §4.4/§7 ProtocolWarning).
func LookupCharsetFinal(b byte) (CharsetID, bool) {
	id, ok := charsetFinal[b]
	return id, ok
}

// sclTable is the DEC Special Character and Line Drawing set, replacing
// ASCII 0x60-0x7E (the 31 code points starting at the backtick).
var sclTable = [...]rune{
	'◆', '▒', '␉', '␌', '␍', '␊', '°', '±',
	'␤', '␋', '┘', '┐', '┌', '└', '┼', '⎺',
	'⎻', '─', '⎼', '⎽', '├', '┤', '┴', '┬',
	'│', '≤', '≥', 'π', '≠', '£', '·',
}

// replace applies the active table to r, returning the substitute glyph
// (or r unchanged if the table has nothing to say about it).
func (id CharsetID) replace(r rune) rune {
	switch id {
	case CharsetASCII:
		return r
	case CharsetSCLD:
		if r >= 0x60 && int(r-0x60) < len(sclTable) {
			return sclTable[r-0x60]
		}
		return r
	case CharsetUK:
		if r == '#' {
			return '£' // pound sign replaces '#'
		}
		return r
	case CharsetISOLatin:
		if r >= 0xA0 && r <= 0xFF {
			return latin1Rune(byte(r))
		}
		return r
	case CharsetDutch, CharsetFinnish, CharsetFrench, CharsetFrenchCanadian,
		CharsetGerman, CharsetItalian, CharsetNorwegianDanish, CharsetSpanish,
		CharsetSwedish, CharsetSwiss:
		if repl, ok := nationalTables[id][r]; ok {
			return repl
		}
		return r
	default:
		return r
	}
}

// latin1Rune decodes a single ISO-8859-1 byte using x/text's charmap
// table, which for the upper half is the identity mapping the standard
// defines; going through charmap keeps this grounded on a real encoding
// table instead of a hand-copied one.
func latin1Rune(b byte) rune {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes([]byte{b})
	if err != nil || len(out) == 0 {
		return rune(b)
	}
	return []rune(string(out))[0]
}

// nationalTables holds the handful of ASCII code points each national
// variant replaces (VT220 national replacement character sets). Only the
// positions that actually differ from ASCII are listed.
var nationalTables = map[CharsetID]map[rune]rune{
	CharsetDutch: {
		'#': '£', '@': '¾', '[': 'ĳ', '\\': '½',
		']': '|', '{': '¨', '|': 'f', '}': '¼', '~': '´',
	},
	CharsetFinnish: {
		'[': 'Ä', '\\': 'Ö', ']': 'Å', '^': 'Ü',
		'`': 'é', '{': 'ä', '|': 'ö', '}': 'å', '~': 'ü',
	},
	CharsetFrench: {
		'#': '£', '@': 'à', '[': '°', '\\': 'ç',
		']': '§', '{': 'é', '|': 'ù', '}': 'è', '~': '¨',
	},
	CharsetFrenchCanadian: {
		'@': 'à', '[': 'â', '\\': 'ç', ']': 'ê',
		'^': 'î', '`': 'ô', '{': 'é', '|': 'ù', '}': 'è', '~': 'û',
	},
	CharsetGerman: {
		'@': '§', '[': 'Ä', '\\': 'Ö', ']': 'Ü',
		'{': 'ä', '|': 'ö', '}': 'ü', '~': 'ß',
	},
	CharsetItalian: {
		'#': '£', '@': '§', '[': '°', '\\': 'ç',
		']': 'é', '`': 'ù', '{': 'à', '|': 'ò', '}': 'è', '~': 'ì',
	},
	CharsetNorwegianDanish: {
		'@': 'Ä', '[': 'Æ', '\\': 'Ø', ']': 'Å',
		'^': 'Ü', '`': 'ä', '{': 'æ', '|': 'ø', '}': 'å', '~': 'ü',
	},
	CharsetSpanish: {
		'#': '£', '@': '§', '[': '¡', '\\': 'Ñ',
		']': '¿', '{': '°', '|': 'ñ', '}': 'ç',
	},
	CharsetSwedish: {
		'@': 'É', '[': 'Ä', '\\': 'Ö', ']': 'Å',
		'^': 'Ü', '`': 'é', '{': 'ä', '|': 'ö', '}': 'å', '~': 'ü',
	},
	CharsetSwiss: {
		'#': 'ù', '@': 'à', '[': 'é', '\\': 'ç',
		']': 'ê', '^': 'î', '_': 'è', '`': 'ô', '{': 'ä',
		'|': 'ö', '}': 'ü', '~': 'û',
	},
}
