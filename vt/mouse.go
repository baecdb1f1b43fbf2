// Copyright © 2025 extraterm contributors
//
// File: vt/mouse.go
// Summary: Mouse-event to byte-sequence translation and decoding (C7).
// Usage: Terminal.Mouse calls EncodeMouse using the screen's current
// MouseMode/MouseEncoding; DecodeMouseSGR exists mainly to support the
// SGR round-trip test spec.md §8 calls for.

package vt

import (
	"fmt"
	"strconv"
	"strings"
)

// Button codes, before modifier/motion bits are folded in.
const (
	ButtonLeft    = 0
	ButtonMiddle  = 1
	ButtonRight   = 2
	ButtonRelease = 3
	ButtonWheelUp = 64
	ButtonWheelDn = 65
)

// modifier/motion bits, added directly to the button code per spec.md
// §4.6 ("modifier bits shift=4, meta=8, ctrl=16 shifted by 2").
const (
	mouseModShift  = 4
	mouseModMeta   = 8
	mouseModCtrl   = 16
	mouseModMotion = 32
)

// EncodeButtonCode folds a base button plus modifiers/motion into the
// single button code every mouse encoding starts from.
func EncodeButtonCode(base int, shift, meta, ctrl, motion bool) int {
	code := base
	if shift {
		code += mouseModShift
	}
	if meta {
		code += mouseModMeta
	}
	if ctrl {
		code += mouseModCtrl
	}
	if motion {
		code += mouseModMotion
	}
	return code
}

// EncodeMouse formats a (button-code, x, y) triple per the given
// encoding. x and y are 1-based cell coordinates. release distinguishes
// SGR's trailing M/m; encodings that don't need it ignore the flag.
func EncodeMouse(encoding MouseEncoding, code, x, y int, release bool) []byte {
	switch encoding {
	case MouseEncodingSGR:
		final := byte('M')
		if release {
			final = 'm'
		}
		return []byte(fmt.Sprintf("\x1b[<%d;%d;%d%c", code, x, y, final))
	case MouseEncodingURXVT:
		return []byte(fmt.Sprintf("\x1b[%d;%d;%dM", code+32, x, y))
	default: // MouseEncodingDefault / MouseEncodingUTF8
		return encodeMouseDefault(code, x, y, encoding == MouseEncodingUTF8)
	}
}

// encodeMouseDefault implements the original X10-derived "CSI M" wire
// format: three data bytes each biased by 32. In UTF-8 mode a value that
// would overflow a single byte (x or y past column/row 223) is emitted
// as its UTF-8 encoding instead of being truncated.
func encodeMouseDefault(code, x, y int, utf8 bool) []byte {
	out := []byte{0x1b, '[', 'M'}
	out = append(out, encodeMouseByte(code+32, utf8)...)
	out = append(out, encodeMouseByte(x+32, utf8)...)
	out = append(out, encodeMouseByte(y+32, utf8)...)
	return out
}

func encodeMouseByte(v int, utf8 bool) []byte {
	if v <= 255 || !utf8 {
		return []byte{byte(v)}
	}
	return []byte(string(rune(v)))
}

// EncodeMouseVT300 implements spec.md's "vt300" encoding, an obscure
// format some legacy DEC-locator-adjacent clients still expect.
func EncodeMouseVT300(code, x, y int) []byte {
	return []byte(fmt.Sprintf("\x1b[24%d~[%d,%d]\r", code, x, y))
}

// DecodeMouseSGR parses an SGR mouse report ("\x1b[<b;x;yM" or "...m")
// back into its components, for the encode/decode round-trip law.
func DecodeMouseSGR(data []byte) (code, x, y int, release bool, ok bool) {
	s := string(data)
	if !strings.HasPrefix(s, "\x1b[<") || len(s) < 2 {
		return 0, 0, 0, false, false
	}
	body := s[3:]
	if len(body) == 0 {
		return 0, 0, 0, false, false
	}
	final := body[len(body)-1]
	if final != 'M' && final != 'm' {
		return 0, 0, 0, false, false
	}
	body = body[:len(body)-1]
	parts := strings.Split(body, ";")
	if len(parts) != 3 {
		return 0, 0, 0, false, false
	}
	vals := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, 0, 0, false, false
		}
		vals[i] = n
	}
	return vals[0], vals[1], vals[2], final == 'm', true
}
