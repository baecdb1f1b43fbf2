// Copyright © 2025 extraterm contributors
//
// File: vt/keys.go
// Summary: Keyboard-event to byte-sequence translation (C7).
// Usage: Terminal.KeyDown calls TranslateKey (Terminal.KeyPress calls
// translateRune) and writes the result to the data channel, the way the
// source's keyDownHandler does.

package vt

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Key and ModMask reuse tcell's key/modifier vocabulary as the abstract
// input-event types collaborators construct; only the constants (not
// tcell's screen/rendering machinery) are pulled in.
type Key = tcell.Key
type ModMask = tcell.ModMask
type ButtonMask = tcell.ButtonMask

const (
	ModShift = tcell.ModShift
	ModCtrl  = tcell.ModCtrl
	ModAlt   = tcell.ModAlt
	ModMeta  = tcell.ModMeta
)

// KeyResult is what TranslateKey computes: bytes to send upstream, or an
// instruction to scroll the view instead of sending anything.
type KeyResult struct {
	Bytes       []byte
	ScrollDelta int  // non-zero: caller should ScrollView(delta), not send Bytes
	Handled     bool // false: unknown key, caller should emit unknown-keydown
}

// TranslateKey maps a logical key + modifiers to the byte sequence the
// remote application expects, honoring cursor-application and mac-style
// Alt/Meta conventions. Grounded on the CSI/SS3 tables in
// apps/texelterm/parser/keymap.go and generalized to spec.md §4.6's rule
// list.
func TranslateKey(key Key, mods ModMask, r rune, cursorAppMode bool, mac bool) KeyResult {
	shift := mods&ModShift != 0
	ctrl := mods&ModCtrl != 0
	alt := mods&ModAlt != 0
	meta := mods&ModMeta != 0

	switch key {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if shift {
			return KeyResult{Bytes: []byte{0x08}, Handled: true}
		}
		return KeyResult{Bytes: []byte{0x7f}, Handled: true}

	case tcell.KeyUp, tcell.KeyDown, tcell.KeyRight, tcell.KeyLeft:
		if shift && ctrl {
			delta := 1
			if key == tcell.KeyUp {
				delta = -1
			}
			if key == tcell.KeyUp || key == tcell.KeyDown {
				return KeyResult{ScrollDelta: delta, Handled: true}
			}
		}
		letter := arrowLetter(key)
		if ctrl {
			return KeyResult{Bytes: []byte(fmt.Sprintf("\x1b[1;5%c", letter)), Handled: true}
		}
		if cursorAppMode {
			return KeyResult{Bytes: []byte{0x1b, 'O', letter}, Handled: true}
		}
		return KeyResult{Bytes: []byte{0x1b, '[', letter}, Handled: true}

	case tcell.KeyPgUp:
		if shift {
			return KeyResult{ScrollDelta: -1, Handled: true}
		}
		return KeyResult{Bytes: []byte("\x1b[5~"), Handled: true}
	case tcell.KeyPgDn:
		if shift {
			return KeyResult{ScrollDelta: 1, Handled: true}
		}
		return KeyResult{Bytes: []byte("\x1b[6~"), Handled: true}

	case tcell.KeyHome:
		return KeyResult{Bytes: []byte("\x1bOH"), Handled: true}
	case tcell.KeyEnd:
		return KeyResult{Bytes: []byte("\x1bOF"), Handled: true}

	case tcell.KeyF1:
		return KeyResult{Bytes: []byte("\x1bOP"), Handled: true}
	case tcell.KeyF2:
		return KeyResult{Bytes: []byte("\x1bOQ"), Handled: true}
	case tcell.KeyF3:
		return KeyResult{Bytes: []byte("\x1bOR"), Handled: true}
	case tcell.KeyF4:
		return KeyResult{Bytes: []byte("\x1bOS"), Handled: true}
	case tcell.KeyF5:
		return KeyResult{Bytes: []byte("\x1b[15~"), Handled: true}
	case tcell.KeyF6:
		return KeyResult{Bytes: []byte("\x1b[17~"), Handled: true}
	case tcell.KeyF7:
		return KeyResult{Bytes: []byte("\x1b[18~"), Handled: true}
	case tcell.KeyF8:
		return KeyResult{Bytes: []byte("\x1b[19~"), Handled: true}
	case tcell.KeyF9:
		return KeyResult{Bytes: []byte("\x1b[20~"), Handled: true}
	case tcell.KeyF10:
		return KeyResult{Bytes: []byte("\x1b[21~"), Handled: true}
	case tcell.KeyF11:
		return KeyResult{Bytes: []byte("\x1b[23~"), Handled: true}
	case tcell.KeyF12:
		return KeyResult{Bytes: []byte("\x1b[24~"), Handled: true}

	case tcell.KeyEnter:
		return KeyResult{Bytes: []byte{'\r'}, Handled: true}
	case tcell.KeyTab:
		return KeyResult{Bytes: []byte{'\t'}, Handled: true}
	case tcell.KeyEsc:
		return KeyResult{Bytes: []byte{0x1b}, Handled: true}
	case tcell.KeyDelete:
		return KeyResult{Bytes: []byte("\x1b[3~"), Handled: true}
	case tcell.KeyInsert:
		return KeyResult{Bytes: []byte("\x1b[2~"), Handled: true}
	}

	if key == tcell.KeyRune {
		return translateRune(r, ctrl, alt, meta, mac)
	}

	// Ctrl+letter arrives as a dedicated tcell.Key (KeyCtrlA..KeyCtrlZ and
	// friends) rather than as KeyRune; fold those back through the same
	// control-byte rule.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return KeyResult{Bytes: []byte{byte(key)}, Handled: true}
	}

	return KeyResult{Handled: false}
}

func arrowLetter(key Key) byte {
	switch key {
	case tcell.KeyUp:
		return 'A'
	case tcell.KeyDown:
		return 'B'
	case tcell.KeyRight:
		return 'C'
	default:
		return 'D'
	}
}

// translateRune implements the plain-character rules: ctrl-letter folding,
// ctrl-space/bracket/backslash special cases, and alt/meta escape prefix.
func translateRune(r rune, ctrl, alt, meta, mac bool) KeyResult {
	if ctrl {
		switch {
		case r == ' ':
			return KeyResult{Bytes: []byte{0x00}, Handled: true}
		case r >= '3' && r <= '7':
			return KeyResult{Bytes: []byte{byte(r) - '3' + 0x1b}, Handled: true}
		case r == ']':
			return KeyResult{Bytes: []byte{0x1d}, Handled: true}
		case r == '\\' || r == '8':
			return KeyResult{Bytes: []byte{0x7f}, Handled: true}
		case r >= 'a' && r <= 'z':
			return KeyResult{Bytes: []byte{byte(r) - 'a' + 1}, Handled: true}
		case r >= 'A' && r <= 'Z':
			return KeyResult{Bytes: []byte{byte(r) - 'A' + 1}, Handled: true}
		}
	}

	prefixEsc := (alt && !mac) || (meta && mac)
	buf := []byte(string(r))
	if prefixEsc {
		out := make([]byte, 0, len(buf)+1)
		out = append(out, 0x1b)
		out = append(out, buf...)
		return KeyResult{Bytes: out, Handled: true}
	}
	return KeyResult{Bytes: buf, Handled: true}
}
