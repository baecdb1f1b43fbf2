// Copyright © 2025 extraterm contributors

// Package vt implements a VT/xterm-compatible terminal emulator engine:
// a byte-stream parser, a cell grid with scrollback and an alternate
// buffer, and a keyboard/mouse input translator. It renders nothing
// itself; collaborators subscribe to its events and draw.
package vt
