// Copyright © 2025 extraterm contributors
//
// File: vt/terminal.go
// Summary: Public controller (C9): lifecycle, resize, reset, write,
// feed-input, subscribe. Binds the parser and input translator to the
// screen and line buffer.
// Usage: this is the package's main entry point; see doc.go for an
// overview and cmd/vtdump for a worked example.

package vt

import "bytes"

// Terminal is the engine: a byte-stream-driven state machine plus an
// input-event translator, wired together the way apps/texelterm/term.go
// wires its VTerm, scheduler, and input handlers to one façade.
type Terminal struct {
	opts   Options
	screen *Screen
	parser *Parser
	emit   Emitter
	sched  *WriteScheduler

	destroyed bool
}

// NewTerminal allocates a cols x rows engine with a blank screen.
// Dimensions less than 1 are clamped to 1 (GeometryError, logged if debug).
func NewTerminal(cols, rows int, opts ...Option) *Terminal {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	t := &Terminal{opts: o}
	if cols < 1 || rows < 1 {
		t.warnErr(GeometryError{Cols: cols, Rows: rows})
	}
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	palette := DefaultPalette()
	if o.hasPaletteSeed {
		palette = palette.WithSeed(o.paletteSeed)
	}
	match := o.PaletteMatch
	if match == nil {
		match = DefaultPaletteMatcher{Palette: palette}
	}

	screen := NewScreen(cols, rows, o.Scrollback, palette, match, o.PhysicalScroll, t.warnErr)
	t.screen = screen
	t.parser = NewParser(screen, &t.emit, o.ApplicationModeCookie, o.TermName, o.VisualBell, o.PopOnBell, t.warn)
	t.sched = NewWriteScheduler(t.parser, screen, &t.emit, o.Scheduler)
	return t
}

func (t *Terminal) warn(code int) {
	if !t.opts.Debug || t.opts.Logger == nil {
		return
	}
	if code < 0 {
		t.opts.Logger.Print(ApplicationCookieMismatch{}.Error())
		return
	}
	t.opts.Logger.Print(ProtocolWarning{Code: code}.Error())
}

// warnErr logs a structured diagnostic (GeometryError,
// InternalInvariantBreach) the same way warn logs protocol codes: only
// when Options.Debug is set and a Logger is configured, never returned
// from the public API.
func (t *Terminal) warnErr(err error) {
	if !t.opts.Debug || t.opts.Logger == nil {
		return
	}
	t.opts.Logger.Print(err.Error())
}

// Cols and Rows report the active buffer's current geometry.
func (t *Terminal) Cols() int { return t.screen.Cols() }
func (t *Terminal) Rows() int { return t.screen.Rows() }

// Cursor reports the cursor position, relative to the viewport top.
func (t *Terminal) Cursor() (x, y int) { return t.screen.Cursor() }

// Screen exposes the underlying model for renderers/tests. Callers must
// only read it, and only from the engine's own goroutine, per spec.md's
// concurrency model.
func (t *Terminal) Screen() *Screen { return t.screen }

// CursorBlink reports the construction-time cursor-blink hint
// (Options.CursorBlink) a renderer should honor when drawing the cursor.
func (t *Terminal) CursorBlink() bool { return t.opts.CursorBlink }

// On subscribes fn to an event channel; returns an unsubscribe function.
func (t *Terminal) On(name EventName, fn func(Event)) func() {
	return t.emit.On(name, fn)
}

// Write feeds bytes into the engine through the write scheduler. Safe to
// call with an unbounded amount of data; large writes are chunked and
// yielded internally rather than processed synchronously.
func (t *Terminal) Write(data []byte) {
	if t.destroyed {
		return
	}
	if t.opts.ConvertEOL {
		data = bytes.ReplaceAll(data, []byte{'\n'}, []byte{'\r', '\n'})
	}
	t.sched.Write(data)
}

// WriteString is a convenience wrapper around Write.
func (t *Terminal) WriteString(s string) { t.Write([]byte(s)) }

// Flush synchronously drains any buffered writes, useful in tests and in
// cmd/vtdump where deterministic output matters more than yielding.
func (t *Terminal) Flush() {
	if t.destroyed {
		return
	}
	t.sched.Flush()
}

// Resize changes the terminal's geometry. Non-positive dimensions are
// clamped to 1 (GeometryError, logged if debug, per spec.md §4.7).
func (t *Terminal) Resize(cols, rows int) {
	if t.destroyed {
		return
	}
	if cols < 1 || rows < 1 {
		t.warnErr(GeometryError{Cols: cols, Rows: rows})
	}
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	t.screen.Resize(cols, rows)
}

// Reset implements RIS: reinitializes screen state (all fields except
// palette, geometry and scrollback cap). Does not cancel pending writes;
// per spec.md §5, buffered-but-unprocessed bytes are discarded instead.
func (t *Terminal) Reset() {
	if t.destroyed {
		return
	}
	t.sched.queue = nil
	t.sched.scheduled = false
	t.parser.reset()
	t.screen.FullReset()
}

// ScrollView moves the visible window by delta rows (manual scrollback
// navigation), emitting manual-scroll.
func (t *Terminal) ScrollView(delta int) {
	buf := t.screen.Buffer()
	buf.ScrollView(delta)
	atBottom := buf.YDisp() == buf.YBase()
	t.emit.Emit(Event{Name: EventManualScroll, ScrollPosition: buf.YDisp(), ScrollAtBottom: atBottom})
}

// KeyDown translates a keyboard event to bytes and emits data, keydown
// and key; an unrecognized key emits unknown-keydown instead.
func (t *Terminal) KeyDown(key Key, mods ModMask, r rune) {
	if t.destroyed {
		return
	}
	res := TranslateKey(key, mods, r, t.screen.cursorAppMode, t.opts.MacKeyboard)
	if !res.Handled {
		t.emit.Emit(Event{Name: EventUnknownKeydown, Key: key, Modifiers: mods})
		return
	}
	if res.ScrollDelta != 0 {
		t.ScrollView(res.ScrollDelta)
		return
	}
	t.emit.Emit(Event{Name: EventKeydown, Key: key, Modifiers: mods})
	t.emit.Emit(Event{Name: EventKey, Key: key, Modifiers: mods})
	t.emit.Emit(Event{Name: EventData, Bytes: res.Bytes})
}

// KeyPress translates a printed character (as opposed to a logical key)
// to bytes, emitting keypress, key and data.
func (t *Terminal) KeyPress(r rune, mods ModMask) {
	if t.destroyed {
		return
	}
	res := translateRune(r, mods&ModCtrl != 0, mods&ModAlt != 0, mods&ModMeta != 0, t.opts.MacKeyboard)
	t.emit.Emit(Event{Name: EventKeypress, Rune: r, Modifiers: mods})
	t.emit.Emit(Event{Name: EventKey, Rune: r, Modifiers: mods})
	t.emit.Emit(Event{Name: EventData, Bytes: res.Bytes})
}

// MouseEventType names the gesture Mouse reports.
type MouseEventType int

const (
	MousePress MouseEventType = iota
	MouseRelease
	MouseMotion
	MouseWheelUp
	MouseWheelDown
)

// Mouse translates a mouse gesture at 1-based cell (x,y) into the byte
// sequence the active mouse mode/encoding calls for, honoring the
// X10-doesn't-report-releases and per-mode motion-gating rules.
func (t *Terminal) Mouse(evType MouseEventType, button int, mods ModMask, x, y int) {
	if t.destroyed {
		return
	}
	s := t.screen
	if s.mouseMode == MouseOff {
		return
	}
	motion := evType == MouseMotion
	if motion {
		if s.mouseMode != MouseButtonEvent && s.mouseMode != MouseAnyEvent {
			return
		}
		if s.mouseMode == MouseButtonEvent && button < 0 {
			return
		}
	}
	release := evType == MouseRelease
	if release && s.mouseMode == MouseX10 {
		return
	}

	base := button
	switch evType {
	case MouseRelease:
		base = ButtonRelease
	case MouseWheelUp:
		base = ButtonWheelUp
	case MouseWheelDown:
		base = ButtonWheelDn
	}

	shift := mods&ModShift != 0
	metaMod := mods&ModMeta != 0
	ctrl := mods&ModCtrl != 0
	code := EncodeButtonCode(base, shift, metaMod, ctrl, motion)
	bytesOut := EncodeMouse(s.mouseEncoding, code, x, y, release)
	t.emit.Emit(Event{Name: EventData, Bytes: bytesOut})

	if s.mouseMode == MouseVT200 && evType == MousePress {
		relCode := EncodeButtonCode(ButtonRelease, shift, metaMod, ctrl, false)
		t.emit.Emit(Event{Name: EventData, Bytes: EncodeMouse(s.mouseEncoding, relCode, x, y, true)})
	}
}

// Paste translates pasted text into outbound bytes, wrapping it in
// ESC [200~ ... ESC [201~ when bracketed-paste mode (?2004) is enabled so
// the peer can tell pasted input apart from typed input; otherwise the
// text goes out unwrapped, exactly as typed keys would.
func (t *Terminal) Paste(text string) {
	if t.destroyed {
		return
	}
	if !t.screen.bracketedPaste {
		t.emit.Emit(Event{Name: EventData, Bytes: []byte(text)})
		return
	}
	var b bytes.Buffer
	b.WriteString("\x1b[200~")
	b.WriteString(text)
	b.WriteString("\x1b[201~")
	t.emit.Emit(Event{Name: EventData, Bytes: b.Bytes()})
}

// Focus reports a focus-in/focus-out transition, emitting data only if
// focus-event reporting (?1004) is enabled.
func (t *Terminal) Focus(focused bool) {
	if t.destroyed || !t.screen.focusEvents {
		return
	}
	seq := "\x1b[O"
	if focused {
		seq = "\x1b[I"
	}
	t.emit.Emit(Event{Name: EventData, Bytes: []byte(seq)})
}

// Destroy cancels any pending work and clears subscribers; further
// Write/KeyDown/Mouse/Focus calls become no-ops, idempotently.
func (t *Terminal) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	t.sched.queue = nil
	t.emit.Clear()
}
