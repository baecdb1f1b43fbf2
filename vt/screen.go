// Copyright © 2025 extraterm contributors
//
// File: vt/screen.go
// Summary: Cursor, modes, scroll region, tab stops and alt-buffer state (C3).
// Usage: The parser dispatch tables (parser_csi.go etc.) mutate a Screen in
// response to escape sequences; Terminal exposes it read-only to callers.

package vt

// Mouse reporting levels, named after the CSI ? codes that enable them.
type MouseMode int

const (
	MouseOff MouseMode = iota
	MouseX10
	MouseVT200
	MouseButtonEvent
	MouseAnyEvent
)

// MouseEncoding selects how button/coordinate triples are formatted.
type MouseEncoding int

const (
	MouseEncodingDefault MouseEncoding = iota
	MouseEncodingUTF8
	MouseEncodingSGR
	MouseEncodingURXVT
)

// altSnapshot is the shallow save captured on entering the alternate
// screen: geometry, lines, cursor, scroll region and tabs. SGR, charsets
// and glevel are deliberately left untouched by save/restore, per the
// partial-save the alternate-buffer semantics call for.
type altSnapshot struct {
	buf          *LineBuffer
	x, y         int
	scrollTop    int
	scrollBottom int
	tabs         map[int]bool
}

// Screen holds all modal terminal state: cursor, modes, scroll region,
// tab stops, charset banks and the alternate-buffer snapshot. Grounded on
// apps/texelterm/parser/vterm.go's field set (cursorX/Y, savedX/Y,
// scrollTop/Bottom, tabStops, insertMode/originMode/wraparoundMode, the
// G0-G3 charset slots) and term.go's mouse-mode/encoding fields.
type Screen struct {
	main *LineBuffer
	alt  *LineBuffer
	buf  *LineBuffer // currently active buffer (main or alt)

	x, y         int
	savedX       int
	savedY       int
	haveSaved    bool
	scrollTop    int
	scrollBottom int
	tabs         map[int]bool

	style Style

	insertMode     bool
	wraparound     bool
	originMode     bool
	cursorAppMode  bool
	keypadAppMode  bool
	cursorVisible  bool
	focusEvents    bool
	bracketedPaste bool
	syncOutput     bool

	mouseMode     MouseMode
	mouseEncoding MouseEncoding

	charsets      [4]CharsetID
	gcharset      int // not read; the slot being designated is Parser.charsetSlot
	glevel        int // active GL bank index (0-3), selected by LSn
	grlevel       int // active GR bank index, selected by LSnR

	altActive bool
	altSaved  *altSnapshot

	saved132 int // cols saved on entering 132-col mode; 0 if not saved
	in132    bool

	palette Palette
	match   PaletteMatcher

	physicalScroll bool

	warn func(error)
}

// NewScreen allocates a blank screen of the given geometry. physicalScroll
// selects spec.md §4.2's alternate scroll-up eviction strategy for the
// main buffer's scrollback (see LineBuffer.SetPhysicalScroll). warn, if
// non-nil, receives structural diagnostics (InternalInvariantBreach) the
// same way Parser's warn hook receives protocol diagnostics; nil disables
// them.
func NewScreen(cols, rows, scrollbackCap int, palette Palette, match PaletteMatcher, physicalScroll bool, warn func(error)) *Screen {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	s := &Screen{
		scrollBottom:   rows - 1,
		palette:        palette,
		match:          match,
		cursorVisible:  true,
		wraparound:     true,
		physicalScroll: physicalScroll,
		warn:           warn,
	}
	s.style = DefaultStyle()
	s.main = NewLineBuffer(cols, rows, scrollbackCap, s.style)
	s.main.SetPhysicalScroll(physicalScroll)
	s.alt = NewLineBuffer(cols, rows, 0, s.style)
	s.buf = s.main
	s.tabs = defaultTabs(cols)
	for i := range s.charsets {
		s.charsets[i] = CharsetASCII
	}
	return s
}

// DrainScrollEmit returns and clears rows physical-scroll mode has
// evicted from the main buffer's scrollback since the last drain.
func (s *Screen) DrainScrollEmit() []Row { return s.main.DrainEmitQueue() }

func defaultTabs(cols int) map[int]bool {
	t := make(map[int]bool)
	for x := 0; x < cols; x += 8 {
		t[x] = true
	}
	return t
}

// Cols and Rows report the active buffer's geometry.
func (s *Screen) Cols() int { return s.buf.Cols() }
func (s *Screen) Rows() int { return s.buf.Height() }

// Cursor reports the cursor position, relative to the viewport top.
func (s *Screen) Cursor() (x, y int) { return s.x, s.y }

// Style returns the current SGR style new glyphs are written with.
func (s *Screen) Style() Style { return s.style }

// SetStyle replaces the current SGR style.
func (s *Screen) SetStyle(st Style) { s.style = st }

// Buffer exposes the active LineBuffer for reads (rendering, tests).
func (s *Screen) Buffer() *LineBuffer { return s.buf }

// InAltScreen reports whether the alternate buffer is active.
func (s *Screen) InAltScreen() bool { return s.altActive }

// clampCursor keeps (x,y) within the viewport, or within the scroll
// region when origin mode is active.
func (s *Screen) clampCursor() {
	cols, rows := s.buf.Cols(), s.buf.Height()
	minY, maxY := 0, rows-1
	if s.originMode {
		minY, maxY = s.scrollTop, s.scrollBottom
	}
	if s.x < 0 {
		s.x = 0
	}
	if s.x > cols {
		s.x = cols
	}
	if s.y < minY {
		s.y = minY
	}
	if s.y > maxY {
		s.y = maxY
	}
}

// MoveTo sets the cursor to (x,y), honoring origin mode's offset and
// clamping to the viewport/scroll region.
func (s *Screen) MoveTo(x, y int) {
	if s.originMode {
		y += s.scrollTop
	}
	s.x, s.y = x, y
	s.clampCursor()
}

// LineFeed advances the cursor down one row, scrolling the region when
// the cursor sits at scrollBottom.
func (s *Screen) LineFeed() {
	if s.y == s.scrollBottom {
		s.buf.ScrollUp(s.scrollTop, s.scrollBottom, s.style.EraseStyle())
	} else if s.y < s.buf.Height()-1 {
		s.y++
	}
}

// ReverseIndex moves the cursor up one row, scrolling the region
// downward when the cursor sits at scrollTop.
func (s *Screen) ReverseIndex() {
	if s.y == s.scrollTop {
		s.buf.ScrollDown(s.scrollTop, s.scrollBottom, s.style.EraseStyle())
	} else if s.y > 0 {
		s.y--
	}
}

// PlaceChar writes r at the cursor, applying the active charset mapping,
// deferred-wrap, insert-mode splicing and wide-glyph pairing.
func (s *Screen) PlaceChar(r rune) {
	r = s.charsets[s.activeCharsetSlot()].replace(r)
	cols := s.buf.Cols()

	if s.x >= cols {
		if s.wraparound {
			row := s.buf.Row(s.y)
			if len(row) > 0 {
				row[cols-1].Wrapped = true
			}
			s.x = 0
			s.LineFeed()
		} else {
			s.x = cols - 1
		}
	}

	wide := IsWide(r)
	row := s.buf.Row(s.y)
	if s.insertMode {
		n := 1
		if wide {
			n = 2
		}
		row.InsertBlank(s.x, n, s.style)
	}
	if s.x < len(row) {
		row[s.x] = Cell{Rune: r, Style: s.style, Wide: wide}
	}
	if wide && s.x+1 < len(row) {
		row[s.x+1] = Cell{Rune: 0, Style: s.style}
	}
	s.buf.MarkDirty(s.y, s.y)

	s.x++
	if wide {
		s.x++
	}
}

// activeCharsetSlot resolves which of G0-G3 GL currently points at.
func (s *Screen) activeCharsetSlot() int { return s.glevel }

// SaveCursor implements DECSC/CSI s: saves (x,y) only.
func (s *Screen) SaveCursor() {
	s.savedX, s.savedY = s.x, s.y
	s.haveSaved = true
}

// RestoreCursor implements DECRC/CSI u: restores a previously saved
// (x,y), or is a no-op if nothing was saved.
func (s *Screen) RestoreCursor() {
	if !s.haveSaved {
		return
	}
	s.x, s.y = s.savedX, s.savedY
	s.clampCursor()
	if s.warn != nil && (s.x != s.savedX || s.y != s.savedY) {
		s.warn(InternalInvariantBreach{Detail: "restored cursor position was out of bounds for the current geometry, clamped"})
	}
}

// SetScrollRegion implements DECSTBM.
func (s *Screen) SetScrollRegion(top, bottom int) {
	rows := s.buf.Height()
	if top < 0 {
		top = 0
	}
	if bottom < 0 || bottom >= rows {
		bottom = rows - 1
	}
	if top >= bottom {
		top, bottom = 0, rows-1
	}
	s.scrollTop, s.scrollBottom = top, bottom
	s.x, s.y = 0, 0
	if s.originMode {
		s.y = top
	}
}

// EnterAltScreen implements CSI ?47h/?1047h/?1049h. Re-entry while
// already saved is a no-op, per spec's "only one level of save".
func (s *Screen) EnterAltScreen(resetOnEntry bool) {
	if s.altActive {
		return
	}
	s.altSaved = &altSnapshot{
		buf:          s.main,
		x:            s.x,
		y:            s.y,
		scrollTop:    s.scrollTop,
		scrollBottom: s.scrollBottom,
		tabs:         s.tabs,
	}
	s.alt = NewLineBuffer(s.main.Cols(), s.main.Height(), 0, s.style)
	s.alt.SetPhysicalScroll(s.physicalScroll)
	s.buf = s.alt
	s.altActive = true
	if resetOnEntry {
		s.x, s.y = 0, 0
		s.scrollTop, s.scrollBottom = 0, s.buf.Height()-1
		s.tabs = defaultTabs(s.buf.Cols())
	}
}

// LeaveAltScreen implements CSI ?47l/?1047l/?1049l, restoring the primary
// buffer bitwise as it stood before EnterAltScreen.
func (s *Screen) LeaveAltScreen() {
	if !s.altActive || s.altSaved == nil {
		return
	}
	s.buf = s.altSaved.buf
	s.main = s.altSaved.buf
	s.x, s.y = s.altSaved.x, s.altSaved.y
	s.scrollTop, s.scrollBottom = s.altSaved.scrollTop, s.altSaved.scrollBottom
	s.tabs = s.altSaved.tabs
	s.altActive = false
	s.altSaved = nil
}

// BackIndex implements DECBI: move the cursor left, scrolling the scroll
// region right by one column when already at its left edge.
func (s *Screen) BackIndex() {
	if s.x > 0 {
		s.x--
		return
	}
	for y := s.scrollTop; y <= s.scrollBottom; y++ {
		s.buf.Row(y).InsertBlank(0, 1, s.style)
	}
	s.buf.MarkDirty(s.scrollTop, s.scrollBottom)
}

// ForwardIndex implements DECFI: move the cursor right, scrolling the
// scroll region left by one column when already at its right edge.
func (s *Screen) ForwardIndex() {
	cols := s.buf.Cols()
	if s.x < cols-1 {
		s.x++
		return
	}
	for y := s.scrollTop; y <= s.scrollBottom; y++ {
		s.buf.Row(y).DeleteAt(0, 1, s.style.EraseStyle())
	}
	s.buf.MarkDirty(s.scrollTop, s.scrollBottom)
}

// SetTab sets a tab stop at the cursor's current column (HTS).
func (s *Screen) SetTab() { s.tabs[s.x] = true }

// ClearTab clears the tab stop at x; mode 3 (ClearAllTabs) clears every
// stop, matching CSI 3g.
func (s *Screen) ClearTab(x int) { delete(s.tabs, x) }

// ClearAllTabs removes every tab stop.
func (s *Screen) ClearAllTabs() { s.tabs = make(map[int]bool) }

// NextTab returns the next tab stop after x (CHT), clamped to cols.
func (s *Screen) NextTab(x, n int) int {
	cols := s.buf.Cols()
	for ; n > 0; n-- {
		x++
		for x < cols && !s.tabs[x] {
			x++
		}
	}
	if x > cols {
		x = cols
	}
	return x
}

// PrevTab returns the tab stop before x (CBT).
func (s *Screen) PrevTab(x, n int) int {
	for ; n > 0; n-- {
		x--
		for x > 0 && !s.tabs[x] {
			x--
		}
	}
	if x < 0 {
		x = 0
	}
	return x
}

// EraseInDisplay implements ED (CSI J). mode 3 is a no-op (no scrollback
// erase), per spec.
func (s *Screen) EraseInDisplay(mode int) {
	rows := s.buf.Height()
	erase := s.style.EraseStyle()
	switch mode {
	case 0:
		s.buf.Row(s.y).ClearRange(s.x, s.buf.Cols(), erase)
		for y := s.y + 1; y < rows; y++ {
			s.buf.Row(y).Clear(erase)
		}
		s.buf.MarkDirty(s.y, rows-1)
	case 1:
		for y := 0; y < s.y; y++ {
			s.buf.Row(y).Clear(erase)
		}
		s.buf.Row(s.y).ClearRange(0, s.x+1, erase)
		s.buf.MarkDirty(0, s.y)
	case 2:
		for y := 0; y < rows; y++ {
			s.buf.Row(y).Clear(erase)
		}
		s.buf.MarkDirty(0, rows-1)
	case 3:
		// no scrollback erase supported; accepted and ignored.
	}
}

// EraseInLine implements EL (CSI K).
func (s *Screen) EraseInLine(mode int) {
	erase := s.style.EraseStyle()
	row := s.buf.Row(s.y)
	switch mode {
	case 0:
		row.ClearRange(s.x, len(row), erase)
	case 1:
		row.ClearRange(0, s.x+1, erase)
	case 2:
		row.Clear(erase)
	}
	s.buf.MarkDirty(s.y, s.y)
}

// DECALN fills the screen with 'E', for the screen-alignment test.
func (s *Screen) DECALN() {
	rows := s.buf.Height()
	for y := 0; y < rows; y++ {
		row := s.buf.Row(y)
		for x := range row {
			row[x] = Cell{Rune: 'E', Style: DefaultStyle()}
		}
	}
	s.buf.MarkDirty(0, rows-1)
}

// SoftReset implements DECSTR (CSI !p): resets modes and the scroll
// region but leaves the screen content and cursor position untouched.
func (s *Screen) SoftReset() {
	s.insertMode = false
	s.originMode = false
	s.wraparound = true
	s.cursorVisible = true
	s.style = DefaultStyle()
	s.scrollTop, s.scrollBottom = 0, s.buf.Height()-1
	s.haveSaved = false
}

// FullReset implements RIS (ESC c): reinitializes all state except
// palette, cols, rows and scrollback cap.
func (s *Screen) FullReset() {
	cols, rows := s.main.Cols(), s.main.Height()
	scrollbackCap := s.main.ScrollbackCap()
	s.style = DefaultStyle()
	s.main = NewLineBuffer(cols, rows, scrollbackCap, s.style)
	s.main.SetPhysicalScroll(s.physicalScroll)
	s.alt = NewLineBuffer(cols, rows, 0, s.style)
	s.alt.SetPhysicalScroll(s.physicalScroll)
	s.buf = s.main
	s.x, s.y = 0, 0
	s.savedX, s.savedY, s.haveSaved = 0, 0, false
	s.scrollTop, s.scrollBottom = 0, rows-1
	s.tabs = defaultTabs(cols)
	s.insertMode, s.originMode = false, false
	s.wraparound = true
	s.cursorAppMode, s.keypadAppMode = false, false
	s.cursorVisible = true
	s.focusEvents, s.bracketedPaste, s.syncOutput = false, false, false
	s.mouseMode, s.mouseEncoding = MouseOff, MouseEncodingDefault
	for i := range s.charsets {
		s.charsets[i] = CharsetASCII
	}
	s.gcharset, s.glevel, s.grlevel = 0, 0, 0
	s.altActive, s.altSaved = false, nil
	s.saved132, s.in132 = 0, false
}

// Resize changes the primary buffer's geometry; the alternate buffer, if
// active, is resized to match.
func (s *Screen) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	s.main.Resize(cols, rows, s.style)
	s.alt.Resize(cols, rows, s.style)
	if s.scrollBottom >= rows {
		s.scrollBottom = rows - 1
	}
	if s.scrollTop > s.scrollBottom {
		s.scrollTop = 0
	}
	s.clampCursor()
}
