// Copyright © 2025 extraterm contributors

package vt

import (
	"log"
	"strings"
	"testing"
)

func cellString(row Row) string {
	out := make([]rune, 0, len(row))
	for _, c := range row {
		if c.Rune == 0 {
			continue
		}
		out = append(out, c.Rune)
	}
	return string(out)
}

func TestHello(t *testing.T) {
	term := NewTerminal(80, 24)
	term.WriteString("hi")
	term.Flush()

	row := term.Screen().Buffer().Row(0)
	if row[0].Rune != 'h' || row[0].Style != DefaultStyle() {
		t.Errorf("cell 0 = %+v, want h/default", row[0])
	}
	if row[1].Rune != 'i' || row[1].Style != DefaultStyle() {
		t.Errorf("cell 1 = %+v, want i/default", row[1])
	}
	x, y := term.Cursor()
	if x != 2 || y != 0 {
		t.Errorf("cursor = (%d,%d), want (2,0)", x, y)
	}
}

func TestColor(t *testing.T) {
	term := NewTerminal(80, 24)
	term.WriteString("\x1b[31mA\x1b[0mB")
	term.Flush()

	row := term.Screen().Buffer().Row(0)
	if row[0].Rune != 'A' || row[0].Style.Foreground() != 1 {
		t.Errorf("cell 0 = %+v, want A/fg=1", row[0])
	}
	if row[1].Rune != 'B' || row[1].Style != DefaultStyle() {
		t.Errorf("cell 1 = %+v, want B/default", row[1])
	}
}

func TestWrapAndScroll(t *testing.T) {
	term := NewTerminal(3, 2, WithScrollback(10))
	term.WriteString("abcdefg")
	term.Flush()

	buf := term.Screen().Buffer()
	if got := cellString(buf.Row(0)); got != "def" {
		t.Errorf("row 0 = %q, want %q", got, "def")
	}
	if got := strings.TrimRight(cellString(buf.Row(1)), " "); got != "g" {
		t.Errorf("row 1 = %q, want %q", got, "g")
	}
	if buf.ScrollbackLen() != 1 {
		t.Fatalf("scrollback len = %d, want 1", buf.ScrollbackLen())
	}
	if got := cellString(buf.ScrollbackRow(0)); got != "abc" {
		t.Errorf("scrollback row 0 = %q, want %q", got, "abc")
	}
	x, y := term.Cursor()
	if x != 1 || y != 1 {
		t.Errorf("cursor = (%d,%d), want (1,1)", x, y)
	}
}

func TestAltScreenRoundTrip(t *testing.T) {
	term := NewTerminal(80, 24)
	term.WriteString("A\x1b[?1049h")
	term.WriteString("B")
	term.WriteString("\x1b[?1049l")
	term.Flush()

	row := term.Screen().Buffer().Row(0)
	if row[0].Rune != 'A' {
		t.Errorf("cell 0 = %+v, want A", row[0])
	}
	if term.Screen().InAltScreen() {
		t.Error("expected primary buffer to be active after ?1049l")
	}
	x, y := term.Cursor()
	if x != 1 || y != 0 {
		t.Errorf("cursor = (%d,%d), want (1,0)", x, y)
	}
}

func TestSGR256Color(t *testing.T) {
	term := NewTerminal(80, 24)
	term.WriteString("\x1b[38;5;196mX")
	term.Flush()

	row := term.Screen().Buffer().Row(0)
	if row[0].Rune != 'X' || row[0].Style.Foreground() != 196 {
		t.Errorf("cell 0 = %+v, want X/fg=196", row[0])
	}
}

func TestDSRReportsCursorPosition(t *testing.T) {
	term := NewTerminal(80, 24)
	var got []byte
	term.On(EventData, func(ev Event) { got = ev.Bytes })
	term.WriteString("\x1b[6n")
	term.Flush()

	want := "\x1b[1;1R"
	if string(got) != want {
		t.Errorf("DSR reply = %q, want %q", got, want)
	}
}

func TestCSISplitAcrossWrites(t *testing.T) {
	whole := NewTerminal(80, 24)
	whole.WriteString("\x1b[31mA")
	whole.Flush()

	split := NewTerminal(80, 24)
	split.WriteString("\x1b[3")
	split.WriteString("1mA")
	split.Flush()

	wantRow := whole.Screen().Buffer().Row(0)
	gotRow := split.Screen().Buffer().Row(0)
	if wantRow[0] != gotRow[0] {
		t.Errorf("split write produced %+v, want %+v", gotRow[0], wantRow[0])
	}
}

func TestSaveRestoreCursorRoundTrip(t *testing.T) {
	term := NewTerminal(80, 24)
	term.WriteString("hello\x1b7\x1b[10;10H\x1b8")
	term.Flush()

	x, y := term.Cursor()
	if x != 5 || y != 0 {
		t.Errorf("cursor after DECRC = (%d,%d), want (5,0)", x, y)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	term := NewTerminal(80, 24)
	term.WriteString("\x1b[31mhello\x1b[?1049h")
	term.Flush()
	term.Reset()

	x, y := term.Cursor()
	if x != 0 || y != 0 {
		t.Errorf("cursor after reset = (%d,%d), want (0,0)", x, y)
	}
	if term.Screen().InAltScreen() {
		t.Error("expected primary buffer after reset")
	}
	if term.Screen().Style() != DefaultStyle() {
		t.Error("expected default style after reset")
	}
}

func TestRowsAlwaysColsWide(t *testing.T) {
	term := NewTerminal(5, 3, WithScrollback(4))
	term.WriteString("abcdefghijklmnop")
	term.Flush()

	buf := term.Screen().Buffer()
	for y := 0; y < buf.Height(); y++ {
		if len(buf.Row(y)) != 5 {
			t.Errorf("row %d has length %d, want 5", y, len(buf.Row(y)))
		}
	}
}

func TestPasteWrapsWhenBracketedPasteEnabled(t *testing.T) {
	term := NewTerminal(80, 24)
	term.WriteString("\x1b[?2004h")
	term.Flush()

	var got []byte
	term.On(EventData, func(ev Event) { got = ev.Bytes })
	term.Paste("hello")

	want := "\x1b[200~hello\x1b[201~"
	if string(got) != want {
		t.Errorf("Paste = %q, want %q", got, want)
	}
}

func TestPasteUnwrappedWhenBracketedPasteDisabled(t *testing.T) {
	term := NewTerminal(80, 24)

	var got []byte
	term.On(EventData, func(ev Event) { got = ev.Bytes })
	term.Paste("hello")

	if string(got) != "hello" {
		t.Errorf("Paste = %q, want %q", got, "hello")
	}
}

func TestSyncOutputDefersRefreshUntilReset(t *testing.T) {
	term := NewTerminal(10, 3)
	var refreshes int
	term.On(EventRefresh, func(Event) { refreshes++ })

	term.WriteString("\x1b[?2026h")
	term.WriteString("hi")
	term.Flush()
	if refreshes != 0 {
		t.Fatalf("refreshes = %d while sync output held, want 0", refreshes)
	}

	term.WriteString("\x1b[?2026l") // real-time scheduler drains this inline; no Flush needed
	if refreshes != 1 {
		t.Fatalf("refreshes = %d after sync output reset, want 1", refreshes)
	}

	row := term.Screen().Buffer().Row(0)
	if got := strings.TrimRight(cellString(row), " "); got != "hi" {
		t.Errorf("row 0 = %q, want %q", got, "hi")
	}
}

func TestBellCarriesVisualBellAndPopOnBellHints(t *testing.T) {
	term := NewTerminal(80, 24, WithVisualBell(true), WithPopOnBell(true))
	var got Event
	term.On(EventBell, func(ev Event) { got = ev })
	term.WriteString("\x07")
	term.Flush()

	if !got.VisualBell || !got.PopOnBell {
		t.Errorf("bell event = %+v, want VisualBell and PopOnBell set", got)
	}
}

func TestCursorBlinkOptionReadableBack(t *testing.T) {
	term := NewTerminal(80, 24, WithCursorBlink(true))
	if !term.CursorBlink() {
		t.Error("CursorBlink() = false, want true")
	}
}

func TestGeometryErrorLoggedOnInvalidResize(t *testing.T) {
	var buf strings.Builder
	term := NewTerminal(80, 24, WithDebug(true), WithLogger(log.New(&buf, "", 0)))
	term.Resize(0, -1)

	if !strings.Contains(buf.String(), "invalid geometry") {
		t.Errorf("log output = %q, want a GeometryError message", buf.String())
	}
	if term.Cols() != 1 || term.Rows() != 1 {
		t.Errorf("geometry = %dx%d, want 1x1 (clamped)", term.Cols(), term.Rows())
	}
}

func TestRestoreCursorOutOfBoundsLogsInvariantBreach(t *testing.T) {
	var buf strings.Builder
	term := NewTerminal(10, 10, WithDebug(true), WithLogger(log.New(&buf, "", 0)))
	term.WriteString("\x1b[9;9H\x1b7") // save cursor near the bottom-right corner
	term.Resize(3, 3)                  // shrinks past the saved position
	term.WriteString("\x1b8")          // DECRC: restore, forcing a clamp
	term.Flush()

	if !strings.Contains(buf.String(), "internal invariant breach") {
		t.Errorf("log output = %q, want an InternalInvariantBreach message", buf.String())
	}
}

func TestECHClampsToRowEnd(t *testing.T) {
	term := NewTerminal(10, 1)
	term.WriteString("abcdefghij\x1b[8G\x1b[5X")
	term.Flush()

	row := term.Screen().Buffer().Row(0)
	got := strings.TrimRight(cellString(row), " ")
	if got != "abcdefg" {
		t.Errorf("row = %q, want %q (only 3 cells erasable at x=7)", got, "abcdefg")
	}
}
