// Copyright © 2025 extraterm contributors
//
// File: vt/scrollback.go
// Summary: Bounded scrollback + viewport row sequence with dirty-range
// tracking (C2).
// Usage: Screen embeds one LineBuffer per buffer (main, and a
// scrollback-less one for alt); the CSI dispatcher edits rows through it
// and reads back the dirty range to decide what to repaint.

package vt

// LineBuffer holds an ordered sequence of rows: scrollback rows followed
// by exactly `height` live viewport rows. ybase is the number of
// scrollback rows currently accumulated; ydisp is the row index the
// viewport's top currently displays, satisfying 0 <= ydisp <= ybase
// (equal unless the caller has scrolled the view back). Grounded on the
// teacher's circular history buffer in apps/texelterm/parser/vterm.go
// (appendHistoryLine/getHistoryLine/setHistoryLine), reshaped into the
// single ordered slice spec.md's ybase/ydisp naming describes.
type LineBuffer struct {
	cols, height, scrollbackCap int
	lines                       []Row
	ybase                       int
	ydisp                       int
	dirtyStart, dirtyEnd        int // [dirtyStart, dirtyEnd), empty when dirtyStart >= dirtyEnd

	physicalScroll bool
	emitQueue      []Row
}

// NewLineBuffer allocates a buffer with no scrollback yet: height blank
// rows of the given width, capped at scrollbackCap additional rows.
func NewLineBuffer(cols, height, scrollbackCap int, style Style) *LineBuffer {
	lb := &LineBuffer{cols: cols, height: height, scrollbackCap: scrollbackCap}
	lb.lines = make([]Row, height)
	for i := range lb.lines {
		lb.lines[i] = NewRow(cols, style)
	}
	lb.clearDirty()
	return lb
}

// Cols, Height, YBase and YDisp report the buffer's current geometry.
func (lb *LineBuffer) Cols() int   { return lb.cols }
func (lb *LineBuffer) Height() int { return lb.height }
func (lb *LineBuffer) YBase() int  { return lb.ybase }
func (lb *LineBuffer) YDisp() int  { return lb.ydisp }

// ScrollbackLen reports how many rows of scrollback have accumulated.
func (lb *LineBuffer) ScrollbackLen() int { return lb.ybase }

// ScrollbackCap reports the configured maximum scrollback length.
func (lb *LineBuffer) ScrollbackCap() int { return lb.scrollbackCap }

// SetPhysicalScroll toggles spec.md §4.2's alternate scroll-up eviction
// strategy: instead of silently dropping the row that falls off the
// scrollback cap, ScrollUp pushes it onto a drainable emit queue.
func (lb *LineBuffer) SetPhysicalScroll(b bool) { lb.physicalScroll = b }

// DrainEmitQueue returns and clears the rows physical-scroll mode has
// evicted from scrollback since the last drain, oldest first.
func (lb *LineBuffer) DrainEmitQueue() []Row {
	q := lb.emitQueue
	lb.emitQueue = nil
	return q
}

// Row returns the live row at viewport-relative y (0 <= y < height),
// addressed through ybase so cursor motion always edits the live buffer
// regardless of what the view is scrolled to.
func (lb *LineBuffer) Row(y int) Row {
	return lb.lines[lb.ybase+y]
}

// ViewRow returns the row currently displayed at viewport-relative y,
// honoring ydisp (i.e. respecting a scrolled-back view).
func (lb *LineBuffer) ViewRow(y int) Row {
	return lb.lines[lb.ydisp+y]
}

// ScrollbackRow returns scrollback row i (0 = oldest), for callers that
// want history independent of the current view offset.
func (lb *LineBuffer) ScrollbackRow(i int) Row {
	return lb.lines[i]
}

// SetRow replaces the live row at viewport-relative y.
func (lb *LineBuffer) SetRow(y int, r Row) {
	lb.lines[lb.ybase+y] = r
	lb.MarkDirty(y, y)
}

// ScrollToBottom resets ydisp to ybase (the live view).
func (lb *LineBuffer) ScrollToBottom() { lb.ydisp = lb.ybase }

// ScrollView moves ydisp by delta rows, clamped to [0, ybase].
func (lb *LineBuffer) ScrollView(delta int) {
	lb.ydisp += delta
	if lb.ydisp < 0 {
		lb.ydisp = 0
	}
	if lb.ydisp > lb.ybase {
		lb.ydisp = lb.ybase
	}
}

// ScrollUp shifts rows [top, bottom] (viewport-relative, inclusive) up by
// one, filling the vacated bottom row with blank(style).
//
// When the region spans the full viewport (top == 0 and bottom ==
// height-1), the departing top row is preserved as a new scrollback row
// and ybase grows, evicting the oldest scrollback row once scrollbackCap
// is exceeded. Per spec.md §4.2, that eviction either drops the row (the
// default) or, with physical-scroll enabled, pushes it onto a drainable
// emit queue instead of discarding it. A restricted DECSTBM region
// scrolls in place without touching scrollback, matching real terminal
// behavior: content above or below a margin never gets shuffled into
// history.
func (lb *LineBuffer) ScrollUp(top, bottom int, style Style) {
	if top < 0 {
		top = 0
	}
	if bottom >= lb.height {
		bottom = lb.height - 1
	}
	if top > bottom {
		return
	}
	blank := NewRow(lb.cols, style)
	if top == 0 && bottom == lb.height-1 {
		lb.lines = append(lb.lines, blank)
		lb.ybase++
		if lb.ybase > lb.scrollbackCap {
			evicted := lb.lines[0]
			lb.lines = lb.lines[1:]
			lb.ybase--
			if lb.physicalScroll {
				lb.emitQueue = append(lb.emitQueue, evicted)
				if len(lb.emitQueue) > lb.scrollbackCap {
					lb.emitQueue = lb.emitQueue[len(lb.emitQueue)-lb.scrollbackCap:]
				}
			}
		}
		if lb.ydisp == lb.ybase-1 {
			lb.ydisp = lb.ybase
		}
	} else {
		for y := top; y < bottom; y++ {
			lb.lines[lb.ybase+y] = lb.lines[lb.ybase+y+1]
		}
		lb.lines[lb.ybase+bottom] = blank
	}
	lb.MarkDirty(top, bottom)
}

// ScrollDown shifts rows [top, bottom] down by one, filling the vacated
// top row with blank(style). Used by SD/RI/DECSTBM-relative operations;
// never touches scrollback, matching xterm's own reverse-scroll behavior.
func (lb *LineBuffer) ScrollDown(top, bottom int, style Style) {
	if top < 0 {
		top = 0
	}
	if bottom >= lb.height {
		bottom = lb.height - 1
	}
	if top > bottom {
		return
	}
	blank := NewRow(lb.cols, style)
	for y := bottom; y > top; y-- {
		lb.lines[lb.ybase+y] = lb.lines[lb.ybase+y-1]
	}
	lb.lines[lb.ybase+top] = blank
	lb.MarkDirty(top, bottom)
}

// Resize changes the viewport height and/or column width in place,
// padding or truncating rows and growing/shrinking the live window.
// Existing scrollback content is preserved; rows are resized to the new
// width the way each row's own content dictates (Row.Resize).
func (lb *LineBuffer) Resize(newCols, newHeight int, style Style) {
	for i := range lb.lines {
		lb.lines[i] = lb.lines[i].Resize(newCols, style)
	}
	lb.cols = newCols

	switch {
	case newHeight > lb.height:
		grow := newHeight - lb.height
		for i := 0; i < grow; i++ {
			lb.lines = append(lb.lines, NewRow(newCols, style))
		}
	case newHeight < lb.height:
		shrink := lb.height - newHeight
		// Rows leaving the top of a shrinking viewport become
		// scrollback rather than being discarded outright, mirroring how
		// a real terminal preserves content when the window gets shorter.
		lb.ybase += shrink
		if lb.ybase > lb.scrollbackCap {
			drop := lb.ybase - lb.scrollbackCap
			lb.lines = lb.lines[drop:]
			lb.ybase -= drop
		}
	}
	lb.height = newHeight
	lb.ScrollToBottom()
	lb.MarkDirty(0, lb.height-1)
}

// MarkDirty extends the buffer's dirty range to include [from, to]
// (viewport-relative, inclusive).
func (lb *LineBuffer) MarkDirty(from, to int) {
	if from < 0 {
		from = 0
	}
	if to >= lb.height {
		to = lb.height - 1
	}
	if from > to {
		return
	}
	if lb.dirtyStart > lb.dirtyEnd {
		lb.dirtyStart, lb.dirtyEnd = from, to+1
		return
	}
	if from < lb.dirtyStart {
		lb.dirtyStart = from
	}
	if to+1 > lb.dirtyEnd {
		lb.dirtyEnd = to + 1
	}
}

// DirtyRange returns the current [start, end) dirty range and whether
// anything is dirty at all.
func (lb *LineBuffer) DirtyRange() (start, end int, dirty bool) {
	if lb.dirtyStart >= lb.dirtyEnd {
		return 0, 0, false
	}
	return lb.dirtyStart, lb.dirtyEnd, true
}

func (lb *LineBuffer) clearDirty() {
	lb.dirtyStart, lb.dirtyEnd = lb.height, -1
}

// ClearDirty resets the dirty range after a caller has flushed a repaint.
func (lb *LineBuffer) ClearDirty() { lb.clearDirty() }
