// Copyright © 2025 extraterm contributors

package vt

import "testing"

func TestRefreshCarriesDirtyRange(t *testing.T) {
	term := NewTerminal(10, 3)
	var rowDirty, refresh Event
	var sawRowDirty bool
	term.On(EventRowDirty, func(ev Event) { rowDirty = ev; sawRowDirty = true })
	term.On(EventRefresh, func(ev Event) { refresh = ev })

	term.WriteString("hi")
	term.Flush()

	if !sawRowDirty {
		t.Fatal("expected row-dirty to fire after a write touched row 0")
	}
	if rowDirty.RangeStart != 0 || rowDirty.RangeEnd != 1 {
		t.Errorf("row-dirty range = [%d,%d), want [0,1)", rowDirty.RangeStart, rowDirty.RangeEnd)
	}
	if refresh.RangeStart != 0 || refresh.RangeEnd != 1 {
		t.Errorf("refresh range = [%d,%d), want [0,1)", refresh.RangeStart, refresh.RangeEnd)
	}
}

func TestRefreshWithoutRowDirtyWhenNothingChanged(t *testing.T) {
	term := NewTerminal(10, 3)
	var sawRowDirty bool
	term.On(EventRowDirty, func(Event) { sawRowDirty = true })

	term.Flush() // nothing written, nothing dirty

	if sawRowDirty {
		t.Error("row-dirty should not fire when no row changed")
	}
}

func TestPhysicalScrollQueuesEvictedRows(t *testing.T) {
	term := NewTerminal(2, 1, WithScrollback(1), WithPhysicalScroll(true))
	term.WriteString("aa\r\nbb\r\ncc")
	term.Flush()

	evicted := term.Screen().DrainScrollEmit()
	if len(evicted) != 1 {
		t.Fatalf("evicted queue len = %d, want 1", len(evicted))
	}
	if got := cellString(evicted[0]); got != "aa" {
		t.Errorf("evicted row = %q, want %q", got, "aa")
	}
	// Draining clears the queue.
	if second := term.Screen().DrainScrollEmit(); len(second) != 0 {
		t.Errorf("second drain len = %d, want 0", len(second))
	}
}

func TestDefaultScrollDropsEvictedRowsSilently(t *testing.T) {
	term := NewTerminal(2, 1, WithScrollback(1))
	term.WriteString("aa\r\nbb\r\ncc")
	term.Flush()

	if evicted := term.Screen().DrainScrollEmit(); len(evicted) != 0 {
		t.Errorf("evicted queue len = %d, want 0 (physical-scroll disabled)", len(evicted))
	}
}
