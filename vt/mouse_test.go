// Copyright © 2025 extraterm contributors

package vt

import "testing"

func TestMouseSGREncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		button       int
		x, y         int
		release      bool
	}{
		{ButtonLeft, 1, 1, false},
		{ButtonMiddle, 40, 12, false},
		{ButtonRight, 199, 55, true},
		{ButtonWheelUp, 5, 5, false},
	}
	for _, c := range cases {
		encoded := EncodeMouse(MouseEncodingSGR, c.button, c.x, c.y, c.release)
		gotButton, gotX, gotY, gotRelease, ok := DecodeMouseSGR(encoded)
		if !ok {
			t.Fatalf("DecodeMouseSGR(%q) failed to parse", encoded)
		}
		if gotButton != c.button || gotX != c.x || gotY != c.y || gotRelease != c.release {
			t.Errorf("round trip %+v -> %q -> (%d,%d,%d,%v), want (%d,%d,%d,%v)",
				c, encoded, gotButton, gotX, gotY, gotRelease, c.button, c.x, c.y, c.release)
		}
	}
}

func TestMouseX10DoesNotReportRelease(t *testing.T) {
	term := NewTerminal(80, 24)
	term.screen.mouseMode = MouseX10
	var events int
	term.On(EventData, func(Event) { events++ })

	term.Mouse(MousePress, ButtonLeft, 0, 1, 1)
	term.Mouse(MouseRelease, ButtonLeft, 0, 1, 1)

	if events != 1 {
		t.Errorf("got %d data events, want 1 (X10 must not report release)", events)
	}
}

func TestMouseVT200EmitsReleaseAfterPress(t *testing.T) {
	term := NewTerminal(80, 24)
	term.screen.mouseMode = MouseVT200
	var events int
	term.On(EventData, func(Event) { events++ })

	term.Mouse(MousePress, ButtonLeft, 0, 1, 1)

	if events != 2 {
		t.Errorf("got %d data events, want 2 (press + synthetic release)", events)
	}
}

func TestTabSetClearRoundTrip(t *testing.T) {
	term := NewTerminal(40, 1)
	term.WriteString("\tabc") // tab to column 8, then to column 11
	x1, _ := term.Cursor()   // 11, off the default 8-column grid

	term.WriteString("\x1bH")  // HTS: set a stop at 11
	term.WriteString("\t")     // jumps to the next default stop, 16
	term.WriteString("\x1b[Z") // CBT: back to the stop HTS just set

	x2, _ := term.Cursor()
	if x2 != x1 {
		t.Errorf("CBT landed at %d, want %d (the stop HTS just set)", x2, x1)
	}
}

func TestSGRIdempotentUnderTrailingZero(t *testing.T) {
	base := DefaultStyle()
	once := ApplySGR([]int{1, 31, 4}, base, nil, nil)
	twice := ApplySGR([]int{1, 31, 4, 0}, base, nil, nil)
	if twice != DefaultStyle() {
		t.Errorf("trailing 0 should reset to default, got %+v", twice)
	}
	if once == twice {
		t.Errorf("expected 1;31;4 and 1;31;4;0 to differ (0 resets)")
	}
}
