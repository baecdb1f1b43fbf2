// Copyright © 2025 extraterm contributors
//
// File: vt/parser_csi.go
// Summary: CSI parameter accumulation and the ~40-command dispatch table (C5).
// Usage: entered from parser.go's feedEscape on ESC [; feedCSI is called
// byte-by-byte until a final byte completes the sequence.

package vt

import "fmt"

func (p *Parser) startCSI() {
	p.params = p.params[:0]
	p.curParam = 0
	p.curParamSet = false
	p.csiPrefix = 0
	p.csiPostfix = 0
	p.state = stateCSI
}

func (p *Parser) feedCSI(b byte) {
	switch {
	case b >= '0' && b <= '9':
		p.curParam = p.curParam*10 + int(b-'0')
		p.curParamSet = true
		return
	case b == ';':
		p.params = append(p.params, p.curParam)
		p.curParam = 0
		p.curParamSet = false
		return
	case (b == '?' || b == '>' || b == '!') && len(p.params) == 0 && !p.curParamSet && p.csiPrefix == 0:
		p.csiPrefix = b
		return
	case b == '$' || b == '"' || b == ' ' || b == '\'':
		p.csiPostfix = b
		return
	}
	if p.curParamSet || len(p.params) > 0 {
		p.params = append(p.params, p.curParam)
	}
	p.dispatchCSI(b)
	p.reset()
}

// param returns the i-th parameter, clamped to at least 1 when def1 is
// true and the parameter is absent or zero (the common "default 1" rule).
func (p *Parser) param(i int, def int, def1 bool) int {
	if i >= len(p.params) {
		return def
	}
	v := p.params[i]
	if def1 && v < 1 {
		return def
	}
	return v
}

func (p *Parser) dispatchCSI(final byte) {
	s := p.screen
	switch final {
	case 'A':
		s.MoveTo(s.x, s.y-p.param(0, 1, true))
	case 'B':
		s.MoveTo(s.x, s.y+p.param(0, 1, true))
	case 'C':
		s.MoveTo(s.x+p.param(0, 1, true), s.y)
	case 'D':
		s.MoveTo(s.x-p.param(0, 1, true), s.y)
	case 'E':
		s.MoveTo(0, s.y+p.param(0, 1, true))
	case 'F':
		s.MoveTo(0, s.y-p.param(0, 1, true))
	case 'G', '`':
		s.MoveTo(p.param(0, 1, true)-1, s.y)
	case 'd':
		s.MoveTo(s.x, p.param(0, 1, true)-1)
	case 'H', 'f':
		row := p.param(0, 1, true)
		col := p.param(1, 1, true)
		s.MoveTo(col-1, row-1)
	case 'J':
		s.EraseInDisplay(p.param(0, 0, false))
	case 'K':
		s.EraseInLine(p.param(0, 0, false))
	case 'L':
		p.insertLines(p.param(0, 1, true))
	case 'M':
		p.deleteLines(p.param(0, 1, true))
	case 'P':
		s.Buffer().Row(s.y).DeleteAt(s.x, p.param(0, 1, true), s.style.EraseStyle())
		s.Buffer().MarkDirty(s.y, s.y)
	case 'X':
		n := p.param(0, 1, true)
		row := s.Buffer().Row(s.y)
		row.ClearRange(s.x, s.x+n, s.style.EraseStyle())
		s.Buffer().MarkDirty(s.y, s.y)
	case '@':
		s.Buffer().Row(s.y).InsertBlank(s.x, p.param(0, 1, true), s.style)
		s.Buffer().MarkDirty(s.y, s.y)
	case 'S':
		s.Buffer().ScrollUp(s.scrollTop, s.scrollBottom, s.style.EraseStyle())
	case 'T':
		s.Buffer().ScrollDown(s.scrollTop, s.scrollBottom, s.style.EraseStyle())
	case 'Z':
		s.x = s.PrevTab(s.x, p.param(0, 1, true))
	case 'I':
		s.x = s.NextTab(s.x, p.param(0, 1, true))
	case 'a':
		s.MoveTo(s.x+p.param(0, 1, true), s.y)
	case 'e':
		s.MoveTo(s.x, s.y+p.param(0, 1, true))
	case 'b':
		p.repeatLastChar(p.param(0, 1, true))
	case 'c':
		p.deviceAttributes()
	case 'g':
		p.tabClear(p.param(0, 0, false))
	case 'h':
		p.setMode(true)
	case 'l':
		p.setMode(false)
	case 'm':
		s.style = ApplySGR(p.params, s.style, s.match, p.protocolWarning)
	case 'n':
		p.deviceStatusReport()
	case 'p':
		p.dispatchP()
	case 'r':
		if p.csiPrefix == 0 {
			s.SetScrollRegion(p.param(0, 1, true)-1, p.param(1, s.Rows(), false)-1)
		}
	case 's':
		if p.csiPrefix == 0 {
			s.SaveCursor()
		}
	case 'u':
		if p.csiPrefix == 0 {
			s.RestoreCursor()
		}
	case '}':
		if p.csiPostfix == '\'' {
			p.decic(p.param(0, 1, true))
		}
	case '~':
		if p.csiPostfix == '\'' {
			p.decdc(p.param(0, 1, true))
		}
	default:
		p.protocolWarning(int(final))
	}
}

func (p *Parser) insertLines(n int) {
	s := p.screen
	if s.y < s.scrollTop || s.y > s.scrollBottom {
		return
	}
	for i := 0; i < n; i++ {
		s.Buffer().ScrollDown(s.y, s.scrollBottom, s.style.EraseStyle())
	}
}

func (p *Parser) deleteLines(n int) {
	s := p.screen
	if s.y < s.scrollTop || s.y > s.scrollBottom {
		return
	}
	for i := 0; i < n; i++ {
		s.Buffer().ScrollUp(s.y, s.scrollBottom, s.style.EraseStyle())
	}
}

const lastCharUnset rune = -1

func (p *Parser) repeatLastChar(n int) {
	if p.lastChar == lastCharUnset {
		return
	}
	for i := 0; i < n; i++ {
		p.screen.PlaceChar(p.lastChar)
	}
}

func (p *Parser) deviceAttributes() {
	if p.csiPrefix == '>' {
		var reply string
		switch p.termName {
		case "rxvt":
			reply = "\x1b[>85;95;0c"
		case "screen":
			reply = "\x1b[>83;40003;0c"
		default:
			reply = "\x1b[>0;276;0c"
		}
		p.emit.Emit(Event{Name: EventData, Bytes: []byte(reply)})
		return
	}
	var reply string
	if p.termName == "linux" {
		reply = "\x1b[?6c"
	} else {
		reply = "\x1b[?1;2c"
	}
	p.emit.Emit(Event{Name: EventData, Bytes: []byte(reply)})
}

func (p *Parser) tabClear(mode int) {
	switch mode {
	case 0:
		p.screen.ClearTab(p.screen.x)
	case 3:
		p.screen.ClearAllTabs()
	}
}

func (p *Parser) deviceStatusReport() {
	code := p.param(0, 0, false)
	switch {
	case code == 5:
		p.emit.Emit(Event{Name: EventData, Bytes: []byte("\x1b[0n")})
	case code == 6 && p.csiPrefix == 0:
		reply := fmt.Sprintf("\x1b[%d;%dR", p.screen.y+1, p.screen.x+1)
		p.emit.Emit(Event{Name: EventData, Bytes: []byte(reply)})
	case code == 6 && p.csiPrefix == '?':
		reply := fmt.Sprintf("\x1b[?%d;%dR", p.screen.y+1, p.screen.x+1)
		p.emit.Emit(Event{Name: EventData, Bytes: []byte(reply)})
	}
}

func (p *Parser) dispatchP() {
	switch {
	case p.csiPrefix == '!':
		p.screen.SoftReset()
	case p.csiPostfix == '$':
		p.decrqm()
	default:
		p.protocolWarning('p')
	}
}

// decrqm answers CSI ? Ps $ p / CSI Ps $ p (DECRQM): report whether a
// mode is set, reset, or unrecognized.
func (p *Parser) decrqm() {
	code := p.param(0, 0, false)
	pm := 0 // not recognized
	if p.csiPrefix == '?' {
		if set, known := p.decPrivateModeState(code); known {
			if set {
				pm = 1
			} else {
				pm = 2
			}
		}
	}
	reply := fmt.Sprintf("\x1b[?%d;%d$y", code, pm)
	if p.csiPrefix != '?' {
		reply = fmt.Sprintf("\x1b[%d;%d$y", code, pm)
	}
	p.emit.Emit(Event{Name: EventData, Bytes: []byte(reply)})
}

func (p *Parser) decPrivateModeState(code int) (set bool, known bool) {
	s := p.screen
	switch code {
	case 1:
		return s.cursorAppMode, true
	case 6:
		return s.originMode, true
	case 7:
		return s.wraparound, true
	case 25:
		return s.cursorVisible, true
	case 47, 1047, 1049:
		return s.altActive, true
	case 1004:
		return s.focusEvents, true
	case 2004:
		return s.bracketedPaste, true
	case 2026:
		return s.syncOutput, true
	}
	return false, false
}

// decic/decdc implement VT420 DECIC/DECDC: insert/delete n columns at the
// cursor, across every row of the scroll region.
func (p *Parser) decic(n int) {
	s := p.screen
	for y := s.scrollTop; y <= s.scrollBottom; y++ {
		s.Buffer().Row(y).InsertBlank(s.x, n, s.style)
	}
	s.Buffer().MarkDirty(s.scrollTop, s.scrollBottom)
}

func (p *Parser) decdc(n int) {
	s := p.screen
	for y := s.scrollTop; y <= s.scrollBottom; y++ {
		s.Buffer().Row(y).DeleteAt(s.x, n, s.style.EraseStyle())
	}
	s.Buffer().MarkDirty(s.scrollTop, s.scrollBottom)
}

// setMode dispatches CSI Pm h / CSI Pm l (SM/RM), accepting a list of
// codes and recognizing DEC-private (?) codes per spec.md's mode table.
func (p *Parser) setMode(enable bool) {
	codes := p.params
	if len(codes) == 0 {
		codes = []int{0}
	}
	for _, code := range codes {
		if p.csiPrefix == '?' {
			p.setDECMode(code, enable)
		} else {
			p.setANSIMode(code, enable)
		}
	}
}

func (p *Parser) setANSIMode(code int, enable bool) {
	switch code {
	case 4:
		p.screen.insertMode = enable
	default:
		p.protocolWarning(code)
	}
}

func (p *Parser) setDECMode(code int, enable bool) {
	s := p.screen
	switch code {
	case 1:
		s.cursorAppMode = enable
	case 3:
		p.set132Col(enable)
	case 6:
		s.originMode = enable
		s.x, s.y = 0, 0
		if enable {
			s.y = s.scrollTop
		}
	case 7:
		s.wraparound = enable
	case 9:
		if enable {
			s.mouseMode = MouseX10
		} else if s.mouseMode == MouseX10 {
			s.mouseMode = MouseOff
		}
	case 25:
		s.cursorVisible = enable
	case 66:
		s.keypadAppMode = enable
	case 1000:
		if enable {
			s.mouseMode = MouseVT200
		} else if s.mouseMode == MouseVT200 {
			s.mouseMode = MouseOff
		}
	case 1002:
		if enable {
			s.mouseMode = MouseButtonEvent
		} else if s.mouseMode == MouseButtonEvent {
			s.mouseMode = MouseOff
		}
	case 1003:
		if enable {
			s.mouseMode = MouseAnyEvent
		} else if s.mouseMode == MouseAnyEvent {
			s.mouseMode = MouseOff
		}
	case 1004:
		s.focusEvents = enable
	case 1005:
		if enable {
			s.mouseEncoding = MouseEncodingUTF8
		}
	case 1006:
		if enable {
			s.mouseEncoding = MouseEncodingSGR
		} else if s.mouseEncoding == MouseEncodingSGR {
			s.mouseEncoding = MouseEncodingDefault
		}
	case 1015:
		if enable {
			s.mouseEncoding = MouseEncodingURXVT
		} else if s.mouseEncoding == MouseEncodingURXVT {
			s.mouseEncoding = MouseEncodingDefault
		}
	case 47, 1047:
		if enable {
			s.EnterAltScreen(false)
		} else {
			s.LeaveAltScreen()
		}
	case 1049:
		if enable {
			s.EnterAltScreen(true)
		} else {
			s.LeaveAltScreen()
		}
	case 2004:
		s.bracketedPaste = enable
		p.emit.Emit(Event{Name: EventBracketedPasteChanged, Enabled: enable})
	case 2026:
		s.syncOutput = enable
	default:
		p.protocolWarning(code)
	}
}

func (p *Parser) set132Col(enable bool) {
	s := p.screen
	if enable && !s.in132 {
		s.saved132 = s.Cols()
		s.in132 = true
		s.Resize(132, s.Rows())
	} else if !enable && s.in132 {
		s.in132 = false
		s.Resize(s.saved132, s.Rows())
	}
}
