// Copyright © 2025 extraterm contributors
//
// File: vt/parser_dcs.go
// Summary: DCS (Device Control String) parsing and DECRQSS replies (C5).
// Usage: entered from parser.go's feedEscape on ESC P.

package vt

import "fmt"

func (p *Parser) startDCS() {
	p.dcsPrefix = p.dcsPrefix[:0]
	p.dcsBuf = p.dcsBuf[:0]
	p.dcsEscSeen = false
	p.state = stateDCS
}

func (p *Parser) feedDCS(b byte) {
	if len(p.dcsPrefix) < 2 {
		p.dcsPrefix = append(p.dcsPrefix, b)
		return
	}
	if p.dcsEscSeen {
		p.dcsEscSeen = false
		if b == '\\' {
			p.finishDCS()
			return
		}
	}
	switch b {
	case 0x07:
		p.finishDCS()
	case 0x1b:
		p.dcsEscSeen = true
	default:
		p.dcsBuf = append(p.dcsBuf, b)
	}
}

func (p *Parser) finishDCS() {
	if string(p.dcsPrefix) == "$q" {
		reply := decrqssReply(string(p.dcsBuf), p.screen)
		p.emit.Emit(Event{Name: EventData, Bytes: []byte(reply)})
	}
	// "+p"/"+q" (softfonts, user-defined keys) are parsed and ignored.
	p.reset()
}

// decrqssReply answers CSI-embedded-in-DCS status requests (DECRQSS).
func decrqssReply(req string, s *Screen) string {
	switch req {
	case "\"p":
		return "\x1bP1$r61\"p\x1b\\"
	case "\"q":
		return "\x1bP1$r0\"q\x1b\\"
	case "r":
		return fmt.Sprintf("\x1bP1$r%d;%dr\x1b\\", s.scrollTop+1, s.scrollBottom+1)
	case "m":
		return "\x1bP1$r0m\x1b\\"
	default:
		return "\x1bP0$r\x1b\\"
	}
}
