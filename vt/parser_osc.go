// Copyright © 2025 extraterm contributors
//
// File: vt/parser_osc.go
// Summary: OSC (Operating System Command) parsing: title plus OSC 10/11
// default-color get/set (C5, supplemented per SPEC_FULL.md).
// Usage: entered from parser.go's feedEscape on ESC ].

package vt

import (
	"fmt"
	"strconv"
	"strings"
)

func (p *Parser) startOSC() {
	p.oscNum = 0
	p.oscNumSet = false
	p.oscReadNum = true
	p.oscBuf = p.oscBuf[:0]
	p.oscEscSeen = false
	p.state = stateOSC
}

func (p *Parser) feedOSC(b byte) {
	if p.oscReadNum {
		switch {
		case b >= '0' && b <= '9':
			p.oscNum = p.oscNum*10 + int(b-'0')
			p.oscNumSet = true
			return
		case b == ';':
			p.oscReadNum = false
			return
		default:
			p.oscReadNum = false
		}
	}
	if p.oscEscSeen {
		p.oscEscSeen = false
		if b == '\\' {
			p.finishOSC()
			return
		}
	}
	switch b {
	case 0x07:
		p.finishOSC()
	case 0x1b:
		p.oscEscSeen = true
	default:
		p.oscBuf = append(p.oscBuf, b)
	}
}

func (p *Parser) finishOSC() {
	pt := string(p.oscBuf)
	switch p.oscNum {
	case 0, 1, 2:
		p.emit.Emit(Event{Name: EventTitle, Text: pt})
	case 10:
		p.dispatchDefaultColor(pt, false)
	case 11:
		p.dispatchDefaultColor(pt, true)
	default:
		// OSC 52 (clipboard) and everything else: parsed and ignored.
	}
	p.reset()
}

func (p *Parser) dispatchDefaultColor(pt string, isBackground bool) {
	if pt == "?" {
		p.emit.Emit(Event{Name: EventQueryDefaultColor, IsBackground: isBackground})
		color := p.screen.palette.DefaultFG
		num := 10
		if isBackground {
			color = p.screen.palette.DefaultBG
			num = 11
		}
		reply := fmt.Sprintf("\x1b]%d;rgb:%02x%02x/%02x%02x/%02x%02x\x1b\\",
			num, color.R, color.R, color.G, color.G, color.B, color.B)
		p.emit.Emit(Event{Name: EventData, Bytes: []byte(reply)})
		return
	}
	rgb, ok := parseOSCColor(pt)
	if !ok {
		p.protocolWarning(p.oscNum)
		return
	}
	if isBackground {
		p.screen.palette.DefaultBG = rgb
	} else {
		p.screen.palette.DefaultFG = rgb
	}
	p.emit.Emit(Event{Name: EventDefaultColorChanged, IsBackground: isBackground, Color: rgb})
}

// parseOSCColor decodes an XParseColor-style "rgb:RRRR/GGGG/BBBB" spec
// (2, 3 or 4 hex digits per channel; only the first byte's worth of
// precision is kept).
func parseOSCColor(spec string) (RGB, bool) {
	spec = strings.TrimPrefix(spec, "rgb:")
	parts := strings.Split(spec, "/")
	if len(parts) != 3 {
		return RGB{}, false
	}
	var vals [3]uint8
	for i, part := range parts {
		if len(part) == 0 {
			return RGB{}, false
		}
		if len(part) > 2 {
			part = part[:2]
		}
		n, err := strconv.ParseUint(part, 16, 16)
		if err != nil {
			return RGB{}, false
		}
		vals[i] = uint8(n)
	}
	return RGB{R: vals[0], G: vals[1], B: vals[2]}, true
}
