// Copyright © 2025 extraterm contributors
//
// File: vt/parser_appmode.go
// Summary: Application-mode "cookie" out-of-band channel: AppStart/AppEnd (C5).
// Usage: entered from parser.go's feedEscape on ESC &; lets bulk data (file
// transfers) bypass escape-sequence parsing once a shared cookie matches.

package vt

func (p *Parser) startAppMode() {
	p.appParams = p.appParams[:0]
	p.appTok = p.appTok[:0]
	p.state = stateAppStart
}

func (p *Parser) feedAppStart(b byte) {
	switch {
	case b == ';':
		p.appParams = append(p.appParams, string(p.appTok))
		p.appTok = p.appTok[:0]
	case b == 0x07:
		p.appParams = append(p.appParams, string(p.appTok))
		p.appTok = p.appTok[:0]
		if p.appCookie != "" && len(p.appParams) > 0 && p.appParams[0] == p.appCookie {
			p.emit.Emit(Event{Name: EventApplicationModeStart, Params: p.appParams})
			p.state = stateAppEnd
		} else {
			p.protocolWarning(-1) // ApplicationCookieMismatch
			p.state = stateNormal
		}
	case isAppTokChar(b):
		p.appTok = append(p.appTok, b)
	default:
		p.state = stateNormal
	}
}

func isAppTokChar(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b == '-' || b == '/'
}

// feedAppEnd streams raw payload bytes out one at a time until a NUL
// terminates the channel, per spec.md's "scan forward for NUL" rule.
// Streaming avoids buffering an unbounded file-transfer payload in memory.
func (p *Parser) feedAppEnd(b byte) {
	if b == 0x00 {
		p.emit.Emit(Event{Name: EventApplicationModeEnd})
		p.state = stateNormal
		return
	}
	p.emit.Emit(Event{Name: EventApplicationModeData, Bytes: []byte{b}})
}
