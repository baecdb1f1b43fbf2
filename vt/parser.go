// Copyright © 2025 extraterm contributors
//
// File: vt/parser.go
// Summary: The 11-state byte-stream parser FSM (C5): Normal/Escape/Charset/
// Ignore/DecHash here; CSI/OSC/DCS/AppStart/AppEnd live in their own files.
// Usage: Terminal.Write feeds bytes to Parser.Feed one at a time through
// the write scheduler; Feed never blocks and never panics on garbage input.

package vt

import "unicode/utf8"

type parserState int

const (
	stateNormal parserState = iota
	stateEscape
	stateCSI
	stateOSC
	stateDCS
	stateCharset
	stateIgnore
	stateAppStart
	stateAppEnd
	stateDecHash
)

// Parser drives the escape-sequence state machine, dispatching semantic
// actions into a Screen and an Emitter. Grounded on
// apps/texelterm/parser/parser.go's byte-at-a-time Feed loop and the
// per-state handler split in vterm_csi.go/vterm_osc.go/vterm_dcs.go.
type Parser struct {
	screen *Screen
	emit   *Emitter
	warn   func(p int)

	state parserState

	// CSI accumulation.
	params      []int
	curParam    int
	curParamSet bool
	csiPrefix   byte
	csiPostfix  byte

	// OSC accumulation.
	oscNum      int
	oscNumSet   bool
	oscReadNum  bool
	oscBuf      []byte
	oscEscSeen  bool

	// DCS accumulation.
	dcsPrefix  []byte
	dcsBuf     []byte
	dcsEscSeen bool

	// Charset-designator sub-state: which G-bank ESC ( ) * + selected,
	// and whether we're mid-way through consuming ISOLatin's extra byte.
	charsetSlot   int
	sawISOLatin   bool

	// Ignore-state ST detection (ESC \).
	ignoreEscSeen bool

	// Escape's '%' sub-arm: select-default/utf-8 consumes one more byte.
	pendingPercent bool

	// AppStart/AppEnd application-mode channel.
	appCookie   string
	appParams   []string
	appTok      []byte

	// UTF-8 decode buffer, so a multi-byte sequence split across two
	// Feed-chunk boundaries still decodes correctly.
	utf8Buf []byte

	// lastChar is the most recently placed graphic character, for REP.
	lastChar rune

	// termName drives DA1/DA2 reply selection.
	termName string

	// visualBell/popOnBell are forwarded on every BEL as rendering hints;
	// the parser has no opinion on how a subscriber acts on them.
	visualBell bool
	popOnBell  bool
}

// NewParser builds a parser bound to screen and emit. appCookie is the
// shared secret AppStart matches against (empty disables application mode).
// termName selects the DA1/DA2 reply bodies ("xterm" if empty). visualBell
// and popOnBell are carried on every EventBell for a renderer to act on.
func NewParser(screen *Screen, emit *Emitter, appCookie, termName string, visualBell, popOnBell bool, warn func(p int)) *Parser {
	if termName == "" {
		termName = "xterm"
	}
	return &Parser{screen: screen, emit: emit, appCookie: appCookie, termName: termName, visualBell: visualBell, popOnBell: popOnBell, warn: warn, lastChar: lastCharUnset}
}

// Feed processes a single input byte.
func (p *Parser) Feed(b byte) {
	switch p.state {
	case stateNormal:
		p.feedNormal(b)
	case stateEscape:
		p.feedEscape(b)
	case stateCSI:
		p.feedCSI(b)
	case stateOSC:
		p.feedOSC(b)
	case stateDCS:
		p.feedDCS(b)
	case stateCharset:
		p.feedCharset(b)
	case stateIgnore:
		p.feedIgnore(b)
	case stateAppStart:
		p.feedAppStart(b)
	case stateAppEnd:
		p.feedAppEnd(b)
	case stateDecHash:
		p.feedDecHash(b)
	}
}

// FeedBytes processes each byte of data in order.
func (p *Parser) FeedBytes(data []byte) {
	for _, b := range data {
		p.Feed(b)
	}
}

func (p *Parser) reset() { p.state = stateNormal }

func (p *Parser) protocolWarning(p2 int) {
	if p.warn != nil {
		p.warn(p2)
	}
}

func (p *Parser) feedNormal(b byte) {
	switch b {
	case 0x07: // BEL
		p.emit.Emit(Event{Name: EventBell, VisualBell: p.visualBell, PopOnBell: p.popOnBell})
	case 0x0a, 0x0b, 0x0c: // LF, VT, FF
		p.screen.LineFeed()
	case 0x0d: // CR
		p.screen.x = 0
	case 0x08: // BS
		if p.screen.x > 0 {
			p.screen.x--
		}
	case 0x09: // HT
		p.screen.x = p.screen.NextTab(p.screen.x, 1)
	case 0x0e: // SO: shift to G1
		p.screen.glevel = 1
	case 0x0f: // SI: shift to G0
		p.screen.glevel = 0
	case 0x1b:
		p.state = stateEscape
	default:
		p.feedPrintable(b)
	}
}

// feedPrintable accumulates UTF-8 bytes and, once a full code point has
// arrived, hands it to the screen. Bytes below 0x20 other than those
// handled in feedNormal are silently dropped (matches xterm's tolerance
// of stray control bytes).
func (p *Parser) feedPrintable(b byte) {
	if b < 0x20 || b == 0x7f {
		return
	}
	if len(p.utf8Buf) == 0 && b < 0x80 {
		p.screen.PlaceChar(rune(b))
		p.lastChar = rune(b)
		return
	}
	p.utf8Buf = append(p.utf8Buf, b)
	r, size := utf8.DecodeRune(p.utf8Buf)
	if r == utf8.RuneError && size <= 1 {
		if len(p.utf8Buf) >= 4 {
			// Malformed beyond any valid UTF-8 length; drop and resync.
			p.utf8Buf = p.utf8Buf[:0]
		}
		return
	}
	if size == len(p.utf8Buf) {
		p.screen.PlaceChar(r)
		p.lastChar = r
		p.utf8Buf = p.utf8Buf[:0]
	}
}

func (p *Parser) feedEscape(b byte) {
	switch b {
	case '[':
		p.startCSI()
	case ']':
		p.startOSC()
	case 'P':
		p.startDCS()
	case '&':
		p.startAppMode()
	case '_', '^':
		p.state = stateIgnore
		p.ignoreEscSeen = false
	case 'c':
		p.screen.FullReset()
		p.reset()
	case 'D': // IND
		p.screen.LineFeed()
		p.reset()
	case 'E': // NEL
		p.screen.x = 0
		p.screen.LineFeed()
		p.reset()
	case 'M': // RI
		p.screen.ReverseIndex()
		p.reset()
	case '6': // DECBI: back index
		p.screen.BackIndex()
		p.reset()
	case '9': // DECFI: forward index
		p.screen.ForwardIndex()
		p.reset()
	case '7':
		p.screen.SaveCursor()
		p.reset()
	case '8':
		p.screen.RestoreCursor()
		p.reset()
	case '=':
		p.screen.keypadAppMode = true
		p.reset()
	case '>':
		p.screen.keypadAppMode = false
		p.reset()
	case '(', ')', '*', '+':
		p.charsetSlot = charsetSlotFor(b)
		p.sawISOLatin = false
		p.state = stateCharset
	case '-', '.', '/':
		// G1/G2/G3 96-character-set designators; treated the same as the
		// 94-character-set forms above since only ISOLatin is modeled.
		p.charsetSlot = []int{1, 2, 3}[b-'-']
		p.sawISOLatin = false
		p.state = stateCharset
	case 'H': // HTS
		p.screen.SetTab()
		p.reset()
	case 'N', 'O': // single-shift SS2/SS3: accepted, effect not implemented
		p.reset()
	case 'n':
		p.screen.glevel = 2
		p.reset()
	case 'o':
		p.screen.glevel = 3
		p.reset()
	case '|':
		p.screen.grlevel = 3
		p.reset()
	case '}':
		p.screen.grlevel = 2
		p.reset()
	case '~':
		p.screen.grlevel = 1
		p.reset()
	case '#':
		p.state = stateDecHash
	case '%':
		p.pendingPercent = true
		p.state = stateIgnore // consumes exactly one more byte, see feedIgnore override below
	default:
		p.protocolWarning(int(b))
		p.reset()
	}
}

func charsetSlotFor(b byte) int {
	switch b {
	case '(':
		return 0
	case ')':
		return 1
	case '*':
		return 2
	case '+':
		return 3
	}
	return 0
}

func (p *Parser) feedCharset(b byte) {
	if b == '/' && !p.sawISOLatin {
		// ISOLatin's designator consumes one extra byte before completing.
		p.sawISOLatin = true
		return
	}
	if p.sawISOLatin {
		p.screen.charsets[p.charsetSlot] = CharsetISOLatin
		p.reset()
		return
	}
	if id, ok := LookupCharsetFinal(b); ok {
		p.screen.charsets[p.charsetSlot] = id
	} else {
		p.protocolWarning(int(b))
	}
	p.reset()
}

func (p *Parser) feedIgnore(b byte) {
	if p.pendingPercent {
		// ESC % consumes exactly one byte (default/UTF-8 selection is
		// accepted and has no further effect since UTF-8 is always on).
		p.pendingPercent = false
		p.reset()
		return
	}
	if p.ignoreEscSeen {
		p.ignoreEscSeen = false
		if b == '\\' {
			p.reset()
			return
		}
	}
	switch b {
	case 0x07:
		p.reset()
	case 0x1b:
		p.ignoreEscSeen = true
	}
}

func (p *Parser) feedDecHash(b byte) {
	if b == '8' {
		p.screen.DECALN()
	}
	p.reset()
}
