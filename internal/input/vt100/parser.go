package vt100

import (
	"bytes"
	"unicode/utf8"

	"github.com/termput/termput/internal/input/key"
)

// MaxBufferSize caps the parser's internal sequence buffer. The cap is
// enforced before every byte processed; hitting it force-flushes the buffer
// as a NotDefined event so pathological input cannot grow memory without
// bound.
const MaxBufferSize = 1024

const (
	pasteStart = "\x1b[200~"
	pasteEnd   = "\x1b[201~"

	// Once the paste buffer working window reaches this length without a
	// terminator, all but the last pasteKeepBytes bytes migrate to the
	// accumulated payload. Keeping len(pasteEnd)-1 bytes is enough to still
	// detect a terminator split across reads.
	pasteMigrateThreshold = 6
	pasteKeepBytes        = 5

	// A mouse-like sequence with an unrecognized prefix degrades to
	// NotDefined once it exceeds this length.
	mouseMaxLength = 10
)

// ParserState identifies the parser's current input mode.
type ParserState int

const (
	// StateNormal handles plain input and known single-byte sequences.
	StateNormal ParserState = iota
	// StateEscapeSequence is active after a bare ESC.
	StateEscapeSequence
	// StateCsiSequence is active inside an ESC[ control sequence.
	StateCsiSequence
	// StateMouseEvent is active inside an X10 or SGR mouse report.
	StateMouseEvent
	// StateBracketedPaste is active between ESC[200~ and ESC[201~.
	StateBracketedPaste
)

// String returns the name of the state.
func (s ParserState) String() string {
	switch s {
	case StateNormal:
		return "Normal"
	case StateEscapeSequence:
		return "EscapeSequence"
	case StateCsiSequence:
		return "CsiSequence"
	case StateMouseEvent:
		return "MouseEvent"
	case StateBracketedPaste:
		return "BracketedPaste"
	default:
		return "ParserState(?)"
	}
}

// Parser converts a raw terminal byte stream into key events.
//
// A Parser tolerates arbitrary fragmentation: feeding a sequence in one
// call or byte by byte across many calls yields the same event stream.
// It is not safe for concurrent use; each input stream owns one Parser.
type Parser struct {
	state   ParserState
	matcher *Matcher

	// buf accumulates the sequence currently being recognized.
	buf []byte
	// paste accumulates bracketed paste payload bytes confirmed not to be
	// part of the terminator.
	paste []byte
}

// NewParser creates a parser with the standard sequence table.
func NewParser() *Parser {
	return &Parser{matcher: NewMatcher()}
}

// State returns the parser's current state.
func (p *Parser) State() ParserState {
	return p.state
}

// Matcher returns the parser's sequence matcher. Callers may Insert
// additional sequences before feeding input.
func (p *Parser) Matcher() *Matcher {
	return p.matcher
}

// Feed processes data one byte at a time against the current state and
// returns all events completed during this call, in consumption order.
// Partial sequences stay buffered until completed, invalidated, or
// resolved by Flush.
func (p *Parser) Feed(data []byte) []key.Event {
	var events []key.Event
	for _, b := range data {
		events = p.process(b, events)
	}
	return events
}

// Flush resolves whatever is currently buffered and fully resets the
// parser. Callers use it at end of stream or after an inter-byte idle
// timeout, since a lone ESC stays ambiguous until more bytes arrive or
// time runs out. Buffered content is never silently dropped: the longest
// recognizable prefix becomes an event and trailing bytes degrade to
// individual character events.
func (p *Parser) Flush() []key.Event {
	var events []key.Event
	switch {
	case p.state == StateBracketedPaste:
		content := append(append([]byte(nil), p.paste...), p.buf...)
		if len(content) > 0 {
			events = append(events, pasteEvent(content))
		}
	case len(p.buf) > 0:
		if k, consumed, ok := p.matcher.FindLongest(p.buf); ok {
			events = append(events, key.NewEvent(k, p.buf[:consumed]))
			for _, b := range p.buf[consumed:] {
				events = append(events, charEvent(b))
			}
		} else {
			for _, b := range p.buf {
				events = append(events, charEvent(b))
			}
		}
	}
	p.Reset()
	return events
}

// Reset unconditionally returns to StateNormal and clears all buffers.
func (p *Parser) Reset() {
	p.resetToNormal()
	p.paste = p.paste[:0]
}

// process runs one input byte through the state machine. Fallback paths
// that need to re-dispatch bytes (an escape sequence that turns out to be
// invalid) push them onto a worklist instead of recursing.
func (p *Parser) process(b byte, events []key.Event) []key.Event {
	work := []byte{b}
	for len(work) > 0 {
		cur := work[0]
		work = work[1:]

		if len(p.buf) >= MaxBufferSize {
			events = p.overflow(events)
		}

		var replay []byte
		switch p.state {
		case StateNormal:
			events = p.normalByte(cur, events)
		case StateEscapeSequence:
			events, replay = p.escapeByte(cur, events)
		case StateCsiSequence:
			events, replay = p.csiByte(cur, events)
		case StateMouseEvent:
			events = p.mouseByte(cur, events)
		case StateBracketedPaste:
			events = p.pasteByte(cur, events)
		}
		if len(replay) > 0 {
			work = append(replay, work...)
		}
	}
	return events
}

func (p *Parser) normalByte(b byte, events []key.Event) []key.Event {
	if b == 0x1b {
		p.buf = append(p.buf, b)
		p.state = StateEscapeSequence
		return events
	}
	if k, res := p.matcher.Match([]byte{b}); res == MatchExact {
		return append(events, key.NewEvent(k, []byte{b}))
	}
	return append(events, charEvent(b))
}

func (p *Parser) escapeByte(b byte, events []key.Event) ([]key.Event, []byte) {
	p.buf = append(p.buf, b)

	if b == '[' {
		p.state = StateCsiSequence
		return events, nil
	}

	k, res := p.matcher.Match(p.buf)
	switch res {
	case MatchExact:
		events = append(events, key.NewEvent(k, p.buf))
		p.resetToNormal()
	case MatchPrefix:
		// Keep accumulating.
	case MatchNone:
		// Not an escape sequence after all: emit the bare ESC and run the
		// current byte back through normal handling.
		events = append(events, key.NewEvent(key.KeyEscape, []byte{0x1b}))
		p.resetToNormal()
		return events, []byte{b}
	}
	return events, nil
}

func (p *Parser) csiByte(b byte, events []key.Event) ([]key.Event, []byte) {
	p.buf = append(p.buf, b)

	if bytes.Equal(p.buf, []byte(pasteStart)) {
		p.state = StateBracketedPaste
		p.buf = p.buf[:0]
		return events, nil
	}

	if len(p.buf) == 3 && (b == 'M' || b == '<') {
		p.state = StateMouseEvent
		return events, nil
	}

	// Cursor Position Report arrives unprompted as ESC[{row};{col}R and is
	// never in the sequence table.
	if b == 'R' && isCPRResponse(p.buf) {
		events = append(events, key.NewEvent(key.KeyCPRResponse, p.buf))
		p.resetToNormal()
		return events, nil
	}

	k, res := p.matcher.Match(p.buf)
	switch res {
	case MatchExact:
		if k != key.KeyIgnore {
			events = append(events, key.NewEvent(k, p.buf))
		}
		p.resetToNormal()
	case MatchPrefix:
		// Keep accumulating.
	case MatchNone:
		switch {
		case isCSIParameterByte(b):
			// Parameterized sequence we have no entry for; the final byte
			// decides what happens to it.
		case isCSIFinalByte(b):
			events = append(events, key.NewEvent(key.KeyNotDefined, p.buf))
			p.resetToNormal()
		default:
			// Not a CSI sequence at all. Emit ESC and [ as plain input and
			// re-dispatch everything accumulated after them.
			events = append(events, key.NewEvent(key.KeyEscape, []byte{0x1b}))
			events = append(events, charEvent('['))
			replay := append([]byte(nil), p.buf[2:]...)
			p.resetToNormal()
			return events, replay
		}
	}
	return events, nil
}

func (p *Parser) mouseByte(b byte, events []key.Event) []key.Event {
	p.buf = append(p.buf, b)

	switch {
	case bytes.HasPrefix(p.buf, []byte("\x1b[M")):
		// X10 format: ESC[M plus exactly three raw bytes.
		if len(p.buf) >= 6 {
			events = append(events, key.NewEvent(key.KeyVt100MouseEvent, p.buf))
			p.resetToNormal()
		}
	case bytes.HasPrefix(p.buf, []byte("\x1b[<")):
		// SGR format: ESC[<button;x;y followed by M or m.
		switch {
		case b == 'M' || b == 'm':
			if isValidSGRMouse(p.buf) {
				events = append(events, key.NewEvent(key.KeyVt100MouseEvent, p.buf))
			} else {
				events = append(events, key.NewEvent(key.KeyNotDefined, p.buf))
			}
			p.resetToNormal()
		case !isSGRParameterByte(b):
			events = append(events, key.NewEvent(key.KeyNotDefined, p.buf))
			p.resetToNormal()
		}
	default:
		if len(p.buf) >= mouseMaxLength {
			events = append(events, key.NewEvent(key.KeyNotDefined, p.buf))
			p.resetToNormal()
		}
	}
	return events
}

func (p *Parser) pasteByte(b byte, events []key.Event) []key.Event {
	p.buf = append(p.buf, b)

	if bytes.HasSuffix(p.buf, []byte(pasteEnd)) {
		p.paste = append(p.paste, p.buf[:len(p.buf)-len(pasteEnd)]...)
		events = append(events, pasteEvent(p.paste))
		p.paste = p.paste[:0]
		p.resetToNormal()
		return events
	}

	if len(p.buf) >= pasteMigrateThreshold {
		move := len(p.buf) - pasteKeepBytes
		p.paste = append(p.paste, p.buf[:move]...)
		n := copy(p.buf, p.buf[move:])
		p.buf = p.buf[:n]
	}
	return events
}

// overflow force-flushes the buffer as a single NotDefined event and
// returns to StateNormal.
func (p *Parser) overflow(events []key.Event) []key.Event {
	if len(p.buf) == 0 {
		return events
	}
	text := string(bytes.ToValidUTF8(p.buf, []byte("�")))
	events = append(events, key.NewTextEvent(key.KeyNotDefined, p.buf, text))
	p.resetToNormal()
	return events
}

func (p *Parser) resetToNormal() {
	p.state = StateNormal
	p.buf = p.buf[:0]
}

// charEvent wraps a single unmatched byte. Printable ASCII carries its
// text; everything else is raw bytes only.
func charEvent(b byte) key.Event {
	if b >= 0x20 && b < 0x7f {
		return key.NewTextEvent(key.KeyNotDefined, []byte{b}, string(rune(b)))
	}
	return key.NewEvent(key.KeyNotDefined, []byte{b})
}

// pasteEvent wraps a paste payload, attaching text only when the payload
// decodes as valid UTF-8.
func pasteEvent(content []byte) key.Event {
	if utf8.Valid(content) {
		return key.NewTextEvent(key.KeyBracketedPaste, content, string(content))
	}
	return key.NewEvent(key.KeyBracketedPaste, content)
}

// isCPRResponse reports whether buf is exactly ESC[{digits};{digits}R.
func isCPRResponse(buf []byte) bool {
	if len(buf) < 4 || !bytes.HasPrefix(buf, []byte("\x1b[")) || buf[len(buf)-1] != 'R' {
		return false
	}
	middle := buf[2 : len(buf)-1]

	sawSemicolon := false
	digitsBefore := false
	digitsAfter := false
	for _, b := range middle {
		switch {
		case b >= '0' && b <= '9':
			if sawSemicolon {
				digitsAfter = true
			} else {
				digitsBefore = true
			}
		case b == ';':
			if sawSemicolon || !digitsBefore {
				return false
			}
			sawSemicolon = true
		default:
			return false
		}
	}
	return digitsBefore && sawSemicolon && digitsAfter
}

// isValidSGRMouse reports whether buf is ESC[<a;b;c terminated by M or m,
// with exactly three non-empty decimal fields.
func isValidSGRMouse(buf []byte) bool {
	if len(buf) < 5 || !bytes.HasPrefix(buf, []byte("\x1b[<")) {
		return false
	}
	last := buf[len(buf)-1]
	if last != 'M' && last != 'm' {
		return false
	}
	params := buf[3 : len(buf)-1]
	if len(params) == 0 || params[0] == ';' || params[len(params)-1] == ';' {
		return false
	}
	semicolons := 0
	prevSemicolon := false
	for _, b := range params {
		switch {
		case b == ';':
			if prevSemicolon {
				return false
			}
			semicolons++
			prevSemicolon = true
		case b >= '0' && b <= '9':
			prevSemicolon = false
		default:
			return false
		}
	}
	return semicolons == 2
}

func isCSIParameterByte(b byte) bool {
	return (b >= '0' && b <= '9') || b == ';' || b == ':' || b == '<' || b == '=' || b == '>' || b == '?'
}

func isCSIFinalByte(b byte) bool {
	return b >= 0x40 && b <= 0x7e
}

func isSGRParameterByte(b byte) bool {
	return (b >= '0' && b <= '9') || b == ';'
}
