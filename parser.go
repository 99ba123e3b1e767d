package termcore

import "unicode/utf8"

// ParserState is one of the classic VT500-series parser states (spec §4.1),
// extended with a combined SosPmApcString state that handles SOS/PM/APC
// identically (none of the three have structured parameters, only a raw
// payload terminated by ST).
type ParserState int

const (
	StateGround ParserState = iota
	StateEscape
	StateEscapeIntermediate
	StateCsiEntry
	StateCsiParam
	StateCsiIntermediate
	StateCsiIgnore
	StateDcsEntry
	StateDcsParam
	StateDcsIntermediate
	StateDcsPassthrough
	StateDcsIgnore
	StateOscString
	StateSosPmApcString
)

// stringKind distinguishes which of SOS/PM/APC populated StateSosPmApcString.
type stringKind byte

const (
	stringKindNone stringKind = 0
	stringKindSOS  stringKind = 'X'
	stringKindPM   stringKind = '^'
	stringKindAPC  stringKind = '_'
)

// EventSink receives the low-level actions the byte parser produces. The
// Sequence assembler (sequence.go) is the production implementation; tests
// may substitute a recording sink to assert the parser's action stream
// directly (spec testable property #1: chunking must not change it).
type EventSink interface {
	Execute(b byte)
	Print(r rune)
	CollectLeader(b byte)
	CollectIntermediate(b byte)
	ParamDigit(b byte)
	ParamSeparator()
	ParamSubSeparator()
	EscDispatch(final byte)
	CsiDispatch(final byte)
	Hook(final byte)
	Put(b byte)
	Unhook()
	OscStart()
	OscPut(b byte)
	OscEnd()
	ApcStart()
	ApcPut(b byte)
	ApcEnd()
	PmStart()
	PmPut(b byte)
	PmEnd()
	SosStart()
	SosPut(b byte)
	SosEnd()
	Clear()
}

// Parser is the byte-stream state machine (spec §4.1 component 1): it turns
// an arbitrary, arbitrarily-chunked byte stream into a deterministic action
// stream on an EventSink, with no per-byte allocation.
type Parser struct {
	state ParserState
	sink  EventSink

	// String-terminator lookahead: the byte after ESC decides whether a
	// DCS/OSC/APC/PM/SOS string ends (ESC \) or whether this is instead the
	// start of a fresh escape sequence that implicitly aborts the string.
	awaitingST bool
	strKind    stringKind

	// Incremental UTF-8 decoder for Ground-state print bytes, so a
	// multi-byte codepoint split across Write calls still decodes correctly.
	utf8Buf   [4]byte
	utf8Len   int
	utf8Want  int

	logger Logger
}

// NewParser creates a parser in the Ground state feeding the given sink.
func NewParser(sink EventSink) *Parser {
	return &Parser{state: StateGround, sink: sink, logger: noopLogger{}}
}

// SetLogger installs a diagnostic sink for recovered parse errors (§7).
func (p *Parser) SetLogger(l Logger) {
	if l == nil {
		l = noopLogger{}
	}
	p.logger = l
}

// State returns the parser's current state (for snapshotting/step-debugging).
func (p *Parser) State() ParserState { return p.state }

// AdvanceBytes feeds a chunk of bytes through the state machine.
func (p *Parser) AdvanceBytes(data []byte) {
	for _, b := range data {
		p.Advance(b)
	}
}

// Advance feeds a single byte through the state machine.
func (p *Parser) Advance(b byte) {
	// CAN/SUB abort any escape/control/string sequence unconditionally and
	// return to Ground (spec §4.1).
	if (b == 0x18 || b == 0x1A) && p.state != StateGround {
		p.abortString()
		p.state = StateGround
		p.sink.Execute(b)
		return
	}

	// UTF-8 continuation bytes are only meaningful while we're mid-decode.
	if p.utf8Want > 0 {
		if b >= 0x80 && b < 0xC0 {
			p.utf8Buf[p.utf8Len] = b
			p.utf8Len++
			if p.utf8Len == p.utf8Want {
				p.flushUTF8()
			}
			return
		}
		// Incomplete sequence followed by something else: it was malformed.
		p.invalidUTF8()
		// fall through and reprocess b normally below
	}

	// A string state saw ESC on the previous byte: this byte decides whether
	// that ESC was ST or the start of a new escape sequence.
	if p.awaitingST {
		p.advanceStringEsc(b, p.abortString)
		return
	}

	switch p.state {
	case StateGround:
		p.advanceGround(b)
	case StateEscape:
		p.advanceEscape(b)
	case StateEscapeIntermediate:
		p.advanceEscapeIntermediate(b)
	case StateCsiEntry:
		p.advanceCsiEntry(b)
	case StateCsiParam:
		p.advanceCsiParam(b)
	case StateCsiIntermediate:
		p.advanceCsiIntermediate(b)
	case StateCsiIgnore:
		p.advanceCsiIgnore(b)
	case StateDcsEntry:
		p.advanceDcsEntry(b)
	case StateDcsParam:
		p.advanceDcsParam(b)
	case StateDcsIntermediate:
		p.advanceDcsIntermediate(b)
	case StateDcsPassthrough:
		p.advanceDcsPassthrough(b)
	case StateDcsIgnore:
		p.advanceDcsIgnore(b)
	case StateOscString:
		p.advanceOscString(b)
	case StateSosPmApcString:
		p.advanceSosPmApcString(b)
	}
}

func isC0Executable(b byte) bool {
	return b <= 0x17 || b == 0x19 || (b >= 0x1C && b <= 0x1F)
}

// --- Ground ---

func (p *Parser) advanceGround(b byte) {
	switch {
	case b == 0x1B:
		p.sink.Clear()
		p.state = StateEscape
	case isC0Executable(b):
		p.sink.Execute(b)
	case b < 0x20 || b == 0x7F:
		p.sink.Execute(b)
	case b < 0x80:
		p.sink.Print(rune(b))
	default:
		p.startUTF8(b)
	}
}

func (p *Parser) startUTF8(b byte) {
	switch {
	case b&0xE0 == 0xC0:
		p.utf8Buf[0] = b
		p.utf8Len = 1
		p.utf8Want = 2
	case b&0xF0 == 0xE0:
		p.utf8Buf[0] = b
		p.utf8Len = 1
		p.utf8Want = 3
	case b&0xF8 == 0xF0:
		p.utf8Buf[0] = b
		p.utf8Len = 1
		p.utf8Want = 4
	default:
		// Stray continuation byte or invalid lead byte.
		p.diagnosticf(ErrEncoding, "invalid UTF-8 lead byte 0x%02x", b)
		p.sink.Print(utf8.RuneError)
	}
}

func (p *Parser) flushUTF8() {
	r, size := utf8.DecodeRune(p.utf8Buf[:p.utf8Len])
	if r == utf8.RuneError && size <= 1 {
		p.diagnosticf(ErrEncoding, "invalid UTF-8 sequence % x", p.utf8Buf[:p.utf8Len])
		p.sink.Print(utf8.RuneError)
	} else {
		p.sink.Print(r)
	}
	p.utf8Len, p.utf8Want = 0, 0
}

func (p *Parser) invalidUTF8() {
	p.diagnosticf(ErrEncoding, "incomplete UTF-8 sequence % x", p.utf8Buf[:p.utf8Len])
	p.sink.Print(utf8.RuneError)
	p.utf8Len, p.utf8Want = 0, 0
}

func (p *Parser) diagnosticf(kind ErrorKind, format string, args ...any) {
	if p.logger == nil {
		return
	}
	p.logger.Printf("%s: "+format, append([]any{kind}, args...)...)
}

// --- Escape ---

func (p *Parser) advanceEscape(b byte) {
	switch {
	case isC0Executable(b):
		p.sink.Execute(b)
	case b == 0x50: // DCS
		p.state = StateDcsEntry
	case b == 0x5B: // CSI
		p.state = StateCsiEntry
	case b == 0x5D: // OSC
		p.sink.OscStart()
		p.state = StateOscString
	case b == 0x58: // SOS
		p.strKind = stringKindSOS
		p.sink.SosStart()
		p.state = StateSosPmApcString
	case b == 0x5E: // PM
		p.strKind = stringKindPM
		p.sink.PmStart()
		p.state = StateSosPmApcString
	case b == 0x5F: // APC
		p.strKind = stringKindAPC
		p.sink.ApcStart()
		p.state = StateSosPmApcString
	case b >= 0x20 && b <= 0x2F:
		p.sink.CollectIntermediate(b)
		p.state = StateEscapeIntermediate
	case b >= 0x30 && b <= 0x7E:
		p.sink.EscDispatch(b)
		p.state = StateGround
	case b == 0x7F:
		// ignore
	default:
		p.state = StateGround
	}
}

func (p *Parser) advanceEscapeIntermediate(b byte) {
	switch {
	case isC0Executable(b):
		p.sink.Execute(b)
	case b >= 0x20 && b <= 0x2F:
		p.sink.CollectIntermediate(b)
	case b >= 0x30 && b <= 0x7E:
		p.sink.EscDispatch(b)
		p.state = StateGround
	default:
		// ignore (0x7F, stray)
	}
}

// --- CSI ---

func (p *Parser) advanceCsiEntry(b byte) {
	switch {
	case isC0Executable(b):
		p.sink.Execute(b)
	case b >= '0' && b <= '9':
		p.sink.ParamDigit(b)
		p.state = StateCsiParam
	case b == ':':
		p.sink.ParamSubSeparator()
		p.state = StateCsiParam
	case b == ';':
		p.sink.ParamSeparator()
		p.state = StateCsiParam
	case b >= 0x3C && b <= 0x3F:
		p.sink.CollectLeader(b)
	case b >= 0x20 && b <= 0x2F:
		p.sink.CollectIntermediate(b)
		p.state = StateCsiIntermediate
	case b >= 0x40 && b <= 0x7E:
		p.sink.CsiDispatch(b)
		p.state = StateGround
	default:
		p.state = StateCsiIgnore
	}
}

func (p *Parser) advanceCsiParam(b byte) {
	switch {
	case isC0Executable(b):
		p.sink.Execute(b)
	case b >= '0' && b <= '9':
		p.sink.ParamDigit(b)
	case b == ':':
		p.sink.ParamSubSeparator()
	case b == ';':
		p.sink.ParamSeparator()
	case b >= 0x3C && b <= 0x3F:
		p.diagnosticf(ErrParser, "unexpected leader byte 0x%02x in CSI param state", b)
		p.state = StateCsiIgnore
	case b >= 0x20 && b <= 0x2F:
		p.sink.CollectIntermediate(b)
		p.state = StateCsiIntermediate
	case b >= 0x40 && b <= 0x7E:
		p.sink.CsiDispatch(b)
		p.state = StateGround
	default:
		p.state = StateCsiIgnore
	}
}

func (p *Parser) advanceCsiIntermediate(b byte) {
	switch {
	case isC0Executable(b):
		p.sink.Execute(b)
	case b >= 0x20 && b <= 0x2F:
		p.sink.CollectIntermediate(b)
	case b >= 0x40 && b <= 0x7E:
		p.sink.CsiDispatch(b)
		p.state = StateGround
	default:
		p.state = StateCsiIgnore
	}
}

func (p *Parser) advanceCsiIgnore(b byte) {
	switch {
	case isC0Executable(b):
		p.sink.Execute(b)
	case b >= 0x40 && b <= 0x7E:
		p.state = StateGround
	default:
		// swallow
	}
}

// --- DCS ---

func (p *Parser) advanceDcsEntry(b byte) {
	switch {
	case b >= '0' && b <= '9':
		p.sink.ParamDigit(b)
		p.state = StateDcsParam
	case b == ':':
		p.sink.ParamSubSeparator()
		p.state = StateDcsParam
	case b == ';':
		p.sink.ParamSeparator()
		p.state = StateDcsParam
	case b >= 0x3C && b <= 0x3F:
		p.sink.CollectLeader(b)
	case b >= 0x20 && b <= 0x2F:
		p.sink.CollectIntermediate(b)
		p.state = StateDcsIntermediate
	case b >= 0x40 && b <= 0x7E:
		p.sink.Hook(b)
		p.state = StateDcsPassthrough
	default:
		p.state = StateDcsIgnore
	}
}

func (p *Parser) advanceDcsParam(b byte) {
	switch {
	case b >= '0' && b <= '9':
		p.sink.ParamDigit(b)
	case b == ':':
		p.sink.ParamSubSeparator()
	case b == ';':
		p.sink.ParamSeparator()
	case b >= 0x3C && b <= 0x3F:
		p.state = StateDcsIgnore
	case b >= 0x20 && b <= 0x2F:
		p.sink.CollectIntermediate(b)
		p.state = StateDcsIntermediate
	case b >= 0x40 && b <= 0x7E:
		p.sink.Hook(b)
		p.state = StateDcsPassthrough
	default:
		p.state = StateDcsIgnore
	}
}

func (p *Parser) advanceDcsIntermediate(b byte) {
	switch {
	case b >= 0x20 && b <= 0x2F:
		p.sink.CollectIntermediate(b)
	case b >= 0x40 && b <= 0x7E:
		p.sink.Hook(b)
		p.state = StateDcsPassthrough
	default:
		p.state = StateDcsIgnore
	}
}

func (p *Parser) advanceDcsIgnore(b byte) {
	if b == 0x1B {
		p.advanceStringEsc(b, func() { p.sink.Unhook() })
		return
	}
	// swallow everything else until ST
}

func (p *Parser) advanceDcsPassthrough(b byte) {
	if b == 0x1B {
		p.advanceStringEsc(b, func() { p.sink.Unhook() })
		return
	}
	if b < 0x20 && !isC0Executable(b) {
		return // ignore stray C0 other than the executable set
	}
	p.sink.Put(b)
}

// --- OSC ---

func (p *Parser) advanceOscString(b byte) {
	switch {
	case b == 0x07: // BEL terminates OSC (xterm convention)
		p.sink.OscEnd()
		p.state = StateGround
	case b == 0x1B:
		p.advanceStringEsc(b, func() { p.sink.OscEnd() })
	case b < 0x20:
		// ignore other C0 bytes inside an OSC payload
	default:
		p.sink.OscPut(b)
	}
}

// --- SOS/PM/APC ---

func (p *Parser) advanceSosPmApcString(b byte) {
	switch {
	case b == 0x1B:
		p.advanceStringEsc(b, func() { p.endStringKind() })
	case b < 0x20:
		// ignore
	default:
		p.putStringKind(b)
	}
}

func (p *Parser) putStringKind(b byte) {
	switch p.strKind {
	case stringKindAPC:
		p.sink.ApcPut(b)
	case stringKindPM:
		p.sink.PmPut(b)
	case stringKindSOS:
		p.sink.SosPut(b)
	}
}

func (p *Parser) endStringKind() {
	switch p.strKind {
	case stringKindAPC:
		p.sink.ApcEnd()
	case stringKindPM:
		p.sink.PmEnd()
	case stringKindSOS:
		p.sink.SosEnd()
	}
	p.strKind = stringKindNone
}

// advanceStringEsc implements the shared ESC-lookahead used by every string
// state (DCS/OSC/APC/PM/SOS): ESC '\' (ST) ends the string via onEnd; any
// other byte after ESC means the string was abandoned without a proper
// terminator, so it's ended anyway and the new ESC is reprocessed as the
// start of a fresh escape sequence.
func (p *Parser) advanceStringEsc(b byte, onEnd func()) {
	if !p.awaitingST {
		p.awaitingST = true
		return
	}
	p.awaitingST = false
	onEnd()
	if b == 0x5C {
		p.state = StateGround
		return
	}
	// Not a proper ST: re-enter Escape state and reprocess this byte.
	p.state = StateGround
	p.Advance(0x1B)
	p.Advance(b)
}

func (p *Parser) abortString() {
	switch p.state {
	case StateDcsPassthrough, StateDcsIgnore:
		p.sink.Unhook()
	case StateOscString:
		p.sink.OscEnd()
	case StateSosPmApcString:
		p.endStringKind()
	}
	p.awaitingST = false
}
