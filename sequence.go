package termcore

// SequenceCategory classifies a finished Sequence by which parser string/
// dispatch family produced it (spec §4.2).
type SequenceCategory int

const (
	CategoryC0 SequenceCategory = iota
	CategoryC1
	CategoryEsc
	CategoryCsi
	CategoryDcs
	CategoryOsc
	CategoryApc
	CategoryPm
	CategorySos
)

func (c SequenceCategory) String() string {
	switch c {
	case CategoryC0:
		return "C0"
	case CategoryC1:
		return "C1"
	case CategoryEsc:
		return "ESC"
	case CategoryCsi:
		return "CSI"
	case CategoryDcs:
		return "DCS"
	case CategoryOsc:
		return "OSC"
	case CategoryApc:
		return "APC"
	case CategoryPm:
		return "PM"
	case CategorySos:
		return "SOS"
	default:
		return "?"
	}
}

const maxParams = 16

// ParamList is the packed parameter/sub-parameter store described in spec
// §4.2: up to 16 top-level parameters, each with zero or more colon-joined
// sub-parameters (e.g. `38:2:255:0:0` is one parameter, 38, with the four
// subs 2, 255, 0, 0). Values/Subs storage is reused across sequences by
// Reset to stay allocation-free on the hot path (the Subs slices keep their
// capacity).
type ParamList struct {
	Values [maxParams]int64
	Subs   [maxParams][]int64
	Count  int
	cur    int64
	inSub  bool // a ':' has been seen since the current parameter began
}

func (p *ParamList) digit(b byte) {
	p.cur = p.cur*10 + int64(b-'0')
	if p.cur > 0x7FFFFFFF {
		p.cur = 0x7FFFFFFF
	}
}

func (p *ParamList) subSeparator() {
	if p.Count < maxParams {
		if p.inSub {
			p.Subs[p.Count] = append(p.Subs[p.Count], p.cur)
		} else {
			p.Values[p.Count] = p.cur
		}
	}
	p.inSub = true
	p.cur = 0
}

func (p *ParamList) separator() {
	if p.Count < maxParams {
		if p.inSub {
			p.Subs[p.Count] = append(p.Subs[p.Count], p.cur)
		} else {
			p.Values[p.Count] = p.cur
		}
		p.Count++
	}
	p.inSub = false
	p.cur = 0
}

// finish closes out the trailing parameter (the one after the last
// separator, or the only one if none appeared at all).
func (p *ParamList) finish() {
	if p.Count < maxParams {
		if p.inSub {
			p.Subs[p.Count] = append(p.Subs[p.Count], p.cur)
		} else {
			p.Values[p.Count] = p.cur
		}
		p.Count++
	}
	p.inSub = false
	p.cur = 0
}

// reset clears values and counts but keeps the Subs backing arrays to avoid
// reallocating on every sequence.
func (p *ParamList) reset() {
	for i := 0; i < maxParams; i++ {
		p.Values[i] = 0
		p.Subs[i] = p.Subs[i][:0]
	}
	p.Count = 0
	p.cur = 0
	p.inSub = false
}

// Get returns the i'th parameter, or def if it wasn't supplied or is 0 (DEC
// convention: an explicit 0 and an omitted parameter both mean "default").
func (p *ParamList) Get(i int, def int64) int64 {
	if i < 0 || i >= p.Count || p.Values[i] == 0 {
		return def
	}
	return p.Values[i]
}

// GetRaw returns the i'th parameter's literal value without substituting def
// for an explicit 0 (needed by handlers, e.g. SGR 38, that must distinguish
// "0" from "absent").
func (p *ParamList) GetRaw(i int, def int64) int64 {
	if i < 0 || i >= p.Count {
		return def
	}
	return p.Values[i]
}

// GetSub returns the j'th sub-parameter of the i'th parameter.
func (p *ParamList) GetSub(i, j int, def int64) int64 {
	if i < 0 || i >= p.Count || j < 0 || j >= len(p.Subs[i]) {
		return def
	}
	return p.Subs[i][j]
}

// SubCount reports how many sub-parameters the i'th parameter carries.
func (p *ParamList) SubCount(i int) int {
	if i < 0 || i >= p.Count {
		return 0
	}
	return len(p.Subs[i])
}

// FunctionSelector is the dispatch key from spec §4.2: enough of a finished
// Sequence's shape to look up a handler in the Function Dispatcher's table,
// without needing to inspect parameter values.
type FunctionSelector struct {
	Category     SequenceCategory
	Leader       byte
	ParamCount   int
	Intermediate byte
	Final        byte
}

// Sequence is a single fully-assembled escape/control sequence handed to the
// Dispatcher (spec §4.2). Data holds the raw payload for OSC/DCS/APC/PM/SOS;
// for CSI/ESC/C0/C1 it is always empty.
type Sequence struct {
	Category      SequenceCategory
	Leader        byte
	Params        ParamList
	Intermediates [2]byte
	IntermLen     int
	Final         byte
	Data          []byte
}

// Selector computes this sequence's dispatch key.
func (s *Sequence) Selector() FunctionSelector {
	var im byte
	if s.IntermLen > 0 {
		im = s.Intermediates[0]
	}
	return FunctionSelector{
		Category:     s.Category,
		Leader:       s.Leader,
		ParamCount:   s.Params.Count,
		Intermediate: im,
		Final:        s.Final,
	}
}

// Param reads the i'th parameter, substituting def for omitted/explicit-zero.
func (s *Sequence) Param(i int, def int64) int64 { return s.Params.Get(i, def) }

// SubParam reads the j'th sub-parameter of the i'th parameter.
func (s *Sequence) SubParam(i, j int, def int64) int64 { return s.Params.GetSub(i, j, def) }

// Printer receives decoded, charset-agnostic codepoints from Ground-state
// print actions (the Screen's write path; see screen.go).
type Printer interface {
	Print(r rune)
}

// Dispatcher receives fully-assembled sequences from the Assembler. The
// Function Dispatcher (dispatch.go) is the production implementation.
type Dispatcher interface {
	Dispatch(seq *Sequence)
}

// Assembler implements EventSink, turning the Parser's action stream into
// Sequence values and routing printable codepoints and finished sequences to
// its Printer and Dispatcher (spec §4.2, component 2).
type Assembler struct {
	printer    Printer
	dispatcher Dispatcher

	seq    Sequence
	strBuf []byte
}

// NewAssembler builds an Assembler that prints through p and dispatches
// through d.
func NewAssembler(p Printer, d Dispatcher) *Assembler {
	return &Assembler{printer: p, dispatcher: d}
}

func (a *Assembler) Execute(b byte) {
	cat := CategoryC0
	if b >= 0x80 {
		cat = CategoryC1
	}
	seq := Sequence{Category: cat, Final: b}
	if a.dispatcher != nil {
		a.dispatcher.Dispatch(&seq)
	}
}

func (a *Assembler) Print(r rune) {
	if a.printer != nil {
		a.printer.Print(r)
	}
}

func (a *Assembler) CollectLeader(b byte) { a.seq.Leader = b }

func (a *Assembler) CollectIntermediate(b byte) {
	if a.seq.IntermLen < len(a.seq.Intermediates) {
		a.seq.Intermediates[a.seq.IntermLen] = b
		a.seq.IntermLen++
	}
}

func (a *Assembler) ParamDigit(b byte)    { a.seq.Params.digit(b) }
func (a *Assembler) ParamSeparator()      { a.seq.Params.separator() }
func (a *Assembler) ParamSubSeparator()   { a.seq.Params.subSeparator() }

func (a *Assembler) EscDispatch(final byte) {
	a.seq.Category = CategoryEsc
	a.seq.Final = final
	a.seq.Params.finish()
	a.emit()
}

func (a *Assembler) CsiDispatch(final byte) {
	a.seq.Category = CategoryCsi
	a.seq.Final = final
	a.seq.Params.finish()
	a.emit()
}

func (a *Assembler) Hook(final byte) {
	a.seq.Category = CategoryDcs
	a.seq.Final = final
	a.seq.Params.finish()
	a.strBuf = a.strBuf[:0]
}

func (a *Assembler) Put(b byte) { a.strBuf = append(a.strBuf, b) }

func (a *Assembler) Unhook() {
	a.seq.Data = append([]byte(nil), a.strBuf...)
	a.emit()
}

func (a *Assembler) OscStart() { a.strBuf = a.strBuf[:0] }
func (a *Assembler) OscPut(b byte) { a.strBuf = append(a.strBuf, b) }
func (a *Assembler) OscEnd() {
	a.seq.Category = CategoryOsc
	a.applyOscNumericPrefix(a.strBuf)
	a.emit()
}

func (a *Assembler) ApcStart()     { a.strBuf = a.strBuf[:0] }
func (a *Assembler) ApcPut(b byte) { a.strBuf = append(a.strBuf, b) }
func (a *Assembler) ApcEnd() {
	a.seq.Category = CategoryApc
	a.seq.Data = append([]byte(nil), a.strBuf...)
	a.emit()
}

func (a *Assembler) PmStart()     { a.strBuf = a.strBuf[:0] }
func (a *Assembler) PmPut(b byte) { a.strBuf = append(a.strBuf, b) }
func (a *Assembler) PmEnd() {
	a.seq.Category = CategoryPm
	a.seq.Data = append([]byte(nil), a.strBuf...)
	a.emit()
}

func (a *Assembler) SosStart()     { a.strBuf = a.strBuf[:0] }
func (a *Assembler) SosPut(b byte) { a.strBuf = append(a.strBuf, b) }
func (a *Assembler) SosEnd() {
	a.seq.Category = CategorySos
	a.seq.Data = append([]byte(nil), a.strBuf...)
	a.emit()
}

// Clear resets leader/intermediates/parameters/final for a fresh sequence.
// The parser calls it once per sequence, on the ESC that starts it;
// strBuf is reset separately by Hook or the relevant *Start instead, since
// Clear fires before a category is even known for DCS/OSC/APC/PM/SOS.
func (a *Assembler) Clear() {
	a.seq.Leader = 0
	a.seq.IntermLen = 0
	a.seq.Final = 0
	a.seq.Data = nil
	a.seq.Params.reset()
}

func (a *Assembler) emit() {
	if a.dispatcher == nil {
		return
	}
	cp := a.seq
	a.dispatcher.Dispatch(&cp)
}

// applyOscNumericPrefix implements the spec §4.2 OSC convention: the
// leading run of ASCII digits (and the separator ';' after it, if present)
// becomes parameter 0, and the remainder becomes Data.
func (a *Assembler) applyOscNumericPrefix(data []byte) {
	i := 0
	for i < len(data) && data[i] >= '0' && data[i] <= '9' {
		i++
	}
	if i == 0 {
		a.seq.Data = append([]byte(nil), data...)
		return
	}
	var v int64
	for _, c := range data[:i] {
		v = v*10 + int64(c-'0')
	}
	a.seq.Params.Values[0] = v
	a.seq.Params.Count = 1
	rest := data[i:]
	if len(rest) > 0 && rest[0] == ';' {
		rest = rest[1:]
	}
	a.seq.Data = append([]byte(nil), rest...)
}

// NewPipeline wires a fresh Parser to a fresh Assembler so callers only need
// to feed bytes into the returned Parser.
func NewPipeline(p Printer, d Dispatcher) (*Parser, *Assembler) {
	asm := NewAssembler(p, d)
	return NewParser(asm), asm
}
