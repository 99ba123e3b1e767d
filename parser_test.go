package termcore

import (
	"reflect"
	"testing"
)

// recordingSink captures every EventSink call as a string for comparison.
type recordingSink struct {
	events []string
}

func (r *recordingSink) add(s string) { r.events = append(r.events, s) }

func (r *recordingSink) Execute(b byte)          { r.add("execute " + string(rune(b))) }
func (r *recordingSink) Print(ru rune)           { r.add("print " + string(ru)) }
func (r *recordingSink) CollectLeader(b byte)    { r.add("leader " + string(rune(b))) }
func (r *recordingSink) CollectIntermediate(b byte) { r.add("interm " + string(rune(b))) }
func (r *recordingSink) ParamDigit(b byte)       { r.add("digit " + string(rune(b))) }
func (r *recordingSink) ParamSeparator()         { r.add("sep") }
func (r *recordingSink) ParamSubSeparator()      { r.add("subsep") }
func (r *recordingSink) EscDispatch(b byte)      { r.add("esc " + string(rune(b))) }
func (r *recordingSink) CsiDispatch(b byte)      { r.add("csi " + string(rune(b))) }
func (r *recordingSink) Hook(b byte)             { r.add("hook " + string(rune(b))) }
func (r *recordingSink) Put(b byte)              { r.add("put " + string(rune(b))) }
func (r *recordingSink) Unhook()                 { r.add("unhook") }
func (r *recordingSink) OscStart()               { r.add("oscstart") }
func (r *recordingSink) OscPut(b byte)           { r.add("oscput " + string(rune(b))) }
func (r *recordingSink) OscEnd()                 { r.add("oscend") }
func (r *recordingSink) ApcStart()               { r.add("apcstart") }
func (r *recordingSink) ApcPut(b byte)           { r.add("apcput " + string(rune(b))) }
func (r *recordingSink) ApcEnd()                 { r.add("apcend") }
func (r *recordingSink) PmStart()                { r.add("pmstart") }
func (r *recordingSink) PmPut(b byte)            { r.add("pmput " + string(rune(b))) }
func (r *recordingSink) PmEnd()                  { r.add("pmend") }
func (r *recordingSink) SosStart()               { r.add("sosstart") }
func (r *recordingSink) SosPut(b byte)           { r.add("sosput " + string(rune(b))) }
func (r *recordingSink) SosEnd()                 { r.add("sosend") }
func (r *recordingSink) Clear()                  { r.add("clear") }

func TestParserPrintsPlainText(t *testing.T) {
	sink := &recordingSink{}
	p := NewParser(sink)
	p.AdvanceBytes([]byte("Hi"))

	want := []string{"print H", "print i"}
	if !reflect.DeepEqual(sink.events, want) {
		t.Errorf("got %v, want %v", sink.events, want)
	}
}

func TestParserCSIDispatch(t *testing.T) {
	sink := &recordingSink{}
	p := NewParser(sink)
	p.AdvanceBytes([]byte("\x1b[1;31m"))

	want := []string{"clear", "digit 1", "sep", "digit 3", "digit 1", "csi m"}
	if !reflect.DeepEqual(sink.events, want) {
		t.Errorf("got %v, want %v", sink.events, want)
	}
}

func TestParserCSIWithLeaderAndIntermediate(t *testing.T) {
	sink := &recordingSink{}
	p := NewParser(sink)
	p.AdvanceBytes([]byte("\x1b[?25h"))

	want := []string{"clear", "leader ?", "digit 2", "digit 5", "csi h"}
	if !reflect.DeepEqual(sink.events, want) {
		t.Errorf("got %v, want %v", sink.events, want)
	}
}

func TestParserChunkingDoesNotChangeOutput(t *testing.T) {
	input := []byte("hello\x1b[1;31mworld\x1b]0;title\x07end")

	whole := &recordingSink{}
	NewParser(whole).AdvanceBytes(input)

	// Feed byte-by-byte across many "chunks" and confirm identical events.
	chunked := &recordingSink{}
	p := NewParser(chunked)
	for _, b := range input {
		p.Advance(b)
	}

	if !reflect.DeepEqual(whole.events, chunked.events) {
		t.Errorf("chunking changed output:\nwhole:   %v\nchunked: %v", whole.events, chunked.events)
	}

	// And split into arbitrary multi-byte chunks.
	split := &recordingSink{}
	p2 := NewParser(split)
	chunks := [][]byte{input[:3], input[3:10], input[10:]}
	for _, c := range chunks {
		p2.AdvanceBytes(c)
	}
	if !reflect.DeepEqual(whole.events, split.events) {
		t.Errorf("multi-byte chunking changed output:\nwhole: %v\nsplit: %v", whole.events, split.events)
	}
}

func TestParserOSCTerminatedByBEL(t *testing.T) {
	sink := &recordingSink{}
	p := NewParser(sink)
	p.AdvanceBytes([]byte("\x1b]0;hi\x07"))

	want := []string{"clear", "oscstart", "oscput 0", "oscput ;", "oscput h", "oscput i", "oscend"}
	if !reflect.DeepEqual(sink.events, want) {
		t.Errorf("got %v, want %v", sink.events, want)
	}
}

func TestParserOSCTerminatedByST(t *testing.T) {
	sink := &recordingSink{}
	p := NewParser(sink)
	p.AdvanceBytes([]byte("\x1b]0;hi\x1b\\"))

	want := []string{"clear", "oscstart", "oscput 0", "oscput ;", "oscput h", "oscput i", "oscend"}
	if !reflect.DeepEqual(sink.events, want) {
		t.Errorf("got %v, want %v", sink.events, want)
	}
}

func TestParserDCSPassthrough(t *testing.T) {
	sink := &recordingSink{}
	p := NewParser(sink)
	p.AdvanceBytes([]byte("\x1bP1$rdata\x1b\\"))

	want := []string{
		"clear", "digit 1", "interm $", "hook r",
		"put d", "put a", "put t", "put a", "unhook",
	}
	if !reflect.DeepEqual(sink.events, want) {
		t.Errorf("got %v, want %v", sink.events, want)
	}
}

func TestParserAPCString(t *testing.T) {
	sink := &recordingSink{}
	p := NewParser(sink)
	p.AdvanceBytes([]byte("\x1b_Gf=24;abc\x1b\\"))

	want := []string{"clear", "apcstart"}
	for _, r := range "Gf=24;abc" {
		want = append(want, "apcput "+string(r))
	}
	want = append(want, "apcend")
	if !reflect.DeepEqual(sink.events, want) {
		t.Errorf("got %v, want %v", sink.events, want)
	}
}

func TestParserCANAbortsSequence(t *testing.T) {
	sink := &recordingSink{}
	p := NewParser(sink)
	p.AdvanceBytes([]byte("\x1b[1;3\x18A"))

	want := []string{"clear", "digit 1", "sep", "digit 3", "execute \x18", "print A"}
	if !reflect.DeepEqual(sink.events, want) {
		t.Errorf("got %v, want %v", sink.events, want)
	}
}

func TestParserUTF8SplitAcrossChunks(t *testing.T) {
	// U+00E9 'é' = 0xC3 0xA9
	sink := &recordingSink{}
	p := NewParser(sink)
	p.Advance(0xC3)
	p.Advance(0xA9)

	want := []string{"print é"}
	if !reflect.DeepEqual(sink.events, want) {
		t.Errorf("got %v, want %v", sink.events, want)
	}
}

func TestParserInvalidUTF8ProducesReplacementChar(t *testing.T) {
	sink := &recordingSink{}
	p := NewParser(sink)
	p.Advance(0xC3) // lead byte
	p.Advance('A')  // not a continuation byte

	if len(sink.events) != 2 {
		t.Fatalf("expected 2 events, got %v", sink.events)
	}
	if sink.events[0] != "print �" {
		t.Errorf("expected replacement char, got %q", sink.events[0])
	}
	if sink.events[1] != "print A" {
		t.Errorf("expected 'A' reprocessed normally, got %q", sink.events[1])
	}
}
