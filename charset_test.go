package termcore

import "testing"

func TestCharsetMappingDefaultsToASCII(t *testing.T) {
	m := NewCharsetMapping()
	if m.Translate('#') != '#' {
		t.Errorf("expected plain ASCII under default mapping, got %q", m.Translate('#'))
	}
}

func TestCharsetDesignateAndInvoke(t *testing.T) {
	m := NewCharsetMapping()
	m.Designate(G1, CharsetBritish)
	m.InvokeGL(G1)

	if got := m.Translate('#'); got != 0x00A3 {
		t.Errorf("expected £ under British charset, got %q", got)
	}
	// Unaffected bytes pass through unchanged.
	if got := m.Translate('A'); got != 'A' {
		t.Errorf("expected 'A' unchanged, got %q", got)
	}
}

func TestCharsetSingleShiftConsumedOnce(t *testing.T) {
	m := NewCharsetMapping()
	m.Designate(G2, CharsetSpecialLineDrawing)
	m.SingleShift(G2)

	if got := m.Translate('q'); got != 0x2500 {
		t.Errorf("expected ─ from single-shifted G2, got %q", got)
	}
	// Single shift is consumed; GL (still G0/ASCII) applies to the next byte.
	if got := m.Translate('q'); got != 'q' {
		t.Errorf("expected single shift to revert to GL, got %q", got)
	}
}

func TestCharsetGRInvocation(t *testing.T) {
	m := NewCharsetMapping()
	m.Designate(G3, CharsetGerman)
	m.InvokeGR(G3)
	if m.GR != G3 {
		t.Errorf("expected GR=G3, got %v", m.GR)
	}
}

func TestSpecialLineDrawingBoxChars(t *testing.T) {
	m := NewCharsetMapping()
	m.Designate(G0, CharsetSpecialLineDrawing)

	cases := map[byte]rune{
		'q': 0x2500, // ─
		'x': 0x2502, // │
		'l': 0x250C, // ┌
		'k': 0x2510, // ┐
		'm': 0x2514, // └
		'j': 0x2518, // ┘
	}
	for b, want := range cases {
		if got := m.Translate(b); got != want {
			t.Errorf("Translate(%q) = %q, want %q", b, got, want)
		}
	}
}
