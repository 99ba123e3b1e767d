package termcore

import (
	"bytes"
	"testing"
)

func TestEncodeKeyArrowsUnmodified(t *testing.T) {
	term := New()
	cases := map[Key]string{
		KeyUp: "\x1b[A", KeyDown: "\x1b[B", KeyRight: "\x1b[C", KeyLeft: "\x1b[D",
	}
	for key, want := range cases {
		if got := string(term.EncodeKey(key, 0)); got != want {
			t.Errorf("key %d: got %q want %q", key, got, want)
		}
	}
}

func TestEncodeKeyArrowsAppCursorMode(t *testing.T) {
	term := New()
	term.Write([]byte("\x1b[?1h"))
	if got := string(term.EncodeKey(KeyUp, 0)); got != "\x1bOA" {
		t.Fatalf("got %q want ESC O A", got)
	}
}

func TestEncodeKeyArrowsWithModifier(t *testing.T) {
	term := New()
	got := string(term.EncodeKey(KeyUp, ModShift))
	if got != "\x1b[1;2A" {
		t.Fatalf("got %q want \\x1b[1;2A", got)
	}
}

func TestEncodeKeyAppCursorModeIgnoredWithModifier(t *testing.T) {
	term := New()
	term.Write([]byte("\x1b[?1h"))
	got := string(term.EncodeKey(KeyUp, ModControl))
	if got != "\x1b[1;5A" {
		t.Fatalf("got %q want \\x1b[1;5A (CSI form even under DECCKM)", got)
	}
}

func TestEncodeKeyHomeEnd(t *testing.T) {
	term := New()
	if got := string(term.EncodeKey(KeyHome, 0)); got != "\x1b[H" {
		t.Fatalf("Home: got %q", got)
	}
	if got := string(term.EncodeKey(KeyEnd, 0)); got != "\x1b[F" {
		t.Fatalf("End: got %q", got)
	}
}

func TestEncodeKeyTildeKeys(t *testing.T) {
	term := New()
	if got := string(term.EncodeKey(KeyDelete, 0)); got != "\x1b[3~" {
		t.Fatalf("Delete: got %q", got)
	}
	if got := string(term.EncodeKey(KeyPageUp, ModShift)); got != "\x1b[5;2~" {
		t.Fatalf("Shift+PageUp: got %q", got)
	}
}

func TestEncodeKeyFunctionKeys(t *testing.T) {
	term := New()
	if got := string(term.EncodeKey(KeyF1, 0)); got != "\x1bOP" {
		t.Fatalf("F1: got %q", got)
	}
	if got := string(term.EncodeKey(KeyF5, 0)); got != "\x1b[15~" {
		t.Fatalf("F5: got %q", got)
	}
}

func TestEncodeKeySimpleKeys(t *testing.T) {
	term := New()
	if got := string(term.EncodeKey(KeyEnter, 0)); got != "\r" {
		t.Fatalf("Enter: got %q", got)
	}
	if got := string(term.EncodeKey(KeyTab, 0)); got != "\t" {
		t.Fatalf("Tab: got %q", got)
	}
	if got := string(term.EncodeKey(KeyTab, ModShift)); got != "\x1b[Z" {
		t.Fatalf("Shift+Tab: got %q", got)
	}
	if got := string(term.EncodeKey(KeyBackspace, 0)); got != "\x7f" {
		t.Fatalf("Backspace: got %q", got)
	}
	if got := string(term.EncodeKey(KeyEscape, 0)); got != "\x1b" {
		t.Fatalf("Escape: got %q", got)
	}
}

func TestEncodeRuneCtrlLetters(t *testing.T) {
	if got := string(EncodeRune('a', ModControl)); got != "\x01" {
		t.Fatalf("Ctrl+a: got %q", got)
	}
	if got := string(EncodeRune('A', ModControl)); got != "\x01" {
		t.Fatalf("Ctrl+A: got %q", got)
	}
	if got := string(EncodeRune('z', ModControl)); got != "\x1a" {
		t.Fatalf("Ctrl+z: got %q", got)
	}
}

func TestEncodeRuneCtrlSpecialChars(t *testing.T) {
	cases := map[rune]byte{
		'[': 0x1b, '\\': 0x1c, ']': 0x1d, '^': 0x1e, '_': 0x1f, ' ': 0x00,
	}
	for r, want := range cases {
		got := EncodeRune(r, ModControl)
		if len(got) != 1 || got[0] != want {
			t.Errorf("Ctrl+%q: got %v want %v", r, got, want)
		}
	}
}

func TestEncodeRunePlain(t *testing.T) {
	if got := string(EncodeRune('x', 0)); got != "x" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeRuneAlt(t *testing.T) {
	got := EncodeRune('x', ModAlt)
	if string(got) != "\x1bx" {
		t.Fatalf("got %q want ESC x", got)
	}
}

func TestEncodeRuneAltControl(t *testing.T) {
	got := EncodeRune('a', ModAlt|ModControl)
	if string(got) != "\x1b\x01" {
		t.Fatalf("got %q want ESC 0x01", got)
	}
}

func TestEncodeMouseRequiresMouseProtocol(t *testing.T) {
	term := New()
	if got := term.EncodeMouse(MouseButtonLeft, 1, 1, 0, true); got != nil {
		t.Fatalf("expected nil with no mouse protocol enabled, got %q", got)
	}
}

func TestEncodeMouseSGRPressAndRelease(t *testing.T) {
	term := New()
	term.Write([]byte("\x1b[?1000h\x1b[?1006h"))
	press := term.EncodeMouse(MouseButtonLeft, 5, 10, 0, true)
	if string(press) != "\x1b[<0;10;5M" {
		t.Fatalf("press: got %q", press)
	}
	release := term.EncodeMouse(MouseButtonLeft, 5, 10, 0, false)
	if string(release) != "\x1b[<0;10;5m" {
		t.Fatalf("release: got %q", release)
	}
}

func TestEncodeMouseSGRWithModifiers(t *testing.T) {
	term := New()
	term.Write([]byte("\x1b[?1000h\x1b[?1006h"))
	got := term.EncodeMouse(MouseButtonLeft, 1, 1, ModShift|ModControl, true)
	if string(got) != "\x1b[<20;1;1M" {
		t.Fatalf("got %q want code 20 (0 + 4 shift + 16 ctrl)", got)
	}
}

func TestEncodeMouseWheel(t *testing.T) {
	term := New()
	term.Write([]byte("\x1b[?1000h\x1b[?1006h"))
	got := term.EncodeMouse(MouseWheelUp, 1, 1, 0, true)
	if string(got) != "\x1b[<64;1;1M" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeFocusRequiresMode(t *testing.T) {
	term := New()
	if got := term.EncodeFocus(true); got != nil {
		t.Fatalf("expected nil without focus event mode, got %q", got)
	}
	term.Write([]byte("\x1b[?1004h"))
	if got := term.EncodeFocus(true); string(got) != "\x1b[I" {
		t.Fatalf("got %q", got)
	}
	if got := term.EncodeFocus(false); string(got) != "\x1b[O" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodePasteBracketed(t *testing.T) {
	term := New()
	term.Write([]byte("\x1b[?2004h"))
	got := term.EncodePaste([]byte("hello"))
	if string(got) != "\x1b[200~hello\x1b[201~" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodePasteUnwrappedWithoutMode(t *testing.T) {
	term := New()
	got := term.EncodePaste([]byte("hello"))
	if string(got) != "hello" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeMouseDefaultFormat(t *testing.T) {
	term := New()
	term.Write([]byte("\x1b[?1000h"))
	got := term.EncodeMouse(MouseButtonLeft, 5, 10, 0, true)
	want := []byte{0x1b, '[', 'M', byte(0 + 32), byte(10 + 32), byte(5 + 32)}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestEncodeMouseDefaultRelease(t *testing.T) {
	term := New()
	term.Write([]byte("\x1b[?1000h"))
	got := term.EncodeMouse(MouseButtonLeft, 5, 10, 0, false)
	want := []byte{0x1b, '[', 'M', byte(3 + 32), byte(10 + 32), byte(5 + 32)}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestEncodeMouseURXVTFormat(t *testing.T) {
	term := New()
	term.Write([]byte("\x1b[?1000h\x1b[?1015h"))
	got := term.EncodeMouse(MouseButtonLeft, 5, 10, 0, true)
	if string(got) != "\x1b[32;10;5M" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeMouseX10ProtocolUsesDefaultFormat(t *testing.T) {
	term := New()
	term.Write([]byte("\x1b[?9h"))
	got := term.EncodeMouse(MouseButtonRight, 3, 4, 0, true)
	want := []byte{0x1b, '[', 'M', byte(2 + 32), byte(4 + 32), byte(3 + 32)}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

// TestEncodeKeyEventKittyDisambiguate exercises spec scenario S7's first
// half: with DisambiguateEscapeCodes pushed, Shift+Escape press encodes as
// CSI 27;2u instead of a bare ESC byte.
func TestEncodeKeyEventKittyDisambiguate(t *testing.T) {
	term := New()
	term.Write([]byte("\x1b[>1u")) // push DisambiguateEscapeCodes
	got := term.EncodeKeyEvent(KeyEscape, ModShift, KeyEventPress)
	if string(got) != "\x1b[27;2u" {
		t.Fatalf("got %q want CSI 27;2u", got)
	}
}

// TestEncodeKeyEventKittyReportEventTypesRelease exercises S7's second half:
// adding ReportEventTypes, a release with no modifiers held reports as
// CSI 27;1:3u.
func TestEncodeKeyEventKittyReportEventTypesRelease(t *testing.T) {
	term := New()
	term.Write([]byte("\x1b[>3u")) // DisambiguateEscapeCodes | ReportEventTypes
	got := term.EncodeKeyEvent(KeyEscape, 0, KeyEventRelease)
	if string(got) != "\x1b[27;1:3u" {
		t.Fatalf("got %q want CSI 27;1:3u", got)
	}
}

func TestEncodeKeyPrefersKittyWhenActive(t *testing.T) {
	term := New()
	term.Write([]byte("\x1b[>1u"))
	got := term.EncodeKey(KeyEscape, ModShift)
	if string(got) != "\x1b[27;2u" {
		t.Fatalf("got %q want CSI 27;2u via EncodeKey", got)
	}
}

func TestKittyKeyboardPopRestoresLegacyEncoding(t *testing.T) {
	term := New()
	term.Write([]byte("\x1b[>1u"))
	term.Write([]byte("\x1b[<u"))
	got := term.EncodeKey(KeyEscape, 0)
	if string(got) != "\x1b" {
		t.Fatalf("expected legacy ESC after pop, got %q", got)
	}
}

func TestKittyKeyboardQueryReportsActiveFlags(t *testing.T) {
	var resp bytes.Buffer
	term := New(WithResponse(&resp))
	term.Write([]byte("\x1b[>5u")) // Disambiguate | ReportAlternateKeys
	term.Write([]byte("\x1b[?u"))
	if resp.String() != "\x1b[?5u" {
		t.Fatalf("got %q", resp.String())
	}
}

func TestKittyKeyboardSetDirectReplacesTop(t *testing.T) {
	var resp bytes.Buffer
	term := New(WithResponse(&resp))
	term.Write([]byte("\x1b[>1u"))     // push Disambiguate
	term.Write([]byte("\x1b[=2;1u"))   // set (mode 1 = replace) to ReportEventTypes only
	term.Write([]byte("\x1b[?u"))
	if resp.String() != "\x1b[?2u" {
		t.Fatalf("got %q", resp.String())
	}
}

func TestDECRQLPReportsLastMousePosition(t *testing.T) {
	var resp bytes.Buffer
	term := New(WithResponse(&resp))
	term.Write([]byte("\x1b[?1000h"))
	term.EncodeMouse(MouseButtonLeft, 5, 10, 0, true)
	resp.Reset()
	term.Write([]byte("\x1b['|")) // DECRQLP
	if resp.String() != "\x1b[1;1;5;10;1&w" {
		t.Fatalf("got %q", resp.String())
	}
}

func TestDECRQLPReportsReleaseState(t *testing.T) {
	var resp bytes.Buffer
	term := New(WithResponse(&resp))
	term.Write([]byte("\x1b[?1000h"))
	term.EncodeMouse(MouseButtonLeft, 5, 10, 0, false)
	resp.Reset()
	term.Write([]byte("\x1b['|"))
	if resp.String() != "\x1b[2;0;5;10;1&w" {
		t.Fatalf("got %q", resp.String())
	}
}
