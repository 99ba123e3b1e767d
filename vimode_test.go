package termcore

import "testing"

func writeLines(t *testing.T, term *Terminal, lines ...string) {
	t.Helper()
	for i, line := range lines {
		term.Write([]byte(line))
		if i < len(lines)-1 {
			term.Write([]byte("\r\n"))
		}
	}
}

func TestViInputHandlerStartsNormalAtCursor(t *testing.T) {
	term := New()
	writeLines(t, term, "hello world")
	v := NewViInputHandler(term)
	if v.Mode() != ViModeNormal {
		t.Fatalf("expected Normal mode, got %v", v.Mode())
	}
	row, col := term.CursorPos()
	if v.CursorPos() != (Position{Row: row, Col: col}) {
		t.Fatalf("cursor mismatch: got %v want {%d %d}", v.CursorPos(), row, col)
	}
}

func TestViInputHandlerMotionHJKL(t *testing.T) {
	term := New()
	writeLines(t, term, "hello world", "second line")
	v := NewViInputHandler(term)
	v.cursor = Position{Row: 0, Col: 0}

	v.SendCharPressEvent('l', 0)
	if v.CursorPos().Col != 1 {
		t.Fatalf("l: got col %d", v.CursorPos().Col)
	}
	v.SendCharPressEvent('j', 0)
	if v.CursorPos().Row != 1 {
		t.Fatalf("j: got row %d", v.CursorPos().Row)
	}
	v.SendCharPressEvent('h', 0)
	if v.CursorPos().Col != 0 {
		t.Fatalf("h: got col %d", v.CursorPos().Col)
	}
	v.SendCharPressEvent('k', 0)
	if v.CursorPos().Row != 0 {
		t.Fatalf("k: got row %d", v.CursorPos().Row)
	}
}

func TestViInputHandlerCountedMotion(t *testing.T) {
	term := New()
	writeLines(t, term, "0123456789")
	v := NewViInputHandler(term)
	v.cursor = Position{Row: 0, Col: 0}

	v.SendCharPressEvent('3', 0)
	v.SendCharPressEvent('l', 0)
	if v.CursorPos().Col != 3 {
		t.Fatalf("3l: got col %d", v.CursorPos().Col)
	}
}

func TestViInputHandlerLineBeginEnd(t *testing.T) {
	term := New()
	writeLines(t, term, "hello")
	v := NewViInputHandler(term)
	v.cursor = Position{Row: 0, Col: 2}

	v.SendCharPressEvent('0', 0)
	if v.CursorPos().Col != 0 {
		t.Fatalf("0: got col %d", v.CursorPos().Col)
	}
	v.SendCharPressEvent('$', 0)
	if v.CursorPos().Col != 4 {
		t.Fatalf("$: got col %d want 4 (last non-blank of \"hello\")", v.CursorPos().Col)
	}
}

func TestViInputHandlerVisualModeSelectsAndYanks(t *testing.T) {
	term := New()
	writeLines(t, term, "hello world")
	v := NewViInputHandler(term)
	v.cursor = Position{Row: 0, Col: 0}

	v.SendCharPressEvent('v', 0)
	if v.Mode() != ViModeVisual {
		t.Fatalf("expected Visual mode after v")
	}
	if !term.HasSelection() {
		t.Fatalf("expected an active selection after entering Visual mode")
	}

	for i := 0; i < 4; i++ {
		v.SendCharPressEvent('l', 0)
	}

	clip := &viTestClipboard{}
	term.SetClipboardProvider(clip)
	v.SendCharPressEvent('y', 0)

	if v.Mode() != ViModeNormal {
		t.Fatalf("expected back to Normal mode after yank")
	}
	if clip.written != "hello" {
		t.Fatalf("got yanked text %q want %q", clip.written, "hello")
	}
}

func TestViInputHandlerVisualLineYanksWholeLine(t *testing.T) {
	term := New()
	writeLines(t, term, "abc")
	v := NewViInputHandler(term)
	v.cursor = Position{Row: 0, Col: 1}
	clip := &viTestClipboard{}
	term.SetClipboardProvider(clip)

	v.SendCharPressEvent('V', 0)
	v.SendCharPressEvent('y', 0)

	if len(clip.written) != term.cols {
		t.Fatalf("expected full-width line yank, got %d chars", len(clip.written))
	}
	if clip.written[:3] != "abc" {
		t.Fatalf("got %q", clip.written[:3])
	}
}

func TestViInputHandlerYankYYYanksCurrentLine(t *testing.T) {
	term := New()
	writeLines(t, term, "xyz")
	v := NewViInputHandler(term)
	v.cursor = Position{Row: 0, Col: 0}
	clip := &viTestClipboard{}
	term.SetClipboardProvider(clip)

	v.SendCharPressEvent('y', 0)
	v.SendCharPressEvent('y', 0)

	if clip.written[:3] != "xyz" {
		t.Fatalf("got %q", clip.written)
	}
}

func TestViInputHandlerWordMotion(t *testing.T) {
	term := New()
	writeLines(t, term, "foo bar baz")
	v := NewViInputHandler(term)
	v.cursor = Position{Row: 0, Col: 0}

	v.SendCharPressEvent('w', 0)
	if v.CursorPos().Col != 4 {
		t.Fatalf("w: got col %d want 4 (start of bar)", v.CursorPos().Col)
	}
	v.SendCharPressEvent('w', 0)
	if v.CursorPos().Col != 8 {
		t.Fatalf("w: got col %d want 8 (start of baz)", v.CursorPos().Col)
	}
	v.SendCharPressEvent('b', 0)
	if v.CursorPos().Col != 4 {
		t.Fatalf("b: got col %d want 4", v.CursorPos().Col)
	}
}

func TestViInputHandlerYankInnerWordTextObject(t *testing.T) {
	term := New()
	writeLines(t, term, "foo bar baz")
	v := NewViInputHandler(term)
	v.cursor = Position{Row: 0, Col: 5} // inside "bar"
	clip := &viTestClipboard{}
	term.SetClipboardProvider(clip)

	v.SendCharPressEvent('y', 0)
	v.SendCharPressEvent('i', 0)
	v.SendCharPressEvent('w', 0)

	if clip.written != "bar" {
		t.Fatalf("got %q want %q", clip.written, "bar")
	}
}

func TestViInputHandlerYankInnerParens(t *testing.T) {
	term := New()
	writeLines(t, term, "foo(bar)baz")
	v := NewViInputHandler(term)
	v.cursor = Position{Row: 0, Col: 5} // inside parens, on 'a'
	clip := &viTestClipboard{}
	term.SetClipboardProvider(clip)

	v.SendCharPressEvent('y', 0)
	v.SendCharPressEvent('i', 0)
	v.SendCharPressEvent('(', 0)

	if clip.written != "bar" {
		t.Fatalf("got %q want %q", clip.written, "bar")
	}
}

func TestViInputHandlerYankAroundParens(t *testing.T) {
	term := New()
	writeLines(t, term, "foo(bar)baz")
	v := NewViInputHandler(term)
	v.cursor = Position{Row: 0, Col: 5}
	clip := &viTestClipboard{}
	term.SetClipboardProvider(clip)

	v.SendCharPressEvent('y', 0)
	v.SendCharPressEvent('a', 0)
	v.SendCharPressEvent('(', 0)

	if clip.written != "(bar)" {
		t.Fatalf("got %q want %q", clip.written, "(bar)")
	}
}

func TestViInputHandlerEscapeReturnsToNormal(t *testing.T) {
	term := New()
	writeLines(t, term, "hi")
	v := NewViInputHandler(term)
	v.SetMode(ViModeVisual)
	v.SendKeyPressEvent(KeyEscape, 0)
	if v.Mode() != ViModeNormal {
		t.Fatalf("expected Normal mode after Escape")
	}
	if term.HasSelection() {
		t.Fatalf("expected selection cleared after Escape")
	}
}

func TestViInputHandlerInsertModeDoesNotConsumeChars(t *testing.T) {
	term := New()
	v := NewViInputHandler(term)
	v.SetMode(ViModeInsert)
	if v.SendCharPressEvent('j', 0) {
		t.Fatalf("expected Insert mode to leave keystrokes unconsumed")
	}
}

func TestViInputHandlerSearchMotion(t *testing.T) {
	term := New()
	writeLines(t, term, "alpha beta alpha")
	v := NewViInputHandler(term)
	v.cursor = Position{Row: 0, Col: 0}
	v.Search("alpha")

	if v.CursorPos().Col != 0 {
		t.Fatalf("expected first match at current position, got col %d", v.CursorPos().Col)
	}
	v.SendCharPressEvent('n', 0)
	if v.CursorPos().Col != 11 {
		t.Fatalf("n: got col %d want 11 (second alpha)", v.CursorPos().Col)
	}
}

func TestViInputHandlerPasteWritesResponse(t *testing.T) {
	term := New()
	clip := &viTestClipboard{toRead: "pasted"}
	term.SetClipboardProvider(clip)
	w := &viTestWriter{}
	term.SetResponseProvider(w)

	v := NewViInputHandler(term)
	v.SendCharPressEvent('p', 0)

	if string(w.data) != "pasted" {
		t.Fatalf("got %q want %q", w.data, "pasted")
	}
}

type viTestClipboard struct {
	written string
	toRead  string
}

func (c *viTestClipboard) Read(clipboard byte) string { return c.toRead }
func (c *viTestClipboard) Write(clipboard byte, data []byte) {
	c.written = string(data)
}

type viTestWriter struct{ data []byte }

func (w *viTestWriter) Write(p []byte) (int, error) {
	w.data = append(w.data, p...)
	return len(p), nil
}
