package termcore

import "testing"

func TestGridWriteAndRead(t *testing.T) {
	g := NewGrid(10, 5, true, 1000)
	g.Write(0, 0, 'H', 1, GraphicsAttributes{Foreground: DefaultColor{}, Background: DefaultColor{}}, 0)
	g.Write(0, 1, 'i', 1, GraphicsAttributes{Foreground: DefaultColor{}, Background: DefaultColor{}}, 0)

	if g.At(0, 0).Char != 'H' || g.At(0, 1).Char != 'i' {
		t.Fatalf("unexpected cells: %q %q", g.At(0, 0).Char, g.At(0, 1).Char)
	}
}

func TestGridWriteWideCharSetsContinuation(t *testing.T) {
	g := NewGrid(10, 5, true, 1000)
	attrs := GraphicsAttributes{Foreground: DefaultColor{}, Background: DefaultColor{}}
	g.Write(0, 0, '中', 2, attrs, 0)

	if !g.At(0, 0).IsWide() {
		t.Error("expected wide flag on base cell")
	}
	if !g.At(0, 1).IsWideContinuation() {
		t.Error("expected continuation flag on following cell")
	}
}

func TestGridWriteNeverSpillsPastRightMargin(t *testing.T) {
	g := NewGrid(4, 2, true, 1000)
	attrs := GraphicsAttributes{Foreground: DefaultColor{}, Background: DefaultColor{}}
	g.Write(0, 3, '中', 2, attrs, 0)

	if g.At(0, 3).Char == '中' {
		t.Error("write should have been dropped: would spill past right margin")
	}
}

func TestGridScrollUpEvictsToHistory(t *testing.T) {
	g := NewGrid(3, 3, true, 1000)
	attrs := GraphicsAttributes{Foreground: DefaultColor{}, Background: DefaultColor{}}
	g.Write(0, 0, 'A', 1, attrs, 0)
	g.Write(1, 0, 'B', 1, attrs, 0)
	g.Write(2, 0, 'C', 1, attrs, 0)

	g.ScrollUp(1, 0, 2)

	if g.HistoryLen() != 1 {
		t.Fatalf("expected 1 line in history, got %d", g.HistoryLen())
	}
	if g.Line(-1).CellAt(0).Char != 'A' {
		t.Errorf("expected evicted line to hold 'A', got %q", g.Line(-1).CellAt(0).Char)
	}
	if g.At(0, 0).Char != 'B' || g.At(1, 0).Char != 'C' {
		t.Error("expected lines to shift up")
	}
	if g.At(2, 0).Char != ' ' {
		t.Error("expected bottom row blanked")
	}
}

func TestGridAlternateScreenScrollDoesNotTouchHistory(t *testing.T) {
	g := NewGrid(3, 3, false, 1000)
	g.ScrollUp(1, 0, 2)
	if g.HistoryLen() != 0 {
		t.Errorf("alternate screen must never populate history, got %d lines", g.HistoryLen())
	}
}

func TestGridScrollDownDiscardsBottomLines(t *testing.T) {
	g := NewGrid(3, 3, true, 1000)
	attrs := GraphicsAttributes{Foreground: DefaultColor{}, Background: DefaultColor{}}
	g.Write(0, 0, 'A', 1, attrs, 0)
	g.Write(1, 0, 'B', 1, attrs, 0)
	g.Write(2, 0, 'C', 1, attrs, 0)

	g.ScrollDown(1, 0, 2)

	if g.At(0, 0).Char != ' ' {
		t.Error("expected top row blanked")
	}
	if g.At(1, 0).Char != 'A' || g.At(2, 0).Char != 'B' {
		t.Error("expected lines to shift down")
	}
	if g.HistoryLen() != 0 {
		t.Error("scroll down must not touch history")
	}
}

func TestGridEraseSelectiveRespectsProtected(t *testing.T) {
	g := NewGrid(3, 1, true, 1000)
	attrs := GraphicsAttributes{Foreground: DefaultColor{}, Background: DefaultColor{}}
	g.Write(0, 0, 'A', 1, attrs, 0)
	g.Write(0, 1, 'B', 1, attrs, 0)
	g.Line(0).Cell(1, 3).SetFlag(CellFlagProtected)

	g.Erase(0, 0, 0, 2, EraseSelective)

	if g.At(0, 0).Char != ' ' {
		t.Error("expected unprotected cell erased")
	}
	if g.At(0, 1).Char != 'B' {
		t.Error("expected protected cell preserved")
	}
}

func TestGridResizeWidthReflowsWrappedChain(t *testing.T) {
	g := NewGrid(4, 3, true, 1000)
	attrs := GraphicsAttributes{Foreground: DefaultColor{}, Background: DefaultColor{}}
	text := "ABCDEFGH"
	for i, r := range text {
		g.Write(i/4, i%4, r, 1, attrs, 0)
	}
	g.Line(0).Wrapped = true

	cur := NewCursor()
	cur.Row, cur.Col = 1, 3 // sits on 'H'

	g.Resize(8, 3, cur)

	if g.At(0, 0).Char != 'A' || g.At(0, 7).Char != 'H' {
		t.Fatalf("expected reflowed single row ABCDEFGH, got row: %v",
			string(g.Line(0).Runes()))
	}
	if cur.Row != 0 || cur.Col != 7 {
		t.Errorf("expected cursor relocated to (0,7), got (%d,%d)", cur.Row, cur.Col)
	}
}

func TestGridResizeTrimsTrailingBlanks(t *testing.T) {
	g := NewGrid(10, 2, true, 1000)
	attrs := GraphicsAttributes{Foreground: DefaultColor{}, Background: DefaultColor{}}
	g.Write(0, 0, 'A', 1, attrs, 0)

	cur := NewCursor()
	g.Resize(3, 2, cur)

	if g.Line(0).Wrapped || string(g.Line(0).Runes()) != "A  " {
		t.Errorf("expected trailing blanks trimmed before reflow (unwrapped %q), got %q wrapped=%v",
			"A  ", string(g.Line(0).Runes()), g.Line(0).Wrapped)
	}
}

func TestGridResizeShrinkHeightPushesToHistory(t *testing.T) {
	g := NewGrid(3, 3, true, 1000)
	attrs := GraphicsAttributes{Foreground: DefaultColor{}, Background: DefaultColor{}}
	g.Write(0, 0, 'A', 1, attrs, 0)
	g.Write(1, 0, 'B', 1, attrs, 0)
	g.Write(2, 0, 'C', 1, attrs, 0)

	cur := NewCursor()
	cur.Row = 2
	g.Resize(3, 2, cur)

	if g.HistoryLen() != 1 {
		t.Fatalf("expected 1 line pushed to history, got %d", g.HistoryLen())
	}
	if g.Line(-1).CellAt(0).Char != 'A' {
		t.Errorf("expected 'A' pushed to history, got %q", g.Line(-1).CellAt(0).Char)
	}
}

func TestGridMaxHistoryCap(t *testing.T) {
	g := NewGrid(2, 1, true, 2)
	attrs := GraphicsAttributes{Foreground: DefaultColor{}, Background: DefaultColor{}}
	for i := 0; i < 5; i++ {
		g.Write(0, 0, rune('A'+i), 1, attrs, 0)
		g.ScrollUp(1, 0, 0)
	}
	if g.HistoryLen() > 2 {
		t.Errorf("expected history capped at 2, got %d", g.HistoryLen())
	}
}
