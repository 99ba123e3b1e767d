package termcore

import "testing"

func defaultAttrs() GraphicsAttributes {
	return GraphicsAttributes{Foreground: DefaultColor{}, Background: DefaultColor{}}
}

func TestScreenWritePrintableAdvancesCursor(t *testing.T) {
	s := NewScreen(10, 3, true, 1000)
	s.WritePrintable('A', 1, defaultAttrs(), 0, false)
	if s.Cursor.Col != 1 {
		t.Errorf("expected cursor col 1, got %d", s.Cursor.Col)
	}
	if s.Grid.At(0, 0).Char != 'A' {
		t.Errorf("expected 'A' written, got %q", s.Grid.At(0, 0).Char)
	}
}

func TestScreenAutoWrapSetsPendingThenWraps(t *testing.T) {
	s := NewScreen(3, 2, true, 1000)
	s.WritePrintable('A', 1, defaultAttrs(), 0, false)
	s.WritePrintable('B', 1, defaultAttrs(), 0, false)
	s.WritePrintable('C', 1, defaultAttrs(), 0, false)

	if !s.Cursor.WrapPending {
		t.Fatal("expected wrap pending after filling the last column")
	}
	if s.Cursor.Row != 0 {
		t.Fatalf("expected row to stay 0 until next write, got %d", s.Cursor.Row)
	}

	s.WritePrintable('D', 1, defaultAttrs(), 0, false)
	if s.Cursor.Row != 1 || s.Cursor.Col != 1 {
		t.Errorf("expected wrap to row 1 col 1, got (%d,%d)", s.Cursor.Row, s.Cursor.Col)
	}
	if s.Grid.At(1, 0).Char != 'D' {
		t.Errorf("expected 'D' on wrapped row, got %q", s.Grid.At(1, 0).Char)
	}
}

func TestScreenLineFeedScrollsAtBottomMargin(t *testing.T) {
	s := NewScreen(3, 2, true, 1000)
	s.WritePrintable('A', 1, defaultAttrs(), 0, false)
	s.Cursor.Row = 1
	s.LineFeed()

	if s.Cursor.Row != 1 {
		t.Errorf("expected row to stay at bottom margin, got %d", s.Cursor.Row)
	}
	if s.Grid.HistoryLen() != 1 {
		t.Errorf("expected scroll to push a line into history, got %d", s.Grid.HistoryLen())
	}
}

func TestScreenOriginModeClampsCursorToMargins(t *testing.T) {
	s := NewScreen(10, 10, true, 1000)
	s.SetMargins(2, 6)
	s.SetOriginMode(true)

	if s.Cursor.Row != 2 {
		t.Errorf("expected cursor homed to margin top, got row %d", s.Cursor.Row)
	}

	s.MoveCursorRelative(-5, 0)
	if s.Cursor.Row != 2 {
		t.Errorf("expected cursor clamped to margin top, got %d", s.Cursor.Row)
	}

	s.MoveCursorRelative(20, 0)
	if s.Cursor.Row != 6 {
		t.Errorf("expected cursor clamped to margin bottom, got %d", s.Cursor.Row)
	}
}

func TestScreenTabStopsDefaultEveryEightColumns(t *testing.T) {
	s := NewScreen(20, 3, true, 1000)
	s.Tab()
	if s.Cursor.Col != 8 {
		t.Errorf("expected first default tab stop at column 8, got %d", s.Cursor.Col)
	}
	s.Tab()
	if s.Cursor.Col != 16 {
		t.Errorf("expected next tab stop at column 16, got %d", s.Cursor.Col)
	}
}

func TestScreenSaveRestoreCursor(t *testing.T) {
	s := NewScreen(10, 10, true, 1000)
	s.Cursor.Row, s.Cursor.Col = 3, 4
	s.SaveCursor()
	s.Cursor.Row, s.Cursor.Col = 0, 0
	s.RestoreCursor()

	if s.Cursor.Row != 3 || s.Cursor.Col != 4 {
		t.Errorf("expected cursor restored to (3,4), got (%d,%d)", s.Cursor.Row, s.Cursor.Col)
	}
}

func TestScreenInsertAndDeleteCells(t *testing.T) {
	s := NewScreen(5, 1, true, 1000)
	for i, r := range "ABCDE" {
		s.Grid.Write(0, i, r, 1, defaultAttrs(), 0)
	}
	s.insertCells(0, 1, 2)
	if got := string(s.Grid.Line(0).Runes()); got != "A  BC" {
		t.Errorf("expected 'A  BC' after insert, got %q", got)
	}

	s.DeleteCells(0, 1, 2)
	if got := s.Grid.At(0, 1).Char; got != 'B' {
		t.Errorf("expected 'B' shifted back into col 1, got %q", got)
	}
}

func TestScreenResizeKeepsCursorSane(t *testing.T) {
	s := NewScreen(10, 5, true, 1000)
	s.Cursor.Row, s.Cursor.Col = 4, 9
	s.Resize(5, 3)

	if s.Cursor.Row >= 3 || s.Cursor.Col >= 5 {
		t.Errorf("expected cursor within new bounds, got (%d,%d)", s.Cursor.Row, s.Cursor.Col)
	}
}
