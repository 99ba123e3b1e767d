package termcore

import "testing"

func TestLineTrivialUntilWritten(t *testing.T) {
	l := NewLine()
	if !l.IsTrivial() {
		t.Error("expected new line to be trivial")
	}
	if l.CellAt(3).Char != ' ' {
		t.Error("expected trivial line to report blank cells")
	}
}

func TestLineInflateOnWrite(t *testing.T) {
	l := NewLine()
	c := l.Cell(2, 5)
	c.Char = 'X'

	if l.IsTrivial() {
		t.Error("expected line to inflate after Cell access")
	}
	if l.CellAt(2).Char != 'X' {
		t.Errorf("expected 'X' at column 2, got %q", l.CellAt(2).Char)
	}
	if l.Width() != 5 {
		t.Errorf("expected width 5, got %d", l.Width())
	}
}

func TestLineClearReturnsToTrivial(t *testing.T) {
	l := NewLine()
	l.Cell(0, 5).Char = 'X'
	l.Clear()
	if !l.IsTrivial() {
		t.Error("expected line to return to trivial form after Clear")
	}
}

func TestLineClearRangePartial(t *testing.T) {
	l := NewLine()
	l.Cell(0, 5).Char = 'A'
	l.Cell(1, 5).Char = 'B'
	l.Cell(2, 5).Char = 'C'

	l.ClearRange(1, 2, 5)

	if l.CellAt(0).Char != 'A' || l.CellAt(2).Char != 'C' {
		t.Error("expected only column 1 cleared")
	}
	if l.CellAt(1).Char != ' ' {
		t.Error("expected column 1 blanked")
	}
}

func TestLineRunesSkipsContinuationCells(t *testing.T) {
	l := NewLine()
	c := l.Cell(0, 4)
	c.Char = '中'
	c.SetFlag(CellFlagWideChar)
	l.Cell(1, 4).SetFlag(CellFlagWideCharContinuation)
	l.Cell(2, 4).Char = '!'

	runes := l.Runes()
	want := []rune{'中', '!', ' '}
	if len(runes) != len(want) {
		t.Fatalf("got %v, want %v", string(runes), string(want))
	}
	for i := range want {
		if runes[i] != want[i] {
			t.Errorf("rune %d: got %q, want %q", i, runes[i], want[i])
		}
	}
}

func TestLineCopyIsIndependent(t *testing.T) {
	l := NewLine()
	l.Cell(0, 3).Char = 'A'

	cp := l.Copy()
	l.Cell(0, 3).Char = 'B'

	if cp.CellAt(0).Char != 'A' {
		t.Error("expected copy to be independent of mutations to original")
	}
}
