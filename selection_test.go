package termcore

import "testing"

func TestSelectionWordWiseSelectsWord(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("foo bar baz")

	term.StartSelection(Position{Row: 0, Col: 4}, SelectionWordWise)

	if got := term.GetSelectedText(); got != "bar" {
		t.Errorf("expected 'bar', got %q", got)
	}
}

func TestSelectionWordWiseExtendsAcrossWords(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("foo bar baz")

	term.StartSelection(Position{Row: 0, Col: 4}, SelectionWordWise)
	term.ExtendSelection(Position{Row: 0, Col: 9})

	if got := term.GetSelectedText(); got != "bar baz" {
		t.Errorf("expected 'bar baz', got %q", got)
	}
}

func TestSelectionWordWiseDragBackwardPastAnchor(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("foo bar baz")

	term.StartSelection(Position{Row: 0, Col: 9}, SelectionWordWise) // anchors on "baz"
	term.ExtendSelection(Position{Row: 0, Col: 0})                   // drag back onto "foo"

	if got := term.GetSelectedText(); got != "foo bar baz" {
		t.Errorf("expected 'foo bar baz', got %q", got)
	}
}

func TestSelectionFullLineSelectsWholeLine(t *testing.T) {
	term := New(WithSize(24, 10))
	term.WriteString("Hello\r\nWorld")

	term.StartSelection(Position{Row: 0, Col: 2}, SelectionFullLine)

	got := term.GetSelectedText()
	if got != "Hello     " {
		t.Errorf("expected full padded line, got %q", got)
	}
}

func TestSelectionFullLineExtendsAcrossRows(t *testing.T) {
	term := New(WithSize(24, 10))
	term.WriteString("Hello\r\nWorld")

	term.StartSelection(Position{Row: 0, Col: 0}, SelectionFullLine)
	term.ExtendSelection(Position{Row: 1, Col: 0})

	if !term.IsSelected(1, 3) {
		t.Error("expected row 1 to be part of the full-line selection")
	}
}

func TestSelectionFullLineSpansWrappedSegments(t *testing.T) {
	term := New(WithSize(24, 5))
	term.WriteString("ABCDEFGHIJ") // wraps across two rows at width 5

	term.StartSelection(Position{Row: 0, Col: 0}, SelectionFullLine)

	if !term.IsSelected(1, 4) {
		t.Error("expected the wrapped continuation row to be included in the full-line selection")
	}
}

func TestSelectionRectangularBoundsColumns(t *testing.T) {
	term := New(WithSize(24, 20))
	term.WriteString("Hello World\r\nGolang Code\r\nFoo Bar Baz")

	term.StartSelection(Position{Row: 0, Col: 0}, SelectionRectangular)
	term.ExtendSelection(Position{Row: 2, Col: 4})

	if !term.IsSelected(1, 2) {
		t.Error("expected (1,2) inside the rectangular block")
	}
	if term.IsSelected(1, 8) {
		t.Error("expected (1,8) outside the rectangular block's column range")
	}

	got := term.GetSelectedText()
	expected := "Hello\nGolan\nFoo B"
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestSelectionRectangularDragDirectionIndependent(t *testing.T) {
	term := New(WithSize(24, 20))
	term.WriteString("Hello World\r\nGolang Code")

	// Start bottom-right, drag to top-left: bounds should still normalize.
	term.StartSelection(Position{Row: 1, Col: 5}, SelectionRectangular)
	term.ExtendSelection(Position{Row: 0, Col: 0})

	got := term.GetSelectedText()
	expected := "Hello \nGolang"
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestSelectionRangesLinear(t *testing.T) {
	term := New(WithSize(24, 80))
	term.SetSelection(Position{Row: 0, Col: 2}, Position{Row: 1, Col: 4})

	ranges := term.SelectionRanges()
	if len(ranges) != 2 {
		t.Fatalf("expected 2 ranges, got %d", len(ranges))
	}
	if ranges[0].Row != 0 || ranges[0].StartCol != 2 {
		t.Errorf("unexpected first range: %+v", ranges[0])
	}
	if ranges[1].Row != 1 || ranges[1].EndCol != 4 {
		t.Errorf("unexpected second range: %+v", ranges[1])
	}
}

func TestSelectionRangesInactive(t *testing.T) {
	term := New(WithSize(24, 80))

	if ranges := term.SelectionRanges(); ranges != nil {
		t.Errorf("expected nil ranges with no active selection, got %v", ranges)
	}
}
