package termcore

// Line is a single row of the grid. Most lines never receive attribute- or
// wide-char-bearing content, so a Line starts "trivial" (cells implied to be
// blank, no backing slice) and only inflates to a full []Cell buffer on its
// first write. This mirrors how the teacher's Buffer kept rows cheap for the
// common case of a mostly-blank screen, generalized here to survive resize
// and reflow (spec §4.4).
type Line struct {
	cells   []Cell // nil while trivial
	width   int    // width this line is inflated to, 0 while trivial
	Wrapped bool   // true if this line's content continues onto the next row
}

// NewLine creates a trivial (uninflated) line.
func NewLine() Line { return Line{} }

// IsTrivial reports whether the line has never been written to.
func (l *Line) IsTrivial() bool { return l.cells == nil }

// inflate ensures the line has a backing []Cell of exactly width w, filled
// with blank cells if it was trivial or needs to grow.
func (l *Line) inflate(w int) {
	if l.cells != nil && l.width == w {
		return
	}
	cells := make([]Cell, w)
	for i := range cells {
		cells[i] = NewCell()
	}
	if l.cells != nil {
		copy(cells, l.cells)
	}
	l.cells = cells
	l.width = w
}

// Width returns the line's current inflated width, or 0 if trivial.
func (l *Line) Width() int { return l.width }

// Cell returns a pointer to the cell at column c, inflating first if needed.
// w is the grid's current width, used to inflate trivial lines on demand.
func (l *Line) Cell(c, w int) *Cell {
	l.inflate(w)
	if c < 0 || c >= len(l.cells) {
		return nil
	}
	return &l.cells[c]
}

// CellAt returns the cell at column c without inflating; trivial lines
// report blank cells by value.
func (l *Line) CellAt(c int) Cell {
	if l.cells == nil {
		return NewCell()
	}
	if c < 0 || c >= len(l.cells) {
		return NewCell()
	}
	return l.cells[c]
}

// Clear resets every cell in the line to blank and drops the Wrapped flag,
// returning to trivial representation to free memory.
func (l *Line) Clear() {
	l.cells = nil
	l.width = 0
	l.Wrapped = false
}

// ClearRange blanks columns [from, to) without leaving trivial form unless
// the whole line is covered.
func (l *Line) ClearRange(from, to, w int) {
	if from <= 0 && to >= w {
		l.Clear()
		return
	}
	l.inflate(w)
	if from < 0 {
		from = 0
	}
	if to > len(l.cells) {
		to = len(l.cells)
	}
	for i := from; i < to; i++ {
		l.cells[i] = NewCell()
	}
}

// Runes returns the line's text content (base rune and combining marks of
// each cell, skipping wide-char continuation cells). Trailing blank cells are
// included; trimmedLineString drops them for plain-text rendering.
func (l *Line) Runes() []rune {
	if l.cells == nil {
		return nil
	}
	out := make([]rune, 0, len(l.cells))
	for _, c := range l.cells {
		if c.HasFlag(CellFlagWideCharContinuation) {
			continue
		}
		out = append(out, c.Runes()...)
	}
	return out
}

// Copy returns a deep copy of the line (cells independently mutable).
func (l *Line) Copy() Line {
	out := Line{width: l.width, Wrapped: l.Wrapped}
	if l.cells != nil {
		out.cells = make([]Cell, len(l.cells))
		for i := range l.cells {
			out.cells[i] = l.cells[i].Copy()
		}
	}
	return out
}

// trimTrailingBlanks returns the index one past the last non-blank,
// non-continuation-of-blank cell; used by trimmedLineString to drop trailing
// padding from rendered text.
func (l *Line) trimTrailingBlanks() int {
	if l.cells == nil {
		return 0
	}
	end := len(l.cells)
	for end > 0 {
		c := l.cells[end-1]
		if c.Char != ' ' || len(c.Combining) > 0 || c.HasFlag(CellFlagWideChar|CellFlagWideCharContinuation) ||
			c.Attrs.Background != nil && !isDefaultColor(c.Attrs.Background) {
			break
		}
		end--
	}
	return end
}

func isDefaultColor(c Color) bool {
	_, ok := c.(DefaultColor)
	return ok
}
