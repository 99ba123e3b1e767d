package termcore

// EraseSelectivity distinguishes DECSED/DECSEL's "selective" erase (which
// respects CellFlagProtected) from an ordinary erase (spec §4.4).
type EraseSelectivity int

const (
	EraseAll EraseSelectivity = iota
	EraseSelective
)

// Grid is the spec §4.4 Grid: a rectangular page of Lines plus, for the
// primary screen only, a scrollback history of lines evicted by scrolling.
// History is addressed with negative row indices relative to the visible
// page (row -1 is the most recently scrolled-off line).
type Grid struct {
	width, height   int
	lines           []Line
	history         []Line // oldest first
	maxHistoryLines int
	scrollback      bool

	// OnEvict, if set, is called with every line as it scrolls off the top
	// of the visible page (before it is appended to history), letting an
	// embedder mirror scrollback somewhere outside the in-memory cap.
	OnEvict func(Line)
}

// NewGrid creates a width x height grid. scrollback enables history
// retention (true for the primary screen, false for the alternate screen).
func NewGrid(width, height int, scrollback bool, maxHistoryLines int) *Grid {
	g := &Grid{
		width:           width,
		height:          height,
		scrollback:      scrollback,
		maxHistoryLines: maxHistoryLines,
	}
	g.lines = make([]Line, height)
	for i := range g.lines {
		g.lines[i] = NewLine()
	}
	return g
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// HistoryLen returns the number of lines currently in scrollback.
func (g *Grid) HistoryLen() int { return len(g.history) }

// Line returns a pointer to the line at row (0-based from the top of the
// visible page; negative rows index into history, row -1 being the most
// recent). Returns nil if row is out of range.
func (g *Grid) Line(row int) *Line {
	if row >= 0 {
		if row >= g.height {
			return nil
		}
		return &g.lines[row]
	}
	idx := len(g.history) + row
	if idx < 0 || idx >= len(g.history) {
		return nil
	}
	return &g.history[idx]
}

// At returns the cell at (row, col), or a blank cell if out of range.
func (g *Grid) At(row, col int) Cell {
	l := g.Line(row)
	if l == nil {
		return NewCell()
	}
	return l.CellAt(col)
}

// Write places a grapheme of the given display width at (row, col), setting
// CellFlagWideCharContinuation on the following cell for width==2. It never
// creates a cell beyond the right margin (spec §4.4): a write that would
// spill past the grid width is dropped (Screen is responsible for wrapping
// before calling Write).
func (g *Grid) Write(row, col int, r rune, width int, attrs GraphicsAttributes, link HyperlinkID) {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return
	}
	if col+width > g.width {
		return
	}
	line := &g.lines[row]
	c := line.Cell(col, g.width)
	c.Char = r
	c.Combining = nil
	c.Attrs = attrs
	c.Flags = attrs.Flags
	c.Hyperlink = link
	c.Image = nil
	c.MarkDirty()
	if width == 2 {
		c.SetFlag(CellFlagWideChar)
		if col+1 < g.width {
			cont := line.Cell(col+1, g.width)
			cont.Reset()
			cont.SetFlag(CellFlagWideCharContinuation)
			cont.Attrs = attrs
			cont.MarkDirty()
		}
	}
}

// AppendCombining merges an additional combining codepoint into the cell at
// (row, col), for grapheme clusters assembled across multiple Print calls.
func (g *Grid) AppendCombining(row, col int, r rune) {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return
	}
	c := g.lines[row].Cell(col, g.width)
	c.Combining = append(c.Combining, r)
	c.MarkDirty()
}

func clampRegion(top, bottom, height int) (int, int) {
	if top < 0 {
		top = 0
	}
	if bottom >= height {
		bottom = height - 1
	}
	if bottom < top {
		bottom = top
	}
	return top, bottom
}

// ScrollUp rotates n lines out of the top of [top, bottom] (inclusive),
// filling the vacated bottom rows with blank lines. When the region starts
// at row 0 and this grid retains scrollback, evicted lines are appended to
// history (capped at maxHistoryLines); alternate-screen scrolling never
// touches history (spec §4.4).
func (g *Grid) ScrollUp(n, top, bottom int) {
	if n <= 0 {
		return
	}
	top, bottom = clampRegion(top, bottom, g.height)
	regionHeight := bottom - top + 1
	if n > regionHeight {
		n = regionHeight
	}
	evicted := make([]Line, n)
	copy(evicted, g.lines[top:top+n])
	copy(g.lines[top:], g.lines[top+n:bottom+1])
	for i := bottom - n + 1; i <= bottom; i++ {
		g.lines[i] = NewLine()
	}
	if top == 0 && g.scrollback {
		if g.OnEvict != nil {
			for i := range evicted {
				g.OnEvict(evicted[i])
			}
		}
		g.history = append(g.history, evicted...)
		if len(g.history) > g.maxHistoryLines {
			drop := len(g.history) - g.maxHistoryLines
			g.history = g.history[drop:]
		}
	}
}

// ScrollDown rotates n lines into the top of [top, bottom], discarding the
// bottom n lines of the region. History is never repopulated by a
// scroll-down.
func (g *Grid) ScrollDown(n, top, bottom int) {
	if n <= 0 {
		return
	}
	top, bottom = clampRegion(top, bottom, g.height)
	regionHeight := bottom - top + 1
	if n > regionHeight {
		n = regionHeight
	}
	copy(g.lines[top+n:bottom+1], g.lines[top:bottom+1-n])
	for i := top; i < top+n; i++ {
		g.lines[i] = NewLine()
	}
}

// Erase blanks the rectangular span between (fromRow, fromCol) and (toRow,
// toCol) inclusive. If selectivity is EraseSelective, cells carrying
// CellFlagProtected (DECSCA) are left untouched.
func (g *Grid) Erase(fromRow, fromCol, toRow, toCol int, selectivity EraseSelectivity) {
	if fromRow > toRow || (fromRow == toRow && fromCol > toCol) {
		return
	}
	for row := fromRow; row <= toRow && row < g.height; row++ {
		if row < 0 {
			continue
		}
		start, end := 0, g.width
		if row == fromRow {
			start = fromCol
		}
		if row == toRow {
			end = toCol + 1
		}
		if selectivity == EraseAll {
			g.lines[row].ClearRange(start, end, g.width)
			continue
		}
		line := &g.lines[row]
		line.inflate(g.width)
		for c := start; c < end && c < len(line.cells); c++ {
			if c < 0 {
				continue
			}
			if line.cells[c].HasFlag(CellFlagProtected) {
				continue
			}
			line.cells[c] = NewCell()
		}
	}
}

func isBlankCell(c Cell) bool {
	if c.Char != ' ' && c.Char != 0 {
		return false
	}
	if len(c.Combining) > 0 {
		return false
	}
	if c.Flags&(CellFlagWideChar|CellFlagWideCharContinuation) != 0 {
		return false
	}
	if c.Image != nil || c.Hyperlink != 0 {
		return false
	}
	if !isDefaultColor(c.Attrs.Background) {
		return false
	}
	return true
}

type reflowCursorPos struct {
	chainIndex  int
	localOffset int
}

// Resize implements the spec §4.4 resize/reflow operation: wrappable
// (Wrapped-chained) lines across the whole grid, including history, are
// joined and re-split at the new width; trailing blank cells are trimmed at
// each chain's end; the cursor is relocated to its grapheme position in the
// reflowed text. A height change that leaves width unchanged falls out of
// the same code path: each chain is simply re-chunked at its existing width.
func (g *Grid) Resize(newWidth, newHeight int, cur *Cursor) {
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	flat := make([]Line, 0, len(g.history)+len(g.lines))
	flat = append(flat, g.history...)
	flat = append(flat, g.lines...)

	cursorAbsRow := len(g.history) + cur.Row
	cursorCol := cur.Col

	pos := reflowCursorPos{chainIndex: -1}
	var chains [][]Cell

	i := 0
	for i < len(flat) {
		var cells []Cell
		localOffsetBase := -1
		for {
			line := flat[i]
			lineWidth := line.width
			if lineWidth == 0 {
				lineWidth = g.width
			}
			if i == cursorAbsRow {
				localOffsetBase = len(cells) + cursorCol
			}
			for c := 0; c < lineWidth; c++ {
				cells = append(cells, line.CellAt(c))
			}
			wrapped := line.Wrapped
			i++
			if !wrapped || i >= len(flat) {
				break
			}
		}
		end := len(cells)
		for end > 0 && isBlankCell(cells[end-1]) {
			end--
		}
		cells = cells[:end]
		if localOffsetBase >= 0 {
			pos.chainIndex = len(chains)
			pos.localOffset = localOffsetBase
			if pos.localOffset > len(cells) {
				pos.localOffset = len(cells)
			}
		}
		chains = append(chains, cells)
	}

	var newFlat []Line
	var cursorNewAbsRow, cursorNewCol int
	for idx, cells := range chains {
		if len(cells) == 0 {
			newFlat = append(newFlat, NewLine())
			if idx == pos.chainIndex {
				cursorNewAbsRow = len(newFlat) - 1
				cursorNewCol = 0
			}
			continue
		}
		chainStartRow := len(newFlat)
		for off := 0; off < len(cells); off += newWidth {
			endOff := off + newWidth
			if endOff > len(cells) {
				endOff = len(cells)
			}
			var l Line
			l.inflate(newWidth)
			copy(l.cells, cells[off:endOff])
			l.Wrapped = endOff < len(cells)
			newFlat = append(newFlat, l)
		}
		if idx == pos.chainIndex {
			row := pos.localOffset / newWidth
			col := pos.localOffset % newWidth
			cursorNewAbsRow = chainStartRow + row
			cursorNewCol = col
		}
	}

	if pos.chainIndex == -1 {
		cursorNewAbsRow = len(newFlat) - 1
		if cursorNewAbsRow < 0 {
			cursorNewAbsRow = 0
		}
		cursorNewCol = 0
	}

	// Blank lines below the cursor are dropped first, so a height shrink only
	// pushes lines into history when the cursor would otherwise leave the page.
	for len(newFlat) > newHeight && len(newFlat)-1 > cursorNewAbsRow && newFlat[len(newFlat)-1].cells == nil {
		newFlat = newFlat[:len(newFlat)-1]
	}

	var newHistory, newVisible []Line
	if len(newFlat) <= newHeight {
		newVisible = make([]Line, newHeight)
		copy(newVisible, newFlat)
		for i := len(newFlat); i < newHeight; i++ {
			newVisible[i] = NewLine()
		}
	} else {
		splitAt := len(newFlat) - newHeight
		newHistory = append([]Line(nil), newFlat[:splitAt]...)
		newVisible = append([]Line(nil), newFlat[splitAt:]...)
	}

	var drop int
	if !g.scrollback {
		drop = len(newHistory)
		newHistory = nil
	} else if len(newHistory) > g.maxHistoryLines {
		drop = len(newHistory) - g.maxHistoryLines
		newHistory = newHistory[drop:]
	}
	cursorNewAbsRow -= drop

	g.width = newWidth
	g.height = newHeight
	g.lines = newVisible
	g.history = newHistory

	cur.Row = cursorNewAbsRow - len(g.history)
	if cur.Row < 0 {
		cur.Row = 0
	}
	if cur.Row >= g.height {
		cur.Row = g.height - 1
	}
	cur.Col = cursorNewCol
	if cur.Col >= g.width {
		cur.Col = g.width - 1
	}
	cur.WrapPending = false
}
