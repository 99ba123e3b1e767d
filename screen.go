package termcore

// Margins is the DECSTBM (top/bottom) and DECSLRM (left/right, gated by
// DECLRMM) scroll/cursor-motion region, in 0-based inclusive coordinates.
type Margins struct {
	Top, Bottom      int
	Left, Right      int
	LeftRightEnabled bool
}

// Screen is the spec §4.5 Screen: one of the two (primary/alternate) grids,
// each owning its own cursor, margins, tab stops, and saved-cursor slot. The
// terminal facade holds one of each and switches the active one on the
// alternate-screen DEC mode.
type Screen struct {
	Grid     *Grid
	Cursor   *Cursor
	Margins  Margins
	TabStops map[int]bool
	saved    SavedCursor
}

// NewScreen creates a screen of the given size. scrollback enables history
// retention on its Grid (true for primary, false for alternate).
func NewScreen(width, height int, scrollback bool, maxHistoryLines int) *Screen {
	s := &Screen{
		Grid:   NewGrid(width, height, scrollback, maxHistoryLines),
		Cursor: NewCursor(),
	}
	s.Margins = fullMargins(width, height)
	s.resetDefaultTabStops(width)
	return s
}

func fullMargins(width, height int) Margins {
	return Margins{Top: 0, Bottom: height - 1, Left: 0, Right: width - 1}
}

func (s *Screen) resetDefaultTabStops(width int) {
	s.TabStops = make(map[int]bool)
	for c := 8; c < width; c += 8 {
		s.TabStops[c] = true
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (s *Screen) marginLeft() int {
	if s.Margins.LeftRightEnabled {
		return s.Margins.Left
	}
	return 0
}

func (s *Screen) marginRight() int {
	if s.Margins.LeftRightEnabled {
		return s.Margins.Right
	}
	return s.Grid.width - 1
}

// rowBounds returns the cursor-motion vertical bounds: the scroll region
// when origin mode is set, else the whole page (spec §4.5 edge cases).
func (s *Screen) rowBounds() (int, int) {
	if s.Cursor.OriginMode {
		return s.Margins.Top, s.Margins.Bottom
	}
	return 0, s.Grid.height - 1
}

func (s *Screen) colBounds() (int, int) {
	if s.Cursor.OriginMode {
		return s.marginLeft(), s.marginRight()
	}
	return 0, s.Grid.width - 1
}

// ClampCursorToBox re-clamps the cursor into the currently active bounds;
// used after DECOM toggles and margin changes.
func (s *Screen) ClampCursorToBox() {
	top, bottom := s.rowBounds()
	left, right := s.colBounds()
	s.Cursor.Row = clampInt(s.Cursor.Row, top, bottom)
	s.Cursor.Col = clampInt(s.Cursor.Col, left, right)
}

// SetOriginMode applies DECOM and snaps the cursor to the origin of the
// newly active region (spec §4.5).
func (s *Screen) SetOriginMode(v bool) {
	s.Cursor.OriginMode = v
	if v {
		s.Cursor.Row, s.Cursor.Col = s.Margins.Top, s.marginLeft()
	} else {
		s.Cursor.Row, s.Cursor.Col = 0, 0
	}
	s.Cursor.WrapPending = false
}

// MoveCursorTo performs an absolute cursor positioning (CUP/HVP), honoring
// origin mode's offset and clamp.
func (s *Screen) MoveCursorTo(row, col int) {
	top, left := 0, 0
	if s.Cursor.OriginMode {
		top, left = s.Margins.Top, s.marginLeft()
	}
	s.Cursor.Row = clampInt(top+row, 0, s.Grid.height-1)
	s.Cursor.Col = clampInt(left+col, 0, s.Grid.width-1)
	s.Cursor.WrapPending = false
	s.ClampCursorToBox()
}

// MoveCursorRelative moves the cursor by (dRow, dCol), clamped to the active
// row/col bounds (CUU/CUD/CUF/CUB).
func (s *Screen) MoveCursorRelative(dRow, dCol int) {
	top, bottom := s.rowBounds()
	left, right := s.colBounds()
	s.Cursor.Row = clampInt(s.Cursor.Row+dRow, top, bottom)
	s.Cursor.Col = clampInt(s.Cursor.Col+dCol, left, right)
	s.Cursor.WrapPending = false
}

// LineFeed advances the cursor one row, scrolling the margin region if
// already at the bottom margin (LF/IND/VT/FF).
func (s *Screen) LineFeed() {
	if s.Cursor.Row == s.Margins.Bottom {
		s.Grid.ScrollUp(1, s.Margins.Top, s.Margins.Bottom)
	} else if s.Cursor.Row < s.Grid.height-1 {
		s.Cursor.Row++
	}
	s.Cursor.WrapPending = false
}

// ReverseLineFeed moves the cursor one row up, scrolling down if already at
// the top margin (RI).
func (s *Screen) ReverseLineFeed() {
	if s.Cursor.Row == s.Margins.Top {
		s.Grid.ScrollDown(1, s.Margins.Top, s.Margins.Bottom)
	} else if s.Cursor.Row > 0 {
		s.Cursor.Row--
	}
	s.Cursor.WrapPending = false
}

// CarriageReturn moves the cursor to the left margin (origin mode) or
// column 0 (CR).
func (s *Screen) CarriageReturn() {
	if s.Cursor.OriginMode {
		s.Cursor.Col = s.marginLeft()
	} else {
		s.Cursor.Col = 0
	}
	s.Cursor.WrapPending = false
}

// NextLine performs NEL: carriage return followed by line feed.
func (s *Screen) NextLine() {
	s.CarriageReturn()
	s.LineFeed()
}

// Backspace moves the cursor left one column, not crossing the left margin.
func (s *Screen) Backspace() {
	left := s.marginLeft()
	if s.Cursor.Col > left {
		s.Cursor.Col--
	}
	s.Cursor.WrapPending = false
}

// Tab moves the cursor forward to the next set tab stop, or the right
// margin if none remain (HT).
func (s *Screen) Tab() {
	right := s.marginRight()
	for c := s.Cursor.Col + 1; c <= right; c++ {
		if s.TabStops[c] {
			s.Cursor.Col = c
			return
		}
	}
	s.Cursor.Col = right
}

// SetTabStop sets a hard tab stop at the cursor's current column (HTS).
func (s *Screen) SetTabStop() { s.TabStops[s.Cursor.Col] = true }

// ClearTabStop clears the tab stop at the cursor's column (TBC with Ps=0).
func (s *Screen) ClearTabStop() { delete(s.TabStops, s.Cursor.Col) }

// ClearAllTabStops clears every tab stop (TBC with Ps=3).
func (s *Screen) ClearAllTabStops() { s.TabStops = make(map[int]bool) }

// SetMargins applies DECSTBM (top, bottom are 0-based inclusive); a
// single-row region is rejected per xterm convention.
func (s *Screen) SetMargins(top, bottom int) {
	top = clampInt(top, 0, s.Grid.height-1)
	bottom = clampInt(bottom, 0, s.Grid.height-1)
	if bottom <= top {
		return
	}
	s.Margins.Top, s.Margins.Bottom = top, bottom
	s.SetOriginMode(s.Cursor.OriginMode) // re-home if origin mode is active
}

// SetLeftRightMargins applies DECSLRM.
func (s *Screen) SetLeftRightMargins(left, right int) {
	left = clampInt(left, 0, s.Grid.width-1)
	right = clampInt(right, 0, s.Grid.width-1)
	if right <= left {
		return
	}
	s.Margins.Left, s.Margins.Right = left, right
	s.SetOriginMode(s.Cursor.OriginMode)
}

// ResetMargins restores top/bottom/left/right to the full page.
func (s *Screen) ResetMargins() {
	s.Margins = fullMargins(s.Grid.width, s.Grid.height)
}

// SaveCursor implements DECSC: this screen's own saved-cursor slot (spec's
// Open Question is resolved per-screen, not shared across primary/alt).
func (s *Screen) SaveCursor() { s.saved = s.Cursor.Save() }

// RestoreCursor implements DECRC.
func (s *Screen) RestoreCursor() {
	s.Cursor.Restore(s.saved)
	s.ClampCursorToBox()
}

// insertCells shifts the cells at and right of col within the right margin
// n positions to the right, dropping any cells pushed past the margin, and
// blanking the n columns vacated at col (IRM / ICH).
func (s *Screen) insertCells(row, col, n int) {
	line := s.Grid.Line(row)
	if line == nil || n <= 0 {
		return
	}
	right := s.marginRight()
	line.inflate(s.Grid.width)
	for c := right; c >= col+n; c-- {
		if c >= len(line.cells) || c-n < 0 {
			continue
		}
		line.cells[c] = line.cells[c-n]
	}
	end := col + n
	if end > right+1 {
		end = right + 1
	}
	for c := col; c < end; c++ {
		if c >= 0 && c < len(line.cells) {
			line.cells[c] = NewCell()
		}
	}
}

// DeleteCells shifts cells right of col+n left into col, within the right
// margin, blanking the vacated columns at the end (DCH).
func (s *Screen) DeleteCells(row, col, n int) {
	line := s.Grid.Line(row)
	if line == nil || n <= 0 {
		return
	}
	right := s.marginRight()
	line.inflate(s.Grid.width)
	for c := col; c+n <= right; c++ {
		if c+n < len(line.cells) {
			line.cells[c] = line.cells[c+n]
		}
	}
	for c := right - n + 1; c <= right; c++ {
		if c >= 0 && c < len(line.cells) {
			line.cells[c] = NewCell()
		}
	}
}

// InsertLines shifts lines [row, bottom] down by n within the margin region,
// dropping lines pushed past the bottom margin (IL).
func (s *Screen) InsertLines(row, n int) {
	if row < s.Margins.Top || row > s.Margins.Bottom {
		return
	}
	s.Grid.ScrollDown(n, row, s.Margins.Bottom)
}

// DeleteLines shifts lines [row, bottom] up by n within the margin region
// (DL). Unlike a normal scroll-up, this never touches scrollback history —
// deleted lines are discarded, not the implicit top-of-region.
func (s *Screen) DeleteLines(row, n int) {
	if row < s.Margins.Top || row > s.Margins.Bottom {
		return
	}
	line := s.Grid.Line(row)
	bottom := s.Margins.Bottom
	if line == nil {
		return
	}
	if n > bottom-row+1 {
		n = bottom - row + 1
	}
	copy(s.Grid.lines[row:], s.Grid.lines[row+n:bottom+1])
	for i := bottom - n + 1; i <= bottom; i++ {
		s.Grid.lines[i] = NewLine()
	}
}

// WritePrintable implements the spec §4.5 write algorithm for a single
// grapheme of the given display width.
func (s *Screen) WritePrintable(r rune, width int, attrs GraphicsAttributes, link HyperlinkID, insertMode bool) {
	cur := s.Cursor
	if cur.WrapPending && cur.AutoWrap {
		if line := s.Grid.Line(cur.Row); line != nil {
			line.Wrapped = true
		}
		s.LineFeed()
		cur.Col = s.marginLeft()
		cur.WrapPending = false
	}
	if insertMode {
		s.insertCells(cur.Row, cur.Col, width)
	}
	s.Grid.Write(cur.Row, cur.Col, r, width, attrs, link)
	cur.Col += width
	right := s.marginRight()
	if cur.Col > right {
		cur.Col = right
		if cur.AutoWrap {
			cur.WrapPending = true
		}
	}
}

// AppendCombining merges a combining mark into the cell just written
// (always the one immediately left of the cursor, or under it if the
// previous write left a pending wrap).
func (s *Screen) AppendCombining(r rune) {
	col := s.Cursor.Col - 1
	row := s.Cursor.Row
	if s.Cursor.WrapPending {
		col = s.Cursor.Col
	}
	if col < 0 {
		return
	}
	s.Grid.AppendCombining(row, col, r)
}

// Resize delegates to the Grid's reflow and keeps margins/tab stops
// consistent with the new dimensions.
func (s *Screen) Resize(width, height int) {
	s.Grid.Resize(width, height, s.Cursor)
	s.Margins = fullMargins(width, height)
	s.resetDefaultTabStops(width)
}

// Reset clears the grid, resets the cursor, margins, and tab stops — used by
// RIS (full reset) and by DECCOLM's implicit screen clear.
func (s *Screen) Reset() {
	width, height := s.Grid.width, s.Grid.height
	s.Grid.Erase(0, 0, height-1, width-1, EraseAll)
	s.Cursor = NewCursor()
	s.Margins = fullMargins(width, height)
	s.resetDefaultTabStops(width)
	s.saved = SavedCursor{}
}
