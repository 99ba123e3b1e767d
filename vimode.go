package termcore

// ViMode is the modal state of a ViInputHandler, mirroring vi's
// Normal/Insert/Visual modes layered over a terminal's screen and
// scrollback instead of an editable text buffer.
type ViMode int

const (
	ViModeInsert ViMode = iota
	ViModeNormal
	ViModeVisual
	ViModeVisualLine
	ViModeVisualBlock
	// ViModeNormalMotionVisual is a transient state: on the next keystroke
	// the handler switches to Normal (which clears any selection) and
	// handles that key as a Normal-mode key, so no visual selection is
	// extended. Nothing in this package enters it directly; callers set it
	// with SetMode.
	ViModeNormalMotionVisual
)

// ViMotion is a cursor movement vi's normal/visual modes recognize,
// addressable either bare (just moves the cursor) or as the target of a
// pending operator.
type ViMotion int

const (
	ViMotionLineDown ViMotion = iota
	ViMotionLineUp
	ViMotionCharLeft
	ViMotionCharRight
	ViMotionLineBegin
	ViMotionLineEnd
	ViMotionFileBegin
	ViMotionFileEnd
	ViMotionWordBackward
	ViMotionWordEndForward
	ViMotionWordForward
	ViMotionSearchResultBackward
	ViMotionSearchResultForward
	ViMotionScreenColumn
	ViMotionParagraphBackward
	ViMotionParagraphForward
	ViMotionParenthesisMatching
	ViMotionPageDown
	ViMotionPageUp
	// ViMotionFullLine and ViMotionSelection are not cursor motions; they
	// are operator targets meaning "the current line(s)" and "the active
	// visual selection" respectively.
	ViMotionFullLine
	ViMotionSelection
	// ViMotionExplicit marks an operator (Paste) that names no motion at
	// all.
	ViMotionExplicit
)

// ViOperator is the action a motion or text object is the target of.
type ViOperator int

const (
	ViOperatorMoveCursor ViOperator = iota
	ViOperatorYank
	ViOperatorPaste
)

// TextObject is a vi text object kind, selected either as Inner (just the
// contents) or A (contents plus delimiters) via TextObjectScope.
type TextObject int

const (
	TextObjectDoubleQuotes TextObject = iota
	TextObjectRoundBrackets
	TextObjectAngleBrackets
	TextObjectSquareBrackets
	TextObjectSingleQuotes
	TextObjectBackQuotes
	TextObjectWord
	TextObjectCurlyBrackets
)

// TextObjectScope selects whether a text object includes its delimiters.
type TextObjectScope int

const (
	TextObjectScopeInner TextObjectScope = iota
	TextObjectScopeA
)

// charToTextObject maps the character following "i"/"a" to the text object
// it names, mirroring vim's own mnemonic set.
func charToTextObject(ch rune) (TextObject, bool) {
	switch ch {
	case '"':
		return TextObjectDoubleQuotes, true
	case '(', ')':
		return TextObjectRoundBrackets, true
	case '<', '>':
		return TextObjectAngleBrackets, true
	case '[', ']':
		return TextObjectSquareBrackets, true
	case '\'':
		return TextObjectSingleQuotes, true
	case '`':
		return TextObjectBackQuotes, true
	case 'w':
		return TextObjectWord, true
	case '{', '}':
		return TextObjectCurlyBrackets, true
	default:
		return 0, false
	}
}

// charToMotion maps a bare normal/visual-mode keystroke to the motion it
// performs, mirroring vim's own key bindings.
func charToMotion(ch rune) (ViMotion, bool) {
	switch ch {
	case 'j':
		return ViMotionLineDown, true
	case 'k':
		return ViMotionLineUp, true
	case 'h':
		return ViMotionCharLeft, true
	case 'l':
		return ViMotionCharRight, true
	case '0':
		return ViMotionLineBegin, true
	case '$':
		return ViMotionLineEnd, true
	case 'g':
		return ViMotionFileBegin, true
	case 'G':
		return ViMotionFileEnd, true
	case 'b':
		return ViMotionWordBackward, true
	case 'e':
		return ViMotionWordEndForward, true
	case 'w':
		return ViMotionWordForward, true
	case 'N':
		return ViMotionSearchResultBackward, true
	case 'n':
		return ViMotionSearchResultForward, true
	case '|':
		return ViMotionScreenColumn, true
	case '{':
		return ViMotionParagraphBackward, true
	case '}':
		return ViMotionParagraphForward, true
	case '%':
		return ViMotionParenthesisMatching, true
	default:
		return 0, false
	}
}

// ViInputHandler is a modal vi-style overlay driving a Terminal's cursor,
// selection, and clipboard without ever touching the PTY-fed screen
// content itself. It tracks its own cursor independent of the live
// terminal cursor, the way copy/scrollback modes in terminal emulators do.
type ViInputHandler struct {
	term *Terminal

	mode  ViMode
	count int

	pendingOperator    ViOperator
	hasPendingOperator bool
	pendingScope       TextObjectScope
	hasPendingScope    bool

	cursor       Position
	visualAnchor Position

	lastSearch string
}

// NewViInputHandler creates a handler in Normal mode, its cursor starting
// at t's current cursor position.
func NewViInputHandler(t *Terminal) *ViInputHandler {
	row, col := t.CursorPos()
	return &ViInputHandler{term: t, mode: ViModeNormal, cursor: Position{Row: row, Col: col}}
}

// Mode returns the handler's current mode.
func (v *ViInputHandler) Mode() ViMode { return v.mode }

// CursorPos returns the handler's own cursor, independent of the live
// terminal cursor.
func (v *ViInputHandler) CursorPos() Position { return v.cursor }

// SetMode transitions to mode, resetting any pending count/operator/text
// object scope and entering or leaving the terminal's selection to match.
func (v *ViInputHandler) SetMode(mode ViMode) {
	if v.mode == mode {
		return
	}
	v.mode = mode
	v.count = 0
	v.hasPendingOperator = false
	v.hasPendingScope = false

	switch mode {
	case ViModeVisual:
		v.visualAnchor = v.cursor
		v.term.StartSelection(v.cursor, SelectionLinear)
	case ViModeVisualLine:
		v.visualAnchor = v.cursor
		v.term.StartSelection(v.cursor, SelectionFullLine)
	case ViModeVisualBlock:
		v.visualAnchor = v.cursor
		v.term.StartSelection(v.cursor, SelectionRectangular)
	case ViModeNormal, ViModeInsert:
		v.term.ClearSelection()
	}
}

// SendCharPressEvent feeds a printable keystroke to the handler, returning
// true if it consumed the keystroke (as opposed to leaving it for the
// caller to treat as literal input, which only happens in Insert mode).
func (v *ViInputHandler) SendCharPressEvent(ch rune, mod Modifier) bool {
	switch v.mode {
	case ViModeInsert:
		return false
	case ViModeNormalMotionVisual:
		v.SetMode(ViModeNormal)
		return v.handleNormalMode(ch, mod)
	case ViModeNormal:
		return v.handleNormalMode(ch, mod)
	case ViModeVisual, ViModeVisualLine, ViModeVisualBlock:
		return v.handleVisualMode(ch, mod)
	default:
		return false
	}
}

// SendKeyPressEvent feeds a non-printable key (arrows, page up/down, and
// so on) to the handler. Bare navigation keys are left for the caller to
// translate via EncodeKey in Insert mode; this handler only reinterprets
// them while modal.
func (v *ViInputHandler) SendKeyPressEvent(key Key, mod Modifier) bool {
	if v.mode == ViModeInsert {
		return false
	}
	switch key {
	case KeyUp:
		return v.handleChar('k', mod)
	case KeyDown:
		return v.handleChar('j', mod)
	case KeyLeft:
		return v.handleChar('h', mod)
	case KeyRight:
		return v.handleChar('l', mod)
	case KeyHome:
		return v.handleChar('0', mod)
	case KeyEnd:
		return v.handleChar('$', mod)
	case KeyPageUp:
		v.execute(v.pendingOrMove(), ViMotionPageUp)
		return true
	case KeyPageDown:
		v.execute(v.pendingOrMove(), ViMotionPageDown)
		return true
	case KeyEscape:
		v.SetMode(ViModeNormal)
		return true
	default:
		return false
	}
}

func (v *ViInputHandler) handleChar(ch rune, mod Modifier) bool {
	if v.mode == ViModeNormal {
		return v.handleNormalMode(ch, mod)
	}
	return v.handleVisualMode(ch, mod)
}

func (v *ViInputHandler) pendingOrMove() ViOperator {
	if v.hasPendingOperator {
		return v.pendingOperator
	}
	return ViOperatorMoveCursor
}

// parseCount accumulates a repeat count typed before a motion/operator, a
// leading unmodified "0" being LineBegin rather than the start of a count.
func (v *ViInputHandler) parseCount(ch rune, mod Modifier) bool {
	if mod != 0 {
		return false
	}
	if ch == '0' && v.count == 0 {
		return false
	}
	if ch >= '0' && ch <= '9' {
		v.count = v.count*10 + int(ch-'0')
		return true
	}
	return false
}

// parseTextObject consumes the i/a scope prefix and then the text object
// character of a pending yank, e.g. "yiw" or "ya(".
func (v *ViInputHandler) parseTextObject(ch rune, mod Modifier) bool {
	if mod != 0 {
		return false
	}
	if !v.hasPendingOperator || v.pendingOperator != ViOperatorYank {
		return false
	}

	if !v.hasPendingScope {
		switch ch {
		case 'i':
			v.pendingScope, v.hasPendingScope = TextObjectScopeInner, true
			return true
		case 'a':
			v.pendingScope, v.hasPendingScope = TextObjectScopeA, true
			return true
		default:
			return false
		}
	}

	if obj, ok := charToTextObject(ch); ok {
		v.yankTextObject(v.pendingScope, obj)
		return true
	}
	return false
}

func (v *ViInputHandler) handleNormalMode(ch rune, mod Modifier) bool {
	if v.parseCount(ch, mod) {
		return true
	}
	if v.parseTextObject(ch, mod) {
		return true
	}
	if motion, ok := charToMotion(ch); ok {
		v.execute(v.pendingOrMove(), motion)
		return true
	}
	if mod == ModControl && ch == 'd' {
		v.execute(v.pendingOrMove(), ViMotionPageDown)
		return true
	}
	if mod == ModControl && ch == 'u' {
		v.execute(v.pendingOrMove(), ViMotionPageUp)
		return true
	}
	if mod == ModControl && ch == 'v' {
		v.SetMode(ViModeVisualBlock)
		return true
	}

	switch ch {
	case 'V':
		v.SetMode(ViModeVisualLine)
		return true
	case 'i':
		v.SetMode(ViModeInsert)
		return true
	case 'v':
		v.SetMode(ViModeVisual)
		return true
	case 'p':
		v.execute(ViOperatorPaste, ViMotionExplicit)
		return true
	case 'y':
		switch {
		case !v.hasPendingOperator:
			v.pendingOperator, v.hasPendingOperator = ViOperatorYank, true
		case v.pendingOperator == ViOperatorYank:
			v.execute(ViOperatorYank, ViMotionFullLine)
		default:
			v.hasPendingOperator = false
		}
		return true
	}
	return false
}

func (v *ViInputHandler) handleVisualMode(ch rune, mod Modifier) bool {
	if v.parseCount(ch, mod) {
		return true
	}

	if v.hasPendingScope {
		if obj, ok := charToTextObject(ch); ok {
			v.selectTextObject(v.pendingScope, obj)
			return true
		}
	}

	if motion, ok := charToMotion(ch); ok {
		v.execute(v.pendingOrMove(), motion)
		return true
	}
	if mod == ModControl && ch == 'd' {
		v.execute(v.pendingOrMove(), ViMotionPageDown)
		return true
	}
	if mod == ModControl && ch == 'u' {
		v.execute(v.pendingOrMove(), ViMotionPageUp)
		return true
	}
	if mod == ModControl && ch == 'v' {
		v.SetMode(ViModeVisualBlock)
		return true
	}

	switch ch {
	case 0x1b: // Escape
		v.SetMode(ViModeNormal)
		return true
	case 'V':
		if v.mode != ViModeVisualLine {
			v.SetMode(ViModeVisualLine)
		} else {
			v.SetMode(ViModeNormal)
		}
		return true
	case 'Y':
		v.execute(ViOperatorYank, ViMotionFullLine)
		return true
	case 'a':
		v.pendingScope, v.hasPendingScope = TextObjectScopeA, true
		return true
	case 'i':
		v.pendingScope, v.hasPendingScope = TextObjectScopeInner, true
		return true
	case 'v':
		if v.mode != ViModeVisual {
			v.SetMode(ViModeVisual)
		} else {
			v.SetMode(ViModeNormal)
		}
		return true
	case 'y':
		v.execute(ViOperatorYank, ViMotionSelection)
		return true
	default:
		return true
	}
}

// yankTextObject resolves a text object under the cursor and yanks it,
// then returns to Normal mode and clears pending state.
func (v *ViInputHandler) yankTextObject(scope TextObjectScope, obj TextObject) {
	v.term.mu.RLock()
	from, to := v.textObjectRangeLocked(scope, obj)
	text := v.extractRangeLocked(from, to)
	v.term.mu.RUnlock()

	v.writeClipboard(text)
	v.finishOperator()
}

// selectTextObject resolves a text object under the cursor and extends
// the active visual selection to cover it.
func (v *ViInputHandler) selectTextObject(scope TextObjectScope, obj TextObject) {
	v.term.mu.RLock()
	from, to := v.textObjectRangeLocked(scope, obj)
	v.term.mu.RUnlock()

	v.cursor = to
	v.term.ExtendSelection(to)
	v.visualAnchor = from
	v.hasPendingScope = false
}

func (v *ViInputHandler) finishOperator() {
	v.count = 0
	v.hasPendingOperator = false
	v.hasPendingScope = false
}

// execute runs op against motion (or the named pseudo-motion FullLine/
// Selection/Explicit), advances the handler's cursor, and extends the
// terminal selection to match when in a visual mode. All grid reads
// happen under a single RLock; any Terminal selection mutation (which
// takes its own full Lock) happens only after that RLock is released, to
// respect the non-reentrant single coarse lock.
func (v *ViInputHandler) execute(op ViOperator, motion ViMotion) {
	n := v.count
	if n == 0 {
		n = 1
	}
	from := v.cursor
	to := from
	var yankText string
	doYank := op == ViOperatorYank

	switch motion {
	case ViMotionFullLine:
		v.term.mu.RLock()
		to = Position{Row: clampInt(from.Row+n-1, 0, v.term.rows-1), Col: v.term.cols - 1}
		if doYank {
			yankText = v.extractRangeLocked(Position{Row: from.Row, Col: 0}, to)
		}
		v.term.mu.RUnlock()
		v.cursor = to
	case ViMotionSelection:
		if doYank {
			yankText = v.term.GetSelectedText()
		}
	case ViMotionExplicit:
		if op == ViOperatorPaste {
			v.paste()
		}
	case ViMotionSearchResultForward, ViMotionSearchResultBackward:
		// searchResult calls Terminal.Search, which takes its own RLock,
		// so it must run outside any RLock already held by this goroutine.
		dir := 1
		if motion == ViMotionSearchResultBackward {
			dir = -1
		}
		to = v.searchResult(from, dir)
		if doYank {
			v.term.mu.RLock()
			yankText = v.extractRangeLocked(from, to)
			v.term.mu.RUnlock()
		}
		v.cursor = to
	default:
		v.term.mu.RLock()
		to = v.applyMotionLocked(motion, n)
		if doYank {
			yankText = v.extractRangeLocked(from, to)
		}
		v.term.mu.RUnlock()
		v.cursor = to
	}

	if doYank && yankText != "" {
		v.writeClipboard(yankText)
	}

	if v.mode == ViModeVisual || v.mode == ViModeVisualLine || v.mode == ViModeVisualBlock {
		v.term.ExtendSelection(v.cursor)
		if op == ViOperatorYank {
			v.SetMode(ViModeNormal)
			return
		}
	}
	v.finishOperator()
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

// applyMotionLocked computes the destination of a cursor motion repeated n
// times from the handler's current position.
func (v *ViInputHandler) applyMotionLocked(motion ViMotion, n int) Position {
	t := v.term
	p := v.cursor

	switch motion {
	case ViMotionLineDown:
		p.Row = clampInt(p.Row+n, 0, t.rows-1)
	case ViMotionLineUp:
		p.Row = clampInt(p.Row-n, 0, t.rows-1)
	case ViMotionCharLeft:
		p.Col = clampInt(p.Col-n, 0, t.cols-1)
	case ViMotionCharRight:
		p.Col = clampInt(p.Col+n, 0, t.cols-1)
	case ViMotionLineBegin:
		p.Col = 0
	case ViMotionLineEnd:
		p.Col = v.lastContentColLocked(p.Row)
	case ViMotionFileBegin:
		p = Position{Row: 0, Col: 0}
	case ViMotionFileEnd:
		p = Position{Row: t.rows - 1, Col: 0}
	case ViMotionWordForward:
		for i := 0; i < n; i++ {
			p = v.wordForwardLocked(p)
		}
	case ViMotionWordBackward:
		for i := 0; i < n; i++ {
			p = v.wordBackwardLocked(p)
		}
	case ViMotionWordEndForward:
		for i := 0; i < n; i++ {
			p = v.wordEndForwardLocked(p)
		}
	case ViMotionScreenColumn:
		p.Col = clampInt(n-1, 0, t.cols-1)
	case ViMotionParagraphForward:
		p = v.paragraphLocked(p, 1)
	case ViMotionParagraphBackward:
		p = v.paragraphLocked(p, -1)
	case ViMotionParenthesisMatching:
		p = v.matchingBracketLocked(p)
	case ViMotionPageDown:
		p.Row = clampInt(p.Row+t.rows, 0, t.rows-1)
	case ViMotionPageUp:
		p.Row = clampInt(p.Row-t.rows, 0, t.rows-1)
	}
	return p
}

// lastContentColLocked returns the column of the last non-blank cell on row, or
// the rightmost column if the row is empty/missing.
func (v *ViInputHandler) lastContentColLocked(row int) int {
	t := v.term
	line := t.active.Grid.Line(row)
	if line == nil {
		return t.cols - 1
	}
	last := t.cols - 1
	runes := line.Runes()
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] != 0 && runes[i] != ' ' {
			return i
		}
	}
	return last
}

func (v *ViInputHandler) cellRuneLocked(row, col int) rune {
	line := v.term.active.Grid.Line(row)
	if line == nil {
		return 0
	}
	return line.CellAt(col).Char
}

// wordForwardLocked scans to the start of the next word, crossing row
// boundaries on wrapped or plain lines alike.
func (v *ViInputHandler) wordForwardLocked(p Position) Position {
	t := v.term
	startDelim := isWordDelimiter(v.cellRuneLocked(p.Row, p.Col))
	for {
		if p.Col >= t.cols-1 {
			if p.Row >= t.rows-1 {
				return p
			}
			p.Row++
			p.Col = 0
		} else {
			p.Col++
		}
		d := isWordDelimiter(v.cellRuneLocked(p.Row, p.Col))
		if d != startDelim && !d {
			return p
		}
		startDelim = d
	}
}

// wordBackwardLocked scans to the start of the previous word.
func (v *ViInputHandler) wordBackwardLocked(p Position) Position {
	t := v.term
	for {
		if p.Col <= 0 {
			if p.Row <= 0 {
				return p
			}
			p.Row--
			p.Col = t.cols - 1
		} else {
			p.Col--
		}
		if !isWordDelimiter(v.cellRuneLocked(p.Row, p.Col)) {
			left, _ := t.wordBoundsLocked(p)
			return left
		}
	}
}

// wordEndForwardLocked scans to the end of the current or next word.
func (v *ViInputHandler) wordEndForwardLocked(p Position) Position {
	t := v.term
	for {
		if p.Col >= t.cols-1 {
			if p.Row >= t.rows-1 {
				return p
			}
			p.Row++
			p.Col = 0
		} else {
			p.Col++
		}
		if !isWordDelimiter(v.cellRuneLocked(p.Row, p.Col)) {
			_, right := t.wordBoundsLocked(p)
			if right.Col > p.Col || right.Row != p.Row {
				return right
			}
		}
	}
}

// paragraphLocked scans in dir (+1/-1) for the next blank line, vi's definition
// of a paragraph boundary.
func (v *ViInputHandler) paragraphLocked(p Position, dir int) Position {
	t := v.term
	row := p.Row + dir
	for row >= 0 && row < t.rows {
		line := t.active.Grid.Line(row)
		if line == nil || isBlankLine(line) {
			return Position{Row: row, Col: 0}
		}
		row += dir
	}
	if dir > 0 {
		return Position{Row: t.rows - 1, Col: 0}
	}
	return Position{Row: 0, Col: 0}
}

func isBlankLine(line *Line) bool {
	for _, r := range line.Runes() {
		if r != 0 && r != ' ' {
			return false
		}
	}
	return true
}

var bracketPairs = map[rune]rune{'(': ')', '[': ']', '{': '}'}
var bracketPairsRev = map[rune]rune{')': '(', ']': '[', '}': '{'}

// matchingBracketLocked finds the bracket matching the one at p, scanning
// forward (for an opener) or backward (for a closer) within the same row,
// tracking nesting depth.
func (v *ViInputHandler) matchingBracketLocked(p Position) Position {
	ch := v.cellRuneLocked(p.Row, p.Col)
	if close, ok := bracketPairs[ch]; ok {
		depth := 0
		for col := p.Col; col < v.term.cols; col++ {
			c := v.cellRuneLocked(p.Row, col)
			if c == ch {
				depth++
			} else if c == close {
				depth--
				if depth == 0 {
					return Position{Row: p.Row, Col: col}
				}
			}
		}
		return p
	}
	if open, ok := bracketPairsRev[ch]; ok {
		depth := 0
		for col := p.Col; col >= 0; col-- {
			c := v.cellRuneLocked(p.Row, col)
			if c == ch {
				depth++
			} else if c == open {
				depth--
				if depth == 0 {
					return Position{Row: p.Row, Col: col}
				}
			}
		}
	}
	return p
}

// Search sets the pattern used by n/N and jumps to its first match at or
// after the cursor, including a match starting exactly at the cursor
// (unlike n/N, which always advance past the current match).
func (v *ViInputHandler) Search(pattern string) {
	v.lastSearch = pattern
	matches := v.term.Search(pattern)
	for _, m := range matches {
		if !m.Before(v.cursor) {
			v.cursor = m
			return
		}
	}
	if len(matches) > 0 {
		v.cursor = matches[0]
	}
}

// searchResult finds the next (dir>0) or previous (dir<0) match of the
// last search pattern relative to p, wrapping around the screen. It
// always skips a match starting exactly at p (the repeat-search "n"/"N"
// behavior, as opposed to the initial Search jump).
func (v *ViInputHandler) searchResult(p Position, dir int) Position {
	if v.lastSearch == "" {
		return p
	}
	matches := v.term.Search(v.lastSearch)
	if len(matches) == 0 {
		return p
	}
	if dir > 0 {
		for _, m := range matches {
			if m.Row > p.Row || (m.Row == p.Row && m.Col > p.Col) {
				return m
			}
		}
		return matches[0]
	}
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		if m.Row < p.Row || (m.Row == p.Row && m.Col < p.Col) {
			return m
		}
	}
	return matches[len(matches)-1]
}

// textObjectRangeLocked resolves a text object anchored at the handler's
// cursor. Word uses wordBoundsLocked; the quote/bracket pairs scan the
// current row for the nearest enclosing delimiter pair.
func (v *ViInputHandler) textObjectRangeLocked(scope TextObjectScope, obj TextObject) (from, to Position) {
	t := v.term
	if obj == TextObjectWord {
		from, to = t.wordBoundsLocked(v.cursor)
		return
	}

	open, close := textObjectDelimiters(obj)
	row := v.cursor.Row
	startCol, endCol := -1, -1
	depth := 0
	for col := v.cursor.Col; col >= 0; col-- {
		c := v.cellRuneLocked(row, col)
		if c == close && col != v.cursor.Col {
			depth++
		} else if c == open {
			if depth == 0 {
				startCol = col
				break
			}
			depth--
		}
	}
	depth = 0
	for col := v.cursor.Col; col < t.cols; col++ {
		c := v.cellRuneLocked(row, col)
		if c == open && col != v.cursor.Col {
			depth++
		} else if c == close {
			if depth == 0 {
				endCol = col
				break
			}
			depth--
		}
	}
	if startCol < 0 || endCol < 0 {
		return v.cursor, v.cursor
	}
	if scope == TextObjectScopeInner {
		return Position{Row: row, Col: startCol + 1}, Position{Row: row, Col: endCol - 1}
	}
	return Position{Row: row, Col: startCol}, Position{Row: row, Col: endCol}
}

func textObjectDelimiters(obj TextObject) (open, close rune) {
	switch obj {
	case TextObjectDoubleQuotes:
		return '"', '"'
	case TextObjectSingleQuotes:
		return '\'', '\''
	case TextObjectBackQuotes:
		return '`', '`'
	case TextObjectRoundBrackets:
		return '(', ')'
	case TextObjectSquareBrackets:
		return '[', ']'
	case TextObjectCurlyBrackets:
		return '{', '}'
	case TextObjectAngleBrackets:
		return '<', '>'
	default:
		return 0, 0
	}
}

// extractRangeLocked returns the text between from and to inclusive, in
// reading order, one line joined per row with '\n'.
func (v *ViInputHandler) extractRangeLocked(from, to Position) string {
	if to.Before(from) {
		from, to = to, from
	}
	t := v.term
	var out []rune
	for row := from.Row; row <= to.Row && row < t.rows; row++ {
		line := t.active.Grid.Line(row)
		startCol, endCol := 0, t.cols-1
		if row == from.Row {
			startCol = from.Col
		}
		if row == to.Row {
			endCol = to.Col
		}
		for col := startCol; col <= endCol && col < t.cols; col++ {
			if line == nil {
				out = append(out, ' ')
				continue
			}
			c := line.CellAt(col)
			if c.IsWideContinuation() {
				continue
			}
			out = append(out, c.Char)
		}
		if row < to.Row {
			out = append(out, '\n')
		}
	}
	return string(out)
}

// writeClipboard stores text in the system clipboard register, the way
// yank operations do.
func (v *ViInputHandler) writeClipboard(text string) {
	if v.term.clipboardProvider == nil {
		return
	}
	v.term.clipboardProvider.Write('c', []byte(text))
}

// paste reads the system clipboard register and writes it back upstream
// (bracketed if the application has requested it), the way a 'p' in
// Normal mode feeds pasted text to the running program.
func (v *ViInputHandler) paste() {
	if v.term.clipboardProvider == nil {
		return
	}
	data := v.term.clipboardProvider.Read('c')
	if data == "" {
		return
	}
	wrapped := v.term.EncodePaste([]byte(data))
	v.term.writeResponse(wrapped)
}
