package termcore

// dispatchCsi routes a CSI sequence by (leader, intermediate, final) per
// spec §4.6. Leader '?' marks DEC private parameters (modes, save/restore);
// leader '>' marks secondary device attributes / modifyOtherKeys queries;
// no leader is the plain ANSI/ECMA-48 set.
func (t *Terminal) dispatchCsi(seq *Sequence) {
	if seq.IntermLen > 0 {
		t.dispatchCsiIntermediate(seq)
		return
	}

	switch seq.Leader {
	case '?':
		t.dispatchCsiPrivate(seq)
		return
	case '>':
		t.dispatchCsiSecondary(seq)
		return
	case '<':
		t.dispatchCsiLess(seq)
		return
	case '=':
		t.dispatchCsiEquals(seq)
		return
	}

	s := t.active
	switch seq.Final {
	case 'A': // CUU
		s.MoveCursorRelative(-int(seq.Param(0, 1)), 0)
	case 'B', 'e': // CUD / VPR
		s.MoveCursorRelative(int(seq.Param(0, 1)), 0)
	case 'C', 'a': // CUF / HPR
		s.MoveCursorRelative(0, int(seq.Param(0, 1)))
	case 'D': // CUB
		s.MoveCursorRelative(0, -int(seq.Param(0, 1)))
	case 'E': // CNL
		s.MoveCursorRelative(int(seq.Param(0, 1)), 0)
		s.CarriageReturn()
	case 'F': // CPL
		s.MoveCursorRelative(-int(seq.Param(0, 1)), 0)
		s.CarriageReturn()
	case 'G', '`': // CHA / HPA
		s.MoveCursorTo(s.Cursor.Row, int(seq.Param(0, 1))-1)
	case 'H', 'f': // CUP / HVP
		s.MoveCursorTo(int(seq.Param(0, 1))-1, int(seq.Param(1, 1))-1)
	case 'I': // CHT
		for i := int64(0); i < seq.Param(0, 1); i++ {
			s.Tab()
		}
	case 'J': // ED
		t.eraseInDisplay(int(seq.Param(0, 0)), EraseAll)
	case 'K': // EL
		t.eraseInLine(int(seq.Param(0, 0)), EraseAll)
	case 'L': // IL
		s.InsertLines(s.Cursor.Row, int(seq.Param(0, 1)))
	case 'M': // DL
		s.DeleteLines(s.Cursor.Row, int(seq.Param(0, 1)))
	case 'P': // DCH
		s.DeleteCells(s.Cursor.Row, s.Cursor.Col, int(seq.Param(0, 1)))
	case 'S': // SU
		s.Grid.ScrollUp(int(seq.Param(0, 1)), s.Margins.Top, s.Margins.Bottom)
	case 'T': // SD
		s.Grid.ScrollDown(int(seq.Param(0, 1)), s.Margins.Top, s.Margins.Bottom)
	case 'X': // ECH
		n := int(seq.Param(0, 1))
		s.Grid.Erase(s.Cursor.Row, s.Cursor.Col, s.Cursor.Row, s.Cursor.Col+n-1, EraseAll)
	case 'Z': // CBT
		for i := int64(0); i < seq.Param(0, 1); i++ {
			moveBackwardTab(s)
		}
	case '@': // ICH
		s.insertCells(s.Cursor.Row, s.Cursor.Col, int(seq.Param(0, 1)))
	case 'd': // VPA
		s.MoveCursorTo(int(seq.Param(0, 1))-1, s.Cursor.Col)
	case 'g': // TBC
		switch seq.Param(0, 0) {
		case 0:
			s.ClearTabStop()
		case 3:
			s.ClearAllTabStops()
		}
	case 'h':
		t.setAnsiModes(seq, true)
	case 'l':
		t.setAnsiModes(seq, false)
	case 'm':
		t.dispatchSGR(seq)
	case 'n':
		t.dispatchDSR(seq)
	case 'r': // DECSTBM
		top := int(seq.Param(0, 1)) - 1
		bottom := int(seq.Param(1, int64(s.Grid.height))) - 1
		s.SetMargins(top, bottom)
	case 's': // SCOSC (plain form, no left/right-margin leader)
		s.SaveCursor()
	case 'u': // SCORC
		s.RestoreCursor()
	case 'c': // DA1
		t.writeResponseLocked("\x1b[?62;1;6c")
	case 't': // window ops / text-area size queries
		t.dispatchWindowOp(seq)
	default:
		t.diagnostic(ErrUnknownSequence, "unhandled CSI final %q", string(seq.Final))
	}
}

// dispatchCsiIntermediate handles the handful of CSI sequences that carry a
// single intermediate byte: cursor style (DECSCUSR, ' q'), DECRQM, DECSCA,
// and the DEC locator requests (DECELR, DECEFR, DECRQLP, DECSLE).
func (t *Terminal) dispatchCsiIntermediate(seq *Sequence) {
	s := t.active
	im := seq.Intermediates[0]
	switch {
	case im == ' ' && seq.Final == 'q': // DECSCUSR
		style := seq.Param(0, 1)
		if style >= 1 && style <= 6 {
			s.Cursor.Style = CursorStyle(style - 1)
		}
	case im == '$' && seq.Final == 'p': // DECRQM (report mode) — minimal: not-recognized
		t.writeResponseLocked("\x1b[0$y")
	case im == '"' && seq.Final == 'q': // DECSCA
		protect := seq.Param(0, 0) == 1
		t.applyProtect(protect)
	case im == '\'' && seq.Final == 'z': // DECELR
		t.setDECELR(seq.Param(0, 0), seq.Param(1, 0))
	case im == '\'' && seq.Final == 'w': // DECEFR
		t.setDECEFR(seq.Param(0, 0), seq.Param(1, 0), seq.Param(2, 0), seq.Param(3, 0))
	case im == '\'' && seq.Final == '|': // DECRQLP
		t.reportLocatorPosition()
	case im == '\'' && seq.Final == '{': // DECSLE (select locator events) — accepted, no-op
	default:
		t.diagnostic(ErrUnknownSequence, "unhandled CSI %q %q", string(im), string(seq.Final))
	}
}

func (t *Terminal) applyProtect(protect bool) {
	t.active.Cursor.Protected = protect
}

// dispatchCsiPrivate handles CSI ? ... h/l/s/r (DEC private modes and their
// save/restore forms).
func (t *Terminal) dispatchCsiPrivate(seq *Sequence) {
	switch seq.Final {
	case 'h':
		t.setDecModes(seq, true)
	case 'l':
		t.setDecModes(seq, false)
	case 's':
		for i := 0; i < seq.Params.Count; i++ {
			if m, ok := DecModeFromNumber(seq.Param(i, 0)); ok {
				t.modes.Save(m)
			}
		}
	case 'r':
		for i := 0; i < seq.Params.Count; i++ {
			if m, ok := DecModeFromNumber(seq.Param(i, 0)); ok {
				t.modes.Restore(m)
				t.applyDecModeEffect(m, t.modes.Dec(m))
			}
		}
	case 'u': // kitty-keyboard query (CSI ? u)
		t.reportKittyFlags()
	default:
		t.diagnostic(ErrUnknownSequence, "unhandled CSI ? final %q", string(seq.Final))
	}
}

// dispatchCsiSecondary handles CSI > ... (secondary DA, modifyOtherKeys,
// kitty-keyboard push).
func (t *Terminal) dispatchCsiSecondary(seq *Sequence) {
	switch seq.Final {
	case 'c': // DA2
		t.writeResponseLocked("\x1b[>0;10;1c")
	case 'u': // kitty-keyboard push flags (CSI > Pf u)
		t.pushKittyFlags(KittyKeyboardFlag(seq.Param(0, 0)))
	default:
	}
}

// dispatchCsiLess handles CSI < ... (kitty-keyboard pop).
func (t *Terminal) dispatchCsiLess(seq *Sequence) {
	if seq.Final == 'u' { // CSI < Pn u
		t.popKittyFlags(int(seq.Param(0, 1)))
	}
}

// dispatchCsiEquals handles CSI = ... (kitty-keyboard direct set).
func (t *Terminal) dispatchCsiEquals(seq *Sequence) {
	if seq.Final == 'u' { // CSI = Pf ; Pm u
		t.setKittyFlags(KittyKeyboardFlag(seq.Param(0, 0)), seq.Param(1, 1))
	}
}

func (t *Terminal) setAnsiModes(seq *Sequence, enable bool) {
	for i := 0; i < seq.Params.Count; i++ {
		if m, ok := AnsiModeFromNumber(seq.Param(i, 0)); ok {
			t.modes.SetAnsi(m, enable)
		}
	}
}

func (t *Terminal) setDecModes(seq *Sequence, enable bool) {
	for i := 0; i < seq.Params.Count; i++ {
		n := seq.Param(i, 0)
		if n == 25 { // DECTCEM is owned directly by Cursor.Visible
			t.active.Cursor.Visible = enable
			continue
		}
		m, ok := DecModeFromNumber(n)
		if !ok {
			t.diagnostic(ErrUnknownSequence, "unknown DEC mode %d", n)
			continue
		}
		if t.modes.SetDec(m, enable) {
			t.applyDecModeEffect(m, enable)
		}
	}
}

// applyDecModeEffect performs the screen-visible side effect some DEC modes
// carry beyond the bit itself (origin mode reclamps the cursor, alt-screen
// modes swap buffers).
func (t *Terminal) applyDecModeEffect(m DecMode, enable bool) {
	switch m {
	case DecModeDECOM:
		t.active.SetOriginMode(enable)
	case DecModeDECAWM:
		t.active.Cursor.AutoWrap = enable
	case DecModeAltScreen47, DecModeAltScreen1047:
		t.swapScreen(enable, false)
	case DecModeAltScreen1049:
		t.swapScreen(enable, true)
	}
}

// swapScreen implements DECSET/DECRST 47/1047/1049: entering saves the
// cursor (1049 only) and switches to the alternate screen, clearing it;
// leaving restores the primary screen and its cursor.
func (t *Terminal) swapScreen(enter, withCursorSaveClear bool) {
	if enter {
		if t.active == t.alternate {
			return
		}
		if withCursorSaveClear {
			t.primary.SaveCursor()
		}
		t.alternate.Reset()
		t.active = t.alternate
		return
	}
	if t.active == t.primary {
		return
	}
	t.active = t.primary
	if withCursorSaveClear {
		t.primary.RestoreCursor()
	}
}

// moveBackwardTab moves the cursor to the previous set tab stop, or the
// left margin if none remain (CBT).
func moveBackwardTab(s *Screen) {
	left := s.marginLeft()
	for c := s.Cursor.Col - 1; c >= left; c-- {
		if s.TabStops[c] {
			s.Cursor.Col = c
			return
		}
	}
	s.Cursor.Col = left
}

func (t *Terminal) eraseInDisplay(mode int, sel EraseSelectivity) {
	s := t.active
	row, col := s.Cursor.Row, s.Cursor.Col
	switch mode {
	case 0: // cursor to end of screen
		s.Grid.Erase(row, col, s.Grid.height-1, s.Grid.width-1, sel)
	case 1: // start of screen to cursor
		s.Grid.Erase(0, 0, row, col, sel)
	case 2, 3: // whole screen (3 also clears scrollback)
		s.Grid.Erase(0, 0, s.Grid.height-1, s.Grid.width-1, sel)
		if mode == 3 {
			s.Grid.history = nil
		}
	}
}

func (t *Terminal) eraseInLine(mode int, sel EraseSelectivity) {
	s := t.active
	row, col := s.Cursor.Row, s.Cursor.Col
	switch mode {
	case 0:
		s.Grid.Erase(row, col, row, s.Grid.width-1, sel)
	case 1:
		s.Grid.Erase(row, 0, row, col, sel)
	case 2:
		s.Grid.Erase(row, 0, row, s.Grid.width-1, sel)
	}
}

func (t *Terminal) dispatchDSR(seq *Sequence) {
	switch seq.Param(0, 0) {
	case 5: // device status
		t.writeResponseLocked("\x1b[0n")
	case 6: // CPR
		row := t.active.Cursor.Row + 1
		col := t.active.Cursor.Col + 1
		t.writeResponseLocked(csiReport(row, col))
	}
}

func csiReport(row, col int) string {
	buf := []byte("\x1b[")
	buf = appendInt(buf, row)
	buf = append(buf, ';')
	buf = appendInt(buf, col)
	buf = append(buf, 'R')
	return string(buf)
}

func appendInt(buf []byte, v int) []byte {
	if v == 0 {
		return append(buf, '0')
	}
	start := len(buf)
	for v > 0 {
		buf = append(buf, byte('0'+v%10))
		v /= 10
	}
	for i, j := start, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf
}

// writeResponseLocked writes a reply while t.mu is already held by the
// caller; the response provider itself is not guarded by t.mu so this never
// deadlocks.
func (t *Terminal) writeResponseLocked(s string) {
	if t.responseProvider != nil {
		t.responseProvider.Write([]byte(s))
	}
}

func (t *Terminal) dispatchWindowOp(seq *Sequence) {
	switch seq.Param(0, 0) {
	case 14: // report text area size in pixels
		w, h := t.sizeProvider.WindowSizePixels()
		t.writeResponseLocked("\x1b[4;" + itoa(h) + ";" + itoa(w) + "t")
	case 16: // report cell size in pixels
		w, h := t.sizeProvider.CellSizePixels()
		t.writeResponseLocked("\x1b[6;" + itoa(h) + ";" + itoa(w) + "t")
	case 18: // report text area size in chars
		t.writeResponseLocked("\x1b[8;" + itoa(t.rows) + ";" + itoa(t.cols) + "t")
	case 22: // push title onto the title stack
		t.pushTitle()
	case 23: // pop title from the title stack
		t.popTitle()
	}
}

func (t *Terminal) pushTitle() {
	do := func() {
		t.titleStack = append(t.titleStack, t.title)
	}
	if t.middleware != nil && t.middleware.PushTitle != nil {
		t.middleware.PushTitle(do)
		return
	}
	do()
}

func (t *Terminal) popTitle() {
	do := func() {
		if len(t.titleStack) == 0 {
			return
		}
		last := len(t.titleStack) - 1
		t.title = t.titleStack[last]
		t.titleStack = t.titleStack[:last]
		t.titleProvider.SetTitle(t.title)
	}
	if t.middleware != nil && t.middleware.PopTitle != nil {
		t.middleware.PopTitle(do)
		return
	}
	do()
}

func itoa(v int) string { return string(appendInt(nil, v)) }
