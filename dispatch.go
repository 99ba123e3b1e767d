package termcore

// Dispatch implements Dispatcher: it routes a fully-assembled Sequence to
// the C0/C1/ESC/CSI/DCS/OSC/APC/PM/SOS handler appropriate to its category
// (spec §4.6). The table is kept as a plain Go switch rather than a
// selector-keyed map: Go's compiler turns a dense switch on small integers
// into a jump table, which is the same performance characteristic a map
// would buy at the cost of a lookup allocation per unknown entry.
//
// Dispatch always runs on the writer lane with t.mu already held by the
// caller (Write locks once for the whole AdvanceBytes batch, per spec §5's
// "lock acquisition at the top of write_from_pty" suspension point) — no
// handler in this file or its dispatch_*.go siblings takes t.mu itself.
func (t *Terminal) Dispatch(seq *Sequence) {
	switch seq.Category {
	case CategoryC0:
		t.dispatchC0(seq.Final)
	case CategoryC1:
		t.dispatchC1(seq.Final)
	case CategoryEsc:
		t.dispatchEsc(seq)
	case CategoryCsi:
		t.dispatchCsi(seq)
	case CategoryDcs:
		t.dispatchDcs(seq)
	case CategoryOsc:
		t.dispatchOsc(seq)
	case CategoryApc:
		t.dispatchApc(seq)
	case CategoryPm:
		t.pmProvider.Receive(seq.Data)
	case CategorySos:
		t.sosProvider.Receive(seq.Data)
	default:
		t.diagnostic(ErrUnknownSequence, "unhandled sequence category %v", seq.Category)
	}
}

// --- C0 controls ---

func (t *Terminal) dispatchC0(b byte) {
	switch b {
	case 0x07: // BEL
		t.ringBell()
	case 0x08: // BS
		t.active.Backspace()
	case 0x09: // HT
		t.active.Tab()
	case 0x0A, 0x0B, 0x0C: // LF, VT, FF
		if t.modes.Ansi(ModeLNM) {
			t.active.NextLine()
		} else {
			t.active.LineFeed()
		}
	case 0x0D: // CR
		t.active.CarriageReturn()
	case 0x0E: // SO (shift out) selects G1 into GL
		t.active.Cursor.Charsets.InvokeGL(G1)
	case 0x0F: // SI (shift in) selects G0 into GL
		t.active.Cursor.Charsets.InvokeGL(G0)
	default:
		// Other C0 controls (NUL, ENQ, etc.) have no screen effect.
	}
}

func (t *Terminal) ringBell() {
	if t.middleware != nil && t.middleware.Bell != nil {
		t.middleware.Bell(t.bellProvider.Ring)
		return
	}
	t.bellProvider.Ring()
}

// dispatchC1 handles bytes 0x80-0x9F arriving as single-byte C1 controls
// (8-bit mode). Most embedders only ever see these via their 7-bit ESC
// equivalents, routed through dispatchEsc instead, but a well-behaved
// dispatcher still honors the raw form.
func (t *Terminal) dispatchC1(b byte) {
	s := t.active
	switch b {
	case 0x84: // IND
		s.LineFeed()
	case 0x85: // NEL
		s.NextLine()
	case 0x88: // HTS
		s.SetTabStop()
	case 0x8D: // RI
		s.ReverseLineFeed()
	}
}

// --- ESC sequences ---

func (t *Terminal) dispatchEsc(seq *Sequence) {
	if seq.IntermLen > 0 {
		t.dispatchEscDesignate(seq)
		return
	}

	s := t.active
	switch seq.Final {
	case 'D': // IND
		s.LineFeed()
	case 'E': // NEL
		s.NextLine()
	case 'H': // HTS
		s.SetTabStop()
	case 'M': // RI
		s.ReverseLineFeed()
	case 'N': // SS2
		s.Cursor.Charsets.SingleShift(G2)
	case 'O': // SS3
		s.Cursor.Charsets.SingleShift(G3)
	case 'c': // RIS full reset
		t.resetState()
	case '7': // DECSC
		s.SaveCursor()
	case '8': // DECRC
		s.RestoreCursor()
	case '=', '>': // DECKPAM/DECKPNM: keypad application mode has no effect
		// on screen state; an input encoder consults it via CSI ?1h/l instead.
	case '\\': // lone ST with nothing open: ignore
	default:
		t.diagnostic(ErrUnknownSequence, "unhandled ESC final %q", string(seq.Final))
	}
}

// dispatchEscDesignate handles the ESC ( / ) / * / + <charset> family plus
// ESC # <n> (DECALN) which also carries an intermediate.
func (t *Terminal) dispatchEscDesignate(seq *Sequence) {
	im := seq.Intermediates[0]
	switch im {
	case '#':
		if seq.Final == '8' {
			t.decaln()
		}
		return
	case '(':
		t.active.Cursor.Charsets.Designate(G0, charsetFromFinal(seq.Final))
	case ')':
		t.active.Cursor.Charsets.Designate(G1, charsetFromFinal(seq.Final))
	case '*':
		t.active.Cursor.Charsets.Designate(G2, charsetFromFinal(seq.Final))
	case '+':
		t.active.Cursor.Charsets.Designate(G3, charsetFromFinal(seq.Final))
	}
}

func charsetFromFinal(final byte) CharsetId {
	switch final {
	case 'A':
		return CharsetBritish
	case 'B':
		return CharsetUSASCII
	case '0':
		return CharsetSpecialLineDrawing
	case '4':
		return CharsetDutch
	case '5', 'C':
		return CharsetFinnish
	case 'R':
		return CharsetFrench
	case 'Q':
		return CharsetFrenchCanadian
	case 'K':
		return CharsetGerman
	case 'Y':
		return CharsetSwiss
	case 'Z':
		return CharsetSpanish
	case '7', 'H':
		return CharsetSwedish
	case '6', 'E':
		return CharsetNorwegianDanish
	default:
		return CharsetUSASCII
	}
}

// decaln fills the whole screen with 'E' (DECALN screen-alignment test).
func (t *Terminal) decaln() {
	g := t.active.Grid
	attrs := GraphicsAttributes{Foreground: DefaultColor{}, Background: DefaultColor{}}
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			g.Write(row, col, 'E', 1, attrs, 0)
		}
	}
}

// resetState implements RIS: both screens reset, modes return to defaults,
// title/hyperlink/image state clears.
func (t *Terminal) resetState() {
	if t.middleware != nil && t.middleware.ResetState != nil {
		t.middleware.ResetState(t.resetStateInternal)
		return
	}
	t.resetStateInternal()
}

func (t *Terminal) resetStateInternal() {
	t.primary.Reset()
	t.alternate.Reset()
	t.active = t.primary
	t.modes = NewModeSet()
	t.hyperlinks = NewHyperlinkRegistry()
	t.hyperlinks.SetLogger(t.logger)
	t.images.Clear()
	t.title = ""
	t.titleStack = nil
	t.selection = Selection{}
}
