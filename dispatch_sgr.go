package termcore

// dispatchSGR applies CSI m (Select Graphic Rendition) to the active
// cursor's write template (spec §4.6). Each parameter is handled in
// sequence so e.g. "1;31" both bolds and sets red foreground; "0" (or an
// empty parameter list) resets the template to defaults.
func (t *Terminal) dispatchSGR(seq *Sequence) {
	attrs := &t.active.Cursor.SGR
	if seq.Params.Count == 0 {
		*attrs = defaultSGR()
		return
	}

	i := 0
	for i < seq.Params.Count {
		n := seq.Params.GetRaw(i, 0)
		switch n {
		case 0:
			*attrs = defaultSGR()
		case 1:
			attrs.Flags |= CellFlagBold
		case 2:
			attrs.Flags |= CellFlagFaint
		case 3:
			attrs.Flags |= CellFlagItalic
		case 4:
			attrs.Flags &^= (CellFlagUnderline | CellFlagDoublyUnderlined | CellFlagCurlyUnderlined | CellFlagDottedUnderline | CellFlagDashedUnderline)
			switch seq.SubParam(i, 0, 1) {
			case 2:
				attrs.Flags |= CellFlagDoublyUnderlined
			case 3:
				attrs.Flags |= CellFlagCurlyUnderlined
			case 4:
				attrs.Flags |= CellFlagDottedUnderline
			case 5:
				attrs.Flags |= CellFlagDashedUnderline
			case 0:
				// explicit "4:0" clears the underline, already done above
			default:
				attrs.Flags |= CellFlagUnderline
			}
		case 5:
			attrs.Flags |= CellFlagBlinking
		case 6:
			attrs.Flags |= CellFlagRapidBlinking
		case 7:
			attrs.Flags |= CellFlagInverse
		case 8:
			attrs.Flags |= CellFlagHidden
		case 9:
			attrs.Flags |= CellFlagCrossedOut
		case 21:
			attrs.Flags |= CellFlagDoublyUnderlined
		case 22:
			attrs.Flags &^= (CellFlagBold | CellFlagFaint)
		case 23:
			attrs.Flags &^= CellFlagItalic
		case 24:
			attrs.Flags &^= (CellFlagUnderline | CellFlagDoublyUnderlined | CellFlagCurlyUnderlined | CellFlagDottedUnderline | CellFlagDashedUnderline)
		case 25:
			attrs.Flags &^= (CellFlagBlinking | CellFlagRapidBlinking)
		case 27:
			attrs.Flags &^= CellFlagInverse
		case 28:
			attrs.Flags &^= CellFlagHidden
		case 29:
			attrs.Flags &^= CellFlagCrossedOut
		case 30, 31, 32, 33, 34, 35, 36, 37:
			attrs.Foreground = IndexedColor{Index: uint8(n - 30)}
		case 38:
			consumed := t.applyExtendedColor(seq, i, true)
			i += consumed
			i++
			continue
		case 39:
			attrs.Foreground = DefaultColor{}
		case 40, 41, 42, 43, 44, 45, 46, 47:
			attrs.Background = IndexedColor{Index: uint8(n - 40)}
		case 48:
			consumed := t.applyExtendedColor(seq, i, false)
			i += consumed
			i++
			continue
		case 49:
			attrs.Background = DefaultColor{}
		case 51:
			attrs.Flags |= CellFlagFramed
		case 53:
			attrs.Flags |= CellFlagOverline
		case 54:
			attrs.Flags &^= CellFlagFramed
		case 55:
			attrs.Flags &^= CellFlagOverline
		case 58:
			consumed := t.applyUnderlineColor(seq, i)
			i += consumed
			i++
			continue
		case 59:
			attrs.Underline = nil
		case 90, 91, 92, 93, 94, 95, 96, 97:
			attrs.Foreground = BrightColor{Index: uint8(n - 90)}
		case 100, 101, 102, 103, 104, 105, 106, 107:
			attrs.Background = BrightColor{Index: uint8(n - 100)}
		default:
			// Unrecognized SGR parameters have no effect (xterm behavior).
		}
		i++
	}
}

func defaultSGR() GraphicsAttributes {
	return GraphicsAttributes{Foreground: DefaultColor{}, Background: DefaultColor{}}
}

// applyExtendedColor handles the SGR 38/48 extended-color forms, in both
// colon sub-parameter style (38:2:r:g:b, 38:5:n) and the legacy semicolon
// style where the mode and components arrive as separate top-level
// parameters (38;2;r;g;b, 38;5;n). It returns how many extra top-level
// parameters (beyond the 38/48 itself) the semicolon style consumed, so the
// caller can skip over them; colon style consumes zero extras.
func (t *Terminal) applyExtendedColor(seq *Sequence, i int, foreground bool) int {
	attrs := &t.active.Cursor.SGR
	if seq.Params.SubCount(i) > 0 {
		mode := seq.SubParam(i, 0, 0)
		switch mode {
		case 2:
			c := TrueColor{
				R: uint8(seq.SubParam(i, 1, 0)),
				G: uint8(seq.SubParam(i, 2, 0)),
				B: uint8(seq.SubParam(i, 3, 0)),
			}
			setColor(attrs, foreground, c)
		case 5:
			setColor(attrs, foreground, IndexedColor{Index: uint8(seq.SubParam(i, 1, 0))})
		}
		return 0
	}

	mode := seq.Param(i+1, 0)
	switch mode {
	case 2:
		c := TrueColor{
			R: uint8(seq.Param(i+2, 0)),
			G: uint8(seq.Param(i+3, 0)),
			B: uint8(seq.Param(i+4, 0)),
		}
		setColor(attrs, foreground, c)
		return 4
	case 5:
		setColor(attrs, foreground, IndexedColor{Index: uint8(seq.Param(i+2, 0))})
		return 2
	}
	return 1
}

// applyUnderlineColor handles SGR 58 (set underline color), the same
// colon/semicolon dual form as 38/48.
func (t *Terminal) applyUnderlineColor(seq *Sequence, i int) int {
	attrs := &t.active.Cursor.SGR
	if seq.Params.SubCount(i) > 0 {
		switch seq.SubParam(i, 0, 0) {
		case 2:
			attrs.Underline = TrueColor{
				R: uint8(seq.SubParam(i, 1, 0)),
				G: uint8(seq.SubParam(i, 2, 0)),
				B: uint8(seq.SubParam(i, 3, 0)),
			}
		case 5:
			attrs.Underline = IndexedColor{Index: uint8(seq.SubParam(i, 1, 0))}
		}
		return 0
	}

	switch seq.Param(i+1, 0) {
	case 2:
		attrs.Underline = TrueColor{
			R: uint8(seq.Param(i+2, 0)),
			G: uint8(seq.Param(i+3, 0)),
			B: uint8(seq.Param(i+4, 0)),
		}
		return 4
	case 5:
		attrs.Underline = IndexedColor{Index: uint8(seq.Param(i+2, 0))}
		return 2
	}
	return 1
}

func setColor(attrs *GraphicsAttributes, foreground bool, c Color) {
	if foreground {
		attrs.Foreground = c
	} else {
		attrs.Background = c
	}
}
