package termcore

// dispatchDcs routes an assembled DCS sequence (spec §4.6). The two forms
// this core recognizes share Final == 'q': DECRQSS carries a single '$'
// intermediate ahead of it, Sixel graphics carry none (and instead carry
// up to three leading numeric parameters). Runs under Write's held lock,
// same as dispatchCsi/dispatchOsc.
func (t *Terminal) dispatchDcs(seq *Sequence) {
	switch {
	case seq.Final == 'q' && seq.IntermLen > 0 && seq.Intermediates[0] == '$':
		t.dispatchDECRQSS(seq)
	case seq.Final == 'q':
		t.dispatchSixel(seq)
	default:
		t.diagnostic(ErrUnknownSequence, "unhandled DCS final %q", string(seq.Final))
	}
}

// dispatchApc routes an assembled APC sequence. A payload starting with 'G'
// is the Kitty graphics protocol (handled in-tree); anything else is handed
// to the generic apcProvider, same as PM/SOS.
func (t *Terminal) dispatchApc(seq *Sequence) {
	if len(seq.Data) > 0 && seq.Data[0] == 'G' {
		t.dispatchKittyGraphics(seq.Data)
		return
	}
	t.apcProvider.Receive(seq.Data)
}

// dispatchKittyGraphics handles the transmit (t/T) and display (p) actions
// of the Kitty graphics protocol; delete (d) drops matching placements.
// Animation frames/composition (f/a/c) and the query action (q) have no
// effect on stored state beyond acknowledging a quiet-0 request.
func (t *Terminal) dispatchKittyGraphics(data []byte) {
	cmd, err := ParseKittyGraphics(data)
	if err != nil {
		t.diagnostic(ErrResourceLimit, "kitty graphics decode failed: %v", err)
		return
	}

	switch cmd.Action {
	case KittyActionTransmit, KittyActionTransmitDisplay:
		pixels, w, h, err := cmd.DecodeImageData()
		if err != nil {
			t.reportKittyError(cmd, err)
			return
		}
		var id uint32
		if cmd.ImageID != 0 {
			t.images.StoreWithID(cmd.ImageID, w, h, pixels)
			id = cmd.ImageID
		} else {
			id = t.images.Store(w, h, pixels)
		}
		if cmd.Action == KittyActionTransmitDisplay {
			t.placeKittyImage(cmd, id)
		}
		t.reportKittyOK(cmd, id)
	case KittyActionDisplay:
		t.placeKittyImage(cmd, cmd.ImageID)
		t.reportKittyOK(cmd, cmd.ImageID)
	case KittyActionDelete:
		t.deleteKittyPlacements(cmd)
	default:
		// Query/animation actions: acknowledged, no stored-state effect.
		t.reportKittyOK(cmd, cmd.ImageID)
	}
}

func (t *Terminal) placeKittyImage(cmd *KittyCommand, imageID uint32) {
	t.images.Place(cmd.BuildPlacement(imageID, t.active.Cursor.Row, t.active.Cursor.Col))
}

func (t *Terminal) deleteKittyPlacements(cmd *KittyCommand) {
	cmd.ApplyDelete(t.images, t.active.Cursor.Row, t.active.Cursor.Col)
}

func (t *Terminal) reportKittyOK(cmd *KittyCommand, imageID uint32) {
	if cmd.Quiet >= 1 {
		return
	}
	t.writeResponseLocked(FormatKittyResponse(imageID, "OK", false))
}

func (t *Terminal) reportKittyError(cmd *KittyCommand, err error) {
	if cmd.Quiet >= 2 {
		return
	}
	t.writeResponseLocked(FormatKittyResponse(cmd.ImageID, err.Error(), true))
}

// dispatchSixel decodes a Sixel image body, stores it, and places it at the
// cursor as a single full-size placement spanning the image's cell
// footprint (spec §4's image subsystem). Pa/Pb/Ph (aspect ratio and
// background-fill parameters) are accepted but do not affect storage: this
// core always decodes Sixel into plain RGBA and lets the embedder's
// renderer handle aspect/background.
func (t *Terminal) dispatchSixel(seq *Sequence) {
	params := make([]int64, seq.Params.Count)
	for i := range params {
		params[i] = seq.Param(i, 0)
	}

	img, err := ParseSixel(params, seq.Data)
	if err != nil {
		t.diagnostic(ErrResourceLimit, "sixel decode failed: %v", err)
		return
	}

	cellW, cellH := t.sizeProvider.CellSizePixels()
	img.StoreAndPlace(t.images, t.active.Cursor.Row, t.active.Cursor.Col, cellW, cellH)
}

// dispatchDECRQSS answers a "request status string" query for the handful
// of settings an embedder is likely to probe: SGR (m), the scroll region
// (r), and the cursor style (q, with its own leading space intermediate in
// the request's Pt, per DECSCUSR's wire form). Anything else gets the
// "invalid request" reply DECRQSS itself defines.
func (t *Terminal) dispatchDECRQSS(seq *Sequence) {
	switch string(seq.Data) {
	case "m":
		t.writeResponseLocked("\x1bP1$r" + sgrReportString(t.active.Cursor.SGR) + "m\x1b\\")
	case "r":
		t.writeResponseLocked("\x1bP1$r" + itoa(t.active.Margins.Top+1) + ";" + itoa(t.active.Margins.Bottom+1) + "r\x1b\\")
	case " q":
		t.writeResponseLocked("\x1bP1$r" + itoa(int(t.active.Cursor.Style)+1) + " q\x1b\\")
	default:
		t.writeResponseLocked("\x1bP0$r\x1b\\")
	}
}

// sgrReportString renders attrs as the semicolon-joined parameter list
// DECRQSS's "m" reply carries (minus the leading CSI and trailing 'm').
func sgrReportString(attrs GraphicsAttributes) string {
	parts := []int{0}
	if attrs.Flags&CellFlagBold != 0 {
		parts = append(parts, 1)
	}
	if attrs.Flags&CellFlagFaint != 0 {
		parts = append(parts, 2)
	}
	if attrs.Flags&CellFlagItalic != 0 {
		parts = append(parts, 3)
	}
	if attrs.Flags&CellFlagUnderline != 0 {
		parts = append(parts, 4)
	}
	if attrs.Flags&CellFlagBlinking != 0 {
		parts = append(parts, 5)
	}
	if attrs.Flags&CellFlagInverse != 0 {
		parts = append(parts, 7)
	}
	if attrs.Flags&CellFlagHidden != 0 {
		parts = append(parts, 8)
	}
	if attrs.Flags&CellFlagCrossedOut != 0 {
		parts = append(parts, 9)
	}

	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ";"
		}
		out += itoa(p)
	}
	return out
}
