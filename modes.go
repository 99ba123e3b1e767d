package termcore

// AnsiMode enumerates the small set of standard ANSI modes (CSI Pm h/l
// without a '?' leader) this terminal understands (spec §3).
type AnsiMode int

const (
	ModeIRM AnsiMode = iota // insert/replacement mode
	ModeSRM                 // send/receive (local echo) mode
	ModeLNM                 // linefeed/newline mode
	ansiModeCount
)

// DecMode enumerates the DEC private modes (CSI ? Pm h/l) this terminal
// understands (spec §3): cursor-key mode, ANSI/VT52 mode, column mode,
// origin mode, auto-wrap, mouse-reporting variants, bracketed paste, focus
// events, alternate-screen variants, and synchronized/batched updates.
type DecMode int

const (
	DecModeDECCKM DecMode = iota
	DecModeDECANM
	DecModeDECCOLM
	DecModeDECSCLM
	DecModeDECSCNM
	DecModeDECOM
	DecModeDECAWM
	DecModeDECARM
	DecModeX10Mouse
	DecModeVT200Mouse
	DecModeVT200HighlightMouse
	DecModeBtnEventMouse
	DecModeAnyEventMouse
	DecModeFocusEvent
	DecModeUTF8Mouse
	DecModeSGRMouse
	DecModeSGRPixelsMouse
	DecModeURXVTMouse
	DecModeAlternateScroll
	DecModeReverseWraparound
	DecModeAltScreen47
	DecModeAltScreen1047
	DecModeAltScreen1049
	DecModeSaveCursor1048
	DecModeBracketedPaste
	DecModeDECLRMM
	DecModeSynchronizedUpdate
	DecModeKittyKeyboard
	decModeCount
)

// ModeSet is the spec §3 two-bitset Modes record plus per-mode freeze flags
// and XT-SAVE/XT-RESTORE stacks. ANSI and DEC modes are tracked separately
// since they share no numbering space and have independent defaults.
type ModeSet struct {
	ansi   [ansiModeCount]bool
	dec    [decModeCount]bool
	frozen [decModeCount]bool
	stacks [decModeCount][]bool
}

// NewModeSet returns a mode set at VT220/xterm power-on defaults: DECAWM on,
// everything else off.
func NewModeSet() *ModeSet {
	m := &ModeSet{}
	m.dec[DecModeDECAWM] = true
	return m
}

func (m *ModeSet) Ansi(mode AnsiMode) bool { return m.ansi[mode] }

// SetAnsi sets an ANSI mode unconditionally (ANSI modes cannot be frozen).
func (m *ModeSet) SetAnsi(mode AnsiMode, v bool) { m.ansi[mode] = v }

func (m *ModeSet) Dec(mode DecMode) bool { return m.dec[mode] }

// SetDec sets a DEC private mode, returning false without effect if the mode
// is currently frozen.
func (m *ModeSet) SetDec(mode DecMode, v bool) bool {
	if m.frozen[mode] {
		return false
	}
	m.dec[mode] = v
	return true
}

// Freeze locks a DEC mode at its current value until Unfreeze is called.
// BatchedRendering (DecModeSynchronizedUpdate) can never be frozen: an
// operator-imposed freeze must not be able to wedge a client mid-frame.
func (m *ModeSet) Freeze(mode DecMode) {
	if mode == DecModeSynchronizedUpdate {
		return
	}
	m.frozen[mode] = true
}

func (m *ModeSet) Unfreeze(mode DecMode)   { m.frozen[mode] = false }
func (m *ModeSet) IsFrozen(mode DecMode) bool { return m.frozen[mode] }

// Save pushes a DEC mode's current value onto its own XT-SAVE stack.
func (m *ModeSet) Save(mode DecMode) {
	m.stacks[mode] = append(m.stacks[mode], m.dec[mode])
}

// Restore pops a DEC mode's XT-RESTORE stack and applies it, unless frozen
// or the stack is empty.
func (m *ModeSet) Restore(mode DecMode) {
	if m.frozen[mode] {
		return
	}
	n := len(m.stacks[mode])
	if n == 0 {
		return
	}
	m.dec[mode] = m.stacks[mode][n-1]
	m.stacks[mode] = m.stacks[mode][:n-1]
}

// AnsiModeFromNumber maps a CSI Pm h/l parameter to an AnsiMode.
func AnsiModeFromNumber(n int64) (AnsiMode, bool) {
	switch n {
	case 4:
		return ModeIRM, true
	case 12:
		return ModeSRM, true
	case 20:
		return ModeLNM, true
	}
	return 0, false
}

// DecModeFromNumber maps a CSI ? Pm h/l parameter to a DecMode.
func DecModeFromNumber(n int64) (DecMode, bool) {
	switch n {
	case 1:
		return DecModeDECCKM, true
	case 2:
		return DecModeDECANM, true
	case 3:
		return DecModeDECCOLM, true
	case 4:
		return DecModeDECSCLM, true
	case 5:
		return DecModeDECSCNM, true
	case 6:
		return DecModeDECOM, true
	case 7:
		return DecModeDECAWM, true
	case 8:
		return DecModeDECARM, true
	case 9:
		return DecModeX10Mouse, true
	case 12:
		return DecModeVT200HighlightMouse, true
	case 25:
		return 0, false // DECTCEM (cursor visibility) is owned by Cursor.Visible directly
	case 45:
		return DecModeReverseWraparound, true
	case 47:
		return DecModeAltScreen47, true
	case 69:
		return DecModeDECLRMM, true
	case 1000:
		return DecModeVT200Mouse, true
	case 1002:
		return DecModeBtnEventMouse, true
	case 1003:
		return DecModeAnyEventMouse, true
	case 1004:
		return DecModeFocusEvent, true
	case 1005:
		return DecModeUTF8Mouse, true
	case 1006:
		return DecModeSGRMouse, true
	case 1015:
		return DecModeURXVTMouse, true
	case 1016:
		return DecModeSGRPixelsMouse, true
	case 1047:
		return DecModeAltScreen1047, true
	case 1048:
		return DecModeSaveCursor1048, true
	case 1049:
		return DecModeAltScreen1049, true
	case 2004:
		return DecModeBracketedPaste, true
	case 2026:
		return DecModeSynchronizedUpdate, true
	case 2017:
		return DecModeAlternateScroll, true
	case 2030:
		return DecModeKittyKeyboard, true
	}
	return 0, false
}
