package termcore

import "strconv"

// Modifier is a bitmask of keyboard modifiers, numbered per the xterm/DEC
// "modifyOtherKeys" convention: the wire encoding of a modifier set is
// always 1 + this bitmask, so None encodes as 1, Shift alone as 2, and so
// on (spec §4.9).
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModAlt
	ModControl
	ModSuper
)

// code returns the 1-based modifier parameter xterm sequences encode, or 0
// when no modifiers are set (callers omit the parameter entirely in that
// case, since "1" is also the default).
func (m Modifier) code() int {
	if m == 0 {
		return 0
	}
	return int(m) + 1
}

// Key enumerates the non-printable keys this encoder produces escape
// sequences for.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// arrowFinal and the Home/End/function-key tables below are the legacy
// VT220/xterm byte layouts: unmodified arrows are "ESC [ <final>" (or
// "ESC O <final>" under DECCKM application-cursor-keys mode); any modifier
// set inserts ";<code>" before the final byte, same shape the xterm
// "modifyOtherKeys" mapping and InputGenerator_test.cpp's arrow-key table
// use.
var arrowFinal = map[Key]byte{
	KeyUp: 'A', KeyDown: 'B', KeyRight: 'C', KeyLeft: 'D',
}

// tildeKey is the CSI <n> ~ parameter for keys encoded that way (everything
// but arrows, Home/End, and function keys F1-F4, which get their own
// letter-final forms; EncodeKey handles Home/End before consulting this
// table, so their entries here are never used).
var tildeKey = map[Key]int{
	KeyHome: 1, KeyInsert: 2, KeyDelete: 3, KeyEnd: 4,
	KeyPageUp: 5, KeyPageDown: 6,
	KeyF5: 15, KeyF6: 17, KeyF7: 18, KeyF8: 19,
	KeyF9: 20, KeyF10: 21, KeyF11: 23, KeyF12: 24,
}

var functionFinal = map[Key]byte{
	KeyF1: 'P', KeyF2: 'Q', KeyF3: 'R', KeyF4: 'S',
}

// KittyKeyboardFlag is a bit in the kitty-keyboard progressive-enhancement
// flag set (spec §4.9), pushed with CSI > Pf u, popped with CSI < u, and set
// directly with CSI = Pf ; Pm u.
type KittyKeyboardFlag uint8

const (
	KittyDisambiguateEscapeCodes KittyKeyboardFlag = 1 << iota
	KittyReportEventTypes
	KittyReportAlternateKeys
	KittyReportAllKeysAsEscapeCodes
	KittyReportAssociatedText
)

// KeyEventType distinguishes press/repeat/release for the kitty-keyboard
// encoder's event-type parameter; legacy encodings never report repeat or
// release at all, only press.
type KeyEventType int

const (
	KeyEventPress KeyEventType = 1 + iota
	KeyEventRepeat
	KeyEventRelease
)

// kittyKeyCode maps a Key to the codepoint the kitty-keyboard protocol
// reports it as. Keys with a real ASCII/Unicode representation use that
// codepoint directly (Escape=27, Enter=13, ...); keys without one use the
// protocol's Private Use Area range starting at U+E000 — the exact PUA
// assignments are implementation-defined (see DESIGN.md), since spec.md's
// only testable requirement (§8 S7) concerns Escape, which has a real
// codepoint and is reproduced exactly.
func kittyKeyCode(key Key) (int, bool) {
	switch key {
	case KeyEscape:
		return 27, true
	case KeyEnter:
		return 13, true
	case KeyTab:
		return 9, true
	case KeyBackspace:
		return 127, true
	}
	if code, ok := kittyPUACode[key]; ok {
		return code, true
	}
	return 0, false
}

var kittyPUACode = map[Key]int{
	KeyLeft: 57350, KeyRight: 57351, KeyUp: 57352, KeyDown: 57353,
	KeyPageUp: 57354, KeyPageDown: 57355, KeyHome: 57356, KeyEnd: 57357,
	KeyInsert: 57348, KeyDelete: 57349,
	KeyF1: 57364, KeyF2: 57365, KeyF3: 57366, KeyF4: 57367,
	KeyF5: 57368, KeyF6: 57369, KeyF7: 57370, KeyF8: 57371,
	KeyF9: 57372, KeyF10: 57373, KeyF11: 57374, KeyF12: 57375,
}

// kittyFlagsLocked returns the active kitty-keyboard flag set: the top of
// the push/pop stack, or — when the stack is empty — the bare
// DecModeKittyKeyboard DEC-private-mode toggle (CSI ? 2030 h/l) treated as
// a DisambiguateEscapeCodes-only baseline, giving that mode bit an actual
// effect instead of leaving it tracked but unconsulted.
func (t *Terminal) kittyFlagsLocked() KittyKeyboardFlag {
	if n := len(t.kittyKeyboardStack); n > 0 {
		return t.kittyKeyboardStack[n-1]
	}
	if t.modes != nil && t.modes.Dec(DecModeKittyKeyboard) {
		return KittyDisambiguateEscapeCodes
	}
	return 0
}

// pushKittyFlags implements CSI > Pf u.
func (t *Terminal) pushKittyFlags(flags KittyKeyboardFlag) {
	const maxKittyStack = 8
	if len(t.kittyKeyboardStack) >= maxKittyStack {
		t.kittyKeyboardStack = t.kittyKeyboardStack[1:]
	}
	t.kittyKeyboardStack = append(t.kittyKeyboardStack, flags)
}

// popKittyFlags implements CSI < Pn u: pop n entries (default 1).
func (t *Terminal) popKittyFlags(n int) {
	if n <= 0 {
		n = 1
	}
	if n > len(t.kittyKeyboardStack) {
		n = len(t.kittyKeyboardStack)
	}
	t.kittyKeyboardStack = t.kittyKeyboardStack[:len(t.kittyKeyboardStack)-n]
}

// setKittyFlags implements CSI = Pf ; Pm u: Pm chooses how Pf is applied to
// the stack's top entry (1=replace, 2=set the named bits, 3=clear them),
// pushing a zero entry first if the stack is empty.
func (t *Terminal) setKittyFlags(flags KittyKeyboardFlag, mode int64) {
	if len(t.kittyKeyboardStack) == 0 {
		t.kittyKeyboardStack = append(t.kittyKeyboardStack, 0)
	}
	top := len(t.kittyKeyboardStack) - 1
	switch mode {
	case 2:
		t.kittyKeyboardStack[top] |= flags
	case 3:
		t.kittyKeyboardStack[top] &^= flags
	default:
		t.kittyKeyboardStack[top] = flags
	}
}

// reportKittyFlags implements CSI ? u: reply with the active flag set.
func (t *Terminal) reportKittyFlags() {
	t.writeResponseLocked("\x1b[?" + itoa(int(t.kittyFlagsLocked())) + "u")
}

// EncodeKeyEvent returns the kitty-keyboard CSI-u sequence for a press,
// repeat, or release of key (spec §4.9, §8 scenario S7), or nil when no
// kitty flags are active (DisambiguateEscapeCodes/ReportAllKeysAsEscapeCodes
// unset) or key has no kitty code — callers fall back to EncodeKey's legacy
// form in that case. The modifier parameter follows the
// "encoded_modifier_value = 1 + bitmask" identity (spec §8 property 6); the
// event-type suffix (":"<event>) is appended only once ReportEventTypes has
// been negotiated, matching both halves of scenario S7.
func (t *Terminal) EncodeKeyEvent(key Key, mods Modifier, event KeyEventType) []byte {
	t.mu.RLock()
	flags := t.kittyFlagsLocked()
	t.mu.RUnlock()

	if flags&(KittyDisambiguateEscapeCodes|KittyReportAllKeysAsEscapeCodes) == 0 {
		return nil
	}
	if event == KeyEventRelease && flags&KittyReportEventTypes == 0 {
		return nil
	}
	code, ok := kittyKeyCode(key)
	if !ok {
		return nil
	}

	modCode := strconv.Itoa(int(mods) + 1)
	if flags&KittyReportEventTypes != 0 {
		modCode += ":" + strconv.Itoa(int(event))
	}
	return []byte("\x1b[" + strconv.Itoa(code) + ";" + modCode + "u")
}

// EncodeKey returns the byte sequence a press of key with the given
// modifiers produces. When a kitty-keyboard flag set is active it prefers
// the CSI-u form (EncodeKeyEvent); otherwise it falls back to the legacy
// xterm encoding, consulting t's cursor-key mode (DECCKM) to choose between
// the CSI and SS3 arrow-key forms.
func (t *Terminal) EncodeKey(key Key, mods Modifier) []byte {
	if out := t.EncodeKeyEvent(key, mods, KeyEventPress); out != nil {
		return out
	}
	switch key {
	case KeyEscape:
		return []byte{0x1b}
	case KeyEnter:
		return []byte{'\r'}
	case KeyTab:
		if mods&ModShift != 0 {
			return []byte("\x1b[Z")
		}
		return []byte{'\t'}
	case KeyBackspace:
		return []byte{0x7f}
	}

	if final, ok := arrowFinal[key]; ok {
		return t.encodeArrowOrHomeEnd(final, mods, false)
	}
	if final, ok := functionFinal[key]; ok {
		if mods == 0 {
			return []byte{0x1b, 'O', final}
		}
		return []byte("\x1b[1;" + strconv.Itoa(mods.code()) + string(final))
	}
	if key == KeyHome || key == KeyEnd {
		final := byte('H')
		if key == KeyEnd {
			final = 'F'
		}
		return t.encodeArrowOrHomeEnd(final, mods, true)
	}
	if n, ok := tildeKey[key]; ok {
		if mods == 0 {
			return []byte("\x1b[" + strconv.Itoa(n) + "~")
		}
		return []byte("\x1b[" + strconv.Itoa(n) + ";" + strconv.Itoa(mods.code()) + "~")
	}
	return nil
}

// encodeArrowOrHomeEnd produces the CSI/SS3 form shared by arrow keys and
// Home/End: "ESC O <final>" when DECCKM is set and no modifiers apply
// (SS3 has no room to carry a modifier parameter), otherwise "ESC [
// [1;<mod>]<final>".
func (t *Terminal) encodeArrowOrHomeEnd(final byte, mods Modifier, _ bool) []byte {
	t.mu.RLock()
	appCursor := t.modes != nil && t.modes.Dec(DecModeDECCKM)
	t.mu.RUnlock()
	if mods == 0 {
		if appCursor {
			return []byte{0x1b, 'O', final}
		}
		return []byte{0x1b, '[', final}
	}
	return []byte("\x1b[1;" + strconv.Itoa(mods.code()) + string(final))
}

// EncodeRune encodes a single printable keypress. Control a-z/[\]^_ and
// space collapse to the corresponding C0 control byte per the standard
// terminal Ctrl-key convention (InputGenerator_test.cpp's
// "InputGenerator.Ctrl+*" cases); Alt prefixes the result with ESC ("meta"
// convention); anything else passes the rune through as UTF-8.
func EncodeRune(r rune, mods Modifier) []byte {
	var out []byte
	if mods&ModControl != 0 {
		if b, ok := ctrlCode(r); ok {
			out = []byte{b}
		}
	}
	if out == nil {
		out = []byte(string(r))
	}
	if mods&ModAlt != 0 {
		return append([]byte{0x1b}, out...)
	}
	return out
}

// ctrlCode maps a rune to its Control-modified C0 byte, per the classic
// "clear bits 6 and 7" terminal driver rule covering 'A'..'Z', 'a'..'z' and
// '['..'_', plus Ctrl+Space (NUL) and Ctrl+? (DEL).
func ctrlCode(r rune) (byte, bool) {
	switch {
	case r == ' ':
		return 0x00, true
	case r >= 'a' && r <= 'z':
		return byte(r-'a') + 1, true
	case r >= 'A' && r <= 'Z':
		return byte(r-'A') + 1, true
	case r >= '[' && r <= '_':
		return byte(r - '@'), true
	case r == '?':
		return 0x7f, true
	default:
		return 0, false
	}
}

// MouseButton identifies which button an SGR mouse report names, plus the
// two synthetic "button" values for wheel events.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonMiddle
	MouseButtonRight
	MouseButtonNone // motion-only report with no button held
	MouseWheelUp
	MouseWheelDown
)

// mouseButtonCode returns the xterm button-field value (pre-offset) for a
// pressed button/wheel event with mods, shared by all three wire encodings
// (spec §4.9/§6: SGR, Default, URXVT differ only in how this code and the
// coordinates are serialized, not in how the code itself is built).
func mouseButtonCode(btn MouseButton, mods Modifier) int {
	code := 0
	switch btn {
	case MouseButtonLeft:
		code = 0
	case MouseButtonMiddle:
		code = 1
	case MouseButtonRight:
		code = 2
	case MouseButtonNone:
		code = 35 // motion, no button (32 + 3)
	case MouseWheelUp:
		code = 64
	case MouseWheelDown:
		code = 65
	}
	if mods&ModShift != 0 {
		code += 4
	}
	if mods&ModAlt != 0 {
		code += 8
	}
	if mods&ModControl != 0 {
		code += 16
	}
	return code
}

// EncodeMouse returns the mouse-report bytes for a button press/release or
// wheel event at the given row/col, or nil if t has no mouse protocol
// (X10/VT200/ButtonEvent/AnyEvent) enabled. row/col are 1-based and are
// written as given (the raw-byte form clamps them to 1..223). The wire
// encoding is chosen from the enabled DEC modes: SGR (1006) takes priority,
// then URXVT (1015) unless the plain X10 protocol (mode 9) is on, otherwise
// the Default/X10 raw-byte form (spec §6).
func (t *Terminal) EncodeMouse(btn MouseButton, row, col int, mods Modifier, pressed bool) []byte {
	t.mu.Lock()
	defer t.mu.Unlock()

	var x10, vt200, btnEvent, anyEvent, sgr, urxvt bool
	if t.modes != nil {
		x10 = t.modes.Dec(DecModeX10Mouse)
		vt200 = t.modes.Dec(DecModeVT200Mouse)
		btnEvent = t.modes.Dec(DecModeBtnEventMouse)
		anyEvent = t.modes.Dec(DecModeAnyEventMouse)
		sgr = t.modes.Dec(DecModeSGRMouse)
		urxvt = t.modes.Dec(DecModeURXVTMouse)
	}
	if !(x10 || vt200 || btnEvent || anyEvent) {
		return nil
	}

	t.locator.row, t.locator.col = row, col
	t.locator.pressed = pressed && btn != MouseButtonNone

	code := mouseButtonCode(btn, mods)

	if sgr {
		final := byte('M')
		if !pressed {
			final = 'm'
		}
		return []byte("\x1b[<" + strconv.Itoa(code) + ";" + strconv.Itoa(col) + ";" + strconv.Itoa(row) + string(final))
	}

	// Default and URXVT encodings have no lowercase "release" final: a
	// release collapses to the "no button" code (3) plus whatever
	// modifiers are held, the same convention X10 used before SGR existed.
	if !pressed {
		code = 3
		if mods&ModShift != 0 {
			code += 4
		}
		if mods&ModAlt != 0 {
			code += 8
		}
		if mods&ModControl != 0 {
			code += 16
		}
	}

	if urxvt && !x10 {
		return []byte("\x1b[" + strconv.Itoa(code+32) + ";" + strconv.Itoa(col) + ";" + strconv.Itoa(row) + "M")
	}

	// Raw-byte Default/X10 form: coordinates clamp at 223 so byte+32 never
	// exceeds 255 (the classic X10 wire-format ceiling).
	clampCoord := func(v int) byte {
		if v > 223 {
			v = 223
		}
		if v < 1 {
			v = 1
		}
		return byte(v + 32)
	}
	return []byte{0x1b, '[', 'M', byte(code + 32), clampCoord(col), clampCoord(row)}
}

// locatorState tracks DEC locator (DECELR/DECEFR/DECRQLP) reporting state.
// This core does not autonomously push continuous locator reports on
// motion (Ps=2 in DECELR is accepted and stored but inert); only an
// explicit DECRQLP produces a reply, which is the one wire behavior spec §6
// commits to.
type locatorState struct {
	enabled   bool
	pixelUnit bool
	row, col  int
	pressed   bool
	filterSet bool
	top, left, bottom, right int
}

// setDECELR implements DECELR (CSI Ps ; Pu ' z): Ps=0 disables locator
// reporting, any other value enables it; Pu selects pixel (1) vs character
// cell (0 or 2) coordinate units.
func (t *Terminal) setDECELR(reportMode, unit int64) {
	t.locator.enabled = reportMode != 0
	t.locator.pixelUnit = unit == 1
}

// setDECEFR implements DECEFR (CSI Pt;Pl;Pb;Pr ' w): restricts locator
// events to the given pixel/cell rectangle. The rectangle is recorded but,
// as with DECELR's continuous mode, does not gate anything since this core
// never emits unsolicited locator reports.
func (t *Terminal) setDECEFR(top, left, bottom, right int64) {
	t.locator.filterSet = true
	t.locator.top, t.locator.left = int(top), int(left)
	t.locator.bottom, t.locator.right = int(bottom), int(right)
}

// reportLocatorPosition implements DECRQLP (CSI Ps ' |): replies with the
// last mouse position EncodeMouse observed, formatted as contour's
// DECTextLocator.cpp numbers the filter-event code Pe (1=button down,
// 2=button up/no button held), matching spec §6's `CSI Pe;Pb;Pr;Pc;Pp & w`
// exactly. Pp (page) is always 1: this core has no multi-page support.
func (t *Terminal) reportLocatorPosition() {
	pe := 2
	pb := 0
	if t.locator.pressed {
		pe = 1
		pb = 1
	}
	row, col := t.locator.row, t.locator.col
	if row == 0 && col == 0 {
		row, col = 1, 1
	}
	t.writeResponseLocked("\x1b[" + itoa(pe) + ";" + itoa(pb) + ";" + itoa(row) + ";" + itoa(col) + ";1&w")
}

// EncodeFocus returns the CSI I / CSI O focus-event bytes, or nil if focus
// event reporting (DEC mode 1004) is not enabled.
func (t *Terminal) EncodeFocus(gained bool) []byte {
	t.mu.RLock()
	enabled := t.modes != nil && t.modes.Dec(DecModeFocusEvent)
	t.mu.RUnlock()
	if !enabled {
		return nil
	}
	if gained {
		return []byte("\x1b[I")
	}
	return []byte("\x1b[O")
}

// EncodePaste wraps data in bracketed-paste markers if DEC mode 2004 is
// enabled, otherwise returns data unwrapped.
func (t *Terminal) EncodePaste(data []byte) []byte {
	t.mu.RLock()
	enabled := t.modes != nil && t.modes.Dec(DecModeBracketedPaste)
	t.mu.RUnlock()
	if !enabled {
		return data
	}
	out := make([]byte, 0, len(data)+12)
	out = append(out, "\x1b[200~"...)
	out = append(out, data...)
	out = append(out, "\x1b[201~"...)
	return out
}
