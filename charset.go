package termcore

// CharsetId identifies one of the ISO-2022/DEC national charset variants a
// G0-G3 slot can be designated to (spec §3).
type CharsetId int

const (
	CharsetUSASCII CharsetId = iota
	CharsetBritish
	CharsetGerman
	CharsetDutch
	CharsetFinnish
	CharsetFrench
	CharsetFrenchCanadian
	CharsetNorwegianDanish
	CharsetSpanish
	CharsetSwedish
	CharsetSwiss
	CharsetSpecialLineDrawing // DEC Special Graphics (line-drawing)
)

// GSlot selects one of the four charset designation slots.
type GSlot int

const (
	G0 GSlot = iota
	G1
	G2
	G3
)

// CharsetMapping is the spec §3 CharsetMapping: four designation slots, a
// current GL selector, a current GR selector, and a one-shot single-shift
// override (SS2/SS3).
type CharsetMapping struct {
	Slots       [4]CharsetId
	GL          GSlot
	GR          GSlot
	singleShift GSlot
	hasSS       bool
}

// NewCharsetMapping designates all slots to US-ASCII with GL=G0, GR=G1 (the
// VT220 power-on default).
func NewCharsetMapping() CharsetMapping {
	return CharsetMapping{GL: G0, GR: G1}
}

// Designate assigns a charset to one of the four G-slots (ESC ( / ) / * / + X).
func (m *CharsetMapping) Designate(slot GSlot, cs CharsetId) {
	m.Slots[slot] = cs
}

// InvokeGL switches which slot GL reads from (SI selects G0, SO selects G1;
// LS2/LS3 select G2/G3).
func (m *CharsetMapping) InvokeGL(slot GSlot) { m.GL = slot }

// InvokeGR switches which slot GR reads from.
func (m *CharsetMapping) InvokeGR(slot GSlot) { m.GR = slot }

// SingleShift arms a one-character override of GL (SS2 -> G2, SS3 -> G3).
// The next translated printable consumes it and GL reverts automatically.
func (m *CharsetMapping) SingleShift(slot GSlot) {
	m.singleShift = slot
	m.hasSS = true
}

// active returns the slot that the next printable byte should be translated
// through, consuming any pending single-shift.
func (m *CharsetMapping) active() CharsetId {
	slot := m.GL
	if m.hasSS {
		slot = m.singleShift
		m.hasSS = false
	}
	return m.Slots[slot]
}

// Translate maps a single GL-range byte (0x20-0x7E) through the active
// charset. Codepoints above 0x7F (decoded UTF-8) bypass charset translation
// entirely per spec §4.3 and are returned unchanged by the caller instead of
// routed through Translate.
func (m *CharsetMapping) Translate(b byte) rune {
	cs := m.active()
	if table, ok := charsetTables[cs]; ok {
		if r, ok := table[b]; ok {
			return r
		}
	}
	return rune(b)
}

// charsetTables holds the byte->rune remaps for each national variant,
// applied only to the small set of bytes each standard actually reassigns
// (most of the 96-byte GL range is identical to ASCII in every variant).
var charsetTables = map[CharsetId]map[byte]rune{
	CharsetBritish: {'#': 0x00A3}, // £
	CharsetGerman: {
		'@': 0x00A7, '[': 0x00C4, '\\': 0x00D6, ']': 0x00DC,
		'{': 0x00E4, '|': 0x00F6, '}': 0x00FC, '~': 0x00DF,
	},
	CharsetDutch: {
		'#': 0x00A3, '@': 0x00BE, '[': 0x0133, '\\': 0x00BD, ']': 0x007C,
		'{': 0x00A8, '|': 0x0192, '}': 0x00BC, '~': 0x00B4,
	},
	CharsetFinnish: {
		'[': 0x00C4, '\\': 0x00D6, ']': 0x00C5, '^': 0x00DC,
		'`': 0x00E9, '{': 0x00E4, '|': 0x00F6, '}': 0x00E5, '~': 0x00FC,
	},
	CharsetFrench: {
		'#': 0x00A3, '@': 0x00E0, '[': 0x00B0, '\\': 0x00E7, ']': 0x00A7,
		'{': 0x00E9, '|': 0x00F9, '}': 0x00E8, '~': 0x00A8,
	},
	CharsetFrenchCanadian: {
		'@': 0x00E0, '[': 0x00E2, '\\': 0x00E7, ']': 0x00EA, '^': 0x00EE,
		'`': 0x00F4, '{': 0x00E9, '|': 0x00F9, '}': 0x00E8, '~': 0x00FB,
	},
	CharsetNorwegianDanish: {
		'@': 0x00C4, '[': 0x00C6, '\\': 0x00D8, ']': 0x00C5, '^': 0x00DC,
		'`': 0x00E4, '{': 0x00E6, '|': 0x00F8, '}': 0x00E5, '~': 0x00FC,
	},
	CharsetSpanish: {
		'#': 0x00A3, '@': 0x00A7, '[': 0x00A1, '\\': 0x00D1, ']': 0x00BF,
		'{': 0x00B0, '|': 0x00F1, '}': 0x00E7,
	},
	CharsetSwedish: {
		'@': 0x00C9, '[': 0x00C4, '\\': 0x00D6, ']': 0x00C5, '^': 0x00DC,
		'`': 0x00E9, '{': 0x00E4, '|': 0x00F6, '}': 0x00E5, '~': 0x00FC,
	},
	CharsetSwiss: {
		'#': 0x00F9, '@': 0x00E0, '[': 0x00E9, '\\': 0x00E7, ']': 0x00EA,
		'^': 0x00EE, '_': 0x00E8, '`': 0x00F4, '{': 0x00E4, '|': 0x00F6,
		'}': 0x00FC, '~': 0x00FB,
	},
	CharsetSpecialLineDrawing: {
		'_': 0x00A0, // blank
		'`': 0x25C6, // diamond
		'a': 0x2592, // checkerboard
		'b': 0x2409, // HT symbol
		'c': 0x240C, // FF symbol
		'd': 0x240D, // CR symbol
		'e': 0x240A, // LF symbol
		'f': 0x00B0, // degree
		'g': 0x00B1, // plus/minus
		'h': 0x2424, // NL symbol
		'i': 0x240B, // VT symbol
		'j': 0x2518, // ┘
		'k': 0x2510, // ┐
		'l': 0x250C, // ┌
		'm': 0x2514, // └
		'n': 0x253C, // ┼
		'o': 0x23BA, // scan line 1
		'p': 0x23BB, // scan line 3
		'q': 0x2500, // ─
		'r': 0x23BC, // scan line 7
		's': 0x23BD, // scan line 9
		't': 0x251C, // ├
		'u': 0x2524, // ┤
		'v': 0x2534, // ┴
		'w': 0x252C, // ┬
		'x': 0x2502, // │
		'y': 0x2264, // ≤
		'z': 0x2265, // ≥
		'{': 0x03C0, // π
		'|': 0x2260, // ≠
		'}': 0x00A3, // £
		'~': 0x00B7, // ·
	},
}
