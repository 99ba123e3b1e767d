package termcore

// CursorStyle determines how the cursor is rendered.
type CursorStyle int

const (
	CursorStyleBlinkingBlock CursorStyle = iota
	CursorStyleSteadyBlock
	CursorStyleBlinkingUnderline
	CursorStyleSteadyUnderline
	CursorStyleBlinkingBar
	CursorStyleSteadyBar
)

// Cursor is the spec §3 Cursor record: position, auto-wrap/origin-mode
// flags, the pending-wrap latch, the current SGR template, charset state,
// and an optional "write under this hyperlink" id.
type Cursor struct {
	Row, Col    int
	Style       CursorStyle
	Visible     bool
	AutoWrap    bool
	OriginMode  bool
	WrapPending bool
	SGR         GraphicsAttributes
	Charsets    CharsetMapping
	Hyperlink   HyperlinkID
	Protected   bool // DECSCA: cells written while true get CellFlagProtected
}

// NewCursor creates a cursor at (0, 0), visible, blinking-block, auto-wrap on.
func NewCursor() *Cursor {
	return &Cursor{
		Style:    CursorStyleBlinkingBlock,
		Visible:  true,
		AutoWrap: true,
		SGR:      GraphicsAttributes{Foreground: DefaultColor{}, Background: DefaultColor{}},
		Charsets: NewCharsetMapping(),
	}
}

// SavedCursor stores cursor position, cell attributes, and charset state for
// DECSC/DECRC restoration. Spec's Open Question is resolved as: each Screen
// owns one SavedCursor slot (not shared across primary/alternate).
type SavedCursor struct {
	Row, Col   int
	SGR        GraphicsAttributes
	OriginMode bool
	AutoWrap   bool
	Charsets   CharsetMapping
	valid      bool
}

// Save captures the cursor's restorable state.
func (c *Cursor) Save() SavedCursor {
	return SavedCursor{
		Row:        c.Row,
		Col:        c.Col,
		SGR:        c.SGR,
		OriginMode: c.OriginMode,
		AutoWrap:   c.AutoWrap,
		Charsets:   c.Charsets,
		valid:      true,
	}
}

// Restore applies a previously saved state. If s was never saved (valid ==
// false), the cursor resets to the home position instead (xterm behavior for
// DECRC with no prior DECSC).
func (c *Cursor) Restore(s SavedCursor) {
	if !s.valid {
		c.Row, c.Col = 0, 0
		c.WrapPending = false
		return
	}
	c.Row, c.Col = s.Row, s.Col
	c.SGR = s.SGR
	c.OriginMode = s.OriginMode
	c.AutoWrap = s.AutoWrap
	c.Charsets = s.Charsets
	c.WrapPending = false
}
