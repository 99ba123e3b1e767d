package termcore

import "image/color"

// CellFlags is a bitmask of cell rendering attributes (spec §3 CellFlags).
type CellFlags uint32

const (
	CellFlagBold CellFlags = 1 << iota
	CellFlagFaint
	CellFlagItalic
	CellFlagUnderline
	CellFlagDoublyUnderlined
	CellFlagCurlyUnderlined
	CellFlagDottedUnderline
	CellFlagDashedUnderline
	CellFlagBlinking
	CellFlagRapidBlinking
	CellFlagInverse
	CellFlagHidden
	CellFlagCrossedOut
	CellFlagFramed
	CellFlagOverline
	CellFlagWideChar
	CellFlagWideCharContinuation
	CellFlagProtected // DECSCA guard, distinct from the SGR Framed attribute
	cellFlagDirty     // internal dirty-tracking bit, not part of spec's public set
)

// GraphicsAttributes is the SGR-derived style applied to a cell (spec §3):
// colors plus the non-color attribute flags (bold, italic, underline style,
// and so on) carried on the cursor's write template between SGR sequences.
type GraphicsAttributes struct {
	Foreground Color
	Background Color
	Underline  Color
	Flags      CellFlags
}

// Cell is one grid position: a grapheme-cluster codepoint sequence, display
// width, graphics attributes, style flags, and optional hyperlink/image
// references (spec §3).
//
// Char holds the base codepoint; Combining holds any additional codepoints
// merged into the cluster by a following combining mark (width.go). Leaving
// Combining nil is the overwhelmingly common case, so it costs nothing for
// plain-ASCII cells.
type Cell struct {
	Char           rune
	Combining      []rune
	Attrs          GraphicsAttributes
	Flags          CellFlags
	Hyperlink      HyperlinkID // 0 means "no hyperlink"
	Image          *ImageFragment
}

// NewCell creates a cell initialized with a space character and default attributes.
func NewCell() Cell {
	return Cell{
		Char: ' ',
		Attrs: GraphicsAttributes{
			Foreground: DefaultColor{},
			Background: DefaultColor{},
		},
	}
}

// Reset clears all attributes and sets the cell to default state (space character, default colors).
func (c *Cell) Reset() {
	c.Char = ' '
	c.Combining = nil
	c.Attrs = GraphicsAttributes{Foreground: DefaultColor{}, Background: DefaultColor{}}
	c.Flags = 0
	c.Hyperlink = 0
	c.Image = nil
}

// HasFlag returns true if the specified flag is set.
func (c *Cell) HasFlag(flag CellFlags) bool { return c.Flags&flag != 0 }

// SetFlag enables the specified flag without affecting others.
func (c *Cell) SetFlag(flag CellFlags) { c.Flags |= flag }

// ClearFlag disables the specified flag without affecting others.
func (c *Cell) ClearFlag(flag CellFlags) { c.Flags &^= flag }

// IsDirty returns true if the cell was modified since the last ClearDirty call.
func (c *Cell) IsDirty() bool { return c.HasFlag(cellFlagDirty) }

// MarkDirty marks the cell as modified for dirty tracking.
func (c *Cell) MarkDirty() { c.SetFlag(cellFlagDirty) }

// ClearDirty resets the dirty tracking flag.
func (c *Cell) ClearDirty() { c.ClearFlag(cellFlagDirty) }

// IsWide returns true if this cell starts a wide character (2 columns).
func (c *Cell) IsWide() bool { return c.HasFlag(CellFlagWideChar) }

// IsWideContinuation returns true if this is the trailing cell of a wide
// character (spec invariant: always preceded by a width-2 cell).
func (c *Cell) IsWideContinuation() bool { return c.HasFlag(CellFlagWideCharContinuation) }

// HasImage returns true if this cell has an image fragment reference.
func (c *Cell) HasImage() bool { return c.Image != nil }

// Runes returns the full grapheme cluster: the base rune followed by any
// combining codepoints merged into it.
func (c *Cell) Runes() []rune {
	if len(c.Combining) == 0 {
		return []rune{c.Char}
	}
	out := make([]rune, 0, 1+len(c.Combining))
	out = append(out, c.Char)
	out = append(out, c.Combining...)
	return out
}

// Copy returns a deep copy of the cell, including combining runes.
func (c *Cell) Copy() Cell {
	cp := *c
	if len(c.Combining) > 0 {
		cp.Combining = append([]rune(nil), c.Combining...)
	}
	return cp
}

// resolvedColors resolves this cell's Fg/Bg/Underline to concrete RGBA,
// applying Inverse by swapping fg/bg, for renderer consumption.
func (c *Cell) resolvedColors() (fg, bg, ul color.RGBA) {
	fg = ResolveColor(c.Attrs.Foreground, true)
	bg = ResolveColor(c.Attrs.Background, false)
	if c.Attrs.Underline != nil {
		ul = ResolveColor(c.Attrs.Underline, true)
	} else {
		ul = fg
	}
	if c.HasFlag(CellFlagInverse) {
		fg, bg = bg, fg
	}
	return fg, bg, ul
}
