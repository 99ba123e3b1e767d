package termcore

import (
	"encoding/base64"
	"fmt"
)

// SnapshotDetail specifies the level of detail in a snapshot.
type SnapshotDetail string

const (
	// SnapshotDetailText returns plain text only.
	SnapshotDetailText SnapshotDetail = "text"
	// SnapshotDetailStyled returns text with style segments per line.
	SnapshotDetailStyled SnapshotDetail = "styled"
	// SnapshotDetailFull returns full cell-by-cell data.
	SnapshotDetailFull SnapshotDetail = "full"
)

// Snapshot represents a complete terminal screen capture.
type Snapshot struct {
	Size   SnapshotSize    `json:"size"`
	Cursor SnapshotCursor  `json:"cursor"`
	Lines  []SnapshotLine  `json:"lines"`
	Images []SnapshotImage `json:"images,omitempty"`
}

// SnapshotSize holds terminal dimensions.
type SnapshotSize struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// SnapshotCursor holds cursor state.
type SnapshotCursor struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Visible bool   `json:"visible"`
	Style   string `json:"style"`
}

// SnapshotLine represents a single line in the snapshot.
type SnapshotLine struct {
	Text     string            `json:"text"`
	Segments []SnapshotSegment `json:"segments,omitempty"`
	Cells    []SnapshotCell    `json:"cells,omitempty"`
}

// SnapshotSegment represents a styled run of text sharing one style within
// a line (spec §6's "text-cluster grouping": adjacent cells that share fg,
// bg, attributes, and hyperlink collapse into a single segment).
type SnapshotSegment struct {
	Text       string        `json:"text"`
	Fg         string        `json:"fg,omitempty"`
	Bg         string        `json:"bg,omitempty"`
	Attributes SnapshotAttrs `json:"attrs,omitempty"`
	Hyperlink  *SnapshotLink `json:"hyperlink,omitempty"`
}

// SnapshotCell represents a single cell with full attributes.
type SnapshotCell struct {
	Char       string        `json:"char"`
	Fg         string        `json:"fg"`
	Bg         string        `json:"bg"`
	Attributes SnapshotAttrs `json:"attrs,omitempty"`
	Hyperlink  *SnapshotLink `json:"hyperlink,omitempty"`
	Wide       bool          `json:"wide,omitempty"`
	WideSpacer bool          `json:"wide_spacer,omitempty"`
}

// SnapshotAttrs holds text formatting attributes.
type SnapshotAttrs struct {
	Bold          bool `json:"bold,omitempty"`
	Dim           bool `json:"dim,omitempty"`
	Italic        bool `json:"italic,omitempty"`
	Underline     bool `json:"underline,omitempty"`
	Blink         bool `json:"blink,omitempty"`
	Reverse       bool `json:"reverse,omitempty"`
	Hidden        bool `json:"hidden,omitempty"`
	Strikethrough bool `json:"strikethrough,omitempty"`
	Overline      bool `json:"overline,omitempty"`
}

// SnapshotLink holds hyperlink information.
type SnapshotLink struct {
	ID  string `json:"id,omitempty"`
	URI string `json:"uri"`
}

// SnapshotImage holds image placement metadata (without pixel data).
type SnapshotImage struct {
	ID          uint32 `json:"id"`
	PlacementID uint32 `json:"placement_id"`
	Row         int    `json:"row"`
	Col         int    `json:"col"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	PixelWidth  uint32 `json:"pixel_width"`
	PixelHeight uint32 `json:"pixel_height"`
	ZIndex      int32  `json:"z_index"`
}

// ImageSnapshot holds complete image data for retrieval.
type ImageSnapshot struct {
	ID     uint32 `json:"id"`
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
	Format string `json:"format"` // "rgba" (raw RGBA pixels, base64 encoded)
	Data   string `json:"data"`
}

// GetImageData returns the image data for the given ID, or nil if not found.
func (t *Terminal) GetImageData(id uint32) *ImageSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	img := t.images.Image(id)
	if img == nil {
		return nil
	}

	return &ImageSnapshot{
		ID:     img.ID,
		Width:  img.Width,
		Height: img.Height,
		Format: "rgba",
		Data:   base64.StdEncoding.EncodeToString(img.Data),
	}
}

// Snapshot creates a snapshot of the current terminal state. detail
// controls how much per-cell information is included.
func (t *Terminal) Snapshot(detail SnapshotDetail) *Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	snap := &Snapshot{
		Size: SnapshotSize{Rows: t.rows, Cols: t.cols},
		Cursor: SnapshotCursor{
			Row:     t.active.Cursor.Row,
			Col:     t.active.Cursor.Col,
			Visible: t.active.Cursor.Visible,
			Style:   cursorStyleToString(t.active.Cursor.Style),
		},
		Lines: make([]SnapshotLine, t.rows),
	}

	for row := 0; row < t.rows; row++ {
		snap.Lines[row] = t.snapshotLineLocked(row, detail)
	}

	snap.Images = t.snapshotImagesLocked()

	return snap
}

// snapshotImagesLocked returns all image placements with metadata. Assumes
// t.mu is already held.
func (t *Terminal) snapshotImagesLocked() []SnapshotImage {
	placements := t.images.Placements()
	if len(placements) == 0 {
		return nil
	}

	images := make([]SnapshotImage, 0, len(placements))
	for _, p := range placements {
		img := t.images.Image(p.ImageID)
		if img == nil {
			continue
		}

		images = append(images, SnapshotImage{
			ID:          p.ImageID,
			PlacementID: p.ID,
			Row:         p.Row,
			Col:         p.Col,
			Rows:        p.Rows,
			Cols:        p.Cols,
			PixelWidth:  img.Width,
			PixelHeight: img.Height,
			ZIndex:      p.ZIndex,
		})
	}

	return images
}

// snapshotLineLocked creates a snapshot of a single row. Assumes t.mu is
// already held.
func (t *Terminal) snapshotLineLocked(row int, detail SnapshotDetail) SnapshotLine {
	line := t.active.Grid.Line(row)

	out := SnapshotLine{}
	if line != nil {
		out.Text = trimmedLineString(line)
	}

	switch detail {
	case SnapshotDetailText:
		// Text is already set above.
	case SnapshotDetailStyled:
		out.Segments = t.lineToSegmentsLocked(line)
	case SnapshotDetailFull:
		out.Cells = t.lineToCellsLocked(line)
	}

	return out
}

// lineToSegmentsLocked groups a row's cells into runs sharing the same
// style (spec §6), skipping wide-continuation filler cells.
func (t *Terminal) lineToSegmentsLocked(line *Line) []SnapshotSegment {
	if line == nil {
		return nil
	}

	var segments []SnapshotSegment
	var current *SnapshotSegment
	var currentChars []rune

	for col := 0; col < line.Width(); col++ {
		cell := line.CellAt(col)
		if cell.IsWideContinuation() {
			continue
		}

		fg := colorToHex(cell.Attrs.Foreground, true)
		bg := colorToHex(cell.Attrs.Background, false)
		attrs := cellAttrsToSnapshot(&cell)
		link := t.cellHyperlinkToSnapshotLocked(&cell)

		if current == nil || !segmentMatches(current, fg, bg, attrs, link) {
			if current != nil && len(currentChars) > 0 {
				current.Text = string(currentChars)
				segments = append(segments, *current)
			}
			current = &SnapshotSegment{
				Fg:         fg,
				Bg:         bg,
				Attributes: attrs,
				Hyperlink:  link,
			}
			currentChars = nil
		}

		ch := cell.Char
		if ch == 0 {
			ch = ' '
		}
		currentChars = append(currentChars, ch)
	}

	if current != nil && len(currentChars) > 0 {
		current.Text = string(currentChars)
		segments = append(segments, *current)
	}

	return segments
}

// lineToCellsLocked converts a row to full cell-by-cell snapshot data.
func (t *Terminal) lineToCellsLocked(line *Line) []SnapshotCell {
	if line == nil {
		return nil
	}

	cells := make([]SnapshotCell, 0, line.Width())
	for col := 0; col < line.Width(); col++ {
		cell := line.CellAt(col)

		ch := cell.Char
		if ch == 0 {
			ch = ' '
		}

		cells = append(cells, SnapshotCell{
			Char:       string(ch),
			Fg:         colorToHex(cell.Attrs.Foreground, true),
			Bg:         colorToHex(cell.Attrs.Background, false),
			Attributes: cellAttrsToSnapshot(&cell),
			Hyperlink:  t.cellHyperlinkToSnapshotLocked(&cell),
			Wide:       cell.IsWide(),
			WideSpacer: cell.IsWideContinuation(),
		})
	}

	return cells
}

// segmentMatches reports whether seg's style matches the given style.
func segmentMatches(seg *SnapshotSegment, fg, bg string, attrs SnapshotAttrs, link *SnapshotLink) bool {
	if seg.Fg != fg || seg.Bg != bg {
		return false
	}
	if seg.Attributes != attrs {
		return false
	}
	if seg.Hyperlink == nil && link == nil {
		return true
	}
	if seg.Hyperlink == nil || link == nil {
		return false
	}
	return seg.Hyperlink.URI == link.URI && seg.Hyperlink.ID == link.ID
}

// colorToHex resolves a Color against the default palette and renders it
// as a "#rrggbb" string. A nil Color yields ""; fg picks which default
// applies for DefaultColor.
func colorToHex(c Color, fg bool) string {
	if c == nil {
		return ""
	}
	rgba := ResolveColor(c, fg)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

// cellAttrsToSnapshot extracts a cell's non-color style flags.
func cellAttrsToSnapshot(cell *Cell) SnapshotAttrs {
	return SnapshotAttrs{
		Bold: cell.HasFlag(CellFlagBold),
		Dim:  cell.HasFlag(CellFlagFaint),
		Italic: cell.HasFlag(CellFlagItalic),
		Underline: cell.HasFlag(CellFlagUnderline) ||
			cell.HasFlag(CellFlagDoublyUnderlined) ||
			cell.HasFlag(CellFlagCurlyUnderlined) ||
			cell.HasFlag(CellFlagDottedUnderline) ||
			cell.HasFlag(CellFlagDashedUnderline),
		Blink:         cell.HasFlag(CellFlagBlinking) || cell.HasFlag(CellFlagRapidBlinking),
		Reverse:       cell.HasFlag(CellFlagInverse),
		Hidden:        cell.HasFlag(CellFlagHidden),
		Strikethrough: cell.HasFlag(CellFlagCrossedOut),
		Overline:      cell.HasFlag(CellFlagOverline),
	}
}

// cellHyperlinkToSnapshotLocked resolves a cell's HyperlinkID against the
// terminal's registry. Assumes t.mu is already held.
func (t *Terminal) cellHyperlinkToSnapshotLocked(cell *Cell) *SnapshotLink {
	if cell.Hyperlink == 0 {
		return nil
	}
	link, ok := t.hyperlinks.Lookup(cell.Hyperlink)
	if !ok {
		return nil
	}
	return &SnapshotLink{ID: link.IDHint, URI: link.URI}
}

// cursorStyleToString converts a CursorStyle to its snapshot string form.
func cursorStyleToString(style CursorStyle) string {
	switch style {
	case CursorStyleBlinkingBlock, CursorStyleSteadyBlock:
		return "block"
	case CursorStyleBlinkingUnderline, CursorStyleSteadyUnderline:
		return "underline"
	case CursorStyleBlinkingBar, CursorStyleSteadyBar:
		return "bar"
	default:
		return "block"
	}
}
