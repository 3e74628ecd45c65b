package render

import (
	"github.com/hnimtadd/vtgrid/logger"
	"github.com/hnimtadd/vtgrid/terminal"
	"github.com/hnimtadd/vtgrid/terminal/color"
	"github.com/hnimtadd/vtgrid/terminal/screen"
)

// Batch is the output of one frame: the records to upload, in row-major
// order with the cursor overlay last.
type Batch struct {
	Records []Record
	// Full batches cover the whole viewport; the consumer drops whatever
	// it kept from earlier batches.
	Full       bool
	Rows, Cols int
	// Placeholders counts cells drawn with the placeholder glyph, or
	// blank, because the atlas missed.
	Placeholders int
}

// IndexBuffer returns the triangle list of every record, with each
// record's four vertices laid out consecutively.
func (b Batch) IndexBuffer() []uint32 {
	out := make([]uint32, 0, 6*len(b.Records))
	for i, r := range b.Records {
		base := uint32(4 * i)
		for _, idx := range r.Indices() {
			out = append(out, base+idx)
		}
	}
	return out
}

// Batcher projects frames into records. A Batcher is not safe for
// concurrent use but needs no lock on the terminal: it only reads frames.
type Batcher struct {
	Geometry  Geometry
	Atlas     Atlas
	// Selection only recolors cells the frame carries. Its rows must be
	// marked dirty whenever it changes; Terminal.MarkRowsDirty does that.
	Selection *Selection
	Theme     Theme
	Logger    logger.Logger
}

// NewBatcher returns a batcher with the default theme.
func NewBatcher(geometry Geometry, atlas Atlas, log logger.Logger) *Batcher {
	return &Batcher{Geometry: geometry, Atlas: atlas, Theme: DefaultTheme, Logger: log}
}

func (b *Batcher) log() logger.Logger {
	if b.Logger == nil {
		return logger.Nop
	}
	return b.Logger
}

// Batch builds a record for every dirty cell of the frame, and one for
// the cursor when it is visible. Atlas misses never fail the batch.
func (b *Batcher) Batch(f terminal.Frame) Batch {
	out := Batch{Full: f.Full, Rows: f.Rows, Cols: f.Cols}
	for _, line := range f.Lines {
		emitted := -1
		for x := range line.Cells {
			if !line.IsDirty(x) {
				continue
			}
			// A spacer tail is drawn by its wide primary.
			if line.Cells[x].Wide == screen.WideSpacerTail {
				if x == 0 || emitted == x-1 || line.Cells[x-1].Wide != screen.WideWide {
					continue
				}
				x--
			}
			out.Records = append(out.Records, b.cell(&out, f, line, x))
			emitted = x
		}
	}
	if r, ok := b.cursor(f); ok {
		out.Records = append(out.Records, r)
	}
	return out
}

func (b *Batcher) cell(out *Batch, f terminal.Frame, line terminal.FrameLine, col int) Record {
	cell := &line.Cells[col]
	span := max(cell.Width(), 1)
	r := Record{Row: line.Row, Col: col}
	r.setRect(position, b.Geometry.cellBox(line.Row, col, span, f.Cols, f.Rows))

	glyph, ok := b.glyph(out, cell)
	if ok {
		r.setRect(tex, glyph.Sprite.rect())
		r.setRect(adjust, b.Geometry.glyphAdjust(glyph, span))
	} else {
		ws := b.Atlas.Utility(UtilityWhiteSpace)
		r.setRect(tex, ws.rect())
	}

	st := cell.Style
	u := b.Atlas.Utility(decoration(st.Underline, st.Strikethrough))
	r.setRect(underline, u.rect())

	fg, bg := b.colors(f, cell, line.Row, col)
	hasColor := float32(0)
	if ok && glyph.HasColor {
		hasColor = 1
	}
	r.set(func(v *Vertex) {
		v.FgColor = fg.Vec4(1)
		v.BgColor = bg.Vec4(b.Theme.BackgroundAlpha)
		v.HasColor = hasColor
	})
	return r
}

// glyph resolves the cell's glyph, falling back to the placeholder. Empty
// cells need no glyph.
func (b *Batcher) glyph(out *Batch, cell *screen.Cell) (Glyph, bool) {
	if !cell.HasText() {
		return Glyph{}, false
	}
	key := GlyphKey{Text: cell.Text(), Bold: cell.Style.Bold, Italic: cell.Style.Italic}
	if glyph, ok := b.Atlas.Glyph(key); ok {
		return glyph, true
	}
	out.Placeholders++
	b.log().Debug("glyph missing from atlas", "text", key.Text, "bold", key.Bold, "italic", key.Italic)
	return b.Atlas.Placeholder()
}

// colors resolves the cell's colors. Inverse, reverse video and
// selection each swap fg and bg; the cell itself is left unchanged.
func (b *Batcher) colors(f terminal.Frame, cell *screen.Cell, row, col int) (fg, bg color.RGB) {
	st := cell.Style
	fg = st.FG(&f.Palette, f.Colors.Foreground, b.Theme.BoldIsBright)
	bg = st.BG(&f.Palette, f.Colors.Background)
	if st.Faint {
		fg = fg.Blend(bg, b.Theme.FaintBlend)
	}
	swap := st.Inverse
	if f.Modes.ReverseVideo {
		swap = !swap
	}
	if b.Selection.Contains(row, col) {
		swap = !swap
	}
	if swap {
		fg, bg = bg, fg
	}
	if st.Invisible {
		fg = bg
	}
	return fg, bg
}

// cursor builds the overlay record for the cursor cell. Only the cursor
// attributes and the position are set; the cell's own record draws the
// rest.
func (b *Batcher) cursor(f terminal.Frame) (Record, bool) {
	c := f.Cursor
	if !c.Visible || c.Y < 0 || c.Y >= f.Rows || c.X < 0 || c.X >= f.Cols {
		return Record{}, false
	}
	col, span := c.X, 1
	for _, line := range f.Lines {
		if line.Row != c.Y {
			continue
		}
		// On a spacer tail the cursor covers the whole wide glyph.
		if cell := line.Cells[col]; cell.Wide == screen.WideSpacerTail && col > 0 {
			col--
		}
		span = max(line.Cells[col].Width(), 1)
		break
	}
	span = min(span, f.Cols-col)

	r := Record{Row: c.Y, Col: col}
	r.setRect(position, b.Geometry.cellBox(c.Y, col, span, f.Cols, f.Rows))
	ws := b.Atlas.Utility(UtilityWhiteSpace)
	r.setRect(tex, ws.rect())
	r.setRect(underline, ws.rect())

	s := b.Atlas.Utility(cursorSprite(c.Shape))
	r.setRect(cursor, s.rect())
	cursorColor := f.Colors.Cursor.Vec4(1)
	r.set(func(v *Vertex) { v.CursorColor = cursorColor })
	return r, true
}

func cursorSprite(shape screen.CursorShape) Utility {
	switch shape {
	case screen.CursorShapeUnderline:
		return UtilityCursorUnderline
	case screen.CursorShapeBar:
		return UtilityCursorBar
	default:
		return UtilityCursorBlock
	}
}
