package render

// Geometry is the pixel size of one cell and the font metrics the glyph
// placement needs.
type Geometry struct {
	CellWidth  float32
	CellHeight float32
	// Descender is the distance from the baseline to the bottom of the
	// cell, negative as fonts report it.
	Descender float32
	// TopPadding shifts the grid down, leaving room for a header.
	TopPadding float32
}

// Size is the pixel size of a grid of cols by rows cells.
func (g Geometry) Size(cols, rows int) (width, height float32) {
	return float32(cols) * g.CellWidth, float32(rows) * g.CellHeight
}

// cellBox is the quad of span cells starting at (row, col). The projection
// maps the viewport center to the origin, so the top left corner of the
// grid is at (-width/2, -height/2).
func (g Geometry) cellBox(row, col, span, cols, rows int) rect {
	width, height := g.Size(cols, rows)
	left := -width/2 + float32(col)*g.CellWidth
	top := g.TopPadding - height/2 + float32(row)*g.CellHeight
	return rect{left: left, top: top, right: left + float32(span)*g.CellWidth, bottom: top + g.CellHeight}
}

// glyphScale shrinks glyphs that overflow their cells: wider than span
// cells, or taller than one cell.
func (g Geometry) glyphScale(glyph Glyph, span int) float32 {
	switch {
	case glyph.XAdvance/float32(span) > g.CellWidth:
		return float32(span) * g.CellWidth / glyph.XAdvance
	case glyph.Height > g.CellHeight:
		return g.CellHeight / glyph.Height
	default:
		return 1
	}
}

// glyphAdjust is the offset of each edge of the glyph box from the cell
// box.
func (g Geometry) glyphAdjust(glyph Glyph, span int) rect {
	scale := g.glyphScale(glyph, span)
	left := (glyph.XOffset + glyph.BearingX) * scale
	top := g.CellHeight + g.Descender - (glyph.YOffset+glyph.BearingY)*scale
	return rect{
		left:   left,
		top:    top,
		right:  left + glyph.Width*scale - float32(span)*g.CellWidth,
		bottom: top + glyph.Height*scale - g.CellHeight,
	}
}
