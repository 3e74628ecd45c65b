package screen

import (
	"strings"

	"github.com/hnimtadd/vtgrid/terminal/utils"
)

// Line is one row of cells plus a dirty marker per cell.
type Line struct {
	Cells []Cell
	// Wrapped is set when the line was soft wrapped into the next one.
	Wrapped bool

	dirty *utils.StaticBitSet
}

// NewLine creates a line of blank cells, fully dirty.
func NewLine(cols int, blank Cell) *Line {
	l := &Line{
		Cells: make([]Cell, cols),
		dirty: utils.NewStaticBitSetFull(cols),
	}
	for i := range l.Cells {
		l.Cells[i] = blank
	}
	return l
}

func (l *Line) Len() int { return len(l.Cells) }

func (l *Line) MarkDirty(x int) {
	if x >= 0 && x < len(l.Cells) {
		l.dirty.Set(x)
	}
}

// MarkDirtyRange marks [from, to).
func (l *Line) MarkDirtyRange(from, to int) {
	from = max(from, 0)
	to = min(to, len(l.Cells))
	if from < to {
		l.dirty.SetRange(from, to)
	}
}

func (l *Line) MarkAllDirty() {
	l.dirty.SetRange(0, len(l.Cells))
}

func (l *Line) IsDirty(x int) bool {
	return x >= 0 && x < len(l.Cells) && l.dirty.IsSet(x)
}

// Dirty reports whether any cell of the line is dirty.
func (l *Line) Dirty() bool {
	return l.dirty.Any()
}

// NextDirty returns the first dirty column at or after from, or -1.
func (l *Line) NextDirty(from int) int {
	return l.dirty.Next(from)
}

func (l *Line) ClearDirty() {
	l.dirty.Clear()
}

// Fill writes blank over [from, to). Wide glyphs cut by either edge are
// blanked whole.
func (l *Line) Fill(from, to int, blank Cell) {
	from = max(from, 0)
	to = min(to, len(l.Cells))
	if from >= to {
		return
	}
	l.SplitCellBoundary(from, blank)
	l.SplitCellBoundary(to, blank)
	for x := from; x < to; x++ {
		l.Cells[x] = blank
	}
	l.dirty.SetRange(from, to)
}

// Reset blanks the whole line and forgets its wrap state.
func (l *Line) Reset(blank Cell) {
	l.Fill(0, len(l.Cells), blank)
	l.Wrapped = false
}

// Clean up boundary conditions where a cell will become discontiguous with
// a neighboring cell because one of them will be moved or cleared.
//
// x is the boundary between x-1 and x. It is okay if x is out of bounds by
// one. When x-1 is a wide character and x its spacer tail, both cells are
// blanked.
func (l *Line) SplitCellBoundary(x int, blank Cell) {
	if x <= 0 || x >= len(l.Cells) {
		return
	}
	if l.Cells[x].Wide != WideSpacerTail {
		return
	}
	l.Cells[x-1] = blank
	l.Cells[x] = blank
	l.dirty.SetRange(x-1, x+1)
}

// InsertBlanks shifts the cells from x right by n, dropping what falls off
// the end, and blanks the gap.
func (l *Line) InsertBlanks(x, n int, blank Cell) {
	cols := len(l.Cells)
	if x < 0 || x >= cols || n <= 0 {
		return
	}
	n = min(n, cols-x)
	l.SplitCellBoundary(x, blank)
	// The glyph at the cut point moves off the line.
	l.SplitCellBoundary(cols-n, blank)
	copy(l.Cells[x+n:], l.Cells[x:cols-n])
	for i := x; i < x+n; i++ {
		l.Cells[i] = blank
	}
	l.dirty.SetRange(x, cols)
}

// DeleteCells removes n cells at x, shifting the rest left and blanking
// the end of the line.
func (l *Line) DeleteCells(x, n int, blank Cell) {
	cols := len(l.Cells)
	if x < 0 || x >= cols || n <= 0 {
		return
	}
	n = min(n, cols-x)
	l.SplitCellBoundary(x, blank)
	l.SplitCellBoundary(x+n, blank)
	copy(l.Cells[x:], l.Cells[x+n:])
	for i := cols - n; i < cols; i++ {
		l.Cells[i] = blank
	}
	l.dirty.SetRange(x, cols)
}

// Resize truncates or pads the line to cols. A wide glyph whose spacer
// would be cut off is blanked. The whole line is marked dirty.
func (l *Line) Resize(cols int, blank Cell) {
	switch {
	case cols < len(l.Cells):
		l.Cells = l.Cells[:cols:cols]
		if cols > 0 && l.Cells[cols-1].Wide == WideWide {
			l.Cells[cols-1] = blank
		}
		l.Wrapped = false
	case cols > len(l.Cells):
		old := len(l.Cells)
		l.Cells = append(l.Cells, make([]Cell, cols-old)...)
		for i := old; i < cols; i++ {
			l.Cells[i] = blank
		}
	}
	l.dirty = utils.NewStaticBitSetFull(cols)
}

// Clone deep copies the line, dirty markers included.
func (l *Line) Clone() *Line {
	out := &Line{
		Cells:   make([]Cell, len(l.Cells)),
		Wrapped: l.Wrapped,
		dirty:   utils.NewStaticBitSet(len(l.Cells)),
	}
	for i, c := range l.Cells {
		out.Cells[i] = c.Clone()
		if l.dirty.IsSet(i) {
			out.dirty.Set(i)
		}
	}
	return out
}

// String returns the text of the line with trailing blanks trimmed.
func (l *Line) String() string {
	return strings.TrimRight(l.text(), " ")
}

func (l *Line) text() string {
	var b strings.Builder
	for i := range l.Cells {
		c := &l.Cells[i]
		if c.Wide == WideSpacerTail {
			continue
		}
		b.WriteString(c.Text())
	}
	return b.String()
}
