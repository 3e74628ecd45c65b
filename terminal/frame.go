package terminal

import (
	"github.com/hnimtadd/vtgrid/terminal/color"
	"github.com/hnimtadd/vtgrid/terminal/core"
	"github.com/hnimtadd/vtgrid/terminal/screen"
	"github.com/hnimtadd/vtgrid/terminal/utils"
)

// Frame is a snapshot of what changed in the visible viewport since the
// previous frame. It shares no memory with the terminal.
type Frame struct {
	Rows, Cols int
	// Full frames carry every visible line with every cell dirty.
	Full  bool
	Lines []FrameLine

	Cursor  FrameCursor
	Modes   core.Modes
	Palette color.Palette
	Colors  Colors
	Title   string

	// ViewportOffset is how many lines the view is scrolled into the
	// history.
	ViewportOffset int
}

// FrameLine is one visible row. Cells always has Frame.Cols entries.
type FrameLine struct {
	Row     int
	Cells   []screen.Cell
	Wrapped bool
	dirty   *utils.StaticBitSet
}

// IsDirty reports whether the cell at x changed.
func (l FrameLine) IsDirty(x int) bool {
	return l.dirty != nil && x >= 0 && x < l.dirty.Len() && l.dirty.IsSet(x)
}

// DirtyCount is how many cells of the line changed.
func (l FrameLine) DirtyCount() int {
	if l.dirty == nil {
		return 0
	}
	return l.dirty.Count()
}

type FrameCursor struct {
	X, Y int
	// Visible is false when DECTCEM hides the cursor or the viewport is
	// scrolled so that the cursor row is out of view.
	Visible bool
	Shape   screen.CursorShape
	Blink   bool
}

// TakeFrame copies the dirty lines of the viewport and clears exactly
// those markers. The first frame, and every frame after a resize, palette
// change, screen switch or viewport scroll, is full.
func (t *Terminal) TakeFrame() Frame {
	s := t.screen
	full := t.full
	t.full = false

	modes := t.Modes.Snapshot()
	offset := s.ViewportOffset()
	cursor := s.Cursor
	f := Frame{
		Rows:    t.rows,
		Cols:    t.cols,
		Full:    full,
		Modes:   modes,
		Palette: t.palette,
		Colors:  t.colors,
		Title:   t.title,
		Cursor: FrameCursor{
			X:       cursor.X,
			Y:       cursor.Y + offset,
			Visible: modes.CursorVisible && cursor.Y+offset < t.rows,
			Shape:   cursor.Shape,
			Blink:   cursor.Blink || modes.CursorBlink,
		},
		ViewportOffset: offset,
	}

	for y := range t.rows {
		line := s.ViewportLine(y)
		if !full && !line.Dirty() {
			continue
		}
		f.Lines = append(f.Lines, snapshotLine(y, line, t.cols, full))
		line.ClearDirty()
	}
	return f
}

// snapshotLine deep copies a line, padded or truncated to cols. History
// lines keep the width they had when they left the screen.
func snapshotLine(row int, line *screen.Line, cols int, full bool) FrameLine {
	out := FrameLine{
		Row:     row,
		Cells:   make([]screen.Cell, cols),
		Wrapped: line.Wrapped,
		dirty:   utils.NewStaticBitSet(cols),
	}
	for x := range cols {
		if x < line.Len() {
			out.Cells[x] = line.Cells[x].Clone()
		}
		if full || line.IsDirty(x) {
			out.dirty.Set(x)
		}
	}
	// A wide glyph whose spacer was cut off by a narrower history line.
	if last := &out.Cells[cols-1]; last.Wide == screen.WideWide {
		*last = screen.Cell{Style: last.Style.Blank()}
	}
	return out
}

// Invalidate makes the next frame full.
func (t *Terminal) Invalidate() { t.full = true }

// MarkRowsDirty marks every cell of viewport rows [from, to] so the next
// frame carries them. Rows outside the viewport are ignored.
func (t *Terminal) MarkRowsDirty(from, to int) {
	for y := max(from, 0); y <= min(to, t.rows-1); y++ {
		t.screen.ViewportLine(y).MarkAllDirty()
	}
}
