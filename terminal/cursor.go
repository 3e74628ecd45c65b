package terminal

import (
	"github.com/hnimtadd/vtgrid/terminal/charset"
	"github.com/hnimtadd/vtgrid/terminal/core"
	"github.com/hnimtadd/vtgrid/terminal/screen"
)

// Backspace moves the cursor back a column (but not less than 0).
func (t *Terminal) Backspace() {
	t.SetCursorLeft(1)
}

// CarriageReturn moves cursor to first column of current line
func (t *Terminal) CarriageReturn() {
	t.screen.SetCursorAbs(0, t.screen.Cursor.Y)
}

// LineFeed is an index, plus a carriage return in LNM.
func (t *Terminal) LineFeed() {
	t.Index()
	if t.Modes.Get(core.ModeLineFeed) {
		t.CarriageReturn()
	}
}

// NextLine moves to the first column of the next line, scrolling if needed.
func (t *Terminal) NextLine() {
	t.Index()
	t.CarriageReturn()
}

// Moves the cursor to the next line.
//
// If the cursor is outside of the scrolling region: move the cursor one line
// down if it is not on the bottom-most line of the screen.
//
// If the cursor is inside the scrolling region:
//   - If the cursor is on the bottom-most line of the scrolling region,
//     a scroll up is performed with amount=1
//   - If the cursor is not on the bottom-most line of the scrolling region,
//     move the cursor one line down
//
// This unsets the pending wrap state without wrapping.
func (t *Terminal) Index() {
	cursor := t.screen.Cursor

	// Outside of the scrolling region, we move the cursor one line down.
	if cursor.Y < t.scrollingRegion.Top || cursor.Y > t.scrollingRegion.Bottom {
		t.screen.SetCursorAbs(cursor.X, cursor.Y+1)
		return
	}
	if cursor.Y == t.scrollingRegion.Bottom {
		t.screen.Cursor.PendingWrap = false
		t.ScrollUp(1)
		return
	}
	t.screen.SetCursorAbs(cursor.X, cursor.Y+1)
}

// ReverseIndex moves the cursor to the previous line, possibly scrolling.
//
// If the cursor is on the top-most line of the scrolling region a scroll
// down is performed with amount=1, otherwise it moves one line up (but not
// past the top of the screen).
func (t *Terminal) ReverseIndex() {
	cursor := t.screen.Cursor
	if cursor.Y != t.scrollingRegion.Top {
		t.screen.SetCursorAbs(cursor.X, cursor.Y-1)
		return
	}
	t.screen.Cursor.PendingWrap = false
	t.ScrollDown(1)
}

// SetCursorUp moves the cursor up by offset, stopping at the top margin
// when the cursor starts inside the scrolling region. carriage also moves
// it to column 0.
func (t *Terminal) SetCursorUp(offset int, carriage bool) {
	cursor := t.screen.Cursor
	top := 0
	if cursor.Y >= t.scrollingRegion.Top {
		top = t.scrollingRegion.Top
	}
	x := cursor.X
	if carriage {
		x = 0
	}
	t.screen.SetCursorAbs(x, max(cursor.Y-max(offset, 1), top))
}

// SetCursorDown moves the cursor down by offset, stopping at the bottom
// margin when the cursor starts inside the scrolling region.
func (t *Terminal) SetCursorDown(offset int, carriage bool) {
	cursor := t.screen.Cursor
	bottom := t.rows - 1
	if cursor.Y <= t.scrollingRegion.Bottom {
		bottom = t.scrollingRegion.Bottom
	}
	x := cursor.X
	if carriage {
		x = 0
	}
	t.screen.SetCursorAbs(x, min(cursor.Y+max(offset, 1), bottom))
}

// SetCursorLeft moves the cursor left, stopping at column 0.
func (t *Terminal) SetCursorLeft(offset int) {
	cursor := t.screen.Cursor
	t.screen.SetCursorAbs(cursor.X-max(offset, 1), cursor.Y)
}

// SetCursorRight moves the cursor right, stopping at the last column.
func (t *Terminal) SetCursorRight(offset int) {
	cursor := t.screen.Cursor
	t.screen.SetCursorAbs(cursor.X+max(offset, 1), cursor.Y)
}

// SetCursorPosition move cursor to the position indicated
// by row and col (1-indexed). A 0 row or column is adjusted to 1, and
// positions past the grid are clamped. In origin mode the row is relative
// to the top margin and clamped to the bottom margin.
func (t *Terminal) SetCursorPosition(row, col int) {
	yOffset, yMax := 0, t.rows
	if t.Modes.Get(core.ModeOrigin) {
		yOffset = t.scrollingRegion.Top
		yMax = t.scrollingRegion.Bottom + 1 // 1-indexed
	}
	row, col = max(row, 1), max(col, 1)

	x := max(min(t.cols, col)-1, 0)
	y := max(min(yMax, row+yOffset)-1, 0)
	t.screen.SetCursorAbs(x, y)
}

// SetCursorCol moves the cursor to a 1-indexed column of the current row.
func (t *Terminal) SetCursorCol(col int) {
	t.screen.SetCursorAbs(max(col, 1)-1, t.screen.Cursor.Y)
}

// SetCursorRow moves the cursor to a 1-indexed row, origin relative.
func (t *Terminal) SetCursorRow(row int) {
	t.SetCursorPosition(row, t.screen.Cursor.X+1)
}

// SetCursorRowRelative implements VPR: down by offset, ignoring margins.
func (t *Terminal) SetCursorRowRelative(offset int) {
	cursor := t.screen.Cursor
	t.screen.SetCursorAbs(cursor.X, cursor.Y+max(offset, 1))
}

// TabSet sets a horizontal tab stop at the cursor column.
func (t *Terminal) TabSet() {
	t.tabstops.Set(t.screen.Cursor.X)
}

// TabClear clears the stop at the cursor, or every stop.
func (t *Terminal) TabClear(all bool) {
	if all {
		t.tabstops.Clear()
		return
	}
	t.tabstops.Unset(t.screen.Cursor.X)
}

// SetCursorTabRight moves the cursor to the repeated next tab stop, or to
// the last column if no further tab stops are present on the line.
func (t *Terminal) SetCursorTabRight(repeated int) {
	x := t.screen.Cursor.X
	for range max(repeated, 1) {
		x = t.tabstops.Next(x)
	}
	t.screen.SetCursorAbs(x, t.screen.Cursor.Y)
}

// SetCursorTabLeft moves the cursor to the repeated previous tab stop, or
// to column 0.
func (t *Terminal) SetCursorTabLeft(repeated int) {
	x := t.screen.Cursor.X
	for range max(repeated, 1) {
		x = t.tabstops.Prev(x)
	}
	t.screen.SetCursorAbs(x, t.screen.Cursor.Y)
}

// SaveCursor implements DECSC.
func (t *Terminal) SaveCursor() {
	cursor := t.screen.Cursor
	t.screen.Save(screen.SavedCursor{
		X:           cursor.X,
		Y:           cursor.Y,
		PendingWrap: cursor.PendingWrap,
		Style:       cursor.Style,
		Origin:      t.Modes.Get(core.ModeOrigin),
		Charset:     t.charset,
	})
}

// RestoreCursor implements DECRC. Without a saved cursor it homes the
// cursor and resets the style, origin mode and charset, like xterm.
func (t *Terminal) RestoreCursor() {
	saved := screen.SavedCursor{Charset: charset.ASCII}
	if t.screen.Saved != nil {
		saved = *t.screen.Saved
	}
	t.Modes.Set(core.ModeOrigin, saved.Origin)
	t.charset = saved.Charset
	t.screen.SetCursorAbs(saved.X, saved.Y)
	t.screen.Cursor.Style = saved.Style
	t.screen.Cursor.PendingWrap = saved.PendingWrap
}
