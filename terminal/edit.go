package terminal

import (
	"github.com/hnimtadd/vtgrid/terminal/screen"
	"github.com/hnimtadd/vtgrid/terminal/sequences/csi"
)

// EraseInDisplay erases part of the display. Erased cells take the current
// background. EDModeScrollback clears the history instead.
func (t *Terminal) EraseInDisplay(mode csi.EDMode) {
	s := t.screen
	cursor := s.Cursor
	blank := t.blank()
	s.Cursor.PendingWrap = false

	switch mode {
	case csi.EDModeBelow:
		t.EraseInLine(csi.ELModeRight)
		s.ClearLines(cursor.Y+1, t.rows, blank)
	case csi.EDModeAbove:
		s.ClearLines(0, cursor.Y, blank)
		t.EraseInLine(csi.ELModeLeft)
	case csi.EDModeComplete:
		s.ClearLines(0, t.rows, blank)
	case csi.EDModeScrollback:
		if sb := s.Scrollback(); sb != nil {
			sb.Clear()
		}
		s.ResetViewport()
		t.full = true
	default:
		t.logger.Debug("unknown erase display mode", "mode", mode)
	}
}

// EraseInLine erases part of the cursor line.
func (t *Terminal) EraseInLine(mode csi.ELMode) {
	s := t.screen
	line := s.CursorLine()
	blank := t.blank()
	s.Cursor.PendingWrap = false

	switch mode {
	case csi.ELModeRight:
		line.Fill(s.Cursor.X, t.cols, blank)
		line.Wrapped = false
	case csi.ELModeLeft:
		line.Fill(0, s.Cursor.X+1, blank)
	case csi.ELModeAll:
		line.Reset(blank)
	default:
		t.logger.Debug("unknown erase line mode", "mode", mode)
	}
}

// EraseChars blanks repeated cells from the cursor without moving it.
func (t *Terminal) EraseChars(repeated int) {
	s := t.screen
	s.Cursor.PendingWrap = false
	s.CursorLine().Fill(s.Cursor.X, s.Cursor.X+max(repeated, 1), t.blank())
}

// InsertBlanks inserts blanks repeated time start at the current cursor
// position, shifting the rest of the line right.
func (t *Terminal) InsertBlanks(repeated int) {
	s := t.screen
	s.Cursor.PendingWrap = false
	s.CursorLine().InsertBlanks(s.Cursor.X, max(repeated, 1), t.blank())
}

// DeleteChars deletes repeated chars at the cursor, shifting the rest of
// the line left.
func (t *Terminal) DeleteChars(repeated int) {
	s := t.screen
	s.Cursor.PendingWrap = false
	s.CursorLine().DeleteCells(s.Cursor.X, max(repeated, 1), t.blank())
}

// Insert line repeated time at the current cursor row. The content of the
// line at the current cursor row and below (to the bottom-most line in the
// scrolling region) are shifted down by amount lines.
//
// If the current cursor position is outside of the current scroll region it
// does nothing. Otherwise the cursor moves to column 0.
func (t *Terminal) InsertLines(repeated int) {
	y := t.screen.Cursor.Y
	if y < t.scrollingRegion.Top || y > t.scrollingRegion.Bottom {
		return
	}
	t.screen.ScrollDown(y, t.scrollingRegion.Bottom, max(repeated, 1), t.blank())
	t.screen.SetCursorAbs(0, y)
}

// DeleteLines removes repeated lines at the cursor row, shifting the lines
// below (to the bottom of the scrolling region) up. Deleted lines never
// enter the scrollback.
func (t *Terminal) DeleteLines(repeated int) {
	y := t.screen.Cursor.Y
	if y < t.scrollingRegion.Top || y > t.scrollingRegion.Bottom {
		return
	}
	t.screen.ScrollUp(y, t.scrollingRegion.Bottom, max(repeated, 1), t.blank(), false)
	t.screen.SetCursorAbs(0, y)
}

// ScrollUp removes repeated lines from the top of the scroll region. The
// remaining lines are shifted up and blank lines fill the bottom. Removed
// lines enter the scrollback only when the region spans the full grid and
// the primary screen is active.
//
// Does not change the cursor position.
func (t *Terminal) ScrollUp(repeated int) {
	toHistory := t.regionIsFull() && t.screen == t.primary
	pushed := t.screen.ScrollUp(
		t.scrollingRegion.Top,
		t.scrollingRegion.Bottom,
		max(repeated, 1),
		t.blank(),
		toHistory,
	)
	t.stats.ScrolledOff += uint64(pushed)
}

// ScrollDown shifts the scroll region down by repeated lines.
func (t *Terminal) ScrollDown(repeated int) {
	t.screen.ScrollDown(
		t.scrollingRegion.Top,
		t.scrollingRegion.Bottom,
		max(repeated, 1),
		t.blank(),
	)
}

// SetTopAndBottomMargin implements DECSTBM with 1-indexed rows; 0 means
// the screen edge. Invalid margins are ignored. The cursor moves home.
func (t *Terminal) SetTopAndBottomMargin(top, bottom int) {
	if top == 0 {
		top = 1
	}
	if bottom == 0 || bottom > t.rows {
		bottom = t.rows
	}
	if top >= bottom {
		t.logger.Debug("invalid scroll region, ignoring", "top", top, "bottom", bottom)
		return
	}
	t.scrollingRegion = ScrollingRegion{Top: top - 1, Bottom: bottom - 1}
	t.SetCursorPosition(1, 1)
}

// DecAlignmentTest implements DECALN: the screen fills with 'E', margins
// reset and the cursor moves home.
func (t *Terminal) DecAlignmentTest() {
	t.resetScrollingRegion()
	s := t.screen
	for y := range t.rows {
		line := s.Line(y)
		line.Reset(screen.Cell{})
		for x := range line.Cells {
			line.Cells[x].Codepoint = 'E'
		}
	}
	s.SetCursorAbs(0, 0)
}
