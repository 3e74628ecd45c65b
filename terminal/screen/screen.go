package screen

import (
	"io"
	"strings"

	"github.com/hnimtadd/vtgrid/terminal/point"
	"github.com/hnimtadd/vtgrid/terminal/utils"
)

// Screen is a rows x cols grid of lines with a cursor. The primary screen
// owns a scrollback; the alternate screen has none.
type Screen struct {
	Cursor Cursor
	// Saved is set by DECSC, nil until then.
	Saved *SavedCursor

	lines      []*Line
	rows, cols int

	scrollback *Scrollback
	// viewport is how many scrollback lines the view is scrolled up by;
	// 0 follows the active area.
	viewport int
}

// Initialize a new screen. scrollback <= 0 disables history.
func NewScreen(cols, rows, scrollback int) *Screen {
	s := &Screen{
		lines: make([]*Line, rows),
		rows:  rows,
		cols:  cols,
	}
	for y := range s.lines {
		s.lines[y] = NewLine(cols, Cell{})
	}
	if scrollback > 0 {
		s.scrollback = NewScrollback(scrollback)
	}
	return s
}

// Assert that the screen is in a consistent state.
func (s *Screen) AssertIntegrity() {
	utils.Assert(len(s.lines) == s.rows, "screen has %d lines, want %d", len(s.lines), s.rows)
	utils.Assert(s.Cursor.X >= 0 && s.Cursor.X < s.cols, "cursor x %d out of [0,%d)", s.Cursor.X, s.cols)
	utils.Assert(s.Cursor.Y >= 0 && s.Cursor.Y < s.rows, "cursor y %d out of [0,%d)", s.Cursor.Y, s.rows)
	for y, l := range s.lines {
		utils.Assert(l.Len() == s.cols, "line %d has %d cells, want %d", y, l.Len(), s.cols)
	}
}

func (s *Screen) Rows() int { return s.rows }
func (s *Screen) Cols() int { return s.cols }

// Scrollback returns the history, nil when the screen keeps none.
func (s *Screen) Scrollback() *Scrollback { return s.scrollback }

// Line returns row y of the active area.
func (s *Screen) Line(y int) *Line { return s.lines[y] }

func (s *Screen) Cell(x, y int) *Cell { return &s.lines[y].Cells[x] }

// CursorLine returns the line the cursor is on.
func (s *Screen) CursorLine() *Line { return s.lines[s.Cursor.Y] }

// CursorMarkDirty marks the cell under the cursor, and its wide partner.
func (s *Screen) CursorMarkDirty() {
	l := s.lines[s.Cursor.Y]
	x := s.Cursor.X
	l.MarkDirty(x)
	switch l.Cells[x].Wide {
	case WideWide:
		l.MarkDirty(x + 1)
	case WideSpacerTail:
		l.MarkDirty(x - 1)
	}
}

// SetCursorAbs moves the cursor, clamped to the grid, and clears the
// pending wrap. Both the old and the new cell become dirty.
func (s *Screen) SetCursorAbs(x, y int) {
	s.CursorMarkDirty()
	s.Cursor.X = utils.Clamp(x, 0, s.cols-1)
	s.Cursor.Y = utils.Clamp(y, 0, s.rows-1)
	s.Cursor.PendingWrap = false
	s.CursorMarkDirty()
}

// ScrollUp shifts the lines of [top, bottom] up by n. The lines leaving the
// top are pushed to the scrollback when toHistory is set and the screen
// keeps one, otherwise dropped. Blank lines fill the bottom.
// It returns how many lines entered the scrollback.
func (s *Screen) ScrollUp(top, bottom, n int, blank Cell, toHistory bool) int {
	if top < 0 || bottom >= s.rows || top > bottom || n <= 0 {
		return 0
	}
	n = min(n, bottom-top+1)
	region := s.lines[top : bottom+1]
	pushed := 0
	if toHistory && s.scrollback != nil {
		for i := range n {
			s.scrollback.Push(region[i])
			region[i] = NewLine(s.cols, blank)
			pushed++
		}
		if s.viewport > 0 {
			s.viewport = min(s.viewport+pushed, s.scrollback.Len())
		}
	}
	utils.RotateLeft(region, n)
	for _, l := range region[len(region)-n:] {
		l.Reset(blank)
	}
	for _, l := range region {
		l.MarkAllDirty()
	}
	return pushed
}

// ScrollDown shifts the lines of [top, bottom] down by n, dropping those
// pushed past bottom. Blank lines fill the top.
func (s *Screen) ScrollDown(top, bottom, n int, blank Cell) {
	if top < 0 || bottom >= s.rows || top > bottom || n <= 0 {
		return
	}
	n = min(n, bottom-top+1)
	region := s.lines[top : bottom+1]
	utils.RotateRight(region, n)
	for _, l := range region[:n] {
		l.Reset(blank)
	}
	for _, l := range region {
		l.MarkAllDirty()
	}
}

// ClearLines blanks the rows [from, to).
func (s *Screen) ClearLines(from, to int, blank Cell) {
	for y := max(from, 0); y < min(to, s.rows); y++ {
		s.lines[y].Reset(blank)
	}
}

// MarkAllDirty marks every cell of the active area.
func (s *Screen) MarkAllDirty() {
	for _, l := range s.lines {
		l.MarkAllDirty()
	}
}

// Resize the screen without any reflow. Lines are truncated or padded to
// cols. When rows shrink, lines above the cursor leave through the top
// (into the scrollback, if kept) so the cursor row survives; remaining
// excess is cut from the bottom. When rows grow, blank lines are appended.
// Sizes are clamped to at least 2 columns and 1 row. It returns how many
// lines went into the scrollback.
func (s *Screen) Resize(cols, rows int, blank Cell) int {
	cols = max(cols, 2)
	rows = max(rows, 1)
	if cols != s.cols || rows != s.rows {
		s.Cursor.PendingWrap = false
	}

	for _, l := range s.lines {
		l.Resize(cols, blank)
	}
	s.cols = cols

	pushed := 0
	if rows < s.rows {
		shift := max(0, s.Cursor.Y+1-rows)
		for _, l := range s.lines[:shift] {
			if s.scrollback != nil {
				s.scrollback.Push(l)
				pushed++
			}
		}
		s.lines = append([]*Line(nil), s.lines[shift:shift+rows]...)
		s.Cursor.Y -= shift
		if s.Saved != nil {
			s.Saved.Y -= shift
		}
	}
	for len(s.lines) < rows {
		s.lines = append(s.lines, NewLine(cols, blank))
	}
	s.rows = rows

	s.Cursor.X = utils.Clamp(s.Cursor.X, 0, cols-1)
	s.Cursor.Y = utils.Clamp(s.Cursor.Y, 0, rows-1)
	if s.Saved != nil {
		s.Saved.X = utils.Clamp(s.Saved.X, 0, cols-1)
		s.Saved.Y = utils.Clamp(s.Saved.Y, 0, rows-1)
	}
	if s.scrollback != nil {
		s.viewport = min(s.viewport, s.scrollback.Len())
	}
	s.MarkAllDirty()
	return pushed
}

// ScrollViewport moves the view delta lines into the history (positive) or
// back toward the active area (negative). It reports whether the view
// moved.
func (s *Screen) ScrollViewport(delta int) bool {
	if s.scrollback == nil {
		return false
	}
	next := utils.Clamp(s.viewport+delta, 0, s.scrollback.Len())
	if next == s.viewport {
		return false
	}
	s.viewport = next
	return true
}

// ResetViewport snaps the view back to the active area.
func (s *Screen) ResetViewport() bool {
	if s.viewport == 0 {
		return false
	}
	s.viewport = 0
	return true
}

// ViewportOffset is how many lines the view is scrolled back.
func (s *Screen) ViewportOffset() int { return s.viewport }

// ViewportLine returns row y of the visible viewport.
func (s *Screen) ViewportLine(y int) *Line {
	if y < s.viewport {
		return s.scrollback.Line(s.scrollback.Len() - s.viewport + y)
	}
	return s.lines[y-s.viewport]
}

// Reset the screen according to the logic of DEC RIS sequence.
//
// - Clear the screen and its scrollback
// - Moves the cursor to the top left corner with the default style
func (s *Screen) Reset() {
	s.ClearLines(0, s.rows, Cell{})
	if s.scrollback != nil {
		s.scrollback.Clear()
	}
	s.viewport = 0
	s.Cursor = Cursor{}
	s.Saved = nil
	s.MarkAllDirty()
}

// Save records the cursor for DECRC.
func (s *Screen) Save(saved SavedCursor) {
	s.Saved = &saved
}

// Dump the lines addressed by tag as text. Soft wrapped lines are joined,
// hard breaks become "\n", and trailing empty lines are dropped.
func (s *Screen) DumpString(w io.Writer, tag point.Tag) error {
	var lines []*Line
	history := func() {
		if s.scrollback == nil {
			return
		}
		for i := range s.scrollback.Len() {
			lines = append(lines, s.scrollback.Line(i))
		}
	}
	switch tag {
	case point.TagViewport:
		for y := range s.rows {
			lines = append(lines, s.ViewportLine(y))
		}
	case point.TagActive:
		lines = s.lines
	case point.TagScreen:
		history()
		lines = append(lines, s.lines...)
	case point.TagHistory:
		history()
	}

	var b strings.Builder
	pending := 0
	for i, l := range lines {
		text := l.String()
		if l.Wrapped {
			text = l.text()
		}
		if text == "" {
			pending++
			continue
		}
		for ; pending > 0; pending-- {
			b.WriteByte('\n')
		}
		b.WriteString(text)
		if i < len(lines)-1 {
			if l.Wrapped {
				continue
			}
			pending++
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// String dumps the active area.
func (s *Screen) String() string {
	var b strings.Builder
	_ = s.DumpString(&b, point.TagActive)
	return b.String()
}
