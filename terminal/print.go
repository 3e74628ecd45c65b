package terminal

import (
	"unicode"

	"github.com/hnimtadd/vtgrid/terminal/core"
	"github.com/hnimtadd/vtgrid/terminal/screen"
	"github.com/hnimtadd/vtgrid/terminal/utils"
	dw "github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Print writes c at the cursor and advances it.
func (t *Terminal) Print(c rune) {
	// After doing any printing, wrapping, etc. we want to ensure that our
	// display remains in a consistent state.
	defer t.screen.AssertIntegrity()

	if c < 0x80 {
		c = t.charset.Map(c)
	}

	// Determine the width of this character so we can handle
	// non-single-width characters properly. We have a fast-path for ASCII
	// since it is so common. Control characters never reach here.
	width := 1
	switch {
	case c < 0x7F:
	case unicode.Is(unicode.Variation_Selector, c):
		// runewidth gives selectors a column of their own.
		width = 0
	default:
		width = dw.RuneWidth(c)
	}
	utils.Assert(width <= 2, "rune %U has width %d", c, width)

	// Attach zero-width characters to the previous cell.
	if width == 0 {
		t.printZeroWidth(c)
		return
	}
	t.previousChar = c

	cursor := &t.screen.Cursor
	autowrap := t.Modes.Get(core.ModeWraparound)

	// If we're soft-wrapping, then handle that first. Without autowrap the
	// last column is overwritten.
	if cursor.PendingWrap && autowrap {
		t.PrintWrap()
	}

	// A wide char needs two columns. If only one remains we wrap first, or
	// with autowrap off drop the char without moving the cursor; this is
	// how xterm behaves.
	if width == 2 && cursor.X == t.cols-1 {
		if !autowrap {
			return
		}
		t.PrintWrap()
	}

	// If we have insert mode enabled, make room first.
	if t.Modes.Get(core.ModeInsert) && cursor.X+width < t.cols {
		t.screen.CursorLine().InsertBlanks(cursor.X, width, t.blank())
	}

	switch width {
	case 1:
		t.printCell(c, screen.WideNarrow)
	case 2:
		// Wide character requires a spacer. We print this by using two
		// cells: the first is flagged "wide" and has the wide char. The
		// second is a spacer tail.
		t.printCell(c, screen.WideWide)
		cursor.X++
		t.printCell(0, screen.WideSpacerTail)
		cursor.X--
	}

	// If we are at the end of the line, we need to wrap the next time.
	// In this case the cursor stays on the last column.
	if cursor.X+width >= t.cols {
		t.screen.CursorMarkDirty()
		cursor.X = t.cols - 1
		cursor.PendingWrap = true
		return
	}
	cursor.X += width
	t.screen.CursorMarkDirty()
}

// PrintWrap soft wraps: the line is marked wrapped and the cursor moves to
// the start of the next line, scrolling if needed.
func (t *Terminal) PrintWrap() {
	t.screen.CursorLine().Wrapped = true
	t.Index()
	t.screen.SetCursorAbs(0, t.screen.Cursor.Y)
}

func (t *Terminal) printCell(c rune, wide screen.Wide) {
	s := t.screen
	cursor := &s.Cursor
	line := s.CursorLine()
	blank := t.blank()

	// Overwriting half of a wide char clears the other half. The spacer
	// tail was already cleared by its primary.
	switch wide {
	case screen.WideNarrow:
		line.SplitCellBoundary(cursor.X, blank)
		line.SplitCellBoundary(cursor.X+1, blank)
	case screen.WideWide:
		line.SplitCellBoundary(cursor.X, blank)
		line.SplitCellBoundary(cursor.X+2, blank)
	}

	line.Cells[cursor.X] = screen.Cell{
		Codepoint: c,
		Wide:      wide,
		Style:     cursor.Style,
		Hyperlink: cursor.Hyperlink,
	}
	line.MarkDirty(cursor.X)
}

// printZeroWidth appends c to the grapheme in the previous cell when it
// continues it. Other zero-width codepoints are dropped.
func (t *Terminal) printZeroWidth(c rune) {
	cell, x := t.previousCell()
	if cell == nil || cell.IsEmpty() {
		t.logger.Debug("zero-width character with no base, ignoring", "rune", c)
		return
	}
	if uniseg.GraphemeClusterCount(cell.Text()+string(c)) != 1 {
		t.logger.Debug("zero-width character starts a new grapheme, ignoring", "rune", c)
		return
	}
	if !cell.AppendCombining(c) {
		t.logger.Debug("combining limit reached, ignoring", "rune", c, "limit", screen.MaxCombining)
		return
	}
	line := t.screen.CursorLine()
	line.MarkDirty(x)
	if cell.Wide == screen.WideWide {
		line.MarkDirty(x + 1)
	}
}

// previousCell is the cell the last print wrote and its column, or nil at
// column 0.
func (t *Terminal) previousCell() (*screen.Cell, int) {
	cursor := t.screen.Cursor
	x := cursor.X
	if !cursor.PendingWrap {
		x--
	}
	if x < 0 {
		return nil, -1
	}
	line := t.screen.CursorLine()
	if line.Cells[x].Wide == screen.WideSpacerTail && x > 0 {
		x--
	}
	return &line.Cells[x], x
}

// PrintRepeat implements REP: the last printed character is printed
// repeated more times.
func (t *Terminal) PrintRepeat(repeated int) {
	if t.previousChar == 0 {
		return
	}
	for range repeated {
		t.Print(t.previousChar)
	}
}
