package terminal

import "github.com/hnimtadd/vtgrid/terminal/core"

// DeviceStatusReport answers DSR 5: the terminal is OK.
func (t *Terminal) DeviceStatusReport() {
	t.respond("\x1b[0n")
}

// CursorPositionReport answers DSR 6 (or DECXCPR when private) with the
// 1-indexed cursor position, relative to the top margin in origin mode.
func (t *Terminal) CursorPositionReport(private bool) {
	cursor := t.screen.Cursor
	row := cursor.Y + 1
	if t.Modes.Get(core.ModeOrigin) {
		row -= t.scrollingRegion.Top
	}
	if private {
		t.respond("\x1b[?%d;%dR", row, cursor.X+1)
		return
	}
	t.respond("\x1b[%d;%dR", row, cursor.X+1)
}

// PrimaryDeviceAttributes answers DA1: a VT220 with ANSI color.
func (t *Terminal) PrimaryDeviceAttributes() {
	t.respond("\x1b[?62;22c")
}

// SecondaryDeviceAttributes answers DA2: VT220, firmware 10, no ROM
// cartridge.
func (t *Terminal) SecondaryDeviceAttributes() {
	t.respond("\x1b[>1;10;0c")
}

// TextAreaSizeReport answers XTWINOPS 18 with the size in characters.
func (t *Terminal) TextAreaSizeReport() {
	t.respond("\x1b[8;%d;%dt", t.rows, t.cols)
}
