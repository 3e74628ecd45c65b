package screen

import (
	"github.com/hnimtadd/vtgrid/terminal/charset"
	"github.com/hnimtadd/vtgrid/terminal/style"
)

type CursorShape uint8

const (
	CursorShapeBlock CursorShape = iota
	CursorShapeUnderline
	CursorShapeBar
)

func (s CursorShape) String() string {
	switch s {
	case CursorShapeBlock:
		return "block"
	case CursorShapeUnderline:
		return "underline"
	case CursorShapeBar:
		return "bar"
	default:
		return "unknown"
	}
}

// The cursor position and style.
type Cursor struct {
	X           int
	Y           int
	PendingWrap bool // Whether the next print wraps first

	// The current active style, applied to printed cells.
	Style style.Style
	Shape CursorShape
	Blink bool
	// Active hyperlink id, 0 for none.
	Hyperlink uint32
}

// SavedCursor is the state DECSC stores and DECRC restores.
type SavedCursor struct {
	X           int
	Y           int
	PendingWrap bool
	Style       style.Style
	Origin      bool
	Charset     charset.Charset
}
