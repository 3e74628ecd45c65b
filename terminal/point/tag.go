package point

import "github.com/hnimtadd/vtgrid/terminal/coordinate"

// The possible reference locations for a point. "(42, 80)" in the context
// of a terminal could mean multiple things:
// - a cell of the visible viewport
// - a cell of the active area the cursor can address
// - a cell of the whole history
// This tag is used to differentiate those cases.
type Tag int

const (
	// Top-left is the visible viewport. When the user has scrolled back
	// the viewport starts inside the scrollback.
	TagViewport Tag = iota

	// Top-left is the first row of the active area, where a running
	// program can move the cursor and make changes. The active area is
	// always rows tall.
	TagActive

	// Top-left is the oldest scrollback line, bottom-right the last
	// written row of the active area.
	TagScreen

	// Only the scrollback lines, oldest first.
	TagHistory
)

func (t Tag) String() string {
	switch t {
	case TagViewport:
		return "viewport"
	case TagActive:
		return "active"
	case TagScreen:
		return "screen"
	case TagHistory:
		return "history"
	default:
		return "unknown"
	}
}

// An x/y point in the terminal for some definition of location (tag).
type Point struct {
	Tag        Tag
	Coordinate coordinate.Point[int]
}

func New(tag Tag, x, y int) Point {
	return Point{Tag: tag, Coordinate: coordinate.NewPoint(x, y)}
}
