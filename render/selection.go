package render

import "github.com/hnimtadd/vtgrid/terminal/coordinate"

// Selection is a run of viewport cells, inclusive at both ends, in
// reading order. Start and End may be given in either order.
type Selection struct {
	Start coordinate.Point[int]
	End   coordinate.Point[int]
}

// NewSelection selects from (startRow, startCol) to (endRow, endCol).
func NewSelection(startRow, startCol, endRow, endCol int) *Selection {
	return &Selection{
		Start: coordinate.NewPoint(startCol, startRow),
		End:   coordinate.NewPoint(endCol, endRow),
	}
}

// Contains reports whether the cell at (row, col) is selected. A nil
// selection contains nothing.
func (s *Selection) Contains(row, col int) bool {
	if s == nil {
		return false
	}
	from, to := coordinate.Ordered(s.Start, s.End)
	p := coordinate.NewPoint(col, row)
	return p.Compare(from) >= 0 && p.Compare(to) <= 0
}

// Rows returns the first and last viewport row the selection touches.
func (s *Selection) Rows() (from, to int) {
	start, end := coordinate.Ordered(s.Start, s.End)
	return start.Y, end.Y
}
