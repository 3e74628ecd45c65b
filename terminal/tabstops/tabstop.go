package tabstops

import (
	"github.com/hnimtadd/vtgrid/terminal/utils"
)

// Interval is the default distance between tab stops.
const Interval = 8

// Tabstops tracks horizontal tab stop columns.
type Tabstops struct {
	cols  int
	stops *utils.StaticBitSet
}

// NewTabstops creates stops for cols columns, one every interval columns.
// An interval of 0 leaves every column clear.
func NewTabstops(cols int, interval int) *Tabstops {
	t := &Tabstops{}
	t.Resize(cols)
	t.Reset(interval)
	return t
}

// Cols is the number of columns tracked.
func (t *Tabstops) Cols() int { return t.cols }

// Set places a stop at col. Out of range columns are ignored.
func (t *Tabstops) Set(col int) {
	if col >= 0 && col < t.cols {
		t.stops.Set(col)
	}
}

// Unset removes the stop at col.
func (t *Tabstops) Unset(col int) {
	if col >= 0 && col < t.cols {
		t.stops.Unset(col)
	}
}

// Get reports whether a stop is set at col.
func (t *Tabstops) Get(col int) bool {
	return col >= 0 && col < t.cols && t.stops.IsSet(col)
}

// Next returns the first stop right of col, or the last column.
func (t *Tabstops) Next(col int) int {
	if next := t.stops.Next(col + 1); next >= 0 {
		return next
	}
	return t.cols - 1
}

// Prev returns the first stop left of col, or column 0.
func (t *Tabstops) Prev(col int) int {
	for c := min(col, t.cols) - 1; c > 0; c-- {
		if t.stops.IsSet(c) {
			return c
		}
	}
	return 0
}

// Resize changes the tracked width. Existing stops that still fit are kept.
func (t *Tabstops) Resize(cols int) {
	stops := utils.NewStaticBitSet(max(cols, 0))
	if t.stops != nil {
		for c := t.stops.Next(0); c >= 0 && c < cols; c = t.stops.Next(c + 1) {
			stops.Set(c)
		}
	}
	t.cols = max(cols, 0)
	t.stops = stops
}

// Clear removes every stop.
func (t *Tabstops) Clear() {
	t.stops.Clear()
}

// Reset clears every stop and then places one every interval columns.
func (t *Tabstops) Reset(interval int) {
	t.stops.Clear()
	if interval <= 0 {
		return
	}
	for c := interval; c < t.cols-1; c += interval {
		t.stops.Set(c)
	}
}
