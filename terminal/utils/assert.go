package utils

import "fmt"

// Assert panics when condition is false. It guards internal invariants only;
// input from the pty must never be able to trip it.
func Assert(condition bool, format string, args ...any) {
	if condition {
		return
	}
	panic("vtgrid: " + fmt.Sprintf(format, args...))
}

// Clamp bounds v to [lo, hi]. When hi < lo, lo wins.
func Clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
