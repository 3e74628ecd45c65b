package utils

import "math"

// AppendDigit returns acc*10+digit, saturating at math.MaxUint16. The second
// return value reports whether saturation happened.
func AppendDigit(acc uint16, digit uint8) (uint16, bool) {
	v := uint32(acc)*10 + uint32(digit)
	if v > math.MaxUint16 {
		return math.MaxUint16, true
	}
	return uint16(v), false
}

// SaturatingAdd adds two non-negative ints without overflowing past limit.
func SaturatingAdd(a, b, limit int) int {
	if a > limit-b {
		return limit
	}
	return a + b
}
