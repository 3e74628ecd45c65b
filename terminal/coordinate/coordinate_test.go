package coordinate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	tcs := []struct {
		name     string
		a, b     Point[int]
		expected int
	}{
		{name: "equal", a: NewPoint(3, 1), b: NewPoint(3, 1), expected: 0},
		{name: "earlier row wins", a: NewPoint(9, 0), b: NewPoint(0, 1), expected: -1},
		{name: "same row by column", a: NewPoint(5, 2), b: NewPoint(4, 2), expected: 1},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.a.Compare(tc.b))
		})
	}
}

func TestOrdered(t *testing.T) {
	start, end := Ordered(NewPoint(1, 4), NewPoint(7, 2))
	assert.Equal(t, NewPoint(7, 2), start)
	assert.Equal(t, NewPoint(1, 4), end)
}
