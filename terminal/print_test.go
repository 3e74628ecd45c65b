package terminal

import (
	"testing"

	"github.com/hnimtadd/vtgrid/terminal/screen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrint_Wide(t *testing.T) {
	h := newHarness(t, 10, 3, 0).feed("漢字")

	assert.Equal(t, "漢字", h.PlainString())
	assert.Equal(t, screen.WideWide, h.Screen().Cell(0, 0).Wide)
	assert.Equal(t, screen.WideSpacerTail, h.Screen().Cell(1, 0).Wide)
	assert.Equal(t, screen.WideWide, h.Screen().Cell(2, 0).Wide)
	x, _ := h.cursor()
	assert.Equal(t, 4, x)
}

func TestPrint_WideAtLastColumn(t *testing.T) {
	tcs := []struct {
		name      string
		input     string
		expectedX int
		expectedY int
		wrapped   bool
		row       int
	}{
		{
			name:      "wraps first with autowrap",
			input:     "abcd漢",
			expectedX: 2,
			expectedY: 1,
			wrapped:   true,
			row:       1,
		},
		{
			name:      "dropped without autowrap",
			input:     "\x1b[?7labcd漢",
			expectedX: 4,
			expectedY: 0,
			wrapped:   false,
			row:       -1,
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, 5, 3, 0).feed(tc.input)
			x, y := h.cursor()
			assert.Equal(t, tc.expectedX, x)
			assert.Equal(t, tc.expectedY, y)
			assert.Equal(t, tc.wrapped, h.Screen().Line(0).Wrapped)
			if tc.row >= 0 {
				assert.Equal(t, '漢', h.Screen().Cell(0, tc.row).Codepoint)
			}
			assert.True(t, h.Screen().Cell(4, 0).IsEmpty())
		})
	}
}

func TestPrint_PendingWrap(t *testing.T) {
	tcs := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "autowrap", input: "abcdefg", expected: "abcdefg"},
		{name: "no autowrap overwrites last column", input: "\x1b[?7labcdefg", expected: "abcdg"},
		{name: "carriage return clears pending wrap", input: "abcde\rX", expected: "Xbcde"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, 5, 3, 0).feed(tc.input)
			assert.Equal(t, tc.expected, h.PlainString())
		})
	}
}

func TestPrint_Combining(t *testing.T) {
	tcs := []struct {
		name      string
		input     string
		combining []rune
		expectedX int
	}{
		{name: "acute accent", input: "e\u0301", combining: []rune{'\u0301'}, expectedX: 1},
		{name: "variation selector", input: "\u2764\ufe0f", combining: []rune{'\ufe0f'}, expectedX: 1},
		{name: "text presentation selector", input: "\u2764\ufe0e", combining: []rune{'\ufe0e'}, expectedX: 1},
		{name: "selector then text", input: "\u2764\ufe0fa", combining: []rune{'\ufe0f'}, expectedX: 2},
		{name: "nothing to attach to", input: "\u0301", combining: nil, expectedX: 0},
		{name: "after a wide char", input: "漢\u0301", combining: []rune{'\u0301'}, expectedX: 2},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, 10, 2, 0).feed(tc.input)
			assert.Equal(t, tc.combining, h.Screen().Cell(0, 0).Combining)
			x, _ := h.cursor()
			assert.Equal(t, tc.expectedX, x)
		})
	}
}

func TestPrint_CombiningIsCapped(t *testing.T) {
	input := "a"
	for range screen.MaxCombining + 4 {
		input += "\u0301"
	}
	h := newHarness(t, 10, 2, 0).feed(input)
	assert.Len(t, h.Screen().Cell(0, 0).Combining, screen.MaxCombining)
}

func TestPrint_Modes(t *testing.T) {
	tcs := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "insert mode shifts right", input: "abc\x1b[4h\rX", expected: "Xabc"},
		{name: "replace mode overwrites", input: "abc\x1b[4h\x1b[4l\rX", expected: "Xbc"},
		{name: "dec special graphics", input: "\x1b(0lqkx\x1b(Bq", expected: "┌─┐│q"},
		{name: "repeat previous char", input: "a\x1b[3b", expected: "aaaa"},
		{name: "repeat with nothing printed", input: "\x1b[3b", expected: ""},
		{name: "overwrite half of a wide char", input: "漢\rx", expected: "x"},
		{name: "overwrite spacer of a wide char", input: "漢\x1b[2Gx", expected: " x"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, 10, 2, 0).feed(tc.input)
			assert.Equal(t, tc.expected, h.PlainString())
			for x := range h.Cols() {
				c := h.Screen().Cell(x, 0)
				if c.Wide == screen.WideSpacerTail {
					require.Greater(t, x, 0)
					assert.Equal(t, screen.WideWide, h.Screen().Cell(x-1, 0).Wide, "orphan spacer at %d", x)
				}
			}
		})
	}
}

func TestPrint_StyleAndHyperlinkApplyForward(t *testing.T) {
	h := newHarness(t, 10, 2, 0).feed("a\x1b[1mb\x1b]8;;http://x\x07c\x1b]8;;\x07d")
	s := h.Screen()
	assert.False(t, s.Cell(0, 0).Style.Bold)
	assert.True(t, s.Cell(1, 0).Style.Bold)
	assert.Zero(t, s.Cell(1, 0).Hyperlink)
	assert.NotZero(t, s.Cell(2, 0).Hyperlink)
	assert.Zero(t, s.Cell(3, 0).Hyperlink)
}
