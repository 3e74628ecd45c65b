package terminal

import (
	"testing"

	"github.com/hnimtadd/vtgrid/terminal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMode_AltScreen(t *testing.T) {
	tcs := []struct {
		name        string
		input       string
		expectedAlt bool
		expected    string
	}{
		{name: "1049 restores primary and cursor", input: "abc\x1b[?1049hxyz\x1b[?1049lD", expectedAlt: false, expected: "abcD"},
		{name: "1049 clears alt on entry", input: "\x1b[?1049hxyz\x1b[?1049l\x1b[?1049h", expectedAlt: true, expected: ""},
		{name: "1047 clears alt on exit", input: "\x1b[?1047hxyz\x1b[?1047l\x1b[?1047h", expectedAlt: true, expected: ""},
		{name: "47 keeps alt content", input: "\x1b[?47hxyz\x1b[?47l\x1b[?47h", expectedAlt: true, expected: "xyz"},
		{name: "primary content is untouched", input: "abc\x1b[?47h\x1b[2Jxyz\x1b[?47l", expectedAlt: false, expected: "abc"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, 10, 3, 10).feed(tc.input)
			assert.Equal(t, tc.expectedAlt, h.Screen() != h.Primary())
			assert.Equal(t, tc.expectedAlt, h.ModesSnapshot().AltScreen)
			assert.Equal(t, tc.expected, h.PlainString())
		})
	}
}

func TestMode_AltScreenSwitchIsFull(t *testing.T) {
	h := newHarness(t, 10, 3, 0)
	h.TakeFrame()
	h.feed("\x1b[?1049h")
	f := h.TakeFrame()
	assert.True(t, f.Full)
	assert.Len(t, f.Lines, 3)
}

func TestMode_Mouse(t *testing.T) {
	h := newHarness(t, 10, 3, 0).feed("\x1b[?1000h\x1b[?1003h")
	assert.Equal(t, core.MouseTrackingAny, h.ModesSnapshot().Mouse)
	assert.False(t, h.Modes.Get(core.ModeMouseNormal))

	h.feed("\x1b[?1003l")
	assert.Equal(t, core.MouseTrackingNone, h.ModesSnapshot().Mouse)
}

func TestMode_Flags(t *testing.T) {
	tcs := []struct {
		name   string
		input  string
		expect func(t *testing.T, m core.Modes)
	}{
		{
			name:   "bracketed paste",
			input:  "\x1b[?2004h",
			expect: func(t *testing.T, m core.Modes) { assert.True(t, m.BracketedPaste) },
		},
		{
			name:   "application cursor keys",
			input:  "\x1b[?1h",
			expect: func(t *testing.T, m core.Modes) { assert.True(t, m.AppCursor) },
		},
		{
			name:   "keypad via esc",
			input:  "\x1b=",
			expect: func(t *testing.T, m core.Modes) { assert.True(t, m.AppKeypad) },
		},
		{
			name:   "keypad reset via esc",
			input:  "\x1b=\x1b>",
			expect: func(t *testing.T, m core.Modes) { assert.False(t, m.AppKeypad) },
		},
		{
			name:  "several modes in one sequence",
			input: "\x1b[?1004;1006h",
			expect: func(t *testing.T, m core.Modes) {
				assert.True(t, m.FocusEvents)
				assert.True(t, m.MouseSGR)
			},
		},
		{
			name:   "cursor hidden",
			input:  "\x1b[?25l",
			expect: func(t *testing.T, m core.Modes) { assert.False(t, m.CursorVisible) },
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, 10, 3, 0).feed(tc.input)
			tc.expect(t, h.ModesSnapshot())
		})
	}
}

func TestMode_LineFeed(t *testing.T) {
	assert.Equal(t, "a\n b", newHarness(t, 10, 3, 0).feed("a\nb").PlainString())
	assert.Equal(t, "a\nb", newHarness(t, 10, 3, 0).feed("\x1b[20ha\nb").PlainString())
}

func TestMode_SaveCursor(t *testing.T) {
	h := newHarness(t, 10, 3, 0).feed("ab\x1b[?1048h\x1b[3;3H\x1b[?1048lc")
	assert.Equal(t, "abc", h.PlainString())

	h = newHarness(t, 10, 3, 0).feed("\x1b[1m\x1b[3;3H\x1b8")
	x, y := h.cursor()
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
	assert.True(t, h.Screen().Cursor.Style.IsDefault())
}

func TestMode_HostIsNotified(t *testing.T) {
	h := newHarness(t, 10, 3, 0).feed("\x1b[?2004h\x1b[4h\x1b[?9999h")
	require.Len(t, h.host.modes, 2)
	assert.Equal(t, core.ModeBracketedPaste, h.host.modes[0])
	assert.Equal(t, core.ModeInsert, h.host.modes[1])
	assert.Equal(t, uint64(1), h.Stats().UnknownSequences)
}

func TestMode_ReverseVideoForcesFullFrame(t *testing.T) {
	h := newHarness(t, 10, 3, 0)
	h.TakeFrame()
	assert.False(t, h.TakeFrame().Full)

	h.feed("\x1b[?5h")
	f := h.TakeFrame()
	assert.True(t, f.Full)
	assert.True(t, f.Modes.ReverseVideo)
}
