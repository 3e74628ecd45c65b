package terminal

import (
	"slices"
	"testing"

	"github.com/hnimtadd/vtgrid/logger"
	"github.com/hnimtadd/vtgrid/terminal/core"
	"github.com/stretchr/testify/assert"
)

func TestTerminal_InputWithNoControlCharacters(t *testing.T) {
	const rows = 40
	const cols = 40
	term := NewTerminal(Options{
		Cols:   cols,
		Rows:   rows,
		Modes:  core.ModePacked,
		Logger: logger.Nop,
	})

	// Basic grid writing
	input := "hello"
	for c := range slices.Values([]byte(input)) {
		term.Print(rune(c))
	}
	// Check cursor position
	assert.Equal(t, 0, term.Screen().Cursor.Y)
	assert.Equal(t, 5, term.Screen().Cursor.X)

	// Check screen content
	assert.Equal(t, input, term.PlainString())
	// Written row should be dirty
	assert.True(t, term.Screen().Line(0).IsDirty(4))
	term.TakeFrame()
	assert.False(t, term.Screen().Line(1).IsDirty(5))
}

func TestTerminal_InputWithWraparound(t *testing.T) {
	const rows = 40
	const cols = 5

	term := NewTerminal(Options{
		Cols:  cols,
		Rows:  rows,
		Modes: core.ModePacked,
	})

	for _, c := range "helloworldabc12" {
		term.Print(c)
	}

	// Verify cursor position and wrap state
	assert.Equal(t, 2, term.Screen().Cursor.Y, "cursor Y should be 2")
	assert.Equal(t, 4, term.Screen().Cursor.X, "cursor X should be 4")
	assert.True(t, term.Screen().Cursor.PendingWrap, "cursor should be pending wrap")

	assert.True(t, term.Screen().Line(0).Wrapped)
	assert.True(t, term.Screen().Line(1).Wrapped)
	assert.False(t, term.Screen().Line(2).Wrapped)
	// Soft wrapped lines read back as one.
	assert.Equal(t, "helloworldabc12", term.PlainString())
}

func TestTerminal_InputWithBasicWraparoundDirty(t *testing.T) {
	term := NewTerminal(Options{Cols: 5, Rows: 40})
	for _, c := range "hello" {
		term.Print(c)
	}
	assert.True(t, term.Screen().Line(0).IsDirty(4))

	term.TakeFrame()
	term.Print('w')

	// Old row is dirty as we moved from there
	assert.True(t, term.Screen().Line(0).IsDirty(4))
	assert.True(t, term.Screen().Line(1).IsDirty(0))
}

func TestTerminal_InputThatForcesScroll(t *testing.T) {
	term := NewTerminal(Options{Cols: 2, Rows: 3})

	for _, c := range "abcdefgh" {
		term.Print(c)
	}

	assert.Equal(t, 2, term.Screen().Cursor.Y)
	assert.Equal(t, 1, term.Screen().Cursor.X)
	assert.Equal(t, "cdefgh", term.PlainString())
}

func TestTerminal_ZeroWidthCharacterAtStart(t *testing.T) {
	term := NewTerminal(Options{Cols: 30, Rows: 30})
	term.TakeFrame()

	// A zero-width character with nothing to attach to is dropped.
	term.Print('\u200b')

	assert.Equal(t, 0, term.Screen().Cursor.X, "cursor X should be 0")
	assert.Equal(t, 0, term.Screen().Cursor.Y, "cursor Y should be 0")
	// Should not be dirty since we changed nothing.
	assert.False(t, term.Screen().Line(0).IsDirty(0))
}

func TestTerminal_PrintSingleVeryLongLine(t *testing.T) {
	term := NewTerminal(Options{Cols: 5, Rows: 5})

	// We assert the terminal will not crash here.
	assert.NotPanics(t, func() {
		for range 10000 {
			term.Print('x')
		}
	})
}

func TestTerminal_DegenerateSizeIsClamped(t *testing.T) {
	term := NewTerminal(Options{Cols: 0, Rows: -3})
	assert.Equal(t, 2, term.Cols())
	assert.Equal(t, 1, term.Rows())

	term.Resize(1, 0)
	assert.Equal(t, 2, term.Cols())
	assert.Equal(t, 1, term.Rows())
	term.Screen().AssertIntegrity()
}

func TestTerminal_ResizeCountsScrolledOff(t *testing.T) {
	h := newHarness(t, 10, 4, 10).feed("a\r\nb\r\nc\r\nd")

	h.Resize(10, 2)
	assert.Equal(t, uint64(2), h.Stats().ScrolledOff)
	assert.Equal(t, 2, h.Primary().Scrollback().Len())

	h.feed("\x1b[?1049h")
	h.Resize(10, 1)
	assert.Equal(t, uint64(3), h.Stats().ScrolledOff, "the primary screen shrinks under the alt screen")
}

func TestTerminal_Stats(t *testing.T) {
	h := newHarness(t, 10, 2, 10)
	h.feed("\x1b[5z")            // unknown CSI final
	h.feed("\x1b]777;notify\x07") // unknown OSC
	h.feed("\x1bZ")               // DECID, unsupported
	h.feed("\x1bP1$qm\x1b\\")     // DCS passthrough
	h.feed("a\r\nb\r\nc\a")

	stats := h.Stats()
	assert.Equal(t, uint64(4), stats.UnknownSequences)
	assert.Equal(t, uint64(1), stats.ScrolledOff)
	assert.Equal(t, uint64(1), stats.Bells)
	assert.Equal(t, 1, h.host.bells)
}
