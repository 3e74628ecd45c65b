package terminal

import (
	"testing"

	"github.com/hnimtadd/vtgrid/terminal/color"
	"github.com/stretchr/testify/assert"
)

func TestReports(t *testing.T) {
	tcs := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "dsr", input: "\x1b[5n", expected: "\x1b[0n"},
		{name: "cpr", input: "\x1b[3;4H\x1b[6n", expected: "\x1b[3;4R"},
		{name: "cpr in origin mode", input: "\x1b[2;4r\x1b[?6h\x1b[2;1H\x1b[6n", expected: "\x1b[2;1R"},
		{name: "decxcpr", input: "\x1b[?6n", expected: "\x1b[?1;1R"},
		{name: "da1", input: "\x1b[c", expected: "\x1b[?62;22c"},
		{name: "da1 with zero", input: "\x1b[0c", expected: "\x1b[?62;22c"},
		{name: "da2", input: "\x1b[>c", expected: "\x1b[>1;10;0c"},
		{name: "text area size", input: "\x1b[18t", expected: "\x1b[8;5;10t"},
		{name: "fg query", input: "\x1b]10;?\x07", expected: "\x1b]10;" + color.DefaultForeground.XSpec() + "\x07"},
		{name: "bg query with st", input: "\x1b]11;?\x1b\\", expected: "\x1b]11;" + color.DefaultBackground.XSpec() + "\x1b\\"},
		{name: "palette query", input: "\x1b]4;1;?\x07", expected: "\x1b]4;1;" + color.DefaultPalette[1].XSpec() + "\x07"},
		{name: "palette query after set", input: "\x1b]4;1;#102030\x07\x1b]4;1;?\x07", expected: "\x1b]4;1;rgb:1010/2020/3030\x07"},
		{name: "unsupported request is silent", input: "\x1b[14t\x1b[7n", expected: ""},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, 10, 5, 0).feed(tc.input)
			assert.Equal(t, tc.expected, h.out.String())
		})
	}
}

func TestReports_NoWriter(t *testing.T) {
	term := NewTerminal(Options{Cols: 10, Rows: 5})
	assert.NotPanics(t, func() { term.DeviceStatusReport() })
}
