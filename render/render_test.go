package render

import (
	"testing"

	"github.com/hnimtadd/vtgrid/terminal"
	"github.com/hnimtadd/vtgrid/terminal/color"
	"github.com/hnimtadd/vtgrid/terminal/stream"
)

var testGeometry = Geometry{CellWidth: 10, CellHeight: 20, Descender: -4}

// feedTerminal returns a terminal that has consumed input.
func feedTerminal(t *testing.T, cols, rows int, input string) *terminal.Terminal {
	t.Helper()
	term := terminal.NewTerminal(terminal.Options{Cols: cols, Rows: rows})
	stream.NewStream(stream.HandlerFunc(term.Apply), nil).NextSlice([]byte(input))
	return term
}

// terminalWithHistory is 4x2 with two lines in the scrollback.
func terminalWithHistory(t *testing.T) *terminal.Terminal {
	t.Helper()
	term := terminal.NewTerminal(terminal.Options{Cols: 4, Rows: 2, Scrollback: 10})
	stream.NewStream(stream.HandlerFunc(term.Apply), nil).NextSlice([]byte("a\r\nb\r\nc\r\nd"))
	return term
}

func newTestBatcher() *Batcher {
	return NewBatcher(testGeometry, NewGridAtlas(testGeometry, 512), nil)
}

// cellRecords drops the cursor overlay, which is always last.
func cellRecords(b Batch) []Record {
	if len(b.Records) == 0 {
		return nil
	}
	return b.Records[:len(b.Records)-1]
}

func recordAt(t *testing.T, b Batch, row, col int) Record {
	t.Helper()
	for _, r := range cellRecords(b) {
		if r.Row == row && r.Col == col {
			return r
		}
	}
	t.Fatalf("no record at (%d,%d)", row, col)
	return Record{}
}

// stubAtlas misses every glyph.
type stubAtlas struct {
	*GridAtlas
	placeholder bool
	lookups     int
}

func (a *stubAtlas) Glyph(key GlyphKey) (Glyph, bool) {
	a.lookups++
	return Glyph{}, false
}

func (a *stubAtlas) Placeholder() (Glyph, bool) {
	if !a.placeholder {
		return Glyph{}, false
	}
	return a.GridAtlas.Placeholder()
}

func vec4(c color.RGB) [4]float32 { return c.Vec4(1) }
