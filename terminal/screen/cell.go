package screen

import (
	"strings"

	"github.com/hnimtadd/vtgrid/terminal/style"
)

// MaxCombining caps the zero-width codepoints attached to one cell.
const MaxCombining = 8

type Wide uint8

const (
	// Not a wide character, cell width 1
	WideNarrow Wide = iota

	// WideWide character, cell width 2
	WideWide

	// Spacer after wide character. Do not render
	WideSpacerTail
)

func (w Wide) String() string {
	switch w {
	case WideNarrow:
		return "narrow"
	case WideWide:
		return "wide"
	case WideSpacerTail:
		return "spacer_tail"
	default:
		return "unknown"
	}
}

// Cell is one grid position.
type Cell struct {
	// A single codepoint, zero for an empty cell.
	Codepoint rune
	// Zero-width codepoints that continue the grapheme, in order.
	Combining []rune
	// The wide property of this cell. A wide character is always followed
	// by a spacer tail on the same line.
	Wide  Wide
	Style style.Style
	// Hyperlink id, 0 when the cell is not part of a link.
	Hyperlink uint32
}

// BlankCell is the cell erase operations write: empty, keeping only the
// background of s.
func BlankCell(s style.Style) Cell {
	return Cell{Style: s.Blank()}
}

// The width in grid cells that this cell takes up.
func (c *Cell) Width() int {
	switch c.Wide {
	case WideWide:
		return 2
	case WideSpacerTail:
		return 0
	default:
		return 1
	}
}

func (c *Cell) IsEmpty() bool {
	return c.Codepoint == 0 && len(c.Combining) == 0
}

// HasText is true when the cell has a glyph to draw.
func (c *Cell) HasText() bool {
	return c.Codepoint != 0 && c.Codepoint != ' ' && c.Wide != WideSpacerTail
}

// Text is the cell's grapheme: the codepoint followed by its combining
// marks. Empty cells read as a space.
func (c *Cell) Text() string {
	if c.Codepoint == 0 {
		return " "
	}
	if len(c.Combining) == 0 {
		return string(c.Codepoint)
	}
	var b strings.Builder
	b.WriteRune(c.Codepoint)
	for _, r := range c.Combining {
		b.WriteRune(r)
	}
	return b.String()
}

// AppendCombining attaches r to the cell. It reports false once the cell
// holds MaxCombining marks or has no base codepoint.
func (c *Cell) AppendCombining(r rune) bool {
	if c.Codepoint == 0 || len(c.Combining) >= MaxCombining {
		return false
	}
	c.Combining = append(c.Combining, r)
	return true
}

// Clone copies the cell so it shares no memory with c.
func (c Cell) Clone() Cell {
	if c.Combining != nil {
		c.Combining = append([]rune(nil), c.Combining...)
	}
	return c
}
