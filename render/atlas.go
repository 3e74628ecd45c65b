package render

import (
	"fmt"
	"strconv"

	"github.com/hnimtadd/vtgrid/terminal/sgr"
	"github.com/mitchellh/hashstructure/v2"
)

// GlyphKey identifies a rasterized glyph: the grapheme and the style
// variant it is drawn in.
type GlyphKey struct {
	Text   string
	Bold   bool
	Italic bool
}

// Hash is a stable identity for the key, used as a cache key.
func (k GlyphKey) Hash() string {
	h, err := hashstructure.Hash(k, hashstructure.FormatV2, nil)
	if err != nil {
		// Only unhashable kinds fail; GlyphKey has none.
		return fmt.Sprintf("%q/%t/%t", k.Text, k.Bold, k.Italic)
	}
	return strconv.FormatUint(h, 16)
}

// Sprite is a rectangle of the atlas texture in normalized coordinates.
type Sprite struct {
	Left, Top, Right, Bottom float32
}

func (s Sprite) rect() rect {
	return rect{left: s.Left, top: s.Top, right: s.Right, bottom: s.Bottom}
}

// Glyph is an atlas entry with the metrics needed to place it in a cell.
// Sizes are in pixels.
type Glyph struct {
	Sprite Sprite
	// HasColor marks emoji and other bitmap glyphs.
	HasColor bool
	Width    float32
	Height   float32
	BearingX float32
	BearingY float32
	XOffset  float32
	YOffset  float32
	XAdvance float32
}

// Utility sprites are drawn by the atlas once and shared by every cell.
type Utility uint8

const (
	UtilityWhiteSpace Utility = iota
	UtilitySingleUnderline
	UtilityDoubleUnderline
	UtilityStrikeThrough
	UtilitySingleAndStrike
	UtilityDoubleAndStrike
	UtilityCursorBlock
	UtilityCursorUnderline
	UtilityCursorBar

	utilityCount
)

func (u Utility) String() string {
	switch u {
	case UtilityWhiteSpace:
		return "white_space"
	case UtilitySingleUnderline:
		return "single_underline"
	case UtilityDoubleUnderline:
		return "double_underline"
	case UtilityStrikeThrough:
		return "strike_through"
	case UtilitySingleAndStrike:
		return "single_and_strike"
	case UtilityDoubleAndStrike:
		return "double_and_strike"
	case UtilityCursorBlock:
		return "cursor_block"
	case UtilityCursorUnderline:
		return "cursor_underline"
	case UtilityCursorBar:
		return "cursor_bar"
	default:
		return "unknown"
	}
}

// Atlas resolves glyphs to texture regions. Rasterization and packing
// happen behind it.
type Atlas interface {
	// Glyph looks up a glyph. ok is false on a miss.
	Glyph(key GlyphKey) (glyph Glyph, ok bool)
	// Placeholder is drawn for glyphs the atlas cannot provide.
	Placeholder() (glyph Glyph, ok bool)
	Utility(u Utility) Sprite
}

// decoration picks the utility sprite for an underline style and
// strikethrough. Curly, dotted and dashed are drawn as single.
func decoration(u sgr.UnderlineType, strike bool) Utility {
	switch u {
	case sgr.UnderlineTypeNone:
		if strike {
			return UtilityStrikeThrough
		}
		return UtilityWhiteSpace
	case sgr.UnderlineTypeDouble:
		if strike {
			return UtilityDoubleAndStrike
		}
		return UtilityDoubleUnderline
	default:
		if strike {
			return UtilitySingleAndStrike
		}
		return UtilitySingleUnderline
	}
}
