package style

import (
	"fmt"

	"github.com/hnimtadd/vtgrid/terminal/color"
	"github.com/hnimtadd/vtgrid/terminal/sgr"
)

// Style attribute for a cell.
type Style struct {
	ForegroundColor Color
	BackgroundColor Color
	UnderlineColor  Color

	Bold          bool
	Italic        bool
	Faint         bool
	Blink         bool
	Inverse       bool
	Invisible     bool
	Strikethrough bool
	Overline      bool
	Underline     sgr.UnderlineType
}

// Apply folds one SGR attribute into the style.
func (s *Style) Apply(attr sgr.Attribute) {
	switch attr.Type {
	case sgr.AttributeTypeUnset:
		s.Reset()
	case sgr.AttributeTypeBold:
		s.Bold = true
	case sgr.AttributeTypeResetBold:
		s.Bold = false
		s.Faint = false
	case sgr.AttributeTypeItalic:
		s.Italic = true
	case sgr.AttributeTypeResetItalic:
		s.Italic = false
	case sgr.AttributeTypeFaint:
		s.Faint = true
	case sgr.AttributeTypeUnderline:
		s.Underline = attr.Underline
	case sgr.AttributeTypeResetUnderline:
		s.Underline = sgr.UnderlineTypeNone
	case sgr.AttributeTypeUnderlineColor:
		s.UnderlineColor = RGBColor(attr.RGB)
	case sgr.AttributeTypeIndexedUnderlineColor:
		s.UnderlineColor = PaletteColor(attr.Index)
	case sgr.AttributeTypeResetUnderlineColor:
		s.UnderlineColor = Color{}
	case sgr.AttributeTypeOverline:
		s.Overline = true
	case sgr.AttributeTypeResetOverline:
		s.Overline = false
	case sgr.AttributeTypeBlink:
		s.Blink = true
	case sgr.AttributeTypeResetBlink:
		s.Blink = false
	case sgr.AttributeTypeInverse:
		s.Inverse = true
	case sgr.AttributeTypeResetInverse:
		s.Inverse = false
	case sgr.AttributeTypeInvisible:
		s.Invisible = true
	case sgr.AttributeTypeResetInvisible:
		s.Invisible = false
	case sgr.AttributeTypeStrikethrough:
		s.Strikethrough = true
	case sgr.AttributeTypeResetStrikethrough:
		s.Strikethrough = false
	case sgr.AttributeTypeDirectColorFg:
		s.ForegroundColor = RGBColor(attr.RGB)
	case sgr.AttributeTypeDirectColorBg:
		s.BackgroundColor = RGBColor(attr.RGB)
	case sgr.AttributeTypeIndexedFg:
		s.ForegroundColor = PaletteColor(attr.Index)
	case sgr.AttributeTypeIndexedBg:
		s.BackgroundColor = PaletteColor(attr.Index)
	case sgr.AttributeTypeResetFg:
		s.ForegroundColor = Color{}
	case sgr.AttributeTypeResetBg:
		s.BackgroundColor = Color{}
	}
}

// FG resolves the foreground against a palette. Bold promotes the first 8
// palette entries to their bright variants when boldIsBright is set.
func (s Style) FG(palette *color.Palette, def color.RGB, boldIsBright bool) color.RGB {
	switch s.ForegroundColor.Type {
	case ColorTypePalette:
		idx := s.ForegroundColor.Palette
		if boldIsBright && s.Bold && idx < uint8(color.BrightBlack) {
			idx += uint8(color.BrightBlack)
		}
		return palette[idx]
	case ColorTypeRGB:
		return s.ForegroundColor.RGB
	default:
		return def
	}
}

// BG resolves the background against a palette.
func (s Style) BG(palette *color.Palette, def color.RGB) color.RGB {
	return s.BackgroundColor.Resolve(palette, def)
}

// Blank is the style erased cells take: the background survives, every
// other attribute is dropped.
func (s Style) Blank() Style {
	return Style{BackgroundColor: s.BackgroundColor}
}

func (s *Style) Reset() {
	*s = Style{}
}

func (s Style) IsDefault() bool {
	return s == Style{}
}

// Color is a style color. The source is kept so palette changes apply to
// cells that reference a palette entry.
type Color struct {
	Type    ColorType
	Palette uint8
	RGB     color.RGB
}

func PaletteColor(idx uint8) Color {
	return Color{Type: ColorTypePalette, Palette: idx}
}

func RGBColor(c color.RGB) Color {
	return Color{Type: ColorTypeRGB, RGB: c}
}

// Resolve returns the concrete color, or def for ColorTypeNone.
func (c Color) Resolve(palette *color.Palette, def color.RGB) color.RGB {
	switch c.Type {
	case ColorTypePalette:
		return palette[c.Palette]
	case ColorTypeRGB:
		return c.RGB
	default:
		return def
	}
}

func (c Color) String() string {
	switch c.Type {
	case ColorTypeNone:
		return "Color.none"
	case ColorTypePalette:
		return fmt.Sprintf("Color.palette{{ %d }}", c.Palette)
	case ColorTypeRGB:
		return fmt.Sprintf("Color.rgb{{ %d, %d, %d }}", c.RGB.R, c.RGB.G, c.RGB.B)
	default:
		return "Color.unknown"
	}
}

type ColorType int

const (
	ColorTypeNone ColorType = iota
	ColorTypePalette
	ColorTypeRGB
)
