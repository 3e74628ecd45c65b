// Package sgr parses SGR (Select Graphic Rendition) parameters into
// attributes.
//
// Based on https://vt100.net/docs/vt510-rm/SGR.html and
// https://en.wikipedia.org/wiki/ANSI_escape_code#SGR
package sgr

import (
	"iter"
	"math"

	"github.com/hnimtadd/vtgrid/terminal/color"
	"github.com/hnimtadd/vtgrid/terminal/utils"
)

type AttributeType uint16

const (
	AttributeTypeUnset AttributeType = iota

	AttributeTypeBold
	// AttributeTypeResetBold clears both bold and faint (SGR 22).
	AttributeTypeResetBold
	AttributeTypeItalic
	AttributeTypeResetItalic
	AttributeTypeFaint

	AttributeTypeUnderline
	AttributeTypeResetUnderline
	AttributeTypeUnderlineColor
	AttributeTypeIndexedUnderlineColor
	AttributeTypeResetUnderlineColor

	AttributeTypeOverline
	AttributeTypeResetOverline
	AttributeTypeBlink
	AttributeTypeResetBlink
	AttributeTypeInverse
	AttributeTypeResetInverse
	AttributeTypeInvisible
	AttributeTypeResetInvisible
	AttributeTypeStrikethrough
	AttributeTypeResetStrikethrough

	AttributeTypeDirectColorFg
	AttributeTypeDirectColorBg
	// Indexed colors cover the 8 base colors (30-37, 40-47), the bright
	// colors (90-97, 100-107) and the 256 color forms (38;5;n, 48;5;n).
	AttributeTypeIndexedFg
	AttributeTypeIndexedBg
	AttributeTypeResetFg
	AttributeTypeResetBg

	AttributeTypeUnknown
)

var attributeNames = map[AttributeType]string{
	AttributeTypeUnset:                 "unset",
	AttributeTypeBold:                  "bold",
	AttributeTypeResetBold:             "reset_bold",
	AttributeTypeItalic:                "italic",
	AttributeTypeResetItalic:           "reset_italic",
	AttributeTypeFaint:                 "faint",
	AttributeTypeUnderline:             "underline",
	AttributeTypeResetUnderline:        "reset_underline",
	AttributeTypeUnderlineColor:        "underline_color",
	AttributeTypeIndexedUnderlineColor: "indexed_underline_color",
	AttributeTypeResetUnderlineColor:   "reset_underline_color",
	AttributeTypeOverline:              "overline",
	AttributeTypeResetOverline:         "reset_overline",
	AttributeTypeBlink:                 "blink",
	AttributeTypeResetBlink:            "reset_blink",
	AttributeTypeInverse:               "inverse",
	AttributeTypeResetInverse:          "reset_inverse",
	AttributeTypeInvisible:             "invisible",
	AttributeTypeResetInvisible:        "reset_invisible",
	AttributeTypeStrikethrough:         "strikethrough",
	AttributeTypeResetStrikethrough:    "reset_strikethrough",
	AttributeTypeDirectColorFg:         "direct_color_fg",
	AttributeTypeDirectColorBg:         "direct_color_bg",
	AttributeTypeIndexedFg:             "indexed_fg",
	AttributeTypeIndexedBg:             "indexed_bg",
	AttributeTypeResetFg:               "reset_fg",
	AttributeTypeResetBg:               "reset_bg",
	AttributeTypeUnknown:               "unknown",
}

func (t AttributeType) String() string {
	if name, ok := attributeNames[t]; ok {
		return name
	}
	return "invalid"
}

type UnderlineType uint8

const (
	UnderlineTypeNone UnderlineType = iota
	UnderlineTypeSingle
	UnderlineTypeDouble
	UnderlineTypeCurly
	UnderlineTypeDotted
	UnderlineTypeDashed
)

// Attribute is one parsed SGR attribute. Only the fields relevant to Type
// are meaningful.
type Attribute struct {
	Type      AttributeType
	Underline UnderlineType
	// RGB carries direct colors (fg, bg and underline).
	RGB color.RGB
	// Index carries palette colors.
	Index uint8
	// Unknown holds the raw parameters of an attribute we could not parse.
	Unknown []uint16
}

// Parser walks a CSI m parameter list.
type Parser struct {
	Params []uint16
	// Colon has bit i set when Params[i] is followed by ':' rather than ';'.
	// A nil set means every separator was ';'.
	Colon *utils.StaticBitSet
}

func (p *Parser) colonAfter(idx int) bool {
	return p.Colon != nil && idx < p.Colon.Len() && p.Colon.IsSet(idx)
}

// Iter yields the attributes in order. An empty list yields a single unset.
func (p *Parser) Iter() iter.Seq[Attribute] {
	return func(yield func(Attribute) bool) {
		if len(p.Params) == 0 {
			yield(Attribute{Type: AttributeTypeUnset})
			return
		}
		for idx := 0; idx < len(p.Params); {
			end := idx + 1
			for end < len(p.Params) && p.colonAfter(end-1) {
				end++
			}
			var attr Attribute
			if end-idx > 1 {
				attr = p.colonGroup(p.Params[idx:end])
				idx = end
			} else {
				var consumed int
				attr, consumed = p.single(p.Params[idx:])
				idx += consumed
			}
			if !yield(attr) {
				return
			}
		}
	}
}

// colonGroup handles sub-parameter forms such as 4:3 and 38:2::r:g:b.
func (p *Parser) colonGroup(group []uint16) Attribute {
	unknown := Attribute{Type: AttributeTypeUnknown, Unknown: group}
	switch group[0] {
	case 4:
		if len(group) != 2 {
			return unknown
		}
		// https://gitlab.com/gnachman/iterm2/-/issues/6382
		switch group[1] {
		case 0:
			return Attribute{Type: AttributeTypeResetUnderline}
		case 1:
			return underline(UnderlineTypeSingle)
		case 2:
			return underline(UnderlineTypeDouble)
		case 3:
			return underline(UnderlineTypeCurly)
		case 4:
			return underline(UnderlineTypeDotted)
		case 5:
			return underline(UnderlineTypeDashed)
		default:
			return underline(UnderlineTypeSingle)
		}
	case 38, 48, 58:
		switch {
		case len(group) == 3 && group[1] == 5:
			return colorAttribute(group[0], false, color.RGB{}, clampByte(group[2]))
		case len(group) == 5 && group[1] == 2:
			return colorAttribute(group[0], true, rgb(group[2:5]), 0)
		case len(group) == 6 && group[1] == 2:
			// group[2] is the color space id, ignored.
			return colorAttribute(group[0], true, rgb(group[3:6]), 0)
		}
	}
	return unknown
}

// single handles a semicolon separated attribute, returning how many
// parameters it consumed.
func (p *Parser) single(params []uint16) (Attribute, int) {
	v := params[0]
	switch {
	case v >= 30 && v <= 37:
		return Attribute{Type: AttributeTypeIndexedFg, Index: uint8(v - 30)}, 1
	case v >= 40 && v <= 47:
		return Attribute{Type: AttributeTypeIndexedBg, Index: uint8(v - 40)}, 1
	case v >= 90 && v <= 97:
		return Attribute{Type: AttributeTypeIndexedFg, Index: uint8(v - 90 + 8)}, 1
	case v >= 100 && v <= 107:
		return Attribute{Type: AttributeTypeIndexedBg, Index: uint8(v - 100 + 8)}, 1
	}

	switch v {
	case 0:
		return Attribute{Type: AttributeTypeUnset}, 1
	case 1:
		return Attribute{Type: AttributeTypeBold}, 1
	case 2:
		return Attribute{Type: AttributeTypeFaint}, 1
	case 3:
		return Attribute{Type: AttributeTypeItalic}, 1
	case 4:
		return underline(UnderlineTypeSingle), 1
	case 5, 6:
		return Attribute{Type: AttributeTypeBlink}, 1
	case 7:
		return Attribute{Type: AttributeTypeInverse}, 1
	case 8:
		return Attribute{Type: AttributeTypeInvisible}, 1
	case 9:
		return Attribute{Type: AttributeTypeStrikethrough}, 1
	case 21:
		return underline(UnderlineTypeDouble), 1
	case 22:
		return Attribute{Type: AttributeTypeResetBold}, 1
	case 23:
		return Attribute{Type: AttributeTypeResetItalic}, 1
	case 24:
		return Attribute{Type: AttributeTypeResetUnderline}, 1
	case 25:
		return Attribute{Type: AttributeTypeResetBlink}, 1
	case 27:
		return Attribute{Type: AttributeTypeResetInverse}, 1
	case 28:
		return Attribute{Type: AttributeTypeResetInvisible}, 1
	case 29:
		return Attribute{Type: AttributeTypeResetStrikethrough}, 1
	case 39:
		return Attribute{Type: AttributeTypeResetFg}, 1
	case 49:
		return Attribute{Type: AttributeTypeResetBg}, 1
	case 53:
		return Attribute{Type: AttributeTypeOverline}, 1
	case 55:
		return Attribute{Type: AttributeTypeResetOverline}, 1
	case 59:
		return Attribute{Type: AttributeTypeResetUnderlineColor}, 1
	case 38, 48, 58:
		if len(params) >= 3 && params[1] == 5 {
			return colorAttribute(v, false, color.RGB{}, clampByte(params[2])), 3
		}
		if len(params) >= 5 && params[1] == 2 {
			return colorAttribute(v, true, rgb(params[2:5]), 0), 5
		}
		// Ill-formed extended color: swallow the rest, as xterm does.
		return Attribute{Type: AttributeTypeUnknown, Unknown: params}, len(params)
	}
	return Attribute{Type: AttributeTypeUnknown, Unknown: params[:1]}, 1
}

func underline(u UnderlineType) Attribute {
	return Attribute{Type: AttributeTypeUnderline, Underline: u}
}

func colorAttribute(kind uint16, direct bool, c color.RGB, index uint8) Attribute {
	var t AttributeType
	switch {
	case kind == 38 && direct:
		t = AttributeTypeDirectColorFg
	case kind == 38:
		t = AttributeTypeIndexedFg
	case kind == 48 && direct:
		t = AttributeTypeDirectColorBg
	case kind == 48:
		t = AttributeTypeIndexedBg
	case direct:
		t = AttributeTypeUnderlineColor
	default:
		t = AttributeTypeIndexedUnderlineColor
	}
	return Attribute{Type: t, RGB: c, Index: index}
}

// Components outside 0-255 are clamped.
func rgb(v []uint16) color.RGB {
	return color.RGB{R: clampByte(v[0]), G: clampByte(v[1]), B: clampByte(v[2])}
}

func clampByte(v uint16) uint8 {
	return uint8(min(math.MaxUint8, v))
}
