package color

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hnimtadd/vtgrid/terminal/utils"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidSpec is returned when a color specification cannot be parsed.
var ErrInvalidSpec = errors.New("invalid color spec")

// Defaults used when no dynamic color has been set.
var (
	DefaultForeground = RGB{0xC5, 0xC8, 0xC6}
	DefaultBackground = RGB{0x1D, 0x1F, 0x21}
	DefaultCursor     = RGB{0xC5, 0xC8, 0xC6}
)

// DefaultPalette is the 256 color palette: 16 named colors, the 6x6x6 cube
// and the 24 step gray ramp.
var DefaultPalette = func() Palette {
	var result Palette

	i := 0
	for ; i < 16; i++ {
		result[i] = Name(i).DefaultRGB()
	}

	utils.Assert(i == 16, "palette cube starts at %d", i)
	level := func(v int) uint8 {
		if v == 0 {
			return 0
		}
		return uint8(v*40 + 55)
	}
	for r := range 6 {
		for g := range 6 {
			for b := range 6 {
				result[i] = RGB{level(r), level(g), level(b)}
				i++
			}
		}
	}

	utils.Assert(i == 232, "palette grays start at %d", i)
	for ; i < 256; i++ {
		value := uint8((i-232)*10 + 8)
		result[i] = RGB{value, value, value}
	}
	return result
}()

// Palette is the 256 color palette.
type Palette [256]RGB

// RGB is a 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Vec4 converts the color to normalized RGBA floats.
func (c RGB) Vec4(alpha float32) [4]float32 {
	return [4]float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		alpha,
	}
}

// Colorful converts to a go-colorful value.
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// FromColorful converts a go-colorful value, clamping out of gamut colors.
func FromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{r, g, b}
}

// Blend mixes c toward other by t in [0,1].
func (c RGB) Blend(other RGB, t float64) RGB {
	return FromColorful(c.Colorful().BlendRgb(other.Colorful(), t))
}

// XSpec formats the color the way xterm answers dynamic color queries.
func (c RGB) XSpec() string {
	return fmt.Sprintf("rgb:%04x/%04x/%04x",
		uint16(c.R)*257, uint16(c.G)*257, uint16(c.B)*257)
}

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	return c.Colorful().Hex()
}

// ParseSpec parses an X11 style color: "#rgb", "#rrggbb" or
// "rgb:r/g/b" with one to four hex digits per component.
func ParseSpec(spec string) (RGB, error) {
	spec = strings.TrimSpace(spec)
	switch {
	case strings.HasPrefix(spec, "#"):
		c, err := colorful.Hex(spec)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q: %v", ErrInvalidSpec, spec, err)
		}
		return FromColorful(c), nil
	case strings.HasPrefix(spec, "rgb:"):
		parts := strings.Split(spec[len("rgb:"):], "/")
		if len(parts) != 3 {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
		}
		var out [3]uint8
		for i, part := range parts {
			v, err := scaleHex(part)
			if err != nil {
				return RGB{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
			}
			out[i] = v
		}
		return RGB{out[0], out[1], out[2]}, nil
	default:
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
	}
}

// scaleHex scales an h, hh, hhh or hhhh component to 8 bits.
func scaleHex(s string) (uint8, error) {
	if len(s) == 0 || len(s) > 4 {
		return 0, ErrInvalidSpec
	}
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, err
	}
	maxV := uint64(1)<<(4*len(s)) - 1
	return uint8((v*255 + maxV/2) / maxV), nil
}

// Name is one of the 16 named colors.
type Name uint8

const (
	Black Name = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	BrightBlack
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	BrightWhite
)

// DefaultRGB is the theme value of the named color.
func (n Name) DefaultRGB() RGB {
	switch n {
	case Black:
		return RGB{0x1D, 0x1F, 0x21}
	case Red:
		return RGB{0xCC, 0x66, 0x66}
	case Green:
		return RGB{0xB5, 0xBD, 0x68}
	case Yellow:
		return RGB{0xF0, 0xC6, 0x74}
	case Blue:
		return RGB{0x81, 0xA2, 0xBE}
	case Magenta:
		return RGB{0xB2, 0x94, 0xC7}
	case Cyan:
		return RGB{0x8A, 0xBE, 0xB7}
	case White:
		return RGB{0xC5, 0xC8, 0xC6}
	case BrightBlack:
		return RGB{0x66, 0x66, 0x66}
	case BrightRed:
		return RGB{0xD5, 0x4E, 0x53}
	case BrightGreen:
		return RGB{0xB9, 0xCA, 0x4A}
	case BrightYellow:
		return RGB{0xE7, 0xC5, 0x47}
	case BrightBlue:
		return RGB{0x7A, 0xA6, 0xDA}
	case BrightMagenta:
		return RGB{0xC3, 0x97, 0xD8}
	case BrightCyan:
		return RGB{0x70, 0xC0, 0xB1}
	case BrightWhite:
		return RGB{0xEA, 0xEA, 0xEA}
	default:
		return RGB{}
	}
}
