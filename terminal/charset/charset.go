// Package charset implements the character sets a G0 designation
// (ESC ( F) can select.
package charset

// Charset is a 94 character set mapped over GL.
type Charset uint8

const (
	ASCII Charset = iota
	// DECSpecialGraphics is the VT100 line drawing set.
	DECSpecialGraphics
	British
)

// FromDesignator returns the set selected by the final byte of ESC ( F.
func FromDesignator(final uint8) (Charset, bool) {
	switch final {
	case 'B':
		return ASCII, true
	case '0':
		return DECSpecialGraphics, true
	case 'A':
		return British, true
	default:
		return ASCII, false
	}
}

func (c Charset) String() string {
	switch c {
	case ASCII:
		return "ascii"
	case DECSpecialGraphics:
		return "dec_special_graphics"
	case British:
		return "british"
	default:
		return "unknown"
	}
}

// Map translates a printed codepoint through the set.
func (c Charset) Map(r rune) rune {
	switch c {
	case DECSpecialGraphics:
		if r >= 0x5F && r <= 0x7E {
			return decSpecial[r-0x5F]
		}
	case British:
		if r == '#' {
			return '£'
		}
	}
	return r
}

// https://vt100.net/docs/vt102-ug/table5-13.html
var decSpecial = [...]rune{
	' ', // _ blank
	'◆', // `
	'▒', // a
	'␉', // b
	'␌', // c
	'␍', // d
	'␊', // e
	'°', // f
	'±', // g
	'␤', // h
	'␋', // i
	'┘', // j
	'┐', // k
	'┌', // l
	'└', // m
	'┼', // n
	'⎺', // o
	'⎻', // p
	'─', // q
	'⎼', // r
	'⎽', // s
	'├', // t
	'┤', // u
	'┴', // v
	'┬', // w
	'│', // x
	'≤', // y
	'≥', // z
	'π', // {
	'≠', // |
	'£', // }
	'·', // ~
}
