package ansi

// c0 names the 7-bit control characters the emulator acts on.
// SOH/STX are deliberately absent: https://github.com/microsoft/terminal/issues/10786
type c0 struct {
	NUL uint8 // ^@
	ENQ uint8 // ^E
	BEL uint8 // ^G, \a
	BS  uint8 // ^H, \b
	HT  uint8 // ^I, \t
	LF  uint8 // ^J, \n
	VT  uint8 // ^K, \v
	FF  uint8 // ^L, \f
	CR  uint8 // ^M, \r
	SO  uint8 // ^N
	SI  uint8 // ^O
	CAN uint8 // ^X, aborts a sequence
	SUB uint8 // ^Z, aborts a sequence
	ESC uint8 // ^[
	DEL uint8 // ignored everywhere
}

// C0 control characters, see https://vt100.net/docs/vt100-ug/chapter3.html#S3.2
var C0 = c0{
	NUL: 0x00,
	ENQ: 0x05,
	BEL: 0x07,
	BS:  0x08,
	HT:  0x09,
	LF:  0x0A,
	VT:  0x0B,
	FF:  0x0C,
	CR:  0x0D,
	SO:  0x0E,
	SI:  0x0F,
	CAN: 0x18,
	SUB: 0x1A,
	ESC: 0x1B,
	DEL: 0x7F,
}

// IsC0 reports whether c is a C0 control or DEL.
func IsC0(c uint32) bool {
	return c < 0x20 || c == 0x7F
}
