package ansi

import "fmt"

var names = map[uint8]string{
	C0.NUL: "NUL",
	0x01:   "SOH",
	0x02:   "STX",
	0x03:   "ETX",
	0x04:   "EOT",
	C0.ENQ: "ENQ",
	0x06:   "ACK",
	C0.BEL: "BEL",
	C0.BS:  "BS",
	C0.HT:  "HT",
	C0.LF:  "LF",
	C0.VT:  "VT",
	C0.FF:  "FF",
	C0.CR:  "CR",
	C0.SO:  "SO",
	C0.SI:  "SI",
	0x10:   "DLE",
	0x11:   "DC1",
	0x12:   "DC2",
	0x13:   "DC3",
	0x14:   "DC4",
	0x15:   "NAK",
	0x16:   "SYN",
	0x17:   "ETB",
	C0.CAN: "CAN",
	0x19:   "EM",
	C0.SUB: "SUB",
	C0.ESC: "ESC",
	0x1C:   "FS",
	0x1D:   "GS",
	0x1E:   "RS",
	0x1F:   "US",
	C0.DEL: "DEL",
}

// String renders a byte for logs, naming it when it is a control character.
func String(val uint8) string {
	if name, ok := names[val]; ok {
		return fmt.Sprintf("%s (0x%02X)", name, val)
	}
	return fmt.Sprintf("0x%02X (%q)", val, rune(val))
}
