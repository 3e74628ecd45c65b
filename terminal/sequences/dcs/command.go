package dcs

import "fmt"

// DCS is the header of a device control string, delivered on hook. The
// payload follows as put bytes until unhook.
type DCS struct {
	Leader        uint8
	Intermediates []uint8
	Params        []uint16
	Final         uint8
}

func (c DCS) String() string {
	return fmt.Sprintf("DCS %v %q %q", c.Params, c.Intermediates, c.Final)
}
