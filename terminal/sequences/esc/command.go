package esc

import (
	"fmt"
)

// Command is a dispatched escape sequence: ESC, intermediates, final.
type Command struct {
	Intermediates []uint8
	Final         uint8
}

// Intermediate returns the first intermediate byte, or 0.
func (c Command) Intermediate() uint8 {
	if len(c.Intermediates) == 0 {
		return 0
	}
	return c.Intermediates[0]
}

func (c Command) String() string {
	return fmt.Sprintf("ESC %q %q", c.Intermediates, c.Final)
}
