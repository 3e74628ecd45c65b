package csi

import (
	"fmt"

	"github.com/hnimtadd/vtgrid/terminal/utils"
)

// Command is a dispatched CSI sequence. Slices are owned by the command.
type Command struct {
	// Leader is the private marker byte ('<', '=', '>' or '?') that directly
	// followed CSI, or 0.
	Leader        uint8
	Intermediates []uint8
	Params        []uint16
	// Colon has bit i set when Params[i] was followed by ':'. Only SGR
	// carries colons; it is nil otherwise.
	Colon *utils.StaticBitSet
	Final uint8
}

// Private reports a '?' leader (DEC private sequence).
func (c Command) Private() bool {
	return c.Leader == '?'
}

// Param returns the idx-th parameter, or def when it is absent or zero.
// Zero means "default" for every count-style parameter in ECMA-48.
func (c Command) Param(idx int, def uint16) uint16 {
	if idx >= len(c.Params) || c.Params[idx] == 0 {
		return def
	}
	return c.Params[idx]
}

// RawParam returns the idx-th parameter, or 0 when absent.
func (c Command) RawParam(idx int) uint16 {
	if idx >= len(c.Params) {
		return 0
	}
	return c.Params[idx]
}

func (c Command) String() string {
	leader := ""
	if c.Leader != 0 {
		leader = string(rune(c.Leader))
	}
	return fmt.Sprintf("CSI %s%v %q %q", leader, c.Params, c.Intermediates, c.Final)
}

// Erase in Display mode
type EDMode uint16

const (
	EDModeBelow      EDMode = 0
	EDModeAbove      EDMode = 1
	EDModeComplete   EDMode = 2
	EDModeScrollback EDMode = 3
)

// Erase in Line mode
type ELMode uint16

const (
	ELModeRight ELMode = 0
	ELModeLeft  ELMode = 1
	ELModeAll   ELMode = 2
)

// Tab Clear mode
type TBCMode uint16

const (
	TBCModeCurrent TBCMode = 0
	TBCModeAll     TBCMode = 3
)
