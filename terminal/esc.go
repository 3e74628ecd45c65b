package terminal

import (
	"github.com/hnimtadd/vtgrid/terminal/charset"
	"github.com/hnimtadd/vtgrid/terminal/core"
	"github.com/hnimtadd/vtgrid/terminal/sequences/esc"
)

func (t *Terminal) escDispatch(cmd esc.Command) {
	if len(cmd.Intermediates) > 1 {
		t.unknown("esc", cmd)
		return
	}
	switch cmd.Intermediate() {
	case 0:
		switch cmd.Final {
		case 'D': // IND
			t.Index()
		case 'E': // NEL
			t.NextLine()
		case 'H': // HTS
			t.TabSet()
		case 'M': // RI
			t.ReverseIndex()
		case 'c': // RIS
			t.FullReset()
		case '7': // DECSC
			t.SaveCursor()
		case '8': // DECRC
			t.RestoreCursor()
		case '=': // DECKPAM
			t.SetMode(core.ModeKeypadKeys, true)
		case '>': // DECKPNM
			t.SetMode(core.ModeKeypadKeys, false)
		case '\\':
			// ST closing a string the parser already dispatched.
		default:
			t.unknown("esc", cmd)
		}
	case '(':
		// G0 designation. G1-G3 are never invoked since SO/SI are ignored.
		cs, ok := charset.FromDesignator(cmd.Final)
		if !ok {
			t.unknown("esc", cmd)
			return
		}
		t.charset = cs
	case '#':
		if cmd.Final != '8' {
			t.unknown("esc", cmd)
			return
		}
		t.DecAlignmentTest()
	default:
		t.unknown("esc", cmd)
	}
}
