package terminal

import (
	"github.com/hnimtadd/vtgrid/terminal/screen"
	"github.com/hnimtadd/vtgrid/terminal/sequences/csi"
	"github.com/hnimtadd/vtgrid/terminal/sgr"
)

// csiKey identifies a CSI command by its leader, single intermediate and
// final byte.
type csiKey struct {
	leader       uint8
	intermediate uint8
	final        uint8
}

type csiHandler func(t *Terminal, cmd csi.Command)

func count(cmd csi.Command) int {
	return int(cmd.Param(0, 1))
}

var csiHandlers = map[csiKey]csiHandler{
	// ICH
	{final: '@'}: func(t *Terminal, cmd csi.Command) { t.InsertBlanks(count(cmd)) },
	// CUU
	{final: 'A'}: func(t *Terminal, cmd csi.Command) { t.SetCursorUp(count(cmd), false) },
	{final: 'k'}: func(t *Terminal, cmd csi.Command) { t.SetCursorUp(count(cmd), false) },
	// CUD
	{final: 'B'}: func(t *Terminal, cmd csi.Command) { t.SetCursorDown(count(cmd), false) },
	// CUF, HPR
	{final: 'C'}: func(t *Terminal, cmd csi.Command) { t.SetCursorRight(count(cmd)) },
	{final: 'a'}: func(t *Terminal, cmd csi.Command) { t.SetCursorRight(count(cmd)) },
	// CUB, HPB
	{final: 'D'}: func(t *Terminal, cmd csi.Command) { t.SetCursorLeft(count(cmd)) },
	{final: 'j'}: func(t *Terminal, cmd csi.Command) { t.SetCursorLeft(count(cmd)) },
	// CNL
	{final: 'E'}: func(t *Terminal, cmd csi.Command) { t.SetCursorDown(count(cmd), true) },
	// CPL
	{final: 'F'}: func(t *Terminal, cmd csi.Command) { t.SetCursorUp(count(cmd), true) },
	// CHA, HPA
	{final: 'G'}: func(t *Terminal, cmd csi.Command) { t.SetCursorCol(count(cmd)) },
	{final: '`'}: func(t *Terminal, cmd csi.Command) { t.SetCursorCol(count(cmd)) },
	// CUP, HVP
	{final: 'H'}: cursorPosition,
	{final: 'f'}: cursorPosition,
	// CHT
	{final: 'I'}: func(t *Terminal, cmd csi.Command) { t.SetCursorTabRight(count(cmd)) },
	// ED, DECSED
	{final: 'J'}:               eraseDisplay,
	{leader: '?', final: 'J'}: eraseDisplay,
	// EL, DECSEL
	{final: 'K'}:               eraseLine,
	{leader: '?', final: 'K'}: eraseLine,
	// IL
	{final: 'L'}: func(t *Terminal, cmd csi.Command) { t.InsertLines(count(cmd)) },
	// DL
	{final: 'M'}: func(t *Terminal, cmd csi.Command) { t.DeleteLines(count(cmd)) },
	// DCH
	{final: 'P'}: func(t *Terminal, cmd csi.Command) { t.DeleteChars(count(cmd)) },
	// SU
	{final: 'S'}: func(t *Terminal, cmd csi.Command) { t.ScrollUp(count(cmd)) },
	// SD
	{final: 'T'}: func(t *Terminal, cmd csi.Command) { t.ScrollDown(count(cmd)) },
	// ECH
	{final: 'X'}: func(t *Terminal, cmd csi.Command) { t.EraseChars(count(cmd)) },
	// CBT
	{final: 'Z'}: func(t *Terminal, cmd csi.Command) { t.SetCursorTabLeft(count(cmd)) },
	// REP
	{final: 'b'}: func(t *Terminal, cmd csi.Command) { t.PrintRepeat(count(cmd)) },
	// DA1
	{final: 'c'}: func(t *Terminal, cmd csi.Command) {
		if cmd.RawParam(0) == 0 {
			t.PrimaryDeviceAttributes()
		}
	},
	// DA2
	{leader: '>', final: 'c'}: func(t *Terminal, cmd csi.Command) {
		if cmd.RawParam(0) == 0 {
			t.SecondaryDeviceAttributes()
		}
	},
	// VPA
	{final: 'd'}: func(t *Terminal, cmd csi.Command) { t.SetCursorRow(count(cmd)) },
	// VPR
	{final: 'e'}: func(t *Terminal, cmd csi.Command) { t.SetCursorRowRelative(count(cmd)) },
	// TBC
	{final: 'g'}: func(t *Terminal, cmd csi.Command) {
		switch csi.TBCMode(cmd.RawParam(0)) {
		case csi.TBCModeCurrent:
			t.TabClear(false)
		case csi.TBCModeAll:
			t.TabClear(true)
		default:
			t.unknown("csi", cmd)
		}
	},
	// SM, RM
	{final: 'h'}:               func(t *Terminal, cmd csi.Command) { t.setModes(cmd.Params, true, true) },
	{final: 'l'}:               func(t *Terminal, cmd csi.Command) { t.setModes(cmd.Params, true, false) },
	{leader: '?', final: 'h'}: func(t *Terminal, cmd csi.Command) { t.setModes(cmd.Params, false, true) },
	{leader: '?', final: 'l'}: func(t *Terminal, cmd csi.Command) { t.setModes(cmd.Params, false, false) },
	// SGR
	{final: 'm'}: setGraphicsRendition,
	// DSR
	{final: 'n'}: func(t *Terminal, cmd csi.Command) {
		switch cmd.RawParam(0) {
		case 5:
			t.DeviceStatusReport()
		case 6:
			t.CursorPositionReport(false)
		default:
			t.unknown("csi", cmd)
		}
	},
	// DECXCPR
	{leader: '?', final: 'n'}: func(t *Terminal, cmd csi.Command) {
		if cmd.RawParam(0) != 6 {
			t.unknown("csi", cmd)
			return
		}
		t.CursorPositionReport(true)
	},
	// DECSTBM
	{final: 'r'}: func(t *Terminal, cmd csi.Command) {
		t.SetTopAndBottomMargin(int(cmd.RawParam(0)), int(cmd.RawParam(1)))
	},
	// SCOSC, SCORC
	{final: 's'}: func(t *Terminal, _ csi.Command) { t.SaveCursor() },
	{final: 'u'}: func(t *Terminal, _ csi.Command) { t.RestoreCursor() },
	// XTWINOPS
	{final: 't'}: func(t *Terminal, cmd csi.Command) {
		if cmd.RawParam(0) != 18 {
			t.unknown("csi", cmd)
			return
		}
		t.TextAreaSizeReport()
	},
	// DECSCUSR
	{intermediate: ' ', final: 'q'}: cursorStyle,
	// DECSTR
	{intermediate: '!', final: 'p'}: func(t *Terminal, _ csi.Command) { t.SoftReset() },
}

func cursorPosition(t *Terminal, cmd csi.Command) {
	t.SetCursorPosition(int(cmd.Param(0, 1)), int(cmd.Param(1, 1)))
}

func eraseDisplay(t *Terminal, cmd csi.Command) {
	mode := csi.EDMode(cmd.RawParam(0))
	if mode > csi.EDModeScrollback {
		t.unknown("csi", cmd)
		return
	}
	t.EraseInDisplay(mode)
}

func eraseLine(t *Terminal, cmd csi.Command) {
	mode := csi.ELMode(cmd.RawParam(0))
	if mode > csi.ELModeAll {
		t.unknown("csi", cmd)
		return
	}
	t.EraseInLine(mode)
}

func setGraphicsRendition(t *Terminal, cmd csi.Command) {
	p := sgr.Parser{Params: cmd.Params, Colon: cmd.Colon}
	for attr := range p.Iter() {
		if attr.Type == sgr.AttributeTypeUnknown {
			t.logger.Debug("unknown SGR attribute", "params", attr.Unknown)
			continue
		}
		t.screen.Cursor.Style.Apply(attr)
	}
}

// DECSCUSR: 0 and 1 blinking block, 2 steady block, 3 and 4 underline,
// 5 and 6 bar. Odd values blink.
func cursorStyle(t *Terminal, cmd csi.Command) {
	cursor := &t.screen.Cursor
	switch v := cmd.RawParam(0); v {
	case 0, 1, 2:
		cursor.Shape = screen.CursorShapeBlock
		cursor.Blink = v != 2
	case 3, 4:
		cursor.Shape = screen.CursorShapeUnderline
		cursor.Blink = v == 3
	case 5, 6:
		cursor.Shape = screen.CursorShapeBar
		cursor.Blink = v == 5
	default:
		t.unknown("csi", cmd)
		return
	}
	t.screen.CursorMarkDirty()
}

func (t *Terminal) csiDispatch(cmd csi.Command) {
	if len(cmd.Intermediates) > 1 {
		t.unknown("csi", cmd)
		return
	}
	key := csiKey{leader: cmd.Leader, final: cmd.Final}
	if len(cmd.Intermediates) == 1 {
		key.intermediate = cmd.Intermediates[0]
	}
	h, ok := csiHandlers[key]
	if !ok {
		t.unknown("csi", cmd)
		return
	}
	h(t, cmd)
}
