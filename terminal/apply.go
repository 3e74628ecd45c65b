package terminal

import (
	"github.com/hnimtadd/vtgrid/terminal/ansi"
	"github.com/hnimtadd/vtgrid/terminal/handler"
	"github.com/hnimtadd/vtgrid/terminal/parser"
)

// Apply applies one parsed action to the grid. Actions must be applied in
// the order the parser produced them.
func (t *Terminal) Apply(action parser.Action) {
	// Any output follows the active area again.
	t.snapViewport()

	switch action.Type {
	case parser.ActionPrint:
		t.Print(action.PrintData)
	case parser.ActionExecute:
		t.Execute(action.ExecuteData)
	case parser.ActionCSIDispatch:
		if action.CSIDispatchData != nil {
			t.csiDispatch(*action.CSIDispatchData)
		}
	case parser.ActionESCDispatch:
		if action.ESCDispatchData != nil {
			t.escDispatch(*action.ESCDispatchData)
		}
	case parser.ActionOSCDispatch:
		if action.OSCDispatchData != nil {
			t.oscDispatch(*action.OSCDispatchData)
		}
	case parser.ActionDCSHook:
		if action.DCSHookData != nil {
			t.unknown("dcs", action.DCSHookData)
		}
	case parser.ActionDCSPut, parser.ActionDCSUnhook:
		// The passthrough of an ignored DCS.
	default:
		t.logger.Debug("unexpected action", "action", action)
	}
}

// Execute runs a C0 control function.
func (t *Terminal) Execute(c uint8) {
	switch c {
	case ansi.C0.BEL:
		t.Bell()
	case ansi.C0.BS:
		t.Backspace()
	case ansi.C0.HT:
		t.SetCursorTabRight(1)
	case ansi.C0.LF, ansi.C0.VT, ansi.C0.FF:
		t.LineFeed()
	case ansi.C0.CR:
		t.CarriageReturn()
	default:
		// SO, SI, ENQ and the rest have no effect on the grid.
		t.logger.Debug("ignoring control", "byte", ansi.String(c))
	}
}

// Bell forwards BEL to the host.
func (t *Terminal) Bell() {
	t.stats.Bells++
	if h, ok := t.host.(handler.BellHandler); ok {
		h.Bell()
	}
}
