package parser

import (
	"fmt"
	"strings"

	"github.com/hnimtadd/vtgrid/terminal/sequences/csi"
	"github.com/hnimtadd/vtgrid/terminal/sequences/dcs"
	"github.com/hnimtadd/vtgrid/terminal/sequences/esc"
	"github.com/hnimtadd/vtgrid/terminal/sequences/osc"
)

// ActionType is an action taken when an event or state transition occurs.
// Collect, Param, OSCStart and OSCPut are internal to the parser and never
// surface to callers.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionIgnore
	ActionPrint
	ActionExecute
	ActionCollect
	ActionParam
	ActionESCDispatch
	ActionCSIDispatch
	ActionDCSHook
	ActionDCSPut
	ActionDCSUnhook
	ActionOSCStart
	ActionOSCPut
	ActionOSCDispatch
)

var actionNames = map[ActionType]string{
	ActionNone:        "None",
	ActionIgnore:      "Ignore",
	ActionPrint:       "Print",
	ActionExecute:     "Execute",
	ActionCollect:     "Collect",
	ActionParam:       "Param",
	ActionESCDispatch: "ESCDispatch",
	ActionCSIDispatch: "CSIDispatch",
	ActionDCSHook:     "DCSHook",
	ActionDCSPut:      "DCSPut",
	ActionDCSUnhook:   "DCSUnhook",
	ActionOSCStart:    "OSCStart",
	ActionOSCPut:      "OSCPut",
	ActionOSCDispatch: "OSCDispatch",
}

func (a ActionType) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// Action is what a caller of the parser is expected to do as a result of
// some input. Dispatch payloads are copies; an Action may outlive the
// parser state that produced it.
type Action struct {
	Type ActionType

	// PrintData is the codepoint to draw.
	PrintData rune

	// ExecuteData is the C0 or C1 function.
	ExecuteData uint8

	CSIDispatchData *csi.Command
	ESCDispatchData *esc.Command
	OSCDispatchData *osc.Command

	// DCS-related events
	DCSHookData *dcs.DCS
	DCSPutData  uint8
}

func (a *Action) String() string {
	if a == nil {
		return "{nil}"
	}
	builder := new(strings.Builder)
	fmt.Fprintf(builder, "{ .%s = ", a.Type)
	switch a.Type {
	case ActionPrint:
		fmt.Fprintf(builder, "%q", a.PrintData)
	case ActionExecute:
		fmt.Fprintf(builder, "0x%02x", a.ExecuteData)
	case ActionCSIDispatch:
		fmt.Fprint(builder, a.CSIDispatchData)
	case ActionESCDispatch:
		fmt.Fprint(builder, a.ESCDispatchData)
	case ActionOSCDispatch:
		if a.OSCDispatchData != nil {
			fmt.Fprintf(builder, "OSC %q", a.OSCDispatchData.Raw)
		}
	case ActionDCSHook:
		fmt.Fprint(builder, a.DCSHookData)
	case ActionDCSPut:
		fmt.Fprintf(builder, "0x%02x", a.DCSPutData)
	}
	fmt.Fprintf(builder, " }")
	return builder.String()
}
