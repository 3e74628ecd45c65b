package parser

// State for the state machine
type State int

const (
	StateGround State = iota
	StateEscape
	StateEscapeIntermediate
	StateCSIEntry
	StateCSIParam
	StateCSIIntermediate
	StateCSIIgnore
	StateDCSEntry
	StateDCSParam
	StateDCSIntermediate
	StateDCSPassthrough
	StateDCSIgnore
	StateOSCString
	StateSosPmApcString

	numStates
)

var stateNames = [numStates]string{
	StateGround:             "ground",
	StateEscape:             "escape",
	StateEscapeIntermediate: "escape_intermediate",
	StateCSIEntry:           "csi_entry",
	StateCSIParam:           "csi_param",
	StateCSIIntermediate:    "csi_intermediate",
	StateCSIIgnore:          "csi_ignore",
	StateDCSEntry:           "dcs_entry",
	StateDCSParam:           "dcs_param",
	StateDCSIntermediate:    "dcs_intermediate",
	StateDCSPassthrough:     "dcs_passthrough",
	StateDCSIgnore:          "dcs_ignore",
	StateOSCString:          "osc_string",
	StateSosPmApcString:     "sos_pm_apc_string",
}

func (s State) String() string {
	if s >= 0 && s < numStates {
		return stateNames[s]
	}
	return "unknown"
}
