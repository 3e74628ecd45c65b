package parser

// The state transition table for VT emulation, built once at init.
//
// This is based on the vt100.net state machine:
// https://vt100.net/emu/dec_ansi_parser
//
// It departs from the original in a few places because the byte stream is
// UTF-8:
//   - 8-bit C1 controls are not recognized. Bytes 0x80-0xFF inside OSC and
//     DCS strings are payload, so UTF-8 text survives; in any other
//     non-ground state they abort the sequence.
//   - ':' is accepted as a CSI parameter separator. The parser drops
//     colon sequences whose final byte is not 'm'.
//   - BEL terminates an OSC string.
//   - ESC \ (ST) following a string is swallowed without a dispatch.
//   - DEL is ignored in every state.
type parserTable [256][numStates]Transition

var table = newParserTable()

type Transition struct {
	state  State
	action ActionType
}

func transition(state State, action ActionType) Transition {
	return Transition{state: state, action: action}
}

func newParserTable() *parserTable {
	t := new(parserTable)

	// Unlisted bytes keep the state and do nothing.
	for c := range 256 {
		for s := range numStates {
			t[c][s] = transition(s, ActionIgnore)
		}
	}

	// anywhere
	for source := range numStates {
		// => ground
		t.addSingle(0x18, source, StateGround, ActionExecute)
		t.addSingle(0x1A, source, StateGround, ActionExecute)

		// => escape
		t.addSingle(0x1B, source, StateEscape, ActionNone)

		t.addSingle(0x7F, source, source, ActionIgnore)
	}

	// The C0 controls each non-string state executes in place.
	executeC0 := func(source State) {
		t.addRange(0x00, 0x17, source, source, ActionExecute)
		t.addSingle(0x19, source, source, ActionExecute)
		t.addRange(0x1C, 0x1F, source, source, ActionExecute)
	}
	ignoreC0 := func(source State) {
		t.addRange(0x00, 0x17, source, source, ActionIgnore)
		t.addSingle(0x19, source, source, ActionIgnore)
		t.addRange(0x1C, 0x1F, source, source, ActionIgnore)
	}
	abortHigh := func(source State) {
		t.addRange(0x80, 0xFF, source, StateGround, ActionNone)
	}

	// ground
	{
		source := StateGround
		executeC0(source)
		t.addRange(0x20, 0x7E, source, source, ActionPrint)
		t.addRange(0x80, 0xFF, source, source, ActionPrint)
	}

	// escape
	{
		source := StateEscape
		executeC0(source)
		abortHigh(source)

		// => ground
		t.addRange(0x30, 0x4F, source, StateGround, ActionESCDispatch)
		t.addRange(0x51, 0x57, source, StateGround, ActionESCDispatch)
		t.addSingle(0x59, source, StateGround, ActionESCDispatch)
		t.addSingle(0x5A, source, StateGround, ActionESCDispatch)
		t.addSingle(0x5C, source, StateGround, ActionNone) // ST
		t.addRange(0x60, 0x7E, source, StateGround, ActionESCDispatch)

		// => escapeIntermediate
		t.addRange(0x20, 0x2F, source, StateEscapeIntermediate, ActionCollect)

		// => sosPmApcString
		t.addSingle(0x58, source, StateSosPmApcString, ActionNone)
		t.addSingle(0x5E, source, StateSosPmApcString, ActionNone)
		t.addSingle(0x5F, source, StateSosPmApcString, ActionNone)

		// => dcsEntry
		t.addSingle(0x50, source, StateDCSEntry, ActionNone)

		// => oscString
		t.addSingle(0x5D, source, StateOSCString, ActionNone)

		// => csiEntry
		t.addSingle(0x5B, source, StateCSIEntry, ActionNone)
	}

	// escapeIntermediate
	{
		source := StateEscapeIntermediate
		executeC0(source)
		abortHigh(source)
		t.addRange(0x20, 0x2F, source, source, ActionCollect)
		t.addRange(0x30, 0x7E, source, StateGround, ActionESCDispatch)
	}

	// csiEntry
	{
		source := StateCSIEntry
		executeC0(source)
		abortHigh(source)

		t.addRange(0x40, 0x7E, source, StateGround, ActionCSIDispatch)
		t.addRange(0x30, 0x3B, source, StateCSIParam, ActionParam)
		t.addRange(0x3C, 0x3F, source, StateCSIParam, ActionCollect)
		t.addRange(0x20, 0x2F, source, StateCSIIntermediate, ActionCollect)
	}

	// csiParam
	{
		source := StateCSIParam
		executeC0(source)
		abortHigh(source)

		t.addRange(0x40, 0x7E, source, StateGround, ActionCSIDispatch)
		t.addRange(0x30, 0x3B, source, source, ActionParam)
		t.addRange(0x3C, 0x3F, source, StateCSIIgnore, ActionNone)
		t.addRange(0x20, 0x2F, source, StateCSIIntermediate, ActionCollect)
	}

	// csiIntermediate
	{
		source := StateCSIIntermediate
		executeC0(source)
		abortHigh(source)

		t.addRange(0x40, 0x7E, source, StateGround, ActionCSIDispatch)
		t.addRange(0x30, 0x3F, source, StateCSIIgnore, ActionNone)
		t.addRange(0x20, 0x2F, source, source, ActionCollect)
	}

	// csiIgnore
	{
		source := StateCSIIgnore
		executeC0(source)
		abortHigh(source)

		t.addRange(0x40, 0x7E, source, StateGround, ActionNone)
		t.addRange(0x20, 0x3F, source, source, ActionIgnore)
	}

	// dcsEntry
	{
		source := StateDCSEntry
		ignoreC0(source)
		abortHigh(source)

		t.addRange(0x20, 0x2F, source, StateDCSIntermediate, ActionCollect)
		t.addSingle(0x3A, source, StateDCSIgnore, ActionNone)
		t.addRange(0x30, 0x39, source, StateDCSParam, ActionParam)
		t.addSingle(0x3B, source, StateDCSParam, ActionParam)
		t.addRange(0x3C, 0x3F, source, StateDCSParam, ActionCollect)
		t.addRange(0x40, 0x7E, source, StateDCSPassthrough, ActionNone)
	}

	// dcsParam
	{
		source := StateDCSParam
		ignoreC0(source)
		abortHigh(source)

		t.addRange(0x20, 0x2F, source, StateDCSIntermediate, ActionCollect)
		t.addSingle(0x3A, source, StateDCSIgnore, ActionNone)
		t.addRange(0x3C, 0x3F, source, StateDCSIgnore, ActionNone)
		t.addRange(0x30, 0x39, source, source, ActionParam)
		t.addSingle(0x3B, source, source, ActionParam)
		t.addRange(0x40, 0x7E, source, StateDCSPassthrough, ActionNone)
	}

	// dcsIntermediate
	{
		source := StateDCSIntermediate
		ignoreC0(source)
		abortHigh(source)

		t.addRange(0x20, 0x2F, source, source, ActionCollect)
		t.addRange(0x30, 0x3F, source, StateDCSIgnore, ActionNone)
		t.addRange(0x40, 0x7E, source, StateDCSPassthrough, ActionNone)
	}

	// dcsPassthrough
	{
		source := StateDCSPassthrough
		t.addRange(0x00, 0x17, source, source, ActionDCSPut)
		t.addSingle(0x19, source, source, ActionDCSPut)
		t.addRange(0x1C, 0x1F, source, source, ActionDCSPut)
		t.addRange(0x20, 0x7E, source, source, ActionDCSPut)
		t.addRange(0x80, 0xFF, source, source, ActionDCSPut)
	}

	// dcsIgnore: everything but the anywhere transitions is dropped, which
	// the default already does.

	// oscString
	{
		source := StateOSCString
		ignoreC0(source)
		t.addSingle(0x07, source, StateGround, ActionNone)
		t.addRange(0x20, 0x7E, source, source, ActionOSCPut)
		t.addRange(0x80, 0xFF, source, source, ActionOSCPut)
	}

	// sosPmApcString: dropped until ESC, CAN or SUB, the default.

	return t
}

func (t *parserTable) addSingle(c uint8, s0 State, s1 State, a ActionType) {
	t[c][s0] = transition(s1, a)
}

func (t *parserTable) addRange(from uint8, to uint8, s0 State, s1 State, a ActionType) {
	for c := int(from); c <= int(to); c++ {
		t.addSingle(uint8(c), s0, s1, a)
	}
}
