package parser

import (
	"github.com/hnimtadd/vtgrid/logger"
	"github.com/hnimtadd/vtgrid/terminal/sequences/csi"
	"github.com/hnimtadd/vtgrid/terminal/sequences/dcs"
	"github.com/hnimtadd/vtgrid/terminal/sequences/esc"
	"github.com/hnimtadd/vtgrid/terminal/sequences/osc"
	"github.com/hnimtadd/vtgrid/terminal/utils"
)

const (
	MaxParams        = 24
	MaxIntermediates = 4
)

// VT-series parser for escape and control sequences.
//
// This is implemented directly as the state machine described on
// vt100.net: https://vt100.net/emu/dec_ansi_parser
//
// The parser is resumable: its state carries every partial sequence, so
// input may be split at any byte.
type Parser struct {
	State State

	// leader is the private marker ('<' '=' '>' '?') right after CSI/DCS.
	leader uint8

	// intermediate tracking
	intermediates    [MaxIntermediates]uint8
	intermediatesIdx int

	// param tracking
	params      [MaxParams]uint16
	paramsIdx   int
	paramsColon *utils.StaticBitSet
	paramAcc    uint16
	paramAccIdx int

	// overflow marks the current sequence as malformed; it is dropped at
	// its final byte.
	overflow bool

	oscParser *osc.Parser

	logger logger.Logger
}

func NewParser(log logger.Logger) *Parser {
	if log == nil {
		log = logger.Nop
	}
	return &Parser{
		State:       StateGround,
		paramsColon: utils.NewStaticBitSet(MaxParams),
		oscParser:   osc.NewParser(osc.MaxLength),
		logger:      log,
	}
}

// Next consumes the next byte c and returns the actions to execute.
//
// Up to 3 actions may need to be executed. When going from one state to
// another, they take place in this order:
//
// 1. exit action from old state
//
// 2. transition action
//
// 3. entry action to new state
//
// Unused slots are nil.
func (p *Parser) Next(c uint8) [3]*Action {
	effect := table[c][p.State]
	nextState := effect.state

	// A DCS whose header overflowed is swallowed, not hooked.
	if nextState == StateDCSPassthrough && p.overflow {
		nextState = StateDCSIgnore
	}

	var actions [3]*Action

	if p.State != nextState {
		actions[0] = p.exit(c)
	}

	actions[1] = p.doAction(effect.action, c)

	if p.State != nextState {
		actions[2] = p.enter(nextState, c)
	}

	p.State = nextState
	return actions
}

func (p *Parser) exit(c uint8) *Action {
	switch p.State {
	case StateOSCString:
		// CAN and SUB abort the string.
		if c == 0x18 || c == 0x1A {
			p.oscParser.Reset()
			return nil
		}
		term := osc.TerminatorST
		if c == 0x07 {
			term = osc.TerminatorBEL
		}
		cmd, ok := p.oscParser.End(term)
		if !ok {
			p.logger.Debug("osc string exceeded limit, dropped", "limit", osc.MaxLength)
			return nil
		}
		return &Action{Type: ActionOSCDispatch, OSCDispatchData: &cmd}
	case StateDCSPassthrough:
		return &Action{Type: ActionDCSUnhook}
	}
	return nil
}

func (p *Parser) enter(next State, c uint8) *Action {
	switch next {
	case StateEscape, StateDCSEntry, StateCSIEntry:
		p.Clear()
	case StateOSCString:
		p.oscParser.Reset()
	case StateDCSPassthrough:
		// hook: a final byte arrived in the first part of a DCS.
		p.finalizeParam()
		if p.overflow {
			return nil
		}
		return &Action{
			Type: ActionDCSHook,
			DCSHookData: &dcs.DCS{
				Leader:        p.leader,
				Intermediates: p.copyIntermediates(),
				Params:        p.copyParams(),
				Final:         c,
			},
		}
	}
	return nil
}

func (p *Parser) doAction(actionType ActionType, c uint8) *Action {
	switch actionType {
	case ActionIgnore, ActionNone:
		return nil
	case ActionPrint:
		return &Action{Type: ActionPrint, PrintData: rune(c)}
	case ActionExecute:
		return &Action{Type: ActionExecute, ExecuteData: c}
	case ActionCollect:
		p.Collect(c)
		return nil
	case ActionParam:
		p.param(c)
		return nil
	case ActionESCDispatch:
		if p.overflow {
			p.logger.Debug("dropping malformed escape sequence", "final", c)
			return nil
		}
		return &Action{
			Type: ActionESCDispatch,
			ESCDispatchData: &esc.Command{
				Intermediates: p.copyIntermediates(),
				Final:         c,
			},
		}
	case ActionCSIDispatch:
		return p.csiDispatch(c)
	case ActionDCSPut:
		return &Action{Type: ActionDCSPut, DCSPutData: c}
	case ActionOSCPut:
		p.oscParser.Put(c)
		return nil
	default:
		p.logger.Warn("unknown parser action", "type", actionType)
		return nil
	}
}

func (p *Parser) param(c uint8) {
	// Semicolon and colon separate parameters.
	if c == ';' || c == ':' {
		if p.paramsIdx >= MaxParams {
			p.overflow = true
			return
		}
		p.params[p.paramsIdx] = p.paramAcc
		if c == ':' {
			p.paramsColon.Set(p.paramsIdx)
		}
		p.paramsIdx++
		p.paramAcc = 0
		p.paramAccIdx = 0
		return
	}

	// A digit: add it to the accumulator, saturating.
	p.paramAcc, _ = utils.AppendDigit(p.paramAcc, c-'0')
	p.paramAccIdx++
}

// finalizeParam pushes the accumulator. A trailing empty parameter after a
// separator counts as 0, so "1;" has two parameters.
func (p *Parser) finalizeParam() {
	if p.paramAccIdx == 0 && p.paramsIdx == 0 {
		return
	}
	if p.paramsIdx >= MaxParams {
		p.overflow = true
		return
	}
	p.params[p.paramsIdx] = p.paramAcc
	p.paramsIdx++
	p.paramAcc = 0
	p.paramAccIdx = 0
}

func (p *Parser) csiDispatch(c uint8) *Action {
	p.finalizeParam()
	if p.overflow {
		p.logger.Debug("dropping malformed csi sequence", "final", c, "params", p.paramsIdx)
		return nil
	}

	cmd := &csi.Command{
		Leader:        p.leader,
		Intermediates: p.copyIntermediates(),
		Params:        p.copyParams(),
		Final:         c,
	}

	if p.paramsColon.Any() {
		// We only allow colon or mixed separators for the 'm' command.
		if c != 'm' {
			p.logger.Debug("csi colon separator only allowed for 'm'", "command", cmd)
			return nil
		}
		cmd.Colon = utils.NewStaticBitSet(len(cmd.Params))
		for i := p.paramsColon.Next(0); i >= 0 && i < len(cmd.Params); i = p.paramsColon.Next(i + 1) {
			cmd.Colon.Set(i)
		}
	}

	return &Action{Type: ActionCSIDispatch, CSIDispatchData: cmd}
}

// Collect records an intermediate or, directly after CSI/DCS, the leader.
func (p *Parser) Collect(c uint8) {
	if c >= 0x3C && c <= 0x3F {
		p.leader = c
		return
	}
	if p.intermediatesIdx >= MaxIntermediates {
		p.overflow = true
		return
	}
	p.intermediates[p.intermediatesIdx] = c
	p.intermediatesIdx++
}

// Clear forgets any partial sequence.
func (p *Parser) Clear() {
	p.leader = 0
	p.paramsIdx = 0
	p.paramAcc = 0
	p.paramAccIdx = 0
	p.paramsColon.Clear()
	p.intermediatesIdx = 0
	p.overflow = false
}

// Reset returns to ground, dropping any partial sequence.
func (p *Parser) Reset() {
	p.Clear()
	p.oscParser.Reset()
	p.State = StateGround
}

func (p *Parser) copyIntermediates() []uint8 {
	if p.intermediatesIdx == 0 {
		return nil
	}
	out := make([]uint8, p.intermediatesIdx)
	copy(out, p.intermediates[:p.intermediatesIdx])
	return out
}

func (p *Parser) copyParams() []uint16 {
	if p.paramsIdx == 0 {
		return nil
	}
	out := make([]uint16, p.paramsIdx)
	copy(out, p.params[:p.paramsIdx])
	return out
}
