package parser

import (
	"strings"
	"testing"

	"github.com/hnimtadd/vtgrid/terminal/sequences/osc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// feed runs input through p and returns the non-nil actions in order.
func feed(p *Parser, input string) []*Action {
	var out []*Action
	for i := 0; i < len(input); i++ {
		for _, a := range p.Next(input[i]) {
			if a != nil {
				out = append(out, a)
			}
		}
	}
	return out
}

func TestParserNext(t *testing.T) {
	tcs := []struct {
		name     string
		previous []uint8
		curr     uint8
		expected func(*testing.T, [3]*Action)
	}{
		{
			name:     "esc: ESC ( B -- 0x1B 0x28 0x42",
			previous: []uint8{0x1B, '('},
			curr:     'B',
			expected: func(t *testing.T, actions [3]*Action) {
				assert.Nil(t, actions[0])
				require.NotNil(t, actions[1])
				require.NotNil(t, actions[1].ESCDispatchData)
				assert.Nil(t, actions[2])

				d := actions[1].ESCDispatchData
				assert.EqualValues(t, 'B', d.Final)
				assert.Equal(t, []uint8{'('}, d.Intermediates)
			},
		},
		{
			name:     "csi: CSI SP q",
			previous: []uint8{0x1B, '[', '2', ' '},
			curr:     'q',
			expected: func(t *testing.T, actions [3]*Action) {
				require.NotNil(t, actions[1])
				d := actions[1].CSIDispatchData
				require.NotNil(t, d)
				assert.EqualValues(t, 'q', d.Final)
				assert.Equal(t, []uint8{' '}, d.Intermediates)
				assert.Equal(t, []uint16{2}, d.Params)
			},
		},
		{
			name:     "execute inside csi keeps the state",
			previous: []uint8{0x1B, '[', '1'},
			curr:     '\n',
			expected: func(t *testing.T, actions [3]*Action) {
				require.NotNil(t, actions[1])
				assert.Equal(t, ActionExecute, actions[1].Type)
				assert.EqualValues(t, '\n', actions[1].ExecuteData)
			},
		},
		{
			name:     "osc: BEL ends and dispatches",
			previous: []uint8{0x1B, ']', '2', ';', 'h', 'i'},
			curr:     0x07,
			expected: func(t *testing.T, actions [3]*Action) {
				require.NotNil(t, actions[0])
				assert.Equal(t, ActionOSCDispatch, actions[0].Type)
				assert.Equal(t, &osc.Command{Raw: "2;hi", Terminator: osc.TerminatorBEL}, actions[0].OSCDispatchData)
				assert.Nil(t, actions[1])
				assert.Nil(t, actions[2])
			},
		},
		{
			name:     "osc: CAN aborts without dispatch",
			previous: []uint8{0x1B, ']', '2', ';', 'h', 'i'},
			curr:     0x18,
			expected: func(t *testing.T, actions [3]*Action) {
				assert.Nil(t, actions[0])
				require.NotNil(t, actions[1])
				assert.Equal(t, ActionExecute, actions[1].Type)
			},
		},
		{
			name:     "dcs: hook on final byte",
			previous: []uint8{0x1B, 'P', '1', ';', '2', '$'},
			curr:     'q',
			expected: func(t *testing.T, actions [3]*Action) {
				require.NotNil(t, actions[2])
				assert.Equal(t, ActionDCSHook, actions[2].Type)
				assert.Equal(t, []uint16{1, 2}, actions[2].DCSHookData.Params)
				assert.Equal(t, []uint8{'$'}, actions[2].DCSHookData.Intermediates)
				assert.EqualValues(t, 'q', actions[2].DCSHookData.Final)
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			p := NewParser(nil)
			for _, prev := range tc.previous {
				p.Next(prev)
			}
			actions := p.Next(tc.curr)
			tc.expected(t, actions)
		})
	}
}

func TestParserCSI(t *testing.T) {
	tcs := []struct {
		name          string
		input         string
		params        []uint16
		leader        uint8
		intermediates []uint8
		final         uint8
		colon         []int
	}{
		{name: "no params", input: "\x1b[m", final: 'm'},
		{name: "defaults", input: "\x1b[;H", params: []uint16{0, 0}, final: 'H'},
		{name: "trailing empty param", input: "\x1b[1;m", params: []uint16{1, 0}, final: 'm'},
		{name: "private", input: "\x1b[?1049h", params: []uint16{1049}, leader: '?', final: 'h'},
		{name: "secondary DA", input: "\x1b[>c", leader: '>', final: 'c'},
		{name: "saturates", input: "\x1b[99999999A", params: []uint16{65535}, final: 'A'},
		{name: "soft reset", input: "\x1b[!p", intermediates: []uint8{'!'}, final: 'p'},
		{
			name:   "colon in sgr",
			input:  "\x1b[38:2:1:2:3m",
			params: []uint16{38, 2, 1, 2, 3},
			final:  'm',
			colon:  []int{0, 1, 2, 3},
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			p := NewParser(nil)
			actions := feed(p, tc.input)
			require.Len(t, actions, 1)
			cmd := actions[0].CSIDispatchData
			require.NotNil(t, cmd)
			assert.Equal(t, tc.params, cmd.Params)
			assert.Equal(t, tc.leader, cmd.Leader)
			assert.Equal(t, tc.intermediates, cmd.Intermediates)
			assert.Equal(t, tc.final, cmd.Final)
			if tc.colon == nil {
				assert.Nil(t, cmd.Colon)
			} else {
				require.NotNil(t, cmd.Colon)
				for _, i := range tc.colon {
					assert.True(t, cmd.Colon.IsSet(i), "colon after %d", i)
				}
				assert.Equal(t, len(tc.colon), cmd.Colon.Count())
			}
			assert.Equal(t, StateGround, p.State)
		})
	}
}

func TestParserDiscardsMalformed(t *testing.T) {
	tcs := []struct {
		name  string
		input string
	}{
		{name: "colon outside sgr", input: "\x1b[1:2H"},
		{name: "too many params", input: "\x1b[" + strings.Repeat("1;", MaxParams) + "1m"},
		{name: "too many intermediates", input: "\x1b[!!!!!p"},
		{name: "leader after params", input: "\x1b[1?h"},
		{name: "escape too many intermediates", input: "\x1b(((((B"},
		{name: "high byte in csi", input: "\x1b[1\xc3m"},
		{name: "osc over limit", input: "\x1b]2;" + strings.Repeat("x", osc.MaxLength+1) + "\x07"},
		{name: "st is swallowed", input: "\x1b\\"},
		{name: "apc is dropped", input: "\x1b_payload\x1b\\"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			p := NewParser(nil)
			actions := feed(p, tc.input)
			for _, a := range actions {
				assert.NotContains(t,
					[]ActionType{ActionCSIDispatch, ActionESCDispatch, ActionOSCDispatch},
					a.Type, "unexpected %s", a)
			}
			assert.Equal(t, StateGround, p.State)

			// the parser recovers for the next sequence
			next := feed(p, "\x1b[2J")
			require.Len(t, next, 1)
			assert.EqualValues(t, 'J', next[0].CSIDispatchData.Final)
		})
	}
}

func TestParserOSCWithUTF8AndST(t *testing.T) {
	p := NewParser(nil)
	actions := feed(p, "\x1b]2;héllo\x1b\\A")
	require.Len(t, actions, 2)
	assert.Equal(t, ActionOSCDispatch, actions[0].Type)
	assert.Equal(t, "2;héllo", actions[0].OSCDispatchData.Raw)
	assert.Equal(t, osc.TerminatorST, actions[0].OSCDispatchData.Terminator)
	assert.Equal(t, ActionPrint, actions[1].Type)
	assert.EqualValues(t, 'A', actions[1].PrintData)
}

func TestParserDispatchOwnsPayload(t *testing.T) {
	p := NewParser(nil)
	first := feed(p, "\x1b[1;2H")
	second := feed(p, "\x1b[3;4H")
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, []uint16{1, 2}, first[0].CSIDispatchData.Params)
	assert.Equal(t, []uint16{3, 4}, second[0].CSIDispatchData.Params)
}

func TestParserDELIgnored(t *testing.T) {
	p := NewParser(nil)
	assert.Empty(t, feed(p, "\x7f"))
	actions := feed(p, "\x1b[1\x7fA")
	require.Len(t, actions, 1)
	assert.Equal(t, []uint16{1}, actions[0].CSIDispatchData.Params)
}

func TestParserNeverPanicsAndRecovers(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		input := rapid.SliceOf(rapid.Byte()).Draw(rt, "input")
		p := NewParser(nil)
		for _, c := range input {
			p.Next(c)
		}
		// CAN always returns to ground.
		p.Next(0x18)
		if p.State != StateGround {
			rt.Fatalf("state after CAN = %s", p.State)
		}
	})
}
