package csi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandParam(t *testing.T) {
	cmd := Command{Params: []uint16{0, 5}, Final: 'H'}
	assert.EqualValues(t, 1, cmd.Param(0, 1), "zero takes the default")
	assert.EqualValues(t, 5, cmd.Param(1, 1))
	assert.EqualValues(t, 1, cmd.Param(2, 1), "absent takes the default")
	assert.EqualValues(t, 0, cmd.RawParam(0))
	assert.EqualValues(t, 0, cmd.RawParam(9))
}

func TestCommandString(t *testing.T) {
	cmd := Command{Leader: '?', Params: []uint16{25}, Final: 'h'}
	assert.True(t, cmd.Private())
	assert.Equal(t, `CSI ?[25] "" 'h'`, cmd.String())
}
