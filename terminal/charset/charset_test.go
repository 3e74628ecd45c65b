package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	tcs := []struct {
		name     string
		charset  Charset
		input    rune
		expected rune
	}{
		{name: "ascii passthrough", charset: ASCII, input: 'q', expected: 'q'},
		{name: "horizontal line", charset: DECSpecialGraphics, input: 'q', expected: '─'},
		{name: "corner", charset: DECSpecialGraphics, input: 'l', expected: '┌'},
		{name: "outside the range", charset: DECSpecialGraphics, input: 'A', expected: 'A'},
		{name: "british pound", charset: British, input: '#', expected: '£'},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.charset.Map(tc.input))
		})
	}
}

func TestFromDesignator(t *testing.T) {
	cs, ok := FromDesignator('0')
	assert.True(t, ok)
	assert.Equal(t, DECSpecialGraphics, cs)

	_, ok = FromDesignator('Z')
	assert.False(t, ok)
}
