package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPalette(t *testing.T) {
	assert.Equal(t, Red.DefaultRGB(), DefaultPalette[1])
	assert.Equal(t, RGB{0, 0, 0}, DefaultPalette[16])
	assert.Equal(t, RGB{0xFF, 0xFF, 0xFF}, DefaultPalette[231])
	assert.Equal(t, RGB{95, 135, 175}, DefaultPalette[16+1*36+2*6+3])
	assert.Equal(t, RGB{8, 8, 8}, DefaultPalette[232])
	assert.Equal(t, RGB{238, 238, 238}, DefaultPalette[255])
}

func TestParseSpec(t *testing.T) {
	tcs := []struct {
		name     string
		spec     string
		expected RGB
		err      bool
	}{
		{name: "hex6", spec: "#ff8000", expected: RGB{0xFF, 0x80, 0x00}},
		{name: "hex3", spec: "#f00", expected: RGB{0xFF, 0, 0}},
		{name: "rgb 2 digits", spec: "rgb:12/34/56", expected: RGB{0x12, 0x34, 0x56}},
		{name: "rgb 4 digits", spec: "rgb:ffff/0000/8080", expected: RGB{0xFF, 0, 0x80}},
		{name: "rgb 1 digit", spec: "rgb:f/0/8", expected: RGB{0xFF, 0, 0x88}},
		{name: "missing component", spec: "rgb:ff/00", err: true},
		{name: "garbage", spec: "blue-ish", err: true},
		{name: "bad hex", spec: "rgb:zz/00/00", err: true},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseSpec(tc.spec)
			if tc.err {
				assert.ErrorIs(t, err, ErrInvalidSpec)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestXSpecRoundTrip(t *testing.T) {
	c := RGB{0x12, 0xAB, 0xFF}
	assert.Equal(t, "rgb:1212/abab/ffff", c.XSpec())
	parsed, err := ParseSpec(c.XSpec())
	require.NoError(t, err)
	assert.Equal(t, c, parsed)
}

func TestBlendAndVec4(t *testing.T) {
	black, white := RGB{}, RGB{255, 255, 255}
	assert.Equal(t, black, black.Blend(white, 0))
	assert.Equal(t, white, black.Blend(white, 1))
	assert.Equal(t, [4]float32{1, 0, 0, 1}, RGB{255, 0, 0}.Vec4(1))
}
