package screen

import (
	"bytes"
	"testing"

	"github.com/hnimtadd/vtgrid/terminal/point"
	"github.com/hnimtadd/vtgrid/terminal/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// This is a really jank version of Terminal.Print. We want a way to print to
// the screen to test it but don't want all the features of Terminal.
func testWriteString(s *Screen, text string) {
	for _, r := range text {
		if r == '\n' {
			s.Cursor.X = 0
			if s.Cursor.Y == s.rows-1 {
				s.ScrollUp(0, s.rows-1, 1, Cell{}, true)
			} else {
				s.Cursor.Y++
			}
			continue
		}
		if s.Cursor.X == s.cols {
			s.CursorLine().Wrapped = true
			s.Cursor.X = 0
			if s.Cursor.Y == s.rows-1 {
				s.ScrollUp(0, s.rows-1, 1, Cell{}, true)
			} else {
				s.Cursor.Y++
			}
		}
		*s.Cell(s.Cursor.X, s.Cursor.Y) = Cell{Codepoint: r}
		s.Cursor.X++
	}
	s.Cursor.X = min(s.Cursor.X, s.cols-1)
}

func dump(t *testing.T, s *Screen, tag point.Tag) string {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, s.DumpString(buf, tag))
	return buf.String()
}

func TestScreen_ReadAndWrite(t *testing.T) {
	s := NewScreen(80, 24, 100)
	testWriteString(s, "Hello, World!")
	assert.Equal(t, "Hello, World!", dump(t, s, point.TagScreen))
}

func TestScreen_ReadAndWriteNewLine(t *testing.T) {
	s := NewScreen(80, 24, 100)
	testWriteString(s, "hello\n\nworld")
	assert.Equal(t, "hello\n\nworld", dump(t, s, point.TagActive))
}

func TestScreen_ReadAndWriteScrollback(t *testing.T) {
	s := NewScreen(80, 2, 100)
	testWriteString(s, "Line 1\nLine 2\nLine 3")

	assert.Equal(t, "Line 1\nLine 2\nLine 3", dump(t, s, point.TagScreen))
	assert.Equal(t, "Line 2\nLine 3", dump(t, s, point.TagActive))
	assert.Equal(t, "Line 1", dump(t, s, point.TagHistory))
	assert.Equal(t, 1, s.Scrollback().Len())
}

func TestScreen_SoftWrapJoined(t *testing.T) {
	s := NewScreen(4, 3, 0)
	testWriteString(s, "abcdef")
	assert.True(t, s.Line(0).Wrapped)
	assert.Equal(t, "abcdef", s.String())
}

func TestScreen_ScrollUpRegion(t *testing.T) {
	tcs := []struct {
		name          string
		top, bottom   int
		toHistory     bool
		expected      string
		expectedSaved int
	}{
		{
			name: "full grid into history", top: 0, bottom: 3, toHistory: true,
			expected: "b\nc\nd", expectedSaved: 1,
		},
		{
			name: "partial region discards", top: 1, bottom: 2, toHistory: false,
			expected: "a\nc\n\nd", expectedSaved: 0,
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(5, 4, 10)
			testWriteString(s, "a\nb\nc\nd")
			pushed := s.ScrollUp(tc.top, tc.bottom, 1, Cell{}, tc.toHistory)
			assert.Equal(t, tc.expectedSaved, pushed)
			assert.Equal(t, tc.expected, s.String())
			s.AssertIntegrity()
		})
	}
}

func TestScreen_ScrollDown(t *testing.T) {
	s := NewScreen(5, 3, 0)
	testWriteString(s, "a\nb\nc")
	s.ScrollDown(0, 2, 1, Cell{})
	assert.Equal(t, "\na\nb", s.String())
	assert.True(t, s.Line(0).Dirty())
}

func TestScreen_BlankKeepsBackground(t *testing.T) {
	s := NewScreen(5, 2, 0)
	cur := style.Style{Bold: true, BackgroundColor: style.PaletteColor(4)}
	s.ClearLines(0, 1, BlankCell(cur))
	c := s.Cell(0, 0)
	assert.Equal(t, style.PaletteColor(4), c.Style.BackgroundColor)
	assert.False(t, c.Style.Bold)
	assert.True(t, c.IsEmpty())
}

func TestScreen_ResizeShrinkKeepsCursorRow(t *testing.T) {
	s := NewScreen(10, 4, 10)
	testWriteString(s, "one\ntwo\nthree\nfour")
	require.Equal(t, 3, s.Cursor.Y)

	assert.Equal(t, 2, s.Resize(10, 2, Cell{}))
	s.AssertIntegrity()
	assert.Equal(t, 1, s.Cursor.Y)
	assert.Equal(t, "three\nfour", s.String())
	assert.Equal(t, "one\ntwo", dump(t, s, point.TagHistory))
}

func TestScreen_ResizeColumns(t *testing.T) {
	s := NewScreen(4, 2, 0)
	*s.Cell(2, 0) = Cell{Codepoint: '漢', Wide: WideWide}
	*s.Cell(3, 0) = Cell{Wide: WideSpacerTail}
	s.Cursor.X = 3

	assert.Zero(t, s.Resize(3, 2, Cell{}))
	s.AssertIntegrity()
	assert.Equal(t, 2, s.Cursor.X)
	assert.True(t, s.Cell(2, 0).IsEmpty(), "wide glyph cut in half is blanked")

	s.Resize(6, 3, Cell{})
	s.AssertIntegrity()
	assert.Equal(t, 6, s.Line(0).Len())
	assert.True(t, s.Line(2).Dirty())
}

func TestScreen_ResizeClampsDegenerate(t *testing.T) {
	s := NewScreen(4, 2, 0)
	s.Resize(0, 0, Cell{})
	assert.Equal(t, 2, s.Cols())
	assert.Equal(t, 1, s.Rows())
	s.AssertIntegrity()
}

func TestScreen_Viewport(t *testing.T) {
	s := NewScreen(10, 2, 10)
	testWriteString(s, "1\n2\n3\n4")

	assert.False(t, s.ScrollViewport(-1))
	assert.True(t, s.ScrollViewport(1))
	assert.Equal(t, "2\n3", dump(t, s, point.TagViewport))

	// Clamped to the history.
	s.ScrollViewport(100)
	assert.Equal(t, 2, s.ViewportOffset())
	assert.Equal(t, "1\n2", dump(t, s, point.TagViewport))

	assert.True(t, s.ResetViewport())
	assert.Equal(t, "3\n4", dump(t, s, point.TagViewport))
}

func TestScreen_Reset(t *testing.T) {
	s := NewScreen(10, 2, 10)
	testWriteString(s, "1\n2\n3")
	s.Save(SavedCursor{X: 3})
	s.Reset()
	assert.Equal(t, "", dump(t, s, point.TagScreen))
	assert.Nil(t, s.Saved)
	assert.Equal(t, Cursor{}, s.Cursor)
}

func TestScreen_ResizeProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := NewScreen(rapid.IntRange(2, 40).Draw(t, "cols"), rapid.IntRange(1, 20).Draw(t, "rows"), 5)
		s.Cursor.X = rapid.IntRange(0, s.Cols()-1).Draw(t, "x")
		s.Cursor.Y = rapid.IntRange(0, s.Rows()-1).Draw(t, "y")
		for range rapid.IntRange(1, 5).Draw(t, "resizes") {
			s.Resize(rapid.IntRange(-2, 60).Draw(t, "newCols"), rapid.IntRange(-2, 30).Draw(t, "newRows"), Cell{})
			s.AssertIntegrity()
		}
	})
}
