package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/hnimtadd/vtgrid/logger"
	"github.com/hnimtadd/vtgrid/terminal/charset"
	"github.com/hnimtadd/vtgrid/terminal/color"
	"github.com/hnimtadd/vtgrid/terminal/core"
	"github.com/hnimtadd/vtgrid/terminal/point"
	"github.com/hnimtadd/vtgrid/terminal/screen"
	"github.com/hnimtadd/vtgrid/terminal/tabstops"
)

type (
	Options struct {
		Cols int // The number of columns in the terminal
		Rows int // The number of rows in the terminal

		// Scrollback is how many lines the primary screen keeps once they
		// leave the top. 0 disables history.
		Scrollback int

		// The default mode state. When the terminal gets a reset, it will
		// revert back to this state. Nil means core.ModePacked.
		Modes map[core.Mode]bool

		// Palette and Colors are the configured defaults that OSC 104 and
		// OSC 110-112 restore. Nil means the xterm defaults.
		Palette *color.Palette
		Colors  *Colors

		// Writer receives replies to queries (DSR, DA, color queries).
		// Replies are dropped when nil.
		Writer io.Writer

		// Host may implement any of the interfaces in the handler package.
		Host any

		Logger logger.Logger
	}

	// Terminal is the grid state machine. It is not safe for concurrent
	// use; a single goroutine applies actions and takes frames.
	Terminal struct {
		// The active screen, either primary or alt.
		screen  *screen.Screen
		primary *screen.Screen
		alt     *screen.Screen

		rows, cols int

		Modes *core.ModeState

		// The previous printed character, we need this one for the repeat
		// previous char CSI (ESC [ <n> b).
		previousChar rune

		// Where the tabstops are.
		tabstops *tabstops.Tabstops

		// The current scrolling region.
		scrollingRegion ScrollingRegion

		// G0 character set.
		charset charset.Charset

		palette        color.Palette
		defaultPalette color.Palette
		colors         Colors
		defaultColors  Colors

		title     string
		iconTitle string

		hyperlinks *HyperlinkTable

		writer io.Writer
		host   any

		// full forces the next frame to carry every visible line.
		full  bool
		stats Stats

		logger logger.Logger
	}

	// Scroll region is the area of the screen designated where scrolling
	// occurs. Top and Bottom are inclusive and 0-indexed.
	// Precondition: Top < Bottom.
	ScrollingRegion struct {
		Top    int
		Bottom int
	}

	// Colors are the dynamic colors OSC 10, 11 and 12 address.
	Colors struct {
		Foreground color.RGB
		Background color.RGB
		Cursor     color.RGB
	}

	// Stats are running counters for the host's metrics.
	Stats struct {
		// Sequences consumed without effect because they are not supported.
		UnknownSequences uint64
		// Lines that entered the scrollback.
		ScrolledOff uint64
		Bells       uint64
	}
)

// DefaultColors are xterm's.
var DefaultColors = Colors{
	Foreground: color.DefaultForeground,
	Background: color.DefaultBackground,
	Cursor:     color.DefaultCursor,
}

func NewTerminal(opts Options) *Terminal {
	cols, rows := max(opts.Cols, 2), max(opts.Rows, 1)
	modes := opts.Modes
	if modes == nil {
		modes = core.ModePacked
	}
	palette := color.DefaultPalette
	if opts.Palette != nil {
		palette = *opts.Palette
	}
	colors := DefaultColors
	if opts.Colors != nil {
		colors = *opts.Colors
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop
	}

	primary := screen.NewScreen(cols, rows, opts.Scrollback)
	t := &Terminal{
		screen:          primary,
		primary:         primary,
		alt:             screen.NewScreen(cols, rows, 0),
		rows:            rows,
		cols:            cols,
		Modes:           core.NewModeState(modes, modes),
		tabstops:        tabstops.NewTabstops(cols, tabstops.Interval),
		scrollingRegion: ScrollingRegion{Top: 0, Bottom: rows - 1},
		palette:         palette,
		defaultPalette:  palette,
		colors:          colors,
		defaultColors:   colors,
		hyperlinks:      NewHyperlinkTable(),
		writer:          opts.Writer,
		host:            opts.Host,
		full:            true,
		logger:          log,
	}
	return t
}

func (t *Terminal) Rows() int { return t.rows }
func (t *Terminal) Cols() int { return t.cols }

// Screen returns the active screen.
func (t *Terminal) Screen() *screen.Screen { return t.screen }

// Primary returns the primary screen, active or not.
func (t *Terminal) Primary() *screen.Screen { return t.primary }

func (t *Terminal) ScrollingRegion() ScrollingRegion { return t.scrollingRegion }

// Snapshot of the modes consumers outside the grid care about.
func (t *Terminal) ModesSnapshot() core.Modes { return t.Modes.Snapshot() }

func (t *Terminal) Title() string     { return t.title }
func (t *Terminal) IconTitle() string { return t.iconTitle }

func (t *Terminal) Palette() color.Palette { return t.palette }
func (t *Terminal) Colors() Colors         { return t.colors }

func (t *Terminal) Hyperlinks() *HyperlinkTable { return t.hyperlinks }

func (t *Terminal) Stats() Stats { return t.stats }

// blank is the cell erase operations write: the current background only.
func (t *Terminal) blank() screen.Cell {
	return screen.BlankCell(t.screen.Cursor.Style)
}

// regionIsFull reports whether the scrolling region spans the whole grid.
func (t *Terminal) regionIsFull() bool {
	return t.scrollingRegion.Top == 0 && t.scrollingRegion.Bottom == t.rows-1
}

func (t *Terminal) resetScrollingRegion() {
	t.scrollingRegion = ScrollingRegion{Top: 0, Bottom: t.rows - 1}
}

// FullReset implements RIS: both screens, modes, tabstops, colors and the
// title return to their initial state.
func (t *Terminal) FullReset() {
	t.primary.Reset()
	t.alt.Reset()
	t.screen = t.primary
	t.Modes.Reset()
	t.tabstops.Reset(tabstops.Interval)
	t.resetScrollingRegion()
	t.charset = charset.ASCII
	t.previousChar = 0
	t.palette = t.defaultPalette
	t.colors = t.defaultColors
	t.title = ""
	t.iconTitle = ""
	t.hyperlinks.Clear()
	t.full = true
}

// SoftReset implements DECSTR. Unlike RIS the screen content survives.
func (t *Terminal) SoftReset() {
	t.Modes.Set(core.ModeInsert, false)
	t.Modes.Set(core.ModeOrigin, false)
	t.Modes.Set(core.ModeWraparound, core.ModeWraparound.Default)
	t.Modes.Set(core.ModeCursorVisible, true)
	t.Modes.Set(core.ModeCursorKeys, false)
	t.Modes.Set(core.ModeKeypadKeys, false)
	t.resetScrollingRegion()
	t.charset = charset.ASCII
	t.screen.Cursor.Style.Reset()
	t.screen.Cursor.PendingWrap = false
	t.screen.Saved = nil
	t.screen.CursorMarkDirty()
}

// Resize both screens without reflow. Degenerate sizes are clamped to 2
// columns by 1 row. Every visible cell becomes dirty.
func (t *Terminal) Resize(cols, rows int) {
	cols, rows = max(cols, 2), max(rows, 1)
	wasFull := t.regionIsFull()

	pushed := t.primary.Resize(cols, rows, screen.Cell{})
	t.alt.Resize(cols, rows, screen.Cell{})
	t.stats.ScrolledOff += uint64(pushed)

	if cols != t.cols {
		t.tabstops.Resize(cols)
		t.tabstops.Reset(tabstops.Interval)
	}
	t.cols, t.rows = cols, rows

	if wasFull {
		t.resetScrollingRegion()
	} else {
		t.scrollingRegion.Bottom = min(t.scrollingRegion.Bottom, rows-1)
		if t.scrollingRegion.Top >= t.scrollingRegion.Bottom {
			t.resetScrollingRegion()
		}
	}
	t.full = true
	t.logger.Debug("terminal resized", "cols", cols, "rows", rows)
}

// PlainString returns the active area as text.
func (t *Terminal) PlainString() string {
	return t.screen.String()
}

// Dump writes the lines addressed by tag of the active screen.
func (t *Terminal) Dump(w io.Writer, tag point.Tag) error {
	return t.screen.DumpString(w, tag)
}

// ScrollViewport scrolls the view delta lines into the history (positive)
// or back down (negative). Only the primary screen has history.
func (t *Terminal) ScrollViewport(delta int) bool {
	if t.screen != t.primary {
		return false
	}
	if !t.primary.ScrollViewport(delta) {
		return false
	}
	t.full = true
	return true
}

// snapViewport follows the active area again; new output calls it.
func (t *Terminal) snapViewport() {
	if t.screen.ResetViewport() {
		t.full = true
	}
}

// respond writes a reply for the host application.
func (t *Terminal) respond(format string, args ...any) {
	if t.writer == nil {
		t.logger.Debug("dropping reply, no writer", "reply", fmt.Sprintf(format, args...))
		return
	}
	if _, err := fmt.Fprintf(t.writer, format, args...); err != nil {
		t.logger.Warn("failed to write reply", "error", err)
	}
}

// unknown records a sequence consumed without effect.
func (t *Terminal) unknown(kind string, seq fmt.Stringer) {
	t.stats.UnknownSequences++
	t.logger.Debug("unsupported sequence", "kind", kind, "sequence", seq)
}

func (t *Terminal) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Terminal{cols=%d rows=%d cursor=(%d,%d) alt=%t}",
		t.cols, t.rows, t.screen.Cursor.X, t.screen.Cursor.Y, t.screen == t.alt)
	return b.String()
}
