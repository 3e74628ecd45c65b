package terminal

import (
	"github.com/hnimtadd/vtgrid/terminal/core"
	"github.com/hnimtadd/vtgrid/terminal/handler"
)

// mouse tracking modes are exclusive: enabling one disables the others.
var mouseModes = []core.Mode{
	core.ModeMouseX10,
	core.ModeMouseNormal,
	core.ModeMouseButton,
	core.ModeMouseAny,
}

// SetMode is the single entry point for mode changes: it stores the value,
// applies the side effects and notifies the host.
func (t *Terminal) SetMode(mode core.Mode, enabled bool) {
	switch mode {
	case core.ModeAltScreenLegacy:
		t.switchScreen(enabled, false)
	case core.ModeAltScreen:
		t.switchScreen(enabled, !enabled)
	case core.ModeAltScreenSave:
		if enabled {
			t.SaveCursor()
			t.switchScreen(true, false)
			t.screen.ClearLines(0, t.rows, t.blank())
		} else {
			t.switchScreen(false, false)
			t.RestoreCursor()
		}
	case core.ModeSaveCursor:
		if enabled {
			t.SaveCursor()
		} else {
			t.RestoreCursor()
		}
	case core.ModeMouseX10, core.ModeMouseNormal, core.ModeMouseButton, core.ModeMouseAny:
		if enabled {
			for _, m := range mouseModes {
				t.Modes.Set(m, false)
			}
		}
	}

	t.Modes.Set(mode, enabled)

	// Side effects that depend on the new value.
	switch mode {
	case core.ModeOrigin:
		t.SetCursorPosition(1, 1)
	case core.ModeReverseColors:
		t.full = true
	case core.ModeCursorVisible, core.ModeCursorBlinking:
		t.screen.CursorMarkDirty()
	}

	if h, ok := t.host.(handler.ModeChangeHandler); ok {
		h.ModeChanged(mode, enabled)
	}
}

// setModes applies SM/RM or DECSET/DECRST for every parameter.
func (t *Terminal) setModes(values []uint16, ansi bool, enabled bool) {
	for _, v := range values {
		mode := core.ModeFromInt(int(v), ansi)
		if mode == nil {
			t.stats.UnknownSequences++
			t.logger.Debug("unsupported mode", "mode", v, "ansi", ansi, "enabled", enabled)
			continue
		}
		t.SetMode(*mode, enabled)
	}
}

// switchScreen activates the alternate (alt) or primary screen. The
// cursor carries over, the scrolling region resets and the next frame is
// full. clearAlt blanks the alt screen before leaving it.
func (t *Terminal) switchScreen(alt bool, clearAlt bool) {
	target := t.primary
	if alt {
		target = t.alt
	}
	if t.screen == target {
		return
	}
	if !alt && clearAlt {
		t.alt.ClearLines(0, t.rows, t.blank())
	}
	t.primary.ResetViewport()
	target.Cursor = t.screen.Cursor
	target.Cursor.PendingWrap = false
	t.screen = target
	t.resetScrollingRegion()
	t.full = true
	t.logger.Debug("switched screen", "alt", alt)
}
