package core

import (
	"maps"
	"slices"
)

// Mode describes one settable terminal mode.
type Mode struct {
	Name  string
	Value int
	// True if this is an ANSI mode (SM/RM), false for DEC private modes
	// (DECSET/DECRST).
	Ansi    bool
	Default bool
}

func entryForMode(name string, value int, ansi bool, defaultMode bool) Mode {
	return Mode{
		Name:    name,
		Value:   value,
		Ansi:    ansi,
		Default: defaultMode,
	}
}

var (
	// ansi modes
	ModeDisableKeyboard = entryForMode("disable_keyboard", 2, true, false)  // KAM
	ModeInsert          = entryForMode("insert", 4, true, false)            // IRM
	ModeSendReceiveMode = entryForMode("send_receive_mode", 12, true, true) // SRM
	ModeLineFeed        = entryForMode("linefeed", 20, true, false)         // LNM

	// DEC modes
	ModeCursorKeys       = entryForMode("cursor_keys", 1, false, false)        // DECCKM
	ModeReverseColors    = entryForMode("reverse_colors", 5, false, false)     // DECSCNM
	ModeOrigin           = entryForMode("origin", 6, false, false)             // DECOM
	ModeWraparound       = entryForMode("wraparound", 7, false, true)          // DECAWM
	ModeCursorBlinking   = entryForMode("cursor_blinking", 12, false, false)   // ATT610
	ModeCursorVisible    = entryForMode("cursor_visible", 25, false, true)     // DECTCEM
	ModeAltScreenLegacy  = entryForMode("alt_screen_legacy", 47, false, false) //
	ModeKeypadKeys       = entryForMode("keypad_keys", 66, false, false)       // DECNKM
	ModeMouseX10         = entryForMode("mouse_event_x10", 9, false, false)
	ModeMouseNormal      = entryForMode("mouse_event_normal", 1000, false, false)
	ModeMouseButton      = entryForMode("mouse_event_button", 1002, false, false)
	ModeMouseAny         = entryForMode("mouse_event_any", 1003, false, false)
	ModeFocusEvent       = entryForMode("focus_event", 1004, false, false)
	ModeMouseFormatSGR   = entryForMode("mouse_format_sgr", 1006, false, false)
	ModeAltScreen        = entryForMode("alt_screen", 1047, false, false)
	ModeSaveCursor       = entryForMode("save_cursor", 1048, false, false)
	ModeAltScreenSave    = entryForMode("alt_screen_save_cursor_clear_enter", 1049, false, false)
	ModeBracketedPaste   = entryForMode("bracketed_paste", 2004, false, false)
	ModeSynchronizedDraw = entryForMode("synchronized_output", 2026, false, false)

	// The full list of available entries. For documentation on these modes,
	// see the VT100 and ECMA-48 standards or the xterm ctlseqs document.
	entries = []Mode{
		ModeDisableKeyboard,
		ModeInsert,
		ModeSendReceiveMode,
		ModeLineFeed,
		ModeCursorKeys,
		ModeReverseColors,
		ModeOrigin,
		ModeWraparound,
		ModeCursorBlinking,
		ModeCursorVisible,
		ModeAltScreenLegacy,
		ModeKeypadKeys,
		ModeMouseX10,
		ModeMouseNormal,
		ModeMouseButton,
		ModeMouseAny,
		ModeFocusEvent,
		ModeMouseFormatSGR,
		ModeAltScreen,
		ModeSaveCursor,
		ModeAltScreenSave,
		ModeBracketedPaste,
		ModeSynchronizedDraw,
	}
)

// ModePacked maps every known mode to its default value. It is the usual
// argument to NewModeState; ModeState copies it.
var ModePacked = func() map[Mode]bool {
	packed := make(map[Mode]bool, len(entries))
	for _, m := range entries {
		packed[m] = m.Default
	}
	return packed
}()

// ModeState holds the current value of every mode.
type ModeState struct {
	values   map[Mode]bool
	defaults map[Mode]bool
}

// NewModeState creates a state from initial values and defaults. Both maps
// are copied; nil means empty.
func NewModeState(values map[Mode]bool, def map[Mode]bool) *ModeState {
	state := &ModeState{
		values:   make(map[Mode]bool, len(values)),
		defaults: make(map[Mode]bool, len(def)),
	}
	maps.Copy(state.values, values)
	maps.Copy(state.defaults, def)
	return state
}

func (s *ModeState) Set(m Mode, value bool) {
	s.values[m] = value
}

func (s *ModeState) Get(m Mode) bool {
	return s.values[m]
}

// Reset restores every mode to its default.
func (s *ModeState) Reset() {
	s.values = make(map[Mode]bool, len(s.defaults))
	maps.Copy(s.values, s.defaults)
}

// ModeFromInt looks up a mode by number. It returns nil for unknown modes.
func ModeFromInt(input int, ansi bool) *Mode {
	for entry := range slices.Values(entries) {
		if entry.Value == input && entry.Ansi == ansi {
			return &entry
		}
	}
	return nil
}

/* Helpful doc:
DECOM (originMode) doc: https://documentation.help/putty/config-decom.html
xterm private modes: https://invisible-island.net/xterm/ctlseqs/ctlseqs.html#h2-Functions-using-CSI-_-ordered-by-the-final-character_s_
*/
