package core

// MouseTracking is the mouse reporting level requested by the application.
type MouseTracking uint8

const (
	MouseTrackingNone MouseTracking = iota
	MouseTrackingX10
	MouseTrackingNormal
	MouseTrackingButton
	MouseTrackingAny
)

// Modes is a by-value snapshot of the modes consumers outside the grid care
// about: input translation and rendering.
type Modes struct {
	AltScreen      bool
	Autowrap       bool
	Origin         bool
	Insert         bool
	LineFeed       bool
	BracketedPaste bool
	Mouse          MouseTracking
	MouseSGR       bool
	FocusEvents    bool
	AppKeypad      bool
	AppCursor      bool
	CursorVisible  bool
	CursorBlink    bool
	ReverseVideo   bool
}

// Snapshot copies the current values into a Modes.
func (s *ModeState) Snapshot() Modes {
	m := Modes{
		AltScreen:      s.Get(ModeAltScreen) || s.Get(ModeAltScreenLegacy) || s.Get(ModeAltScreenSave),
		Autowrap:       s.Get(ModeWraparound),
		Origin:         s.Get(ModeOrigin),
		Insert:         s.Get(ModeInsert),
		LineFeed:       s.Get(ModeLineFeed),
		BracketedPaste: s.Get(ModeBracketedPaste),
		MouseSGR:       s.Get(ModeMouseFormatSGR),
		FocusEvents:    s.Get(ModeFocusEvent),
		AppKeypad:      s.Get(ModeKeypadKeys),
		AppCursor:      s.Get(ModeCursorKeys),
		CursorVisible:  s.Get(ModeCursorVisible),
		CursorBlink:    s.Get(ModeCursorBlinking),
		ReverseVideo:   s.Get(ModeReverseColors),
	}
	// The most permissive tracking level wins.
	switch {
	case s.Get(ModeMouseAny):
		m.Mouse = MouseTrackingAny
	case s.Get(ModeMouseButton):
		m.Mouse = MouseTrackingButton
	case s.Get(ModeMouseNormal):
		m.Mouse = MouseTrackingNormal
	case s.Get(ModeMouseX10):
		m.Mouse = MouseTrackingX10
	}
	return m
}
