package handler

import "github.com/hnimtadd/vtgrid/terminal/core"

type (
	// BellHandler is called for every BEL executed in the stream.
	BellHandler interface {
		Bell()
	}
	// TitleHandler receives the window title set by OSC 0 and OSC 2.
	TitleHandler interface {
		SetTitle(title string)
	}
	// IconTitleHandler receives the icon title set by OSC 0 and OSC 1.
	IconTitleHandler interface {
		SetIconTitle(title string)
	}
	// ModeChangeHandler is told about every mode set or reset, after the
	// grid applied it.
	ModeChangeHandler interface {
		ModeChanged(mode core.Mode, enabled bool)
	}
)
