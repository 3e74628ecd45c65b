package terminal

import (
	"github.com/hnimtadd/vtgrid/terminal/color"
	"github.com/hnimtadd/vtgrid/terminal/handler"
	"github.com/hnimtadd/vtgrid/terminal/sequences/osc"
)

func (t *Terminal) oscDispatch(cmd osc.Command) {
	op := osc.Parse(cmd)
	switch op.Kind {
	case osc.KindChangeTitleAndIcon:
		t.SetTitle(op.Title)
		t.SetIconTitle(op.Title)
	case osc.KindChangeTitle:
		t.SetTitle(op.Title)
	case osc.KindChangeIconTitle:
		t.SetIconTitle(op.Title)
	case osc.KindHyperlink:
		t.SetHyperlink(Hyperlink(op.Hyperlink))
	case osc.KindPalette:
		for _, c := range op.Colors {
			if c.Query {
				t.respond("\x1b]4;%d;%s%s", c.Index, t.palette[c.Index].XSpec(), op.Terminator)
				continue
			}
			t.palette[c.Index] = c.Color
			t.full = true
		}
	case osc.KindResetPalette:
		if op.Indices == nil {
			t.palette = t.defaultPalette
		}
		for _, idx := range op.Indices {
			if idx >= 0 && idx < len(t.palette) {
				t.palette[idx] = t.defaultPalette[idx]
			}
		}
		t.full = true
	case osc.KindDynamicColor:
		for _, c := range op.Colors {
			slot := t.dynamicColor(c.Index)
			if slot == nil {
				continue
			}
			if c.Query {
				t.respond("\x1b]%d;%s%s", c.Index, slot.XSpec(), op.Terminator)
				continue
			}
			*slot = c.Color
			t.full = true
		}
	case osc.KindResetDynamicColor:
		for _, idx := range op.Indices {
			switch idx {
			case osc.DynamicForeground:
				t.colors.Foreground = t.defaultColors.Foreground
			case osc.DynamicBackground:
				t.colors.Background = t.defaultColors.Background
			case osc.DynamicCursor:
				t.colors.Cursor = t.defaultColors.Cursor
			}
		}
		t.full = true
	default:
		t.unknown("osc", oscString(cmd.Raw))
	}
}

func (t *Terminal) dynamicColor(idx int) *color.RGB {
	switch idx {
	case osc.DynamicForeground:
		return &t.colors.Foreground
	case osc.DynamicBackground:
		return &t.colors.Background
	case osc.DynamicCursor:
		return &t.colors.Cursor
	default:
		return nil
	}
}

// SetTitle stores the window title and tells the host.
func (t *Terminal) SetTitle(title string) {
	t.title = title
	if h, ok := t.host.(handler.TitleHandler); ok {
		h.SetTitle(title)
	}
}

func (t *Terminal) SetIconTitle(title string) {
	t.iconTitle = title
	if h, ok := t.host.(handler.IconTitleHandler); ok {
		h.SetIconTitle(title)
	}
}

// SetHyperlink starts tagging printed cells with link, or stops when the
// URI is empty.
func (t *Terminal) SetHyperlink(link Hyperlink) {
	if link.URI == "" {
		t.screen.Cursor.Hyperlink = 0
		return
	}
	id := t.hyperlinks.Put(link)
	if id == 0 {
		t.logger.Debug("hyperlink table full, dropping link", "uri", link.URI)
	}
	t.screen.Cursor.Hyperlink = id
}

type oscString string

func (s oscString) String() string { return "OSC " + string(s) }
