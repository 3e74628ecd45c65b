package osc

import (
	"strconv"
	"strings"

	"github.com/hnimtadd/vtgrid/terminal/color"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/unicode/norm"
)

// Kind is the decoded meaning of an OSC string.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindChangeTitleAndIcon
	KindChangeIconTitle
	KindChangeTitle
	KindHyperlink
	KindPalette
	KindResetPalette
	KindDynamicColor
	KindResetDynamicColor
)

// Dynamic color slots addressed by OSC 10, 11 and 12.
const (
	DynamicForeground = 10
	DynamicBackground = 11
	DynamicCursor     = 12
)

// Hyperlink is an OSC 8 link. An empty URI ends the current link.
type Hyperlink struct {
	ID  string
	URI string
}

// ColorOp sets or queries one palette entry or dynamic color slot.
type ColorOp struct {
	Index int
	Query bool
	Color color.RGB
}

// Op is a decoded OSC string. Only the fields relevant to Kind are set.
type Op struct {
	Kind       Kind
	Number     int
	Title      string
	Hyperlink  Hyperlink
	Colors     []ColorOp
	Indices    []int
	Terminator Terminator
}

// Parse decodes a command. Malformed payloads decode to KindUnknown or drop
// the malformed entries, never an error: the grid ignores what it cannot
// use.
func Parse(cmd Command) Op {
	num, rest, _ := strings.Cut(cmd.Raw, ";")
	n, err := strconv.Atoi(num)
	if err != nil {
		return Op{Kind: KindUnknown, Number: -1, Terminator: cmd.Terminator}
	}
	op := Op{Number: n, Terminator: cmd.Terminator}
	switch n {
	case 0:
		op.Kind, op.Title = KindChangeTitleAndIcon, decodeText(rest)
	case 1:
		op.Kind, op.Title = KindChangeIconTitle, decodeText(rest)
	case 2:
		op.Kind, op.Title = KindChangeTitle, decodeText(rest)
	case 4:
		op.Kind, op.Colors = KindPalette, parsePalette(rest)
	case 8:
		link, ok := parseHyperlink(rest)
		if !ok {
			op.Kind = KindUnknown
			break
		}
		op.Kind, op.Hyperlink = KindHyperlink, link
	case DynamicForeground, DynamicBackground, DynamicCursor:
		op.Kind, op.Colors = KindDynamicColor, parseDynamic(n, rest)
	case 104:
		op.Kind, op.Indices = KindResetPalette, parseIndices(rest)
	case 110, 111, 112:
		op.Kind, op.Indices = KindResetDynamicColor, []int{n - 100}
	default:
		op.Kind = KindUnknown
	}
	return op
}

// decodeText replaces ill-formed UTF-8 and normalizes to NFC.
func decodeText(s string) string {
	decoded, err := unicode.UTF8.NewDecoder().String(s)
	if err != nil {
		decoded = strings.ToValidUTF8(s, "\uFFFD")
	}
	return norm.NFC.String(decoded)
}

// parsePalette handles "idx;spec;idx;spec...". A "?" spec is a query.
func parsePalette(rest string) []ColorOp {
	parts := strings.Split(rest, ";")
	var ops []ColorOp
	for i := 0; i+1 < len(parts); i += 2 {
		idx, err := strconv.Atoi(parts[i])
		if err != nil || idx < 0 || idx > 255 {
			continue
		}
		if op, ok := colorOp(idx, parts[i+1]); ok {
			ops = append(ops, op)
		}
	}
	return ops
}

// parseDynamic handles OSC 10/11/12. Extra specs address the following
// slots, so "10;red;blue" sets foreground and background.
func parseDynamic(first int, rest string) []ColorOp {
	var ops []ColorOp
	for i, spec := range strings.Split(rest, ";") {
		slot := first + i
		if slot > DynamicCursor {
			break
		}
		if op, ok := colorOp(slot, spec); ok {
			ops = append(ops, op)
		}
	}
	return ops
}

func colorOp(idx int, spec string) (ColorOp, bool) {
	if spec == "?" {
		return ColorOp{Index: idx, Query: true}, true
	}
	c, err := color.ParseSpec(spec)
	if err != nil {
		return ColorOp{}, false
	}
	return ColorOp{Index: idx, Color: c}, true
}

// parseHyperlink handles "params;uri" where params is a colon separated
// list of key=value pairs.
func parseHyperlink(rest string) (Hyperlink, bool) {
	params, uri, found := strings.Cut(rest, ";")
	if !found {
		return Hyperlink{}, false
	}
	link := Hyperlink{URI: uri}
	for _, kv := range strings.Split(params, ":") {
		if key, value, ok := strings.Cut(kv, "="); ok && key == "id" {
			link.ID = value
		}
	}
	return link, true
}

// parseIndices handles OSC 104's optional index list; empty means all.
func parseIndices(rest string) []int {
	if rest == "" {
		return nil
	}
	out := []int{}
	for _, s := range strings.Split(rest, ";") {
		if idx, err := strconv.Atoi(s); err == nil && idx >= 0 && idx <= 255 {
			out = append(out, idx)
		}
	}
	return out
}
