package render

import (
	"sync"

	"github.com/rivo/uniseg"
)

// placeholderText is drawn for glyphs that do not fit the atlas.
const placeholderText = "\ufffd"

// GridAtlas is an in-memory atlas that hands out fixed, cell sized slots
// in first-come order. It rasterizes nothing, so the coordinates it
// returns are deterministic; headless runs and tests use it.
type GridAtlas struct {
	geometry Geometry
	size     int
	perRow   int
	capacity int

	mu    sync.Mutex
	slots map[GlyphKey]int
	next  int
}

var _ Atlas = (*GridAtlas)(nil)

// NewGridAtlas returns an atlas backed by a size x size pixel texture
// split into slots of two cells. The utility sprites and the placeholder
// take the first slots.
func NewGridAtlas(geometry Geometry, size int) *GridAtlas {
	slotWidth := max(int(2*geometry.CellWidth), 1)
	slotHeight := max(int(geometry.CellHeight), 1)
	perRow := max(size/slotWidth, 1)
	a := &GridAtlas{
		geometry: geometry,
		size:     max(size, 1),
		perRow:   perRow,
		capacity: perRow * max(size/slotHeight, 1),
		slots:    make(map[GlyphKey]int),
		next:     int(utilityCount),
	}
	a.slots[GlyphKey{Text: placeholderText}] = a.next
	a.next++
	return a
}

// Capacity is the number of slots, utility sprites included.
func (a *GridAtlas) Capacity() int { return a.capacity }

// Len is the number of slots in use.
func (a *GridAtlas) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.next
}

func (a *GridAtlas) Glyph(key GlyphKey) (Glyph, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	slot, ok := a.slots[key]
	if !ok {
		if a.next >= a.capacity {
			return Glyph{}, false
		}
		slot = a.next
		a.next++
		a.slots[key] = slot
	}
	return a.glyph(key.Text, slot), true
}

func (a *GridAtlas) Placeholder() (Glyph, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	slot, ok := a.slots[GlyphKey{Text: placeholderText}]
	if !ok || slot >= a.capacity {
		return Glyph{}, false
	}
	return a.glyph(placeholderText, slot), true
}

func (a *GridAtlas) Utility(u Utility) Sprite {
	if u >= utilityCount {
		u = UtilityWhiteSpace
	}
	return a.sprite(int(u), 1)
}

// glyph describes text as drawn in slot: as wide as its cells and sitting
// on the baseline.
func (a *GridAtlas) glyph(text string, slot int) Glyph {
	cells := min(max(uniseg.StringWidth(text), 1), 2)
	g := a.geometry
	width := float32(cells) * g.CellWidth
	return Glyph{
		Sprite:   a.sprite(slot, cells),
		HasColor: isColorGlyph(text),
		Width:    width,
		Height:   g.CellHeight,
		BearingY: g.CellHeight + g.Descender,
		XAdvance: width,
	}
}

// sprite returns the normalized rectangle of the first cells of slot.
func (a *GridAtlas) sprite(slot, cells int) Sprite {
	g := a.geometry
	size := float32(a.size)
	left := float32(slot%a.perRow) * 2 * g.CellWidth
	top := float32(slot/a.perRow) * g.CellHeight
	return Sprite{
		Left:   left / size,
		Top:    top / size,
		Right:  (left + float32(cells)*g.CellWidth) / size,
		Bottom: (top + g.CellHeight) / size,
	}
}

// isColorGlyph reports whether the first grapheme of text is an emoji
// drawn in color: a wide pictograph, or anything asking for emoji
// presentation with VS16.
func isColorGlyph(text string) bool {
	cluster, _, width, _ := uniseg.FirstGraphemeClusterInString(text, -1)
	for _, r := range cluster {
		if r == '\ufe0f' {
			return true
		}
	}
	if width < 2 {
		return false
	}
	for _, r := range cluster {
		switch {
		case r >= 0x1F000 && r <= 0x1FAFF,
			r >= 0x2600 && r <= 0x27BF:
			return true
		}
	}
	return false
}
