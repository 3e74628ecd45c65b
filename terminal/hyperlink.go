package terminal

// MaxHyperlinks bounds the hyperlink table. Links started past it are not
// recorded.
const MaxHyperlinks = 1 << 16

// Hyperlink is an OSC 8 link target.
type Hyperlink struct {
	ID  string
	URI string
}

// HyperlinkTable maps the ids cells carry to their links. Links with an
// explicit id and the same URI share one entry.
type HyperlinkTable struct {
	links map[uint32]Hyperlink
	ids   map[Hyperlink]uint32
	next  uint32
}

func NewHyperlinkTable() *HyperlinkTable {
	return &HyperlinkTable{
		links: make(map[uint32]Hyperlink),
		ids:   make(map[Hyperlink]uint32),
		next:  1,
	}
}

// Put records a link and returns its cell id, or 0 when the table is full.
func (h *HyperlinkTable) Put(link Hyperlink) uint32 {
	if link.ID != "" {
		if id, ok := h.ids[link]; ok {
			return id
		}
	}
	if len(h.links) >= MaxHyperlinks {
		return 0
	}
	id := h.next
	h.next++
	h.links[id] = link
	if link.ID != "" {
		h.ids[link] = id
	}
	return id
}

func (h *HyperlinkTable) Get(id uint32) (Hyperlink, bool) {
	link, ok := h.links[id]
	return link, ok
}

func (h *HyperlinkTable) Len() int { return len(h.links) }

func (h *HyperlinkTable) Clear() {
	clear(h.links)
	clear(h.ids)
	h.next = 1
}
