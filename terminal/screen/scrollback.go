package screen

// Scrollback is a bounded ring of lines evicted from the top of the
// primary screen. Once full, the oldest line is dropped first.
type Scrollback struct {
	lines []*Line
	start int
	count int
}

func NewScrollback(limit int) *Scrollback {
	return &Scrollback{lines: make([]*Line, max(limit, 0))}
}

func (s *Scrollback) Len() int { return s.count }

func (s *Scrollback) Max() int { return len(s.lines) }

// Push appends l as the newest line. It reports whether the oldest line
// was evicted to make room.
func (s *Scrollback) Push(l *Line) bool {
	if len(s.lines) == 0 {
		return true
	}
	l.ClearDirty()
	if s.count < len(s.lines) {
		s.lines[(s.start+s.count)%len(s.lines)] = l
		s.count++
		return false
	}
	s.lines[s.start] = l
	s.start = (s.start + 1) % len(s.lines)
	return true
}

// Line returns the i-th line, 0 being the oldest. Out of range indexes
// return nil.
func (s *Scrollback) Line(i int) *Line {
	if i < 0 || i >= s.count {
		return nil
	}
	return s.lines[(s.start+i)%len(s.lines)]
}

// Clear drops every line.
func (s *Scrollback) Clear() {
	clear(s.lines)
	s.start = 0
	s.count = 0
}
