// Package osc accumulates Operating System Command strings and decodes the
// ones the grid understands.
package osc

// MaxLength caps the accumulated payload of a single OSC string. Longer
// strings are dropped whole.
const MaxLength = 4096

// Terminator records how a string ended so replies can mirror it.
type Terminator uint8

const (
	TerminatorST Terminator = iota
	TerminatorBEL
)

// String returns the bytes of the terminator.
func (t Terminator) String() string {
	if t == TerminatorBEL {
		return "\x07"
	}
	return "\x1b\\"
}

// Command is a complete, uninterpreted OSC string.
type Command struct {
	Raw        string
	Terminator Terminator
}

// Parser collects OSC payload bytes between start and end. It never
// holds more than its limit.
type Parser struct {
	buf      []byte
	limit    int
	overflow bool
}

// NewParser returns a parser capped at limit bytes; limit <= 0 means
// MaxLength.
func NewParser(limit int) *Parser {
	if limit <= 0 {
		limit = MaxLength
	}
	return &Parser{limit: limit, buf: make([]byte, 0, 64)}
}

// Reset discards any partial string.
func (p *Parser) Reset() {
	p.buf = p.buf[:0]
	p.overflow = false
}

// Put appends one payload byte.
func (p *Parser) Put(c uint8) {
	if p.overflow {
		return
	}
	if len(p.buf) >= p.limit {
		p.overflow = true
		p.buf = p.buf[:0]
		return
	}
	p.buf = append(p.buf, c)
}

// Overflowed reports whether the current string exceeded the limit.
func (p *Parser) Overflowed() bool { return p.overflow }

// End finishes the current string. ok is false when the string overflowed
// and must be discarded. The parser is reset either way.
func (p *Parser) End(term Terminator) (cmd Command, ok bool) {
	defer p.Reset()
	if p.overflow {
		return Command{}, false
	}
	return Command{Raw: string(p.buf), Terminator: term}, true
}
