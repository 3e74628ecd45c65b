package stream

import (
	"github.com/hnimtadd/vtgrid/logger"
	"github.com/hnimtadd/vtgrid/terminal/ansi"
	"github.com/hnimtadd/vtgrid/terminal/parser"
	"github.com/hnimtadd/vtgrid/terminal/utils"
)

// MaxCodePoints is how many codepoints are decoded per batch on the slice
// path.
const MaxCodePoints = 4096

// Handler receives every action the stream produces, in input order.
type Handler interface {
	Handle(action parser.Action)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(action parser.Action)

func (f HandlerFunc) Handle(action parser.Action) { f(action) }

// Stream turns pty output into parser actions. UTF-8 is decoded in the
// ground state; everything else goes through the escape sequence parser.
//
// The decoder and parser state are the only continuation between calls, so
// feeding any split of a byte sequence produces the same actions.
type Stream struct {
	handler     Handler
	parser      *parser.Parser
	utf8Decoder *UTF8Decoder
	cpBuf       []uint32

	logger logger.Logger
}

func NewStream(handler Handler, log logger.Logger) *Stream {
	if log == nil {
		log = logger.Nop
	}
	return &Stream{
		handler:     handler,
		parser:      parser.NewParser(log),
		utf8Decoder: NewUTF8Decoder(),
		cpBuf:       make([]uint32, MaxCodePoints),
		logger:      log,
	}
}

// State exposes the parser state, mostly for tests and debugging.
func (s *Stream) State() parser.State {
	return s.parser.State
}

// NextSlice processes a chunk of bytes.
func (s *Stream) NextSlice(input []uint8) {
	offset := 0
	for offset < len(input) {
		if s.parser.State != parser.StateGround {
			s.nextNonUtf8(input[offset])
			offset++
			continue
		}

		// In ground every byte up to the next control is UTF-8 text.
		decoded, consumed := s.utf8Decoder.DecodeUntilControl(input[offset:], s.cpBuf)
		for _, cp := range s.cpBuf[:decoded] {
			s.print(cp)
		}
		offset += consumed

		if offset < len(input) && decoded < len(s.cpBuf) && !s.utf8Decoder.InProgress() {
			// DecodeUntilControl stopped at a control byte.
			s.nextNonUtf8(input[offset])
			offset++
		}
	}
}

// Next processes a single byte. Prefer NextSlice for chunks.
func (s *Stream) Next(c uint8) {
	switch s.parser.State {
	case parser.StateGround:
		s.nextUtf8(c)
	default:
		s.nextNonUtf8(c)
	}
}

// nextUtf8 runs one byte through the decoder.
func (s *Stream) nextUtf8(c uint8) {
	utils.Assert(s.parser.State == parser.StateGround, "utf8 decoding outside the ground state")

	cp, generated, consumed := s.utf8Decoder.Next(c)
	if generated {
		s.handleCodepoint(cp)
	}

	if !consumed {
		cp, generated, consumed := s.utf8Decoder.Next(c)

		// It should be impossible for the decoder to not consume the byte
		// twice in a row.
		utils.Assert(consumed, "utf8 decoder refused byte %#x twice", c)
		if generated {
			s.handleCodepoint(cp)
		}
	}
}

// handleCodepoint routes a decoded codepoint: controls go to the parser,
// which executes them or starts a sequence; everything else is printed.
func (s *Stream) handleCodepoint(cp uint32) {
	if ansi.IsC0(cp) {
		s.nextNonUtf8(uint8(cp))
		return
	}
	s.print(cp)
}

func (s *Stream) print(cp uint32) {
	s.handler.Handle(parser.Action{Type: parser.ActionPrint, PrintData: rune(cp)})
}

// nextNonUtf8 feeds the parser directly.
func (s *Stream) nextNonUtf8(c uint8) {
	for _, action := range s.parser.Next(c) {
		if action == nil {
			continue
		}
		if action.Type != parser.ActionPrint && action.Type != parser.ActionDCSPut {
			s.logger.Debug("stream action", "action", action.String(), "byte", ansi.String(c))
		}
		s.handler.Handle(*action)
	}
}

// Collect parses input with a fresh stream and returns every action. It is
// meant for fixtures and tools, not the hot path.
func Collect(input []byte) []parser.Action {
	var out []parser.Action
	s := NewStream(HandlerFunc(func(a parser.Action) {
		out = append(out, a)
	}), nil)
	s.NextSlice(input)
	return out
}
