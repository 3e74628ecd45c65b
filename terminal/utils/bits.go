package utils

import (
	"math/bits"
)

const wordBits = 64

// StaticBitSet is a fixed-size bit set backed by uint64 words.
type StaticBitSet struct {
	words []uint64
	size  int
}

// NewStaticBitSet creates a bit set able to hold size bits, all clear.
func NewStaticBitSet(size int) *StaticBitSet {
	Assert(size >= 0, "negative bit set size %d", size)
	return &StaticBitSet{
		words: make([]uint64, (size+wordBits-1)/wordBits),
		size:  size,
	}
}

// NewStaticBitSetFull creates a bit set with every bit set.
func NewStaticBitSetFull(size int) *StaticBitSet {
	s := NewStaticBitSet(size)
	s.SetRange(0, size)
	return s
}

// Len is the number of bits the set holds.
func (s *StaticBitSet) Len() int { return s.size }

func (s *StaticBitSet) addr(idx int) (int, uint) {
	Assert(idx >= 0 && idx < s.size, "bit %d out of bounds [0,%d)", idx, s.size)
	return idx / wordBits, uint(idx % wordBits)
}

// Set sets the bit at idx.
func (s *StaticBitSet) Set(idx int) {
	w, off := s.addr(idx)
	s.words[w] |= 1 << off
}

// Unset clears the bit at idx.
func (s *StaticBitSet) Unset(idx int) {
	w, off := s.addr(idx)
	s.words[w] &^= 1 << off
}

// IsSet reports whether the bit at idx is set.
func (s *StaticBitSet) IsSet(idx int) bool {
	w, off := s.addr(idx)
	return s.words[w]&(1<<off) != 0
}

// SetRange sets every bit in [start, end).
func (s *StaticBitSet) SetRange(start, end int) {
	Assert(0 <= start && start <= end && end <= s.size,
		"range [%d,%d) out of bounds [0,%d)", start, end, s.size)
	for start < end {
		w, off := start/wordBits, uint(start%wordBits)
		n := min(wordBits-int(off), end-start)
		var mask uint64
		if n == wordBits {
			mask = ^uint64(0)
		} else {
			mask = ((1 << uint(n)) - 1) << off
		}
		s.words[w] |= mask
		start += n
	}
}

// Count returns the number of set bits.
func (s *StaticBitSet) Count() int {
	total := 0
	for _, w := range s.words {
		total += bits.OnesCount64(w)
	}
	return total
}

// Any reports whether at least one bit is set.
func (s *StaticBitSet) Any() bool {
	for _, w := range s.words {
		if w != 0 {
			return true
		}
	}
	return false
}

// Next returns the index of the first set bit at or after from, or -1.
func (s *StaticBitSet) Next(from int) int {
	if from < 0 {
		from = 0
	}
	for w := from / wordBits; w < len(s.words); w++ {
		word := s.words[w]
		if w == from/wordBits {
			word &= ^uint64(0) << uint(from%wordBits)
		}
		if word != 0 {
			idx := w*wordBits + bits.TrailingZeros64(word)
			if idx >= s.size {
				return -1
			}
			return idx
		}
	}
	return -1
}

// Clear unsets every bit.
func (s *StaticBitSet) Clear() {
	clear(s.words)
}
