// Package bits provides the occupancy bit set used by the placement search.
package bits

import "math/bits"

// Set is a fixed-size bit set over [0, n). The zero value is unusable;
// construct with NewSet.
type Set struct {
	words []uint64
	n     int
}

// NewSet returns a Set covering [0, n) with all bits clear.
func NewSet(n int) *Set {
	return &Set{
		words: make([]uint64, (n+63)/64),
		n:     n,
	}
}

// Len returns the size of the domain.
func (s *Set) Len() int {
	return s.n
}

// Test reports whether bit i is set.
func (s *Set) Test(i uint32) bool {
	return s.words[i>>6]&(1<<(i&63)) != 0
}

// Mark sets bit i.
func (s *Set) Mark(i uint32) {
	s.words[i>>6] |= 1 << (i & 63)
}

// Count returns the number of set bits.
func (s *Set) Count() int {
	total := 0
	for _, w := range s.words {
		total += bits.OnesCount64(w)
	}
	return total
}
