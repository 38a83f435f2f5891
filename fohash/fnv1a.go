package fohash

import "github.com/phogen/phogen/hashval"

const (
	fnvOffset32 = 0x811c9dc5
	fnvPrime32  = 0x01000193
)

// fnv1a is the 32-bit FNV-1a hash: xor each byte into the accumulator,
// then multiply by the FNV prime. hash("") = 0x811c9dc5.
type fnv1a struct{}

func (fnv1a) Name() string { return "fnv1a" }
func (fnv1a) Bits() int    { return 32 }

func (fnv1a) Hash(data []byte) hashval.Key {
	h := uint32(fnvOffset32)
	for _, b := range data {
		h ^= uint32(b)
		h *= fnvPrime32
	}
	return hashval.Key32(h)
}
