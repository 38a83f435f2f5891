package fohash

import (
	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"

	"github.com/phogen/phogen/hashval"
)

// MurmurSeed is the fixed internal seed of the murmur3 variant. It is
// part of the variant's definition, not configuration: generated lookup
// code bakes the same constant into its murmur3 reference source.
const MurmurSeed = 0x9747b28c

// murmur is 32-bit MurmurHash3 with the fixed internal seed above.
type murmur struct{}

func (murmur) Name() string { return "murmur3" }
func (murmur) Bits() int    { return 32 }

func (murmur) Hash(data []byte) hashval.Key {
	return hashval.Key32(murmur3.Sum32WithSeed(data, MurmurSeed))
}

// xx64 is 64-bit xxHash (XXH64 with seed 0).
type xx64 struct{}

func (xx64) Name() string { return "xx64" }
func (xx64) Bits() int    { return 64 }

func (xx64) Hash(data []byte) hashval.Key {
	return hashval.Key64(xxhash.Sum64(data))
}

// xxh3f is 64-bit xxHash3.
type xxh3f struct{}

func (xxh3f) Name() string { return "xxh3" }
func (xxh3f) Bits() int    { return 64 }

func (xxh3f) Hash(data []byte) hashval.Key {
	return hashval.Key64(xxh3.Hash(data))
}
