package fohash

import (
	"encoding/binary"
	"math/bits"

	"github.com/phogen/phogen/hashval"
)

// mx32 is a streaming multiply-rotate mixer over 4-byte little-endian
// blocks with single-byte tail handling. The finalizer xors in the
// input length and applies a 32-bit avalanche pass.
type mx32 struct{}

const (
	mx32Init = 0x9e3779b9
	mx32Mul1 = 0x85ebca6b
	mx32Mul2 = 0xc2b2ae35
)

func (mx32) Name() string { return "mx32" }
func (mx32) Bits() int    { return 32 }

func (mx32) Hash(data []byte) hashval.Key {
	h := uint32(mx32Init)
	i := 0
	for ; i+4 <= len(data); i += 4 {
		k := binary.LittleEndian.Uint32(data[i:])
		h = bits.RotateLeft32(h^(k*mx32Mul1), 13) * mx32Mul2
	}
	for ; i < len(data); i++ {
		h = bits.RotateLeft32(h^(uint32(data[i])*mx32Mul1), 11) * mx32Mul2
	}
	h ^= uint32(len(data))
	h ^= h >> 16
	h *= mx32Mul1
	h ^= h >> 13
	h *= mx32Mul2
	h ^= h >> 16
	return hashval.Key32(h)
}

// mx64 is the 64-bit streaming mixer: 8-byte little-endian blocks, the
// remaining tail packed into one partial word, and a SplitMix64
// finalizer (Stafford variant) for avalanche.
type mx64 struct{}

const (
	mx64Mul = 0x517cc1b727220a95
	mix64K1 = 0xbf58476d1ce4e5b9
	mix64K2 = 0x94d049bb133111eb
)

func (mx64) Name() string { return "mx64" }
func (mx64) Bits() int    { return 64 }

func (mx64) Hash(data []byte) hashval.Key {
	h := uint64(len(data)) * mx64Mul
	i := 0
	for ; i+8 <= len(data); i += 8 {
		k := binary.LittleEndian.Uint64(data[i:])
		h = bits.RotateLeft64(h^(k*mix64K1), 27) * mx64Mul
	}
	var tail uint64
	for shift := 0; i < len(data); i, shift = i+1, shift+8 {
		tail |= uint64(data[i]) << shift
	}
	h ^= tail
	h ^= h >> 30
	h *= mix64K1
	h ^= h >> 27
	h *= mix64K2
	h ^= h >> 31
	return hashval.Key64(h)
}
