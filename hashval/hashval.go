// Package hashval defines the small value types shared by the hash
// families and the table builder: Key, a hash output at 32 or 64 bit
// width, and Seed, a hash seed at 32, 64 or 128 bit width.
//
// Both types are immutable and copyable. Narrowing accessors truncate
// to the low bits; see Key.Mod for the width-aware modulo used when
// mapping keys to buckets and slots.
package hashval

import "fmt"

// Width is the bit width of a Key or Seed.
type Width uint8

const (
	W32  Width = 32
	W64  Width = 64
	W128 Width = 128
)

// Key is a first- or second-order hash output.
type Key struct {
	v    uint64
	bits Width
}

// Key32 returns a 32-bit Key.
func Key32(v uint32) Key {
	return Key{v: uint64(v), bits: W32}
}

// Key64 returns a 64-bit Key.
func Key64(v uint64) Key {
	return Key{v: v, bits: W64}
}

// Bits reports the key's width in bits (32 or 64).
func (k Key) Bits() int {
	return int(k.bits)
}

// Uint32 returns the low 32 bits of the key.
func (k Key) Uint32() uint32 {
	return uint32(k.v)
}

// Uint64 returns the key zero-extended to 64 bits.
func (k Key) Uint64() uint64 {
	return k.v
}

// Mod reduces the key modulo n, where n is a 32-bit table or bucket
// count. A 64-bit key is first truncated to its low 32 bits, so the
// high 32 bits never participate in the reduction. This precision loss
// is deliberate: generated lookup code performs the identical 32-bit
// computation, and the two sides must agree bit for bit.
//
// n must be non-zero.
func (k Key) Mod(n uint32) uint32 {
	return uint32(k.v) % n
}

func (k Key) String() string {
	return fmt.Sprintf("0x%0*x/%d", int(k.bits)/4, k.v, k.bits)
}

// Seed is a second-order hash seed.
type Seed struct {
	lo, hi uint64
	bits   Width
}

// Seed32 returns a 32-bit Seed.
func Seed32(v uint32) Seed {
	return Seed{lo: uint64(v), bits: W32}
}

// Seed64 returns a 64-bit Seed.
func Seed64(v uint64) Seed {
	return Seed{lo: v, bits: W64}
}

// Seed128 returns a 128-bit Seed from its low and high halves.
func Seed128(lo, hi uint64) Seed {
	return Seed{lo: lo, hi: hi, bits: W128}
}

// Bits reports the seed's width in bits (32, 64 or 128).
func (s Seed) Bits() int {
	return int(s.bits)
}

// Uint32 returns the low 32 bits of the seed.
func (s Seed) Uint32() uint32 {
	return uint32(s.lo)
}

// Uint64 returns the low 64 bits of the seed.
func (s Seed) Uint64() uint64 {
	return s.lo
}

// Halves returns the low and high 64-bit halves of the seed. The high
// half is zero below 128-bit width.
func (s Seed) Halves() (lo, hi uint64) {
	return s.lo, s.hi
}

func (s Seed) String() string {
	if s.bits == W128 {
		return fmt.Sprintf("0x%016x%016x/128", s.hi, s.lo)
	}
	return fmt.Sprintf("0x%0*x/%d", int(s.bits)/4, s.lo, s.bits)
}
