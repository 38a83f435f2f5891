// Package sohash implements the second-order (displacement) hash
// family: reseedable integer hashes mapping a first-order key to a
// candidate table slot.
//
// Unlike the first-order family, instances are stateful: every bucket
// owns its own instance, and the seed is the single degree of freedom
// the placement search explores. Given a (seed, key) pair the output
// is pure.
//
// Multiply-based variants OR the seed with 1 before use, so the
// effective multiplier is always odd. Multiplication by an odd number
// is a bijection mod 2^w; an even multiplier would discard low bits
// and collapse distinct keys.
package sohash

import (
	"fmt"
	"sort"

	phoerrors "github.com/phogen/phogen/errors"
	"github.com/phogen/phogen/hashval"
)

// Func is a second-order hash variant. Implementations are not safe
// for concurrent use; each bucket holds its own clone.
type Func interface {
	// Name returns the registry name of the variant.
	Name() string
	// Bits reports the output width (32 or 64).
	Bits() int
	// KeyBits reports the widest key domain the variant accepts.
	// Feeding a wider key would silently truncate it, which is why the
	// builder promotes 32-bit variants when paired with a 64-bit
	// first-order hash.
	KeyBits() int
	// Hash maps a first-order key to a candidate slot key under the
	// current seed.
	Hash(k hashval.Key) hashval.Key
	// SetSeed installs a seed, truncating it to the variant's width.
	SetSeed(s hashval.Seed)
	// Seed returns the current seed at the variant's width.
	Seed() hashval.Seed
	// Clone returns an independent copy carrying the current seed.
	Clone() Func
}

// DefaultName is the variant used when no second-order hash is configured.
const DefaultName = "mxf"

var registry = map[string]func() Func{
	"mxf":      func() Func { return &mxf{} },
	"mxf64":    func() Func { return &mxf64{} },
	"xorshift": func() Func { return &xorshift{} },
}

// New resolves a second-order hash variant by name. The returned
// instance carries the zero seed until the placement search installs
// a discovered one.
func New(name string) (Func, error) {
	mk, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", phoerrors.ErrUnknownSecondOrderHash, name)
	}
	return mk(), nil
}

// Default returns the default second-order hash.
func Default() Func {
	f, _ := New(DefaultName)
	return f
}

// Names returns the registered variant names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Promote64 returns a variant whose key domain covers 64-bit
// first-order keys. Variants that already accept 64-bit keys are
// returned unchanged; 32-bit variants are replaced by mxf64, their
// 64-bit-capable sibling, so no key entropy is truncated during
// placement.
func Promote64(f Func) Func {
	if f.KeyBits() >= 64 {
		return f
	}
	return &mxf64{}
}

// fmix64 is the 64-bit avalanche step shared by the multiply-xor-shift
// variants (the MurmurHash3 finalizer constants).
const (
	fmixK1 = 0xff51afd7ed558ccd
	fmixK2 = 0xc4ceb9fe1a85ec53
)

// mxf is the 32-bit-output multiply-xor-shift mixer. The 32-bit key is
// widened, multiplied by the odd seed, and pushed through one
// xor-shift-multiply round before truncating back to 32 bits.
type mxf struct {
	seed uint32
}

func (*mxf) Name() string { return "mxf" }
func (*mxf) Bits() int    { return 32 }
func (*mxf) KeyBits() int { return 32 }

func (m *mxf) Hash(k hashval.Key) hashval.Key {
	h := uint64(k.Uint32()) * uint64(m.seed|1)
	h ^= h >> 33
	h *= fmixK1
	h ^= h >> 33
	return hashval.Key32(uint32(h))
}

func (m *mxf) SetSeed(s hashval.Seed) { m.seed = s.Uint32() }
func (m *mxf) Seed() hashval.Seed     { return hashval.Seed32(m.seed) }
func (m *mxf) Clone() Func            { c := *m; return &c }

// mxf64 is the 64-bit sibling of mxf: full 64-bit key domain, 64-bit
// seed and output, two avalanche rounds.
type mxf64 struct {
	seed uint64
}

func (*mxf64) Name() string { return "mxf64" }
func (*mxf64) Bits() int    { return 64 }
func (*mxf64) KeyBits() int { return 64 }

func (m *mxf64) Hash(k hashval.Key) hashval.Key {
	h := k.Uint64() * (m.seed | 1)
	h ^= h >> 33
	h *= fmixK1
	h ^= h >> 33
	h *= fmixK2
	h ^= h >> 33
	return hashval.Key64(h)
}

func (m *mxf64) SetSeed(s hashval.Seed) { m.seed = s.Uint64() }
func (m *mxf64) Seed() hashval.Seed     { return hashval.Seed64(m.seed) }
func (m *mxf64) Clone() Func            { c := *m; return &c }

// xorshift is the classic 13/17/5 xorshift step over the seed-xored
// 32-bit key. It is cheap and has no multiplier, so no odd-seed
// adjustment applies.
type xorshift struct {
	seed uint32
}

func (*xorshift) Name() string { return "xorshift" }
func (*xorshift) Bits() int    { return 32 }
func (*xorshift) KeyBits() int { return 32 }

func (x *xorshift) Hash(k hashval.Key) hashval.Key {
	v := k.Uint32() ^ x.seed
	v ^= v << 13
	v ^= v >> 17
	v ^= v << 5
	return hashval.Key32(v)
}

func (x *xorshift) SetSeed(s hashval.Seed) { x.seed = s.Uint32() }
func (x *xorshift) Seed() hashval.Seed     { return hashval.Seed32(x.seed) }
func (x *xorshift) Clone() Func            { c := *x; return &c }
