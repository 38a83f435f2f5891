// Package fohash implements the first-order hash family: stateless,
// deterministic hashes from raw key bytes to a bucketing key.
//
// Variants are selected by name through New. Every variant is a pure
// function of its input bytes and reports a fixed output width, which
// the builder uses to decide whether the second-order hash must be
// promoted to its 64-bit sibling.
//
// The byte-level algorithms are load-bearing: generated lookup code
// reproduces the identical computation at query time, so wraparound
// arithmetic and rotate amounts must never change between releases.
package fohash

import (
	"fmt"
	"sort"

	phoerrors "github.com/phogen/phogen/errors"
	"github.com/phogen/phogen/hashval"
)

// Func is a first-order hash variant.
type Func interface {
	// Name returns the registry name of the variant.
	Name() string
	// Bits reports the output width (32 or 64).
	Bits() int
	// Hash computes the bucketing key for the given bytes.
	Hash(data []byte) hashval.Key
}

// DefaultName is the variant used when no first-order hash is configured.
const DefaultName = "murmur3"

var registry = map[string]func() Func{
	"fnv1a":   func() Func { return fnv1a{} },
	"mx32":    func() Func { return mx32{} },
	"murmur3": func() Func { return murmur{} },
	"mx64":    func() Func { return mx64{} },
	"xx64":    func() Func { return xx64{} },
	"xxh3":    func() Func { return xxh3f{} },
}

// New resolves a first-order hash variant by name.
func New(name string) (Func, error) {
	mk, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", phoerrors.ErrUnknownFirstOrderHash, name)
	}
	return mk(), nil
}

// Default returns the default first-order hash.
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
