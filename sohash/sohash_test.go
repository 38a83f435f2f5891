package sohash

import (
	"errors"
	"testing"

	phoerrors "github.com/phogen/phogen/errors"
	"github.com/phogen/phogen/hashval"
)

func TestRegistry(t *testing.T) {
	widths := map[string]struct{ out, key, seed int }{
		"mxf":      {32, 32, 32},
		"mxf64":    {64, 64, 64},
		"xorshift": {32, 32, 32},
	}
	for name, want := range widths {
		f, err := New(name)
		if err != nil {
			t.Fatalf("New(%s): %v", name, err)
		}
		if f.Name() != name {
			t.Errorf("%s: Name() = %q", name, f.Name())
		}
		if f.Bits() != want.out {
			t.Errorf("%s: Bits() = %d, want %d", name, f.Bits(), want.out)
		}
		if f.KeyBits() != want.key {
			t.Errorf("%s: KeyBits() = %d, want %d", name, f.KeyBits(), want.key)
		}
		if f.Seed().Bits() != want.seed {
			t.Errorf("%s: seed width = %d, want %d", name, f.Seed().Bits(), want.seed)
		}
	}
}

func TestUnknownName(t *testing.T) {
	_, err := New("rot13")
	if !errors.Is(err, phoerrors.ErrUnknownSecondOrderHash) {
		t.Errorf("New(rot13) err = %v, want ErrUnknownSecondOrderHash", err)
	}
}

func TestSeedRoundTrip(t *testing.T) {
	f, _ := New("mxf")
	f.SetSeed(hashval.Seed32(0xabad1dea))
	if got := f.Seed().Uint32(); got != 0xabad1dea {
		t.Errorf("seed = %#x, want 0xabad1dea", got)
	}

	f64, _ := New("mxf64")
	f64.SetSeed(hashval.Seed64(0x0123456789abcdef))
	if got := f64.Seed().Uint64(); got != 0x0123456789abcdef {
		t.Errorf("seed = %#x", got)
	}

	// A wide seed narrows to the variant's width.
	f.SetSeed(hashval.Seed128(0xffffffff_00c0ffee, 0x1234))
	if got := f.Seed().Uint32(); got != 0x00c0ffee {
		t.Errorf("narrowed seed = %#x, want 0x00c0ffee", got)
	}
}

func TestPureGivenSeedAndKey(t *testing.T) {
	key := hashval.Key32(0x5eed)
	for _, name := range Names() {
		f, _ := New(name)
		f.SetSeed(hashval.Seed64(12345))
		first := f.Hash(key)
		for i := 0; i < 3; i++ {
			if got := f.Hash(key); got != first {
				t.Errorf("%s not pure given (seed, key)", name)
			}
		}
		f.SetSeed(hashval.Seed64(54321))
		f.Hash(key)
		f.SetSeed(hashval.Seed64(12345))
		if got := f.Hash(key); got != first {
			t.Errorf("%s: restoring a seed changed the output", name)
		}
	}
}

func TestOddMultiplier(t *testing.T) {
	// The seed is OR'd with 1, so an even seed and its odd successor
	// drive the same multiplier.
	key := hashval.Key32(98765)

	a, _ := New("mxf")
	b, _ := New("mxf")
	a.SetSeed(hashval.Seed32(42))
	b.SetSeed(hashval.Seed32(43))
	if a.Hash(key) != b.Hash(key) {
		t.Error("mxf: seeds 42 and 43 should collapse to the same odd multiplier")
	}

	a64, _ := New("mxf64")
	b64, _ := New("mxf64")
	a64.SetSeed(hashval.Seed64(42))
	b64.SetSeed(hashval.Seed64(43))
	if a64.Hash(key) != b64.Hash(key) {
		t.Error("mxf64: seeds 42 and 43 should collapse to the same odd multiplier")
	}
}

func TestPromote64(t *testing.T) {
	for _, name := range []string{"mxf", "xorshift"} {
		f, _ := New(name)
		p := Promote64(f)
		if p.Name() != "mxf64" || p.KeyBits() != 64 || p.Bits() != 64 {
			t.Errorf("Promote64(%s) = %s (key %d bits)", name, p.Name(), p.KeyBits())
		}
	}
	f, _ := New("mxf64")
	if p := Promote64(f); p != f {
		t.Error("Promote64(mxf64) should return the instance unchanged")
	}
}

func TestCloneIndependence(t *testing.T) {
	f, _ := New("xorshift")
	f.SetSeed(hashval.Seed32(1))
	c := f.Clone()
	c.SetSeed(hashval.Seed32(2))
	if f.Seed().Uint32() != 1 {
		t.Error("reseeding a clone mutated the original")
	}
	if c.Seed().Uint32() != 2 {
		t.Error("clone did not take its own seed")
	}
}
