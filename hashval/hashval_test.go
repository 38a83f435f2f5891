package hashval

import "testing"

func TestKeyWidths(t *testing.T) {
	k32 := Key32(0xdeadbeef)
	if k32.Bits() != 32 {
		t.Errorf("Key32 bits = %d, want 32", k32.Bits())
	}
	if k32.Uint32() != 0xdeadbeef || k32.Uint64() != 0xdeadbeef {
		t.Errorf("Key32 accessors = %#x / %#x", k32.Uint32(), k32.Uint64())
	}

	k64 := Key64(0x0123456789abcdef)
	if k64.Bits() != 64 {
		t.Errorf("Key64 bits = %d, want 64", k64.Bits())
	}
	if k64.Uint32() != 0x89abcdef {
		t.Errorf("Key64 narrowing = %#x, want low 32 bits 0x89abcdef", k64.Uint32())
	}
}

func TestKeyModTruncates(t *testing.T) {
	// A 64-bit key reduces via its low 32 bits only: the high half must
	// not influence the result.
	lo := uint64(0x00000000_0000002a)
	hi := uint64(0xffffffff_0000002a)
	n := uint32(17)
	if got, want := Key64(hi).Mod(n), Key64(lo).Mod(n); got != want {
		t.Errorf("Mod ignores high bits: got %d, want %d", got, want)
	}
	if got, want := Key64(lo).Mod(n), uint32(42%17); got != want {
		t.Errorf("Mod = %d, want %d", got, want)
	}
	if got := Key32(100).Mod(7); got != 100%7 {
		t.Errorf("Key32 Mod = %d, want %d", got, 100%7)
	}
}

func TestSeedWidths(t *testing.T) {
	s32 := Seed32(0xcafebabe)
	if s32.Bits() != 32 || s32.Uint32() != 0xcafebabe {
		t.Errorf("Seed32 = %v", s32)
	}

	s64 := Seed64(0x0123456789abcdef)
	if s64.Bits() != 64 || s64.Uint64() != 0x0123456789abcdef {
		t.Errorf("Seed64 = %v", s64)
	}
	if s64.Uint32() != 0x89abcdef {
		t.Errorf("Seed64 narrowing = %#x", s64.Uint32())
	}

	s128 := Seed128(0x1111, 0x2222)
	if s128.Bits() != 128 {
		t.Errorf("Seed128 bits = %d", s128.Bits())
	}
	if lo, hi := s128.Halves(); lo != 0x1111 || hi != 0x2222 {
		t.Errorf("Seed128 halves = %#x, %#x", lo, hi)
	}
	if s128.Uint64() != 0x1111 {
		t.Errorf("Seed128 narrowing = %#x", s128.Uint64())
	}
}
