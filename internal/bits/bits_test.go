package bits

import "testing"

func TestSetMarkTest(t *testing.T) {
	s := NewSet(200)
	if s.Len() != 200 {
		t.Fatalf("Len = %d, want 200", s.Len())
	}
	marks := []uint32{0, 1, 63, 64, 65, 127, 128, 199}
	for _, i := range marks {
		if s.Test(i) {
			t.Errorf("bit %d set before Mark", i)
		}
		s.Mark(i)
	}
	for _, i := range marks {
		if !s.Test(i) {
			t.Errorf("bit %d clear after Mark", i)
		}
	}
	if s.Count() != len(marks) {
		t.Errorf("Count = %d, want %d", s.Count(), len(marks))
	}
	if s.Test(2) || s.Test(66) || s.Test(198) {
		t.Error("unmarked bits reported set")
	}
}

func TestSetMarkIdempotent(t *testing.T) {
	s := NewSet(64)
	s.Mark(7)
	s.Mark(7)
	if s.Count() != 1 {
		t.Errorf("Count after double Mark = %d, want 1", s.Count())
	}
}

func TestSetEmpty(t *testing.T) {
	s := NewSet(0)
	if s.Len() != 0 || s.Count() != 0 {
		t.Errorf("empty set: Len=%d Count=%d", s.Len(), s.Count())
	}
}
