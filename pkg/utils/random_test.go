package utils

import "testing"

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if len(a) != 16 {
		t.Errorf("len(GenerateID()) = %d, want 16", len(a))
	}
	if a == b {
		t.Errorf("two IDs collided: %s", a)
	}
}

func TestStreamReproducible(t *testing.T) {
	s1, s2 := NewStream(42), NewStream(42)
	for i := 0; i < 100; i++ {
		if s1.Range(-30, 30) != s2.Range(-30, 30) {
			t.Fatalf("streams diverged at step %d", i)
		}
	}
}

func TestStreamBounds(t *testing.T) {
	s := NewStream(7)
	for i := 0; i < 1000; i++ {
		if v := s.Range(0.05, 0.2); v < 0.05 || v >= 0.2 {
			t.Fatalf("Range out of bounds: %v", v)
		}
		if v := s.Intn(10); v < 0 || v >= 10 {
			t.Fatalf("Intn out of bounds: %v", v)
		}
		if v := s.Float(); v < 0 || v >= 1 {
			t.Fatalf("Float out of bounds: %v", v)
		}
	}
	if s.Intn(0) != 0 || s.Intn(-3) != 0 {
		t.Error("Intn(n<=0) must be 0")
	}
}
