package hashfield

import (
	"math"
	"testing"
)

func TestNoise_RangeAndPurity(t *testing.T) {
	f := New("xyzzy")
	for i := -100; i < 100; i += 7 {
		for j := -100; j < 100; j += 11 {
			x, y := float64(i)*0.1, float64(j)*0.1
			v := f.Noise(x, y)
			if v < 0 || v > 1 {
				t.Fatalf("Noise(%v,%v) = %v out of [0,1]", x, y, v)
			}
			if again := f.Noise(x, y); again != v {
				t.Fatalf("Noise(%v,%v) not pure: %v vs %v", x, y, v, again)
			}
		}
	}
}

func TestNoise_Continuity(t *testing.T) {
	f := New("smooth")
	const step = 1e-4
	for x := 0.0; x < 5; x += 0.37 {
		a := f.Noise(x, 1.3)
		b := f.Noise(x+step, 1.3)
		if math.Abs(a-b) > 0.01 {
			t.Errorf("Noise jumps at x=%v: %v -> %v", x, a, b)
		}
	}
}

func TestNoise_SeedChangesField(t *testing.T) {
	a, b := New("alpha"), New("beta")
	same := 0
	for i := 0; i < 50; i++ {
		if a.Noise(float64(i)*0.3, 0.5) == b.Noise(float64(i)*0.3, 0.5) {
			same++
		}
	}
	if same > 5 {
		t.Errorf("different seeds produced %d identical samples", same)
	}
}
