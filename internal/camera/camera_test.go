package camera

import (
	"math"
	"testing"
)

func TestNew_CentresOrigin(t *testing.T) {
	c := New(800, 400)
	if c.X != -400 || c.Y != 200 {
		t.Errorf("initial offset = (%v,%v), want (-400,200)", c.X, c.Y)
	}
	if c.VX != 0 || c.VY != 0 {
		t.Error("camera must start at rest")
	}
}

func TestStep_Directions(t *testing.T) {
	tests := []struct {
		name           string
		in             Input
		wantVX, wantVY float64
	}{
		{"left", Input{Left: true}, -1, 0},
		{"right", Input{Right: true}, 1, 0},
		{"up", Input{Up: true}, 0, 1},
		{"down", Input{Down: true}, 0, -1},
		{"left+right cancel", Input{Left: true, Right: true}, 0, 0},
		{"diagonal", Input{Right: true, Down: true}, 1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(0, 0)
			c.Step(tt.in)
			// позиция сдвигается на скорость ДО затухания
			if c.X != tt.wantVX || c.Y != tt.wantVY {
				t.Errorf("offset = (%v,%v), want (%v,%v)", c.X, c.Y, tt.wantVX, tt.wantVY)
			}
			if math.Abs(c.VX-tt.wantVX*DefaultDamping) > 1e-12 || math.Abs(c.VY-tt.wantVY*DefaultDamping) > 1e-12 {
				t.Errorf("velocity = (%v,%v)", c.VX, c.VY)
			}
		})
	}
}

func TestDamping_Convergence(t *testing.T) {
	c := New(0, 0)
	c.VX, c.VY = 3, 4 // |v0| = 5
	v0 := c.Speed()

	for n := 1; n <= 200; n++ {
		c.Step(Input{})
		want := v0 * math.Pow(DefaultDamping, float64(n))
		if math.Abs(c.Speed()-want) > 1e-9*math.Max(1, want) {
			t.Fatalf("tick %d: |v| = %v, want %v", n, c.Speed(), want)
		}
	}

	if !c.AtRest(1e-3) {
		t.Errorf("camera should be at rest after 200 ticks, |v| = %v", c.Speed())
	}
}

func TestDamping_TotalDisplacement(t *testing.T) {
	// сумма геометрического ряда: v0 / (1 - d)
	c := New(0, 0)
	c.VX = 10
	for n := 0; n < 2000; n++ {
		c.Step(Input{})
	}
	want := 10 / (1 - DefaultDamping)
	if math.Abs(c.X-want) > 1e-6 {
		t.Errorf("coasting distance = %v, want %v", c.X, want)
	}
}

func TestInputBits(t *testing.T) {
	for b := uint8(0); b < 16; b++ {
		if got := InputFromBits(b).Bits(); got != b {
			t.Errorf("bits %04b -> %04b", b, got)
		}
	}
}
