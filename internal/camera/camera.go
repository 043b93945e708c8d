// Package camera - смещение вида и его затухающая скорость.
package camera

import "math"

const (
	DefaultAcceleration = 1.0
	DefaultDamping      = 0.95
)

// Input - четыре независимых направления, опрашиваются раз в тик.
type Input struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool
}

// Bits упаковывает ввод в байт (для записи сессии).
func (in Input) Bits() uint8 {
	var b uint8
	if in.Left {
		b |= 1
	}
	if in.Right {
		b |= 2
	}
	if in.Up {
		b |= 4
	}
	if in.Down {
		b |= 8
	}
	return b
}

// InputFromBits - обратная операция к Bits.
func InputFromBits(b uint8) Input {
	return Input{Left: b&1 != 0, Right: b&2 != 0, Up: b&4 != 0, Down: b&8 != 0}
}

// Camera хранит непрерывное смещение (X, Y) и скорость (VX, VY) в пикселях.
// Смещение не ограничено: мир бесконечен во все стороны.
type Camera struct {
	X, Y   float64
	VX, VY float64

	Acceleration float64
	Damping      float64 // 0 < Damping < 1
}

// New создает камеру, у которой тайл (0,0) оказывается в центре вида w×h.
func New(w, h int) *Camera {
	return &Camera{
		X:            -float64(w) / 2,
		Y:            float64(h) / 2,
		Acceleration: DefaultAcceleration,
		Damping:      DefaultDamping,
	}
}

// Step - один тик: ускорение от ввода, сдвиг, затухание.
// Затухание применяется всегда, даже без ввода.
func (c *Camera) Step(in Input) {
	if in.Left {
		c.VX -= c.Acceleration
	}
	if in.Right {
		c.VX += c.Acceleration
	}
	if in.Up {
		c.VY += c.Acceleration
	}
	if in.Down {
		c.VY -= c.Acceleration
	}

	c.X += c.VX
	c.Y += c.VY

	c.VX *= c.Damping
	c.VY *= c.Damping
}

// Speed - модуль скорости.
func (c *Camera) Speed() float64 {
	return math.Hypot(c.VX, c.VY)
}

// AtRest сообщает, что скорость упала ниже eps.
func (c *Camera) AtRest(eps float64) bool {
	return c.Speed() < eps
}
