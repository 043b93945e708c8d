package world

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSB переводит цвет из модели HSB (h 0..360, s и b 0..100, a 0..255) в RGBA.
// Диапазоны как у colorMode(HSB, 360, 100, 100, 255).
func HSB(h, s, b, a float64) color.NRGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := colorful.Hsv(h, clamp01(s/100), clamp01(b/100))
	r, g, bl := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: bl, A: clampByte(a)}
}

// RGB - непрозрачный цвет из компонент 0..255.
func RGB(r, g, b float64) color.NRGBA {
	return RGBA(r, g, b, 255)
}

// RGBA - цвет из компонент 0..255.
func RGBA(r, g, b, a float64) color.NRGBA {
	return color.NRGBA{R: clampByte(r), G: clampByte(g), B: clampByte(b), A: clampByte(a)}
}

// Gray - оттенок серого.
func Gray(v, a float64) color.NRGBA {
	return RGBA(v, v, v, a)
}

// Remap линейно переносит v из [a0, a1] в [b0, b1].
func Remap(v, a0, a1, b0, b1 float64) float64 {
	if a1 == a0 {
		return b0
	}
	return b0 + (v-a0)*(b1-b0)/(a1-a0)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func clampByte(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}
