package hashfield

import "math"

// Параметры октав: 4 октавы, затухание 0.5.
const (
	noiseOctaves     = 4
	noisePersistence = 0.5
	noiseLacunarity  = 2.0
)

// Noise - гладкий value noise в [0, 1], детерминированный по сиду поля.
// Узлы решётки берутся из Hash2, поэтому шов между соседними окнами
// камеры невозможен: значение зависит только от мировых координат.
func (f Field) Noise(x, y float64) float64 {
	amplitude := 1.0
	frequency := 1.0
	sum, norm := 0.0, 0.0
	for o := 0; o < noiseOctaves; o++ {
		sum += valueNoise(f.Seed+uint32(o)*0x632be5ab, x*frequency, y*frequency) * amplitude
		norm += amplitude
		amplitude *= noisePersistence
		frequency *= noiseLacunarity
	}
	return sum / norm
}

func valueNoise(seed uint32, x, y float64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	fx := fade(x - x0)
	fy := fade(y - y0)

	xi, yi := int32(x0), int32(y0)
	v00 := lattice(seed, xi, yi)
	v10 := lattice(seed, xi+1, yi)
	v01 := lattice(seed, xi, yi+1)
	v11 := lattice(seed, xi+1, yi+1)

	top := lerp(v00, v10, fx)
	bottom := lerp(v01, v11, fx)
	return lerp(top, bottom, fy)
}

func lattice(seed uint32, x, y int32) float64 {
	return float64(Hash2(seed, x, y)) / math.MaxUint32
}

// fade - сглаживание 6t^5 - 15t^4 + 10t^3
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}
