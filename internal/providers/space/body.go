package space

import (
	"math"
	"strconv"

	"isoworld/internal/world"
	"isoworld/pkg/hashfield"
)

// Kind - содержимое тайла. При совпадении нескольких признаков побеждает
// более редкий: галактика, планета, астероид, звезда.
type Kind int

const (
	Empty Kind = iota
	Star
	Planet
	Galaxy
	Asteroid
)

func (k Kind) String() string {
	switch k {
	case Star:
		return "star"
	case Planet:
		return "planet"
	case Galaxy:
		return "galaxy"
	case Asteroid:
		return "asteroid"
	default:
		return "empty"
	}
}

// Планеты: 0 - гладкая, 1 - с кольцом, 2 - с кратерами.
const (
	PlanetPlain = iota
	PlanetRinged
	PlanetCratered
)

const (
	hullPoints = 6
	craters    = 3
)

type Crater struct {
	X, Y, R float64
}

// Body - всё, что нужно для отрисовки тайла. Вычисляется только из сида
// и координаты, поэтому его можно кэшировать и пересчитывать в любой момент.
type Body struct {
	Kind Kind

	Hue        float64
	PlanetType int
	Radius     float64
	Craters    [craters]Crater

	Hull [hullPoints]float64 // радиусы вершин астероида

	StarX, StarY float64 // смещение звезды внутри ромба
}

func IsStar(f hashfield.Field, i, j int) bool { return f.Chance("star", i, j, 20, 1) }
func IsPlanet(f hashfield.Field, i, j int) bool { return f.Chance("planet", i, j, 200, 4) }
func IsGalaxy(f hashfield.Field, i, j int) bool { return f.Chance("galaxy", i, j, 500, 3) }
func IsAsteroid(f hashfield.Field, i, j int) bool { return f.Chance("asteroid", i, j, 100, 10) }

// Classify определяет содержимое тайла без учёта региона.
func Classify(f hashfield.Field, i, j int) Kind {
	switch {
	case IsGalaxy(f, i, j):
		return Galaxy
	case IsPlanet(f, i, j):
		return Planet
	case IsAsteroid(f, i, j):
		return Asteroid
	case IsStar(f, i, j):
		return Star
	default:
		return Empty
	}
}

// Describe строит тело тайла для размеров тайла tw×th.
func Describe(f hashfield.Field, i, j int, tw, th float64) Body {
	b := Body{Kind: Classify(f, i, j)}
	switch b.Kind {
	case Galaxy:
		b.Hue = float64(f.At("ghue", i, j) % 360)
		b.Radius = tw * 2
	case Planet:
		b.PlanetType = f.Pick("ptype", i, j, 3)
		b.Hue = float64(f.At("phue", i, j) % 360)
		b.Radius = f.Range("prad", i, j, tw*0.8, tw*1.6)
		if b.PlanetType == PlanetCratered {
			for k := range b.Craters {
				b.Craters[k] = Crater{
					X: f.Range("craterX", i, j, -b.Radius/3, b.Radius/3, k),
					Y: f.Range("craterY", i, j, -b.Radius/3, b.Radius/3, k),
					R: f.Range("craterR", i, j, b.Radius*0.1, b.Radius*0.2, k),
				}
			}
		}
	case Asteroid:
		b.Radius = tw * 0.5
		for k := range b.Hull {
			b.Hull[k] = f.Range("astPt", i, j, b.Radius*0.6, b.Radius, k)
		}
	case Star:
		b.StarX = (f.Noise(float64(i)+100, float64(j)+100)*2 - 1) * tw * 0.4
		b.StarY = (f.Noise(float64(i)+200, float64(j)+200)*2 - 1) * th * 0.4
	}
	return b
}

func (b Body) attrs() map[string]string {
	m := map[string]string{}
	switch b.Kind {
	case Galaxy:
		m["hue"] = strconv.Itoa(int(b.Hue))
	case Planet:
		m["hue"] = strconv.Itoa(int(b.Hue))
		m["planetType"] = strconv.Itoa(b.PlanetType)
		m["radius"] = strconv.FormatFloat(b.Radius, 'f', 2, 64)
	case Asteroid:
		m["radius"] = strconv.FormatFloat(b.Radius, 'f', 2, 64)
	case Star:
		m["x"] = strconv.FormatFloat(b.StarX, 'f', 2, 64)
		m["y"] = strconv.FormatFloat(b.StarY, 'f', 2, 64)
	}
	return m
}

// hull возвращает вершины астероида.
func (b Body) hull() []world.Point {
	pts := make([]world.Point, hullPoints)
	for k, r := range b.Hull {
		theta := float64(k) / hullPoints * 2 * math.Pi
		pts[k] = world.Point{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
	}
	return pts
}
