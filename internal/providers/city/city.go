// Package city - неоновый мегаполис: бесконечная полоса из 10 рядов башен
// вдоль +i, перекраска по клику и летающие машины.
package city

import (
	"math"
	"strconv"

	"isoworld/internal/world"
	"isoworld/pkg/api"
	"isoworld/pkg/hashfield"
	"isoworld/pkg/utils"
)

const (
	Name = "city"

	// Rows - ширина полосы по j.
	Rows = 10

	carSpawnChance = 0.02
	carReapX       = 200
	noiseScale     = 0.1
	minHeight      = 12
)

// Building - параметры башни в тайле. Полностью выводятся из сида
// и переопределения оттенка.
type Building struct {
	Type       int // 0..4
	Height     float64
	Width      float64 // множитель ширины 0.6..1.4
	Noise      float64
	Hue        float64
	Overridden bool
}

type car struct {
	x, y  float64
	speed float64
	hue   float64
}

type Provider struct {
	world.Base

	key     string
	field   hashfield.Field
	rng     *utils.Stream
	baseHue float64
	hues    *world.Overrides[float64]
	cars    []car
}

func New() *Provider {
	p := &Provider{}
	p.WorldKeyChanged("")
	return p
}

func (p *Provider) Name() string { return Name }

func (p *Provider) WorldKeyChanged(key string) {
	p.key = key
	p.field = hashfield.New(key)
	p.rng = utils.NewStream(p.field.Seed)
	p.baseHue = float64(hashfield.Hash32("basehue", p.field.Seed) % 360)
	p.hues = world.NewOverrides[float64]()
	p.cars = p.cars[:0]
}

// InRegion: ряды 0..9, i >= 0.
func InRegion(t world.TileCoord) bool {
	return t.I >= 0 && t.J >= 0 && t.J < Rows
}

// BaseHue - базовый оттенок палитры текущего мира.
func (p *Provider) BaseHue() float64 { return p.baseHue }

// Building возвращает башню тайла. false - тайл вне полосы или участок пуст.
func (p *Provider) Building(t world.TileCoord) (Building, bool) {
	if !InRegion(t) {
		return Building{}, false
	}
	n := p.field.Noise(float64(t.I)*noiseScale, float64(t.J)*noiseScale)
	b := Building{
		Type:   p.field.Pick("type", t.I, t.J, 5),
		Height: world.Remap(n, 0, 1, 20, 100) * p.field.Range("hfac", t.I, t.J, 0.6, 1.4),
		Width:  p.field.Range("wfac", t.I, t.J, 0.6, 1.4),
		Noise:  n,
		Hue:    math.Mod(p.baseHue+n*80, 360),
	}
	if h, ok := p.hues.Get(t); ok {
		b.Hue = h
		b.Overridden = true
	}
	if b.Height < minHeight {
		return b, false
	}
	return b, true
}

func (p *Provider) TileClicked(t world.TileCoord) {
	if !InRegion(t) {
		return
	}
	p.hues.Set(t, p.rng.Range(0, 360))
}

func (p *Provider) DrawTile(f *world.Frame, t world.TileCoord) {
	s := f.Surface
	tw, th := p.TileWidth(), p.TileHeight()

	// сетка
	s.Push()
	s.SetStroke(world.HSB(0, 0, 60, 100), 1)
	s.NoFill()
	s.Polygon(world.Diamond(tw, th)...)
	s.Pop()

	if !InRegion(t) {
		return
	}

	s.Push()
	defer s.Pop()

	s.NoStroke()
	s.SetFill(world.HSB(220, 10, 20, 200))
	s.Polygon(world.Diamond(tw, th)...)

	b, ok := p.Building(t)
	if !ok {
		return
	}

	s.SetFill(world.HSB(b.Hue, 100, 80, 200))
	drawTower(s, b, tw)

	alpha := math.Sin(f.Clock/200+float64(t.I+t.J))*100 + 100
	s.SetFill(world.HSB(0, 0, 100, alpha))
	drawWindows(s, b, tw)
}

func drawTower(s world.Surface, b Building, tw float64) {
	h, wf := b.Height, b.Width
	switch b.Type {
	case 0:
		bw, bh := tw*0.6*wf, h*0.5
		s.Rect(-bw/2, -bh, bw, bh)
	case 1:
		bw := tw * 0.8 * wf
		s.Rect(-bw/2, -h, bw, h)
	case 2:
		r := tw * 0.5 * wf
		s.Ellipse(0, -h/2, r, r)
		s.Rect(-r/2, -h, r, h)
	case 3:
		s.Polygon(
			world.Point{X: -tw * 0.5 * wf, Y: 0},
			world.Point{X: 0, Y: -h},
			world.Point{X: tw * 0.5 * wf, Y: 0},
		)
	default:
		for lvl := 0; lvl < 4; lvl++ {
			bw := tw * (1 - float64(lvl)/4) * wf
			bh := h / 4
			s.Rect(-bw/2, -bh*float64(lvl+1), bw, bh)
		}
	}
}

func drawWindows(s world.Surface, b Building, tw float64) {
	h, wf := b.Height, b.Width
	switch b.Type {
	case 0:
		s.Rect(-tw*0.3*wf, -h*0.25, tw*0.6*wf, 4)
	case 1:
		bw := tw * 0.8 * wf
		for y := -h + 8; y < 0; y += 8 {
			for x := -bw/2 + 3; x < bw/2-3; x += 6 {
				s.Rect(x, y, 3, 5)
			}
		}
	case 2:
		for x := -tw * 0.25 * wf; x < tw*0.25*wf; x += 6 {
			s.Rect(x, -h+10, 2, h-20)
		}
	case 3:
		s.Rect(-6, -h*0.5, 12, 8)
	default:
		for lvl := 0; lvl < 4; lvl++ {
			bw := tw * (1 - float64(lvl)/4) * wf
			bh := h / 4
			s.Rect(-bw/2+4, -bh*float64(lvl+1)+4, bw-8, 4)
		}
	}
}

func (p *Provider) DrawSelectedTile(f *world.Frame, t world.TileCoord) {
	if !InRegion(t) {
		return
	}
	s := f.Surface
	tw, th := p.TileWidth(), p.TileHeight()

	s.Push()
	s.NoFill()
	s.SetStroke(world.HSB(100, 100, 100, 200), 1)
	s.Polygon(world.Diamond(tw, th)...)
	s.NoStroke()
	s.SetFill(world.Gray(0, 255))
	s.Text(t.String(), -tw/2, -th/2)
	s.Pop()
}

// DrawAfter двигает и рисует машины. Машины живут в мировых координатах
// и пропадают, уехав дальше i = 200.
func (p *Provider) DrawAfter(f *world.Frame) {
	if p.rng.Float() < carSpawnChance {
		p.cars = append(p.cars, car{
			y:     float64(p.rng.Intn(Rows)),
			speed: p.rng.Range(0.05, 0.2),
			hue:   math.Mod(p.baseHue+p.rng.Range(-30, 30)+360, 360),
		})
	}

	s := f.Surface
	tw, th := p.TileWidth(), p.TileHeight()
	s.Push()
	s.NoStroke()
	alive := p.cars[:0]
	for _, c := range p.cars {
		c.x += c.speed
		if c.x < carReapX {
			px, py := f.Pixel(c.x, c.y)
			s.Push()
			s.Translate(px, py)
			s.SetFill(world.HSB(c.hue, 80, 100, 200))
			s.Rect(-tw*0.3, -th*0.2, tw*0.6, th*0.3)
			s.Pop()
		}
		if c.x <= carReapX {
			alive = append(alive, c)
		}
	}
	p.cars = alive
	s.Pop()
}

func (p *Provider) EntityCount() int { return len(p.cars) }

func (p *Provider) DescribeTile(t world.TileCoord) api.TileInfo {
	info := api.TileInfo{I: t.I, J: t.J, Provider: Name, InRegion: InRegion(t)}
	if !info.InRegion {
		return info
	}
	b, ok := p.Building(t)
	if !ok {
		info.Kind = "lot"
		return info
	}
	info.Kind = "tower"
	info.Attrs = map[string]string{
		"type":       strconv.Itoa(b.Type),
		"height":     strconv.FormatFloat(b.Height, 'f', 2, 64),
		"width":      strconv.FormatFloat(b.Width, 'f', 2, 64),
		"hue":        strconv.FormatFloat(b.Hue, 'f', 1, 64),
		"overridden": strconv.FormatBool(b.Overridden),
	}
	return info
}
