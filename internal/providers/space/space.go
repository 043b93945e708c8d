// Package space - бесконечный космос в четверти i >= 0, j <= 0: звёзды,
// планеты, астероиды и галактики по хешу тайла, корабль, летящий к
// кликнутому пустому тайлу, и падающие звёзды поверх сетки.
package space

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dgraph-io/ristretto/v2"

	"isoworld/internal/world"
	"isoworld/pkg/api"
	"isoworld/pkg/hashfield"
	"isoworld/pkg/utils"
)

const (
	Name = "space"

	shipEasing   = 0.1
	shipEpsilon  = 0.01
	starLife     = 30
	minStarDelay = 2000 // мс
	maxStarDelay = 5000

	cacheCounters = 1 << 16
	cacheMaxCost  = 1 << 13 // тел в кэше
)

type vec struct {
	X, Y float64
}

type shootingStar struct {
	x, y   float64
	vx, vy float64
	life   int
}

type Provider struct {
	world.Base

	field hashfield.Field
	rng   *utils.Stream

	// Кэш тел по ключу "seed|i,j". Промах не ошибка: тело пересчитывается.
	bodies *ristretto.Cache[string, *Body]

	ship, target vec

	stars     []shootingStar
	lastSpawn float64 // мс; NaN до первого кадра после смены ключа
	nextDelay float64
}

func New() (*Provider, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, *Body]{
		NumCounters: cacheCounters,
		MaxCost:     cacheMaxCost,
		BufferItems: 64,

		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create body cache: %w", err)
	}
	p := &Provider{bodies: cache}
	p.WorldKeyChanged("")
	return p, nil
}

// Close освобождает кэш тел.
func (p *Provider) Close() {
	p.bodies.Close()
}

func (p *Provider) Name() string { return Name }

func (p *Provider) WorldKeyChanged(key string) {
	p.field = hashfield.New(key)
	p.rng = utils.NewStream(p.field.Seed)
	p.bodies.Clear()
	p.ship = vec{}
	p.target = vec{}
	p.stars = p.stars[:0]
	p.lastSpawn = math.NaN()
}

// InRegion: четверть i >= 0, j <= 0.
func InRegion(t world.TileCoord) bool {
	return t.I >= 0 && t.J <= 0
}

// Body возвращает тело тайла, используя кэш.
func (p *Provider) Body(t world.TileCoord) *Body {
	key := strconv.FormatUint(uint64(p.field.Seed), 10) + "|" + t.Key()
	if b, ok := p.bodies.Get(key); ok {
		return b
	}
	b := Describe(p.field, t.I, t.J, p.TileWidth(), p.TileHeight())
	p.bodies.Set(key, &b, 1)
	return &b
}

// ShipPosition - положение корабля в мировых координатах.
func (p *Provider) ShipPosition() (float64, float64) { return p.ship.X, p.ship.Y }

// ShipTarget - тайл, к которому летит корабль.
func (p *Provider) ShipTarget() (float64, float64) { return p.target.X, p.target.Y }

// TileClicked задаёт кораблю цель, если тайл в регионе и пуст.
func (p *Provider) TileClicked(t world.TileCoord) {
	if !InRegion(t) || p.Body(t).Kind != Empty {
		return
	}
	p.target = vec{float64(t.I), float64(t.J)}
}

func (p *Provider) DrawBefore(f *world.Frame) {
	f.Surface.Background(world.HSB(260, 50, 5, 255))
}

func (p *Provider) DrawTile(f *world.Frame, t world.TileCoord) {
	s := f.Surface
	tw, th := p.TileWidth(), p.TileHeight()

	s.Push()
	s.SetStroke(world.HSB(0, 0, 60, 100), 1)
	s.NoFill()
	s.Polygon(world.Diamond(tw, th)...)
	s.Pop()

	if !InRegion(t) {
		return
	}

	b := p.Body(t)
	s.Push()
	defer s.Pop()
	switch b.Kind {
	case Galaxy:
		drawGalaxy(s, b, f.Clock)
	case Planet:
		drawPlanet(s, b, f.Clock)
	case Asteroid:
		drawAsteroid(s, b, f.Clock)
	case Star:
		s.NoStroke()
		a := world.Remap(math.Sin(f.Clock/500+float64(t.I*3+t.J*7)), -1, 1, 150, 255)
		s.SetFill(world.HSB(0, 0, 100, a))
		s.Ellipse(b.StarX, b.StarY, 2, 2)
	}
}

func drawGalaxy(s world.Surface, b *Body, clock float64) {
	ang := clock / 5000
	s.Rotate(ang)
	s.SetStroke(world.HSB(b.Hue, 80, 100, 150), 3)
	s.NoFill()
	arm := make([]world.Point, 0, int(b.Radius/4)+1)
	for r := 0.0; r < b.Radius; r += 4 {
		theta := r / b.Radius * 2 * math.Pi
		arm = append(arm, world.Point{X: r * math.Cos(theta), Y: r * math.Sin(theta)})
	}
	for a := 0; a < 5; a++ {
		s.Push()
		s.Rotate(ang + float64(a)*2*math.Pi/5)
		s.Polyline(arm...)
		s.Pop()
	}
}

func drawPlanet(s world.Surface, b *Body, clock float64) {
	s.Rotate(clock / 10000)
	s.NoStroke()
	s.SetFill(world.HSB(b.Hue, 80, 100, 200))
	s.Ellipse(0, 0, b.Radius, b.Radius)
	switch b.PlanetType {
	case PlanetRinged:
		s.NoFill()
		s.SetStroke(world.HSB(b.Hue, 80, 80, 150), 2)
		s.Ellipse(0, 0, b.Radius*1.4, b.Radius*0.6)
	case PlanetCratered:
		s.SetFill(world.HSB(0, 0, 20, 200))
		for _, c := range b.Craters {
			s.Ellipse(c.X, c.Y, c.R, c.R)
		}
	}
}

func drawAsteroid(s world.Surface, b *Body, clock float64) {
	s.NoStroke()
	s.SetFill(world.HSB(0, 0, 50, 200))
	s.Rotate(clock / 5000)
	s.Polygon(b.hull()...)
}

// DrawAfter обновляет падающие звёзды и корабль.
func (p *Provider) DrawAfter(f *world.Frame) {
	s := f.Surface
	s.Push()
	defer s.Pop()

	p.stepStars(f)
	s.NoStroke()
	for _, st := range p.stars {
		s.SetFill(world.HSB(60, 0, 100, world.Remap(float64(st.life), 0, starLife, 255, 0)))
		s.Ellipse(st.x, st.y, 4, 2)
	}

	p.ship.X += (p.target.X - p.ship.X) * shipEasing
	p.ship.Y += (p.target.Y - p.ship.Y) * shipEasing

	px, py := f.Pixel(p.ship.X, p.ship.Y)
	s.Translate(px, py)
	if p.Moving() {
		s.SetFill(world.HSB(0, 100, 100, 200))
		s.Ellipse(0, 8, 8, 4)
	}
	s.Rotate(-math.Pi / 4)
	s.SetFill(world.HSB(210, 10, 70, 255))
	s.Polygon(world.Point{X: 0, Y: -8}, world.Point{X: -6, Y: 6}, world.Point{X: 6, Y: 6})
}

// Moving - корабль ещё не долетел до цели.
func (p *Provider) Moving() bool {
	return math.Abs(p.target.X-p.ship.X) > shipEpsilon || math.Abs(p.target.Y-p.ship.Y) > shipEpsilon
}

func (p *Provider) stepStars(f *world.Frame) {
	if math.IsNaN(p.lastSpawn) {
		p.lastSpawn = f.Clock
		p.nextDelay = p.rng.Range(minStarDelay, maxStarDelay)
	}
	if f.Clock-p.lastSpawn > p.nextDelay {
		p.stars = append(p.stars, shootingStar{
			x:  p.rng.Range(0, float64(f.Viewport.Width)),
			y:  -10,
			vx: p.rng.Range(5, 10),
			vy: p.rng.Range(2, 5),
		})
		p.lastSpawn = f.Clock
		p.nextDelay = p.rng.Range(minStarDelay, maxStarDelay)
	}

	alive := p.stars[:0]
	for _, st := range p.stars {
		st.x += st.vx
		st.y += st.vy
		st.life++
		if st.life <= starLife {
			alive = append(alive, st)
		}
	}
	p.stars = alive
}

func (p *Provider) EntityCount() int { return len(p.stars) }

func (p *Provider) DescribeTile(t world.TileCoord) api.TileInfo {
	info := api.TileInfo{I: t.I, J: t.J, Provider: Name, InRegion: InRegion(t)}
	if !info.InRegion {
		return info
	}
	b := p.Body(t)
	info.Kind = b.Kind.String()
	if attrs := b.attrs(); len(attrs) > 0 {
		info.Attrs = attrs
	}
	return info
}
