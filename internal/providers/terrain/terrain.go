// Package terrain - бесконечный воксельный ландшафт из блоков 40×20.
//
// Тип блока берётся из шума, клик по тайлу прокручивает его тип по кругу
// water → sand → dirt → grass → stone.
package terrain

import (
	"image/color"
	"math"
	"strconv"

	"isoworld/internal/world"
	"isoworld/pkg/api"
	"isoworld/pkg/hashfield"
)

const (
	Name = "terrain"

	TileWidth  = 40
	TileHeight = 20

	noiseScale = 0.1
	dayLength  = 10000 // мс на радиан цикла неба
)

// Block - тип блока. Порядок констант совпадает с порядком цикла по клику.
type Block int

const (
	Water Block = iota
	Sand
	Dirt
	Grass
	Stone
	blockCount
)

var blockNames = [...]string{"water", "sand", "dirt", "grass", "stone"}

func (b Block) String() string {
	if b < 0 || b >= blockCount {
		return "block(" + strconv.Itoa(int(b)) + ")"
	}
	return blockNames[b]
}

// Next - следующий тип в цикле клика.
func (b Block) Next() Block {
	return (b + 1) % blockCount
}

type palette struct {
	top, side color.NRGBA
}

var palettes = [blockCount]palette{
	Water: {world.RGBA(64, 164, 223, 200), world.RGBA(64, 164, 223, 150)},
	Sand:  {world.RGB(194, 178, 128), world.RGB(174, 158, 108)},
	Dirt:  {world.RGB(134, 96, 67), world.RGB(114, 76, 47)},
	Grass: {world.RGB(95, 159, 53), world.RGB(75, 139, 33)},
	Stone: {world.Gray(160, 255), world.Gray(140, 255)},
}

// Classify переводит значение шума в тип блока.
func Classify(n float64) Block {
	switch {
	case n < 0.3:
		return Stone
	case n < 0.4:
		return Sand
	case n < 0.5:
		return Water
	case n < 0.6:
		return Dirt
	default:
		return Grass
	}
}

type Provider struct {
	world.Base

	field     hashfield.Field
	overrides *world.Overrides[Block]
}

func New() *Provider {
	p := &Provider{}
	p.WorldKeyChanged("")
	return p
}

func (p *Provider) Name() string { return Name }

func (p *Provider) WorldKeyChanged(key string) {
	p.field = hashfield.New(key)
	p.overrides = world.NewOverrides[Block]()
}

func (p *Provider) TileWidth() float64 { return TileWidth }
func (p *Provider) TileHeight() float64 { return TileHeight }

// BlockAt - тип блока с учётом правок игрока.
func (p *Provider) BlockAt(t world.TileCoord) Block {
	if b, ok := p.overrides.Get(t); ok {
		return b
	}
	return Classify(p.field.Noise(float64(t.I)*noiseScale, float64(t.J)*noiseScale))
}

// TileClicked: первый клик делает тайл водой, каждый следующий сдвигает тип по циклу.
func (p *Provider) TileClicked(t world.TileCoord) {
	if b, ok := p.overrides.Get(t); ok {
		p.overrides.Set(t, b.Next())
		return
	}
	p.overrides.Set(t, Water)
}

// SkyColor - цвет неба в момент clock (мс). Синий канал постоянен,
// зелёный качается между 50 и 200.
func SkyColor(clock float64) color.NRGBA {
	g := world.Remap(math.Sin(clock/dayLength), -1, 1, 50, 200)
	return world.RGB(100, g, 255)
}

func (p *Provider) DrawBefore(f *world.Frame) {
	f.Surface.Background(SkyColor(f.Clock))
}

func (p *Provider) DrawTile(f *world.Frame, t world.TileCoord) {
	s := f.Surface
	pal := palettes[p.BlockAt(t)]

	s.Push()
	s.NoStroke()

	s.SetFill(pal.top)
	s.Polygon(world.Diamond(TileWidth, TileHeight)...)

	s.SetFill(pal.side)
	s.Polygon(
		world.Point{X: -TileWidth, Y: 0},
		world.Point{X: 0, Y: TileHeight},
		world.Point{X: 0, Y: 2 * TileHeight},
		world.Point{X: -TileWidth, Y: TileHeight},
	)
	s.Polygon(
		world.Point{X: TileWidth, Y: 0},
		world.Point{X: 0, Y: TileHeight},
		world.Point{X: 0, Y: 2 * TileHeight},
		world.Point{X: TileWidth, Y: TileHeight},
	)
	s.Pop()
}

func (p *Provider) DrawSelectedTile(f *world.Frame, _ world.TileCoord) {
	s := f.Surface
	s.Push()
	s.NoFill()
	s.SetStroke(world.RGBA(255, 0, 0, 150), 1)
	s.Polygon(world.Diamond(TileWidth, TileHeight)...)
	s.Pop()
}

func (p *Provider) DescribeTile(t world.TileCoord) api.TileInfo {
	_, edited := p.overrides.Get(t)
	return api.TileInfo{
		I:        t.I,
		J:        t.J,
		Provider: Name,
		InRegion: true,
		Kind:     p.BlockAt(t).String(),
		Attrs: map[string]string{
			"noise":  strconv.FormatFloat(p.field.Noise(float64(t.I)*noiseScale, float64(t.J)*noiseScale), 'f', 3, 64),
			"edited": strconv.FormatBool(edited),
		},
	}
}
