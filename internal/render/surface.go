// Package render - окно и поверхность рисования на ebiten.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"isoworld/internal/world"
)

const (
	// ellipseSegments - число отрезков, которыми аппроксимируется эллипс.
	ellipseSegments = 32
	fontSize        = 12
)

type pen struct {
	geo     ebiten.GeoM
	fill    color.Color
	stroke  color.Color
	strokeW float64
}

func defaultPen() pen {
	return pen{fill: color.White, stroke: color.Black, strokeW: 1}
}

// Surface рисует команды провайдеров в *ebiten.Image.
// Трансформация ведется на CPU: точки переводятся в пиксели до построения пути.
type Surface struct {
	w, h int
	dst  *ebiten.Image

	pen   pen
	stack []pen

	white  *ebiten.Image
	face   *text.GoTextFace
	path   vector.Path
	vs     []ebiten.Vertex
	is     []uint16
	images map[image.Image]*ebiten.Image
}

func NewSurface(w, h int) (*Surface, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	return &Surface{
		w:      w,
		h:      h,
		pen:    defaultPen(),
		face:   &text.GoTextFace{Source: src, Size: fontSize},
		images: make(map[image.Image]*ebiten.Image),
	}, nil
}

// Begin направляет рисование в dst и сбрасывает трансформацию и кисть.
func (s *Surface) Begin(dst *ebiten.Image) {
	s.dst = dst
	s.pen = defaultPen()
	s.stack = s.stack[:0]
	if s.white == nil {
		s.white = ebiten.NewImage(3, 3)
		s.white.Fill(color.White)
	}
}

func (s *Surface) Size() (int, int) { return s.w, s.h }

func (s *Surface) Push() { s.stack = append(s.stack, s.pen) }

func (s *Surface) Pop() {
	if len(s.stack) == 0 {
		return
	}
	s.pen = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

// Translate и Rotate действуют в локальных координатах, как в canvas 2D.
func (s *Surface) Translate(x, y float64) {
	var m ebiten.GeoM
	m.Translate(x, y)
	m.Concat(s.pen.geo)
	s.pen.geo = m
}

func (s *Surface) Rotate(theta float64) {
	var m ebiten.GeoM
	m.Rotate(theta)
	m.Concat(s.pen.geo)
	s.pen.geo = m
}

func (s *Surface) SetFill(c color.Color) { s.pen.fill = c }
func (s *Surface) NoFill() { s.pen.fill = nil }
func (s *Surface) NoStroke() { s.pen.stroke = nil }

func (s *Surface) SetStroke(c color.Color, width float64) {
	s.pen.stroke = c
	s.pen.strokeW = width
}

func (s *Surface) Background(c color.Color) {
	if s.dst != nil {
		s.dst.Fill(c)
	}
}

func (s *Surface) Polygon(pts ...world.Point) { s.shape(pts, true) }

func (s *Surface) Polyline(pts ...world.Point) { s.shape(pts, false) }

func (s *Surface) Ellipse(cx, cy, w, h float64) {
	s.shape(ellipsePoints(cx, cy, w, h, ellipseSegments), true)
}

func (s *Surface) Rect(x, y, w, h float64) { s.shape(rectPoints(x, y, w, h), true) }

func (s *Surface) Blit(img image.Image, x, y, w, h float64, src image.Rectangle) {
	if s.dst == nil || img == nil || src.Empty() {
		return
	}
	eimg, ok := s.images[img]
	if !ok {
		eimg = ebiten.NewImageFromImage(img)
		s.images[img] = eimg
	}
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(w/float64(src.Dx()), h/float64(src.Dy()))
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(s.pen.geo)
	s.dst.DrawImage(eimg.SubImage(src).(*ebiten.Image), op)
}

// Text рисует строку цветом заливки; (x, y) - левый край базовой линии.
func (s *Surface) Text(str string, x, y float64) {
	if s.dst == nil || s.pen.fill == nil {
		return
	}
	op := &text.DrawOptions{}
	op.SecondaryAlign = text.AlignEnd
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(s.pen.geo)
	op.ColorScale.ScaleWithColor(s.pen.fill)
	text.Draw(s.dst, str, s.face, op)
}

func (s *Surface) shape(pts []world.Point, closed bool) {
	if s.dst == nil || len(pts) < 2 {
		return
	}
	s.path = vector.Path{}
	for i, p := range pts {
		x, y := s.pen.geo.Apply(p.X, p.Y)
		if i == 0 {
			s.path.MoveTo(float32(x), float32(y))
		} else {
			s.path.LineTo(float32(x), float32(y))
		}
	}
	if closed {
		s.path.Close()
		if s.pen.fill != nil && len(pts) >= 3 {
			s.vs, s.is = s.path.AppendVerticesAndIndicesForFilling(s.vs[:0], s.is[:0])
			s.draw(s.pen.fill)
		}
	}
	if s.pen.stroke != nil && s.pen.strokeW > 0 {
		s.vs, s.is = s.path.AppendVerticesAndIndicesForStroke(s.vs[:0], s.is[:0], &vector.StrokeOptions{
			Width:    float32(s.pen.strokeW),
			LineJoin: vector.LineJoinRound,
			LineCap:  vector.LineCapRound,
		})
		s.draw(s.pen.stroke)
	}
}

func (s *Surface) draw(c color.Color) {
	r, g, b, a := vertexColor(c)
	for i := range s.vs {
		s.vs[i].SrcX = 1
		s.vs[i].SrcY = 1
		s.vs[i].ColorR = r
		s.vs[i].ColorG = g
		s.vs[i].ColorB = b
		s.vs[i].ColorA = a
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	op.FillRule = ebiten.NonZero
	s.dst.DrawTriangles(s.vs, s.is, s.white, op)
}

// vertexColor переводит цвет в непредумноженные компоненты 0..1.
func vertexColor(c color.Color) (r, g, b, a float32) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return float32(n.R) / 255, float32(n.G) / 255, float32(n.B) / 255, float32(n.A) / 255
}

func ellipsePoints(cx, cy, w, h float64, n int) []world.Point {
	pts := make([]world.Point, n)
	for k := range pts {
		a := 2 * math.Pi * float64(k) / float64(n)
		pts[k] = world.Point{X: cx + w/2*math.Cos(a), Y: cy + h/2*math.Sin(a)}
	}
	return pts
}

func rectPoints(x, y, w, h float64) []world.Point {
	return []world.Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}
}
