package world

import (
	"image"
	"image/color"
	"math"
)

// Op - одна записанная команда рисования.
type Op struct {
	Kind string // background, polygon, polyline, ellipse, rect, blit, text

	// OriginX, OriginY - куда попадает локальное (0,0) в момент команды.
	OriginX, OriginY float64
	Rotation         float64

	Points []Point
	Text   string

	Fill   color.Color // nil, если заливка выключена
	Stroke color.Color // nil, если обводка выключена
}

type drawState struct {
	ox, oy, rot float64
	fill        color.Color
	stroke      color.Color
	strokeW     float64
}

// RecordingSurface - Surface без пикселей. Отслеживает трансформацию и
// записывает команды, чтобы тесты и безголовый прогон могли проверить кадр.
type RecordingSurface struct {
	W, H int

	// Discard отключает запись команд, оставляя только счётчики.
	Discard bool

	Ops   []Op
	Count map[string]int

	state drawState
	stack []drawState
}

func NewRecordingSurface(w, h int) *RecordingSurface {
	s := &RecordingSurface{W: w, H: h}
	s.Reset()
	return s
}

// Reset очищает записанный кадр и трансформацию.
func (s *RecordingSurface) Reset() {
	s.Ops = s.Ops[:0]
	s.Count = make(map[string]int)
	s.state = drawState{fill: color.White, stroke: color.Black, strokeW: 1}
	s.stack = s.stack[:0]
}

// Depth - текущая глубина стека Push/Pop. После корректного кадра равна 0.
func (s *RecordingSurface) Depth() int {
	return len(s.stack)
}

func (s *RecordingSurface) Size() (int, int) { return s.W, s.H }

func (s *RecordingSurface) Push() {
	s.stack = append(s.stack, s.state)
}

func (s *RecordingSurface) Pop() {
	if len(s.stack) == 0 {
		return
	}
	s.state = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *RecordingSurface) Translate(x, y float64) {
	sin, cos := math.Sincos(s.state.rot)
	s.state.ox += x*cos - y*sin
	s.state.oy += x*sin + y*cos
}

func (s *RecordingSurface) Rotate(theta float64) {
	s.state.rot += theta
}

func (s *RecordingSurface) SetFill(c color.Color) { s.state.fill = c }
func (s *RecordingSurface) NoFill() { s.state.fill = nil }

func (s *RecordingSurface) SetStroke(c color.Color, width float64) {
	s.state.stroke = c
	s.state.strokeW = width
}

func (s *RecordingSurface) NoStroke() { s.state.stroke = nil }

func (s *RecordingSurface) Background(c color.Color) {
	s.record(Op{Kind: "background", Fill: c})
}

func (s *RecordingSurface) Polygon(pts ...Point) {
	s.record(Op{Kind: "polygon", Points: append([]Point(nil), pts...)})
}

func (s *RecordingSurface) Polyline(pts ...Point) {
	s.record(Op{Kind: "polyline", Points: append([]Point(nil), pts...)})
}

func (s *RecordingSurface) Ellipse(cx, cy, w, h float64) {
	s.record(Op{Kind: "ellipse", Points: []Point{{cx, cy}, {w, h}}})
}

func (s *RecordingSurface) Rect(x, y, w, h float64) {
	s.record(Op{Kind: "rect", Points: []Point{{x, y}, {w, h}}})
}

func (s *RecordingSurface) Blit(_ image.Image, x, y, w, h float64, _ image.Rectangle) {
	s.record(Op{Kind: "blit", Points: []Point{{x, y}, {w, h}}})
}

func (s *RecordingSurface) Text(str string, x, y float64) {
	s.record(Op{Kind: "text", Text: str, Points: []Point{{x, y}}})
}

func (s *RecordingSurface) record(op Op) {
	s.Count[op.Kind]++
	if s.Discard {
		return
	}
	op.OriginX, op.OriginY, op.Rotation = s.state.ox, s.state.oy, s.state.rot
	if op.Fill == nil {
		op.Fill = s.state.fill
	}
	op.Stroke = s.state.stroke
	s.Ops = append(s.Ops, op)
}

// OpsOf возвращает записанные команды заданного вида.
func (s *RecordingSurface) OpsOf(kind string) []Op {
	var out []Op
	for _, op := range s.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}
