// Package scheduler перечисляет видимые тайлы в порядке отрисовки.
//
// Ромбы одной целочисленной решетки оставляют между собой дыры, поэтому
// обход идет двумя решетками: целой (A) и сдвинутой на полтайла (B).
// Внутри строки y сначала рисуется A (i+j четное), затем B (i+j нечетное),
// так сумма i+j монотонно растет и дальние тайлы оказываются под ближними.
package scheduler

import (
	"math"

	"isoworld/internal/iso"
)

// DefaultOverdraw - запас вокруг окна, чтобы тайлы не "выскакивали" на краю при прокрутке.
const DefaultOverdraw = 0.1

// Viewport - размер холста в пикселях.
type Viewport struct {
	Width  int
	Height int
}

// Tile - тайл в порядке отрисовки.
type Tile struct {
	I, J  int
	Sweep uint8 // 0 - решетка A, 1 - решетка B
}

// Window - диапазон индексов обхода: x ∈ [X0, X1), y ∈ [Y0, Y1).
// Верхняя граница - все целые строго меньше (1+overdraw)·cols, иначе при
// малом cols запас справа округлялся бы в ноль и край холста оставался пустым.
type Window struct {
	Cols, Rows int
	X0, X1     int
	Y0, Y1     int
}

// Scheduler строит обход окна. Состояния между кадрами не хранит,
// поэтому смена размера холста учитывается на следующем же вызове.
type Scheduler struct {
	Overdraw float64
}

// New создает планировщик с указанным запасом.
func New(overdraw float64) *Scheduler {
	return &Scheduler{Overdraw: overdraw}
}

// Window вычисляет cols/rows и границы обхода для текущего холста.
func (s *Scheduler) Window(view Viewport, t iso.Transform) Window {
	cols := int(math.Ceil(float64(view.Width) / (t.TW * 2)))
	rows := int(math.Ceil(float64(view.Height) / (t.TH * 2)))
	return Window{
		Cols: cols,
		Rows: rows,
		X0:   int(math.Floor(-s.Overdraw * float64(cols))),
		X1:   int(math.Ceil((1 + s.Overdraw) * float64(cols))),
		Y0:   int(math.Floor(-s.Overdraw * float64(rows))),
		Y1:   int(math.Ceil((1 + s.Overdraw) * float64(rows))),
	}
}

// Sweep возвращает тайлы окна в порядке отрисовки.
// dst переиспользуется, чтобы не аллоцировать срез каждый кадр.
func (s *Scheduler) Sweep(dst []Tile, view Viewport, t iso.Transform, offI, offJ int) []Tile {
	dst = dst[:0]
	w := s.Window(view, t)
	if w.Cols <= 0 || w.Rows <= 0 {
		return dst
	}

	ox, oy := float64(offI), float64(offJ)
	for y := w.Y0; y < w.Y1; y++ {
		fy := float64(y)
		for x := w.X0; x < w.X1; x++ {
			i, j := iso.RenderingOrder(float64(x)+ox, fy-oy)
			dst = append(dst, Tile{I: int(i), J: int(j), Sweep: 0})
		}
		for x := w.X0; x < w.X1; x++ {
			i, j := iso.RenderingOrder(float64(x)+0.5+ox, fy+0.5-oy)
			dst = append(dst, Tile{I: int(i), J: int(j), Sweep: 1})
		}
	}
	return dst
}
