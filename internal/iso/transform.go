// Package iso - координатная математика изометрической проекции 2:1.
//
// Две системы экранных координат:
//   - логическая (screen) - та, в которой записаны формулы проекции;
//   - пиксели холста (pixel) - ось X холста направлена противоположно логической.
//
// Камера и стрелки работают в логических координатах, а отрисовка и клики -
// в пикселях.
package iso

import "math"

// Transform хранит полуразмеры ромба тайла.
type Transform struct {
	TW float64 // половина ширины ромба
	TH float64 // половина высоты ромба
}

// New создает преобразование для тайла с полуразмерами (tw, th).
func New(tw, th float64) Transform {
	return Transform{TW: tw, TH: th}
}

// WorldToScreen переводит мировые координаты в логические экранные.
func (t Transform) WorldToScreen(wx, wy, cx, cy float64) (float64, float64) {
	return (wx-wy)*t.TW + cx, (wx+wy)*t.TH + cy
}

// ScreenToWorld - обратное преобразование с округлением до тайла.
//
// После снятия смещения камеры координаты нормируются на полную ширину и
// высоту ромба; +0.5 по Y сдвигает границы так, что любая точка внутри
// отрисованного ромба попадает ровно в его тайл.
func (t Transform) ScreenToWorld(sx, sy, cx, cy float64) (int, int) {
	nx := (sx - cx) / (t.TW * 2)
	ny := (sy-cy)/(t.TH*2) + 0.5
	return int(math.Floor(ny + nx)), int(math.Floor(ny - nx))
}

// CameraToWorldOffset округляет пиксельное смещение камеры до целого числа тайлов.
func (t Transform) CameraToWorldOffset(cx, cy float64) (int, int) {
	return int(math.Round(cx / (t.TW * 2))), int(math.Round(cy / (t.TH * 2)))
}

// WorldToPixel - позиция центра тайла на холсте.
func (t Transform) WorldToPixel(wx, wy, cx, cy float64) (float64, float64) {
	sx, sy := t.WorldToScreen(wx, wy, cx, cy)
	return -sx, sy
}

// PixelToWorld - тайл под пикселем холста.
func (t Transform) PixelToWorld(px, py, cx, cy float64) (int, int) {
	return t.ScreenToWorld(-px, py, cx, cy)
}

// RenderingOrder переводит индекс обхода (x, y) в мировые координаты тайла.
// Сумма i+j растет вместе с y, поэтому построчный обход рисует сзади вперед.
func RenderingOrder(x, y float64) (float64, float64) {
	return y - x, x + y
}
