package world

import (
	"image"
	"image/color"
)

// Point - точка в локальных координатах холста.
type Point struct {
	X, Y float64
}

// Surface - непрозрачная поверхность рисования.
//
// Движок и провайдеры только отдают команды; пиксели обратно не читаются.
// Push/Pop сохраняют и восстанавливают трансформацию и параметры кисти.
type Surface interface {
	Size() (int, int)

	Push()
	Pop()
	Translate(x, y float64)
	Rotate(theta float64)

	SetFill(c color.Color)
	NoFill()
	SetStroke(c color.Color, width float64)
	NoStroke()

	Background(c color.Color)
	Polygon(pts ...Point)         // замкнутый контур
	Polyline(pts ...Point)        // открытая ломаная, только обводка
	Ellipse(cx, cy, w, h float64) // w, h - диаметры
	Rect(x, y, w, h float64)      // (x, y) - левый верхний угол
	Blit(img image.Image, x, y, w, h float64, src image.Rectangle)
	Text(s string, x, y float64)
}

// Diamond - контур ромба тайла с центром в локальном начале координат.
func Diamond(tw, th float64) []Point {
	return []Point{{-tw, 0}, {0, th}, {tw, 0}, {0, -th}}
}
