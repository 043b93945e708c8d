// Package world описывает контракт между движком и провайдером мира.
//
// Провайдер владеет всей семантикой тайлов: что нарисовано в (i, j), что
// происходит по клику, какие анимированные объекты живут поверх сетки.
// Движок лишь решает, какие тайлы видны, и вызывает хуки в нужном порядке.
package world

import (
	"strconv"

	"isoworld/internal/iso"
	"isoworld/internal/scheduler"
	"isoworld/pkg/api"
)

// Размеры тайла по умолчанию (полуширина и полувысота ромба).
const (
	DefaultTileWidth  = 32
	DefaultTileHeight = 16
)

// TileCoord - целочисленная координата тайла в мире.
type TileCoord struct {
	I, J int
}

// Key - строковый ключ "i,j" для карт переопределений.
func (t TileCoord) Key() string {
	return strconv.Itoa(t.I) + "," + strconv.Itoa(t.J)
}

func (t TileCoord) String() string {
	return "(" + t.Key() + ")"
}

// Frame - всё, что провайдер видит во время отрисовки кадра.
// Передаётся параметром вместо глобальных переменных.
type Frame struct {
	Surface   Surface
	Transform iso.Transform
	Viewport  scheduler.Viewport

	// CameraX, CameraY - смещение камеры в экранных пикселях.
	CameraX, CameraY float64

	// Clock - миллисекунды с момента старта. Только для анимации.
	Clock float64

	Number uint64
}

// Pixel переводит непрерывную мировую координату в пиксели холста с учётом камеры.
func (f *Frame) Pixel(wx, wy float64) (float64, float64) {
	return f.Transform.WorldToPixel(wx, wy, f.CameraX, f.CameraY)
}

// Provider - подключаемая семантика мира.
//
// Все хуки тотальны: для любых координат они либо рисуют, либо тихо ничего
// не делают. Паника в хуке считается ошибкой провайдера.
type Provider interface {
	Name() string

	// Setup вызывается один раз до первого WorldKeyChanged.
	Setup()

	// WorldKeyChanged полностью сбрасывает состояние провайдера под новый ключ.
	WorldKeyChanged(key string)

	TileWidth() float64
	TileHeight() float64

	TileClicked(t TileCoord)

	DrawBefore(f *Frame)
	// DrawTile вызывается с началом координат, уже перенесённым в центр тайла.
	DrawTile(f *Frame, t TileCoord)
	DrawSelectedTile(f *Frame, t TileCoord)
	DrawAfter(f *Frame)
}

// Describer - провайдер умеет описать тайл для отладочной инспекции.
type Describer interface {
	DescribeTile(t TileCoord) api.TileInfo
}

// EntityCounter - провайдер ведёт живые объекты и может сообщить их число.
type EntityCounter interface {
	EntityCount() int
}

// Base даёт явные пустые реализации необязательных хуков и размер 32×16.
// Провайдер встраивает Base и переопределяет только нужное.
type Base struct{}

func (Base) Setup() {}
func (Base) TileWidth() float64 { return DefaultTileWidth }
func (Base) TileHeight() float64 { return DefaultTileHeight }
func (Base) TileClicked(TileCoord) {}
func (Base) DrawBefore(*Frame) {}
func (Base) DrawSelectedTile(*Frame, TileCoord) {}
func (Base) DrawAfter(*Frame) {}
