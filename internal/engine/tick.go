package engine

import (
	"isoworld/internal/camera"
	"isoworld/internal/infrastructure/storage"
	"isoworld/internal/scheduler"
	"isoworld/internal/world"
	"isoworld/pkg/api"
)

// Pointer - положение указателя в пикселях холста.
type Pointer struct {
	X, Y   float64
	Inside bool
}

// Input - всё, что хост сообщает движку за один тик.
type Input struct {
	Keys    camera.Input
	Pointer Pointer
	Clock   float64 // мс с момента старта
}

// Tick рисует один кадр.
//
// Порядок: команды из очереди, шаг камеры, DrawBefore, смещение в тайлах,
// обе развёртки планировщика с DrawTile для каждого тайла, выделение тайла
// под указателем, DrawAfter, публикация снимка.
func (e *Engine) Tick(in Input) {
	if e.state != StateReady {
		if !e.warnedUninit {
			e.log.Warn("Tick before Init ignored")
			e.warnedUninit = true
		}
		return
	}

	e.drainCommands()

	ev := storage.Event{Type: storage.EventTick, Keys: in.Keys.Bits(), Clock: in.Clock}
	if in.Pointer.Inside {
		ev.Keys |= storage.PointerInside
		ev.X, ev.Y = in.Pointer.X, in.Pointer.Y
	}
	e.record(ev)

	e.clock = in.Clock
	e.camera.Step(in.Keys)

	w, h := e.surface.Size()
	view := scheduler.Viewport{Width: w, Height: h}
	f := &world.Frame{
		Surface:   e.surface,
		Transform: e.transform,
		Viewport:  view,
		CameraX:   e.camera.X,
		CameraY:   e.camera.Y,
		Clock:     e.clock,
		Number:    e.frame,
	}

	e.provider.DrawBefore(f)

	offI, offJ := e.transform.CameraToWorldOffset(e.camera.X, e.camera.Y)
	e.tiles = e.scheduler.Sweep(e.tiles[:0], view, e.transform, offI, offJ)
	for _, t := range e.tiles {
		e.drawAt(f, world.TileCoord{I: t.I, J: t.J}, e.provider.DrawTile)
	}

	e.hovered = nil
	if in.Pointer.Inside {
		c := e.TileAt(in.Pointer.X, in.Pointer.Y)
		e.hovered = &c
		e.drawAt(f, c, e.provider.DrawSelectedTile)
	}

	e.provider.DrawAfter(f)

	e.publish(view, offI, offJ)
	e.frame++
}

// drawAt переносит начало координат в центр тайла на время вызова хука.
func (e *Engine) drawAt(f *world.Frame, t world.TileCoord, hook func(*world.Frame, world.TileCoord)) {
	px, py := f.Pixel(float64(t.I), float64(t.J))
	e.surface.Push()
	e.surface.Translate(px, py)
	hook(f, t)
	e.surface.Pop()
}

func (e *Engine) publish(view scheduler.Viewport, offI, offJ int) {
	s := api.FrameSnapshot{
		Type:     api.TypeSnapshot,
		Frame:    e.frame,
		ClockMs:  e.clock,
		Provider: e.provider.Name(),
		WorldKey: e.key,
		Seed:     e.seed,
		Camera: api.CameraView{
			X:  e.camera.X,
			Y:  e.camera.Y,
			VX: e.camera.VX,
			VY: e.camera.VY,
		},
		Offset:     api.TilePos{I: offI, J: offJ},
		Viewport:   api.GridMeta{Width: view.Width, Height: view.Height},
		TilesDrawn: len(e.tiles),
	}
	if e.hovered != nil {
		s.Hovered = &api.TilePos{I: e.hovered.I, J: e.hovered.J}
	}
	if c, ok := e.provider.(world.EntityCounter); ok {
		n := c.EntityCount()
		s.Entities = &n
	}

	e.snapshot.Store(&s)
	if e.publisher != nil {
		e.publisher.Publish(s)
	}
}
