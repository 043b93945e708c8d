package engine

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"isoworld/internal/camera"
	"isoworld/internal/infrastructure/storage"
	"isoworld/internal/world"
	"isoworld/pkg/logger"
)

// Summary - состояние после безголового прогона записи.
type Summary struct {
	Frames     uint64
	Events     int
	Provider   string
	Key        string
	Seed       uint32
	CameraX    float64
	CameraY    float64
	TilesDrawn int
	Entities   int
	Ops        map[string]int // команды рисования последнего кадра
}

// Replay повторяет запись на поверхности без пикселей. Результат зависит
// только от записи: часы и ввод берутся из событий.
func Replay(ctx context.Context, s *storage.Session, factory func(string) (world.Provider, error), opts Options) (Summary, error) {
	p, err := factory(s.Provider)
	if err != nil {
		return Summary{}, fmt.Errorf("replay provider: %w", err)
	}
	surface := world.NewRecordingSurface(s.Width, s.Height)
	surface.Discard = true

	opts.Factory = factory
	e := New(surface, p, opts)
	defer e.Close()
	e.Init(s.Key)

	for i, ev := range s.Events {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return Summary{}, fmt.Errorf("replay interrupted at event %d: %w", i, err)
			}
		}
		switch ev.Type {
		case storage.EventTick:
			surface.Reset()
			e.Tick(Input{
				Keys: camera.InputFromBits(ev.Keys &^ storage.PointerInside),
				Pointer: Pointer{
					X:      ev.X,
					Y:      ev.Y,
					Inside: ev.Keys&storage.PointerInside != 0,
				},
				Clock: ev.Clock,
			})
		case storage.EventClick:
			e.Click(ev.X, ev.Y)
		case storage.EventKey:
			e.SetKey(ev.Text)
		case storage.EventProvider:
			if err := e.SwapProvider(ev.Text); err != nil {
				return Summary{}, fmt.Errorf("replay event %d: %w", i, err)
			}
		default:
			return Summary{}, fmt.Errorf("replay event %d: unknown type %d", i, ev.Type)
		}
	}

	sum := Summary{
		Frames:   e.Frame(),
		Events:   len(s.Events),
		Provider: e.Provider().Name(),
		Key:      e.Key(),
		Seed:     e.Seed(),
		CameraX:  e.Camera().X,
		CameraY:  e.Camera().Y,
		Ops:      surface.Count,
	}
	if snap, ok := e.Snapshot(); ok {
		sum.TilesDrawn = snap.TilesDrawn
		if snap.Entities != nil {
			sum.Entities = *snap.Entities
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "replay",
		"frames":    sum.Frames,
		"events":    sum.Events,
		"provider":  sum.Provider,
		"key":       sum.Key,
		"seed":      sum.Seed,
		"camera_x":  sum.CameraX,
		"camera_y":  sum.CameraY,
		"entities":  sum.Entities,
	}).Info("Replay finished")
	return sum, nil
}
