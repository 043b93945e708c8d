// Package engine - цикл кадра бесконечного изометрического мира.
//
// Engine владеет камерой, планировщиком тайлов и текущим провайдером.
// Вся мутация идёт из одной горутины, вызывающей Tick; остальные горутины
// (отладочный сервер) передают действия через CommandChan.
package engine

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"isoworld/internal/camera"
	"isoworld/internal/infrastructure/storage"
	"isoworld/internal/iso"
	"isoworld/internal/scheduler"
	"isoworld/internal/world"
	"isoworld/pkg/api"
	"isoworld/pkg/hashfield"
	"isoworld/pkg/logger"
)

// DefaultKey - ключ мира при старте.
const DefaultKey = "xyzzy"

type State int

const (
	StateUninitialized State = iota
	StateReady
)

func (s State) String() string {
	if s == StateReady {
		return "ready"
	}
	return "uninitialized"
}

// Options - параметры движка. Нулевые Acceleration и Damping заменяются
// значениями камеры по умолчанию. Overdraw берётся как есть: 0 - окно без запаса.
type Options struct {
	Overdraw     float64
	Acceleration float64
	Damping      float64

	// Factory создает провайдера по имени для SwapProvider.
	Factory func(name string) (world.Provider, error)
}

// DefaultOptions - запас окна scheduler.DefaultOverdraw и параметры камеры по умолчанию.
func DefaultOptions() Options {
	return Options{Overdraw: scheduler.DefaultOverdraw}
}

// Recorder принимает события сессии (storage.Writer).
type Recorder interface {
	Record(ev storage.Event) error
}

// Publisher рассылает снимки кадров (network.Broadcaster).
type Publisher interface {
	Publish(s api.FrameSnapshot)
}

type Engine struct {
	surface   world.Surface
	provider  world.Provider
	factory   func(name string) (world.Provider, error)
	camera    *camera.Camera
	scheduler *scheduler.Scheduler
	transform iso.Transform

	state State
	key   string
	seed  uint32
	frame uint64
	clock float64

	tiles   []scheduler.Tile
	hovered *world.TileCoord

	// CommandChan - действия из других горутин, исполняются в начале тика.
	CommandChan chan Command

	snapshot  atomic.Pointer[api.FrameSnapshot]
	publisher Publisher
	recorder  Recorder

	warnedUninit bool
	log          *logrus.Entry
}

// New создает движок. Камера центрирует тайл (0,0) на поверхности.
func New(surface world.Surface, provider world.Provider, opts Options) *Engine {
	if opts.Overdraw < 0 {
		opts.Overdraw = 0
	}
	w, h := surface.Size()
	cam := camera.New(w, h)
	if opts.Acceleration > 0 {
		cam.Acceleration = opts.Acceleration
	}
	if opts.Damping > 0 && opts.Damping < 1 {
		cam.Damping = opts.Damping
	}

	e := &Engine{
		surface:     surface,
		provider:    provider,
		factory:     opts.Factory,
		camera:      cam,
		scheduler:   scheduler.New(opts.Overdraw),
		CommandChan: make(chan Command, 100),
		log:         logger.Log.WithField("component", "engine"),
	}
	e.refreshTransform()
	return e
}

// Init вызывает Setup провайдера один раз и применяет первый ключ.
// Повторный Init только меняет ключ.
func (e *Engine) Init(key string) {
	if e.state == StateUninitialized {
		e.provider.Setup()
		e.state = StateReady
		e.log.WithFields(logrus.Fields{
			"provider": e.provider.Name(),
			"state":    e.state.String(),
		}).Info("Engine initialized")
	}
	e.rekey(key)
}

// SetKey пересоздает мир под новым ключом. Камера не трогается.
// До Init ключ только запоминается.
func (e *Engine) SetKey(key string) {
	if e.state == StateUninitialized {
		e.key = key
		return
	}
	e.record(storage.Event{Type: storage.EventKey, Text: key})
	e.rekey(key)
}

func (e *Engine) rekey(key string) {
	e.key = key
	e.seed = hashfield.WorldSeed(key)
	e.provider.WorldKeyChanged(key)
	e.refreshTransform()
	e.log.WithFields(logrus.Fields{
		"key":      key,
		"seed":     e.seed,
		"provider": e.provider.Name(),
	}).Info("World key changed")
}

// SwapProvider заменяет провайдера целиком: новый получает Setup и текущий ключ,
// старый освобождается. Камера сохраняется.
func (e *Engine) SwapProvider(name string) error {
	if e.factory == nil {
		return ErrNoFactory
	}
	next, err := e.factory(name)
	if err != nil {
		return err
	}
	e.record(storage.Event{Type: storage.EventProvider, Text: name})

	prev := e.provider
	e.provider = next
	if closer, ok := prev.(interface{ Close() }); ok {
		closer.Close()
	}
	e.log.WithFields(logrus.Fields{
		"from": prev.Name(),
		"to":   next.Name(),
	}).Info("Provider swapped")

	if e.state == StateReady {
		next.Setup()
		e.rekey(e.key)
	} else {
		e.refreshTransform()
	}
	return nil
}

// Close освобождает ресурсы текущего провайдера.
func (e *Engine) Close() {
	if closer, ok := e.provider.(interface{ Close() }); ok {
		closer.Close()
	}
}

// Click переводит пиксель холста в тайл по текущей камере и размерам тайла.
func (e *Engine) Click(px, py float64) {
	if e.state != StateReady {
		return
	}
	e.record(storage.Event{Type: storage.EventClick, X: px, Y: py})
	i, j := e.transform.PixelToWorld(px, py, e.camera.X, e.camera.Y)
	e.provider.TileClicked(world.TileCoord{I: i, J: j})
}

// TileAt - тайл под пикселем холста при текущей камере.
func (e *Engine) TileAt(px, py float64) world.TileCoord {
	i, j := e.transform.PixelToWorld(px, py, e.camera.X, e.camera.Y)
	return world.TileCoord{I: i, J: j}
}

func (e *Engine) refreshTransform() {
	e.transform = iso.New(e.provider.TileWidth(), e.provider.TileHeight())
}

func (e *Engine) State() State { return e.state }
func (e *Engine) Key() string { return e.key }
func (e *Engine) Seed() uint32 { return e.seed }
func (e *Engine) Frame() uint64 { return e.frame }
func (e *Engine) Provider() world.Provider { return e.provider }
func (e *Engine) Camera() *camera.Camera { return e.camera }
func (e *Engine) Transform() iso.Transform { return e.transform }
func (e *Engine) Hovered() *world.TileCoord { return e.hovered }

// Snapshot - последний опубликованный снимок. Безопасно из любой горутины.
func (e *Engine) Snapshot() (api.FrameSnapshot, bool) {
	s := e.snapshot.Load()
	if s == nil {
		return api.FrameSnapshot{}, false
	}
	return *s, true
}

// SetPublisher подключает рассылку снимков.
func (e *Engine) SetPublisher(p Publisher) { e.publisher = p }

// SetRecorder включает запись сессии. nil отключает запись.
func (e *Engine) SetRecorder(r Recorder) { e.recorder = r }

func (e *Engine) record(ev storage.Event) {
	if e.recorder == nil {
		return
	}
	ev.Frame = e.frame
	if err := e.recorder.Record(ev); err != nil {
		e.log.WithError(err).Error("Recording failed, disabling recorder")
		e.recorder = nil
	}
}
