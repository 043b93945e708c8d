package render

import (
	"fmt"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"isoworld/internal/engine"
	"isoworld/pkg/logger"
)

// Game связывает движок с окном ebiten. Кадр рисуется в Update на
// собственный холст, Draw только выводит его, поэтому число тиков
// движка равно числу тиков ebiten.
type Game struct {
	engine    *engine.Engine
	surface   *Surface
	canvas    *ebiten.Image
	key       *KeyField
	providers []string
	tps       int
	ticks     uint64
	chars     []rune
	stopped   atomic.Bool
}

// NewGame. providers - имена для F1..F3.
func NewGame(e *engine.Engine, s *Surface, tps int, providers []string) *Game {
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return &Game{
		engine:    e,
		surface:   s,
		key:       NewKeyField(e.Key()),
		providers: providers,
		tps:       tps,
	}
}

// Stop закрывает окно на следующем тике. Безопасно из любой горутины.
func (g *Game) Stop() { g.stopped.Store(true) }

func (g *Game) Update() error {
	if g.stopped.Load() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.editKey()
	g.switchProvider()

	w, h := g.surface.Size()
	mx, my := ebiten.CursorPosition()
	pointer := engine.Pointer{
		X:      float64(mx),
		Y:      float64(my),
		Inside: mx >= 0 && my >= 0 && mx < w && my < h,
	}
	if pointer.Inside && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.engine.Click(pointer.X, pointer.Y)
	}

	if g.canvas == nil {
		g.canvas = ebiten.NewImage(w, h)
	}
	g.surface.Begin(g.canvas)
	g.engine.Tick(engine.Input{
		Keys:    cameraInput(ebiten.IsKeyPressed),
		Pointer: pointer,
		Clock:   clockAt(g.ticks, g.tps),
	})
	g.ticks++
	return nil
}

func (g *Game) editKey() {
	g.chars = ebiten.AppendInputChars(g.chars[:0])
	changed := g.key.Type(g.chars)
	if repeating(inpututil.KeyPressDuration(ebiten.KeyBackspace)) && g.key.Backspace() {
		changed = true
	}
	if changed {
		g.engine.SetKey(g.key.String())
	}
}

func (g *Game) switchProvider() {
	for i, k := range providerKeys {
		if i >= len(g.providers) || !inpututil.IsKeyJustPressed(k) {
			continue
		}
		if err := g.engine.SwapProvider(g.providers[i]); err != nil {
			logger.Log.WithFields(logrus.Fields{
				"provider": g.providers[i],
			}).WithError(err).Warn("Provider switch failed")
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.canvas != nil {
		screen.DrawImage(g.canvas, nil)
	}
	ebitenutil.DebugPrint(screen, g.status())
}

func (g *Game) status() string {
	return fmt.Sprintf("%s  key: %q  [F1-F3 provider, arrows move, type to rekey]  %.0f TPS",
		g.engine.Provider().Name(), g.key.String(), ebiten.ActualTPS())
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.surface.Size()
}

// Run открывает окно и крутит игру до закрытия окна или Esc.
func Run(g *Game, title string) error {
	w, h := g.surface.Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(g.tps)
	return ebiten.RunGame(g)
}

// clockAt - часы анимации в мс по номеру тика.
func clockAt(ticks uint64, tps int) float64 {
	return float64(ticks) * 1000 / float64(tps)
}
