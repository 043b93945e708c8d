package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"isoworld/internal/world"
	"isoworld/pkg/api"
)

// ActionDescribe - внутреннее действие инспекции тайла (/debug/tile).
const ActionDescribe = "DESCRIBE"

var (
	ErrQueueFull      = errors.New("engine command queue is full")
	ErrNoFactory      = errors.New("provider factory is not configured")
	ErrNotDescribable = errors.New("provider does not describe tiles")
	ErrUnknownAction  = errors.New("unknown action")
)

// Command - действие, пришедшее не из тикающей горутины.
// Заполняются только поля, нужные для Action.
type Command struct {
	Action   string
	Key      string          // SET_KEY
	X, Y     float64         // CLICK, пиксели холста
	Provider string          // PROVIDER
	Tile     world.TileCoord // DESCRIBE

	// Reply получает результат, если не nil. Должен иметь буфер.
	Reply chan Reply
}

type Reply struct {
	Info api.TileInfo
	Err  error
}

// Submit ставит команду в очередь без блокировки.
func (e *Engine) Submit(cmd Command) error {
	select {
	case e.CommandChan <- cmd:
		return nil
	default:
		return ErrQueueFull
	}
}

// Describe запрашивает описание тайла у провайдера. Ответ приходит после
// ближайшего тика; ожидание ограничено ctx.
func (e *Engine) Describe(ctx context.Context, t world.TileCoord) (api.TileInfo, error) {
	reply := make(chan Reply, 1)
	if err := e.Submit(Command{Action: ActionDescribe, Tile: t, Reply: reply}); err != nil {
		return api.TileInfo{}, err
	}
	select {
	case r := <-reply:
		return r.Info, r.Err
	case <-ctx.Done():
		return api.TileInfo{}, fmt.Errorf("describe tile %v: %w", t, ctx.Err())
	}
}

// drainCommands исполняет команды, накопившиеся к началу тика.
// Команды, пришедшие во время исполнения, ждут следующего тика.
func (e *Engine) drainCommands() {
	for n := len(e.CommandChan); n > 0; n-- {
		cmd := <-e.CommandChan
		reply := e.execute(cmd)
		if reply.Err != nil {
			e.log.WithFields(logrus.Fields{
				"action": cmd.Action,
			}).WithError(reply.Err).Warn("Command failed")
		}
		if cmd.Reply != nil {
			select {
			case cmd.Reply <- reply:
			default:
			}
		}
	}
}

func (e *Engine) execute(cmd Command) Reply {
	switch cmd.Action {
	case api.ActionSetKey:
		e.SetKey(cmd.Key)
	case api.ActionClick:
		e.Click(cmd.X, cmd.Y)
	case api.ActionProvider:
		if err := e.SwapProvider(cmd.Provider); err != nil {
			return Reply{Err: err}
		}
	case ActionDescribe:
		d, ok := e.provider.(world.Describer)
		if !ok {
			return Reply{Err: ErrNotDescribable}
		}
		return Reply{Info: d.DescribeTile(cmd.Tile)}
	default:
		return Reply{Err: fmt.Errorf("%w: %q", ErrUnknownAction, cmd.Action)}
	}
	return Reply{}
}
