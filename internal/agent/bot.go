// Package agent - безголовый "демо-игрок".
//
// Bot подписывается на хаб снимков так же, как консоль по WebSocket, и
// кликает по тайлам через очередь команд движка. Клики бота проходят тот же
// путь, что и клики мышью: попадают в запись сессии и воспроизводятся реплеем.
//
// Жизненный цикл:
//  1. NewBot -> регистрация в хабе, получение личного канала (Inbox).
//  2. Run -> цикл в отдельной горутине, слушает Inbox до отмены ctx.
//  3. На каждом Every-м снимке decide выбирает пиксель и отправляет CLICK.
package agent

import (
	"context"

	"github.com/sirupsen/logrus"

	"isoworld/internal/engine"
	"isoworld/internal/network"
	"isoworld/pkg/api"
	"isoworld/pkg/hashfield"
	"isoworld/pkg/logger"
	"isoworld/pkg/utils"
)

// Submitter - очередь команд движка (*engine.Engine).
type Submitter interface {
	Submit(cmd engine.Command) error
}

type Bot struct {
	ID     string
	Engine Submitter
	Hub    *network.Broadcaster
	Inbox  chan api.FrameSnapshot

	// Every - кликать на каждом Every-м полученном снимке.
	Every uint64

	seed uint32
	rng  *utils.Stream
	seen uint64
	log  *logrus.Entry
}

func NewBot(e Submitter, hub *network.Broadcaster, every int) *Bot {
	if every < 1 {
		every = 1
	}
	id := "bot_" + utils.GenerateID()
	return &Bot{
		ID:     id,
		Engine: e,
		Hub:    hub,
		// Бот регистрируется в хабе как обычный клиент
		Inbox:  hub.Register(id),
		Every:  uint64(every),
		log:    logger.Log.WithField("agent", id),
	}
}

// Run слушает снимки, пока не отменят ctx или хаб не закроет канал.
func (b *Bot) Run(ctx context.Context) {
	defer b.Hub.Unregister(b.ID)
	b.log.Info("Demo agent started")

	for {
		select {
		case <-ctx.Done():
			b.log.Info("Demo agent stopped")
			return
		case snap, ok := <-b.Inbox:
			if !ok {
				return
			}
			cmd, act := b.decide(snap)
			if !act {
				continue
			}
			if err := b.Engine.Submit(cmd); err != nil {
				b.log.WithError(err).Debug("Click dropped")
			}
		}
	}
}

// decide выбирает клик по снимку. Точки зависят только от сида мира и
// номера клика, поэтому при одном ключе бот кликает одинаково.
func (b *Bot) decide(s api.FrameSnapshot) (engine.Command, bool) {
	if b.rng == nil || s.Seed != b.seed {
		b.seed = s.Seed
		b.rng = utils.NewStream(hashfield.Hash32("agent", s.Seed))
	}
	b.seen++
	if b.seen%b.Every != 0 || s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
		return engine.Command{}, false
	}
	return engine.Command{
		Action: api.ActionClick,
		X:      b.rng.Range(0, float64(s.Viewport.Width)),
		Y:      b.rng.Range(0, float64(s.Viewport.Height)),
	}, true
}
