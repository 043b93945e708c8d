package network

import (
	"sync"

	"isoworld/pkg/api"
)

// Broadcaster занимается только рассылкой снимков кадров подписчикам
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: ID подключения -> Личный канал
	subscribers map[string]chan api.FrameSnapshot

	// every - рассылать каждый N-й кадр (тик идет 60 раз в секунду,
	// консоли столько не нужно).
	every uint64
}

// NewBroadcaster создает хаб, пропускающий каждый every-й кадр (минимум 1).
func NewBroadcaster(every int) *Broadcaster {
	if every < 1 {
		every = 1
	}
	return &Broadcaster{
		subscribers: make(map[string]chan api.FrameSnapshot),
		every:       uint64(every),
	}
}

// Register создает личный канал для подключения
func (b *Broadcaster) Register(id string) chan api.FrameSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[id]; ok {
		close(old)
	}

	ch := make(chan api.FrameSnapshot, 16)
	b.subscribers[id] = ch
	return ch
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
}

// Publish отправляет снимок всем. Медленный подписчик теряет кадры,
// движок никогда не ждет.
func (b *Broadcaster) Publish(s api.FrameSnapshot) {
	if s.Frame%b.every != 0 {
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- s:
		default:
		}
	}
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
