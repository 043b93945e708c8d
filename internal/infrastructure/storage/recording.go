// Package storage пишет и читает записи сессий (ввод по кадрам) в бинарном
// формате ISOR, чтобы прогон можно было повторить без окна.
package storage

const (
	MagicHeader string = `ISOR` // 4 байта
	Version1    uint32 = 1
)

// EventType - вид события в записи.
type EventType uint8

const (
	EventTick     EventType = iota + 1 // ввод кадра: клавиши, указатель, часы
	EventClick                         // клик по пикселю (X, Y)
	EventKey                           // смена ключа мира (Text)
	EventProvider                      // смена провайдера (Text)
)

func (t EventType) String() string {
	switch t {
	case EventTick:
		return "tick"
	case EventClick:
		return "click"
	case EventKey:
		return "key"
	case EventProvider:
		return "provider"
	default:
		return "unknown"
	}
}

// PointerInside - бит в Event.Keys: указатель над холстом.
const PointerInside uint8 = 1 << 4

// Event - одно событие сессии. Поля, не относящиеся к типу, нулевые.
type Event struct {
	Frame uint64
	Type  EventType
	Keys  uint8 // биты camera.Input | PointerInside
	Clock float64
	X, Y  float64
	Text  string
}

// Session - заголовок записи и её события в порядке исполнения.
type Session struct {
	Timestamp int64
	Width     int
	Height    int
	Provider  string
	Key       string
	Events    []Event
}

// RecordingFileHeader - точное представление заголовка файла в памяти.
// За ним идут байты имени провайдера и ключа мира.
type RecordingFileHeader struct {
	Magic       [4]byte // 4 байта
	Version     uint32  // 4 байта
	Timestamp   int64   // 8 байт
	Width       int32   // 4 байта
	Height      int32   // 4 байта
	ProviderLen uint8   // 1 байт
	_           uint8   // выравнивание
	KeyLen      uint16  // 2 байта
}

// EventHeader - фиксированная часть записи события, за ней Text.
type EventHeader struct {
	Frame   uint64  // 8
	Type    uint8   // 1
	Keys    uint8   // 1
	TextLen uint16  // 2
	Clock   float64 // 8
	X       float64 // 8
	Y       float64 // 8
}
