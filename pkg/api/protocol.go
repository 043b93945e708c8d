package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// Типы сообщений сервера.
const (
	TypeSnapshot = "SNAPSHOT"
	TypeAck      = "ACK"
	TypeError    = "ERROR"
)

// FrameSnapshot - "снимок" состояния движка после очередного тика.
// Публикуется каждым тиком; клиенты отладочной консоли получают его по websocket,
// а /debug/world отдаёт последний.
type FrameSnapshot struct {
	// Type тип сообщения. Всегда "SNAPSHOT".
	Type string `json:"type"`

	// Frame порядковый номер тика с момента Init.
	Frame uint64 `json:"frame"`

	// ClockMs внутриигровые часы в миллисекундах (только для косметической анимации).
	ClockMs float64 `json:"clockMs"`

	Provider string `json:"provider"`
	WorldKey string `json:"worldKey"`
	Seed     uint32 `json:"seed"`

	Camera   CameraView `json:"camera"`
	Offset   TilePos    `json:"offset"`
	Viewport GridMeta   `json:"viewport"`

	// TilesDrawn сколько тайлов прошло через DrawTile за кадр (обе развёртки).
	TilesDrawn int `json:"tilesDrawn"`

	// Hovered тайл под указателем, если указатель над холстом.
	Hovered *TilePos `json:"hovered,omitempty"`

	// Entities число живых объектов у провайдера (машины, падающие звёзды).
	// Отсутствует, если провайдер их не считает.
	Entities *int `json:"entities,omitempty"`
}

// CameraView - положение и скорость камеры в экранных пикселях.
type CameraView struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
}

// TilePos - целочисленная координата тайла.
type TilePos struct {
	I int `json:"i"`
	J int `json:"j"`
}

// GridMeta - размер холста в пикселях.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileInfo - описание тайла провайдером для отладочной инспекции.
// Kind пустой для тайлов вне региона провайдера.
type TileInfo struct {
	I        int               `json:"i"`
	J        int               `json:"j"`
	Provider string            `json:"provider"`
	InRegion bool              `json:"inRegion"`
	Kind     string            `json:"kind,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
}

// CommandResult - ответ на команду клиента.
type CommandResult struct {
	Type   string `json:"type"` // ACK или ERROR
	Action string `json:"action"`
	Error  string `json:"error,omitempty"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// Действия отладочной консоли.
const (
	ActionSetKey   = "SET_KEY"
	ActionClick    = "CLICK"
	ActionProvider = "PROVIDER"
)

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Action название действия, которое нужно выполнить.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// KeyPayload задаёт новый ключ мира (SET_KEY). Допустима любая строка, включая пустую.
type KeyPayload struct {
	Key string `json:"key"`
}

// PointerPayload - клик в пиксельных координатах холста (CLICK).
// Тайл вычисляется по камере на момент исполнения команды.
type PointerPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ProviderPayload переключает провайдера мира (PROVIDER).
type ProviderPayload struct {
	Name string `json:"name"`
}
