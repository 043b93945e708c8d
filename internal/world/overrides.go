package world

import "sort"

// Overrides - разреженная карта пользовательских правок тайлов поверх
// сгенерированного мира. Сбрасывается при смене ключа.
type Overrides[V any] struct {
	m map[TileCoord]V
}

func NewOverrides[V any]() *Overrides[V] {
	return &Overrides[V]{m: make(map[TileCoord]V)}
}

func (o *Overrides[V]) Get(t TileCoord) (V, bool) {
	v, ok := o.m[t]
	return v, ok
}

func (o *Overrides[V]) Set(t TileCoord, v V) {
	o.m[t] = v
}

func (o *Overrides[V]) Len() int {
	return len(o.m)
}

// Clear удаляет все правки.
func (o *Overrides[V]) Clear() {
	clear(o.m)
}

// Coords возвращает координаты правок в стабильном порядке (по i, затем по j).
func (o *Overrides[V]) Coords() []TileCoord {
	out := make([]TileCoord, 0, len(o.m))
	for t := range o.m {
		out = append(out, t)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].I != out[b].I {
			return out[a].I < out[b].I
		}
		return out[a].J < out[b].J
	})
	return out
}
