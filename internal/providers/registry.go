// Package providers собирает все встроенные провайдеры мира.
package providers

import (
	"errors"
	"fmt"

	"isoworld/internal/providers/city"
	"isoworld/internal/providers/space"
	"isoworld/internal/providers/terrain"
	"isoworld/internal/world"
)

var ErrUnknownProvider = errors.New("unknown provider")

// Default - провайдер при старте без явной настройки.
const Default = terrain.Name

// Names возвращает имена провайдеров в порядке горячих клавиш F1, F2, F3.
func Names() []string {
	return []string{city.Name, terrain.Name, space.Name}
}

// New создает свежий экземпляр провайдера по имени.
func New(name string) (world.Provider, error) {
	switch name {
	case city.Name:
		return city.New(), nil
	case terrain.Name:
		return terrain.New(), nil
	case space.Name:
		p, err := space.New()
		if err != nil {
			return nil, fmt.Errorf("space provider: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
}

// Release освобождает ресурсы провайдера, если они есть.
func Release(p world.Provider) {
	if c, ok := p.(interface{ Close() }); ok {
		c.Close()
	}
}
