package render

import (
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"

	"isoworld/internal/camera"
)

// MaxKeyLength ограничивает длину ключа мира, набираемого в окне.
const MaxKeyLength = 64

// providerKeys - горячие клавиши переключения провайдеров, по порядку имен.
// Цифры заняты вводом ключа, поэтому F-клавиши.
var providerKeys = []ebiten.Key{ebiten.KeyF1, ebiten.KeyF2, ebiten.KeyF3}

// cameraInput опрашивает стрелки.
func cameraInput(pressed func(ebiten.Key) bool) camera.Input {
	return camera.Input{
		Left:  pressed(ebiten.KeyArrowLeft),
		Right: pressed(ebiten.KeyArrowRight),
		Up:    pressed(ebiten.KeyArrowUp),
		Down:  pressed(ebiten.KeyArrowDown),
	}
}

// repeating - автоповтор удерживаемой клавиши: первый тик, затем после
// паузы каждые 4 тика.
func repeating(duration int) bool {
	return duration == 1 || (duration >= 30 && duration%4 == 0)
}

// KeyField - поле ввода ключа мира. Каждое изменение сразу пересоздает мир.
type KeyField struct {
	runes []rune
}

func NewKeyField(s string) *KeyField {
	f := &KeyField{}
	f.Type([]rune(s))
	return f
}

// Type дописывает печатные символы. Возвращает true, если строка изменилась.
func (f *KeyField) Type(rs []rune) bool {
	changed := false
	for _, r := range rs {
		if len(f.runes) >= MaxKeyLength || !unicode.IsPrint(r) {
			continue
		}
		f.runes = append(f.runes, r)
		changed = true
	}
	return changed
}

// Backspace удаляет последний символ.
func (f *KeyField) Backspace() bool {
	if len(f.runes) == 0 {
		return false
	}
	f.runes = f.runes[:len(f.runes)-1]
	return true
}

func (f *KeyField) String() string { return string(f.runes) }
