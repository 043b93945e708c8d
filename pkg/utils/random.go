package utils

import (
	crand "crypto/rand"
	"encoding/hex"
	"math/rand"
)

// GenerateID создает короткий уникальный ID (для подключений отладочной консоли).
func GenerateID() string {
	b := make([]byte, 8) // 16 символов hex
	if _, err := crand.Read(b); err != nil {
		panic("failed to generate random ID: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// Stream - воспроизводимый поток случайных чисел, засеянный сидом мира.
// Нужен там, где значение зависит от порядка событий (клики, спавн объектов),
// а не только от координаты тайла.
type Stream struct {
	r *rand.Rand
}

func NewStream(seed uint32) *Stream {
	return &Stream{r: rand.New(rand.NewSource(int64(seed)))}
}

// Float возвращает число в [0, 1).
func (s *Stream) Float() float64 {
	return s.r.Float64()
}

// Range возвращает число в [lo, hi).
func (s *Stream) Range(lo, hi float64) float64 {
	return lo + s.r.Float64()*(hi-lo)
}

// Intn возвращает число в [0, n). Для n <= 0 возвращает 0.
func (s *Stream) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.Intn(n)
}
