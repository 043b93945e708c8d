package hashfield

import "strconv"

// Field - генератор, привязанный к сиду конкретного мира.
// Значение не хранит ничего, кроме сида, и безопасно копируется.
type Field struct {
	Seed uint32
}

// New создает поле для ключа мира.
func New(key string) Field {
	return Field{Seed: WorldSeed(key)}
}

// Label собирает метку вида "purpose:i,j[,k...]".
func Label(purpose string, i, j int, extra ...int) string {
	buf := make([]byte, 0, len(purpose)+24)
	buf = append(buf, purpose...)
	buf = append(buf, ':')
	buf = strconv.AppendInt(buf, int64(i), 10)
	buf = append(buf, ',')
	buf = strconv.AppendInt(buf, int64(j), 10)
	for _, k := range extra {
		buf = append(buf, ',')
		buf = strconv.AppendInt(buf, int64(k), 10)
	}
	return string(buf)
}

// At возвращает сырой хеш тайла (i, j) для указанного назначения.
func (f Field) At(purpose string, i, j int, extra ...int) uint32 {
	return Hash32(Label(purpose, i, j, extra...), f.Seed)
}

// Chance - булев признак: At % mod < threshold.
func (f Field) Chance(purpose string, i, j int, mod, threshold uint32) bool {
	if mod == 0 {
		return false
	}
	return f.At(purpose, i, j)%mod < threshold
}

// Pick выбирает вариант из n (At % n). Для n <= 0 всегда 0.
func (f Field) Pick(purpose string, i, j, n int, extra ...int) int {
	if n <= 0 {
		return 0
	}
	return int(f.At(purpose, i, j, extra...) % uint32(n))
}

// Unit - непрерывное значение в [0, 1] с шагом 1/99 (At % 100 / 99).
func (f Field) Unit(purpose string, i, j int, extra ...int) float64 {
	return float64(f.At(purpose, i, j, extra...)%100) / 99
}

// Range отображает Unit в [lo, hi].
func (f Field) Range(purpose string, i, j int, lo, hi float64, extra ...int) float64 {
	return lo + f.Unit(purpose, i, j, extra...)*(hi-lo)
}
