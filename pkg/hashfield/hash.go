// Package hashfield - детерминированный генератор псевдослучайных значений,
// на котором держится вся процедурная генерация мира.
//
// Любое значение тайла вычисляется заново из (seed, метка), поэтому сетку
// мира не нужно ни хранить, ни кэшировать. Результат не зависит от платформы
// и процесса: одинаковые входы всегда дают одинаковый выход.
package hashfield

import "unicode/utf16"

// Multiplier - нечётный множитель аккумулятора (K).
const Multiplier uint32 = 31

// Hash32 смешивает метку и сид в 32-битное значение.
//
// Аккумулятор стартует с seed, затем для каждой UTF-16 единицы метки:
// acc = acc*31 + c с переполнением по модулю 2^32. Итерация по UTF-16
// единицам, а не по байтам: сид ключа с не-ASCII символами зафиксирован этим форматом.
// Аккумулятор возвращается как есть, без финализатора.
func Hash32(label string, seed uint32) uint32 {
	h := seed
	for _, r := range label {
		if r < 0x10000 {
			h = h*Multiplier + uint32(r)
			continue
		}
		r1, r2 := utf16.EncodeRune(r)
		h = h*Multiplier + uint32(r1)
		h = h*Multiplier + uint32(r2)
	}
	return h
}

// Mix32 - финализатор в стиле Murmur для решётки шума: каждый входной бит
// влияет на все выходные.
func Mix32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

// Hash2 - быстрый хеш целой точки решётки. Используется шумом, где строковые
// метки на каждый узел были бы слишком дорогими.
func Hash2(seed uint32, x, y int32) uint32 {
	h := seed
	h ^= uint32(x) * 0x9e3779b1
	h ^= uint32(y) * 0x85ebca6b
	return Mix32(h)
}

// WorldSeed вычисляет сид мира из пользовательского ключа.
// Определён для любой строки, включая пустую (сид 0).
func WorldSeed(key string) uint32 {
	return Hash32(key, 0)
}
