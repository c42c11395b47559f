package heuristics

import (
	"math"
	"math/rand"
)

// NEH вставляет работы order по одной, каждую - в лучшую позицию.
// Возвращает последовательность и её значение целевой функции.
func NEH(order []int, ins *Insertion, rng *rand.Rand) ([]int, float64) {
	seq := make([]int, 0, len(order))
	fitness := math.NaN()
	for _, job := range order {
		seq, fitness = insertInto(seq, job, 0, ins, rng)
	}
	return seq, fitness
}

// AppendingNEH добавляет первые ⌊ratio·n⌋ работ first без поиска позиции,
// остальные работы (в порядке order) вставляет как NEH, но только после
// добавленного префикса: префикс результата совпадает с префиксом first.
// Значение NaN означает, что вставок не было.
func AppendingNEH(first, order []int, ratio float64, ins *Insertion, rng *rand.Rand) ([]int, float64) {
	n := len(order)
	k := int(math.Floor(ratio * float64(n)))
	if k > len(first) {
		k = len(first)
	}

	seq := make([]int, 0, n)
	placed := make([]bool, n)
	for _, job := range first[:k] {
		seq = append(seq, job)
		placed[job] = true
	}

	fitness := math.NaN()
	for _, job := range order {
		if placed[job] {
			continue
		}
		seq, fitness = insertInto(seq, job, k, ins, rng)
	}
	return seq, fitness
}

func insertInto(seq []int, job, lo int, ins *Insertion, rng *rand.Rand) ([]int, float64) {
	pos, f := ins.InsertFrom(seq, job, lo, rng)
	seq = append(seq, 0)
	copy(seq[pos+1:], seq[pos:])
	seq[pos] = job
	return seq, f
}
